package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sweetshop/backend/internal/domain/catalog"
)

// SweetService handles catalog administration. Stock mutations are out
// of its scope; the quantity it writes is only the initial stock on
// create and the admin override on update.
type SweetService struct {
	sweetRepo catalog.SweetRepository
	logger    *zap.Logger
}

// NewSweetService creates a new SweetService
func NewSweetService(sweetRepo catalog.SweetRepository, logger *zap.Logger) *SweetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SweetService{
		sweetRepo: sweetRepo,
		logger:    logger,
	}
}

// Create creates a new catalog sweet
func (s *SweetService) Create(ctx context.Context, req CreateSweetRequest) (*SweetResponse, error) {
	sweet, err := catalog.NewSweet(req.Name, req.Category, req.Price, req.Quantity)
	if err != nil {
		return nil, err
	}
	sweet.Description = req.Description
	sweet.ImageURL = req.ImageURL

	if err := s.sweetRepo.Save(ctx, sweet); err != nil {
		return nil, err
	}

	s.logger.Info("sweet created",
		zap.String("sweet_id", sweet.ID.String()),
		zap.String("name", sweet.Name))

	return ToSweetResponse(sweet), nil
}

// GetByID retrieves a sweet by ID
func (s *SweetService) GetByID(ctx context.Context, id uuid.UUID) (*SweetResponse, error) {
	sweet, err := s.sweetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSweetResponse(sweet), nil
}

// List returns the whole catalog
func (s *SweetService) List(ctx context.Context) ([]SweetResponse, error) {
	sweets, err := s.sweetRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToSweetResponseList(sweets), nil
}

// Search returns sweets matching the filter. An empty filter behaves
// like List.
func (s *SweetService) Search(ctx context.Context, filter catalog.SearchFilter) ([]SweetResponse, error) {
	if filter.IsZero() {
		return s.List(ctx)
	}
	sweets, err := s.sweetRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToSweetResponseList(sweets), nil
}

// Update replaces a sweet's descriptive fields
func (s *SweetService) Update(ctx context.Context, id uuid.UUID, req UpdateSweetRequest) (*SweetResponse, error) {
	sweet, err := s.sweetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sweet.UpdateDetails(req.Name, req.Category, req.Description, req.ImageURL, req.Price, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.sweetRepo.Save(ctx, sweet); err != nil {
		return nil, err
	}

	return ToSweetResponse(sweet), nil
}

// Delete removes a sweet from the catalog
func (s *SweetService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.sweetRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("sweet deleted", zap.String("sweet_id", id.String()))
	return nil
}
