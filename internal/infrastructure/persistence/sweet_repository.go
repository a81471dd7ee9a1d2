package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sweetshop/backend/internal/domain/catalog"
	"github.com/sweetshop/backend/internal/domain/shared"
)

// GormSweetRepository implements SweetRepository using GORM
type GormSweetRepository struct {
	db *gorm.DB
}

// NewGormSweetRepository creates a new GormSweetRepository
func NewGormSweetRepository(db *gorm.DB) *GormSweetRepository {
	return &GormSweetRepository{db: db}
}

// FindByID finds a sweet by its ID
func (r *GormSweetRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Sweet, error) {
	var sweet catalog.Sweet
	if err := r.db.WithContext(ctx).First(&sweet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sweet, nil
}

// FindAll returns all sweets ordered by name
func (r *GormSweetRepository) FindAll(ctx context.Context) ([]catalog.Sweet, error) {
	var sweets []catalog.Sweet
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

// Search returns sweets matching the filter. All criteria are optional
// and combined with AND.
func (r *GormSweetRepository) Search(ctx context.Context, filter catalog.SearchFilter) ([]catalog.Sweet, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Sweet{})

	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		query = query.Where("category ILIKE ?", "%"+filter.Category+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var sweets []catalog.Sweet
	if err := query.Order("name ASC").Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

// Save inserts or updates a sweet
func (r *GormSweetRepository) Save(ctx context.Context, sweet *catalog.Sweet) error {
	if err := r.db.WithContext(ctx).Save(sweet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a sweet by ID
func (r *GormSweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Sweet{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.SweetRepository = (*GormSweetRepository)(nil)
