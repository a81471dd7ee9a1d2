package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetshop/backend/internal/domain/catalog"
)

// CreateSweetRequest carries the fields for creating a catalog sweet
type CreateSweetRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

// UpdateSweetRequest carries the fields for updating a catalog sweet
type UpdateSweetRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

// SweetResponse is a catalog sweet in API shape
type SweetResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToSweetResponse converts a domain sweet to its API shape
func ToSweetResponse(sweet *catalog.Sweet) *SweetResponse {
	return &SweetResponse{
		ID:          sweet.ID,
		Name:        sweet.Name,
		Category:    sweet.Category,
		Description: sweet.Description,
		ImageURL:    sweet.ImageURL,
		Price:       sweet.Price,
		Quantity:    sweet.Quantity,
		CreatedAt:   sweet.CreatedAt,
		UpdatedAt:   sweet.UpdatedAt,
	}
}

// ToSweetResponseList converts a slice of domain sweets
func ToSweetResponseList(sweets []catalog.Sweet) []SweetResponse {
	responses := make([]SweetResponse, len(sweets))
	for i := range sweets {
		responses[i] = *ToSweetResponse(&sweets[i])
	}
	return responses
}
