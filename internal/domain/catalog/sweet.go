package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/sweetshop/backend/internal/domain/shared"
)

// Sweet is a catalog entry with a trackable stock quantity and a price.
// Quantity is the only field mutated outside catalog administration, and
// those mutations go through the inventory transaction core so that the
// locking discipline lives in exactly one place.
type Sweet struct {
	shared.BaseEntity
	Name        string          `gorm:"size:255;not null;index"`
	Category    string          `gorm:"size:100;not null;index"`
	Description string          `gorm:"type:text"`
	ImageURL    string          `gorm:"size:1024"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Quantity    int64           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Sweet) TableName() string {
	return "sweets"
}

// NewSweet creates a new catalog sweet
func NewSweet(name, category string, price decimal.Decimal, quantity int64) (*Sweet, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &Sweet{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Category:   category,
		Price:      price,
		Quantity:   quantity,
	}, nil
}

// InStock reports whether at least the requested quantity is available
func (s *Sweet) InStock(quantity int64) bool {
	return s.Quantity >= quantity
}

// UpdateDetails replaces the descriptive fields of the sweet
func (s *Sweet) UpdateDetails(name, category, description, imageURL string, price decimal.Decimal, quantity int64) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	s.Name = name
	s.Category = category
	s.Description = description
	s.ImageURL = imageURL
	s.Price = price
	s.Quantity = quantity
	s.Touch()
	return nil
}

// SearchFilter narrows catalog searches. Zero values mean "no constraint".
type SearchFilter struct {
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// IsZero reports whether the filter constrains anything
func (f SearchFilter) IsZero() bool {
	return f.Name == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}
