package catalog

import (
	"context"

	"github.com/google/uuid"
)

// SweetRepository defines the interface for sweet persistence
type SweetRepository interface {
	// FindByID finds a sweet by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sweet, error)

	// FindAll returns all sweets ordered by name
	FindAll(ctx context.Context) ([]Sweet, error)

	// Search returns sweets matching the filter, ordered by name
	Search(ctx context.Context, filter SearchFilter) ([]Sweet, error)

	// Save creates or updates a sweet
	Save(ctx context.Context, sweet *Sweet) error

	// Delete removes a sweet from the catalog
	Delete(ctx context.Context, id uuid.UUID) error
}
