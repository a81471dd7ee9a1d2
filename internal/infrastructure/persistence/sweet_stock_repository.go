package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sweetshop/backend/internal/domain/catalog"
	"github.com/sweetshop/backend/internal/domain/inventory"
	"github.com/sweetshop/backend/internal/domain/shared"
)

// GormSweetStockRepository implements SweetStockRepository using GORM.
// It must run inside a transaction for LockForUpdate to be meaningful.
type GormSweetStockRepository struct {
	db *gorm.DB
}

// NewGormSweetStockRepository creates a new GormSweetStockRepository
func NewGormSweetStockRepository(db *gorm.DB) *GormSweetStockRepository {
	return &GormSweetStockRepository{db: db}
}

// LockForUpdate reads a sweet's stock row under SELECT ... FOR UPDATE.
// Concurrent callers block on the row lock until the owning transaction commits.
func (r *GormSweetStockRepository) LockForUpdate(ctx context.Context, sweetID uuid.UUID) (*inventory.StockView, error) {
	var row struct {
		ID       uuid.UUID
		Quantity int64
		Price    decimal.Decimal
	}

	err := r.db.WithContext(ctx).
		Model(&catalog.Sweet{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "quantity", "price").
		Where("id = ?", sweetID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	return &inventory.StockView{
		SweetID:  row.ID,
		Quantity: row.Quantity,
		Price:    row.Price,
	}, nil
}

// ApplyDelta adjusts a sweet's quantity by delta in a single atomic UPDATE
// and returns the resulting quantity.
func (r *GormSweetStockRepository) ApplyDelta(ctx context.Context, sweetID uuid.UUID, delta int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&catalog.Sweet{}).
		Where("id = ?", sweetID).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, shared.ErrNotFound
	}

	var quantity int64
	err := r.db.WithContext(ctx).
		Model(&catalog.Sweet{}).
		Select("quantity").
		Where("id = ?", sweetID).
		Scan(&quantity).Error
	if err != nil {
		return 0, err
	}
	return quantity, nil
}

var _ inventory.SweetStockRepository = (*GormSweetStockRepository)(nil)
