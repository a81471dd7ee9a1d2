package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sweetshop/backend/internal/domain/inventory"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// Append inserts a purchase row. The ledger is append-only, rows are
// never updated or deleted.
func (r *GormPurchaseRepository) Append(ctx context.Context, purchase *inventory.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// SumTotal sums total_price over the whole ledger
func (r *GormPurchaseRepository) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&inventory.Purchase{}).
		Select("COALESCE(SUM(total_price), 0) as total").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumTotalForUser sums total_price over one user's purchases
func (r *GormPurchaseRepository) SumTotalForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&inventory.Purchase{}).
		Select("COALESCE(SUM(total_price), 0) as total").
		Where("user_id = ?", userID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// FindByUser returns a user's purchases, most recent first
func (r *GormPurchaseRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]inventory.Purchase, error) {
	var purchases []inventory.Purchase
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

var _ inventory.PurchaseRepository = (*GormPurchaseRepository)(nil)
