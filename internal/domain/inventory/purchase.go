package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetshop/backend/internal/domain/shared"
)

// Purchase is one row of the append-only purchase ledger. It is created
// exclusively by the inventory transaction core inside the same database
// transaction as the stock decrement, and is never updated or deleted.
// The ledger, not the sweet quantity, is the source of truth for
// spend/revenue statistics.
type Purchase struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SweetID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int64           `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a ledger record for a completed purchase. The unit
// price is the price snapshotted under the stock row lock; later catalog
// price changes never alter historical totals.
func NewPurchase(userID, sweetID uuid.UUID, quantity int64, unitPrice decimal.Decimal) (*Purchase, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if sweetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SWEET", "Sweet ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Purchase{
		ID:         uuid.New(),
		UserID:     userID,
		SweetID:    sweetID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:  time.Now(),
	}, nil
}
