package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockView is the slice of a sweet's row the transaction core needs:
// the current quantity and the price to snapshot into the ledger.
type StockView struct {
	SweetID  uuid.UUID
	Quantity int64
	Price    decimal.Decimal
}

// SweetStockRepository guards the quantity column of the sweets table.
// Implementations must scope LockForUpdate's lock to the enclosing
// database transaction so it is held until commit or rollback.
type SweetStockRepository interface {
	// LockForUpdate acquires an exclusive row lock on the sweet and
	// returns its current quantity and price. A second purchase or
	// restock of the same sweet blocks here until the first one's
	// transaction completes. Returns shared.ErrNotFound when the sweet
	// does not exist.
	LockForUpdate(ctx context.Context, sweetID uuid.UUID) (*StockView, error)

	// ApplyDelta atomically adds delta (negative for purchase, positive
	// for restock) to the sweet's quantity and returns the new value.
	// A decrement must only run after LockForUpdate succeeded within the
	// same transaction. Returns shared.ErrNotFound when the sweet does
	// not exist.
	ApplyDelta(ctx context.Context, sweetID uuid.UUID, delta int64) (int64, error)
}

// PurchaseRepository is the append-only ledger of completed purchases
// and its read-side aggregation.
type PurchaseRepository interface {
	// Append inserts one immutable ledger row. It must run inside the
	// same transaction as the corresponding stock decrement.
	Append(ctx context.Context, purchase *Purchase) error

	// SumTotal returns the sum of total_price across every ledger row,
	// zero when the ledger is empty.
	SumTotal(ctx context.Context) (decimal.Decimal, error)

	// SumTotalForUser returns the sum of total_price over the rows of a
	// single user, zero when the user has none.
	SumTotalForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)

	// FindByUser returns a user's ledger rows, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Purchase, error)
}
