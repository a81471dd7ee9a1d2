package inventory

import (
	"context"

	"github.com/sweetshop/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the two inventory
// stores. All repository operations executed within one scope belong to
// the same database transaction and commit or roll back atomically.
// The purchase invariant hangs on this: a ledger row exists if and only
// if the matching stock decrement was durably applied.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within a transaction. Both repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// StockRepo returns the sweet stock repository scoped to the current transaction
	StockRepo() inventory.SweetStockRepository
	// PurchaseRepo returns the purchase ledger repository scoped to the current transaction
	PurchaseRepo() inventory.PurchaseRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	stockRepo    inventory.SweetStockRepository
	purchaseRepo inventory.PurchaseRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	stockRepo inventory.SweetStockRepository,
	purchaseRepo inventory.PurchaseRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:    stockRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRepo returns the sweet stock repository.
func (s *NoOpTransactionScope) StockRepo() inventory.SweetStockRepository {
	return s.stockRepo
}

// PurchaseRepo returns the purchase ledger repository.
func (s *NoOpTransactionScope) PurchaseRepo() inventory.PurchaseRepository {
	return s.purchaseRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
