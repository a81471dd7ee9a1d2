package persistence

import (
	"context"

	"gorm.io/gorm"

	appinv "github.com/sweetshop/backend/internal/application/inventory"
	"github.com/sweetshop/backend/internal/domain/inventory"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to repositories scoped to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// StockRepo returns the sweet stock repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StockRepo() inventory.SweetStockRepository {
	return NewGormSweetStockRepository(r.tx)
}

// PurchaseRepo returns the purchase ledger repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseRepo() inventory.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

var _ appinv.TransactionScope = (*GormTransactionScope)(nil)
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
