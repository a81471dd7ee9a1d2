package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sweetshop/backend/internal/domain/inventory"
)

func setupPurchaseTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&inventory.Purchase{}))
	return db
}

func appendPurchase(t *testing.T, repo *GormPurchaseRepository, userID, sweetID uuid.UUID, quantity int64, unitPrice float64) *inventory.Purchase {
	purchase, err := inventory.NewPurchase(userID, sweetID, quantity, decimal.NewFromFloat(unitPrice))
	require.NoError(t, err)
	require.NoError(t, repo.Append(context.Background(), purchase))
	return purchase
}

func TestGormPurchaseRepository_AppendAndFindByUser(t *testing.T) {
	db := setupPurchaseTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()
	sweetID := uuid.New()

	first := appendPurchase(t, repo, userID, sweetID, 2, 3.00)
	time.Sleep(5 * time.Millisecond)
	second := appendPurchase(t, repo, userID, sweetID, 1, 3.00)
	appendPurchase(t, repo, otherID, sweetID, 4, 3.00)

	purchases, err := repo.FindByUser(ctx, userID)

	require.NoError(t, err)
	require.Len(t, purchases, 2)
	// Most recent first
	assert.Equal(t, second.ID, purchases[0].ID)
	assert.Equal(t, first.ID, purchases[1].ID)
}

func TestGormPurchaseRepository_SumTotal(t *testing.T) {
	db := setupPurchaseTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()

	userA := uuid.New()
	userB := uuid.New()
	sweetID := uuid.New()

	appendPurchase(t, repo, userA, sweetID, 2, 5.00)  // 10.00
	appendPurchase(t, repo, userA, sweetID, 1, 2.50)  // 2.50
	appendPurchase(t, repo, userB, sweetID, 3, 10.00) // 30.00

	total, err := repo.SumTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromFloat(42.50)), "got %s", total)

	totalA, err := repo.SumTotalForUser(ctx, userA)
	require.NoError(t, err)
	assert.True(t, totalA.Equal(decimal.NewFromFloat(12.50)), "got %s", totalA)

	totalB, err := repo.SumTotalForUser(ctx, userB)
	require.NoError(t, err)
	assert.True(t, totalB.Equal(decimal.NewFromInt(30)), "got %s", totalB)
}

func TestGormPurchaseRepository_SumTotal_EmptyLedger(t *testing.T) {
	db := setupPurchaseTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()

	total, err := repo.SumTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	totalUser, err := repo.SumTotalForUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, totalUser.IsZero())
}
