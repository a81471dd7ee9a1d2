package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sweetshop/backend/internal/domain/shared"
)

// newMockSweetStockRepository creates a GormSweetStockRepository with a mocked SQL connection
func newMockSweetStockRepository(t *testing.T) (*GormSweetStockRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSweetStockRepository(gormDB), mock, mockDB
}

func TestGormSweetStockRepository_LockForUpdate(t *testing.T) {
	t.Run("locks and returns the stock row", func(t *testing.T) {
		repo, mock, mockDB := newMockSweetStockRepository(t)
		defer mockDB.Close()

		sweetID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "quantity", "price"}).
			AddRow(sweetID, int64(25), decimal.NewFromFloat(3.50))

		mock.ExpectQuery(`SELECT .+ FROM "sweets" WHERE id = \$1 .*FOR UPDATE`).
			WithArgs(sweetID, 1).
			WillReturnRows(rows)

		view, err := repo.LockForUpdate(context.Background(), sweetID)

		require.NoError(t, err)
		assert.Equal(t, sweetID, view.SweetID)
		assert.Equal(t, int64(25), view.Quantity)
		assert.True(t, view.Price.Equal(decimal.NewFromFloat(3.50)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing sweet", func(t *testing.T) {
		repo, mock, mockDB := newMockSweetStockRepository(t)
		defer mockDB.Close()

		sweetID := uuid.New()
		mock.ExpectQuery(`SELECT .+ FROM "sweets" WHERE id = \$1 .*FOR UPDATE`).
			WithArgs(sweetID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "quantity", "price"}))

		_, err := repo.LockForUpdate(context.Background(), sweetID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSweetStockRepository_ApplyDelta(t *testing.T) {
	t.Run("applies delta and returns resulting quantity", func(t *testing.T) {
		repo, mock, mockDB := newMockSweetStockRepository(t)
		defer mockDB.Close()

		sweetID := uuid.New()

		mock.ExpectExec(`UPDATE "sweets" SET`).
			WithArgs(int64(-3), sqlmock.AnyArg(), sweetID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT "quantity" FROM "sweets" WHERE id = \$1`).
			WithArgs(sweetID).
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(int64(7)))

		quantity, err := repo.ApplyDelta(context.Background(), sweetID, -3)

		require.NoError(t, err)
		assert.Equal(t, int64(7), quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no row was updated", func(t *testing.T) {
		repo, mock, mockDB := newMockSweetStockRepository(t)
		defer mockDB.Close()

		sweetID := uuid.New()

		mock.ExpectExec(`UPDATE "sweets" SET`).
			WithArgs(int64(5), sqlmock.AnyArg(), sweetID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.ApplyDelta(context.Background(), sweetID, 5)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
