package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	apporder "github.com/autoparts/backend/internal/application/order"
	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestFindForUpdateEmitsRowLock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN .* FOR UPDATE`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "part", "price", "stock", "image_url"}).
			AddRow(id.String(), "LED Headlight", "headlight", "150.00", 3, ""))

	products, err := repo.FindForUpdate(context.Background(), []uuid.UUID{id})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 3, products[0].Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStockGuardShape(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)
	id := uuid.New()

	mock.ExpectExec(`UPDATE "products" SET .*stock.* WHERE id = \$\d+ AND stock >= \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.DecrementStock(context.Background(), id, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStockGuardRejects(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	mock.ExpectExec(`UPDATE "products" SET .*stock.* WHERE id = \$\d+ AND stock >= \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.DecrementStock(context.Background(), uuid.New(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestExecuteRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	scope := NewGormTransactionScope(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := scope.Execute(context.Background(), func(apporder.TransactionalRepositories) error {
		return shared.ErrEmptyCart
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_CART", domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteCommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	scope := NewGormTransactionScope(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := scope.Execute(context.Background(), func(apporder.TransactionalRepositories) error {
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil))

	err := translateError(gorm.ErrRecordNotFound)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	err = translateError(&pq.Error{Code: "23505"})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)

	for _, code := range []pq.ErrorCode{"40001", "40P01"} {
		err = translateError(&pq.Error{Code: code})
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TRANSACTION_FAILURE", domainErr.Code)
	}
}
