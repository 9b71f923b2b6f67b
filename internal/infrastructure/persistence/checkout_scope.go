package persistence

import (
	"context"

	apporder "github.com/autoparts/backend/internal/application/order"
	"github.com/autoparts/backend/internal/domain/catalog"
	"github.com/autoparts/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormTransactionScope implements the checkout transaction scope on gorm.
// Every Execute call opens one database transaction; the repositories
// handed to the callback all ride on it. Driver-level conflicts surface
// as TRANSACTION_FAILURE so the caller can retry.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a transaction scope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside one transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	})
	return translateError(err)
}

// txRepositories binds repositories to one open transaction
type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *txRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

var _ apporder.TransactionScope = (*GormTransactionScope)(nil)
var _ apporder.TransactionalRepositories = (*txRepositories)(nil)
