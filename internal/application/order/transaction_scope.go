package order

import (
	"context"

	"github.com/autoparts/backend/internal/domain/catalog"
	"github.com/autoparts/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories the
// checkout works with. Everything executed inside Execute commits or rolls
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to one transaction
type TransactionalRepositories interface {
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Orders returns the order repository scoped to the current transaction
	Orders() order.Repository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and for backends without transaction support.
type NoOpTransactionScope struct {
	products catalog.ProductRepository
	orders   order.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(products catalog.ProductRepository, orders order.Repository) *NoOpTransactionScope {
	return &NoOpTransactionScope{products: products, orders: orders}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.products
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() order.Repository {
	return s.orders
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
