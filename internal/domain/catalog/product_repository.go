package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows and pages product listings
type ListFilter struct {
	Part     string // exact part category match, empty = all
	Search   string // case-insensitive name substring
	Page     int
	PageSize int
	OrderBy  string // name, price, created_at
	OrderDir string // asc, desc
}

// ProductRepository defines persistence operations for products.
// Lock and decrement operations only behave transactionally when the
// repository is obtained from a checkout transaction scope.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, int64, error)
	Count(ctx context.Context) (int64, error)

	// FindForUpdate reads products by id with row-level locks, pinning the
	// price/stock snapshot the checkout transaction works against.
	FindForUpdate(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// DecrementStock applies a guarded stock decrement and returns the
	// number of rows affected. Zero rows means the guard rejected it.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (int64, error)
}
