package order

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows and pages order listings
type ListFilter struct {
	Status   Status // empty = all
	Page     int
	PageSize int
}

// Repository defines persistence operations for orders.
// Create persists the header and all items; when obtained from a checkout
// transaction scope it shares that transaction.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, int64, error)
	Count(ctx context.Context) (int64, error)
}
