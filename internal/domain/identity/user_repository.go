package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for user accounts
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, page, pageSize int) ([]User, int64, error)
	Count(ctx context.Context) (int64, error)
}
