package identity

import (
	"context"
	"time"

	domainidentity "github.com/autoparts/backend/internal/domain/identity"
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints signed bearer tokens for authenticated users
type TokenIssuer interface {
	Issue(user *domainidentity.User) (token string, expiresAt time.Time, err error)
}

// ResetCodeStore keeps password reset codes with a bounded lifetime.
// Implementations cover an in-memory store for single-instance deployments
// and Redis for multi-instance ones.
type ResetCodeStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns the stored code, or an empty string when absent or expired
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}
