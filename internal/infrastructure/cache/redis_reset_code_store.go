package cache

import (
	"context"
	"errors"
	"time"

	appidentity "github.com/autoparts/backend/internal/application/identity"
	"github.com/redis/go-redis/v9"
)

const resetCodeKeyPrefix = "reset_code:"

// RedisResetCodeStore implements ResetCodeStore on Redis, letting multiple
// instances share reset codes. Redis handles expiry via key TTLs.
type RedisResetCodeStore struct {
	client *redis.Client
}

// NewRedisResetCodeStore creates a Redis-backed reset code store
func NewRedisResetCodeStore(client *redis.Client) *RedisResetCodeStore {
	return &RedisResetCodeStore{client: client}
}

// Put stores a reset code with the given TTL
func (s *RedisResetCodeStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, resetCodeKeyPrefix+email, code, ttl).Err()
}

// Get returns the stored code, or an empty string when absent or expired
func (s *RedisResetCodeStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, resetCodeKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return code, nil
}

// Delete removes the stored code for the email
func (s *RedisResetCodeStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, resetCodeKeyPrefix+email).Err()
}

var _ appidentity.ResetCodeStore = (*RedisResetCodeStore)(nil)
