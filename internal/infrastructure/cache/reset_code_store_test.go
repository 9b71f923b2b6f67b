package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	store := NewInMemoryResetCodeStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@b.com", "123456", time.Minute))

	code, err := store.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	require.NoError(t, store.Delete(ctx, "a@b.com"))
	code, err = store.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestGetUnknownEmail(t *testing.T) {
	store := NewInMemoryResetCodeStore()
	defer store.Close()

	code, err := store.Get(context.Background(), "ghost@b.com")
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestExpiredCodeIsGone(t *testing.T) {
	store := NewInMemoryResetCodeStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@b.com", "123456", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	code, err := store.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestPutReplacesPreviousCode(t *testing.T) {
	store := NewInMemoryResetCodeStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@b.com", "111111", time.Minute))
	require.NoError(t, store.Put(ctx, "a@b.com", "222222", time.Minute))

	code, err := store.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", code)
	assert.Equal(t, 1, store.Size())
}

func TestCleanupRemovesExpiredEntries(t *testing.T) {
	store := NewInMemoryResetCodeStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@b.com", "111111", time.Millisecond))
	require.NoError(t, store.Put(ctx, "b@b.com", "222222", time.Hour))
	time.Sleep(10 * time.Millisecond)

	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestCloseIsIdempotent(t *testing.T) {
	store := NewInMemoryResetCodeStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
