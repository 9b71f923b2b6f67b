package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStorage(dir, "/uploads/", nil)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Save(ctx, "products/abc.jpg", []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/abc.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "products", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)

	require.NoError(t, store.Delete(ctx, "products/abc.jpg"))
	_, err = os.Stat(filepath.Join(dir, "products", "abc.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageOverwrite(t *testing.T) {
	store, err := NewLocalImageStorage(t.TempDir(), "/uploads", nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Save(ctx, "products/x.png", []byte("v1"), "image/png")
	require.NoError(t, err)
	url, err := store.Save(ctx, "products/x.png", []byte("v2"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/x.png", url)
}

func TestLocalStorageDeleteMissingKeyIsNoError(t *testing.T) {
	store, err := NewLocalImageStorage(t.TempDir(), "/uploads", nil)
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "products/nope.jpg"))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalImageStorage(t.TempDir(), "/uploads", nil)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../escape.jpg", []byte("x"), "image/jpeg")
	assert.Error(t, err)

	assert.Error(t, store.Delete(context.Background(), "../../etc/passwd"))
}

func TestLocalStorageRequiresKey(t *testing.T) {
	store, err := NewLocalImageStorage(t.TempDir(), "/uploads", nil)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "", []byte("x"), "image/jpeg")
	assert.Error(t, err)
}
