// Package storage provides product image storage backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	catalogapp "github.com/autoparts/backend/internal/application/catalog"
	"go.uber.org/zap"
)

var _ catalogapp.ImageStorage = (*LocalImageStorage)(nil)

// LocalImageStorage stores images on the local filesystem under a base
// directory and serves them through a static URL prefix.
type LocalImageStorage struct {
	baseDir string
	baseURL string
	logger  *zap.Logger
}

// NewLocalImageStorage creates a filesystem-backed image storage.
// baseDir is created if missing.
func NewLocalImageStorage(baseDir, baseURL string, logger *zap.Logger) (*LocalImageStorage, error) {
	if baseDir == "" {
		return nil, errors.New("storage base directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalImageStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Save writes the image under the given key and returns its public URL
func (s *LocalImageStorage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	cleaned, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(cleaned), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(cleaned, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	s.logger.Debug("Stored image on disk",
		zap.String("key", key),
		zap.Int("bytes", len(data)))
	return s.baseURL + "/" + filepath.ToSlash(key), nil
}

// Delete removes the image for the given key. Deleting a missing key is
// not an error.
func (s *LocalImageStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	cleaned, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(cleaned); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// resolve maps a key to a path inside baseDir, rejecting traversal
func (s *LocalImageStorage) resolve(key string) (string, error) {
	cleaned := filepath.Join(s.baseDir, filepath.FromSlash(key))
	base, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", err
	}
	if abs != base && !strings.HasPrefix(abs, base+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return cleaned, nil
}
