package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultLocalPublicBase is the URL prefix the router serves local uploads from.
const DefaultLocalPublicBase = "/uploads"

// LocalStore keeps objects on local disk, for development.
type LocalStore struct {
	basePath   string
	publicBase string
	logger     *zap.Logger
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(basePath, publicBase string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	if publicBase == "" {
		publicBase = DefaultLocalPublicBase
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStore{basePath: basePath, publicBase: publicBase, logger: logger}, nil
}

// Upload writes body to basePath/key.
func (s *LocalStore) Upload(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error {
	if err := validKey(key); err != nil {
		return err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	s.logger.Debug("stored upload", zap.String("path", fullPath), zap.Int64("size", size))
	return nil
}

// PublicURL returns the URL the file is served from.
func (s *LocalStore) PublicURL(key string) string {
	return joinURL(s.publicBase, key)
}
