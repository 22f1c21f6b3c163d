package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"cultofdrive/internal/config"
)

// Store persists uploaded images under a key and serves them from a public URL.
type Store interface {
	Upload(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error
	PublicURL(key string) string
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case config.StorageS3:
		return NewS3Store(cfg)
	case config.StorageGCS:
		return NewGCSStore(ctx, cfg)
	case config.StorageLocal:
		return NewLocalStore(cfg.LocalPath, cfg.PublicBaseURL, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

func validKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("invalid object key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." || part == "" {
			return fmt.Errorf("invalid object key %q", key)
		}
	}
	return nil
}
