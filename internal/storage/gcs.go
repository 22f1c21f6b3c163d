package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"cultofdrive/internal/config"
)

// GCSStore stores objects in a Google Cloud Storage bucket.
type GCSStore struct {
	client     *gcs.Client
	bucket     string
	publicBase string
}

// NewGCSStore creates a GCS store. Without a credentials file the default application
// credentials are used.
func NewGCSStore(ctx context.Context, cfg config.StorageConfig) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = "https://storage.googleapis.com/" + cfg.Bucket
	}
	return &GCSStore{client: client, bucket: cfg.Bucket, publicBase: publicBase}, nil
}

// Upload streams body into the object.
func (s *GCSStore) Upload(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error {
	if err := validKey(key); err != nil {
		return err
	}
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the public URL for key.
func (s *GCSStore) PublicURL(key string) string {
	return joinURL(s.publicBase, key)
}
