package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"cultofdrive/internal/config"
)

// S3Store stores objects in S3 or any S3-compatible service (the hosted backend's
// storage exposes one), selected by Endpoint.
type S3Store struct {
	api        s3iface.S3API
	bucket     string
	publicBase string
}

// NewS3Store creates an S3 store from configuration.
func NewS3Store(cfg config.StorageConfig) (*S3Store, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return NewS3StoreWithAPI(s3.New(sess), cfg.Bucket, publicBase), nil
}

// NewS3StoreWithAPI creates an S3 store around an existing client.
func NewS3StoreWithAPI(api s3iface.S3API, bucket, publicBase string) *S3Store {
	return &S3Store{api: api, bucket: bucket, publicBase: publicBase}
}

// Upload puts the object with a long-lived public cache header.
func (s *S3Store) Upload(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error {
	if err := validKey(key); err != nil {
		return err
	}
	_, err := s.api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the public URL for key.
func (s *S3Store) PublicURL(key string) string {
	return joinURL(s.publicBase, key)
}
