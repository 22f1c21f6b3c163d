package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cultofdrive/internal/config"
)

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "", zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	body := []byte("image-bytes")
	require.NoError(t, store.Upload(ctx, "cars/u-1/abc-e30.jpg", bytes.NewReader(body), int64(len(body)), "image/jpeg"))

	got, err := os.ReadFile(filepath.Join(dir, "cars", "u-1", "abc-e30.jpg"))
	require.NoError(t, err)
	assert.Equal(t, body, got)
	assert.Equal(t, "/uploads/cars/u-1/abc-e30.jpg", store.PublicURL("cars/u-1/abc-e30.jpg"))
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "https://example.com/media/", nil)
	require.NoError(t, err)

	for _, key := range []string{"", "/etc/passwd", "cars/../../secret", "cars//x.jpg", "./x.jpg"} {
		err := store.Upload(context.Background(), key, bytes.NewReader(nil), 0, "image/png")
		assert.Error(t, err, "key %q", key)
	}
	assert.Equal(t, "https://example.com/media/a/b.png", store.PublicURL("a/b.png"))
}

type fakeS3 struct {
	s3iface.S3API
	puts []*s3.PutObjectInput
	err  error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Store(t *testing.T) {
	api := &fakeS3{}
	store := NewS3StoreWithAPI(api, "images", "https://project.storage.example.com/object/public/images/")

	err := store.Upload(context.Background(), "avatars/u-1/me.png", bytes.NewReader([]byte("png")), 3, "image/png")
	require.NoError(t, err)
	require.Len(t, api.puts, 1)
	assert.Equal(t, "images", aws.StringValue(api.puts[0].Bucket))
	assert.Equal(t, "avatars/u-1/me.png", aws.StringValue(api.puts[0].Key))
	assert.Equal(t, "image/png", aws.StringValue(api.puts[0].ContentType))
	assert.Equal(t, int64(3), aws.Int64Value(api.puts[0].ContentLength))

	assert.Equal(t, "https://project.storage.example.com/object/public/images/avatars/u-1/me.png", store.PublicURL("avatars/u-1/me.png"))

	api.err = errors.New("AccessDenied")
	assert.ErrorContains(t, store.Upload(context.Background(), "a/b.png", bytes.NewReader(nil), 0, "image/png"), "AccessDenied")
}

func TestNewS3StoreDefaultsPublicURL(t *testing.T) {
	store, err := NewS3Store(config.StorageConfig{
		Driver:          config.StorageS3,
		Bucket:          "cultofdrive",
		Region:          "eu-central-1",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cultofdrive.s3.eu-central-1.amazonaws.com/cars/x.jpg", store.PublicURL("cars/x.jpg"))
}

func TestNew(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{Driver: config.StorageLocal, LocalPath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(context.Background(), config.StorageConfig{Driver: "ftp"}, zap.NewNop())
	assert.EqualError(t, err, `unknown storage driver "ftp"`)
}
