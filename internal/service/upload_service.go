package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/media"
	"cultofdrive/internal/normalize"
	"cultofdrive/internal/storage"
)

// Upload categories open to members. Admins may upload into any category.
var publicCategories = map[string]bool{
	"cars":        true,
	"avatars":     true,
	"marketplace": true,
}

var imageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// UploadInput describes one uploaded file.
type UploadInput struct {
	Category string
	OwnerID  string
	Label    string
	Filename string
	Size     int64
	Body     io.ReadSeeker
}

// UploadResult is where an uploaded image was stored.
type UploadResult struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// UploadService stores images in object storage.
type UploadService interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	AdminUpload(ctx context.Context, in UploadInput) (*UploadResult, error)
}

type uploadService struct {
	store    storage.Store
	maxBytes int64
}

// NewUploadService creates an upload service that rejects files over maxBytes.
func NewUploadService(store storage.Store, maxBytes int64) UploadService {
	return &uploadService{store: store, maxBytes: maxBytes}
}

func (s *uploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if !publicCategories[in.Category] {
		return nil, errors.Invalid("Invalid category")
	}
	return s.put(ctx, in)
}

func (s *uploadService) AdminUpload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	in.Category = normalize.Slugify(in.Category)
	if in.Category == "" {
		return nil, errors.Invalid("Invalid category")
	}
	return s.put(ctx, in)
}

func (s *uploadService) put(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.Body == nil || in.Size == 0 {
		return nil, errors.Invalid("File is required")
	}
	if in.Size > s.maxBytes {
		return nil, errors.ErrPayloadTooLarge
	}

	// Trust the bytes, not the client's Content-Type.
	mtype, err := mimetype.DetectReader(in.Body)
	if err != nil {
		return nil, fmt.Errorf("detect file type: %w", err)
	}
	if _, err := in.Body.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}
	contentType := mtype.String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := imageTypes[contentType]
	if !ok {
		return nil, errors.Invalid("Only JPEG, PNG, WebP and GIF images are allowed")
	}

	label := strings.TrimSpace(in.Label)
	if label == "" {
		label = strings.TrimSuffix(filepath.Base(in.Filename), filepath.Ext(in.Filename))
	}
	key := media.BuildImagePath(in.Category, in.OwnerID, label, ext)

	if err := s.store.Upload(ctx, key, in.Body, in.Size, contentType); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	return &UploadResult{Path: key, URL: s.store.PublicURL(key)}, nil
}
