package media

import (
	"strings"

	"github.com/google/uuid"

	"cultofdrive/internal/normalize"
)

const (
	publicOwner  = "public"
	defaultLabel = "image"
	defaultExt   = "jpg"
	randomIDLen  = 12
)

// BuildImagePath returns a storage key of the form
// {category}/{ownerID or "public"}/{randomID}-{slug(label)}.{ext}.
// Keys are made unique by the random id, not by content.
func BuildImagePath(category, ownerID, label, ext string) string {
	owner := strings.TrimSpace(ownerID)
	if owner == "" {
		owner = publicOwner
	}

	slug := normalize.Slugify(label)
	if slug == "" {
		slug = defaultLabel
	}

	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "" {
		ext = defaultExt
	}

	return category + "/" + owner + "/" + randomID() + "-" + slug + "." + ext
}

func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:randomIDLen]
}
