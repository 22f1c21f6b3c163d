package media

import "strings"

const legacyPublicPrefix = "public/"

// URLer returns the public URL of a stored object key.
type URLer interface {
	PublicURL(key string) string
}

// Resolver maps stored image paths to URLs a browser can fetch.
type Resolver struct {
	store URLer
}

// NewResolver creates a resolver backed by the given store.
func NewResolver(store URLer) *Resolver {
	return &Resolver{store: store}
}

// ResolveImageSource maps a stored path to a fetchable URL:
// absolute URLs pass through, legacy "public/..." paths map to the site's static
// "/..." path, root-relative paths are kept, and everything else is an object key.
func (r *Resolver) ResolveImageSource(path string) string {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	case strings.HasPrefix(path, legacyPublicPrefix):
		return "/" + strings.TrimPrefix(path, legacyPublicPrefix)
	case strings.HasPrefix(path, "/"):
		return path
	}
	if r == nil || r.store == nil {
		return path
	}
	return r.store.PublicURL(path)
}
