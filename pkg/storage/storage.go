package storage

import (
	"context"
	"io"
)

// Category labels the kind of artifact being written so stores can apply
// category-specific behaviour (metrics, cache headers, retention).
type Category string

const (
	CategoryPage     Category = "page"
	CategoryAsset    Category = "asset"
	CategorySitemap  Category = "sitemap"
	CategoryRobots   Category = "robots"
	CategoryFeed     Category = "feed"
	CategoryManifest Category = "manifest"
)

// WriteRequest describes a single artifact write routed through a Store.
type WriteRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    Category
	ContentType string
	Checksum    string
	Metadata    map[string]string
}

// Store persists build artifacts. Paths are slash-separated and relative to
// the store's root; implementations must reject paths that escape it.
type Store interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteRequest) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Remove(ctx context.Context, path string) error
	RemoveAll(ctx context.Context, path string) error
}
