// Package themes resolves the active theme for a build: go-theme manifest
// loading and selection, category colors surfaced as design tokens, and the
// html/template renderer themes plug their templates into.
package themes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// Theme points the selector at a theme directory. Name is only a fallback
// for manifests that do not name themselves; the manifest on disk is
// authoritative.
type Theme struct {
	Name string
	Path string
}

// ManifestLoader loads a go-theme manifest from a theme directory.
type ManifestLoader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

type fsManifestLoader struct{}

func (fsManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" {
		return nil, fmt.Errorf("theme path required")
	}
	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

// SelectorConfig sets the default theme and variant applied when a build does
// not name one.
type SelectorConfig struct {
	DefaultTheme   string
	DefaultVariant string
}

// Selector registers theme manifests on demand and resolves selections. A
// theme directory is its own identity: manifests are cached per path, and
// repeat selections never touch the loader again.
type Selector struct {
	registry       *gotheme.MemoryRegistry
	loader         ManifestLoader
	defaultTheme   string
	defaultVariant string

	mu        sync.Mutex
	manifests map[string]*gotheme.Manifest
}

// NewSelector builds a selector. A nil loader reads manifests from disk.
func NewSelector(cfg SelectorConfig, loader ManifestLoader) *Selector {
	if loader == nil {
		loader = fsManifestLoader{}
	}
	return &Selector{
		registry:       gotheme.NewRegistry(),
		loader:         loader,
		defaultTheme:   strings.TrimSpace(cfg.DefaultTheme),
		defaultVariant: strings.TrimSpace(cfg.DefaultVariant),
		manifests:      map[string]*gotheme.Manifest{},
	}
}

// Selection resolves the theme at the given directory, loading and
// registering its manifest on first use. The selection is made under the
// manifest's own name so a directory renamed in config keeps resolving.
func (s *Selector) Selection(theme Theme, variant string) (*gotheme.Selection, error) {
	manifest, err := s.ensureManifest(theme)
	if err != nil {
		return nil, err
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   s.defaultTheme,
		DefaultVariant: s.defaultVariant,
	}

	resolvedVariant := strings.TrimSpace(variant)
	if resolvedVariant == "" {
		resolvedVariant = s.defaultVariant
	}

	selection, err := selector.Select(manifest.Name, resolvedVariant)
	if err != nil {
		return nil, fmt.Errorf("select theme %s: %w", manifest.Name, err)
	}
	return selection, nil
}

func (s *Selector) ensureManifest(theme Theme) (*gotheme.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := filepath.Clean(strings.TrimSpace(theme.Path))
	if manifest, ok := s.manifests[key]; ok {
		return manifest, nil
	}

	manifest, err := s.loader.Load(theme.Path)
	if err != nil {
		return nil, fmt.Errorf("load theme manifest from %s: %w", theme.Path, err)
	}

	normalized := *manifest
	if strings.TrimSpace(normalized.Name) == "" {
		normalized.Name = strings.TrimSpace(theme.Name)
	}
	if normalized.Name == "" {
		normalized.Name = filepath.Base(key)
	}
	if normalized.Name == "" || normalized.Name == "." || normalized.Name == string(filepath.Separator) {
		return nil, fmt.Errorf("theme name required for manifest registration")
	}

	if err := s.registry.Register(&normalized); err != nil {
		return nil, fmt.Errorf("register theme manifest: %w", err)
	}
	s.manifests[key] = &normalized
	return &normalized, nil
}
