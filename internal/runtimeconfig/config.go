// Package runtimeconfig aggregates the pipeline's configuration surface:
// feature switches plus the per-module settings the facade wires into
// services. Fields use simple types so host applications can populate them
// from flags, environment, or config files.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrContentDirRequired     = errors.New("codelab config: content directory is required")
	ErrOutputDirRequired      = errors.New("codelab config: output directory is required when the generator is enabled")
	ErrThemeDirRequired       = errors.New("codelab config: theme directory is required when themes are enabled")
	ErrWorkersInvalid         = errors.New("codelab config: build workers must be zero or positive")
	ErrPreviewPortInvalid     = errors.New("codelab config: preview port must be between 1 and 65535")
	ErrPreviewDebounceInvalid = errors.New("codelab config: preview debounce must be zero or positive")
	ErrTitleLengthInvalid     = errors.New("codelab config: lint max title length must be zero or positive")
	ErrLoggingLevelInvalid    = errors.New("codelab config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("codelab config: logging format is invalid")
)

// Config is the aggregate runtime configuration.
type Config struct {
	Site     SiteConfig
	Content  ContentConfig
	Assets   AssetsConfig
	Build    BuildConfig
	Theme    ThemeConfig
	Lint     LintConfig
	Preview  PreviewConfig
	Logging  LoggingConfig
	Features FeatureConfig
}

// SiteConfig carries site-wide publishing metadata.
type SiteConfig struct {
	BaseURL     string
	Title       string
	Description string
}

// ContentConfig locates the tutorial corpus.
type ContentConfig struct {
	// Dir is the corpus root containing Markdown tutorials.
	Dir string
	// Pattern filters which files are treated as tutorials. Defaults to
	// every .md file, recursively.
	Pattern string
	// IncludeDrafts builds documents marked draft: true.
	IncludeDrafts bool
}

// AssetsConfig locates static files copied through to the output.
type AssetsConfig struct {
	Dir string
}

// BuildConfig controls the generator.
type BuildConfig struct {
	OutputDir       string
	Workers         int
	Incremental     bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
}

// ThemeConfig selects the theme used for rendering.
type ThemeConfig struct {
	Dir               string
	Name              string
	Variant           string
	CSSVariablePrefix string
}

// LintConfig tunes the corpus linter.
type LintConfig struct {
	// MaxTitleLength caps front-matter titles; zero keeps the default.
	MaxTitleLength int
	// RegistryFile optionally overlays categories on the built-in set.
	RegistryFile string
	// SchemaFile optionally points at a JSON schema applied to front matter.
	SchemaFile string
}

// PreviewConfig tunes the local development server.
type PreviewConfig struct {
	Host     string
	Port     int
	Debounce time.Duration
}

// LoggingConfig selects log output behaviour.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// FeatureConfig switches whole modules on and off.
type FeatureConfig struct {
	Generator bool
	Themes    bool
	Preview   bool
}

// New returns a configuration with every module enabled and sensible defaults
// applied.
func New() Config {
	cfg := Config{
		Features: FeatureConfig{
			Generator: true,
			Themes:    true,
			Preview:   true,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with working defaults without overriding
// anything the host has set.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Site.Title) == "" {
		c.Site.Title = "Codelabs"
	}
	if strings.TrimSpace(c.Content.Dir) == "" {
		c.Content.Dir = "content"
	}
	if strings.TrimSpace(c.Assets.Dir) == "" {
		c.Assets.Dir = "assets"
	}
	if strings.TrimSpace(c.Build.OutputDir) == "" {
		c.Build.OutputDir = "public"
	}
	if c.Build.Workers == 0 {
		c.Build.Workers = 4
	}
	if strings.TrimSpace(c.Theme.Name) == "" {
		c.Theme.Name = "default"
	}
	if strings.TrimSpace(c.Preview.Host) == "" {
		c.Preview.Host = "localhost"
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = 8080
	}
	if c.Preview.Debounce == 0 {
		c.Preview.Debounce = 500 * time.Millisecond
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = "info"
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = "console"
	}
}

// Validate checks cross-field consistency. Call after ApplyDefaults.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if c.Features.Generator && strings.TrimSpace(c.Build.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if c.Features.Themes && strings.TrimSpace(c.Theme.Dir) == "" {
		return ErrThemeDirRequired
	}
	if c.Build.Workers < 0 {
		return ErrWorkersInvalid
	}
	if c.Lint.MaxTitleLength < 0 {
		return ErrTitleLengthInvalid
	}
	if c.Features.Preview {
		if c.Preview.Port < 1 || c.Preview.Port > 65535 {
			return ErrPreviewPortInvalid
		}
		if c.Preview.Debounce < 0 {
			return ErrPreviewDebounceInvalid
		}
	}
	if err := validateLogging(c.Logging); err != nil {
		return err
	}
	return nil
}

func validateLogging(cfg LoggingConfig) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Level)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json", "console", "pretty":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Format)
	}
	return nil
}
