// Package codelab assembles the tutorial publishing pipeline: Markdown
// loading, corpus linting, static site generation, and the local preview
// loop, behind a single module facade.
package codelab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-codelab/internal/commands"
	pipelinecmd "github.com/goliatone/go-codelab/internal/commands/pipeline"
	"github.com/goliatone/go-codelab/internal/generator"
	"github.com/goliatone/go-codelab/internal/linter"
	"github.com/goliatone/go-codelab/internal/logging"
	"github.com/goliatone/go-codelab/internal/logging/gologger"
	"github.com/goliatone/go-codelab/internal/markdown"
	"github.com/goliatone/go-codelab/internal/preview"
	"github.com/goliatone/go-codelab/internal/runtimeconfig"
	"github.com/goliatone/go-codelab/internal/steps"
	"github.com/goliatone/go-codelab/internal/taxonomy"
	"github.com/goliatone/go-codelab/internal/themes"
	"github.com/goliatone/go-codelab/internal/validation"
	"github.com/goliatone/go-codelab/pkg/interfaces"
	"github.com/goliatone/go-codelab/pkg/storage"
)

// ErrPreviewDisabled is returned by Preview when the feature is switched off.
var ErrPreviewDisabled = errors.New("codelab: preview feature is disabled")

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// CommandHandlers groups the pipeline command handlers the module exposes to
// hosts and the CLI.
type CommandHandlers struct {
	Build *pipelinecmd.BuildSiteHandler
	Lint  *pipelinecmd.LintCorpusHandler
	Clean *pipelinecmd.CleanSiteHandler
}

// Module is the top level pipeline runtime facade.
type Module struct {
	cfg      runtimeconfig.Config
	provider interfaces.LoggerProvider
	markdown interfaces.MarkdownService
	registry *taxonomy.Registry
	linter   *linter.Linter
	store    *storage.FilesystemStore
	gen      generator.Service
	handlers CommandHandlers
}

// New constructs the module from the provided configuration. Defaults are
// applied before validation, so a zero-value Config with a content directory
// is enough to get a working pipeline.
func New(cfg Config) (*Module, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Focus:     cfg.Logging.Focus,
	})
	if err != nil {
		return nil, err
	}

	registry, err := loadRegistry(cfg.Lint)
	if err != nil {
		return nil, err
	}
	schema, err := loadSchema(cfg.Lint)
	if err != nil {
		return nil, err
	}

	markdownSvc, err := markdown.NewService(markdown.Config{
		BasePath:  cfg.Content.Dir,
		Pattern:   cfg.Content.Pattern,
		Recursive: true,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("codelab: markdown service: %w", err)
	}

	assetsFS := assetFilesystem(cfg.Assets.Dir)
	sanitizer := steps.NewSanitizer()
	stepParser := steps.NewParser(sanitizer)
	stepRenderer, err := steps.NewRenderer(markdown.NewGoldmarkParser(interfaces.ParseOptions{}), "")
	if err != nil {
		return nil, fmt.Errorf("codelab: step renderer: %w", err)
	}

	lintSvc := linter.New(linter.Config{
		Registry:       registry,
		Steps:          stepParser,
		Assets:         assetsFS,
		Schema:         schema,
		MaxTitleLength: cfg.Lint.MaxTitleLength,
		Logger:         logging.LinterLogger(provider),
	})

	module := &Module{
		cfg:      cfg,
		provider: provider,
		markdown: markdownSvc,
		registry: registry,
		linter:   lintSvc,
		gen:      generator.NewDisabledService(),
	}

	if cfg.Features.Generator {
		renderer, err := themes.NewTemplateRenderer(cfg.Theme.Dir, themes.RendererFuncs(
			themes.BuildContext(nil, themes.ContextConfig{
				CSSVariablePrefix: cfg.Theme.CSSVariablePrefix,
				CategoryColors:    registry.Colors(),
			}),
			cfg.Site.BaseURL,
		))
		if err != nil {
			return nil, fmt.Errorf("codelab: theme templates: %w", err)
		}

		var selector *themes.Selector
		if cfg.Features.Themes {
			selector = themes.NewSelector(themes.SelectorConfig{
				DefaultTheme:   cfg.Theme.Name,
				DefaultVariant: cfg.Theme.Variant,
			}, nil)
		}

		module.store = storage.NewFilesystemStore(cfg.Build.OutputDir)
		gen, err := generator.New(generator.Config{
			BaseURL:           cfg.Site.BaseURL,
			SiteTitle:         cfg.Site.Title,
			SiteDescription:   cfg.Site.Description,
			Workers:           cfg.Build.Workers,
			Incremental:       cfg.Build.Incremental,
			IncludeDrafts:     cfg.Content.IncludeDrafts,
			CopyAssets:        assetsFS != nil || cfg.Features.Themes,
			GenerateSitemap:   cfg.Build.GenerateSitemap,
			GenerateRobots:    cfg.Build.GenerateRobots,
			GenerateFeeds:     cfg.Build.GenerateFeeds,
			ThemeName:         cfg.Theme.Name,
			ThemeVariant:      cfg.Theme.Variant,
			ThemeDir:          themeDirWhenEnabled(cfg),
			CSSVariablePrefix: cfg.Theme.CSSVariablePrefix,
		}, generator.Dependencies{
			Markdown:     markdownSvc,
			Steps:        stepParser,
			StepRenderer: stepRenderer,
			Sanitizer:    sanitizer,
			Linter:       lintSvc,
			Registry:     registry,
			Themes:       selector,
			Renderer:     renderer,
			Store:        module.store,
			Assets:       assetsFS,
			Logger:       logging.GeneratorLogger(provider),
		})
		if err != nil {
			return nil, err
		}
		module.gen = gen
	}

	gates := pipelinecmd.FeatureGates{
		GeneratorEnabled: func() bool { return cfg.Features.Generator },
	}
	cmdLogger := commands.CommandLogger(provider, "pipeline")
	module.handlers = CommandHandlers{
		Build: pipelinecmd.NewBuildSiteHandler(module.gen, cmdLogger, gates),
		Lint:  pipelinecmd.NewLintCorpusHandler(markdownSvc, lintSvc, cmdLogger),
		Clean: pipelinecmd.NewCleanSiteHandler(module.gen, cmdLogger, gates),
	}

	return module, nil
}

// Config returns the resolved configuration.
func (m *Module) Config() Config { return m.cfg }

// Markdown returns the corpus loading and rendering service.
func (m *Module) Markdown() interfaces.MarkdownService { return m.markdown }

// Linter returns the corpus linter.
func (m *Module) Linter() *linter.Linter { return m.linter }

// Registry returns the category registry in effect.
func (m *Module) Registry() *taxonomy.Registry { return m.registry }

// Generator returns the static site generator, or a disabled stub when the
// feature is off.
func (m *Module) Generator() GeneratorService { return m.gen }

// Commands returns the pipeline command handlers.
func (m *Module) Commands() CommandHandlers { return m.handlers }

// Logger returns a named logger from the module's provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.provider, name)
}

// Preview constructs the local development server: it serves the output
// directory and rebuilds when the content, asset, or theme trees change.
func (m *Module) Preview() (*preview.Server, error) {
	if !m.cfg.Features.Preview {
		return nil, ErrPreviewDisabled
	}

	watch := []string{m.cfg.Content.Dir}
	if m.cfg.Assets.Dir != "" {
		watch = append(watch, m.cfg.Assets.Dir)
	}
	if m.cfg.Theme.Dir != "" {
		watch = append(watch, m.cfg.Theme.Dir)
	}

	rebuild := func(ctx context.Context) error {
		_, err := m.gen.Build(ctx, generator.BuildOptions{})
		return err
	}
	return preview.NewServer(preview.Config{
		Host:      m.cfg.Preview.Host,
		Port:      m.cfg.Preview.Port,
		OutputDir: m.cfg.Build.OutputDir,
		WatchDirs: watch,
		Debounce:  m.cfg.Preview.Debounce,
		Logger:    logging.PreviewLogger(m.provider),
	}, rebuild)
}

func loadRegistry(cfg runtimeconfig.LintConfig) (*taxonomy.Registry, error) {
	if cfg.RegistryFile == "" {
		return taxonomy.Default(), nil
	}
	registry, err := taxonomy.Load(cfg.RegistryFile)
	if err != nil {
		return nil, err
	}
	return registry, nil
}

func loadSchema(cfg runtimeconfig.LintConfig) (map[string]any, error) {
	if cfg.SchemaFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cfg.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("codelab: read schema %s: %w", cfg.SchemaFile, err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("codelab: parse schema %s: %w", cfg.SchemaFile, err)
	}
	schema = validation.NormalizeSchema(schema)
	if err := validation.ValidateSchema(schema); err != nil {
		return nil, fmt.Errorf("codelab: schema %s: %w", cfg.SchemaFile, err)
	}
	return schema, nil
}

func assetFilesystem(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	return os.DirFS(dir)
}

func themeDirWhenEnabled(cfg runtimeconfig.Config) string {
	if !cfg.Features.Themes {
		return ""
	}
	return cfg.Theme.Dir
}
