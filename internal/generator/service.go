package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-codelab/internal/linter"
	"github.com/goliatone/go-codelab/internal/logging"
	"github.com/goliatone/go-codelab/internal/taxonomy"
	"github.com/goliatone/go-codelab/internal/themes"
	"github.com/goliatone/go-codelab/pkg/interfaces"
	"github.com/goliatone/go-codelab/pkg/storage"
)

// ErrServiceDisabled is returned by the disabled service stub.
var ErrServiceDisabled = errors.New("generator service disabled")

const defaultWorkers = 4

// Service drives full and incremental site builds over a tutorial corpus.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config controls build behaviour. Zero values produce a working build with
// assets, sitemap, robots, and feed generation enabled only when asked for.
type Config struct {
	BaseURL           string
	SiteTitle         string
	SiteDescription   string
	Workers           int
	Incremental       bool
	IncludeDrafts     bool
	CopyAssets        bool
	GenerateSitemap   bool
	GenerateRobots    bool
	GenerateFeeds     bool
	ThemeName         string
	ThemeVariant      string
	ThemeDir          string
	CSSVariablePrefix string
}

// Dependencies wires the collaborating services. Markdown, Renderer, and
// Store are required; the rest default to working implementations or are
// optional features.
type Dependencies struct {
	Markdown     interfaces.MarkdownService
	Steps        interfaces.StepParser
	StepRenderer interfaces.StepRenderer
	Sanitizer    interfaces.StepSanitizer
	Linter       *linter.Linter
	Registry     *taxonomy.Registry
	Themes       *themes.Selector
	Renderer     interfaces.TemplateRenderer
	Store        storage.Store
	Assets       fs.FS
	Logger       interfaces.Logger
}

// BuildOptions tweaks a single build run.
type BuildOptions struct {
	// Force renders every page even when the manifest says it is unchanged.
	Force bool
	// DryRun computes the work plan without writing any artifact.
	DryRun bool
	// AssetsOnly copies assets and skips page rendering entirely.
	AssetsOnly bool
}

// BuildResult summarises one build run.
type BuildResult struct {
	BuildID       string
	GeneratedAt   time.Time
	Duration      time.Duration
	PagesBuilt    int
	PagesSkipped  int
	AssetsBuilt   int
	AssetsSkipped int
	Pages         []RenderedPage
	Diagnostics   []RenderDiagnostic
	LintReport    linter.Report
	DryRun        bool
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

// New builds the generator service.
func New(cfg Config, deps Dependencies) (Service, error) {
	if deps.Markdown == nil {
		return nil, errors.New("generator: markdown service is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("generator: template renderer is required")
	}
	if deps.Store == nil {
		return nil, errors.New("generator: artifact store is required")
	}
	if deps.Steps == nil || deps.StepRenderer == nil {
		return nil, errors.New("generator: step parser and renderer are required")
	}
	if deps.Registry == nil {
		deps.Registry = taxonomy.Default()
	}
	if deps.Linter == nil {
		deps.Linter = linter.New(linter.Config{Registry: deps.Registry})
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		now:    time.Now,
	}, nil
}

// NewDisabledService returns a stub that rejects every call. Hosts use it
// when the generator module is switched off but the wiring still expects a
// Service value.
func NewDisabledService() Service {
	return disabledService{}
}

type disabledService struct{}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error { return ErrServiceDisabled }

func (s *service) incremental(opts BuildOptions) bool {
	return s.cfg.Incremental && !opts.Force
}

func (s *service) themeFS() fs.FS {
	dir := strings.TrimSpace(s.cfg.ThemeDir)
	if dir == "" {
		return nil
	}
	return os.DirFS(dir)
}

// Build runs the pipeline: load and lint the corpus, render pages through a
// worker pool, copy assets, emit discovery artifacts, and persist the build
// manifest used by the next incremental run.
func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	start := s.now()

	buildCtx, err := s.loadContext(ctx, opts)
	if err != nil {
		if buildCtx != nil {
			return &BuildResult{LintReport: buildCtx.LintReport, GeneratedAt: start.UTC()}, err
		}
		return nil, err
	}

	manifest, err := s.loadManifest(ctx)
	if err != nil {
		s.logger.Warn("discarding unreadable build manifest", "error", err)
		manifest = newBuildManifest()
	}

	result := &BuildResult{
		BuildID:     uuid.NewString(),
		GeneratedAt: buildCtx.GeneratedAt,
		LintReport:  buildCtx.LintReport,
		DryRun:      opts.DryRun,
	}

	pageKeys := map[string]struct{}{}
	assetKeys := map[string]struct{}{}
	var errs []error

	if !opts.AssetsOnly {
		specs := collectPageSpecs(buildCtx)
		site := buildSiteMetadata(buildCtx, s.cfg.BaseURL)
		build := BuildMetadata{
			ID:          result.BuildID,
			GeneratedAt: buildCtx.GeneratedAt,
			Options:     opts,
		}

		outcomes := s.renderPages(ctx, specs, site, build, buildCtx, manifest)
		for _, outcome := range outcomes {
			result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
			if outcome.err != nil {
				errs = append(errs, outcome.err)
				continue
			}
			result.Pages = append(result.Pages, outcome.page)
			pageKeys[manifest.pageKey(outcome.page.Slug)] = struct{}{}
			if outcome.skipped {
				result.PagesSkipped++
				continue
			}
			result.PagesBuilt++
			if opts.DryRun {
				continue
			}
			if err := s.persistPage(ctx, outcome.page); err != nil {
				errs = append(errs, err)
				continue
			}
			manifest.setPage(manifestPage{
				Slug:         outcome.page.Slug,
				Route:        outcome.page.Route,
				Output:       outcome.page.Output,
				Template:     outcome.page.Template,
				Hash:         outcome.page.Hash,
				Checksum:     outcome.page.Checksum,
				LastModified: outcome.page.LastModified,
				RenderedAt:   buildCtx.GeneratedAt,
			})
		}

		if !opts.DryRun && len(errs) == 0 {
			if err := s.writeDiscoveryArtifacts(ctx, site, result.Pages, buildCtx.GeneratedAt); err != nil {
				errs = append(errs, err)
			}
			if s.cfg.GenerateFeeds {
				items := s.buildFeedItems(buildCtx)
				feed := buildRSSFeed(site, items, buildCtx.GeneratedAt)
				if err := s.writeArtifact(ctx, "feed.xml", feed, storage.CategoryFeed, "application/rss+xml"); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}

	if s.cfg.CopyAssets && !opts.DryRun {
		contentSummary, err := s.copyContentAssets(ctx, buildCtx, manifest, assetKeys)
		if err != nil {
			errs = append(errs, fmt.Errorf("generator: copy content assets: %w", err))
		}
		themeSummary, err := s.copyThemeAssets(ctx, buildCtx, manifest, assetKeys)
		if err != nil {
			errs = append(errs, fmt.Errorf("generator: copy theme assets: %w", err))
		}
		result.AssetsBuilt = contentSummary.Built + themeSummary.Built
		result.AssetsSkipped = contentSummary.Skipped + themeSummary.Skipped
	}

	if !opts.DryRun && !opts.AssetsOnly && len(errs) == 0 {
		manifest.BuildID = result.BuildID
		manifest.GeneratedAt = buildCtx.GeneratedAt
		manifest.prunePages(pageKeys)
		if s.cfg.CopyAssets {
			manifest.pruneAssets(assetKeys)
		}
		if err := s.persistManifest(ctx, manifest); err != nil {
			errs = append(errs, err)
		}
	}

	result.Duration = s.now().Sub(start)
	s.logger.Info("build finished",
		"build_id", result.BuildID,
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"assets_built", result.AssetsBuilt,
		"assets_skipped", result.AssetsSkipped,
		"duration", result.Duration.String(),
		"dry_run", result.DryRun,
	)

	if len(errs) > 0 {
		return result, errors.Join(errs...)
	}
	return result, nil
}

// Clean removes every artifact under the store root, including the manifest,
// so the next build starts from scratch.
func (s *service) Clean(ctx context.Context) error {
	if err := s.deps.Store.RemoveAll(ctx, "."); err != nil {
		return fmt.Errorf("generator: clean output: %w", err)
	}
	s.logger.Info("output directory cleaned")
	return nil
}

// renderPages fans specs out to a bounded worker pool. Each worker renders or
// skips its page; results come back in spec order.
func (s *service) renderPages(
	ctx context.Context,
	specs []pageSpec,
	site SiteMetadata,
	build BuildMetadata,
	buildCtx *BuildContext,
	manifest *buildManifest,
) []renderOutcome {
	outcomes := make([]renderOutcome, len(specs))
	jobs := make(chan int)

	workers := s.cfg.Workers
	if workers > len(specs) {
		workers = len(specs)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = s.renderPage(ctx, specs[idx], site, build, buildCtx, manifest)
			}
		}()
	}

	for idx := range specs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (s *service) renderPage(
	ctx context.Context,
	spec pageSpec,
	site SiteMetadata,
	build BuildMetadata,
	buildCtx *BuildContext,
	manifest *buildManifest,
) renderOutcome {
	started := s.now()
	output := buildOutputPath(spec.Route)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return renderOutcome{
			err: ctxErr,
			diagnostic: RenderDiagnostic{
				Slug:     spec.Slug,
				Route:    spec.Route,
				Template: spec.Template,
				Err:      ctxErr,
			},
		}
	}

	if s.incremental(buildCtx.Options) && manifest.shouldSkipPage(spec.Slug, spec.Hash, output) {
		entry, _ := manifest.lookupPage(spec.Slug)
		return renderOutcome{
			skipped: true,
			page: RenderedPage{
				Slug:         spec.Slug,
				Route:        spec.Route,
				Output:       output,
				Template:     spec.Template,
				Hash:         spec.Hash,
				Checksum:     entry.Checksum,
				LastModified: spec.LastMod,
			},
			diagnostic: RenderDiagnostic{
				Slug:     spec.Slug,
				Route:    spec.Route,
				Template: spec.Template,
				Skipped:  true,
			},
		}
	}

	data := TemplateContext{
		Site:  site,
		Page:  spec.Context,
		Build: build,
		Theme: buildCtx.Theme,
	}
	html, err := s.deps.Renderer.Render(spec.Template, data)
	elapsed := s.now().Sub(started)
	if err != nil {
		renderErr := fmt.Errorf("generator: render %s with %s: %w", spec.Slug, spec.Template, err)
		return renderOutcome{
			err: renderErr,
			diagnostic: RenderDiagnostic{
				Slug:     spec.Slug,
				Route:    spec.Route,
				Template: spec.Template,
				Duration: elapsed,
				Err:      renderErr,
			},
		}
	}

	return renderOutcome{
		page: RenderedPage{
			Slug:         spec.Slug,
			Route:        spec.Route,
			Output:       output,
			Template:     spec.Template,
			HTML:         html,
			Hash:         spec.Hash,
			Checksum:     computeHashFromString(html),
			LastModified: spec.LastMod,
			Duration:     elapsed,
		},
		diagnostic: RenderDiagnostic{
			Slug:     spec.Slug,
			Route:    spec.Route,
			Template: spec.Template,
			Duration: elapsed,
		},
	}
}

func (s *service) persistPage(ctx context.Context, page RenderedPage) error {
	req := storage.WriteRequest{
		Path:        page.Output,
		Content:     strings.NewReader(page.HTML),
		Size:        int64(len(page.HTML)),
		Category:    storage.CategoryPage,
		ContentType: "text/html; charset=utf-8",
		Checksum:    page.Checksum,
		Metadata: map[string]string{
			"slug":  page.Slug,
			"route": page.Route,
		},
	}
	if err := s.deps.Store.WriteFile(ctx, req); err != nil {
		return fmt.Errorf("generator: write %s: %w", page.Output, err)
	}
	return nil
}

func (s *service) writeDiscoveryArtifacts(ctx context.Context, site SiteMetadata, pages []RenderedPage, generatedAt time.Time) error {
	var errs []error
	if s.cfg.GenerateSitemap {
		sitemap := buildSitemap(site.BaseURL, pages, generatedAt)
		if err := s.writeArtifact(ctx, "sitemap.xml", sitemap, storage.CategorySitemap, "application/xml"); err != nil {
			errs = append(errs, err)
		}
	}
	if s.cfg.GenerateRobots {
		robots := buildRobots(site.BaseURL, s.cfg.GenerateSitemap)
		if err := s.writeArtifact(ctx, "robots.txt", robots, storage.CategoryRobots, "text/plain"); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *service) writeArtifact(ctx context.Context, path, body string, category storage.Category, contentType string) error {
	req := storage.WriteRequest{
		Path:        path,
		Content:     strings.NewReader(body),
		Size:        int64(len(body)),
		Category:    category,
		ContentType: contentType,
		Checksum:    computeHashFromString(body),
	}
	if err := s.deps.Store.WriteFile(ctx, req); err != nil {
		return fmt.Errorf("generator: write %s: %w", path, err)
	}
	return nil
}

func (s *service) loadManifest(ctx context.Context) (*buildManifest, error) {
	data, err := s.deps.Store.ReadFile(ctx, manifestFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newBuildManifest(), nil
		}
		return nil, err
	}
	return parseManifest(data)
}

func (s *service) persistManifest(ctx context.Context, manifest *buildManifest) error {
	data, err := manifest.marshal()
	if err != nil {
		return fmt.Errorf("generator: marshal manifest: %w", err)
	}
	req := storage.WriteRequest{
		Path:        manifestFileName,
		Content:     strings.NewReader(string(data)),
		Size:        int64(len(data)),
		Category:    storage.CategoryManifest,
		ContentType: "application/json",
		Checksum:    computeHash(data),
	}
	if err := s.deps.Store.WriteFile(ctx, req); err != nil {
		return fmt.Errorf("generator: write manifest: %w", err)
	}
	return nil
}
