package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-codelab/internal/content"
	"github.com/goliatone/go-codelab/internal/linter"
	"github.com/goliatone/go-codelab/internal/steps"
	"github.com/goliatone/go-codelab/internal/taxonomy"
	"github.com/goliatone/go-codelab/internal/themes"
	"github.com/goliatone/go-codelab/pkg/interfaces"
)

// BuildContext carries everything a build run needs once the corpus has been
// loaded, linted, and assembled.
type BuildContext struct {
	Index           *content.Index
	Registry        *taxonomy.Registry
	LintReport      linter.Report
	Selection       *gotheme.Selection
	Theme           themes.Context
	SiteTitle       string
	SiteDescription string
	GeneratedAt     time.Time
	Options         BuildOptions
}

// loadContext runs the front half of the pipeline: load documents, lint,
// expand steps, assemble the corpus index, and resolve the theme.
func (s *service) loadContext(ctx context.Context, opts BuildOptions) (*BuildContext, error) {
	docs, err := s.deps.Markdown.LoadDirectory(ctx, ".", interfaces.LoadOptions{})
	if err != nil {
		return nil, fmt.Errorf("generator: load corpus: %w", err)
	}

	if !s.cfg.IncludeDrafts {
		kept := docs[:0]
		for _, doc := range docs {
			if !doc.FrontMatter.Draft {
				kept = append(kept, doc)
			}
		}
		docs = kept
	}

	buildCtx := &BuildContext{
		Registry:        s.deps.Registry,
		SiteTitle:       s.cfg.SiteTitle,
		SiteDescription: s.cfg.SiteDescription,
		GeneratedAt:     s.now().UTC(),
		Options:         opts,
	}

	buildCtx.LintReport = s.deps.Linter.Lint(docs)
	if err := linter.BuildError(buildCtx.LintReport); err != nil {
		return buildCtx, err
	}

	tutorials := make([]*content.Tutorial, 0, len(docs))
	for _, doc := range docs {
		tutorial, err := s.assembleTutorial(ctx, doc)
		if err != nil {
			return buildCtx, err
		}
		tutorials = append(tutorials, tutorial)
	}

	index, err := content.BuildIndex(tutorials)
	if err != nil {
		return buildCtx, fmt.Errorf("generator: index corpus: %w", err)
	}
	buildCtx.Index = index

	selection, err := s.resolveTheme()
	if err != nil {
		return buildCtx, err
	}
	buildCtx.Selection = selection
	buildCtx.Theme = themes.BuildContext(selection, themes.ContextConfig{
		CSSVariablePrefix: s.cfg.CSSVariablePrefix,
		CategoryColors:    s.deps.Registry.Colors(),
	})

	return buildCtx, nil
}

// assembleTutorial expands a linted document into its renderable form: slug,
// intro HTML, and one rendered section per step in authored order.
func (s *service) assembleTutorial(ctx context.Context, doc *interfaces.Document) (*content.Tutorial, error) {
	tutorial, err := content.NewTutorial(doc)
	if err != nil {
		return nil, fmt.Errorf("generator: assemble %s: %w", doc.FilePath, err)
	}

	intro, parsed, err := s.deps.Steps.Extract(string(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("generator: extract steps from %s: %w", doc.FilePath, err)
	}

	tutorial.Intro = []byte(intro)
	if strings.TrimSpace(intro) != "" {
		introHTML, err := s.deps.Markdown.Render(ctx, []byte(intro), interfaces.ParseOptions{})
		if err != nil {
			return nil, fmt.Errorf("generator: render intro of %s: %w", doc.FilePath, err)
		}
		tutorial.IntroHTML = introHTML
	}

	stepCtx := interfaces.StepContext{
		Context:   ctx,
		BaseURL:   s.cfg.BaseURL,
		Sanitizer: s.deps.Sanitizer,
	}
	tutorial.Steps = make([]content.Step, 0, len(parsed))
	for i, parsedStep := range parsed {
		rendered, err := s.deps.StepRenderer.Render(stepCtx, parsedStep, i)
		if err != nil {
			return nil, fmt.Errorf("generator: render step %d of %s: %w", i+1, doc.FilePath, err)
		}
		tutorial.Steps = append(tutorial.Steps, content.Step{
			Label:    parsedStep.Label,
			Anchor:   steps.Anchor(parsedStep.Label, i),
			Duration: parsedStep.Duration,
			Body:     []byte(parsedStep.Inner),
			BodyHTML: []byte(rendered),
		})
	}

	return tutorial, nil
}

func (s *service) resolveTheme() (*gotheme.Selection, error) {
	if s.deps.Themes == nil || strings.TrimSpace(s.cfg.ThemeDir) == "" {
		return nil, nil
	}
	theme := themes.Theme{
		Name: s.cfg.ThemeName,
		Path: s.cfg.ThemeDir,
	}
	if theme.Name == "" {
		theme.Name = "default"
	}
	selection, err := s.deps.Themes.Selection(theme, s.cfg.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("generator: resolve theme: %w", err)
	}
	return selection, nil
}
