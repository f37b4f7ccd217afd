package pipelinecmd

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-codelab/internal/commands"
	"github.com/goliatone/go-codelab/internal/generator"
	"github.com/goliatone/go-codelab/internal/linter"
	"github.com/goliatone/go-codelab/internal/logging"
	"github.com/goliatone/go-codelab/pkg/interfaces"
)

// BuildSiteHandler orchestrates generator builds using the shared command handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided generator service.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}

		result, err := service.Build(ctx, generator.BuildOptions{
			Force:      msg.Force,
			DryRun:     msg.DryRun,
			AssetsOnly: msg.AssetsOnly,
		})
		if msg.ResultCallback != nil && result != nil {
			msg.ResultCallback(result)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("pipeline.build"),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if msg.Force {
				fields["force"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.AssetsOnly {
				fields["assets_only"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LintCorpusHandler loads the corpus and reports lint findings without
// producing output artifacts.
type LintCorpusHandler struct {
	inner *commands.Handler[LintCorpusCommand]
}

// NewLintCorpusHandler constructs a handler that lints every document the
// markdown service can discover.
func NewLintCorpusHandler(markdown interfaces.MarkdownService, linterSvc *linter.Linter, logger interfaces.Logger, opts ...commands.HandlerOption[LintCorpusCommand]) *LintCorpusHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}
	if linterSvc == nil {
		linterSvc = linter.New(linter.Config{})
	}

	exec := func(ctx context.Context, msg LintCorpusCommand) error {
		if markdown == nil {
			return goerrors.Wrap(errors.New("markdown service is not configured"),
				goerrors.CategoryCommand, "lint unavailable").
				WithTextCode("LINT_UNAVAILABLE")
		}

		docs, err := markdown.LoadDirectory(ctx, ".", interfaces.LoadOptions{})
		if err != nil {
			return fmt.Errorf("lint: load corpus: %w", err)
		}

		report := linterSvc.Lint(docs)
		if msg.ReportCallback != nil {
			msg.ReportCallback(report)
		}

		if err := linter.BuildError(report); err != nil {
			return err
		}
		if msg.Strict {
			if _, warnings := report.Counts(); warnings > 0 {
				return goerrors.Wrap(
					fmt.Errorf("lint failed in strict mode with %d warnings", warnings),
					goerrors.CategoryValidation, "strict lint failed",
				).WithTextCode("LINT_STRICT_FAILED")
			}
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LintCorpusCommand]{
		commands.WithLogger[LintCorpusCommand](baseLogger),
		commands.WithOperation[LintCorpusCommand]("pipeline.lint"),
		commands.WithMessageFields(func(msg LintCorpusCommand) map[string]any {
			fields := map[string]any{}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintCorpusCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintCorpusHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LintCorpusCommand].
func (h *LintCorpusHandler) Execute(ctx context.Context, msg LintCorpusCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanSiteHandler clears generator artifacts.
type CleanSiteHandler struct {
	inner *commands.Handler[CleanSiteCommand]
}

// NewCleanSiteHandler constructs a handler that cleans generator output.
func NewCleanSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[CleanSiteCommand]) *CleanSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CleanSiteCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}
		return service.Clean(ctx)
	}

	handlerOpts := []commands.HandlerOption[CleanSiteCommand]{
		commands.WithLogger[CleanSiteCommand](baseLogger),
		commands.WithOperation[CleanSiteCommand]("pipeline.clean"),
		commands.WithTelemetry(commands.DefaultTelemetry[CleanSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CleanSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CleanSiteCommand].
func (h *CleanSiteHandler) Execute(ctx context.Context, msg CleanSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
