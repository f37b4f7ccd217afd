package pipelinecmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-codelab/internal/generator"
	"github.com/goliatone/go-codelab/internal/linter"
)

const (
	buildSiteMessageType  = "codelab.pipeline.build"
	lintCorpusMessageType = "codelab.pipeline.lint"
	cleanSiteMessageType  = "codelab.pipeline.clean"
)

// BuildResultCallback receives the build result produced by generator runs.
// The callback is optional and invoked synchronously from the handler.
type BuildResultCallback func(*generator.BuildResult)

// LintReportCallback receives the lint report, including on failed runs so
// callers can print findings before surfacing the error.
type LintReportCallback func(linter.Report)

// BuildSiteCommand executes a generator build.
type BuildSiteCommand struct {
	Force          bool                `json:"force,omitempty"`
	DryRun         bool                `json:"dry_run,omitempty"`
	AssetsOnly     bool                `json:"assets_only,omitempty"`
	ResultCallback BuildResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate rejects option combinations that cannot do useful work.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	if m.DryRun && m.AssetsOnly {
		errs["assets_only"] = validation.NewError(
			"codelab.pipeline.build.options_conflict",
			"assets_only and dry_run cannot be combined")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LintCorpusCommand lints the corpus without building.
type LintCorpusCommand struct {
	// Strict promotes warnings to failures.
	Strict         bool               `json:"strict,omitempty"`
	ReportCallback LintReportCallback `json:"-"`
}

// Type implements command.Message.
func (LintCorpusCommand) Type() string { return lintCorpusMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (LintCorpusCommand) Validate() error { return nil }

// CleanSiteCommand clears generated artifacts from the output store.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	GeneratorEnabled func() bool
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return false
	}
	return g.GeneratorEnabled()
}
