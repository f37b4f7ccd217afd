// Package linter runs authoring-time diagnostics over a loaded tutorial
// corpus: required front matter, step marker pairing, category registry
// membership, and asset reference resolution.
package linter

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-codelab/internal/logging"
	"github.com/goliatone/go-codelab/internal/steps"
	"github.com/goliatone/go-codelab/internal/taxonomy"
	schemavalidation "github.com/goliatone/go-codelab/internal/validation"
	"github.com/goliatone/go-codelab/pkg/interfaces"
)

// assetRefPattern matches the corpus-relative image references tutorials use.
var assetRefPattern = regexp.MustCompile(`/assets/images/[^\s"')\]>]+`)

const defaultMaxTitleLength = 60

// Config wires the linter's collaborators.
type Config struct {
	// Registry is the recognised main-category set.
	Registry *taxonomy.Registry
	// Steps parses paired step markers. When nil a default parser is used.
	Steps interfaces.StepParser
	// Assets is the filesystem the public /assets/ prefix maps onto. When
	// nil, asset reference checks are skipped.
	Assets fs.FS
	// Schema optionally validates custom front-matter metadata.
	Schema map[string]any
	// MaxTitleLength bounds the title-length warning (default 60).
	MaxTitleLength int
	// Logger receives per-document diagnostics.
	Logger interfaces.Logger
}

// Linter checks tutorial documents and reports findings as values. Findings
// never abort the run; callers decide whether error-severity findings fail
// the build.
type Linter struct {
	registry       *taxonomy.Registry
	steps          interfaces.StepParser
	assets         fs.FS
	schema         map[string]any
	maxTitleLength int
	logger         interfaces.Logger
}

// New constructs a linter. A nil registry falls back to the built-in set.
func New(cfg Config) *Linter {
	registry := cfg.Registry
	if registry == nil {
		registry = taxonomy.Default()
	}
	parser := cfg.Steps
	if parser == nil {
		parser = steps.NewParser(steps.NewSanitizer())
	}
	maxTitle := cfg.MaxTitleLength
	if maxTitle <= 0 {
		maxTitle = defaultMaxTitleLength
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Linter{
		registry:       registry,
		steps:          parser,
		assets:         cfg.Assets,
		schema:         cfg.Schema,
		maxTitleLength: maxTitle,
		logger:         logger,
	}
}

// Lint checks every document and aggregates the findings.
func (l *Linter) Lint(docs []*interfaces.Document) Report {
	var report Report
	for _, doc := range docs {
		report.Issues = append(report.Issues, l.LintDocument(doc)...)
	}
	errs, warns := report.Counts()
	l.logger.Info("lint finished", "documents", len(docs), "errors", errs, "warnings", warns)
	return report
}

// LintDocument checks a single document.
func (l *Linter) LintDocument(doc *interfaces.Document) []Issue {
	if doc == nil {
		return nil
	}

	var issues []Issue
	issues = append(issues, l.checkRequiredFrontMatter(doc)...)
	issues = append(issues, l.checkSchema(doc)...)
	issues = append(issues, l.checkTitleLength(doc)...)
	issues = append(issues, l.checkCategory(doc)...)

	parsed, stepIssues := l.checkStepMarkers(doc)
	issues = append(issues, stepIssues...)
	issues = append(issues, l.checkDurationSum(doc, parsed)...)
	issues = append(issues, l.checkAssetReferences(doc)...)
	return issues
}

func (l *Linter) checkRequiredFrontMatter(doc *interfaces.Document) []Issue {
	required := struct {
		Title string
		Date  time.Time
	}{
		Title: strings.TrimSpace(doc.FrontMatter.Title),
		Date:  doc.FrontMatter.Date,
	}

	err := validation.ValidateStruct(&required,
		validation.Field(&required.Title, validation.Required.Error("title is required")),
		validation.Field(&required.Date, validation.Required.Error("date is required")),
	)
	if err == nil {
		return nil
	}

	var issues []Issue
	if fieldErrors, ok := err.(validation.Errors); ok {
		fields := make([]string, 0, len(fieldErrors))
		for field := range fieldErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			issues = append(issues, Issue{
				Rule:     RuleFrontMatterRequired,
				Severity: SeverityError,
				Path:     doc.FilePath,
				Message:  fieldErrors[field].Error(),
			})
		}
		return issues
	}
	return []Issue{{
		Rule:     RuleFrontMatterRequired,
		Severity: SeverityError,
		Path:     doc.FilePath,
		Message:  err.Error(),
	}}
}

func (l *Linter) checkSchema(doc *interfaces.Document) []Issue {
	if len(l.schema) == 0 {
		return nil
	}
	err := schemavalidation.ValidateMetadata(l.schema, doc.FrontMatter.Custom)
	if err == nil {
		return nil
	}
	var issues []Issue
	for _, issue := range schemavalidation.Issues(err) {
		message := issue.Message
		if issue.Location != "" {
			message = issue.Location + ": " + message
		}
		issues = append(issues, Issue{
			Rule:     RuleFrontMatterSchema,
			Severity: SeverityError,
			Path:     doc.FilePath,
			Message:  message,
		})
	}
	return issues
}

func (l *Linter) checkTitleLength(doc *interfaces.Document) []Issue {
	title := strings.TrimSpace(doc.FrontMatter.Title)
	if len([]rune(title)) <= l.maxTitleLength {
		return nil
	}
	return []Issue{{
		Rule:     RuleTitleLength,
		Severity: SeverityWarning,
		Path:     doc.FilePath,
		Message:  fmt.Sprintf("title is %d characters, recommended maximum is %d", len([]rune(title)), l.maxTitleLength),
	}}
}

func (l *Linter) checkCategory(doc *interfaces.Document) []Issue {
	main := strings.TrimSpace(doc.FrontMatter.MainCategory())
	if main == "" {
		return []Issue{{
			Rule:     RuleCategoryUnknown,
			Severity: SeverityWarning,
			Path:     doc.FilePath,
			Message:  "no main category; page will use the uncategorized fallback",
		}}
	}
	if res := l.registry.Resolve(main); res.Fallback {
		return []Issue{{
			Rule:     RuleCategoryUnknown,
			Severity: SeverityWarning,
			Path:     doc.FilePath,
			Message:  fmt.Sprintf("main category %q is not in the registry; page will use the uncategorized fallback", main),
		}}
	}
	return nil
}

func (l *Linter) checkStepMarkers(doc *interfaces.Document) ([]interfaces.ParsedStep, []Issue) {
	parsed, err := l.steps.Parse(string(doc.Body))
	if err != nil {
		return nil, []Issue{{
			Rule:     RuleStepMarkers,
			Severity: SeverityError,
			Path:     doc.FilePath,
			Message:  err.Error(),
		}}
	}
	return parsed, nil
}

func (l *Linter) checkDurationSum(doc *interfaces.Document, parsed []interfaces.ParsedStep) []Issue {
	declared := doc.FrontMatter.Duration
	total := steps.TotalDuration(parsed)
	if declared.IsZero() || total.IsZero() || declared == total {
		return nil
	}
	return []Issue{{
		Rule:     RuleDurationMismatch,
		Severity: SeverityWarning,
		Path:     doc.FilePath,
		Message:  fmt.Sprintf("front-matter duration %s does not match step total %s", declared, total),
	}}
}

func (l *Linter) checkAssetReferences(doc *interfaces.Document) []Issue {
	if l.assets == nil {
		return nil
	}

	refs := assetRefPattern.FindAllString(string(doc.Body), -1)
	if len(refs) == 0 {
		return nil
	}

	var issues []Issue
	seen := map[string]struct{}{}
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}

		rel := strings.TrimPrefix(ref, "/assets/")
		if _, err := fs.Stat(l.assets, rel); err != nil {
			issues = append(issues, Issue{
				Rule:     RuleAssetMissing,
				Severity: SeverityError,
				Path:     doc.FilePath,
				Message:  fmt.Sprintf("asset reference %s does not resolve to a file", ref),
			})
		}
	}
	return issues
}

// BuildError converts a report with error-severity findings into a build
// failure. A clean (or warnings-only) report yields nil.
func BuildError(report Report) error {
	if !report.HasErrors() {
		return nil
	}
	errs, warns := report.Counts()
	messages := make([]string, 0, len(report.Issues))
	for _, issue := range report.Issues {
		if issue.Severity == SeverityError {
			messages = append(messages, issue.String())
		}
	}
	return goerrors.Wrap(
		fmt.Errorf("%s", strings.Join(messages, "; ")),
		goerrors.CategoryValidation,
		fmt.Sprintf("lint failed with %d errors and %d warnings", errs, warns),
	).WithTextCode("LINT_FAILED")
}
