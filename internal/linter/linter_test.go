package linter

import (
	"testing"
	"testing/fstest"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-codelab/pkg/interfaces"
)

func testDocument() *interfaces.Document {
	doc := &interfaces.Document{
		FilePath: "gcp/getting-started.md",
		FrontMatter: interfaces.FrontMatter{
			Title:      "Getting Started",
			Categories: []string{"gcp", "cloud-run"},
			Date:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		Body: []byte(`intro

{{< step label="One" duration="5:00" >}}
![diagram](/assets/images/getting-started/diagram.png)
{{< /step >}}
`),
	}
	doc.FrontMatter.Duration, _ = interfaces.ParseDuration("5:00")
	return doc
}

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"images/getting-started/diagram.png": &fstest.MapFile{Data: []byte("png")},
	}
}

func TestLint_CleanDocument(t *testing.T) {
	l := New(Config{Assets: testAssets()})

	report := l.Lint([]*interfaces.Document{testDocument()})
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", report.Issues)
	}
	if report.HasErrors() {
		t.Fatal("clean report must not flag errors")
	}
}

func TestLint_RequiredFrontMatter(t *testing.T) {
	l := New(Config{Assets: testAssets()})

	doc := testDocument()
	doc.FrontMatter.Title = ""
	doc.FrontMatter.Date = time.Time{}

	issues := l.LintDocument(doc)

	var required int
	for _, issue := range issues {
		if issue.Rule == RuleFrontMatterRequired {
			required++
			if issue.Severity != SeverityError {
				t.Fatalf("required front matter must be an error, got %s", issue.Severity)
			}
		}
	}
	if required != 2 {
		t.Fatalf("expected 2 required-field findings, got %d (%v)", required, issues)
	}
}

func TestLint_UnpairedStepMarker(t *testing.T) {
	l := New(Config{Assets: testAssets()})

	doc := testDocument()
	doc.Body = []byte(`{{< step label="Broken" >}}` + "\nno closer\n")

	issues := l.LintDocument(doc)
	if !hasRule(issues, RuleStepMarkers, SeverityError) {
		t.Fatalf("expected step marker error, got %v", issues)
	}
}

func TestLint_UnknownCategoryWarns(t *testing.T) {
	l := New(Config{Assets: testAssets()})

	doc := testDocument()
	doc.FrontMatter.Categories = []string{"quantum-basketry"}

	issues := l.LintDocument(doc)
	if !hasRule(issues, RuleCategoryUnknown, SeverityWarning) {
		t.Fatalf("expected unknown-category warning, got %v", issues)
	}

	// Warnings alone never fail the build.
	report := Report{Issues: issues}
	if report.HasErrors() {
		t.Fatal("fallback categories are accepted, not errors")
	}
}

func TestLint_MissingAssetReference(t *testing.T) {
	l := New(Config{Assets: testAssets()})

	doc := testDocument()
	doc.Body = []byte("![gone](/assets/images/getting-started/missing.png)\n")

	issues := l.LintDocument(doc)
	if !hasRule(issues, RuleAssetMissing, SeverityError) {
		t.Fatalf("expected missing-asset error, got %v", issues)
	}
}

func TestLint_DurationMismatchWarns(t *testing.T) {
	l := New(Config{Assets: testAssets()})

	doc := testDocument()
	doc.FrontMatter.Duration, _ = interfaces.ParseDuration("30:00")

	issues := l.LintDocument(doc)
	if !hasRule(issues, RuleDurationMismatch, SeverityWarning) {
		t.Fatalf("expected duration-mismatch warning, got %v", issues)
	}
}

func TestLint_TitleLengthWarns(t *testing.T) {
	l := New(Config{Assets: testAssets(), MaxTitleLength: 10})

	doc := testDocument()
	doc.FrontMatter.Title = "A title that is clearly longer than ten characters"

	issues := l.LintDocument(doc)
	if !hasRule(issues, RuleTitleLength, SeverityWarning) {
		t.Fatalf("expected title-length warning, got %v", issues)
	}
}

func TestLint_SchemaValidation(t *testing.T) {
	l := New(Config{
		Assets: testAssets(),
		Schema: map[string]any{
			"fields": []any{
				map[string]any{"name": "feedback_link", "type": "string", "required": true},
			},
		},
	})

	doc := testDocument()
	doc.FrontMatter.Custom = map[string]any{}

	issues := l.LintDocument(doc)
	if !hasRule(issues, RuleFrontMatterSchema, SeverityError) {
		t.Fatalf("expected schema error, got %v", issues)
	}
}

func TestBuildError(t *testing.T) {
	if err := BuildError(Report{}); err != nil {
		t.Fatalf("empty report must not error, got %v", err)
	}

	report := Report{Issues: []Issue{{
		Rule:     RuleFrontMatterRequired,
		Severity: SeverityError,
		Path:     "broken.md",
		Message:  "title is required",
	}}}
	err := BuildError(report)
	if err == nil {
		t.Fatal("expected build error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func hasRule(issues []Issue, rule string, severity Severity) bool {
	for _, issue := range issues {
		if issue.Rule == rule && issue.Severity == severity {
			return true
		}
	}
	return false
}
