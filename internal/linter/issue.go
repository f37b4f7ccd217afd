package linter

import "fmt"

// Severity grades a lint finding. Error-severity findings fail the build;
// warnings are reported but do not block.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule identifiers, stable for tooling and suppression lists.
const (
	RuleFrontMatterRequired = "front-matter/required"
	RuleFrontMatterSchema   = "front-matter/schema"
	RuleTitleLength         = "front-matter/title-length"
	RuleStepMarkers         = "steps/markers"
	RuleDurationMismatch    = "steps/duration-mismatch"
	RuleCategoryUnknown     = "category/unknown"
	RuleAssetMissing        = "assets/missing"
)

// Issue is one lint finding against a document.
type Issue struct {
	Rule     string
	Severity Severity
	Path     string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s [%s] %s", i.Path, i.Severity, i.Rule, i.Message)
}

// Report aggregates the findings over a corpus.
type Report struct {
	Issues []Issue
}

// HasErrors reports whether any finding carries error severity.
func (r Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts returns the number of errors and warnings in the report.
func (r Report) Counts() (errors, warnings int) {
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
