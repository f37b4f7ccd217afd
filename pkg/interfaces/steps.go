package interfaces

import (
	"context"
	"html/template"
)

// StepParser extracts the paired step markers that divide a tutorial body
// into titled, timed sections.
type StepParser interface {
	// Parse returns the ordered steps found in content.
	Parse(content string) ([]ParsedStep, error)
	// Extract returns the content preceding the first step marker (the
	// tutorial intro) alongside the ordered steps.
	Extract(content string) (intro string, steps []ParsedStep, err error)
}

// StepRenderer expands a parsed step into the HTML section emitted on the
// rendered page.
type StepRenderer interface {
	Render(ctx StepContext, step ParsedStep, index int) (template.HTML, error)
}

// StepSanitizer encapsulates the conservative sanitisation applied to step
// output before it is embedded into a page.
type StepSanitizer interface {
	Sanitize(html string) (string, error)
	ValidateAttributes(attrs map[string]string) error
}

// ParsedStep represents one step section as authored: the marker's label and
// duration attributes plus the raw inner Markdown between the marker pair.
// Order within the document is significant and preserved.
type ParsedStep struct {
	Label    string
	Duration Duration
	Inner    string
}

// StepContext provides runtime metadata surfaced while rendering a step.
type StepContext struct {
	Context   context.Context
	BaseURL   string
	Sanitizer StepSanitizer
}
