package steps

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-codelab/pkg/interfaces"
)

const defaultStepTemplate = `<section class="step" id="{{ .Anchor }}">
  <header class="step-header">
    <h2 class="step-title">{{ .Ordinal }}. {{ .Label }}</h2>
    {{- if .Duration }}
    <span class="step-duration">{{ .Duration }}</span>
    {{- end }}
  </header>
  <div class="step-body">
{{ .Body }}
  </div>
</section>`

// Renderer expands parsed steps into the HTML sections embedded in tutorial
// pages. The step body is Markdown and goes through the supplied parser; the
// surrounding section markup comes from an html/template so themes can
// override it.
type Renderer struct {
	markdown interfaces.MarkdownParser
	tmpl     *template.Template
}

// NewRenderer builds a renderer around the given Markdown parser. An empty
// templateText selects the built-in section template.
func NewRenderer(markdown interfaces.MarkdownParser, templateText string) (*Renderer, error) {
	if markdown == nil {
		return nil, fmt.Errorf("steps: renderer requires a markdown parser")
	}
	if templateText == "" {
		templateText = defaultStepTemplate
	}
	tmpl, err := template.New("step").Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("steps: parse step template: %w", err)
	}
	return &Renderer{markdown: markdown, tmpl: tmpl}, nil
}

type stepView struct {
	Ordinal  int
	Label    string
	Anchor   string
	Duration string
	Body     template.HTML
}

// Render expands one step into its HTML section. Index is zero-based; the
// displayed ordinal and anchor suffix are one-based.
func (r *Renderer) Render(ctx interfaces.StepContext, step interfaces.ParsedStep, index int) (template.HTML, error) {
	if ctx.Context != nil {
		if err := ctx.Context.Err(); err != nil {
			return "", err
		}
	}

	body, err := r.markdown.Parse([]byte(step.Inner))
	if err != nil {
		return "", fmt.Errorf("steps: render step %q: %w", step.Label, err)
	}

	html := string(body)
	if ctx.Sanitizer != nil {
		html, err = ctx.Sanitizer.Sanitize(html)
		if err != nil {
			return "", fmt.Errorf("steps: step %q: %w", step.Label, err)
		}
	}

	view := stepView{
		Ordinal: index + 1,
		Label:   step.Label,
		Anchor:  Anchor(step.Label, index),
		Body:    template.HTML(html),
	}
	if !step.Duration.IsZero() {
		view.Duration = step.Duration.String()
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("steps: execute step template for %q: %w", step.Label, err)
	}
	return template.HTML(buf.String()), nil
}

// Anchor derives the stable fragment id for a step heading. The one-based
// ordinal suffix keeps repeated labels unique within a page.
func Anchor(label string, index int) string {
	normalized, err := slug.Normalize(label)
	if err != nil || normalized == "" {
		normalized = "step"
	}
	return normalized + "-" + strconv.Itoa(index+1)
}

// TotalDuration sums the authored step durations so linters can compare the
// aggregate against the front-matter estimate.
func TotalDuration(parsed []interfaces.ParsedStep) interfaces.Duration {
	var total interfaces.Duration
	for _, step := range parsed {
		total += step.Duration
	}
	return total
}
