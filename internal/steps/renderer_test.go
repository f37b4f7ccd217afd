package steps

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-codelab/internal/markdown"
	"github.com/goliatone/go-codelab/pkg/interfaces"
)

func TestRenderer_RendersSection(t *testing.T) {
	renderer, err := NewRenderer(markdown.NewGoldmarkParser(interfaces.ParseOptions{}), "")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	step := interfaces.ParsedStep{
		Label: "Create the cluster",
		Inner: "Run `gcloud container clusters create`.",
	}
	step.Duration, _ = interfaces.ParseDuration("8:00")

	html, err := renderer.Render(interfaces.StepContext{Context: context.Background()}, step, 0)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, `id="create-the-cluster-1"`) {
		t.Fatalf("expected anchored section, got %s", out)
	}
	if !strings.Contains(out, "1. Create the cluster") {
		t.Fatalf("expected numbered title, got %s", out)
	}
	if !strings.Contains(out, "08:00") {
		t.Fatalf("expected duration badge, got %s", out)
	}
	if !strings.Contains(out, "<code>gcloud container clusters create</code>") {
		t.Fatalf("expected rendered markdown body, got %s", out)
	}
}

func TestRenderer_SanitizerBlocksScript(t *testing.T) {
	renderer, err := NewRenderer(markdown.NewGoldmarkParser(interfaces.ParseOptions{}), "")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	step := interfaces.ParsedStep{
		Label: "Evil",
		Inner: "<script>alert(1)</script>",
	}
	_, err = renderer.Render(interfaces.StepContext{
		Context:   context.Background(),
		Sanitizer: NewSanitizer(),
	}, step, 0)
	if err == nil {
		t.Fatal("expected sanitizer to reject script content")
	}
}

func TestAnchor_FallsBackForEmptyLabel(t *testing.T) {
	if got := Anchor("???", 2); got != "step-3" {
		t.Fatalf("expected fallback anchor step-3, got %s", got)
	}
}
