package content

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-codelab/pkg/interfaces"
)

func tutorialFixture(t *testing.T, slug, title, date, main string, tags ...string) *Tutorial {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse date %s: %v", date, err)
	}
	return &Tutorial{
		Slug:       slug,
		SourcePath: "tutorials/" + slug + ".md",
		FrontMatter: interfaces.FrontMatter{
			Title:      title,
			Date:       parsed,
			Categories: []string{main, "tutorial"},
			Tags:       tags,
		},
	}
}

func TestBuildIndex_OrdersByDateDescending(t *testing.T) {
	idx, err := BuildIndex([]*Tutorial{
		tutorialFixture(t, "older", "Older", "2025-01-01", "gcp"),
		tutorialFixture(t, "newer", "Newer", "2026-01-01", "gcp"),
		tutorialFixture(t, "between", "Between", "2025-06-15", "web"),
	})
	if err != nil {
		t.Fatalf("BuildIndex() unexpected error: %v", err)
	}

	got := []string{idx.Tutorials[0].Slug, idx.Tutorials[1].Slug, idx.Tutorials[2].Slug}
	want := []string{"newer", "between", "older"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestBuildIndex_TitleBreaksDateTies(t *testing.T) {
	idx, err := BuildIndex([]*Tutorial{
		tutorialFixture(t, "bravo", "Bravo", "2026-01-01", "gcp"),
		tutorialFixture(t, "alpha", "Alpha", "2026-01-01", "gcp"),
	})
	if err != nil {
		t.Fatalf("BuildIndex() unexpected error: %v", err)
	}
	if idx.Tutorials[0].Slug != "alpha" {
		t.Fatalf("expected alpha first, got %s", idx.Tutorials[0].Slug)
	}
}

func TestBuildIndex_GroupsByCategoryAndTag(t *testing.T) {
	idx, err := BuildIndex([]*Tutorial{
		tutorialFixture(t, "one", "One", "2026-01-01", "gcp", "kubernetes", "ai"),
		tutorialFixture(t, "two", "Two", "2026-01-02", "GCP", "Kubernetes"),
		tutorialFixture(t, "three", "Three", "2026-01-03", "web"),
	})
	if err != nil {
		t.Fatalf("BuildIndex() unexpected error: %v", err)
	}

	if len(idx.ByCategory["gcp"]) != 2 {
		t.Fatalf("expected 2 gcp tutorials, got %d", len(idx.ByCategory["gcp"]))
	}
	if len(idx.ByTag["kubernetes"]) != 2 {
		t.Fatalf("expected kubernetes tag to merge casings, got %d", len(idx.ByTag["kubernetes"]))
	}
	if got := idx.Categories(); len(got) != 2 || got[0] != "gcp" || got[1] != "web" {
		t.Fatalf("unexpected categories: %v", got)
	}
}

func TestBuildIndex_RejectsDuplicateSlugs(t *testing.T) {
	_, err := BuildIndex([]*Tutorial{
		tutorialFixture(t, "same", "First", "2026-01-01", "gcp"),
		tutorialFixture(t, "same", "Second", "2026-01-02", "web"),
	})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestNewTutorial_DerivesSlugFromFileName(t *testing.T) {
	doc := &interfaces.Document{
		FilePath: "tutorials/Getting Started With GKE.md",
		FrontMatter: interfaces.FrontMatter{
			Title: "Getting Started",
		},
	}

	tutorial, err := NewTutorial(doc)
	if err != nil {
		t.Fatalf("NewTutorial() unexpected error: %v", err)
	}
	if tutorial.Slug != "getting-started-with-gke" {
		t.Fatalf("unexpected slug %q", tutorial.Slug)
	}
	if tutorial.Route() != "/getting-started-with-gke/" {
		t.Fatalf("unexpected route %q", tutorial.Route())
	}
}

func TestStepsDuration_SumsAuthoredDurations(t *testing.T) {
	five, _ := interfaces.ParseDuration("5:00")
	twoThirty, _ := interfaces.ParseDuration("2:30")

	tutorial := &Tutorial{Steps: []Step{{Duration: five}, {Duration: twoThirty}}}

	if got := tutorial.StepsDuration().String(); got != "07:30" {
		t.Fatalf("expected 07:30, got %s", got)
	}
}
