package markdown

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-codelab/pkg/interfaces"
)

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, true)

	doc, err := svc.Load(context.Background(), "getting-started.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.FrontMatter.Title != "Getting Started" {
		t.Fatalf("expected title from front matter, got %q", doc.FrontMatter.Title)
	}
	if doc.FrontMatter.MainCategory() != "gcp" {
		t.Fatalf("expected main category gcp, got %q", doc.FrontMatter.MainCategory())
	}
	if doc.FrontMatter.Duration.String() != "10:00" {
		t.Fatalf("expected duration 10:00, got %s", doc.FrontMatter.Duration)
	}
	if len(doc.BodyHTML) == 0 {
		t.Fatalf("expected BodyHTML to be populated")
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
}

func TestServiceLoad_CustomFrontMatterKeys(t *testing.T) {
	svc := newTestService(t, true)

	doc, err := svc.Load(context.Background(), "getting-started.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.FrontMatter.Custom["feedback_link"] != "https://example.com/issues" {
		t.Fatalf("expected custom key preserved, got %#v", doc.FrontMatter.Custom)
	}
	if doc.FrontMatter.Raw["title"] != "Getting Started" {
		t.Fatalf("expected raw map to include declared keys, got %#v", doc.FrontMatter.Raw)
	}
}

func TestServiceLoadDirectory(t *testing.T) {
	svc := newTestService(t, true)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	var foundNested bool
	for _, doc := range docs {
		if filepath.Ext(doc.FilePath) != ".md" {
			t.Fatalf("expected markdown file, got %s", doc.FilePath)
		}
		if len(doc.Checksum) == 0 {
			t.Fatalf("expected checksum set for %s", doc.FilePath)
		}
		if doc.FilePath == "cloud/deploy-functions.md" {
			foundNested = true
		}
	}

	if !foundNested {
		t.Fatalf("expected to include cloud/deploy-functions.md")
	}
}

func TestServiceLoadDirectory_NonRecursiveOverride(t *testing.T) {
	svc := newTestService(t, true)

	no := false
	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{
		Recursive: &no,
	})
	if err != nil {
		t.Fatalf("LoadDirectory override: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if strings.Contains(doc.FilePath, "/") {
			t.Fatalf("non-recursive load must stay in the root, got %s", doc.FilePath)
		}
	}
}

func TestServiceRender_TableExtension(t *testing.T) {
	svc := newTestService(t, true)

	html, err := svc.Render(context.Background(), []byte("| a | b |\n|---|---|\n| 1 | 2 |\n"), interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Fatalf("expected GFM table output, got %s", html)
	}
}

func newTestService(tb testing.TB, recursive bool) *Service {
	tb.Helper()

	base := tb.TempDir()
	writeFixture(tb, base, "getting-started.md", `---
title: Getting Started
categories:
  - gcp
  - cloud-run
tags:
  - beginner
duration: "10:00"
authors: Ada Lovelace
date: 2026-05-01T00:00:00Z
feedback_link: https://example.com/issues
---
# Welcome

First tutorial body.
`)
	writeFixture(tb, base, "second.md", `---
title: Second
categories:
  - web
duration: "5:00"
---
Second body.
`)
	writeFixture(tb, base, "cloud/deploy-functions.md", `---
title: Deploy Functions
categories:
  - gcp
duration: "20:00"
---
Nested body.
`)

	svc, err := NewService(Config{
		BasePath:  base,
		Pattern:   "**/*.md",
		Recursive: recursive,
	}, nil)
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc
}

func writeFixture(tb testing.TB, base, rel, content string) {
	tb.Helper()

	full := filepath.Join(base, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		tb.Fatalf("mkdir fixture dir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		tb.Fatalf("write fixture %s: %v", rel, err)
	}
}
