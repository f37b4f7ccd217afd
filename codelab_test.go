package codelab

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pipelinecmd "github.com/goliatone/go-codelab/internal/commands/pipeline"
	"github.com/goliatone/go-codelab/internal/generator"
)

const facadeTutorial = `---
title: First Lab
slug: first-lab
categories:
  - web
tags:
  - html
duration: "03:00"
date: 2026-01-10T00:00:00Z
---

Short intro.

{{< step label="Open the editor" duration="03:00" >}}
Open it.
{{< /step >}}
`

func writeTestFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestModule(t *testing.T) (*Module, string) {
	t.Helper()

	contentDir := t.TempDir()
	writeTestFile(t, contentDir, "first-lab.md", facadeTutorial)

	themeDir := t.TempDir()
	writeTestFile(t, themeDir, "tutorial.html", `<h1>{{ .Page.Title }}</h1>{{ .Page.Intro }}{{ range .Page.Steps }}{{ . }}{{ end }}`)
	writeTestFile(t, themeDir, "index.html", `<h1>{{ .Site.Title }}</h1>`)
	writeTestFile(t, themeDir, "category.html", `<h1>{{ .Page.Title }}</h1>`)
	writeTestFile(t, themeDir, "tag.html", `<h1>{{ .Page.Term }}</h1>`)

	outputDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Site.Title = "Test Labs"
	cfg.Content.Dir = contentDir
	cfg.Assets.Dir = ""
	cfg.Build.OutputDir = outputDir
	cfg.Theme.Dir = themeDir
	// Manifest-driven theme selection needs an on-disk theme manifest; the
	// template renderer alone is enough for these fixtures.
	cfg.Features.Themes = false

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module, outputDir
}

func TestModuleBuildsSite(t *testing.T) {
	module, outputDir := newTestModule(t)

	result, err := module.Generator().Build(context.Background(), generator.BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PagesBuilt == 0 {
		t.Fatal("expected pages to be built")
	}

	page, err := os.ReadFile(filepath.Join(outputDir, "first-lab", "index.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.Contains(string(page), "<h1>First Lab</h1>") {
		t.Fatalf("unexpected page content:\n%s", page)
	}
}

func TestModuleCommandHandlers(t *testing.T) {
	module, outputDir := newTestModule(t)
	ctx := context.Background()

	if err := module.Commands().Lint.Execute(ctx, pipelinecmd.LintCorpusCommand{}); err != nil {
		t.Fatalf("lint command: %v", err)
	}
	if err := module.Commands().Build.Execute(ctx, pipelinecmd.BuildSiteCommand{}); err != nil {
		t.Fatalf("build command: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "index.html")); err != nil {
		t.Fatalf("landing page missing: %v", err)
	}
	if err := module.Commands().Clean.Execute(ctx, pipelinecmd.CleanSiteCommand{}); err != nil {
		t.Fatalf("clean command: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "index.html")); !os.IsNotExist(err) {
		t.Fatalf("clean left landing page: %v", err)
	}
}

func TestModulePreviewRespectsFeatureGate(t *testing.T) {
	module, _ := newTestModule(t)

	if _, err := module.Preview(); err != nil {
		t.Fatalf("Preview: %v", err)
	}

	cfg := module.Config()
	cfg.Features.Preview = false
	gated, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := gated.Preview(); err != ErrPreviewDisabled {
		t.Fatalf("expected ErrPreviewDisabled, got %v", err)
	}
}

func TestModuleGeneratorDisabled(t *testing.T) {
	module, _ := newTestModule(t)
	cfg := module.Config()
	cfg.Features.Generator = false

	disabled, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := disabled.Generator().Build(context.Background(), generator.BuildOptions{}); err == nil {
		t.Fatal("expected disabled generator to reject builds")
	}
}
