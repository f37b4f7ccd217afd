package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-codelab/pkg/interfaces"
)

func TestGoldmarkParser_Defaults(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nSome ~~old~~ text with https://example.com\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, `<h1 id="heading">`) {
		t.Fatalf("expected auto heading id, got %s", out)
	}
	if !strings.Contains(out, "<del>old</del>") {
		t.Fatalf("expected strikethrough rendering, got %s", out)
	}
	if !strings.Contains(out, `<a href="https://example.com"`) {
		t.Fatalf("expected linkified URL, got %s", out)
	}
}

func TestGoldmarkParser_SafeModeSuppressesRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("before\n\n<script>alert(1)</script>\n"), interfaces.ParseOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("raw HTML must be suppressed in safe mode, got %s", html)
	}
}

func TestParseFrontMatter_MissingBlock(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("just a body\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "" {
		t.Fatalf("expected empty metadata, got %#v", fm)
	}
	if !strings.Contains(string(body), "just a body") {
		t.Fatalf("body must survive without front matter, got %s", body)
	}
}

func TestParseFrontMatter_CategoriesPair(t *testing.T) {
	fm, _, err := ParseFrontMatter([]byte(`---
title: Pair
categories:
  - gcp
  - cloud-run
---
body
`))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.MainCategory() != "gcp" || fm.SubCategory() != "cloud-run" {
		t.Fatalf("unexpected category pair: %#v", fm.Categories)
	}
}
