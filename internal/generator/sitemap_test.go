package generator

import (
	"strings"
	"testing"
	"time"
)

func TestBuildSitemap(t *testing.T) {
	fallback := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	pages := []RenderedPage{
		{Route: "/getting-started/", LastModified: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)},
		{Route: "/"},
		{Route: "/getting-started/"},
	}

	sitemap := buildSitemap("https://labs.example.com/", pages, fallback)

	if !strings.Contains(sitemap, "<loc>https://labs.example.com/getting-started/</loc>") {
		t.Fatalf("missing tutorial url:\n%s", sitemap)
	}
	if !strings.Contains(sitemap, "<loc>https://labs.example.com/</loc>") {
		t.Fatalf("missing root url:\n%s", sitemap)
	}
	if strings.Count(sitemap, "https://labs.example.com/getting-started/") != 1 {
		t.Fatalf("duplicate routes must collapse:\n%s", sitemap)
	}
	if !strings.Contains(sitemap, "<lastmod>2026-02-01T10:00:00Z</lastmod>") {
		t.Fatalf("missing page lastmod:\n%s", sitemap)
	}
	if !strings.Contains(sitemap, "<lastmod>2026-03-01T00:00:00Z</lastmod>") {
		t.Fatalf("missing fallback lastmod:\n%s", sitemap)
	}
}

func TestBuildRobots(t *testing.T) {
	robots := buildRobots("https://labs.example.com", true)
	if !strings.Contains(robots, "User-agent: *") || !strings.Contains(robots, "Allow: /") {
		t.Fatalf("unexpected robots body:\n%s", robots)
	}
	if !strings.Contains(robots, "Sitemap: https://labs.example.com/sitemap.xml") {
		t.Fatalf("missing sitemap hint:\n%s", robots)
	}

	withoutSitemap := buildRobots("https://labs.example.com", false)
	if strings.Contains(withoutSitemap, "Sitemap:") {
		t.Fatalf("sitemap hint should be absent:\n%s", withoutSitemap)
	}
}
