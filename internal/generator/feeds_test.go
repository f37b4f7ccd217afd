package generator

import (
	"strings"
	"testing"
	"time"
)

func TestBuildRSSFeed(t *testing.T) {
	generated := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	site := SiteMetadata{
		BaseURL:     "https://labs.example.com",
		Title:       "Example Codelabs",
		Description: "Hands-on tutorials.",
	}
	items := []feedItem{
		{
			Title:       "Deploy to Cloud Run",
			Summary:     "Ship a container & run it.",
			Link:        "https://labs.example.com/getting-started/",
			GUID:        "getting-started",
			PublishedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Title: "Queue Basics",
			Link:  "https://labs.example.com/queue-basics/",
			GUID:  "queue-basics",
		},
	}

	feed := buildRSSFeed(site, items, generated)

	if !strings.Contains(feed, "<title>Example Codelabs</title>") {
		t.Fatalf("missing channel title:\n%s", feed)
	}
	if !strings.Contains(feed, "<description>Ship a container &amp; run it.</description>") {
		t.Fatalf("summary must be escaped:\n%s", feed)
	}
	if !strings.Contains(feed, `<guid isPermaLink="false">getting-started</guid>`) {
		t.Fatalf("missing guid:\n%s", feed)
	}
	// Items without a publish date inherit the build timestamp.
	if !strings.Contains(feed, generated.Format(time.RFC1123Z)) {
		t.Fatalf("missing fallback pubDate:\n%s", feed)
	}
}

func TestAbsoluteURL(t *testing.T) {
	cases := []struct {
		base, route, want string
	}{
		{"https://labs.example.com", "/intro/", "https://labs.example.com/intro/"},
		{"https://labs.example.com/", "intro/", "https://labs.example.com/intro/"},
		{"", "/intro/", "http://localhost/intro/"},
		{"https://labs.example.com", "", "https://labs.example.com"},
	}
	for _, tc := range cases {
		if got := absoluteURL(tc.base, tc.route); got != tc.want {
			t.Errorf("absoluteURL(%q, %q) = %q, want %q", tc.base, tc.route, got, tc.want)
		}
	}
}
