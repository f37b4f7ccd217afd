package generator

import (
	"bytes"
	"testing"
	"time"
)

func TestManifestRoundTrip(t *testing.T) {
	manifest := newBuildManifest()
	manifest.BuildID = "build-1"
	manifest.GeneratedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	manifest.setPage(manifestPage{
		Slug:     "Getting-Started",
		Route:    "/getting-started/",
		Output:   "getting-started/index.html",
		Template: templateTutorial,
		Hash:     "abc",
		Checksum: "def",
	})
	manifest.setAsset(manifestAsset{
		Source:   "content::images/diagram.png",
		Output:   "assets/images/diagram.png",
		Checksum: "123",
		Size:     42,
	})

	data, err := manifest.marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if parsed.BuildID != "build-1" {
		t.Fatalf("build id lost in round trip: %q", parsed.BuildID)
	}
	if !parsed.GeneratedAt.Equal(manifest.GeneratedAt) {
		t.Fatalf("generated time lost in round trip: %s", parsed.GeneratedAt)
	}
	if parsed.Version != manifestFileVersion {
		t.Fatalf("unexpected manifest version %d", parsed.Version)
	}

	// Page keys are case-insensitive on the slug.
	entry, ok := parsed.lookupPage("getting-started")
	if !ok {
		t.Fatal("expected page entry after round trip")
	}
	if entry.Output != "getting-started/index.html" || entry.Hash != "abc" {
		t.Fatalf("unexpected page entry: %+v", entry)
	}
	if _, ok := parsed.lookupAsset("content::images/diagram.png"); !ok {
		t.Fatal("expected asset entry after round trip")
	}
}

func TestManifestMarshalIsDeterministic(t *testing.T) {
	build := func() *buildManifest {
		m := newBuildManifest()
		m.GeneratedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		m.setPage(manifestPage{Slug: "b", Output: "b/index.html"})
		m.setPage(manifestPage{Slug: "a", Output: "a/index.html"})
		m.setAsset(manifestAsset{Source: "content::z.png"})
		m.setAsset(manifestAsset{Source: "content::a.png"})
		return m
	}

	first, err := build().marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := build().marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("manifest serialization is not deterministic")
	}
}

func TestManifestSkipChecks(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{Slug: "intro", Hash: "h1", Output: "intro/index.html"})

	if !manifest.shouldSkipPage("intro", "h1", "intro/index.html") {
		t.Fatal("unchanged page should skip")
	}
	if manifest.shouldSkipPage("intro", "h2", "intro/index.html") {
		t.Fatal("changed hash must not skip")
	}
	if manifest.shouldSkipPage("intro", "h1", "elsewhere/index.html") {
		t.Fatal("moved output must not skip")
	}
	if manifest.shouldSkipPage("unknown", "h1", "intro/index.html") {
		t.Fatal("unknown page must not skip")
	}

	manifest.setAsset(manifestAsset{Source: "content::a.png", Checksum: "c1", Output: "assets/a.png"})
	if !manifest.shouldSkipAsset("content::a.png", "c1", "assets/a.png") {
		t.Fatal("unchanged asset should skip")
	}
	if manifest.shouldSkipAsset("content::a.png", "c2", "assets/a.png") {
		t.Fatal("changed asset must not skip")
	}
}

func TestManifestPrune(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{Slug: "keep"})
	manifest.setPage(manifestPage{Slug: "drop"})
	manifest.setAsset(manifestAsset{Source: "content::keep.png"})
	manifest.setAsset(manifestAsset{Source: "content::drop.png"})

	manifest.prunePages(map[string]struct{}{"keep": {}})
	manifest.pruneAssets(map[string]struct{}{"content::keep.png": {}})

	if _, ok := manifest.lookupPage("keep"); !ok {
		t.Fatal("kept page pruned")
	}
	if _, ok := manifest.lookupPage("drop"); ok {
		t.Fatal("stale page survived prune")
	}
	if _, ok := manifest.lookupAsset("content::drop.png"); ok {
		t.Fatal("stale asset survived prune")
	}
}
