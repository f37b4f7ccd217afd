package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTestServer(t *testing.T, rebuild RebuildFunc) (*Server, string) {
	t.Helper()
	outputDir := t.TempDir()
	srv, err := NewServer(Config{OutputDir: outputDir}, rebuild)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv, outputDir
}

func writePage(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestNewServerRequiresOutputDir(t *testing.T) {
	if _, err := NewServer(Config{}, nil); err == nil {
		t.Fatal("expected error for missing output dir")
	}
}

func TestServerDefaults(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	if srv.Addr() != "localhost:8080" {
		t.Fatalf("unexpected default addr %q", srv.Addr())
	}
	if srv.cfg.Debounce != defaultDebounce {
		t.Fatalf("unexpected default debounce %v", srv.cfg.Debounce)
	}
}

func TestHandlerServesPagesWithoutCaching(t *testing.T) {
	srv, outputDir := newTestServer(t, nil)
	writePage(t, outputDir, "index.html", "<h1>home</h1>")
	writePage(t, outputDir, "getting-started/index.html", "<h1>lab</h1>")

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/getting-started/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Cache-Control"); got != "no-cache, no-store, must-revalidate" {
		t.Fatalf("unexpected cache header %q", got)
	}
}

func TestHandlerRejectsDirectoriesWithoutIndex(t *testing.T) {
	srv, outputDir := newTestServer(t, nil)
	writePage(t, outputDir, "assets/styles.css", "body{}")

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/assets/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for directory without index, got %d", resp.StatusCode)
	}
}

func TestRunFailsWhenInitialBuildFails(t *testing.T) {
	buildErr := os.ErrPermission
	srv, _ := newTestServer(t, func(context.Context) error { return buildErr })

	err := srv.Run(context.Background())
	if err == nil {
		t.Fatal("expected initial build failure to abort Run")
	}
	count, last := srv.LastRebuild()
	if count != 1 || last != buildErr {
		t.Fatalf("unexpected rebuild state: count=%d err=%v", count, last)
	}
}
