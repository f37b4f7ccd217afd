package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	manifestFileName    = ".codelab-manifest.json"
	manifestFileVersion = 1
)

// buildManifest stores metadata about the last successful build to support
// incremental runs. It is the in-memory form; serialization goes through
// manifestDocument.
type buildManifest struct {
	Version     int
	BuildID     string
	GeneratedAt time.Time
	Pages       map[string]manifestPage
	Assets      map[string]manifestAsset
	Metadata    map[string]json.RawMessage
}

// manifestDocument is the on-disk shape. Entries are sorted arrays so the
// persisted file stays deterministic and diffs cleanly across builds.
type manifestDocument struct {
	Version     int                        `json:"version"`
	BuildID     string                     `json:"build_id,omitempty"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Pages       []manifestPage             `json:"pages"`
	Assets      []manifestAsset            `json:"assets"`
	Metadata    map[string]json.RawMessage `json:"metadata,omitempty"`
}

type manifestPage struct {
	Slug         string    `json:"slug"`
	Route        string    `json:"route"`
	Output       string    `json:"output"`
	Template     string    `json:"template"`
	Hash         string    `json:"hash"`
	Checksum     string    `json:"checksum"`
	LastModified time.Time `json:"last_modified"`
	RenderedAt   time.Time `json:"rendered_at"`
}

type manifestAsset struct {
	Source   string    `json:"source"`
	Output   string    `json:"output"`
	Checksum string    `json:"checksum"`
	Size     int64     `json:"size"`
	CopiedAt time.Time `json:"copied_at"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Pages:   map[string]manifestPage{},
		Assets:  map[string]manifestAsset{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	var doc manifestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}

	manifest := newBuildManifest()
	manifest.BuildID = doc.BuildID
	manifest.GeneratedAt = doc.GeneratedAt
	manifest.Metadata = doc.Metadata
	if doc.Version != 0 {
		manifest.Version = doc.Version
	}
	// setPage/setAsset re-normalize the keys, so manifests written by hand
	// or by older builds still index correctly.
	for _, entry := range doc.Pages {
		manifest.setPage(entry)
	}
	for _, entry := range doc.Assets {
		manifest.setAsset(entry)
	}
	return manifest, nil
}

func (m *buildManifest) marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}

	doc := manifestDocument{
		Version:     m.Version,
		BuildID:     m.BuildID,
		GeneratedAt: m.GeneratedAt,
		Metadata:    m.Metadata,
	}
	if doc.Version == 0 {
		doc.Version = manifestFileVersion
	}
	if len(m.Pages) > 0 {
		doc.Pages = make([]manifestPage, 0, len(m.Pages))
		for _, entry := range m.Pages {
			doc.Pages = append(doc.Pages, entry)
		}
		sort.Slice(doc.Pages, func(i, j int) bool {
			return doc.Pages[i].Slug < doc.Pages[j].Slug
		})
	}
	if len(m.Assets) > 0 {
		doc.Assets = make([]manifestAsset, 0, len(m.Assets))
		for _, entry := range m.Assets {
			doc.Assets = append(doc.Assets, entry)
		}
		sort.Slice(doc.Assets, func(i, j int) bool {
			return doc.Assets[i].Source < doc.Assets[j].Source
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

func (m *buildManifest) pageKey(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func (m *buildManifest) lookupPage(slug string) (manifestPage, bool) {
	if m == nil || len(m.Pages) == 0 {
		return manifestPage{}, false
	}
	entry, ok := m.Pages[m.pageKey(slug)]
	return entry, ok
}

func (m *buildManifest) setPage(entry manifestPage) {
	if m == nil {
		return
	}
	if m.Pages == nil {
		m.Pages = map[string]manifestPage{}
	}
	m.Pages[m.pageKey(entry.Slug)] = entry
}

// shouldSkipPage reports whether the page's inputs are unchanged since the
// recorded build and its artifact would land at the same path.
func (m *buildManifest) shouldSkipPage(slug, hash, output string) bool {
	entry, ok := m.lookupPage(slug)
	if !ok {
		return false
	}
	if entry.Hash != hash {
		return false
	}
	return strings.TrimSpace(entry.Output) == strings.TrimSpace(output)
}

func (m *buildManifest) lookupAsset(source string) (manifestAsset, bool) {
	if m == nil || len(m.Assets) == 0 {
		return manifestAsset{}, false
	}
	entry, ok := m.Assets[strings.TrimSpace(source)]
	return entry, ok
}

func (m *buildManifest) setAsset(entry manifestAsset) {
	if m == nil {
		return
	}
	if m.Assets == nil {
		m.Assets = map[string]manifestAsset{}
	}
	m.Assets[strings.TrimSpace(entry.Source)] = entry
}

func (m *buildManifest) shouldSkipAsset(source, checksum, output string) bool {
	entry, ok := m.lookupAsset(source)
	if !ok {
		return false
	}
	if entry.Checksum != checksum {
		return false
	}
	return strings.TrimSpace(entry.Output) == strings.TrimSpace(output)
}

// prunePages drops manifest entries for pages the current corpus no longer
// produces so deleted tutorials do not linger across builds.
func (m *buildManifest) prunePages(keys map[string]struct{}) {
	if m == nil || len(m.Pages) == 0 {
		return
	}
	for key := range m.Pages {
		if _, ok := keys[key]; !ok {
			delete(m.Pages, key)
		}
	}
}

func (m *buildManifest) pruneAssets(keys map[string]struct{}) {
	if m == nil || len(m.Assets) == 0 {
		return
	}
	for key := range m.Assets {
		if _, ok := keys[key]; !ok {
			delete(m.Assets, key)
		}
	}
}
