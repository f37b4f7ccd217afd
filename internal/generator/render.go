package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-codelab/internal/content"
	"github.com/goliatone/go-codelab/internal/taxonomy"
	"github.com/goliatone/go-codelab/internal/themes"
)

// Page template names resolved against the theme directory.
const (
	templateTutorial = "tutorial.html"
	templateIndex    = "index.html"
	templateCategory = "category.html"
	templateTag      = "tag.html"
)

// Page kinds surfaced to templates.
const (
	pageKindTutorial = "tutorial"
	pageKindIndex    = "index"
	pageKindCategory = "category"
	pageKindTag      = "tag"
)

// TemplateContext is the data contract passed to theme templates.
type TemplateContext struct {
	Site  SiteMetadata
	Page  PageContext
	Build BuildMetadata
	Theme themes.Context
}

// SiteMetadata exposes site-wide information to templates.
type SiteMetadata struct {
	BaseURL     string
	Title       string
	Description string
	Categories  []CategoryListing
	Tags        []string
}

// CategoryListing pairs a category with the tutorials filed under it, for
// navigation and the landing page.
type CategoryListing struct {
	Category taxonomy.Category
	Count    int
	Route    string
}

// BuildMetadata surfaces build information to templates.
type BuildMetadata struct {
	ID          string
	GeneratedAt time.Time
	Options     BuildOptions
}

// PageContext is the per-page payload. Kind selects which fields are set:
// tutorial pages carry Tutorial/Intro/Steps, listing pages carry Tutorials
// and, for category and tag pages, the Term being filtered.
type PageContext struct {
	Kind      string
	Title     string
	Route     string
	Tutorial  *content.Tutorial
	Intro     template.HTML
	Steps     []template.HTML
	Category  taxonomy.Resolution
	Term      string
	Tutorials []*content.Tutorial
}

// pageSpec is one unit of render work.
type pageSpec struct {
	Slug     string
	Route    string
	Template string
	Hash     string
	LastMod  time.Time
	Context  PageContext
}

// RenderedPage captures the rendered HTML output for a page.
type RenderedPage struct {
	Slug         string
	Route        string
	Output       string
	Template     string
	HTML         string
	Hash         string
	Checksum     string
	LastModified time.Time
	Duration     time.Duration
}

// RenderDiagnostic records rendering timing and errors for individual pages.
type RenderDiagnostic struct {
	Slug     string
	Route    string
	Template string
	Duration time.Duration
	Skipped  bool
	Err      error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
	skipped    bool
}

// collectPageSpecs enumerates every page a build produces: one per tutorial,
// the landing page, one per category, one per tag. Listing-page hashes derive
// from member slugs and checksums so membership changes trigger re-renders.
func collectPageSpecs(buildCtx *BuildContext) []pageSpec {
	index := buildCtx.Index
	specs := make([]pageSpec, 0, len(index.Tutorials)+len(index.ByCategory)+len(index.ByTag)+1)

	for _, tutorial := range index.Tutorials {
		steps := make([]template.HTML, len(tutorial.Steps))
		for i, step := range tutorial.Steps {
			steps[i] = template.HTML(step.BodyHTML)
		}
		specs = append(specs, pageSpec{
			Slug:     tutorial.Slug,
			Route:    tutorial.Route(),
			Template: templateTutorial,
			Hash:     hex.EncodeToString(tutorial.Checksum),
			LastMod:  tutorial.LastModified,
			Context: PageContext{
				Kind:     pageKindTutorial,
				Title:    tutorial.Title(),
				Route:    tutorial.Route(),
				Tutorial: tutorial,
				Intro:    template.HTML(tutorial.IntroHTML),
				Steps:    steps,
				Category: buildCtx.Registry.Resolve(tutorial.FrontMatter.MainCategory()),
			},
		})
	}

	specs = append(specs, pageSpec{
		Slug:     "index",
		Route:    "/",
		Template: templateIndex,
		Hash:     listingHash("index", index.Tutorials),
		LastMod:  newestModification(index.Tutorials),
		Context: PageContext{
			Kind:      pageKindIndex,
			Title:     buildCtx.SiteTitle,
			Route:     "/",
			Tutorials: index.Tutorials,
		},
	})

	for _, category := range index.Categories() {
		members := index.ByCategory[category]
		route := "/categories/" + category + "/"
		specs = append(specs, pageSpec{
			Slug:     "categories/" + category,
			Route:    route,
			Template: templateCategory,
			Hash:     listingHash("category:"+category, members),
			LastMod:  newestModification(members),
			Context: PageContext{
				Kind:      pageKindCategory,
				Title:     index.CategoryLabel(category),
				Route:     route,
				Term:      category,
				Category:  buildCtx.Registry.Resolve(category),
				Tutorials: members,
			},
		})
	}

	for _, tag := range index.Tags() {
		members := index.ByTag[tag]
		route := "/tags/" + tag + "/"
		specs = append(specs, pageSpec{
			Slug:     "tags/" + tag,
			Route:    route,
			Template: templateTag,
			Hash:     listingHash("tag:"+tag, members),
			LastMod:  newestModification(members),
			Context: PageContext{
				Kind:      pageKindTag,
				Title:     index.TagLabel(tag),
				Route:     route,
				Term:      tag,
				Tutorials: members,
			},
		})
	}

	return specs
}

func buildSiteMetadata(buildCtx *BuildContext, baseURL string) SiteMetadata {
	index := buildCtx.Index
	meta := SiteMetadata{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Title:       buildCtx.SiteTitle,
		Description: buildCtx.SiteDescription,
		Tags:        index.Tags(),
	}
	for _, category := range index.Categories() {
		resolution := buildCtx.Registry.Resolve(category)
		meta.Categories = append(meta.Categories, CategoryListing{
			Category: resolution.Category,
			Count:    len(index.ByCategory[category]),
			Route:    "/categories/" + category + "/",
		})
	}
	return meta
}

// listingHash fingerprints a listing page from its members so unchanged
// listings can be skipped on incremental builds.
func listingHash(seed string, members []*content.Tutorial) string {
	parts := make([]string, 0, len(members)+1)
	parts = append(parts, seed)
	for _, tutorial := range members {
		parts = append(parts, tutorial.Slug+"@"+hex.EncodeToString(tutorial.Checksum))
	}
	sort.Strings(parts[1:])
	sum := sha256.Sum256([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(sum[:])
}

func newestModification(members []*content.Tutorial) time.Time {
	var newest time.Time
	for _, tutorial := range members {
		if tutorial.LastModified.After(newest) {
			newest = tutorial.LastModified
		}
	}
	return newest
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}
