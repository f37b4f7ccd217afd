package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"
)

// Index orders the corpus for listing pages: all tutorials newest-first plus
// deterministic category and tag groupings. Grouping keys are normalized
// slugs so filter routes stay stable regardless of authored casing.
type Index struct {
	Tutorials  []*Tutorial
	ByCategory map[string][]*Tutorial
	ByTag      map[string][]*Tutorial

	categoryLabels map[string]string
	tagLabels      map[string]string
}

// BuildIndex assembles the corpus index. Tutorials are sorted by date
// descending with title as the tiebreak; duplicate slugs are rejected so
// two source files can never fight over one output path.
func BuildIndex(tutorials []*Tutorial) (*Index, error) {
	idx := &Index{
		Tutorials:      append([]*Tutorial(nil), tutorials...),
		ByCategory:     map[string][]*Tutorial{},
		ByTag:          map[string][]*Tutorial{},
		categoryLabels: map[string]string{},
		tagLabels:      map[string]string{},
	}

	seen := map[string]string{}
	for _, tutorial := range idx.Tutorials {
		if previous, ok := seen[tutorial.Slug]; ok {
			return nil, fmt.Errorf("%w: %s claimed by %s and %s", ErrDuplicateSlug, tutorial.Slug, previous, tutorial.SourcePath)
		}
		seen[tutorial.Slug] = tutorial.SourcePath
	}

	sort.SliceStable(idx.Tutorials, func(i, j int) bool {
		a, b := idx.Tutorials[i], idx.Tutorials[j]
		if !a.FrontMatter.Date.Equal(b.FrontMatter.Date) {
			return a.FrontMatter.Date.After(b.FrontMatter.Date)
		}
		return a.FrontMatter.Title < b.FrontMatter.Title
	})

	for _, tutorial := range idx.Tutorials {
		if main := strings.TrimSpace(tutorial.FrontMatter.MainCategory()); main != "" {
			key := normalizeKey(main)
			idx.ByCategory[key] = append(idx.ByCategory[key], tutorial)
			if _, ok := idx.categoryLabels[key]; !ok {
				idx.categoryLabels[key] = main
			}
		}
		for _, tag := range tutorial.FrontMatter.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			key := normalizeKey(tag)
			idx.ByTag[key] = append(idx.ByTag[key], tutorial)
			if _, ok := idx.tagLabels[key]; !ok {
				idx.tagLabels[key] = tag
			}
		}
	}

	return idx, nil
}

// Categories returns the category keys present in the corpus, sorted.
func (idx *Index) Categories() []string {
	return sortedKeys(idx.ByCategory)
}

// Tags returns the tag keys present in the corpus, sorted.
func (idx *Index) Tags() []string {
	return sortedKeys(idx.ByTag)
}

// CategoryLabel returns the authored spelling for a category key.
func (idx *Index) CategoryLabel(key string) string {
	if label, ok := idx.categoryLabels[key]; ok {
		return label
	}
	return key
}

// TagLabel returns the authored spelling for a tag key.
func (idx *Index) TagLabel(key string) string {
	if label, ok := idx.tagLabels[key]; ok {
		return label
	}
	return key
}

// Lookup returns the tutorial with the given slug.
func (idx *Index) Lookup(slugValue string) (*Tutorial, bool) {
	for _, tutorial := range idx.Tutorials {
		if tutorial.Slug == slugValue {
			return tutorial, true
		}
	}
	return nil, false
}

func normalizeKey(value string) string {
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return normalized
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
