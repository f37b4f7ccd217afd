package taxonomy

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// FallbackName is the explicit bucket for documents whose main category is
// not in the registry. Unknown categories are accepted but always resolve
// here so styling never silently mismatches.
const FallbackName = "uncategorized"

// FallbackColor is the neutral color applied to the fallback bucket.
const FallbackColor = "#9e9e9e"

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Category is one recognised main category with its display metadata.
type Category struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	Color string `yaml:"color"`
}

// Validate enforces the registry entry contract.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.By(func(value any) error {
			name := value.(string)
			if strings.TrimSpace(name) == "" {
				return validation.NewError("codelab.taxonomy.name_required", "category name is required")
			}
			if name != strings.ToLower(strings.TrimSpace(name)) {
				return validation.NewError("codelab.taxonomy.name_lowercase", "category name must be lowercase")
			}
			return nil
		})),
		validation.Field(&c.Color, validation.Required, validation.Match(hexColorPattern).
			Error("color must be a #RGB or #RRGGBB hex value")),
	)
}

// Registry holds the recognised main-category set. The zero value is not
// usable; construct via Default or Load.
type Registry struct {
	categories map[string]Category
}

// Default returns the built-in category set shipped with the pipeline.
func Default() *Registry {
	reg := &Registry{categories: map[string]Category{}}
	for _, category := range builtinCategories() {
		reg.categories[category.Name] = category
	}
	return reg
}

// Load reads a YAML registry file and overlays it on the built-in set.
// Entries with a name already present replace the built-in definition.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read registry %s: %w", path, err)
	}
	return Parse(data)
}

// Parse overlays YAML registry content on the built-in set.
func Parse(data []byte) (*Registry, error) {
	var file struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("taxonomy: parse registry: %w", err)
	}

	reg := Default()
	for i, category := range file.Categories {
		if err := category.Validate(); err != nil {
			return nil, fmt.Errorf("taxonomy: registry entry %d: %w", i, err)
		}
		if category.Title == "" {
			category.Title = titleFromName(category.Name)
		}
		reg.categories[category.Name] = category
	}
	return reg, nil
}

// Resolution reports how a main category resolved against the registry.
type Resolution struct {
	Category Category
	// Fallback is true when the authored category was not recognised and
	// the uncategorized bucket was substituted.
	Fallback bool
}

// Resolve maps an authored main category to its registry entry. Matching is
// case-insensitive; unrecognised or empty values resolve to the fallback
// bucket with Fallback set so linters can surface the substitution.
func (r *Registry) Resolve(main string) Resolution {
	key := strings.ToLower(strings.TrimSpace(main))
	if category, ok := r.categories[key]; ok {
		return Resolution{Category: category}
	}
	return Resolution{
		Category: Category{
			Name:  FallbackName,
			Title: titleFromName(FallbackName),
			Color: FallbackColor,
		},
		Fallback: true,
	}
}

// Known reports whether the main category is in the recognised set.
func (r *Registry) Known(main string) bool {
	_, ok := r.categories[strings.ToLower(strings.TrimSpace(main))]
	return ok
}

// Names returns the recognised category names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Colors returns a name → color map suitable for theme token injection.
func (r *Registry) Colors() map[string]string {
	colors := make(map[string]string, len(r.categories)+1)
	for name, category := range r.categories {
		colors[name] = category.Color
	}
	colors[FallbackName] = FallbackColor
	return colors
}

func builtinCategories() []Category {
	return []Category{
		{Name: "gcp", Title: "Google Cloud", Color: "#4285f4"},
		{Name: "aws", Title: "AWS", Color: "#ff9900"},
		{Name: "web", Title: "Web", Color: "#039be5"},
		{Name: "android", Title: "Android", Color: "#3ddc84"},
		{Name: "ios", Title: "iOS", Color: "#999999"},
		{Name: "firebase", Title: "Firebase", Color: "#ffca28"},
		{Name: "ml", Title: "Machine Learning", Color: "#f4511e"},
		{Name: "data", Title: "Data", Color: "#7e57c2"},
		{Name: "devops", Title: "DevOps", Color: "#00897b"},
		{Name: "iot", Title: "IoT", Color: "#5c6bc0"},
		{Name: "security", Title: "Security", Color: "#c62828"},
	}
}

func titleFromName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
