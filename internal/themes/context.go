package themes

import (
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// Context surfaces the resolved theme to templates: design tokens, CSS
// variables (including one per category color), partial routing, and asset
// URL resolution.
type Context struct {
	Name      string
	Variant   string
	Tokens    map[string]string
	CSSVars   map[string]string
	Partials  map[string]string
	AssetURL  func(string) string
	Template  func(string, string) string
	Selection *gotheme.Selection
}

// ContextConfig tunes how theme data is exposed to templates.
type ContextConfig struct {
	// CSSVariablePrefix prefixes generated CSS custom properties
	// (default "--theme-").
	CSSVariablePrefix string
	// PartialFallbacks routes partial slots to default template names.
	PartialFallbacks map[string]string
	// CategoryColors maps category name to hex color; each entry becomes a
	// token and a CSS variable so pages can color-code by main category.
	CategoryColors map[string]string
}

// BuildContext assembles the template-facing theme context. A nil selection
// still yields a usable context carrying the category palette.
func BuildContext(selection *gotheme.Selection, cfg ContextConfig) Context {
	prefix := strings.TrimSpace(cfg.CSSVariablePrefix)
	if prefix == "" {
		prefix = "--theme-"
	}

	ctx := Context{
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: map[string]string{},
		AssetURL: func(string) string { return "" },
		Template: func(_ string, fallback string) string { return fallback },
	}

	if selection != nil {
		ctx.Name = selection.Theme
		ctx.Variant = selection.Variant
		ctx.Tokens = selection.Tokens()
		ctx.CSSVars = selection.CSSVariables(prefix)
		ctx.Partials = selection.Partials(cfg.PartialFallbacks)
		ctx.AssetURL = func(key string) string { url, _ := selection.Asset(key); return url }
		ctx.Template = selection.Template
		ctx.Selection = selection
	}

	for _, name := range sortedKeys(cfg.CategoryColors) {
		color := cfg.CategoryColors[name]
		ctx.Tokens["category."+name] = color
		ctx.CSSVars[prefix+"category-"+name] = color
	}

	return ctx
}

// CategoryColor resolves the color token for a main category, falling back to
// the provided default when the palette has no entry.
func (c Context) CategoryColor(name, fallback string) string {
	if color, ok := c.Tokens["category."+strings.ToLower(strings.TrimSpace(name))]; ok {
		return color
	}
	return fallback
}

func sortedKeys(input map[string]string) []string {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
