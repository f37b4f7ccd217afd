package generator

import (
	"path"
	"strings"
)

// buildOutputPath maps a site route to its on-disk artifact. Routes render as
// directory indexes so deployed URLs stay extension free.
func buildOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}
