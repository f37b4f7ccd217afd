package steps

import (
	"fmt"
	"regexp"
	"strings"
)

var scriptTagPattern = regexp.MustCompile(`(?i)<\s*script\b`)

// Sanitizer applies the conservative screening used on step markers and
// their rendered output. It rejects rather than rewrites: authoring-time
// content that trips it should be fixed at the source.
type Sanitizer struct{}

// NewSanitizer creates the default sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize rejects rendered HTML containing script tags.
func (s *Sanitizer) Sanitize(html string) (string, error) {
	if scriptTagPattern.MatchString(html) {
		return "", fmt.Errorf("steps: rendered step contains a script tag")
	}
	return html, nil
}

// ValidateAttributes rejects marker attributes that smuggle behaviour:
// on* event handlers and javascript: values.
func (s *Sanitizer) ValidateAttributes(attrs map[string]string) error {
	for key, value := range attrs {
		lowerKey := strings.ToLower(key)
		if strings.HasPrefix(lowerKey, "on") {
			return fmt.Errorf("steps: attribute %q is not allowed", key)
		}
		lowerValue := strings.ToLower(strings.TrimSpace(value))
		if strings.HasPrefix(lowerValue, "javascript:") || scriptTagPattern.MatchString(value) {
			return fmt.Errorf("steps: attribute %q has a disallowed value", key)
		}
	}
	return nil
}
