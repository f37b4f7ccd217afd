package steps

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-codelab/pkg/interfaces"
)

var (
	openMarkerPattern  = regexp.MustCompile(`\{\{<\s*step\b([^>]*)>\}\}`)
	closeMarkerPattern = regexp.MustCompile(`\{\{<\s*/\s*step\s*>\}\}`)
	attributePattern   = regexp.MustCompile(`([A-Za-z][A-Za-z0-9_-]*)\s*=\s*"([^"]*)"`)
)

// Parser extracts paired step markers from a tutorial body. Markers follow
// the {{< step label="..." duration="..." >}} ... {{< /step >}} form; step
// order is preserved exactly as authored and markers never nest.
type Parser struct {
	sanitizer interfaces.StepSanitizer
}

// NewParser creates a marker parser. A nil sanitizer disables attribute
// screening.
func NewParser(sanitizer interfaces.StepSanitizer) *Parser {
	return &Parser{sanitizer: sanitizer}
}

// Parse returns the ordered steps found in content.
func (p *Parser) Parse(content string) ([]interfaces.ParsedStep, error) {
	_, parsed, err := p.Extract(content)
	return parsed, err
}

// Extract splits content into the intro (everything outside step sections,
// in practice the text before the first marker) and the ordered steps.
func (p *Parser) Extract(content string) (string, []interfaces.ParsedStep, error) {
	var (
		intro    strings.Builder
		parsed   []interfaces.ParsedStep
		position int
		open     *openMarker
	)

	for position < len(content) {
		openLoc := openMarkerPattern.FindStringIndex(content[position:])
		closeLoc := closeMarkerPattern.FindStringIndex(content[position:])

		if openLoc == nil && closeLoc == nil {
			if open != nil {
				return "", nil, fmt.Errorf("%w: step %q", ErrUnpairedOpener, open.label)
			}
			intro.WriteString(content[position:])
			break
		}

		openPos, closePos := -1, -1
		if openLoc != nil {
			openPos = position + openLoc[0]
		}
		if closeLoc != nil {
			closePos = position + closeLoc[0]
		}

		if openPos >= 0 && (closePos == -1 || openPos < closePos) {
			if open != nil {
				return "", nil, fmt.Errorf("%w: step %q already open at step %d", ErrNestedStep, open.label, len(parsed)+1)
			}

			intro.WriteString(content[position:openPos])

			matches := openMarkerPattern.FindStringSubmatch(content[openPos:])
			marker, err := p.parseOpenMarker(matches[1], len(parsed)+1)
			if err != nil {
				return "", nil, err
			}

			open = marker
			position = openPos + len(matches[0])
			open.bodyStart = position
			continue
		}

		// closePos >= 0
		if open == nil {
			return "", nil, fmt.Errorf("%w: position %d", ErrStrayCloser, closePos)
		}

		matched := closeMarkerPattern.FindString(content[closePos:])
		parsed = append(parsed, interfaces.ParsedStep{
			Label:    open.label,
			Duration: open.duration,
			Inner:    strings.TrimSpace(content[open.bodyStart:closePos]),
		})
		open = nil
		position = closePos + len(matched)
	}

	if open != nil {
		return "", nil, fmt.Errorf("%w: step %q", ErrUnpairedOpener, open.label)
	}

	return strings.TrimSpace(intro.String()), parsed, nil
}

type openMarker struct {
	label     string
	duration  interfaces.Duration
	bodyStart int
}

func (p *Parser) parseOpenMarker(rawAttrs string, ordinal int) (*openMarker, error) {
	attrs := parseAttributes(rawAttrs)

	if p.sanitizer != nil {
		if err := p.sanitizer.ValidateAttributes(attrs); err != nil {
			return nil, fmt.Errorf("steps: step %d: %w", ordinal, err)
		}
	}

	label := strings.TrimSpace(attrs["label"])
	if label == "" {
		return nil, fmt.Errorf("%w: step %d", ErrMissingLabel, ordinal)
	}

	var duration interfaces.Duration
	if raw, ok := attrs["duration"]; ok {
		parsed, err := interfaces.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: step %q: %v", ErrInvalidDuration, label, err)
		}
		duration = parsed
	}

	return &openMarker{label: label, duration: duration}, nil
}

func parseAttributes(raw string) map[string]string {
	matches := attributePattern.FindAllStringSubmatch(raw, -1)
	attrs := make(map[string]string, len(matches))
	for _, match := range matches {
		attrs[strings.ToLower(match[1])] = match[2]
	}
	return attrs
}
