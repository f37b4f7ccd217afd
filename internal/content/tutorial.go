package content

import (
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-codelab/pkg/interfaces"
)

// Tutorial is one fully assembled corpus document: parsed front matter, the
// ordered step sections, and the rendered intro HTML. Tutorials are immutable
// once assembled; edits happen on the source file and surface on the next
// build.
type Tutorial struct {
	Slug         string
	SourcePath   string
	FrontMatter  interfaces.FrontMatter
	Intro        []byte
	IntroHTML    []byte
	Steps        []Step
	LastModified time.Time
	Checksum     []byte
}

// Step is a parsed step section plus its rendered HTML body. Order mirrors
// the authored document and is never changed.
type Step struct {
	Label    string
	Anchor   string
	Duration interfaces.Duration
	Body     []byte
	BodyHTML []byte
}

// NewTutorial derives a Tutorial skeleton from a loaded document. The slug
// comes from front matter when present, otherwise from the file name.
func NewTutorial(doc *interfaces.Document) (*Tutorial, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	source := strings.TrimSpace(doc.FrontMatter.Slug)
	if source == "" {
		source = baseName(doc.FilePath)
	}
	normalized, err := slug.Normalize(source)
	if err != nil {
		return nil, err
	}

	return &Tutorial{
		Slug:         normalized,
		SourcePath:   doc.FilePath,
		FrontMatter:  doc.FrontMatter,
		LastModified: doc.LastModified,
		Checksum:     append([]byte(nil), doc.Checksum...),
	}, nil
}

// StepsDuration sums the authored durations of every step.
func (t *Tutorial) StepsDuration() interfaces.Duration {
	var total interfaces.Duration
	for _, step := range t.Steps {
		total += step.Duration
	}
	return total
}

// Title returns the display title.
func (t *Tutorial) Title() string { return t.FrontMatter.Title }

// Route returns the site-relative route for the tutorial page.
func (t *Tutorial) Route() string { return "/" + t.Slug + "/" }

func baseName(path string) string {
	name := path
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndexByte(name, '.'); idx > 0 {
		name = name[:idx]
	}
	return name
}
