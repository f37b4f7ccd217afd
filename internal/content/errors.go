package content

import "errors"

var (
	// ErrNilDocument indicates a tutorial was assembled from a nil document.
	ErrNilDocument = errors.New("content: document is nil")
	// ErrDuplicateSlug indicates two source files resolve to the same slug.
	ErrDuplicateSlug = errors.New("content: duplicate tutorial slug")
)
