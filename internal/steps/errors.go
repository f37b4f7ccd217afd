package steps

import "errors"

var (
	// ErrUnpairedOpener flags a step marker that never closes.
	ErrUnpairedOpener = errors.New("steps: step marker opened but never closed")
	// ErrStrayCloser flags a closing marker with no matching opener.
	ErrStrayCloser = errors.New("steps: closing step marker without an opener")
	// ErrNestedStep flags a step marker opened inside another step.
	ErrNestedStep = errors.New("steps: step markers cannot be nested")
	// ErrMissingLabel flags a step marker with no label attribute.
	ErrMissingLabel = errors.New("steps: step marker requires a non-empty label")
	// ErrInvalidDuration flags a step marker whose duration attribute cannot
	// be parsed.
	ErrInvalidDuration = errors.New("steps: step marker duration is invalid")
)
