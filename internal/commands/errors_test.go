package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestWrapContextError_ClassifiesWrappedCancellation(t *testing.T) {
	err := wrapContextError(fmt.Errorf("render pages: %w", context.Canceled))

	var wrapped *goerrors.Error
	if !errors.As(err, &wrapped) {
		t.Fatalf("expected classified error, got %v", err)
	}
	if wrapped.TextCode != commandContextCanceled {
		t.Fatalf("expected cancel code, got %q", wrapped.TextCode)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatal("cause must stay reachable")
	}
}

func TestWrapContextError_ClassifiesWrappedDeadline(t *testing.T) {
	err := wrapContextError(fmt.Errorf("lint corpus: %w", context.DeadlineExceeded))

	var wrapped *goerrors.Error
	if !errors.As(err, &wrapped) {
		t.Fatalf("expected classified error, got %v", err)
	}
	if wrapped.TextCode != commandContextTimeout {
		t.Fatalf("expected timeout code, got %q", wrapped.TextCode)
	}
}

func TestTagError_KeepsInnerClassification(t *testing.T) {
	inner := goerrors.Wrap(errors.New("boom"), goerrors.CategoryValidation, "bad input").
		WithTextCode("BAD_INPUT")

	err := wrapExecuteError(inner)

	var wrapped *goerrors.Error
	if !errors.As(err, &wrapped) {
		t.Fatal("expected wrapped error")
	}
	if wrapped.TextCode != "BAD_INPUT" {
		t.Fatalf("inner classification must win, got %q", wrapped.TextCode)
	}
}
