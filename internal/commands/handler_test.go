package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct {
	Name string
}

func (testMessage) Type() string { return "codelab.test.message" }

func (m testMessage) Validate() error {
	if m.Name == "" {
		return validation.Errors{
			"name": validation.NewError("codelab.test.name_required", "name is required"),
		}
	}
	return nil
}

func TestHandlerExecutesCommand(t *testing.T) {
	var got testMessage
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		got = msg
		return nil
	})

	if err := handler.Execute(context.Background(), testMessage{Name: "build"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Name != "build" {
		t.Fatalf("handler did not receive message: %+v", got)
	}
}

func TestHandlerWrapsValidationError(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		t.Fatal("exec must not run on invalid message")
		return nil
	})

	err := handler.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	boom := errors.New("boom")
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		return boom
	})

	err := handler.Execute(context.Background(), testMessage{Name: "x"})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestHandlerHonorsTimeout(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := handler.Execute(context.Background(), testMessage{Name: "slow"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestHandlerInvokesTelemetry(t *testing.T) {
	var captured TelemetryInfo
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithOperation[testMessage]("test.op"),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"name": msg.Name}
		}),
		WithTelemetry[testMessage](func(ctx context.Context, msg testMessage, info TelemetryInfo) {
			captured = info
		}),
	)

	if err := handler.Execute(context.Background(), testMessage{Name: "ok"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if captured.Status != TelemetryStatusSuccess {
		t.Fatalf("expected success status, got %q", captured.Status)
	}
	if captured.Operation != "test.op" {
		t.Fatalf("unexpected operation %q", captured.Operation)
	}
	if captured.Fields["name"] != "ok" {
		t.Fatalf("message fields missing: %+v", captured.Fields)
	}
	if captured.Command != "codelab.test.message" {
		t.Fatalf("unexpected command %q", captured.Command)
	}
}

func TestHandlerTelemetryOnFailure(t *testing.T) {
	var captured TelemetryInfo
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		return errors.New("nope")
	}, WithTelemetry[testMessage](func(ctx context.Context, msg testMessage, info TelemetryInfo) {
		captured = info
	}))

	if err := handler.Execute(context.Background(), testMessage{Name: "x"}); err == nil {
		t.Fatal("expected error")
	}
	if captured.Status != TelemetryStatusFailed {
		t.Fatalf("expected failed status, got %q", captured.Status)
	}
	if captured.Error == nil {
		t.Fatal("telemetry should carry the error")
	}
}
