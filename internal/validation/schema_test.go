package validation

import (
	"errors"
	"testing"
)

func TestNormalizeSchema_FieldsShorthand(t *testing.T) {
	normalized := NormalizeSchema(map[string]any{
		"fields": []any{
			map[string]any{"name": "feedback_link", "type": "string", "required": true},
			map[string]any{"name": "level", "type": "string"},
			"environment",
		},
	})
	if normalized == nil {
		t.Fatal("expected normalized schema")
	}
	if normalized["type"] != "object" {
		t.Fatalf("expected object schema, got %#v", normalized)
	}
	props, ok := normalized["properties"].(map[string]any)
	if !ok || len(props) != 3 {
		t.Fatalf("expected 3 properties, got %#v", normalized["properties"])
	}
	required, ok := normalized["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "feedback_link" {
		t.Fatalf("unexpected required list %#v", normalized["required"])
	}
}

func TestNormalizeSchema_PassthroughJSONSchema(t *testing.T) {
	input := map[string]any{
		"type":       "object",
		"properties": map[string]any{"level": map[string]any{"type": "string"}},
	}
	normalized := NormalizeSchema(input)
	if normalized == nil || normalized["type"] != "object" {
		t.Fatalf("expected passthrough, got %#v", normalized)
	}
	// clone, not alias
	normalized["type"] = "array"
	if input["type"] != "object" {
		t.Fatal("NormalizeSchema must not mutate its input")
	}
}

func TestValidateMetadata(t *testing.T) {
	schema := map[string]any{
		"fields": []any{
			map[string]any{"name": "feedback_link", "type": "string", "required": true},
		},
	}

	if err := ValidateMetadata(schema, map[string]any{"feedback_link": "https://example.com"}); err != nil {
		t.Fatalf("valid metadata rejected: %v", err)
	}

	err := ValidateMetadata(schema, map[string]any{"feedback_link": 42})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected structured issues")
	}
}

func TestValidateMetadata_NilSchemaDisables(t *testing.T) {
	if err := ValidateMetadata(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("nil schema must disable validation, got %v", err)
	}
}

func TestValidateSchema_RejectsBroken(t *testing.T) {
	err := ValidateSchema(map[string]any{
		"type":       "object",
		"properties": map[string]any{"x": map[string]any{"type": "not-a-type"}},
	})
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}
