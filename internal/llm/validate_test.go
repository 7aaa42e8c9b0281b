package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func feedbackSchema() *Schema {
	return &Schema{
		Name:        "grading-feedback",
		Description: "Feedback for a subjective answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"verdict": map[string]any{"type": "string", "enum": []any{"correct", "partial", "incorrect"}},
				"score":   map[string]any{"type": "number", "minimum": 0},
				"comment": map[string]any{"type": "string"},
			},
			"required": []any{"verdict", "score"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"verdict":"correct","score":5,"comment":"good"}`, false},
		{"valid without optional", `{"verdict":"partial","score":2.5}`, false},
		{"missing required", `{"verdict":"correct"}`, true},
		{"wrong type", `{"verdict":"correct","score":"five"}`, true},
		{"enum violation", `{"verdict":"meh","score":1}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(feedbackSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got %T", err)
			}
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("nil schema should validate trivially, got: %v", err)
	}
}

func TestValidateResponseNested(t *testing.T) {
	schema := &Schema{
		Name: "rubric-breakdown",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"rubric": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"points": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"rubric", "points"},
		},
	}

	valid := json.RawMessage(`{"rubric":{"name":"Accuracy"},"points":[2,3,1]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invalid := json.RawMessage(`{"rubric":{"name":"Accuracy"},"points":["not","ints"]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}
