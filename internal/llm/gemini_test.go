package llm

import "testing"

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // pass-through
	}
	for _, tt := range tests {
		if got := resolveModel(tt.alias, geminiModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.alias, got, tt.want)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"verdict": map[string]any{"type": "string", "enum": []any{"correct", "partial", "incorrect"}},
			"score":   map[string]any{"type": "number"},
			"comment": map[string]any{"type": "string"},
			"rubric_points": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"verdict", "score"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("type = %s, want OBJECT", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("got %d properties, want 4", len(schema.Properties))
	}
	if schema.Properties["verdict"].Type != "STRING" {
		t.Fatalf("verdict type = %s, want STRING", schema.Properties["verdict"].Type)
	}
	if len(schema.Properties["verdict"].Enum) != 3 {
		t.Fatalf("verdict enum has %d values, want 3", len(schema.Properties["verdict"].Enum))
	}
	if schema.Properties["score"].Type != "NUMBER" {
		t.Fatalf("score type = %s, want NUMBER", schema.Properties["score"].Type)
	}
	if schema.Properties["rubric_points"].Type != "ARRAY" {
		t.Fatalf("rubric_points type = %s, want ARRAY", schema.Properties["rubric_points"].Type)
	}
	if schema.Properties["rubric_points"].Items.Type != "INTEGER" {
		t.Fatalf("rubric_points items type = %s, want INTEGER", schema.Properties["rubric_points"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("got %d required fields, want 2", len(schema.Required))
	}
}
