package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchemaConversion(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "an item",
		"properties": map[string]any{
			"prompt":     map[string]any{"type": "string"},
			"difficulty": map[string]any{"type": "integer"},
			"intent":     map[string]any{"type": "string", "enum": []any{"teach", "practice"}},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"prompt", "difficulty"},
	}

	schema := geminiSchema(def)
	if schema.Type != genai.TypeObject {
		t.Errorf("type = %v, want object", schema.Type)
	}
	if schema.Description != "an item" {
		t.Errorf("description = %q", schema.Description)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(schema.Properties))
	}
	if schema.Properties["difficulty"].Type != genai.TypeInteger {
		t.Errorf("difficulty type = %v, want integer", schema.Properties["difficulty"].Type)
	}
	if got := schema.Properties["intent"].Enum; len(got) != 2 || got[0] != "teach" {
		t.Errorf("intent enum = %v", got)
	}
	if schema.Properties["options"].Items == nil || schema.Properties["options"].Items.Type != genai.TypeString {
		t.Error("options items should be string typed")
	}
	if len(schema.Required) != 2 {
		t.Errorf("required = %v", schema.Required)
	}
}

func TestGeminiTypeMapping(t *testing.T) {
	tests := []struct {
		in   string
		want genai.Type
	}{
		{"string", genai.TypeString},
		{"number", genai.TypeNumber},
		{"integer", genai.TypeInteger},
		{"boolean", genai.TypeBoolean},
		{"array", genai.TypeArray},
		{"object", genai.TypeObject},
		{"mystery", genai.TypeString},
	}
	for _, tt := range tests {
		if got := geminiType(tt.in); got != tt.want {
			t.Errorf("geminiType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGeminiModelAliases(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiModels); got != "gemini-2.0-flash" {
		t.Errorf("resolveModel(gemini-flash) = %q", got)
	}
	if got := resolveModel("gemini-2.5-pro", geminiModels); got != "gemini-2.5-pro" {
		t.Errorf("unknown names should pass through, got %q", got)
	}
}
