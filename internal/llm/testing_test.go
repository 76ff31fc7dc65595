package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// entrySchema is a cut-down word-entry schema shared by the tests.
func entrySchema() *Schema {
	return &Schema{
		Name:        "test-entry",
		Description: "A dictionary entry",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"word":      map[string]any{"type": "string"},
				"meaning":   map[string]any{"type": "string"},
				"syllables": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"part_of_speech": map[string]any{
					"type": "string",
					"enum": []any{"noun", "verb", "adjective"},
				},
			},
			"required": []any{"word", "meaning"},
		},
	}
}

func jsonServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func askEntry() Request {
	return Request{
		System:    "You write dictionary entries.",
		Messages:  UserMessage("Describe 'lucid'."),
		MaxTokens: 256,
	}
}

var bg = context.Background()
