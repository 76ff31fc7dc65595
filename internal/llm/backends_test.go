package llm

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func openAIReply(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, openAIReply(`{"word":"lucid","meaning":"স্পষ্ট"}`, "stop"))
	p, err := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatal(err)
	}

	req := askEntry()
	req.Schema = entrySchema()
	resp, err := p.Generate(bg, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" || p.Name() != ProviderOpenAI {
		t.Fatalf("stop = %q, name = %q", resp.StopReason, p.Name())
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusInternalServerError, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		srv := jsonServer(t, tt.status, map[string]any{
			"error": map[string]any{"type": "error", "message": "nope"},
		})
		p, _ := NewOpenAIProvider(ProviderConfig{APIKey: "k", BaseURL: srv.URL + "/v1"})
		_, err := p.Generate(bg, askEntry())
		if !tt.check(err) {
			t.Errorf("status %d: unexpected error %T (%v)", tt.status, err, err)
		}
	}
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, openAIReply(`{"word":"lucid"}`, "stop"))
	p, _ := NewOpenAIProvider(ProviderConfig{APIKey: "k", BaseURL: srv.URL + "/v1"})
	req := askEntry()
	req.Schema = entrySchema()
	_, err := p.Generate(bg, req)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestOpenRouterProvider_Defaults(t *testing.T) {
	p, err := NewOpenRouterProvider(ProviderConfig{APIKey: "k", Model: "meta-llama/llama-3-8b"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != ProviderOpenRouter || p.ModelID() != "meta-llama/llama-3-8b" {
		t.Fatalf("name = %q, model = %q", p.Name(), p.ModelID())
	}
	if _, err := NewOpenRouterProvider(ProviderConfig{}); err == nil {
		t.Fatal("expected error without key")
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": `{"word":"lucid","meaning":"স্পষ্ট"}`}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	})
	p, err := NewAnthropicProvider(ProviderConfig{APIKey: "k", Model: "claude-haiku", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := p.Generate(bg, askEntry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 80 || resp.Model != "claude-haiku-4-5-20251001" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestAnthropicProvider_BadRequest(t *testing.T) {
	srv := jsonServer(t, http.StatusBadRequest, map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "invalid_request_error", "message": "bad model"},
	})
	p, _ := NewAnthropicProvider(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Generate(bg, askEntry())
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
	if _, err := NewAnthropicProvider(ProviderConfig{}); err == nil {
		t.Fatal("expected error without key")
	}
}

func TestGeminiSchema(t *testing.T) {
	def := entrySchema().Definition
	def["properties"].(map[string]any)["note"] = map[string]any{"type": []any{"string", "null"}}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 5 {
		t.Fatalf("properties = %d, want 5", len(s.Properties))
	}
	if s.Properties["syllables"].Type != genai.TypeArray || s.Properties["syllables"].Items.Type != genai.TypeString {
		t.Fatalf("syllables = %+v", s.Properties["syllables"])
	}
	if len(s.Properties["part_of_speech"].Enum) != 3 {
		t.Fatalf("enum = %v", s.Properties["part_of_speech"].Enum)
	}
	note := s.Properties["note"]
	if note.Type != genai.TypeString || note.Nullable == nil || !*note.Nullable {
		t.Fatalf("note = %+v, want nullable string", note)
	}
	if len(s.Required) != 2 {
		t.Fatalf("required = %v", s.Required)
	}
}
