package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockJSON(map[string]int{"b": 2}),
	)

	resp, err := mock.Generate(bg, askEntry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Fatalf("total tokens = %d, want 15", resp.Usage.TotalTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("stop reason = %q", resp.StopReason)
	}

	resp, err = mock.Generate(bg, askEntry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]int
	if err := resp.Decode(&got); err != nil || got["b"] != 2 {
		t.Fatalf("decode = %v, %v", got, err)
	}
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	_, err := NewMockProvider().Generate(bg, Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"word":"lucid"}`)})
	req := askEntry()
	req.Schema = entrySchema()

	_, err := mock.Generate(bg, req)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if mock.CallCount() != 1 || mock.Calls[0].System != req.System {
		t.Fatalf("calls = %+v", mock.Calls)
	}
}

func TestFinish_MaxTokensWithSchema(t *testing.T) {
	req := askEntry()
	req.Schema = entrySchema()
	_, err := finish(req, json.RawMessage(`{"word":"lu`), Usage{}, "m", "max_tokens")
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}

	// Plain text replies may legitimately stop at the limit.
	resp, err := finish(askEntry(), json.RawMessage(`partial`), Usage{}, "m", "max_tokens")
	if err != nil || resp.StopReason != "max_tokens" {
		t.Fatalf("finish = %+v, %v", resp, err)
	}
}

func TestPurposeContext(t *testing.T) {
	if p := PurposeFrom(bg); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if p := PurposeFrom(WithPurpose(bg, "enrich")); p != "enrich" {
		t.Fatalf("expected 'enrich', got %q", p)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name   string
		models map[string]string
		want   string
	}{
		{"claude-haiku", anthropicModels, "claude-haiku-4-5-20251001"},
		{"gemini-flash", geminiModels, "gemini-2.0-flash"},
		{"gemini-2.5-pro", geminiModels, "gemini-2.5-pro"},
		{"gpt-4o-mini", openaiModels, "gpt-4o-mini"},
		{"meta/llama", nil, "meta/llama"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.name, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: ProviderConfig{APIKey: "sk"}}, false},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: ProviderConfig{APIKey: "sk"}}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"no provider", Config{}, true},
		{"unknown provider", Config{Provider: "acme"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_WithDiscoveredKeys(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DefaultConfig().WithDiscoveredKeys(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DefaultConfig().WithDiscoveredKeys()
	if !ok || cfg.Provider != ProviderAnthropic || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("discovered %+v, ok=%v", cfg, ok)
	}

	explicit := DefaultConfig()
	explicit.Provider = ProviderMock
	cfg, ok = explicit.WithDiscoveredKeys()
	if !ok || cfg.Provider != ProviderMock {
		t.Fatalf("explicit provider overridden: %+v", cfg)
	}
}

func TestModelCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); got != 0.75 {
		t.Fatalf("cost = %v, want 0.75", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
