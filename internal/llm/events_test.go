package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/lexicon/internal/store"
)

type recordedEvents struct {
	store.EventRepo
	llm []store.LLMRequestEventData
	err error
}

func (r *recordedEvents) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	r.llm = append(r.llm, d)
	return r.err
}

func TestRecording_StoresSuccess(t *testing.T) {
	events := &recordedEvents{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"word":"lucid","meaning":"স্পষ্ট"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithRecording(mock, events, nil)

	req := askEntry()
	req.Schema = entrySchema()
	if _, err := p.Generate(WithPurpose(bg, "enrich"), req); err != nil {
		t.Fatal(err)
	}

	if len(events.llm) != 1 {
		t.Fatalf("events = %d, want 1", len(events.llm))
	}
	e := events.llm[0]
	if e.Provider != ProviderMock || e.Purpose != "enrich" || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Errorf("tokens = %d/%d", e.InputTokens, e.OutputTokens)
	}
	for _, want := range []string{"[system]", "[user]", "Describe 'lucid'.", "[schema: test-entry]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
	if !strings.Contains(e.ResponseBody, "lucid") {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestRecording_StoresFailureAndIgnoresStoreErrors(t *testing.T) {
	events := &recordedEvents{err: errors.New("db locked")}
	p := WithRecording(NewMockProvider(MockResponse{Err: &ErrRateLimit{}}), events, nil)

	_, err := p.Generate(bg, askEntry())
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected the provider error, got %v", err)
	}
	if len(events.llm) != 1 || events.llm[0].Success || events.llm[0].ErrorMessage == "" {
		t.Fatalf("events = %+v", events.llm)
	}
}

func TestNewProvider_WrapsMock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(bg, cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Fatalf("expected retry wrapper, got %T", p)
	}
	if p.Name() != ProviderMock {
		t.Fatalf("name = %q", p.Name())
	}

	cfg.Provider = ProviderOpenAI
	if _, err := NewProvider(bg, cfg, nil, nil); err == nil {
		t.Fatal("expected validation error without key")
	}
}
