// Package enrich drafts vocabulary entries with a language model.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/lexicon/internal/llm"
	"github.com/abhisek/lexicon/internal/vocab"
)

// ErrEmptyWord is returned when asked to enrich a blank word.
var ErrEmptyWord = errors.New("word is empty")

// Purpose tags enrichment calls in the LLM event log.
const Purpose = "enrich"

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for entry generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1536,
		Temperature: 0.2,
	}
}

// Input names the word to enrich, optionally with a sentence it was
// found in to pick the right sense.
type Input struct {
	Word    string
	Context string
}

// Service turns bare words into draft entries.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      logrus.FieldLogger
}

// NewService creates an enrichment service. log may be nil.
func NewService(provider llm.Provider, cfg Config, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Service{provider: provider, cfg: cfg, log: log}
}

// Enrich asks the model for a full entry and returns it as a new word at
// tier New. The word is not stored.
func (s *Service) Enrich(ctx context.Context, in Input) (*vocab.Word, error) {
	in.Word = strings.TrimSpace(in.Word)
	if in.Word == "" {
		return nil, ErrEmptyWord
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(in)),
		Schema:      EntrySchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("enrich %q: %w", in.Word, err)
	}

	var rec vocab.ImportRecord
	if err := json.Unmarshal(resp.Content, &rec); err != nil {
		return nil, fmt.Errorf("parse entry for %q: %w", in.Word, err)
	}
	if !strings.EqualFold(strings.TrimSpace(rec.Word), in.Word) {
		s.log.WithFields(logrus.Fields{"asked": in.Word, "got": rec.Word}).Warn("model changed the headword")
	}
	rec.Word = in.Word

	w, err := rec.ToWord()
	if err != nil {
		return nil, err
	}
	if !w.IsVerb() {
		w.VerbForms = nil
	}

	s.log.WithFields(logrus.Fields{
		"word":     w.Text,
		"pos":      w.PartOfSpeech,
		"synonyms": len(w.Synonyms),
		"tokens":   resp.Usage.TotalTokens,
	}).Debug("enriched word")
	return w, nil
}
