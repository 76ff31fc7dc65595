package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/lexicon/internal/vocab"
)

func sampleVerb() *vocab.Word {
	return &vocab.Word{
		Text:         "forsake",
		Meaning:      "ত্যাগ করা",
		PartOfSpeech: vocab.Verb,
		Syllables:    []string{"for", "sake"},
		Synonyms:     vocab.Terms{vocab.PlainTerm("abandon"), vocab.AnnotatedTerm{Word: "desert", Translation: "ছেড়ে যাওয়া"}},
		Antonyms:     vocab.Terms{vocab.PlainTerm("keep")},
		Examples:     []string{"Do not forsake your friends."},
		VerbForms: &vocab.VerbForms{
			V1: &vocab.VerbFormDetail{Word: "forsake"},
			V2: &vocab.VerbFormDetail{Word: "forsook"},
			V3: &vocab.VerbFormDetail{Word: "forsaken"},
		},
	}
}

func TestWordInsertAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	w := sampleVerb()
	if err := repo.Insert(ctx, w); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if w.ID == "" {
		t.Fatal("insert did not assign an id")
	}
	if w.Tier != vocab.New {
		t.Errorf("tier = %s, want New", w.Tier)
	}

	got, err := repo.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Text != "forsake" || got.PartOfSpeech != vocab.Verb {
		t.Errorf("got %q (%s)", got.Text, got.PartOfSpeech)
	}
	if !got.HasCompleteVerbForms() {
		t.Error("verb forms did not round-trip")
	}
	if syn := got.Synonyms.Texts(); len(syn) != 2 || syn[1] != "desert" {
		t.Errorf("synonyms = %v", syn)
	}
	if a, ok := got.Synonyms[1].(vocab.AnnotatedTerm); !ok || a.Translation == "" {
		t.Errorf("annotated synonym lost its translation: %#v", got.Synonyms[1])
	}
	if !got.CreatedAt.Equal(w.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, w.CreatedAt)
	}
}

func TestWordGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.WordRepo().Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestWordPutRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	w := sampleVerb()
	if err := repo.Insert(ctx, w); err != nil {
		t.Fatalf("insert: %v", err)
	}
	answered := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	w.Tier = vocab.Hard
	w.Wrong.Meaning = 1
	w.TotalExams = 1
	w.UpdatedAt = answered
	if err := repo.Put(ctx, w); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !w.UpdatedAt.Equal(answered) {
		t.Errorf("put replaced UpdatedAt %v with %v", answered, w.UpdatedAt)
	}

	got, err := repo.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Tier != vocab.Hard || got.Wrong.Meaning != 1 || got.Wrong.Spelling != 0 || got.TotalExams != 1 || got.CorrectCount != 0 {
		t.Errorf("round trip mismatch: tier=%s wrong=%+v exams=%d correct=%d",
			got.Tier, got.Wrong, got.TotalExams, got.CorrectCount)
	}
	if !got.UpdatedAt.Equal(w.UpdatedAt) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, w.UpdatedAt)
	}
	if !got.CreatedAt.Equal(w.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", w.CreatedAt, got.CreatedAt)
	}
}

func TestWordPutStampsZeroUpdatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	w := &vocab.Word{ID: "fixed-id", Text: "lucid", Meaning: "স্পষ্ট", Tier: vocab.New}
	start := time.Now().UTC().Add(-time.Second)
	if err := s.WordRepo().Put(ctx, w); err != nil {
		t.Fatalf("put: %v", err)
	}
	if w.UpdatedAt.Before(start) {
		t.Errorf("UpdatedAt = %v, want a fresh timestamp", w.UpdatedAt)
	}
	if !w.CreatedAt.Equal(w.UpdatedAt) {
		t.Errorf("CreatedAt = %v, want %v", w.CreatedAt, w.UpdatedAt)
	}
}

func TestWordByTiers(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	for _, tc := range []struct {
		text string
		tier vocab.Tier
	}{
		{"alpha", vocab.Hard},
		{"beta", vocab.Medium},
		{"gamma", vocab.Easy},
		{"delta", vocab.New},
	} {
		if err := repo.Insert(ctx, &vocab.Word{Text: tc.text, Meaning: "m", Tier: tc.tier}); err != nil {
			t.Fatalf("insert %s: %v", tc.text, err)
		}
	}

	got, err := repo.ByTiers(ctx, vocab.Hard, vocab.Medium)
	if err != nil {
		t.Fatalf("by tiers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d words, want 2", len(got))
	}
	for _, w := range got {
		if w.Tier != vocab.Hard && w.Tier != vocab.Medium {
			t.Errorf("unexpected tier %s for %s", w.Tier, w.Text)
		}
	}

	none, err := repo.ByTiers(ctx)
	if err != nil {
		t.Fatalf("by no tiers: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no words for empty tier set, got %d", len(none))
	}
}

func TestWordCreatedBetween(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	old := &vocab.Word{Text: "old", CreatedAt: time.Now().AddDate(0, 0, -3)}
	fresh := &vocab.Word{Text: "fresh"}
	for _, w := range []*vocab.Word{old, fresh} {
		if err := repo.Insert(ctx, w); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	got, err := repo.CreatedBetween(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("created between: %v", err)
	}
	if len(got) != 1 || got[0].Text != "fresh" {
		t.Errorf("got %v, want only fresh", got)
	}
}

func TestWordFindByTextIgnoresCase(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	if err := repo.Insert(ctx, &vocab.Word{Text: "Ephemeral"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := repo.FindByText(ctx, " ephemeral ")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Text != "Ephemeral" {
		t.Errorf("found %q", got.Text)
	}
	if _, err := repo.FindByText(ctx, "transient"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestWordBulkInsertAndDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	res := repo.BulkInsert(ctx, []*vocab.Word{{Text: "one"}, {Text: "  "}, {Text: "two"}})
	if res.Success != 2 || res.Failed != 1 || len(res.Errors) != 1 {
		t.Fatalf("bulk = %+v", res)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d words, want 2", len(all))
	}

	if err := repo.Delete(ctx, all[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, all[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestWordResetProgress(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	w := &vocab.Word{Text: "gauche", Tier: vocab.Hard, CorrectCount: 3, TotalExams: 7,
		Wrong: vocab.WrongCount{Spelling: 4}}
	if err := repo.Insert(ctx, w); err != nil {
		t.Fatalf("insert: %v", err)
	}

	n, err := repo.ResetProgress(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n != 1 {
		t.Errorf("reset %d words, want 1", n)
	}

	got, err := repo.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Tier != vocab.New || got.TotalExams != 0 || got.Wrong.Total() != 0 || got.CorrectCount != 0 {
		t.Errorf("progress not reset: %+v", got)
	}
}
