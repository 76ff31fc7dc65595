package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexicon/internal/enrich"
	"github.com/abhisek/lexicon/internal/harvest"
	"github.com/abhisek/lexicon/internal/quiz"
	"github.com/abhisek/lexicon/internal/stats"
	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/vocab"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "lexicon.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

const wordList = `[
  {"word": "abate", "meaning": "কমা", "parts_of_speech": "verb", "synonyms": ["subside"]},
  {"word": "benign", "meaning": "সদয়", "parts_of_speech": "adjective"},
  {"word": "  ", "meaning": "blank"}
]`

func TestImportWordListAndExportRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rep, err := importFile(ctx, s.WordRepo(), s.NoteRepo(), strings.NewReader(wordList))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Words.Success)
	assert.Equal(t, 1, rep.Words.Failed)

	// Progress made after import must survive an export/import cycle.
	w, err := s.WordRepo().FindByText(ctx, "abate")
	require.NoError(t, err)
	w.Tier, w.TotalExams, w.CorrectCount = vocab.Hard, 3, 1
	require.NoError(t, s.WordRepo().Put(ctx, w))
	require.NoError(t, s.NoteRepo().Insert(ctx, &vocab.Note{Title: "Prefixes", Category: "grammar"}))

	var buf bytes.Buffer
	require.NoError(t, exportAll(ctx, &buf, s.WordRepo(), s.NoteRepo(), time.Now()))

	fresh := openTestStore(t)
	rep, err = importFile(ctx, fresh.WordRepo(), fresh.NoteRepo(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Words.Success)
	assert.Equal(t, 1, rep.Notes.Success)

	got, err := fresh.WordRepo().FindByText(ctx, "abate")
	require.NoError(t, err)
	assert.Equal(t, vocab.Hard, got.Tier)
	assert.Equal(t, 3, got.TotalExams)
	assert.Equal(t, []string{"subside"}, got.Synonyms.Texts())
}

func TestAddWordRejectsDuplicates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, addWord(ctx, s.WordRepo(), &vocab.Word{Text: "candid"}))
	err := addWord(ctx, s.WordRepo(), &vocab.Word{Text: "Candid"})
	assert.ErrorContains(t, err, "already exists")
}

func TestWordEditFlagsAddVerbForms(t *testing.T) {
	c := &cobra.Command{Use: "add"}
	c.Flags().String("pos", "", "")
	addVerbFormFlags(c)
	require.NoError(t, c.Flags().Set("v1", "forsake"))
	require.NoError(t, c.Flags().Set("v2", "forsook"))
	require.NoError(t, c.Flags().Set("v3", "forsaken"))

	e := wordEditFromFlags(c)
	assert.Nil(t, e.POS)
	assert.Nil(t, e.Text, "flags the command lacks stay unset")

	w, err := vocab.ImportRecord{Word: "forsake", Meaning: "ত্যাগ করা"}.ToWord()
	require.NoError(t, err)
	require.NoError(t, e.apply(w))
	assert.Equal(t, vocab.Verb, w.PartOfSpeech)
	assert.True(t, w.HasCompleteVerbForms())

	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, addWord(ctx, s.WordRepo(), w))
	got, err := s.WordRepo().FindByText(ctx, "forsake")
	require.NoError(t, err)
	assert.Equal(t, "forsaken", got.VerbForms.PastParticiple())
}

func TestEditWord(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &vocab.Word{Text: "abate", Meaning: "কমা", Tier: vocab.Hard, TotalExams: 3, CorrectCount: 1}))
	require.NoError(t, repo.Insert(ctx, &vocab.Word{Text: "benign", Meaning: "সদয়"}))

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	w, err := editWord(ctx, repo, "ABATE", wordEdit{
		Meaning:  lo.ToPtr("হ্রাস পাওয়া"),
		Synonyms: &[]string{"subside", " ", "wane"},
		V1:       lo.ToPtr("abate"),
		V2:       lo.ToPtr("abated"),
		V3:       lo.ToPtr("abated"),
	}, now)
	require.NoError(t, err)

	got, err := repo.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "হ্রাস পাওয়া", got.Meaning)
	assert.Equal(t, []string{"subside", "wane"}, got.Synonyms.Texts())
	assert.True(t, got.HasCompleteVerbForms())
	assert.Equal(t, vocab.Hard, got.Tier, "progress is kept")
	assert.Equal(t, 3, got.TotalExams)
	assert.True(t, got.UpdatedAt.Equal(now), "updated_at = %v", got.UpdatedAt)

	// Clearing V3 leaves the verb without a complete set of forms.
	_, err = editWord(ctx, repo, "abate", wordEdit{V3: lo.ToPtr("")}, now)
	require.NoError(t, err)
	got, err = repo.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.False(t, got.HasCompleteVerbForms())
	assert.True(t, got.HasPresentAndPast())

	_, err = editWord(ctx, repo, "abate", wordEdit{Text: lo.ToPtr("Benign")}, now)
	assert.ErrorContains(t, err, "already exists")

	_, err = editWord(ctx, repo, "abate", wordEdit{Tier: lo.ToPtr("expert")}, now)
	assert.Error(t, err)

	_, err = editWord(ctx, repo, "missing", wordEdit{Meaning: lo.ToPtr("x")}, now)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.True(t, wordEdit{}.empty())
}

func TestEditNote(t *testing.T) {
	s := openTestStore(t)
	repo := s.NoteRepo()
	ctx := context.Background()
	n := &vocab.Note{Title: "Prefixes", Content: "un-, re-"}
	require.NoError(t, repo.Insert(ctx, n))

	edited, err := editNote(ctx, repo, n.ID, noteEdit{Title: lo.ToPtr(" Common prefixes "), Category: lo.ToPtr("grammar")})
	require.NoError(t, err)
	assert.Equal(t, "Common prefixes", edited.Title)

	grammar, err := repo.ByCategory(ctx, "grammar")
	require.NoError(t, err)
	require.Len(t, grammar, 1)
	assert.Equal(t, "Common prefixes", grammar[0].Title)
	assert.Equal(t, "un-, re-", grammar[0].Content)

	_, err = editNote(ctx, repo, n.ID, noteEdit{Title: lo.ToPtr("  ")})
	assert.Error(t, err)

	_, err = editNote(ctx, repo, n.ID+100, noteEdit{Content: lo.ToPtr("x")})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSelectWords(t *testing.T) {
	words := []*vocab.Word{
		{Text: "abate", Meaning: "reduce", PartOfSpeech: vocab.Verb, Tier: vocab.Hard, Wrong: vocab.WrongCount{Spelling: 2}},
		{Text: "abash", Meaning: "embarrass", PartOfSpeech: vocab.Verb, Tier: vocab.Medium},
		{Text: "benign", Meaning: "kind", PartOfSpeech: vocab.Adjective, Tier: vocab.Easy},
	}

	tests := []struct {
		name string
		opts listOptions
		want []string
	}{
		{"no filters", listOptions{}, []string{"abate", "abash", "benign"}},
		{"tier", listOptions{Tier: "hard"}, []string{"abate"}},
		{"learned tier alias", listOptions{Tier: "Learned"}, []string{"benign"}},
		{"pos", listOptions{POS: "Verb"}, []string{"abate", "abash"}},
		{"search meaning", listOptions{Search: "KIND"}, []string{"benign"}},
		{"where", listOptions{Where: `wrong.spelling >= 2 && tier == "Hard"`}, []string{"abate"}},
		{"combined", listOptions{POS: "verb", Where: `tier != "Hard"`}, []string{"abash"}},
		{"limit", listOptions{Limit: 2}, []string{"abate", "abash"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectWords(words, tt.opts)
			require.NoError(t, err)
			var texts []string
			for _, w := range got {
				texts = append(texts, w.Text)
			}
			assert.Equal(t, tt.want, texts)
		})
	}

	_, err := selectWords(words, listOptions{Tier: "expert"})
	assert.Error(t, err)
	_, err = selectWords(words, listOptions{Where: "tier =="})
	assert.Error(t, err)
}

func TestPrintWordTable(t *testing.T) {
	var buf bytes.Buffer
	printWordTable(&buf, nil)
	assert.Contains(t, buf.String(), "No words found.")

	buf.Reset()
	printWordTable(&buf, []*vocab.Word{{Text: "abate", Meaning: "কমা", Tier: vocab.Hard, TotalExams: 4, CorrectCount: 3}})
	out := buf.String()
	assert.Contains(t, out, "abate")
	assert.Contains(t, out, "Hard")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "1 words")
}

func TestPrintWordShowsVerbForms(t *testing.T) {
	w := &vocab.Word{
		Text: "go", PartOfSpeech: vocab.Verb, Tier: vocab.Medium,
		VerbForms: &vocab.VerbForms{
			V1: &vocab.VerbFormDetail{Word: "go"},
			V2: &vocab.VerbFormDetail{Word: "went"},
			V3: &vocab.VerbFormDetail{Word: "gone"},
		},
		Examples: []string{"They go home."},
	}
	var buf bytes.Buffer
	printWord(&buf, w)
	out := buf.String()
	assert.Contains(t, out, "go / went / gone")
	assert.Contains(t, out, "Example 1:")
	assert.Contains(t, out, "Medium")
}

func TestWriteStatsReport(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	writeStatsReport(&buf, stats.Compute(nil, now), nil)
	assert.Contains(t, buf.String(), "No words yet")

	words := []*vocab.Word{
		{Text: "abate", Tier: vocab.Hard, TotalExams: 4, CorrectCount: 1, Wrong: vocab.WrongCount{Spelling: 3}, UpdatedAt: now},
		{Text: "benign", Tier: vocab.Easy, TotalExams: 3, CorrectCount: 3, UpdatedAt: now},
	}
	daily := []store.DailyAccuracy{{Date: now, Total: 4, Correct: 3}}

	buf.Reset()
	writeStatsReport(&buf, stats.Compute(words, now), daily)
	out := buf.String()
	assert.Contains(t, out, "Most mistaken")
	assert.Contains(t, out, "abate")
	assert.Contains(t, out, "Spelling")
	assert.Contains(t, out, "57%")
	assert.Contains(t, out, "3/4")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := confirm(strings.NewReader(tt.input), &out, "Reset?"); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "[y/N]") {
			t.Errorf("prompt missing: %q", out.String())
		}
	}
}

func TestPrintNotesGroupsByCategory(t *testing.T) {
	notes := []*vocab.Note{
		{ID: 1, Title: "Prefixes", Category: "grammar", Content: "un-, re-"},
		{ID: 2, Title: "Loose ends"},
		{ID: 3, Title: "Suffixes", Category: "grammar"},
	}
	var buf bytes.Buffer
	printNotes(&buf, notes)
	out := buf.String()

	grammar := strings.Index(out, "grammar")
	uncategorized := strings.Index(out, "Uncategorized")
	suffixes := strings.Index(out, "Suffixes")
	require.True(t, grammar >= 0 && uncategorized >= 0 && suffixes >= 0, out)
	assert.Less(t, grammar, suffixes, "grammar notes are listed together")
	assert.Less(t, suffixes, uncategorized, "categories keep first-seen order")
}

type fakeEnricher struct {
	fail map[string]bool
	seen []enrich.Input
}

func (f *fakeEnricher) Enrich(_ context.Context, in enrich.Input) (*vocab.Word, error) {
	f.seen = append(f.seen, in)
	if f.fail[in.Word] {
		return nil, errors.New("provider unavailable")
	}
	return &vocab.Word{Text: in.Word, Meaning: "draft", Tier: vocab.New}, nil
}

func TestAddCandidates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.WordRepo().Insert(ctx, &vocab.Word{Text: "lucid"}))

	cands := []harvest.Candidate{
		{Word: "ephemeral", Count: 3, Context: "Fame is ephemeral."},
		{Word: "obscure", Count: 2},
		{Word: "lucid", Count: 1},
	}
	svc := &fakeEnricher{fail: map[string]bool{"obscure": true}}

	added, failed := addCandidates(ctx, svc, s.WordRepo(), cands, quietLogger())
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, failed, "an enrichment error and a duplicate are both skipped")
	require.Len(t, svc.seen, 3)
	assert.Equal(t, "Fame is ephemeral.", svc.seen[0].Context)

	w, err := s.WordRepo().FindByText(ctx, "ephemeral")
	require.NoError(t, err)
	assert.Equal(t, "draft", w.Meaning)
}

func TestAddCandidatesStopsOnCancel(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := &fakeEnricher{}
	added, failed := addCandidates(ctx, svc, s.WordRepo(), []harvest.Candidate{{Word: "ephemeral"}}, quietLogger())
	assert.Zero(t, added+failed)
	assert.Empty(t, svc.seen)
}

func TestSummarizeUsage(t *testing.T) {
	events := []store.LLMRequestEvent{
		{LLMRequestEventData: store.LLMRequestEventData{Purpose: "enrich", Model: "m1", InputTokens: 100, OutputTokens: 50, LatencyMs: 200}},
		{LLMRequestEventData: store.LLMRequestEventData{Purpose: "enrich", Model: "m2", InputTokens: 300, OutputTokens: 50, LatencyMs: 400}},
		{LLMRequestEventData: store.LLMRequestEventData{Purpose: "other", Model: "m1", InputTokens: 10, OutputTokens: 5, LatencyMs: 100}},
	}

	byPurpose := summarizeUsage(events, func(e store.LLMRequestEvent) string { return e.Purpose })
	require.Len(t, byPurpose, 2)
	assert.Equal(t, llmUsage{Key: "enrich", Calls: 2, InputTokens: 400, OutputTokens: 100, AvgLatencyMs: 300}, byPurpose[0])
	assert.Equal(t, "other", byPurpose[1].Key)

	var buf bytes.Buffer
	writeLLMStats(&buf, events)
	assert.Contains(t, buf.String(), "TOTAL (partial)")
	assert.Contains(t, buf.String(), "Pricing unavailable for:")

	buf.Reset()
	writeLLMStats(&buf, nil)
	assert.Contains(t, buf.String(), "No LLM usage recorded yet.")
}

func TestPreviewSpelling(t *testing.T) {
	word := &vocab.Word{ID: "w1", Text: "abate", Meaning: "কমা", PartOfSpeech: vocab.Verb}
	var out bytes.Buffer
	p := &previewer{in: bufio.NewScanner(strings.NewReader("Abate\n")), out: &out}

	rng := rand.New(rand.NewPCG(1, 2))
	require.NoError(t, p.run(word, []*vocab.Word{word}, []quiz.Modality{quiz.Spelling}, rng))
	assert.Contains(t, out.String(), "✓ Correct!")
	assert.Contains(t, out.String(), "1/1 correct")
}

func TestPreviewSkipsInapplicable(t *testing.T) {
	// A lone adjective has no distractors and no verb forms.
	word := &vocab.Word{ID: "w1", Text: "benign", Meaning: "সদয়", PartOfSpeech: vocab.Adjective}
	var out bytes.Buffer
	p := &previewer{in: bufio.NewScanner(strings.NewReader("")), out: &out}

	rng := rand.New(rand.NewPCG(1, 2))
	require.NoError(t, p.run(word, []*vocab.Word{word}, []quiz.Modality{quiz.VerbForm, quiz.MCQEnBn}, rng))
	assert.Equal(t, 2, strings.Count(out.String(), "skipped"))
	assert.Contains(t, out.String(), "0/0 correct")
}

func TestChoiceAnswer(t *testing.T) {
	q := &quiz.Question{Choices: []string{"a", "b", "c"}}
	assert.Equal(t, "b", choiceAnswer(q, "2"))
	assert.Equal(t, "9", choiceAnswer(q, "9"))
	assert.Equal(t, "c", choiceAnswer(q, "c"))
	assert.Equal(t, "7", choiceAnswer(&quiz.Question{}, "7"))
}
