package vocab

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierPromote(t *testing.T) {
	tests := []struct {
		from Tier
		want Tier
	}{
		{Hard, Medium},
		{Medium, Easy},
		{Easy, Easy},
		{New, Easy},
	}
	for _, tt := range tests {
		if got := tt.from.Promote(); got != tt.want {
			t.Errorf("%s.Promote() = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestTierDemote(t *testing.T) {
	tests := []struct {
		from Tier
		want Tier
	}{
		{New, Easy},
		{Easy, Medium},
		{Medium, Hard},
		{Hard, Hard},
	}
	for _, tt := range tests {
		if got := tt.from.Demote(); got != tt.want {
			t.Errorf("%s.Demote() = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestTierStepsOneAtATime(t *testing.T) {
	tier := Hard
	for i := 0; i < 5; i++ {
		next := tier.Promote()
		if int(tier)-int(next) > 1 {
			t.Fatalf("promotion skipped a rung: %s -> %s", tier, next)
		}
		tier = next
	}
	if tier != Easy {
		t.Errorf("after repeated promotion tier = %s, want Easy", tier)
	}
}

func TestParseTier(t *testing.T) {
	for in, want := range map[string]Tier{
		"Hard": Hard, "medium": Medium, "Easy": Easy, "New": New, "Learned": Easy, "": New,
	} {
		got, err := ParseTier(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseTier("Impossible")
	assert.Error(t, err)
}

func TestTermsRoundTrip(t *testing.T) {
	in := `["quick", {"word": "rapid", "bangla": "দ্রুত"}, null]`
	var ts Terms
	require.NoError(t, json.Unmarshal([]byte(in), &ts))
	require.Len(t, ts, 2)

	assert.Equal(t, PlainTerm("quick"), ts[0])
	assert.Equal(t, AnnotatedTerm{Word: "rapid", Translation: "দ্রুত"}, ts[1])
	assert.Equal(t, []string{"quick", "rapid"}, ts.Texts())

	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `["quick", {"word": "rapid", "bangla": "দ্রুত"}]`, string(out))
}

func TestTermsRejectsNumbers(t *testing.T) {
	var ts Terms
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &ts))
}

func TestVerbEligibility(t *testing.T) {
	full := &Word{
		Text:         "go",
		PartOfSpeech: Verb,
		VerbForms: &VerbForms{
			V1: &VerbFormDetail{Word: "go"},
			V2: &VerbFormDetail{Word: "went"},
			V3: &VerbFormDetail{Word: "gone"},
		},
	}
	assert.True(t, full.HasCompleteVerbForms())
	assert.True(t, full.HasPresentAndPast())

	partial := full.Clone()
	partial.VerbForms.V3 = nil
	assert.False(t, partial.HasCompleteVerbForms())
	assert.True(t, partial.HasPresentAndPast())
	assert.True(t, full.HasCompleteVerbForms(), "clone must not alias verb forms")

	noun := full.Clone()
	noun.PartOfSpeech = Noun
	assert.False(t, noun.HasPresentAndPast())
}

func TestWrongCountSpellingDominant(t *testing.T) {
	assert.True(t, WrongCount{Spelling: 2, Meaning: 2}.SpellingDominant())
	assert.False(t, WrongCount{Spelling: 2, Meaning: 3}.SpellingDominant())

	var wc WrongCount
	wc.Charge(CategoryMeaning)
	wc.Charge(CategoryAntonym)
	assert.Equal(t, 2, wc.Total())
	assert.Equal(t, 1, wc.Get(CategoryAntonym))
}

func TestReadImportWordList(t *testing.T) {
	in := `[{"word": "abate", "meaning": "কমা", "parts_of_speech": "Verb",
		"synonyms": ["subside"], "verb_forms": {"v1_present": {"word": "abate"}}}]`
	p, err := ReadImport(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, p.Records, 1)

	w, err := p.Records[0].ToWord()
	require.NoError(t, err)
	assert.Equal(t, "abate", w.Text)
	assert.Equal(t, Verb, w.PartOfSpeech)
	assert.Equal(t, New, w.Tier)
	assert.Equal(t, "abate", w.VerbForms.Present())
	assert.Equal(t, []string{"subside"}, w.Synonyms.Texts())
}

func TestReadImportExportDocument(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := NewExport([]*Word{{ID: "w1", Text: "lucid", Tier: Hard, CorrectCount: 2, TotalExams: 5}}, nil, now)

	var buf strings.Builder
	require.NoError(t, WriteExport(&buf, doc))

	p, err := ReadImport(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, p.Words, 1)
	assert.Equal(t, Hard, p.Words[0].Tier)
	assert.Equal(t, 5, p.Words[0].TotalExams)
}

func TestReadImportRejectsNewerMajor(t *testing.T) {
	_, err := ReadImport(strings.NewReader(`{"format": "v2.0.0", "words": []}`))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ReadImport(strings.NewReader(`{"format": "1.0", "words": []}`))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImportRecordRequiresWord(t *testing.T) {
	_, err := ImportRecord{Meaning: "x"}.ToWord()
	assert.Error(t, err)
}
