package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexicon/internal/vocab"
)

var now = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func day(offset int, hour int) time.Time {
	return time.Date(2025, 3, 10+offset, hour, 0, 0, 0, time.UTC)
}

func TestComputeEmpty(t *testing.T) {
	r := Compute(nil, now)
	assert.Equal(t, Totals{}, r.Totals)
	assert.Empty(t, r.MostMistaken)
	assert.Empty(t, r.Daily)
	assert.Empty(t, r.Recent)
	assert.Equal(t, 0, r.Counts.Words)
	assert.Len(t, r.Counts.ByTier, 4)
}

func TestComputeTotals(t *testing.T) {
	words := []*vocab.Word{
		{TotalExams: 4, CorrectCount: 3},
		{TotalExams: 6, CorrectCount: 2},
		// Inconsistent counters never produce a negative wrong total.
		{TotalExams: 1, CorrectCount: 9},
	}
	r := Compute(words, now)
	assert.Equal(t, 11, r.Totals.Exams)
	assert.Equal(t, 14, r.Totals.Correct)
	assert.Equal(t, 0, r.Totals.Wrong)

	r = Compute(words[:2], now)
	assert.Equal(t, 5, r.Totals.Wrong)
	assert.InDelta(t, 0.5, r.Totals.Accuracy, 1e-9)
}

func TestErrorDistribution(t *testing.T) {
	words := []*vocab.Word{
		{Wrong: vocab.WrongCount{Spelling: 2, Meaning: 1}},
		{Wrong: vocab.WrongCount{Spelling: 1, Synonym: 3, Antonym: 1}},
	}
	r := Compute(words, now)
	assert.Equal(t, vocab.WrongCount{Spelling: 3, Meaning: 1, Synonym: 3, Antonym: 1}, r.Errors)
}

func TestMostMistaken(t *testing.T) {
	var words []*vocab.Word
	for i := 0; i < 14; i++ {
		words = append(words, &vocab.Word{
			Text:  fmt.Sprintf("w%02d", i),
			Wrong: vocab.WrongCount{Spelling: i % 7},
		})
	}
	r := Compute(words, now)
	require.Len(t, r.MostMistaken, MostMistakenLimit)
	for i := 1; i < len(r.MostMistaken); i++ {
		assert.GreaterOrEqual(t, r.MostMistaken[i-1].Wrong, r.MostMistaken[i].Wrong)
	}
	for _, m := range r.MostMistaken {
		assert.Positive(t, m.Wrong)
	}
	assert.Equal(t, "w06", r.MostMistaken[0].Word.Text, "ties keep input order")
}

func TestDailyAccuracy(t *testing.T) {
	words := []*vocab.Word{
		{TotalExams: 2, CorrectCount: 1, UpdatedAt: day(0, 9)},
		{TotalExams: 2, CorrectCount: 2, UpdatedAt: day(0, 17)},
		{TotalExams: 5, CorrectCount: 1, UpdatedAt: day(-2, 8)},
		{TotalExams: 0, UpdatedAt: day(-1, 8)},
	}
	r := Compute(words, now)
	require.Len(t, r.Daily, 2)

	assert.Equal(t, day(-2, 0), r.Daily[0].Date)
	assert.Equal(t, 5, r.Daily[0].Exams)
	assert.InDelta(t, 0.2, r.Daily[0].Accuracy, 1e-9)

	assert.Equal(t, day(0, 0), r.Daily[1].Date)
	assert.Equal(t, 4, r.Daily[1].Exams)
	assert.Equal(t, 3, r.Daily[1].Correct)
}

func TestCounts(t *testing.T) {
	words := []*vocab.Word{
		{Tier: vocab.Hard}, {Tier: vocab.Hard}, {Tier: vocab.Medium},
		{Tier: vocab.Easy}, {Tier: vocab.New},
	}
	c := Compute(words, now).Counts
	assert.Equal(t, 5, c.Words)
	assert.Equal(t, 1, c.Learned)
	assert.Equal(t, 3, c.ToReview)
	assert.Equal(t, 2, c.ByTier[vocab.Hard])
	assert.Equal(t, 1, c.ByTier[vocab.New])
}

func TestRecentAndPartOfSpeech(t *testing.T) {
	var words []*vocab.Word
	for i := 0; i < 8; i++ {
		pos := vocab.Noun
		if i%2 == 0 {
			pos = vocab.Verb
		}
		words = append(words, &vocab.Word{
			Text:         fmt.Sprintf("w%d", i),
			PartOfSpeech: pos,
			UpdatedAt:    day(0, i),
		})
	}
	r := Compute(words, now)
	require.Len(t, r.Recent, RecentLimit)
	assert.Equal(t, "w7", r.Recent[0].Text)
	assert.Equal(t, "w3", r.Recent[4].Text)
	assert.Equal(t, "w0", words[0].Text, "input order is untouched")

	assert.Equal(t, map[vocab.PartOfSpeech]int{vocab.Noun: 4, vocab.Verb: 4}, r.PartOfSpeech)
}
