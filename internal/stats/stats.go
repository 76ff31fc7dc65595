// Package stats aggregates learning progress across the vocabulary.
package stats

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/lexicon/internal/vocab"
)

// MostMistakenLimit caps the most-mistaken list.
const MostMistakenLimit = 10

// RecentLimit caps the recent-activity list.
const RecentLimit = 5

// Totals sums exam results over every word.
type Totals struct {
	Exams    int
	Correct  int
	Wrong    int
	Accuracy float64
}

// DayAccuracy is the result for one local calendar day.
type DayAccuracy struct {
	Date     time.Time
	Exams    int
	Correct  int
	Accuracy float64
}

// Mistaken is a word with its total wrong count.
type Mistaken struct {
	Word  *vocab.Word
	Wrong int
}

// Counts are the dashboard headline numbers.
type Counts struct {
	Words    int
	Learned  int
	ToReview int
	ByTier   map[vocab.Tier]int
}

// Report is the full statistics snapshot.
type Report struct {
	Totals       Totals
	Errors       vocab.WrongCount
	MostMistaken []Mistaken
	Daily        []DayAccuracy
	Counts       Counts
	Recent       []*vocab.Word
	PartOfSpeech map[vocab.PartOfSpeech]int
}

// Compute builds a report from words. Dates are bucketed in now's
// location. words is not modified.
func Compute(words []*vocab.Word, now time.Time) Report {
	r := Report{
		Totals:       computeTotals(words),
		Errors:       errorDistribution(words),
		MostMistaken: mostMistaken(words),
		Daily:        dailyAccuracy(words, now.Location()),
		Counts:       computeCounts(words),
		Recent:       recent(words),
		PartOfSpeech: lo.CountValuesBy(words, func(w *vocab.Word) vocab.PartOfSpeech { return w.PartOfSpeech }),
	}
	return r
}

func computeTotals(words []*vocab.Word) Totals {
	t := Totals{
		Exams:   lo.SumBy(words, func(w *vocab.Word) int { return w.TotalExams }),
		Correct: lo.SumBy(words, func(w *vocab.Word) int { return w.CorrectCount }),
	}
	t.Wrong = max(0, t.Exams-t.Correct)
	t.Accuracy = ratio(t.Correct, t.Exams)
	return t
}

func errorDistribution(words []*vocab.Word) vocab.WrongCount {
	return lo.Reduce(words, func(acc vocab.WrongCount, w *vocab.Word, _ int) vocab.WrongCount {
		acc.Spelling += w.Wrong.Spelling
		acc.Meaning += w.Wrong.Meaning
		acc.Synonym += w.Wrong.Synonym
		acc.Antonym += w.Wrong.Antonym
		return acc
	}, vocab.WrongCount{})
}

func mostMistaken(words []*vocab.Word) []Mistaken {
	out := lo.FilterMap(words, func(w *vocab.Word, _ int) (Mistaken, bool) {
		n := w.Wrong.Total()
		return Mistaken{Word: w, Wrong: n}, n > 0
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Wrong > out[j].Wrong })
	if len(out) > MostMistakenLimit {
		out = out[:MostMistakenLimit]
	}
	return out
}

func dailyAccuracy(words []*vocab.Word, loc *time.Location) []DayAccuracy {
	tested := lo.Filter(words, func(w *vocab.Word, _ int) bool {
		return w.TotalExams > 0 && !w.UpdatedAt.IsZero()
	})
	byDay := lo.GroupBy(tested, func(w *vocab.Word) time.Time {
		y, m, d := w.UpdatedAt.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	})

	out := make([]DayAccuracy, 0, len(byDay))
	for day, ws := range byDay {
		da := DayAccuracy{
			Date:    day,
			Exams:   lo.SumBy(ws, func(w *vocab.Word) int { return w.TotalExams }),
			Correct: lo.SumBy(ws, func(w *vocab.Word) int { return w.CorrectCount }),
		}
		da.Accuracy = ratio(da.Correct, da.Exams)
		out = append(out, da)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func computeCounts(words []*vocab.Word) Counts {
	byTier := make(map[vocab.Tier]int, len(vocab.Tiers))
	for _, t := range vocab.Tiers {
		byTier[t] = 0
	}
	for _, w := range words {
		byTier[w.Tier]++
	}
	return Counts{
		Words:    len(words),
		Learned:  byTier[vocab.Easy],
		ToReview: byTier[vocab.Hard] + byTier[vocab.Medium],
		ByTier:   byTier,
	}
}

func recent(words []*vocab.Word) []*vocab.Word {
	out := append([]*vocab.Word(nil), words...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > RecentLimit {
		out = out[:RecentLimit]
	}
	return out
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
