package learn

import (
	"math/rand/v2"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/lexicon/internal/quiz"
	"github.com/abhisek/lexicon/internal/vocab"
)

// SpellingPriorityThreshold is the spelling wrong-count at which a word
// jumps ahead of the tier scan.
const SpellingPriorityThreshold = 3

// tierScanOrder is the order tiers are searched for the next word.
var tierScanOrder = []vocab.Tier{vocab.Hard, vocab.Medium, vocab.New, vocab.Easy}

// NextWord picks the next word to ask from candidates, which must
// already exclude words tested this session. It returns nil when
// candidates is empty.
func NextWord(candidates []*vocab.Word, rng *rand.Rand) *vocab.Word {
	if len(candidates) == 0 {
		return nil
	}

	var worst *vocab.Word
	for _, w := range candidates {
		if w.Wrong.Spelling < SpellingPriorityThreshold {
			continue
		}
		// Strictly greater keeps the first word on ties.
		if worst == nil || w.Wrong.Spelling > worst.Wrong.Spelling {
			worst = w
		}
	}
	if worst != nil {
		return worst
	}

	byTier := lo.GroupBy(candidates, func(w *vocab.Word) vocab.Tier { return w.Tier })
	for _, t := range tierScanOrder {
		if group := byTier[t]; len(group) > 0 {
			return group[rng.IntN(len(group))]
		}
	}
	return candidates[0]
}

// Weight is one entry of a WeightTable.
type Weight struct {
	Modality quiz.Modality
	Weight   float64
}

// WeightTable maps modalities to relative draw probabilities.
type WeightTable []Weight

// Pick draws a modality in proportion to the table's weights.
func (t WeightTable) Pick(rng *rand.Rand) quiz.Modality {
	total := lo.SumBy(t, func(w Weight) float64 { return w.Weight })
	r := rng.Float64() * total
	for _, w := range t {
		if r < w.Weight {
			return w.Modality
		}
		r -= w.Weight
	}
	return t[len(t)-1].Modality
}

// DynamicWeights is the even split used once spelling drills and verb
// forms have been ruled out.
var DynamicWeights = WeightTable{
	{quiz.MCQBnEn, 1.0 / 3},
	{quiz.FillBlanks, 1.0 / 3},
	{quiz.MCQEnBn, 1.0 / 3},
}

// VerbFormChance is the probability a verb with present and past forms
// gets a verb-form question in dynamic mode.
const VerbFormChance = 1.0 / 3

// SpellingDrillThreshold is the spelling wrong-count above which dynamic
// mode drills spelling, provided spelling is the dominant mistake.
const SpellingDrillThreshold = 1

// Advisories shown when a pinned modality can't be used for a word.
const (
	AdvisoryNotVerb       = "This word is not a verb or lacks complete verb forms. Switching to MCQ test."
	AdvisoryTooShort      = "This word is too short for a fill-in-the-blanks test. Switching to MCQ test."
	AdvisoryNoRelations   = "This word has no synonyms or antonyms. Switching to MCQ test."
	AdvisoryFewDistractor = "Not enough words for a multiple-choice test. Switching to spelling."
)

// ChooseModality applies the quiz-type rule to w. The advisory is
// non-empty when a pinned modality had to be swapped for another.
func ChooseModality(w *vocab.Word, pref QuizPreference, rng *rand.Rand) (quiz.Modality, string) {
	if m, ok := pref.Pinned(); ok {
		switch {
		case m == quiz.VerbForm && !w.HasCompleteVerbForms():
			return quiz.MCQEnBn, AdvisoryNotVerb
		case m == quiz.FillBlanks && w.Length() < quiz.MinFillBlankLength:
			return quiz.MCQBnEn, AdvisoryTooShort
		case m == quiz.SynonymAntonym && len(w.Synonyms) == 0 && len(w.Antonyms) == 0:
			return quiz.MCQEnBn, AdvisoryNoRelations
		}
		return m, ""
	}

	if w.Wrong.Spelling > SpellingDrillThreshold && w.Wrong.SpellingDominant() {
		return quiz.Spelling, ""
	}
	// An incomplete verb that wins the draw falls through to the even
	// split so it never gets a verb-form question.
	if w.HasPresentAndPast() && rng.Float64() < VerbFormChance && w.HasCompleteVerbForms() {
		return quiz.VerbForm, ""
	}
	m := DynamicWeights.Pick(rng)
	if m == quiz.FillBlanks && w.Length() < quiz.MinFillBlankLength {
		m = quiz.MCQBnEn
	}
	return m, ""
}

// Score applies one answer to w. A correct answer promotes the tier and
// extends the streak; a miss demotes it, resets the streak and charges
// category. Either way the exam count and UpdatedAt advance.
func Score(w *vocab.Word, correct bool, category vocab.Category, now time.Time) {
	if correct {
		w.CorrectCount++
		w.CorrectStreak++
		w.Tier = w.Tier.Promote()
	} else {
		w.Tier = w.Tier.Demote()
		w.CorrectStreak = 0
		w.Wrong.Charge(category)
	}
	w.TotalExams++
	w.UpdatedAt = now
}
