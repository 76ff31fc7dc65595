package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lexicon/internal/vocab"
)

// ErrNotEnoughWords is returned when a multiple-choice question cannot
// find a single distractor in the pool.
var ErrNotEnoughWords = errors.New("not enough words for distractors")

// ErrNotApplicable is returned when the word lacks the data a modality
// needs (no verb forms, no synonyms, too short to blank out).
var ErrNotApplicable = errors.New("modality does not apply to word")

// Modality is one way of quizzing a word.
type Modality string

const (
	MCQEnBn        Modality = "mcq-en-bn"
	MCQBnEn        Modality = "mcq-bn-en"
	Spelling       Modality = "spelling"
	FillBlanks     Modality = "fill-blanks"
	VerbForm       Modality = "verb-form"
	SynonymAntonym Modality = "synonym-antonym"
)

// Modalities lists every modality in menu order.
var Modalities = []Modality{MCQEnBn, MCQBnEn, Spelling, FillBlanks, VerbForm, SynonymAntonym}

// ParseModality accepts a modality name as printed by String.
func ParseModality(s string) (Modality, error) {
	m := Modality(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modalities {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown quiz type %q", s)
}

func (m Modality) String() string { return string(m) }

// Label is the human-readable name shown in menus and summaries.
func (m Modality) Label() string {
	switch m {
	case MCQEnBn:
		return "MCQ (English → Bangla)"
	case MCQBnEn:
		return "MCQ (Bangla → English)"
	case Spelling:
		return "Spelling"
	case FillBlanks:
		return "Fill in the blanks"
	case VerbForm:
		return "Verb forms"
	case SynonymAntonym:
		return "Synonyms & antonyms"
	}
	return string(m)
}

// MultipleChoice reports whether the modality presents options.
func (m Modality) MultipleChoice() bool {
	return m == MCQEnBn || m == MCQBnEn || m == SynonymAntonym
}

// Category is the wrong-count bucket a miss on this modality charges.
// SynonymAntonym questions carry their own category; see Question.Category.
func (m Modality) Category() vocab.Category {
	switch m {
	case MCQEnBn:
		return vocab.CategoryMeaning
	case SynonymAntonym:
		return vocab.CategorySynonym
	default:
		return vocab.CategorySpelling
	}
}

// Question is one rendered quiz item.
type Question struct {
	Modality Modality
	WordID   string

	// Prompt is the main line shown to the learner.
	Prompt string

	// Hint is secondary context (part of speech, meaning, letter count).
	Hint string

	// Choices is set only for multiple-choice modalities.
	Choices []string

	// Answer is the canonical correct answer.
	Answer string

	// Accept lists extra answers that also count as correct for
	// text-entry modalities.
	Accept []string

	// Category is the wrong-count bucket charged on a miss.
	Category vocab.Category
}

// Verdict is the outcome of checking one answer.
type Verdict struct {
	Correct  bool
	Given    string
	Expected string
}

// Check grades answer against the question. Multiple-choice answers must
// match the option text exactly; typed answers are compared ignoring case
// and surrounding whitespace.
func (q *Question) Check(answer string) Verdict {
	v := Verdict{Given: answer, Expected: q.Answer}
	if q.Modality.MultipleChoice() {
		v.Correct = answer == q.Answer
		return v
	}

	given := strings.TrimSpace(answer)
	if given == "" {
		return v
	}
	for _, want := range append([]string{q.Answer}, q.Accept...) {
		if strings.EqualFold(given, strings.TrimSpace(want)) {
			v.Correct = true
			break
		}
	}
	return v
}
