package vocab

import (
	"strings"
	"time"
)

// PartOfSpeech is the grammatical role of a word.
type PartOfSpeech string

const (
	Noun         PartOfSpeech = "noun"
	Verb         PartOfSpeech = "verb"
	Adjective    PartOfSpeech = "adjective"
	Adverb       PartOfSpeech = "adverb"
	Pronoun      PartOfSpeech = "pronoun"
	Preposition  PartOfSpeech = "preposition"
	Conjunction  PartOfSpeech = "conjunction"
	Interjection PartOfSpeech = "interjection"
	OtherPOS     PartOfSpeech = "other"
)

// AllPartsOfSpeech lists every part of speech in display order.
var AllPartsOfSpeech = []PartOfSpeech{
	Noun, Verb, Adjective, Adverb, Pronoun, Preposition, Conjunction, Interjection, OtherPOS,
}

// ParsePartOfSpeech normalizes s. Unknown values map to OtherPOS.
func ParsePartOfSpeech(s string) PartOfSpeech {
	p := PartOfSpeech(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllPartsOfSpeech {
		if p == known {
			return p
		}
	}
	return OtherPOS
}

// VerbFormDetail describes one principal part of a verb.
type VerbFormDetail struct {
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Meaning       string `json:"bangla_meaning,omitempty"`
	UsageTiming   string `json:"usage_timing,omitempty"`
}

// FormExamples holds one example sentence per verb form.
type FormExamples struct {
	V1 string `json:"v1,omitempty"`
	V2 string `json:"v2,omitempty"`
	V3 string `json:"v3,omitempty"`
}

// VerbForms holds the present, past and past participle forms of a verb.
type VerbForms struct {
	V1       *VerbFormDetail `json:"v1_present,omitempty"`
	V2       *VerbFormDetail `json:"v2_past,omitempty"`
	V3       *VerbFormDetail `json:"v3_past_participle,omitempty"`
	Examples *FormExamples   `json:"form_examples,omitempty"`
}

func formText(d *VerbFormDetail) string {
	if d == nil {
		return ""
	}
	return strings.TrimSpace(d.Word)
}

// Present returns the V1 text, or "".
func (v *VerbForms) Present() string {
	if v == nil {
		return ""
	}
	return formText(v.V1)
}

// Past returns the V2 text, or "".
func (v *VerbForms) Past() string {
	if v == nil {
		return ""
	}
	return formText(v.V2)
}

// PastParticiple returns the V3 text, or "".
func (v *VerbForms) PastParticiple() string {
	if v == nil {
		return ""
	}
	return formText(v.V3)
}

// Word is a vocabulary entry together with its learning progress.
type Word struct {
	ID                 string       `json:"id"`
	Text               string       `json:"word"`
	Meaning            string       `json:"meaning"`
	MeaningExplanation string       `json:"meaning_explanation,omitempty"`
	PartOfSpeech       PartOfSpeech `json:"partOfSpeech"`
	Syllables          []string     `json:"syllables,omitempty"`
	UsageDistinction   string       `json:"usageDistinction,omitempty"`
	Synonyms           Terms        `json:"synonyms,omitempty"`
	Antonyms           Terms        `json:"antonyms,omitempty"`
	Examples           []string     `json:"exampleSentences,omitempty"`
	VerbForms          *VerbForms   `json:"verb_forms,omitempty"`

	Tier          Tier       `json:"difficulty"`
	Wrong         WrongCount `json:"wrong_count"`
	CorrectCount  int        `json:"correct_count"`
	TotalExams    int        `json:"total_exams"`
	CorrectStreak int        `json:"correct_streak"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of w.
func (w *Word) Clone() *Word {
	c := *w
	c.Syllables = append([]string(nil), w.Syllables...)
	c.Synonyms = append(Terms(nil), w.Synonyms...)
	c.Antonyms = append(Terms(nil), w.Antonyms...)
	c.Examples = append([]string(nil), w.Examples...)
	if w.VerbForms != nil {
		vf := *w.VerbForms
		vf.V1 = cloneDetail(w.VerbForms.V1)
		vf.V2 = cloneDetail(w.VerbForms.V2)
		vf.V3 = cloneDetail(w.VerbForms.V3)
		if w.VerbForms.Examples != nil {
			ex := *w.VerbForms.Examples
			vf.Examples = &ex
		}
		c.VerbForms = &vf
	}
	return &c
}

func cloneDetail(d *VerbFormDetail) *VerbFormDetail {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// IsVerb reports whether the word is tagged as a verb.
func (w *Word) IsVerb() bool {
	return w.PartOfSpeech == Verb
}

// HasCompleteVerbForms reports whether the word is a verb with all three
// principal parts populated.
func (w *Word) HasCompleteVerbForms() bool {
	return w.IsVerb() &&
		w.VerbForms.Present() != "" &&
		w.VerbForms.Past() != "" &&
		w.VerbForms.PastParticiple() != ""
}

// HasPresentAndPast reports whether the word is a verb with V1 and V2 set.
func (w *Word) HasPresentAndPast() bool {
	return w.IsVerb() && w.VerbForms.Present() != "" && w.VerbForms.Past() != ""
}

// Length returns the number of characters in the word text.
func (w *Word) Length() int {
	return len([]rune(strings.TrimSpace(w.Text)))
}

// Learned reports whether the word carries the "Learned" display label.
func (w *Word) Learned() bool {
	return w.Tier == Easy
}

// Accuracy returns correct answers over total exams, or 0 if never tested.
func (w *Word) Accuracy() float64 {
	if w.TotalExams == 0 {
		return 0
	}
	return float64(w.CorrectCount) / float64(w.TotalExams)
}
