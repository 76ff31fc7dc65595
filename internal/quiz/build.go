package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/abhisek/lexicon/internal/vocab"
)

// choiceCount is the number of options on a multiple-choice question.
const choiceCount = 4

// MinFillBlankLength is the shortest word fill-blanks can be built for.
const MinFillBlankLength = 3

// Build renders word as a question of modality m. pool supplies
// distractors, normally every stored word, and may include word itself.
// All randomness comes from rng.
func Build(m Modality, word *vocab.Word, pool []*vocab.Word, rng *rand.Rand) (*Question, error) {
	var (
		q   *Question
		err error
	)
	switch m {
	case MCQEnBn:
		q, err = buildMeaningChoice(word, pool, rng)
	case MCQBnEn:
		q, err = buildWordChoice(word, pool, rng)
	case Spelling:
		q = buildSpelling(word)
	case FillBlanks:
		q, err = buildFillBlanks(word, rng)
	case VerbForm:
		q, err = buildVerbForm(word, rng)
	case SynonymAntonym:
		q, err = buildSynonymAntonym(word, pool, rng)
	default:
		return nil, fmt.Errorf("build question: unknown modality %q", m)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s question for %q: %w", m, word.Text, err)
	}
	q.Modality = m
	q.WordID = word.ID
	if q.Category == "" {
		q.Category = m.Category()
	}
	return q, nil
}

func buildMeaningChoice(word *vocab.Word, pool []*vocab.Word, rng *rand.Rand) (*Question, error) {
	choices, err := choicesFor(word.Meaning, otherWords(word, pool), func(w *vocab.Word) string { return w.Meaning }, rng)
	if err != nil {
		return nil, err
	}
	return &Question{
		Prompt:  word.Text,
		Hint:    posHint(word),
		Choices: choices,
		Answer:  word.Meaning,
	}, nil
}

func buildWordChoice(word *vocab.Word, pool []*vocab.Word, rng *rand.Rand) (*Question, error) {
	choices, err := choicesFor(word.Text, otherWords(word, pool), func(w *vocab.Word) string { return w.Text }, rng)
	if err != nil {
		return nil, err
	}
	return &Question{
		Prompt:  word.Meaning,
		Hint:    posHint(word),
		Choices: choices,
		Answer:  word.Text,
	}, nil
}

func buildSpelling(word *vocab.Word) *Question {
	hint := fmt.Sprintf("%d letters", word.Length())
	if p := posHint(word); p != "" {
		hint = p + " · " + hint
	}
	return &Question{
		Prompt: word.Meaning,
		Hint:   hint,
		Answer: word.Text,
	}
}

func buildFillBlanks(word *vocab.Word, rng *rand.Rand) (*Question, error) {
	if word.Length() < MinFillBlankLength {
		return nil, ErrNotApplicable
	}
	return &Question{
		Prompt: Blank(strings.TrimSpace(word.Text), rng),
		Hint:   word.Meaning,
		Answer: word.Text,
	}, nil
}

// Blank hides roughly half of the inner letters of text. The first and
// last characters stay visible and at least one letter is hidden. The
// result is space-separated so blanks line up in a monospace terminal.
func Blank(text string, rng *rand.Rand) string {
	runes := []rune(text)
	var middle []int
	for i := 1; i < len(runes)-1; i++ {
		if unicode.IsLetter(runes[i]) {
			middle = append(middle, i)
		}
	}

	n := max(1, (len(runes)-2)/2)
	n = min(n, len(middle))
	rng.Shuffle(len(middle), func(i, j int) { middle[i], middle[j] = middle[j], middle[i] })
	for _, i := range middle[:n] {
		runes[i] = '_'
	}

	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return strings.Join(out, " ")
}

type verbSlot struct {
	label string
	form  string
}

func buildVerbForm(word *vocab.Word, rng *rand.Rand) (*Question, error) {
	if !word.HasCompleteVerbForms() {
		return nil, ErrNotApplicable
	}
	slots := lo.Filter([]verbSlot{
		{"present (V1)", word.VerbForms.Present()},
		{"past (V2)", word.VerbForms.Past()},
		{"past participle (V3)", word.VerbForms.PastParticiple()},
	}, func(s verbSlot, _ int) bool { return s.form != "" })

	shown := rng.IntN(len(slots))
	asked := rng.IntN(len(slots) - 1)
	if asked >= shown {
		asked++
	}

	return &Question{
		Prompt: fmt.Sprintf("The %s form is %q. What is the %s form?", slots[shown].label, slots[shown].form, slots[asked].label),
		Hint:   word.Meaning,
		Answer: slots[asked].form,
	}, nil
}

func buildSynonymAntonym(word *vocab.Word, pool []*vocab.Word, rng *rand.Rand) (*Question, error) {
	type kind struct {
		name     string
		terms    []string
		category vocab.Category
	}
	kinds := lo.Filter([]kind{
		{"synonym", word.Synonyms.Texts(), vocab.CategorySynonym},
		{"antonym", word.Antonyms.Texts(), vocab.CategoryAntonym},
	}, func(k kind, _ int) bool { return len(k.terms) > 0 })
	if len(kinds) == 0 {
		return nil, ErrNotApplicable
	}
	k := kinds[rng.IntN(len(kinds))]
	answer := k.terms[rng.IntN(len(k.terms))]

	exclude := map[string]bool{strings.ToLower(word.Text): true}
	for _, t := range append(word.Synonyms.Texts(), word.Antonyms.Texts()...) {
		exclude[strings.ToLower(t)] = true
	}
	var candidates []string
	for _, w := range otherWords(word, pool) {
		for _, t := range append([]string{w.Text}, append(w.Synonyms.Texts(), w.Antonyms.Texts()...)...) {
			if t = strings.TrimSpace(t); t != "" && !exclude[strings.ToLower(t)] {
				candidates = append(candidates, t)
			}
		}
	}

	choices, err := shuffleChoices(answer, lo.Uniq(candidates), rng)
	if err != nil {
		return nil, err
	}
	return &Question{
		Prompt:   fmt.Sprintf("Pick a %s of %q", k.name, word.Text),
		Hint:     word.Meaning,
		Choices:  choices,
		Answer:   answer,
		Category: k.category,
	}, nil
}

// choicesFor collects distinct non-empty field values from others that
// differ from answer and mixes up to three of them with answer.
func choicesFor(answer string, others []*vocab.Word, field func(*vocab.Word) string, rng *rand.Rand) ([]string, error) {
	values := lo.Uniq(lo.FilterMap(others, func(w *vocab.Word, _ int) (string, bool) {
		v := strings.TrimSpace(field(w))
		return v, v != "" && v != answer
	}))
	return shuffleChoices(answer, values, rng)
}

func shuffleChoices(answer string, distractors []string, rng *rand.Rand) ([]string, error) {
	if len(distractors) == 0 {
		return nil, ErrNotEnoughWords
	}
	rng.Shuffle(len(distractors), func(i, j int) { distractors[i], distractors[j] = distractors[j], distractors[i] })
	choices := append([]string{answer}, distractors[:min(choiceCount-1, len(distractors))]...)
	rng.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	return choices, nil
}

func otherWords(word *vocab.Word, pool []*vocab.Word) []*vocab.Word {
	return lo.Filter(pool, func(w *vocab.Word, _ int) bool { return w != nil && w.ID != word.ID })
}

func posHint(word *vocab.Word) string {
	if word.PartOfSpeech == "" {
		return ""
	}
	return string(word.PartOfSpeech)
}
