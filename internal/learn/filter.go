package learn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lexicon/internal/quiz"
	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/vocab"
)

// Filter selects which words make up a session's pool.
type Filter string

const (
	FilterDefault Filter = ""
	FilterHard    Filter = "Hard"
	FilterMedium  Filter = "Medium"
	FilterEasy    Filter = "Easy"
	FilterNew     Filter = "New"
	FilterLearned Filter = "Learned"
	FilterAll     Filter = "All"
	FilterToday   Filter = "Today's"
)

// Filters lists every filter in menu order.
var Filters = []Filter{FilterDefault, FilterHard, FilterMedium, FilterEasy, FilterNew, FilterLearned, FilterAll, FilterToday}

// ParseFilter accepts a filter name, ignoring case. "default" and the
// empty string both mean FilterDefault; "today" is accepted for Today's.
func ParseFilter(s string) (Filter, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "", "default":
		return FilterDefault, nil
	case "today":
		return FilterToday, nil
	}
	for _, f := range Filters {
		if strings.ToLower(string(f)) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Label is the menu text for the filter.
func (f Filter) Label() string {
	switch f {
	case FilterDefault:
		return "Default (Hard + Medium)"
	case FilterToday:
		return "Today's words"
	case FilterAll:
		return "All words"
	}
	return string(f)
}

// Tiers returns the tiers the filter selects, or nil when the filter
// isn't tier-based.
func (f Filter) Tiers() []vocab.Tier {
	switch f {
	case FilterDefault:
		return []vocab.Tier{vocab.Hard, vocab.Medium}
	case FilterHard:
		return []vocab.Tier{vocab.Hard}
	case FilterMedium:
		return []vocab.Tier{vocab.Medium}
	case FilterEasy, FilterLearned:
		return []vocab.Tier{vocab.Easy}
	case FilterNew:
		return []vocab.Tier{vocab.New}
	}
	return nil
}

// FetchPool reads the words matching f. Today's is the local calendar
// day containing now.
func FetchPool(ctx context.Context, words store.WordRepo, f Filter, now time.Time) ([]*vocab.Word, error) {
	switch f {
	case FilterAll:
		return words.All(ctx)
	case FilterToday:
		y, m, d := now.Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		return words.CreatedBetween(ctx, start, start.AddDate(0, 0, 1))
	}
	tiers := f.Tiers()
	if tiers == nil {
		return nil, fmt.Errorf("unknown filter %q", f)
	}
	return words.ByTiers(ctx, tiers...)
}

// QuizPreference is either Dynamic or a single pinned modality.
type QuizPreference string

// Dynamic lets the quiz-type rule pick a modality per word.
const Dynamic QuizPreference = "dynamic"

// Preferences lists every preference in menu order.
var Preferences = append([]QuizPreference{Dynamic}, pinnedAll()...)

func pinnedAll() []QuizPreference {
	out := make([]QuizPreference, len(quiz.Modalities))
	for i, m := range quiz.Modalities {
		out[i] = Pin(m)
	}
	return out
}

// Pin returns the preference that always asks modality m.
func Pin(m quiz.Modality) QuizPreference {
	return QuizPreference(m)
}

// ParsePreference accepts "dynamic" or a modality name.
func ParsePreference(s string) (QuizPreference, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" || key == string(Dynamic) {
		return Dynamic, nil
	}
	m, err := quiz.ParseModality(key)
	if err != nil {
		return "", fmt.Errorf("unknown quiz preference %q", s)
	}
	return Pin(m), nil
}

// Pinned returns the pinned modality, or false for Dynamic.
func (p QuizPreference) Pinned() (quiz.Modality, bool) {
	if p == Dynamic || p == "" {
		return "", false
	}
	return quiz.Modality(p), true
}

// Label is the menu text for the preference.
func (p QuizPreference) Label() string {
	if m, ok := p.Pinned(); ok {
		return m.Label()
	}
	return "Dynamic (adaptive)"
}
