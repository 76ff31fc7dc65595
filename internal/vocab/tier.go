package vocab

import (
	"fmt"
	"strings"
)

// Tier is the difficulty level a word currently sits at.
// The ladder runs New < Easy < Medium < Hard; a correct answer steps
// toward Easy and a miss steps toward Hard, one rung at a time.
type Tier int

const (
	New Tier = iota
	Easy
	Medium
	Hard
)

// Tiers lists every tier in ladder order.
var Tiers = []Tier{New, Easy, Medium, Hard}

// LearnedLabel is the display name for words sitting at Easy.
const LearnedLabel = "Learned"

func (t Tier) String() string {
	switch t {
	case New:
		return "New"
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Valid reports whether t is on the ladder.
func (t Tier) Valid() bool {
	return t >= New && t <= Hard
}

// Promote moves one step toward Easy. Easy is the floor.
func (t Tier) Promote() Tier {
	switch t {
	case Hard:
		return Medium
	default:
		// New, Easy and Medium all land on Easy.
		return Easy
	}
}

// Demote moves one step toward Hard. Hard is the ceiling.
func (t Tier) Demote() Tier {
	if t >= Hard {
		return Hard
	}
	return t + 1
}

// ParseTier reads a stored tier name. "Learned" is accepted for legacy
// records and maps to Easy.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new", "":
		return New, nil
	case "easy", "learned":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return New, fmt.Errorf("unknown tier %q", s)
}

func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	p, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = p
	return nil
}

// Category is a mistake category a miss can be charged to.
type Category string

const (
	CategorySpelling Category = "spelling"
	CategoryMeaning  Category = "meaning"
	CategorySynonym  Category = "synonym"
	CategoryAntonym  Category = "antonym"
)

// Categories lists every category in display order.
var Categories = []Category{CategorySpelling, CategoryMeaning, CategorySynonym, CategoryAntonym}

// Label is the capitalized display name.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// WrongCount tallies misses per category. Counters never go negative.
type WrongCount struct {
	Spelling int `json:"spelling"`
	Meaning  int `json:"meaning"`
	Synonym  int `json:"synonym"`
	Antonym  int `json:"antonym"`
}

// Charge increments the counter for c.
func (w *WrongCount) Charge(c Category) {
	switch c {
	case CategorySpelling:
		w.Spelling++
	case CategoryMeaning:
		w.Meaning++
	case CategorySynonym:
		w.Synonym++
	case CategoryAntonym:
		w.Antonym++
	}
}

// Get returns the counter for c.
func (w WrongCount) Get(c Category) int {
	switch c {
	case CategorySpelling:
		return w.Spelling
	case CategoryMeaning:
		return w.Meaning
	case CategorySynonym:
		return w.Synonym
	case CategoryAntonym:
		return w.Antonym
	}
	return 0
}

// Total sums all categories.
func (w WrongCount) Total() int {
	return w.Spelling + w.Meaning + w.Synonym + w.Antonym
}

// SpellingDominant reports whether spelling misses are at least as
// frequent as every other category.
func (w WrongCount) SpellingDominant() bool {
	return w.Spelling >= w.Meaning && w.Spelling >= w.Synonym && w.Spelling >= w.Antonym
}
