// Package flashcards is a flip-card review of the filtered words. It
// never scores answers.
package flashcards

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/lexicon/internal/learn"
	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/ui/components"
	"github.com/abhisek/lexicon/internal/ui/layout"
	"github.com/abhisek/lexicon/internal/ui/theme"
	"github.com/abhisek/lexicon/internal/vocab"
)

// exampleLimit caps the example sentences on the back of a card.
const exampleLimit = 2

type deckLoadedMsg struct {
	Filter learn.Filter
	Words  []*vocab.Word
	Err    error
}

// FlashcardsScreen shows one card at a time.
type FlashcardsScreen struct {
	env     screen.Env
	filter  learn.Filter
	deck    []*vocab.Word
	index   int
	flipped bool
	loaded  bool
	err     error
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New creates a flashcard deck over the words matching filter.
func New(env screen.Env, filter learn.Filter) *FlashcardsScreen {
	return &FlashcardsScreen{env: env, filter: filter}
}

func (s *FlashcardsScreen) Init() tea.Cmd {
	return s.load(s.filter)
}

func (s *FlashcardsScreen) load(filter learn.Filter) tea.Cmd {
	s.loaded = false
	words, now := s.env.Words, s.env.Clock()()
	return func() tea.Msg {
		pool, err := learn.FetchPool(context.Background(), words, filter, now)
		return deckLoadedMsg{Filter: filter, Words: pool, Err: err}
	}
}

func (s *FlashcardsScreen) Title() string {
	return "Flashcards"
}

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "S", Description: "Shuffle"},
		{Key: "F", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deckLoadedMsg:
		if msg.Filter != s.filter {
			return s, nil
		}
		s.loaded = true
		s.err = msg.Err
		if msg.Err != nil {
			s.env.Log().WithError(msg.Err).WithField("filter", string(msg.Filter)).Error("load flashcards")
		}
		s.deck = msg.Words
		s.shuffle()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "space", " ", "enter":
			s.flipped = !s.flipped
		case "right", "l", "n":
			if s.index < len(s.deck)-1 {
				s.index++
				s.flipped = false
			}
		case "left", "h", "p":
			if s.index > 0 {
				s.index--
				s.flipped = false
			}
		case "s", "S":
			s.shuffle()
		case "f", "F":
			s.filter = nextFilter(s.filter)
			return s, s.load(s.filter)
		}
	}
	return s, nil
}

// shuffle reorders the deck and returns to the first card.
func (s *FlashcardsScreen) shuffle() {
	if s.env.Rand != nil {
		s.env.Rand.Shuffle(len(s.deck), func(i, j int) { s.deck[i], s.deck[j] = s.deck[j], s.deck[i] })
	} else {
		s.deck = lo.Shuffle(s.deck)
	}
	s.index = 0
	s.flipped = false
}

func nextFilter(f learn.Filter) learn.Filter {
	i := lo.IndexOf(learn.Filters, f)
	return learn.Filters[(i+1)%len(learn.Filters)]
}

// Current returns the card on screen, or nil.
func (s *FlashcardsScreen) Current() *vocab.Word {
	if s.index < 0 || s.index >= len(s.deck) {
		return nil
	}
	return s.deck[s.index]
}

func (s *FlashcardsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var body string
	switch {
	case !s.loaded:
		body = dim.Render("Shuffling the deck...")
	case s.err != nil:
		body = lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load words: " + s.err.Error())
	case len(s.deck) == 0:
		body = dim.Render(fmt.Sprintf("No words match %q. Press F for another filter.", s.filter.Label()))
	default:
		body = renderCard(s.Current(), s.flipped, cw)
	}

	position := ""
	if len(s.deck) > 0 {
		position = fmt.Sprintf("  %d / %d", s.index+1, len(s.deck))
	}
	top := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s.filter.Label()) + dim.Render(position)

	return components.CabinetFrame(top+"\n\n"+body, width, height)
}

// renderCard renders the front (word) or back (meaning and relations).
func renderCard(w *vocab.Word, flipped bool, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(w.Text))
	b.WriteString("\n")
	meta := fmt.Sprintf("%s · %s", w.PartOfSpeech, w.Tier)
	if len(w.Syllables) > 0 {
		meta += " · " + strings.Join(w.Syllables, "-")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TierColor(w.Tier.String())).Render(meta))

	if !flipped {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Space to flip"))
		return components.ArcadeCard(b.String(), cw)
	}

	text := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 8)
	label := lipgloss.NewStyle().Foreground(theme.ArcadeCyan)

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.Meaning))
	if w.MeaningExplanation != "" {
		b.WriteString("\n")
		b.WriteString(text.Foreground(theme.TextDim).Render(w.MeaningExplanation))
	}
	if syn := w.Synonyms.Texts(); len(syn) > 0 {
		b.WriteString("\n\n" + label.Render("Synonyms  ") + text.Inline(true).Render(strings.Join(syn, ", ")))
	}
	if ant := w.Antonyms.Texts(); len(ant) > 0 {
		b.WriteString("\n" + label.Render("Antonyms  ") + text.Inline(true).Render(strings.Join(ant, ", ")))
	}
	if w.HasCompleteVerbForms() {
		vf := w.VerbForms
		b.WriteString("\n" + label.Render("Forms     ") +
			text.Inline(true).Render(fmt.Sprintf("%s · %s · %s", vf.Present(), vf.Past(), vf.PastParticiple())))
	}
	for i, ex := range w.Examples {
		if i == exampleLimit {
			break
		}
		if i == 0 {
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(text.Italic(true).Render("“" + ex + "”"))
	}
	return components.ArcadeCard(b.String(), cw)
}
