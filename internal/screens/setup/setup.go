// Package setup is the two-step picker shown before a learning session:
// first the word filter, then the quiz type.
package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/lexicon/internal/learn"
	"github.com/abhisek/lexicon/internal/router"
	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/screens/session"
	"github.com/abhisek/lexicon/internal/ui/components"
	"github.com/abhisek/lexicon/internal/ui/layout"
	"github.com/abhisek/lexicon/internal/ui/theme"
	"github.com/abhisek/lexicon/internal/vocab"
)

type step int

const (
	stepFilter step = iota
	stepQuiz
)

// countsMsg carries the pool size of every filter.
type countsMsg struct {
	Counts map[learn.Filter]int
	Err    error
}

// SetupScreen picks a filter and quiz preference, then replaces itself
// with the session screen.
type SetupScreen struct {
	env    screen.Env
	step   step
	filter learn.Filter

	filterMenu components.Menu
	quizMenu   components.Menu
	counts     map[learn.Filter]int
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.EscapeHandler = (*SetupScreen)(nil)

// New creates a setup screen with env's defaults preselected.
func New(env screen.Env) *SetupScreen {
	s := &SetupScreen{env: env}

	filterItems := lo.Map(learn.Filters, func(f learn.Filter, _ int) components.MenuItem {
		return components.MenuItem{Label: f.Label(), Action: func() tea.Cmd {
			s.filter = f
			s.step = stepQuiz
			return nil
		}}
	})
	s.filterMenu = components.NewMenu(filterItems)
	s.filterMenu.Select(lo.IndexOf(learn.Filters, env.Filter))

	quizItems := lo.Map(learn.Preferences, func(p learn.QuizPreference, _ int) components.MenuItem {
		return components.MenuItem{Label: p.Label(), Action: func() tea.Cmd {
			next := session.New(s.env, s.filter, p)
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}}
	})
	s.quizMenu = components.NewMenu(quizItems)
	pref := env.Quiz
	if pref == "" {
		pref = learn.Dynamic
	}
	s.quizMenu.Select(lo.IndexOf(learn.Preferences, pref))
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	if s.env.Words == nil {
		return nil
	}
	words, now := s.env.Words, s.env.Clock()()
	return func() tea.Msg {
		all, err := words.All(context.Background())
		if err != nil {
			return countsMsg{Err: err}
		}
		return countsMsg{Counts: filterCounts(all, now)}
	}
}

// filterCounts tallies how many words each filter would select.
func filterCounts(words []*vocab.Word, now time.Time) map[learn.Filter]int {
	byTier := lo.CountValuesBy(words, func(w *vocab.Word) vocab.Tier { return w.Tier })
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	counts := make(map[learn.Filter]int, len(learn.Filters))
	for _, f := range learn.Filters {
		switch f {
		case learn.FilterAll:
			counts[f] = len(words)
		case learn.FilterToday:
			counts[f] = lo.CountBy(words, func(w *vocab.Word) bool {
				return !w.CreatedAt.Before(start) && w.CreatedAt.Before(end)
			})
		default:
			counts[f] = lo.SumBy(f.Tiers(), func(t vocab.Tier) int { return byTier[t] })
		}
	}
	return counts
}

func (s *SetupScreen) Title() string {
	return "Learn"
}

// HandlesEscape reports true on the quiz step, where Esc goes back to
// the filter menu.
func (s *SetupScreen) HandlesEscape() bool {
	return s.step == stepQuiz
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-9", Description: "Pick"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countsMsg:
		if msg.Err != nil {
			s.env.Log().WithError(msg.Err).Warn("count words per filter")
			return s, nil
		}
		s.counts = msg.Counts
		for i, f := range learn.Filters {
			s.filterMenu.Items[i].Hint = fmt.Sprintf("%d words", s.counts[f])
		}
		return s, nil

	case tea.KeyMsg:
		if s.step == stepQuiz && msg.String() == "esc" {
			s.step = stepFilter
			return s, nil
		}
	}

	var cmd tea.Cmd
	if s.step == stepFilter {
		s.filterMenu, cmd = s.filterMenu.Update(msg)
	} else {
		s.quizMenu, cmd = s.quizMenu.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var heading, menu string
	if s.step == stepFilter {
		heading = "Which words?"
		menu = s.filterMenu.View()
	} else {
		heading = "Which quiz?"
		menu = s.quizMenu.View()
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(heading))
	b.WriteString("\n")
	if s.step == stepQuiz {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Filter: " + s.filter.Label()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Render(menu))

	return components.CabinetFrame(components.ArcadeCard(b.String(), cw), width, height)
}
