package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexicon/internal/router"
	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/screens/dashboard"
	"github.com/abhisek/lexicon/internal/screens/flashcards"
	"github.com/abhisek/lexicon/internal/screens/history"
	"github.com/abhisek/lexicon/internal/screens/setup"
	"github.com/abhisek/lexicon/internal/stats"
	"github.com/abhisek/lexicon/internal/ui/components"
	"github.com/abhisek/lexicon/internal/ui/layout"
)

// countsLoadedMsg carries the headline counts shown on the home screen.
type countsLoadedMsg struct {
	Counts stats.Counts
	Err    error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env        screen.Env
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	counts     stats.Counts
	loaded     bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env screen.Env) *HomeScreen {
	menuLabels := []string{"LEARN", "FLASHCARDS", "DASHBOARD", "HISTORY", "QUIT"}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen { return setup.New(env) })},
		{Label: menuLabels[1], Action: push(func() screen.Screen { return flashcards.New(env, env.Filter) })},
		{Label: menuLabels[2], Action: push(func() screen.Screen { return dashboard.New(env) })},
		{Label: menuLabels[3], Action: push(func() screen.Screen { return history.New(env.Events) }),
			Disabled: env.Events == nil},
		{Label: menuLabels[4], Action: func() tea.Cmd { return tea.Quit }},
	}

	disabled := make(map[int]bool)
	for i, item := range items {
		if item.Disabled {
			disabled[i] = true
		}
	}

	return &HomeScreen{
		env:        env,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		disabled:   disabled,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.Refresh()
}

// Refresh reloads the word counts.
func (h *HomeScreen) Refresh() tea.Cmd {
	if h.env.Words == nil {
		return nil
	}
	words, now := h.env.Words, h.env.Clock()()
	return func() tea.Msg {
		all, err := words.All(context.Background())
		if err != nil {
			return countsLoadedMsg{Err: err}
		}
		return countsLoadedMsg{Counts: stats.Compute(all, now).Counts}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(countsLoadedMsg); ok {
		if msg.Err != nil {
			h.env.Log().WithError(msg.Err).Warn("load home counts")
			return h, nil
		}
		h.counts = msg.Counts
		h.loaded = true
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to judge
	// the full terminal.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)
	tiny := termHeight < layout.MinHeight+4

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.counts.Learned, h.counts.ToReview), cw))
	}

	sections = append(sections, renderStatsBar(
		h.counts.Words, h.counts.Learned, h.counts.ToReview, cw, compact))

	if h.loaded && h.counts.Words == 0 {
		sections = append(sections, renderEmptyBanner(cw))
	}

	if tiny {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
