// Package dashboard renders the statistics report.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/stats"
	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/ui/components"
	"github.com/abhisek/lexicon/internal/ui/layout"
	"github.com/abhisek/lexicon/internal/ui/theme"
	"github.com/abhisek/lexicon/internal/vocab"
)

// activityDays is how far back the answer log is read.
const activityDays = 7

// mistakenShown caps the most-mistaken rows on screen.
const mistakenShown = 5

type reportLoadedMsg struct {
	Report   stats.Report
	Activity []store.DailyAccuracy
	Err      error
}

// DashboardScreen shows progress across the whole vocabulary.
type DashboardScreen struct {
	env      screen.Env
	report   stats.Report
	activity []store.DailyAccuracy
	loaded   bool
	err      error
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a dashboard screen.
func New(env screen.Env) *DashboardScreen {
	return &DashboardScreen{env: env}
}

func (s *DashboardScreen) Init() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		ctx := context.Background()
		now := env.Clock()()
		words, err := env.Words.All(ctx)
		if err != nil {
			return reportLoadedMsg{Err: err}
		}
		msg := reportLoadedMsg{Report: stats.Compute(words, now)}
		if env.Events != nil {
			activity, err := env.Events.DailyAnswerAccuracy(ctx, activityDays, now)
			if err != nil {
				env.Log().WithError(err).Warn("read answer activity")
			}
			msg.Activity = activity
		}
		return msg
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		s.loaded = true
		s.err = msg.Err
		if msg.Err != nil {
			s.env.Log().WithError(msg.Err).Error("load dashboard")
			return s, nil
		}
		s.report = msg.Report
		s.activity = msg.Activity
	case tea.KeyMsg:
		if k := msg.String(); k == "r" || k == "R" {
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Crunching numbers...")
	}
	if s.err != nil {
		return center.Foreground(theme.Error).Render("\n\nError: " + s.err.Error())
	}
	if s.report.Counts.Words == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No words yet. Add some with `lexicon words add` or `lexicon words import`.")
	}

	cw := min(width-4, 90)
	half := (cw - 2) / 2
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)

	sections := []string{renderCards(s.report, cw)}

	left := renderTierBars(s.report.Counts, half)
	right := renderErrorBars(s.report.Errors, half)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))

	if !compact {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			renderMistaken(s.report.MostMistaken, half), "  ",
			renderActivity(s.activity, s.report.Recent, half)))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}

// renderCards renders the headline numbers as a row of bordered cards.
func renderCards(r stats.Report, cw int) string {
	type card struct {
		label string
		value string
		color lipgloss.Style
	}
	cards := []card{
		{"WORDS", fmt.Sprint(r.Counts.Words), lipgloss.NewStyle().Foreground(theme.ArcadeCyan)},
		{"LEARNED", fmt.Sprint(r.Counts.Learned), lipgloss.NewStyle().Foreground(theme.TierEasy)},
		{"TO REVIEW", fmt.Sprint(r.Counts.ToReview), lipgloss.NewStyle().Foreground(theme.TierMedium)},
		{"ACCURACY", fmt.Sprintf("%.0f%%", r.Totals.Accuracy*100), lipgloss.NewStyle().Foreground(theme.ArcadeYellow)},
		{"EXAMS", fmt.Sprint(r.Totals.Exams), lipgloss.NewStyle().Foreground(theme.Text)},
	}
	w := cw/len(cards) - 2
	views := make([]string, len(cards))
	for i, c := range cards {
		views[i] = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Width(w).
			Align(lipgloss.Center).
			Render(c.color.Bold(true).Render(c.value) + "\n" +
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(c.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

func renderTierBars(c stats.Counts, w int) string {
	lines := []string{components.SectionTitle("Tiers", w)}
	for _, t := range vocab.Tiers {
		n := c.ByTier[t]
		bar := components.ProgressBar{
			Label:      t.String(),
			LabelWidth: 8,
			Percent:    share(n, c.Words),
			Width:      w,
			Fill:       theme.TierColor(t.String()),
			Suffix:     fmt.Sprintf("%4d", n),
		}
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func renderErrorBars(e vocab.WrongCount, w int) string {
	lines := []string{components.SectionTitle("Mistakes", w)}
	total := e.Total()
	for _, c := range vocab.Categories {
		n := e.Get(c)
		bar := components.ProgressBar{
			Label:      c.Label(),
			LabelWidth: 8,
			Percent:    share(n, total),
			Width:      w,
			Fill:       theme.Error,
			Suffix:     fmt.Sprintf("%4d", n),
		}
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func renderMistaken(ms []stats.Mistaken, w int) string {
	lines := []string{components.SectionTitle("Most mistaken", w)}
	if len(ms) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Nothing missed yet"))
	}
	for i, m := range ms {
		if i == mistakenShown {
			break
		}
		word := lipgloss.NewStyle().Foreground(theme.TierColor(m.Word.Tier.String())).Width(16).Render(m.Word.Text)
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, word,
			lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("✗ %d", m.Wrong))))
	}
	return lipgloss.NewStyle().Width(w).Render(strings.Join(lines, "\n"))
}

// renderActivity prefers the answer log; without it the most recently
// touched words are listed.
func renderActivity(days []store.DailyAccuracy, recent []*vocab.Word, w int) string {
	lines := []string{components.SectionTitle("Recent activity", w)}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if len(days) > 0 {
		for _, d := range days {
			bar := components.ProgressBar{
				Label:      d.Date.Format("Mon 02"),
				LabelWidth: 7,
				Percent:    share(d.Correct, d.Total),
				Width:      w,
				Fill:       theme.Success,
				Suffix:     fmt.Sprintf("%d/%d", d.Correct, d.Total),
			}
			lines = append(lines, bar.View())
		}
		return strings.Join(lines, "\n")
	}
	for _, word := range recent {
		lines = append(lines, fmt.Sprintf("%s %s",
			lipgloss.NewStyle().Foreground(theme.Text).Width(16).Render(word.Text),
			dim.Render(word.UpdatedAt.Format("Jan 02 15:04"))))
	}
	return lipgloss.NewStyle().Width(w).Render(strings.Join(lines, "\n"))
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
