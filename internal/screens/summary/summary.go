package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexicon/internal/learn"
	"github.com/abhisek/lexicon/internal/router"
	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/ui/components"
	"github.com/abhisek/lexicon/internal/ui/layout"
	"github.com/abhisek/lexicon/internal/ui/theme"
)

// missedLimit caps the missed-word list.
const missedLimit = 8

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary learn.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary learn.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := min(width-8, 60)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", sum.Filter.Label(), sum.Preference.Label())))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Words: %d        Answered: %d        Correct: %d        Accuracy: %.0f%%",
		sum.PoolSize, sum.Answered, sum.Correct, sum.Accuracy()*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	if mods := sum.Modalities(); len(mods) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.SectionTitle("Quiz types", cw)))
		b.WriteString("\n\n")
		labelWidth := 0
		for _, m := range mods {
			labelWidth = max(labelWidth, lipgloss.Width(m.Label()))
		}
		for _, m := range mods {
			mt := sum.ByModality[m]
			bar := components.ProgressBar{
				Label:      m.Label(),
				LabelWidth: labelWidth,
				Percent:    ratio(mt.Correct, mt.Answered),
				Width:      cw,
				Fill:       accuracyColor(ratio(mt.Correct, mt.Answered)),
				Suffix:     fmt.Sprintf("%d/%d", mt.Correct, mt.Answered),
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(sum.Missed) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.SectionTitle("Review these", cw)))
		b.WriteString("\n\n")
		for i, w := range sum.Missed {
			if i == missedLimit {
				more := fmt.Sprintf("... and %d more", len(sum.Missed)-missedLimit)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(more)))
				b.WriteString("\n")
				break
			}
			line := fmt.Sprintf("%-18s %s", w.Text, w.Meaning)
			style := lipgloss.NewStyle().Foreground(theme.TierColor(w.Tier.String())).Width(cw)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
			b.WriteString("\n")
		}
	} else if sum.Answered > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("No mistakes this time."))
	}

	return b.String()
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// accuracyColor maps an accuracy to the tier palette.
func accuracyColor(acc float64) color.Color {
	switch {
	case acc >= 0.8:
		return theme.TierEasy
	case acc >= 0.5:
		return theme.TierMedium
	default:
		return theme.TierHard
	}
}
