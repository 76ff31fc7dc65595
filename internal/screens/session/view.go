package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexicon/internal/ui/components"
	"github.com/abhisek/lexicon/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderInfoLine renders the progress line above the question.
func (s *SessionScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.ctrl.Filter().Label())

	sum := s.ctrl.Summary()
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d left  %s %d/%d  ",
			s.ctrl.Remaining(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			sum.Correct, sum.Answered,
		))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right); pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4)))
	return line + "\n  " + rule
}

// renderQuestionBody renders the modality badge, prompt and hint.
func (s *SessionScreen) renderQuestionBody(width int) string {
	q := s.ctrl.Question()
	w := s.ctrl.Current()

	var b strings.Builder
	badge := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(q.Modality.Label())
	tier := lipgloss.NewStyle().Foreground(theme.TierColor(w.Tier.String())).Render("● " + w.Tier.String())
	b.WriteString(centered(width).Render(badge + "   " + tier))
	b.WriteString("\n\n")

	if adv := s.ctrl.Advisory(); adv != "" {
		b.WriteString(centered(width).Foreground(theme.Accent).Render("ⓘ " + adv))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n")
	if q.Hint != "" {
		b.WriteString(centered(width).Foreground(theme.TextDim).Render(q.Hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (s *SessionScreen) renderAnswerArea(width int) string {
	if s.choices.Options != nil {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View())
	}
	return centered(width).Render("Answer: " + s.input.View())
}

// renderQuestion renders the testing phase.
func (s *SessionScreen) renderQuestion(width int) string {
	if s.ctrl.Question() == nil {
		return renderLoading(width)
	}
	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderQuestionBody(width))
	b.WriteString(s.renderAnswerArea(width))
	if s.choices.Options != nil {
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).Render("Select (1-4) or use arrows + Enter"))
	}
	return b.String()
}

// renderFeedback keeps the question on screen and adds the verdict.
func (s *SessionScreen) renderFeedback(width int) string {
	fb := s.ctrl.Feedback()
	q := s.ctrl.Question()
	if fb == nil || q == nil {
		return renderLoading(width)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderQuestionBody(width))
	b.WriteString(s.renderAnswerArea(width))
	b.WriteString("\n\n")

	if fb.Correct {
		b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).Render("Correct answer: " + fb.Expected))
	}
	b.WriteString("\n")

	if fb.TierBefore != fb.TierAfter {
		move := fmt.Sprintf("%s → %s", fb.TierBefore, fb.TierAfter)
		b.WriteString(centered(width).Foreground(theme.TierColor(fb.TierAfter.String())).Render(move))
		b.WriteString("\n")
	}

	if w := fb.Word; w != nil && w.Meaning != "" {
		card := lipgloss.NewStyle().
			Width(min(width-8, 64)).
			Foreground(theme.Text).
			Render(fmt.Sprintf("%s (%s): %s", w.Text, w.PartOfSpeech, w.Meaning))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
		b.WriteString("\n")
	}

	if fb.PersistErr != nil {
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.Error).
			Render("⚠ Progress not saved: " + fb.PersistErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Press Enter for the next word"))
	return b.String()
}

// renderFinished renders the end of the pool, or the empty-pool notice.
func (s *SessionScreen) renderFinished(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	sum := s.ctrl.Summary()
	switch {
	case s.ctrl.LoadErr() != nil:
		b.WriteString(centered(width).Foreground(theme.Error).Bold(true).Render("Could not load words"))
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).Render(s.ctrl.LoadErr().Error()))
	case s.ctrl.PoolSize() == 0:
		b.WriteString(centered(width).Foreground(theme.Accent).Bold(true).Render("No words to learn"))
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).
			Render(fmt.Sprintf("The %q filter matched nothing. Try another filter or add words.", s.ctrl.Filter().Label())))
	default:
		b.WriteString(centered(width).Foreground(theme.ArcadeYellow).Bold(true).Render("Session complete"))
		b.WriteString("\n\n")
		bar := components.ProgressBar{
			Label:   "Accuracy",
			Percent: sum.Accuracy(),
			Width:   min(width-8, 50),
			Fill:    theme.Success,
			Suffix:  fmt.Sprintf("%d/%d", sum.Correct, sum.Answered),
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).
		Render("Enter: summary   R: restart   Esc: back"))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, selected int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Answers so far are already saved."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ButtonRow([]string{"[N] Keep going", "[Y] End session"}, selected)))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return centered(width).Foreground(theme.TextDim).Render("\n\n\n  Gathering your words...")
}
