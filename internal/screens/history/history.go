package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexicon/internal/quiz"
	"github.com/abhisek/lexicon/internal/router"
	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/ui/layout"
	"github.com/abhisek/lexicon/internal/ui/theme"
)

// answerLimit bounds how much of the answer log is read.
const answerLimit = 500

// sessionRecord is the answers of one session, newest first.
type sessionRecord struct {
	SessionID string
	Started   time.Time
	Answers   []store.AnswerEvent
	Correct   int
}

type historyLoadedMsg struct {
	Sessions []sessionRecord
	Err      error
}

// HistoryScreen lists past sessions from the answer log.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []sessionRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		answers, err := s.eventRepo.QueryAnswers(context.Background(), store.QueryOpts{Limit: answerLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: groupSessions(answers)}
	}
}

// groupSessions buckets answers by session, keeping newest-first order
// for both sessions and answers.
func groupSessions(answers []store.AnswerEvent) []sessionRecord {
	var out []sessionRecord
	index := make(map[string]int)
	for _, a := range answers {
		i, ok := index[a.SessionID]
		if !ok {
			i = len(out)
			index[a.SessionID] = i
			out = append(out, sessionRecord{SessionID: a.SessionID})
		}
		rec := &out[i]
		rec.Answers = append(rec.Answers, a)
		rec.Started = a.Timestamp
		if a.Correct {
			rec.Correct++
		}
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start learning!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.Started.Local().Format("Jan 02, 2006 15:04")
		n := len(sess.Answers)
		accuracy := float64(sess.Correct) / float64(n) * 100

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %d answers  %.0f%% accuracy", prefix, dateStr, n, accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, a := range sess.Answers {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderAnswer(a)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func renderAnswer(a store.AnswerEvent) string {
	mark := theme.Correct.Render("✓")
	detail := ""
	if !a.Correct {
		mark = theme.Incorrect.Render("✗")
		detail = fmt.Sprintf("  %q → %s", a.GivenAnswer, a.ExpectedAnswer)
	}
	modality := quiz.Modality(a.Modality).Label()
	return fmt.Sprintf("    %s %-16s %s%s", mark, a.Word,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(modality), detail)
}
