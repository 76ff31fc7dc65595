package session

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexicon/internal/learn"
	"github.com/abhisek/lexicon/internal/router"
	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/screens/summary"
	"github.com/abhisek/lexicon/internal/ui/components"
	"github.com/abhisek/lexicon/internal/ui/layout"
)

// SessionScreen runs one learning session over a learn.Controller.
type SessionScreen struct {
	ctrl   *learn.Controller
	filter learn.Filter
	pref   learn.QuizPreference

	input   components.TextInput
	choices components.MultiChoice

	confirming bool
	confirmSel int // 0 keeps going, 1 ends the session
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a session screen for filter and pref. The pool is fetched
// when the screen is pushed.
func New(env screen.Env, filter learn.Filter, pref learn.QuizPreference) *SessionScreen {
	ctrl := learn.New(learn.Options{
		Words:  env.Words,
		Events: env.Events,
		Logger: env.Log(),
		Rand:   env.Rand,
		Now:    env.Clock(),
	})
	return &SessionScreen{ctrl: ctrl, filter: filter, pref: pref}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.load(s.filter, s.pref)
}

func (s *SessionScreen) Title() string {
	return "Learn"
}

// HandlesEscape reports true: Esc opens the quit confirmation rather
// than popping the screen.
func (s *SessionScreen) HandlesEscape() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.ctrl.Phase() {
	case learn.PhaseTesting:
		if s.choices.Options != nil {
			return []layout.KeyHint{
				{Key: "1-4", Description: "Answer"},
				{Key: "↑↓", Description: "Move"},
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case learn.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next word"},
			{Key: "Esc", Description: "Quit"},
		}
	case learn.PhaseFinished:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Summary"},
			{Key: "R", Description: "Restart"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *SessionScreen) View(width, height int) string {
	if s.confirming {
		return renderQuitConfirm(width, s.confirmSel)
	}
	switch s.ctrl.Phase() {
	case learn.PhaseTesting:
		return s.renderQuestion(width)
	case learn.PhaseFeedback:
		return s.renderFeedback(width)
	case learn.PhaseFinished:
		return s.renderFinished(width)
	}
	return renderLoading(width)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case poolLoadedMsg:
		return s.handleLoaded(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.ctrl.Phase() == learn.PhaseTesting && s.choices.Options == nil && !s.confirming {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// load starts a generation-tagged fetch and delivers it as poolLoadedMsg.
func (s *SessionScreen) load(filter learn.Filter, pref learn.QuizPreference) tea.Cmd {
	return s.fetch(s.ctrl.BeginLoad(filter, pref))
}

func (s *SessionScreen) fetch(req learn.LoadRequest) tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		return poolLoadedMsg{Result: ctrl.Fetch(context.Background(), req)}
	}
}

func (s *SessionScreen) handleLoaded(msg poolLoadedMsg) (screen.Screen, tea.Cmd) {
	if !s.ctrl.FinishLoad(context.Background(), msg.Result) {
		return s, nil
	}
	return s, s.prepareQuestion()
}

// prepareQuestion resets the answer widgets for the controller's current
// question.
func (s *SessionScreen) prepareQuestion() tea.Cmd {
	q := s.ctrl.Question()
	if q == nil {
		s.choices = components.MultiChoice{}
		return nil
	}
	if q.Modality.MultipleChoice() {
		s.choices = components.NewMultiChoice(q.Choices)
		return nil
	}
	s.choices = components.MultiChoice{}
	s.input = components.NewTextInput("Type your answer...", 40)
	return s.input.Init()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirming {
		return s.handleConfirmKey(key)
	}

	switch s.ctrl.Phase() {
	case learn.PhaseLoading:
		if key == "esc" {
			return s, popScreen
		}

	case learn.PhaseTesting:
		if key == "esc" {
			s.confirming, s.confirmSel = true, 0
			return s, nil
		}
		if s.choices.Options != nil {
			var cmd tea.Cmd
			s.choices, cmd = s.choices.Update(msg)
			if chosen, ok := s.choices.Chosen(); ok {
				return s.submit(chosen)
			}
			return s, cmd
		}
		if key == "enter" {
			if s.input.Value() == "" {
				return s, nil
			}
			return s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case learn.PhaseFeedback:
		switch key {
		case "esc":
			s.confirming, s.confirmSel = true, 0
			return s, nil
		case "enter", "space", " ":
			if err := s.ctrl.Advance(context.Background()); err != nil {
				return s, nil
			}
			return s, s.prepareQuestion()
		}

	case learn.PhaseFinished:
		switch key {
		case "r", "R":
			return s, s.fetch(s.ctrl.Restart())
		case "enter":
			return s, s.showSummary()
		case "esc":
			return s, popScreen
		}
	}
	return s, nil
}

func (s *SessionScreen) handleConfirmKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "y", "Y":
		return s.endEarly()
	case "n", "N", "esc":
		s.confirming = false
	case "left", "h", "right", "l", "tab":
		s.confirmSel = 1 - s.confirmSel
	case "enter":
		if s.confirmSel == 1 {
			return s.endEarly()
		}
		s.confirming = false
	}
	return s, nil
}

func (s *SessionScreen) endEarly() (screen.Screen, tea.Cmd) {
	s.confirming = false
	s.ctrl.End(context.Background())
	if s.ctrl.Summary().Answered == 0 {
		return s, popScreen
	}
	return s, s.showSummary()
}

func (s *SessionScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	fb, err := s.ctrl.Answer(context.Background(), answer)
	if err != nil {
		return s, nil
	}
	if s.choices.Options != nil {
		s.choices.Reveal(fb.Expected)
	} else {
		s.input.Submit(fb.Correct)
	}
	return s, nil
}

func (s *SessionScreen) showSummary() tea.Cmd {
	sum := s.ctrl.Summary()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func popScreen() tea.Msg {
	return router.PopScreenMsg{}
}
