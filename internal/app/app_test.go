package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexicon/internal/learn"
	"github.com/abhisek/lexicon/internal/router"
	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/ui/layout"
	"github.com/abhisek/lexicon/internal/vocab"
)

type fakeWords struct {
	store.WordRepo
	words []*vocab.Word
}

func (f *fakeWords) All(context.Context) ([]*vocab.Word, error) {
	return f.words, nil
}

func (f *fakeWords) ByTiers(context.Context, ...vocab.Tier) ([]*vocab.Word, error) {
	return f.words, nil
}

// stubScreen records the messages it sees.
type stubScreen struct {
	title   string
	escapes bool
	seen    []string
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.seen = append(s.seen, k.String())
	}
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) HandlesEscape() bool  { return s.escapes }

func testModel() AppModel {
	return newAppModel(Options{Env: screen.Env{Words: &fakeWords{words: []*vocab.Word{
		{Text: "abate", Tier: vocab.Hard},
		{Text: "benign", Tier: vocab.Easy},
	}}}})
}

func esc() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEscape}
}

func TestEscPopsPlainScreens(t *testing.T) {
	m := testModel()
	m.router.Push(&stubScreen{title: "child"})

	_, cmd := m.Update(esc())
	if cmd == nil {
		t.Fatal("Esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestEscForwardedToEscapeHandlers(t *testing.T) {
	m := testModel()
	child := &stubScreen{title: "session", escapes: true}
	m.router.Push(child)

	m.Update(esc())
	if len(child.seen) != 1 || child.seen[0] != "esc" {
		t.Errorf("screen saw %v, want [esc]", child.seen)
	}
}

func TestEscOnRootIsNoop(t *testing.T) {
	m := testModel()
	if _, cmd := m.Update(esc()); cmd != nil {
		t.Error("Esc on the home screen should do nothing")
	}
}

func TestHeaderStatsRefresh(t *testing.T) {
	m := testModel()
	msg := m.refreshHeader()()
	updated, _ := m.Update(msg)
	m = updated.(AppModel)
	if m.header.Words != 2 || m.header.ToReview != 1 {
		t.Errorf("header = %+v", m.header)
	}

	header := layout.RenderHeader("Home", m.header, 120)
	if !strings.Contains(header, "2 words") || !strings.Contains(header, "1 to review") {
		t.Errorf("header = %q", header)
	}
}

func TestStartSessionPushesLearn(t *testing.T) {
	m := newAppModel(Options{
		Env:          screen.Env{Words: &fakeWords{}, Filter: learn.FilterAll, Quiz: learn.Dynamic},
		StartSession: true,
	})
	batch, ok := m.Init()().(tea.BatchMsg)
	if !ok {
		t.Fatal("Init should batch its commands")
	}
	var pushed []string
	for _, cmd := range batch {
		if cmd == nil {
			continue
		}
		if push, ok := cmd().(router.PushScreenMsg); ok {
			pushed = append(pushed, push.Screen.Title())
		}
	}
	if len(pushed) != 1 || pushed[0] != "Learn" {
		t.Errorf("pushed %v, want [Learn]", pushed)
	}
}
