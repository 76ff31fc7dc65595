package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexicon/internal/router"
	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/vocab"
)

type fakeWords struct {
	store.WordRepo
	words []*vocab.Word
}

func (f *fakeWords) All(context.Context) ([]*vocab.Word, error) {
	return f.words, nil
}

type fakeEvents struct{ store.EventRepo }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestHomeScreen_Counts(t *testing.T) {
	repo := &fakeWords{words: []*vocab.Word{
		{Text: "abate", Tier: vocab.Hard},
		{Text: "benign", Tier: vocab.Easy},
		{Text: "candid", Tier: vocab.Medium},
	}}
	h := New(screen.Env{Words: repo, Events: fakeEvents{}})
	h.Update(h.Init()())

	if h.counts.Words != 3 || h.counts.Learned != 1 || h.counts.ToReview != 2 {
		t.Errorf("counts = %+v", h.counts)
	}
	view := h.View(120, 40)
	if !strings.Contains(view, "3 WORDS") || !strings.Contains(view, "2 TO REVIEW") {
		t.Error("stats bar should show the counts")
	}
	if strings.Contains(view, "No words yet") {
		t.Error("banner should be hidden when words exist")
	}

	repo.words = repo.words[:1]
	h.Update(h.Refresh()())
	if h.counts.Words != 1 {
		t.Errorf("refresh: words = %d, want 1", h.counts.Words)
	}
}

func TestHomeScreen_EmptyBanner(t *testing.T) {
	h := New(screen.Env{Words: &fakeWords{}})
	h.Update(h.Init()())
	if !strings.Contains(h.View(120, 40), "No words yet") {
		t.Error("expected the empty banner")
	}
}

func TestHomeScreen_MenuPushesScreens(t *testing.T) {
	tests := []struct {
		key   rune
		title string
	}{
		{'1', "Learn"},
		{'2', "Flashcards"},
		{'3', "Dashboard"},
		{'4', "History"},
	}
	for _, tt := range tests {
		h := New(screen.Env{Words: &fakeWords{}, Events: fakeEvents{}})
		_, cmd := h.Update(keyPress(tt.key))
		if cmd == nil {
			t.Fatalf("key %c: expected a command", tt.key)
		}
		msg, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("key %c: got %T, want PushScreenMsg", tt.key, cmd())
		}
		if msg.Screen.Title() != tt.title {
			t.Errorf("key %c pushed %q, want %q", tt.key, msg.Screen.Title(), tt.title)
		}
	}
}

func TestHomeScreen_HistoryDisabledWithoutEvents(t *testing.T) {
	h := New(screen.Env{Words: &fakeWords{}})
	if _, cmd := h.Update(keyPress('4')); cmd != nil {
		t.Error("history should be disabled without an event log")
	}
}

func TestMascotFor(t *testing.T) {
	tests := []struct {
		learned, toReview int
		want              MascotVariant
	}{
		{0, 0, MascotIdle},
		{3, 0, MascotCelebrating},
		{3, 2, MascotIdle},
		{0, alertThreshold, MascotAlert},
	}
	for _, tt := range tests {
		if got := mascotFor(tt.learned, tt.toReview); got != tt.want {
			t.Errorf("mascotFor(%d, %d) = %d, want %d", tt.learned, tt.toReview, got, tt.want)
		}
	}
}
