package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/vocab"
)

var now = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

type fakeWords struct {
	store.WordRepo
	words []*vocab.Word
	err   error
}

func (f *fakeWords) All(context.Context) ([]*vocab.Word, error) {
	return f.words, f.err
}

type fakeEvents struct {
	store.EventRepo
	days  []store.DailyAccuracy
	asked int
}

func (f *fakeEvents) DailyAnswerAccuracy(_ context.Context, days int, _ time.Time) ([]store.DailyAccuracy, error) {
	f.asked = days
	return f.days, nil
}

func words() []*vocab.Word {
	return []*vocab.Word{
		{Text: "abate", Tier: vocab.Hard, TotalExams: 5, CorrectCount: 1,
			Wrong: vocab.WrongCount{Spelling: 3, Meaning: 1}, UpdatedAt: now.Add(-time.Hour)},
		{Text: "benign", Tier: vocab.Medium, TotalExams: 3, CorrectCount: 2,
			Wrong: vocab.WrongCount{Synonym: 1}, UpdatedAt: now.Add(-2 * time.Hour)},
		{Text: "candid", Tier: vocab.Easy, TotalExams: 2, CorrectCount: 2, UpdatedAt: now.Add(-3 * time.Hour)},
		{Text: "dearth", Tier: vocab.New},
	}
}

func loaded(t *testing.T, env screen.Env) *DashboardScreen {
	t.Helper()
	env.Now = func() time.Time { return now }
	s := New(env)
	s.Update(s.Init()())
	return s
}

func TestDashboard_Report(t *testing.T) {
	events := &fakeEvents{days: []store.DailyAccuracy{
		{Date: now.AddDate(0, 0, -1), Total: 4, Correct: 3},
		{Date: now, Total: 6, Correct: 2},
	}}
	s := loaded(t, screen.Env{Words: &fakeWords{words: words()}, Events: events})

	if events.asked != activityDays {
		t.Errorf("asked for %d days, want %d", events.asked, activityDays)
	}
	if s.report.Counts.Words != 4 || s.report.Counts.ToReview != 2 {
		t.Errorf("counts = %+v", s.report.Counts)
	}

	view := s.View(120, 40)
	for _, want := range []string{"WORDS", "TO REVIEW", "50%", "Spelling", "Most mistaken", "abate", "3/4", "2/6"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDashboard_RecentWordsWithoutEvents(t *testing.T) {
	s := loaded(t, screen.Env{Words: &fakeWords{words: words()}})
	view := s.View(120, 40)
	if !strings.Contains(view, "Recent activity") || !strings.Contains(view, "candid") {
		t.Error("expected recent words when there is no answer log")
	}
}

func TestDashboard_Empty(t *testing.T) {
	s := loaded(t, screen.Env{Words: &fakeWords{}})
	if !strings.Contains(s.View(100, 30), "No words yet") {
		t.Error("expected the empty notice")
	}
}

func TestDashboard_Error(t *testing.T) {
	s := loaded(t, screen.Env{Words: &fakeWords{err: errors.New("locked")}})
	if !strings.Contains(s.View(100, 30), "locked") {
		t.Error("expected the error")
	}
}

func TestDashboard_Refresh(t *testing.T) {
	repo := &fakeWords{words: words()[:1]}
	s := loaded(t, screen.Env{Words: repo})
	repo.words = words()

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("r should reload")
	}
	s.Update(cmd())
	if s.report.Counts.Words != 4 {
		t.Errorf("words after refresh = %d, want 4", s.report.Counts.Words)
	}
}
