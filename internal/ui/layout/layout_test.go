package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRenderHeaderCounters(t *testing.T) {
	stats := HeaderStats{Words: 12, Learned: 4, ToReview: 5}

	wide := RenderHeader("Home", stats, 120)
	for _, want := range []string{"Lexicon", "Home", "12 words", "4 learned", "5 to review"} {
		if !strings.Contains(wide, want) {
			t.Errorf("wide header missing %q: %q", want, wide)
		}
	}

	compact := RenderHeader("Home", stats, 90)
	if strings.Contains(compact, "learned") {
		t.Errorf("compact header should drop the learned counter: %q", compact)
	}
	if !strings.Contains(compact, "5 to review") {
		t.Errorf("compact header missing review counter: %q", compact)
	}
}

func TestRenderFooterDropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
		{Key: "R", Description: strings.Repeat("x", 80)},
	}

	footer := RenderFooter(hints, 80)
	if !strings.Contains(footer, "Select") || !strings.Contains(footer, "Back") {
		t.Errorf("footer lost hints that fit: %q", footer)
	}
	if strings.Contains(footer, "xxxx") {
		t.Errorf("footer kept a hint wider than the terminal: %q", footer)
	}
	for _, line := range strings.Split(footer, "\n") {
		if w := lipgloss.Width(line); w > 80 {
			t.Errorf("footer line width %d > 80", w)
		}
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("Home", HeaderStats{}, 100)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 100)

	frame := RenderFrame(header, "body", footer, 100, 30)
	if h := lipgloss.Height(frame); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
	if IsTooSmall(100, 30) || !IsTooSmall(79, 30) || !IsTooSmall(100, 23) {
		t.Error("IsTooSmall thresholds are off")
	}
}
