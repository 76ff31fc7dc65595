package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexicon/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes, nothing left to review
	MascotAlert                            // Orange, exclamation, review pile is growing
)

// alertThreshold is the to-review count that turns the mascot alert.
const alertThreshold = 10

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ A a │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ A a │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ A a │
└─────┘`

// mascotFor picks the variant for the current word counts.
func mascotFor(learned, toReview int) MascotVariant {
	switch {
	case toReview >= alertThreshold:
		return MascotAlert
	case learned > 0 && toReview == 0:
		return MascotCelebrating
	}
	return MascotIdle
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
