package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette — calm ink-and-paper tones with bright accents
var (
	Primary      = lipgloss.Color("#6366F1") // Indigo
	Secondary    = lipgloss.Color("#14B8A6") // Teal
	Accent       = lipgloss.Color("#F59E0B") // Amber
	Success      = lipgloss.Color("#22C55E") // Green
	Error        = lipgloss.Color("#F43F5E") // Rose
	Text         = lipgloss.Color("#F8FAFC") // White
	TextDim      = lipgloss.Color("#94A3B8") // Slate
	BgDark       = lipgloss.Color("#0F172A") // Deep Navy
	BgCard       = lipgloss.Color("#1E293B") // Dark Slate
	Border       = lipgloss.Color("#334155") // Slate
	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Tier colors, hardest first.
var (
	TierHard   = lipgloss.Color("#F43F5E")
	TierMedium = lipgloss.Color("#F59E0B")
	TierNew    = lipgloss.Color("#38BDF8")
	TierEasy   = lipgloss.Color("#22C55E")
)

// TierColor maps a tier name to its color.
func TierColor(tier string) color.Color {
	switch tier {
	case "Hard":
		return TierHard
	case "Medium":
		return TierMedium
	case "Easy", "Learned":
		return TierEasy
	default:
		return TierNew
	}
}

// Text styles
var (
	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
