package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexicon/internal/ui/theme"
)

// ButtonRow renders labels side by side as buttons, highlighting the one
// at active. An out-of-range active highlights nothing.
func ButtonRow(labels []string, active int) string {
	views := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			views[i] = theme.ButtonActive.Render("▸ " + l)
		} else {
			views[i] = theme.ButtonInactive.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(views, "   "))
}
