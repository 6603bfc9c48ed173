package components

import (
	"charm.land/lipgloss/v2"

	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

// ContentWidth returns the width of centered content in a frame of
// frameWidth columns.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Card wraps content in a rounded card cw columns wide.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 1).
		Render(content)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
