package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/VictorTPhan/ella-app/internal/screens/welcome"
	"github.com/VictorTPhan/ella-app/internal/ui/components"
	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

const subtitle = "Korean Learning Game"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	return max(20, min(frameWidth-6, 60))
}

func renderTitle(width, cw int, compact bool) string {
	sub := theme.Subtitle.Render(subtitle)
	if compact {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(welcome.RenderBanner(0) + "\n" + sub)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(welcome.RenderBanner(width) + "\n\n" + sub)
}

// renderStatsBar renders lifetime answers in a bordered box matching
// content width.
func renderStatsBar(answered, correct, cw int) string {
	correctStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if answered == 0 {
		stats = dimStyle.Render("NO ANSWERS YET")
	} else {
		stats = fmt.Sprintf("%s  %s",
			correctStyle.Render(fmt.Sprintf("✓ %d CORRECT", correct)),
			dimStyle.Render(fmt.Sprintf("OF %d ANSWERED", answered)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(m components.Menu, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normalBtn := base.Foreground(theme.Text).BorderForeground(theme.Border)
	disabledBtn := base.Foreground(theme.TextDim).BorderForeground(theme.Border)

	buttons := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			buttons = append(buttons, disabledBtn.Render(item.Label))
		case i == m.Selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+item.Label))
		default:
			buttons = append(buttons, normalBtn.Render(item.Label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders the plain menu for small terminals where
// bordered buttons would overflow.
func renderMenuCompact(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(m.View())
}

// renderLLMBanner renders a warning banner when no LLM provider is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to start playing (see ella --help)")
}

// renderCabinetFrame wraps content in a double-border frame, centered
// vertically and horizontally within the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
