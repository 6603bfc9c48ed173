package quiz

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/VictorTPhan/ella-app/internal/router"
	"github.com/VictorTPhan/ella-app/internal/screen"
	"github.com/VictorTPhan/ella-app/internal/ui/layout"
	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

// goodbyeScreen closes an ended session.
type goodbyeScreen struct {
	rounds   int
	answered int
	correct  int
}

var _ screen.Screen = (*goodbyeScreen)(nil)

func newGoodbye(rounds, answered, correct int) *goodbyeScreen {
	return &goodbyeScreen{rounds: rounds, answered: answered, correct: correct}
}

func (g *goodbyeScreen) Init() tea.Cmd { return nil }

func (g *goodbyeScreen) Title() string { return "Game Over" }

func (g *goodbyeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Q", Description: "Quit"},
	}
}

func (g *goodbyeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return g, nil
	}
	if kmsg.String() == "q" {
		return g, tea.Quit
	}
	return g, func() tea.Msg { return router.PopToRootMsg{} }
}

func (g *goodbyeScreen) View(width, height int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Thanks for playing!")
	summary := theme.Faded.Render(fmt.Sprintf(
		"%d correct out of %d answered over %d %s",
		g.correct, g.answered, g.rounds, plural(g.rounds, "round", "rounds")))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, title+"\n\n"+summary)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
