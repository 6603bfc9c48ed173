package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

// Spinner wraps bubbles/spinner with a label and ella styling.
type Spinner struct {
	Model spinner.Model
	Label string
}

// NewSpinner creates a spinner showing label.
func NewSpinner(label string) Spinner {
	return Spinner{
		Model: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
		Label: label,
	}
}

// Tick starts the animation.
func (s Spinner) Tick() tea.Cmd {
	return s.Model.Tick
}

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the spinner and its label.
func (s Spinner) View() string {
	return s.Model.View() + " " + theme.Faded.Render(s.Label)
}
