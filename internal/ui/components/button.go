package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

// Button is one entry of a ButtonRow.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// ButtonRow is a horizontal row of buttons with one focused.
type ButtonRow struct {
	Buttons []Button
	Focused int
}

// NewButtonRow creates a row with the first button focused.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update moves focus with left/right (or tab) and presses on enter.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		if r.Focused > 0 {
			r.Focused--
		}
	case "right", "l", "tab":
		if r.Focused < len(r.Buttons)-1 {
			r.Focused++
		}
	case "enter", "space":
		if b := r.Buttons[r.Focused]; b.OnPress != nil {
			return r, b.OnPress()
		}
	}
	return r, nil
}

// View renders the row.
func (r ButtonRow) View() string {
	parts := make([]string, 0, len(r.Buttons))
	for i, b := range r.Buttons {
		if i == r.Focused {
			parts = append(parts, theme.ButtonActive.Render("▸ "+b.Label))
		} else {
			parts = append(parts, theme.ButtonInactive.Render("  "+b.Label))
		}
	}
	return strings.Join(parts, "   ")
}
