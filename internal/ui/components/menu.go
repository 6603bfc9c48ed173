package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled items are shown but can't be
// selected.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Digits 1-9 activate items directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// next returns the first enabled index after from in direction dir, or
// from when there is none.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return from
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch k := kmsg.String(); k {
	case "up", "k":
		m.Selected = m.next(m.Selected, -1)
	case "down", "j", "tab":
		m.Selected = m.next(m.Selected, 1)
	case "enter", "space":
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(m.Items) && !m.Items[n-1].Disabled {
			m.Selected = n - 1
			return m, m.activate(n - 1)
		}
	}
	return m, nil
}

// View renders the menu as a plain list.
func (m Menu) View() string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines = append(lines, theme.Faded.Render("    "+item.Label))
		case i == m.Selected:
			lines = append(lines, theme.Selected.Render("  ▸ "+item.Label))
		default:
			lines = append(lines, theme.Unselected.Render("    "+item.Label))
		}
	}
	return strings.Join(lines, "\n")
}
