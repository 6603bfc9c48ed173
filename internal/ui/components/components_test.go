package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func special(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func TestMultiChoiceNavigationAndChoose(t *testing.T) {
	m := NewMultiChoice("Pick one", []string{"a-peul", "ap-eu", "ap-eul", "a-pool"})

	m, _ = m.Update(special(tea.KeyDown))
	m, _ = m.Update(special(tea.KeyDown))
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}

	_, cmd := m.Update(special(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(ChoiceMsg)
	if !ok {
		t.Fatalf("expected ChoiceMsg, got %T", cmd())
	}
	if msg.Index != 2 || msg.Option != "ap-eul" {
		t.Errorf("ChoiceMsg = %+v", msg)
	}
}

func TestMultiChoiceLetterShortcut(t *testing.T) {
	m := NewMultiChoice("", []string{"w", "x", "y", "z"})
	m, cmd := m.Update(key('d'))
	if cmd != nil {
		t.Fatal("letter should select without choosing")
	}
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}

	m, _ = m.Update(key('B'))
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
	if _, cmd = m.Update(key('e')); cmd != nil {
		t.Error("letter past the last option should be ignored")
	}

	_, cmd = m.Update(special(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	if got := cmd().(ChoiceMsg); got.Option != "x" {
		t.Errorf("Option = %q, want x", got.Option)
	}
}

func TestMultiChoiceRevealLocks(t *testing.T) {
	m := NewMultiChoice("", []string{"a-peul", "ap-eul"}).Reveal(0, "ap-eul")
	if !m.Submitted {
		t.Fatal("expected submitted after reveal")
	}
	if _, cmd := m.Update(special(tea.KeyEnter)); cmd != nil {
		t.Error("expected no command after reveal")
	}
	view := m.View()
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Errorf("expected both marks in view:\n%s", view)
	}
}

func TestButtonRow(t *testing.T) {
	pressed := ""
	row := NewButtonRow(
		Button{Label: "New Topic!", OnPress: func() tea.Cmd { pressed = "new"; return nil }},
		Button{Label: "End Game", OnPress: func() tea.Cmd { pressed = "end"; return nil }},
	)

	row, _ = row.Update(special(tea.KeyRight))
	row, _ = row.Update(special(tea.KeyRight))
	if row.Focused != 1 {
		t.Fatalf("Focused = %d, want 1", row.Focused)
	}
	row.Update(special(tea.KeyEnter))
	if pressed != "end" {
		t.Errorf("pressed = %q, want end", pressed)
	}

	row, _ = row.Update(special(tea.KeyLeft))
	row.Update(special(tea.KeyEnter))
	if pressed != "new" {
		t.Errorf("pressed = %q, want new", pressed)
	}
	if v := row.View(); !strings.Contains(v, "New Topic!") || !strings.Contains(v, "End Game") {
		t.Errorf("view missing labels: %s", v)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Start", Disabled: true},
		{Label: "History"},
		{Label: "Quit"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}
	m, _ = m.Update(special(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("moved onto disabled item: %d", m.Selected)
	}
}

func TestMenuDigitShortcut(t *testing.T) {
	pressed := ""
	item := func(label string) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd { pressed = label; return nil }}
	}
	m := NewMenu([]MenuItem{item("Start"), {Label: "History", Disabled: true}, item("Quit")})

	m, _ = m.Update(key('2'))
	if pressed != "" {
		t.Errorf("disabled item activated: %q", pressed)
	}
	m, _ = m.Update(key('3'))
	if pressed != "Quit" || m.Selected != 2 {
		t.Errorf("pressed = %q, selected = %d", pressed, m.Selected)
	}
}

func TestStepBar(t *testing.T) {
	v := StepBar{Current: 2, Total: 5}.View()
	if !strings.Contains(v, "Step 2 of 5") {
		t.Errorf("unexpected step bar: %s", v)
	}
	if strings.Count(v, "●") != 2 || strings.Count(v, "○") != 3 {
		t.Errorf("unexpected dots: %s", v)
	}
}
