package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector. After Submit it shows which
// option was chosen and which was correct.
type MultiChoice struct {
	Question  string
	Options   []string
	Selected  int
	Submitted bool
	Chosen    int

	correct int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Chosen:   -1,
		correct:  -1,
	}
}

// Update handles keyboard navigation. Letters move the selection; Enter
// reports it through ChoiceMsg and the owner decides when to call Reveal.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		return m, m.choose(m.Selected)
	default:
		for i, l := range choiceLabels[:min(len(m.Options), len(choiceLabels))] {
			if strings.EqualFold(key, l) {
				m.Selected = i
				return m, nil
			}
		}
	}

	return m, nil
}

// ChoiceMsg reports the option the user picked.
type ChoiceMsg struct {
	Index  int
	Option string
}

func (m MultiChoice) choose(i int) tea.Cmd {
	if i < 0 || i >= len(m.Options) {
		return nil
	}
	opt := m.Options[i]
	return func() tea.Msg { return ChoiceMsg{Index: i, Option: opt} }
}

// Reveal locks the selector and marks the chosen and correct options.
func (m MultiChoice) Reveal(chosen int, correct string) MultiChoice {
	m.Submitted = true
	m.Chosen = chosen
	m.correct = -1
	for i, o := range m.Options {
		if o == correct {
			m.correct = i
		}
	}
	return m
}

// View renders the question and options.
func (m MultiChoice) View() string {
	var b strings.Builder
	if m.Question != "" {
		b.WriteString(theme.Body.Bold(true).Render(m.Question))
		b.WriteString("\n\n")
	}

	for i, opt := range m.Options {
		label := "?"
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case m.Submitted && i == m.correct:
			b.WriteString(theme.Correct.Render(line + "  ✓"))
		case m.Submitted && i == m.Chosen:
			b.WriteString(theme.Incorrect.Render(line + "  ✗"))
		case m.Submitted:
			b.WriteString(theme.Faded.Render(line))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
