package components

import (
	"fmt"
	"strings"

	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

// StepBar shows progress through a fixed number of steps, e.g.
// "● ● ○ ○ ○  Step 2 of 5".
type StepBar struct {
	Current int // 1-based
	Total   int
}

// View renders the bar.
func (s StepBar) View() string {
	dots := make([]string, 0, s.Total)
	for i := 1; i <= s.Total; i++ {
		if i <= s.Current {
			dots = append(dots, theme.StepDone.Render("●"))
		} else {
			dots = append(dots, theme.StepTodo.Render("○"))
		}
	}
	return strings.Join(dots, " ") + "  " +
		theme.Faded.Render(fmt.Sprintf("Step %d of %d", s.Current, s.Total))
}
