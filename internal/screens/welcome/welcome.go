// Package welcome is the splash screen: a greeting typed out in Hangul,
// then the banner.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/VictorTPhan/ella-app/internal/router"
	"github.com/VictorTPhan/ella-app/internal/screen"
	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

const tickInterval = 120 * time.Millisecond

const (
	greeting    = "안녕하세요!"
	romanized   = "an-nyeong-ha-se-yo"
	tagline     = "Learn to say it in Korean!"
	pauseTicks  = 4 // between the greeting and the banner
	bannerTicks = 4 // banner shown before the hint appears
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// WelcomeScreen types a greeting, shows the banner, and waits for a key.
// Any key skips ahead to the screen built by homeFactory.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

// typed returns how many greeting runes are visible.
func (w *WelcomeScreen) typed() int {
	return min(w.ticks, len([]rune(greeting)))
}

func (w *WelcomeScreen) bannerVisible() bool {
	return w.ticks >= len([]rune(greeting))+pauseTicks
}

func (w *WelcomeScreen) hintVisible() bool {
	return w.ticks >= len([]rune(greeting))+pauseTicks+bannerTicks
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		w.ticks++
		return w, tick()
	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	greet := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	cursor := lipgloss.NewStyle().Foreground(theme.Accent)

	line := greet.Render(string([]rune(greeting)[:w.typed()]))
	if !w.bannerVisible() {
		line += cursor.Render("▌")
	}
	sections := []string{line}
	if w.typed() == len([]rune(greeting)) {
		sections = append(sections, theme.Faded.Render(romanized))
	}

	if w.bannerVisible() {
		sections = append(sections, "", RenderBanner(width), "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline))
	}

	if w.hintVisible() {
		hint := "press any key to start"
		if (w.ticks/4)%2 == 1 {
			hint = strings.Repeat(" ", len(hint))
		}
		sections = append(sections, "", theme.Hint.Render(hint))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
