package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/VictorTPhan/ella-app/internal/content"
	"github.com/VictorTPhan/ella-app/internal/router"
	"github.com/VictorTPhan/ella-app/internal/screen"
	"github.com/VictorTPhan/ella-app/internal/screens/history"
	"github.com/VictorTPhan/ella-app/internal/screens/quiz"
	"github.com/VictorTPhan/ella-app/internal/store"
	"github.com/VictorTPhan/ella-app/internal/ui/components"
)

// Options wires the home screen to the rest of the app.
type Options struct {
	// Generator produces quiz content. Nil disables START GAME.
	Generator content.Generator
	// EventRepo stores history. Nil disables HISTORY.
	EventRepo store.EventRepo
	Logger    *zap.Logger
}

type statsLoadedMsg struct {
	answered int
	correct  int
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu     components.Menu
	noLLM    bool
	repo     store.EventRepo
	answered int
	correct  int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START GAME", Disabled: opts.Generator == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quiz.New(quiz.Options{
					Generator: opts.Generator,
					EventRepo: opts.EventRepo,
					Logger:    opts.Logger,
				})}
			}
		}},
		{Label: "HISTORY", Disabled: opts.EventRepo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(opts.EventRepo)}
			}
		}},
		{Label: "EXIT GAME", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:  components.NewMenu(items),
		noLLM: opts.Generator == nil,
		repo:  opts.EventRepo,
	}
}

// Init loads lifetime answer totals for the stats bar. Errors leave it at
// zero.
func (h *HomeScreen) Init() tea.Cmd {
	if h.repo == nil {
		return nil
	}
	repo := h.repo
	return func() tea.Msg {
		acc, err := repo.StageAccuracy(context.Background())
		if err != nil {
			return statsLoadedMsg{}
		}
		var msg statsLoadedMsg
		for _, a := range acc {
			msg.answered += a.Total
			msg.correct += a.Correct
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		h.answered, h.correct = m.answered, m.correct
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	compact := height+8 < 30 || width < 100
	cw := contentWidth(width)

	sections := []string{renderTitle(width, cw, compact)}
	sections = append(sections, renderStatsBar(h.answered, h.correct, cw))
	if h.noLLM {
		sections = append(sections, renderLLMBanner(cw))
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderMenu(h.menu, cw))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
