package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/VictorTPhan/ella-app/internal/router"
	"github.com/VictorTPhan/ella-app/internal/screen"
	"github.com/VictorTPhan/ella-app/internal/session"
	"github.com/VictorTPhan/ella-app/internal/store"
	"github.com/VictorTPhan/ella-app/internal/ui/layout"
	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

// topicLimit caps how many past topics are listed.
const topicLimit = 20

type historyLoadedMsg struct {
	Accuracy []store.StageAccuracy
	Topics   []store.TopicRecord
	Err      error
}

// HistoryScreen displays per-stage accuracy and recent topics.
type HistoryScreen struct {
	eventRepo store.EventRepo
	accuracy  []store.StageAccuracy
	topics    []store.TopicRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		acc, err := s.eventRepo.StageAccuracy(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		topics, err := s.eventRepo.RecentTopics(ctx, topicLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Accuracy: acc, Topics: topics}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.accuracy = msg.Accuracy
			s.topics = msg.Topics
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.topics)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.topics) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.accuracy) == 0 && len(s.topics) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No games yet. Start playing!")
	}

	center := func(str string) string { return lipgloss.PlaceHorizontal(width, lipgloss.Center, str) }
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(heading.Render("Accuracy by stage")))
	b.WriteString("\n\n")
	if len(s.accuracy) == 0 {
		b.WriteString(center(theme.Hint.Render("No answers yet")))
		b.WriteString("\n")
	}
	for _, a := range s.accuracy {
		line := fmt.Sprintf("%-12s %3d/%-3d  %3.0f%%",
			session.Stage(a.Stage), a.Correct, a.Total, a.Accuracy()*100)
		b.WriteString(center(accuracyColor(a).Render(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(heading.Render("Recent topics")))
	b.WriteString("\n\n")
	for i, t := range s.topics {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  %s", prefix, t.Timestamp.Format("Jan 02, 2006"), t.Topic)
		b.WriteString(center(style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s  session %s", t.Timestamp.Format("15:04:05"), t.SessionID)
			b.WriteString(center(theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func accuracyColor(a store.StageAccuracy) lipgloss.Style {
	switch acc := a.Accuracy(); {
	case acc >= 0.8:
		return lipgloss.NewStyle().Foreground(theme.Success)
	case acc >= 0.5:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	default:
		return lipgloss.NewStyle().Foreground(theme.Error)
	}
}
