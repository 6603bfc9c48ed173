package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/VictorTPhan/ella-app/internal/content"
	"github.com/VictorTPhan/ella-app/internal/gateway"
	"github.com/VictorTPhan/ella-app/internal/router"
	"github.com/VictorTPhan/ella-app/internal/screens/history"
	"github.com/VictorTPhan/ella-app/internal/screens/quiz"
	"github.com/VictorTPhan/ella-app/internal/store"
)

type mockEventRepo struct {
	store.EventRepo
	accuracy []store.StageAccuracy
}

func (m *mockEventRepo) StageAccuracy(context.Context) ([]store.StageAccuracy, error) {
	return m.accuracy, nil
}

var enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}

func TestStartGamePushesQuiz(t *testing.T) {
	h := New(Options{Generator: gateway.New(content.NewDemoProvider())})

	_, cmd := h.Update(enterKey)
	if cmd == nil {
		t.Fatal("enter on START GAME should produce a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("pushed %T, want *quiz.QuizScreen", push.Screen)
	}
}

func TestNoGeneratorDisablesStart(t *testing.T) {
	h := New(Options{EventRepo: &mockEventRepo{}})

	if h.menu.Selected != 1 {
		t.Errorf("selected = %d, want HISTORY", h.menu.Selected)
	}
	if !strings.Contains(h.View(120, 40), "Set an LLM API key") {
		t.Error("view should warn about the missing provider")
	}

	_, cmd := h.Update(enterKey)
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want *history.HistoryScreen", push.Screen)
	}
}

func TestStatsBar(t *testing.T) {
	repo := &mockEventRepo{accuracy: []store.StageAccuracy{
		{Stage: 1, Total: 5, Correct: 4},
		{Stage: 2, Total: 3, Correct: 1},
	}}
	h := New(Options{EventRepo: repo})
	h.Update(h.Init()())

	if h.answered != 8 || h.correct != 5 {
		t.Errorf("stats = %d/%d, want 5/8", h.correct, h.answered)
	}
	view := h.View(120, 40)
	if !strings.Contains(view, "5 CORRECT") || !strings.Contains(view, "8 ANSWERED") {
		t.Error("view missing stats")
	}
	if !strings.Contains(view, subtitle) {
		t.Error("view missing subtitle")
	}
}

func TestExitGameQuits(t *testing.T) {
	h := New(Options{})
	// Only EXIT GAME is enabled.
	_, cmd := h.Update(enterKey)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("EXIT GAME should quit")
	}
}
