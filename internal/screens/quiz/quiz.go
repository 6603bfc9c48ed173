// Package quiz is the screen that plays a session: topic, three questions,
// then continue or end.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/VictorTPhan/ella-app/internal/content"
	"github.com/VictorTPhan/ella-app/internal/router"
	"github.com/VictorTPhan/ella-app/internal/screen"
	"github.com/VictorTPhan/ella-app/internal/session"
	"github.com/VictorTPhan/ella-app/internal/store"
	"github.com/VictorTPhan/ella-app/internal/ui/components"
	"github.com/VictorTPhan/ella-app/internal/ui/layout"
)

type phase int

const (
	phaseLoading  phase = iota // EnterStage in flight
	phaseError                 // generation failed, waiting for retry
	phaseReady                 // stage content shown
	phaseFeedback              // answer checked
)

// Options configures a QuizScreen.
type Options struct {
	Generator content.Generator
	EventRepo store.EventRepo
	Logger    *zap.Logger

	// Rand seeds answer shuffling. Nil picks a random seed.
	Rand *rand.Rand
}

// QuizScreen plays one session.
type QuizScreen struct {
	sess *session.Session
	log  *zap.Logger

	phase   phase
	spinner components.Spinner
	choices components.MultiChoice
	buttons components.ButtonRow
	verdict session.Verdict
	errMsg  string

	answered int
	correct  int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen with a fresh session.
func New(opts Options) *QuizScreen {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &QuizScreen{
		log:     log,
		spinner: components.NewSpinner("Thinking..."),
	}
	s.sess = session.NewDefault(opts.Generator, opts.Rand,
		session.WithObserver(newRecorder(opts.EventRepo, log)))
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick(), s.enter())
}

// enter generates the current stage's content off the UI goroutine. The
// screen does not touch the session until stageReadyMsg arrives.
func (s *QuizScreen) enter() tea.Cmd {
	s.phase = phaseLoading
	s.errMsg = ""
	sess := s.sess
	return func() tea.Msg {
		return stageReadyMsg{Err: sess.EnterStage(context.Background())}
	}
}

func (s *QuizScreen) Title() string {
	if s.phase == phaseLoading {
		return "Loading"
	}
	return stageTitles[s.sess.Stage()]
}

func (s *QuizScreen) Status() string {
	if s.phase == phaseLoading {
		return fmt.Sprintf("Round %d", s.sess.Round())
	}
	return fmt.Sprintf("Round %d  ✓ %d/%d", s.sess.Round(), s.correct, s.answered)
}

func (s *QuizScreen) HandlesEscape() bool { return true }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case phaseError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	}
	switch stage := s.sess.Stage(); {
	case stage.IsQuiz():
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "A-D", Description: "Pick"},
			{Key: "Enter", Description: "Check Answer"},
			{Key: "Esc", Description: "Back"},
		}
	case stage == session.StageContinue:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stageReadyMsg:
		return s.handleStageReady(msg)

	case components.ChoiceMsg:
		return s.handleChoice(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseLoading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleStageReady(msg stageReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseError
		s.errMsg = msg.Err.Error()
		s.log.Warn("enter stage failed", zap.Stringer("stage", s.sess.Stage()), zap.Error(msg.Err))
		return s, nil
	}

	s.phase = phaseReady
	stage := s.sess.Stage()
	switch {
	case stage.IsQuiz():
		data, _ := s.sess.StageData(stage)
		s.choices = components.NewMultiChoice(choiceLabel(data.Kind), data.Choices())
	case stage == session.StageContinue:
		s.buttons = components.NewButtonRow(
			components.Button{Label: "New Topic!", OnPress: s.newTopic},
			components.Button{Label: "End Game", OnPress: s.endGame},
		)
	}
	return s, nil
}

func (s *QuizScreen) handleChoice(msg components.ChoiceMsg) (screen.Screen, tea.Cmd) {
	if s.phase != phaseReady {
		return s, nil
	}
	v, err := s.sess.CheckAnswer(s.sess.Stage(), msg.Option)
	if err != nil {
		s.phase = phaseError
		s.errMsg = err.Error()
		return s, nil
	}
	s.verdict = v
	s.answered++
	if v.Correct {
		s.correct++
	}
	s.choices = s.choices.Reveal(msg.Index, v.CorrectAnswer)
	s.phase = phaseFeedback
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		return s, s.leave()
	}

	switch s.phase {
	case phaseLoading:
		return s, nil

	case phaseError:
		if key == "r" {
			return s, tea.Batch(s.spinner.Tick(), s.enter())
		}
		return s, nil

	case phaseFeedback:
		if key == "enter" || key == "space" {
			return s, s.advance()
		}
		return s, nil
	}

	switch stage := s.sess.Stage(); {
	case stage.IsQuiz():
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		return s, cmd
	case stage == session.StageContinue:
		var cmd tea.Cmd
		s.buttons, cmd = s.buttons.Update(msg)
		return s, cmd
	default:
		if key == "enter" || key == "space" {
			return s, s.advance()
		}
	}
	return s, nil
}

func (s *QuizScreen) advance() tea.Cmd {
	if err := s.sess.Advance(); err != nil {
		return s.fail(err)
	}
	return tea.Batch(s.spinner.Tick(), s.enter())
}

func (s *QuizScreen) newTopic() tea.Cmd {
	if err := s.sess.Reset(); err != nil {
		return s.fail(err)
	}
	return tea.Batch(s.spinner.Tick(), s.enter())
}

func (s *QuizScreen) endGame() tea.Cmd {
	if err := s.sess.End(); err != nil && !errors.Is(err, session.ErrSessionEnded) {
		return s.fail(err)
	}
	bye := newGoodbye(s.sess.Round(), s.answered, s.correct)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: bye} }
}

// leave ends the session, unless a generation is still running on it, and
// returns to the previous screen.
func (s *QuizScreen) leave() tea.Cmd {
	if s.phase != phaseLoading && !s.sess.Ended() {
		_ = s.sess.End()
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *QuizScreen) fail(err error) tea.Cmd {
	s.phase = phaseError
	s.errMsg = err.Error()
	return nil
}
