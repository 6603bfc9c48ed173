package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/VictorTPhan/ella-app/internal/content"
	"github.com/VictorTPhan/ella-app/internal/gateway"
	"github.com/VictorTPhan/ella-app/internal/router"
	"github.com/VictorTPhan/ella-app/internal/session"
	"github.com/VictorTPhan/ella-app/internal/store"
	"github.com/VictorTPhan/ella-app/internal/ui/components"
)

// mockEventRepo records session and answer events. Other methods panic
// through the nil embedded interface.
type mockEventRepo struct {
	store.EventRepo

	mu            sync.Mutex
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
	err           error
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionEvents = append(m.sessionEvents, data)
	return m.err
}

func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answerEvents = append(m.answerEvents, data)
	return m.err
}

func (m *mockEventRepo) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.sessionEvents {
		out = append(out, e.Action)
	}
	return out
}

// flakyGenerator fails while fail is set and delegates otherwise.
type flakyGenerator struct {
	next content.Generator
	fail bool
}

func (f *flakyGenerator) Generate(ctx context.Context, c gateway.Contract, input string) (gateway.Result, error) {
	if f.fail {
		return nil, &gateway.GenerationError{Contract: c.Name, Err: errors.New("service unavailable")}
	}
	return f.next.Generate(ctx, c, input)
}

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

var enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}

// settle runs cmd and feeds the screen's own messages back into it until
// nothing is left. Anything else the commands produce is returned.
func settle(t *testing.T, s *QuizScreen, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, settle(t, s, c)...)
		}
	case stageReadyMsg, components.ChoiceMsg:
		_, next := s.Update(msg)
		out = append(out, settle(t, s, next)...)
	default:
		out = append(out, msg)
	}
	return out
}

func newDemoScreen(t *testing.T, repo store.EventRepo) *QuizScreen {
	t.Helper()
	gen := gateway.New(content.NewDemoProvider())
	s := New(Options{Generator: gen, EventRepo: repo, Rand: rand.New(rand.NewPCG(1, 2))})
	settle(t, s, s.Init())
	return s
}

// press sends a key and settles whatever it triggers.
func press(t *testing.T, s *QuizScreen, k tea.KeyPressMsg) []tea.Msg {
	t.Helper()
	_, cmd := s.Update(k)
	return settle(t, s, cmd)
}

// answerCorrectly selects the correct option by its letter and checks it.
func answerCorrectly(t *testing.T, s *QuizScreen) {
	t.Helper()
	data, ok := s.sess.StageData(s.sess.Stage())
	if !ok {
		t.Fatalf("no data for %s", s.sess.Stage())
	}
	for i, c := range data.Choices() {
		if c == data.CorrectAnswer {
			press(t, s, key(rune('a'+i)))
			press(t, s, enterKey)
			return
		}
	}
	t.Fatalf("correct answer %q not among choices", data.CorrectAnswer)
}

func TestInit_ShowsTopic(t *testing.T) {
	s := newDemoScreen(t, nil)

	if s.phase != phaseReady {
		t.Fatalf("phase = %d, want ready", s.phase)
	}
	if s.sess.Stage() != session.StageTopic {
		t.Errorf("stage = %s, want topic", s.sess.Stage())
	}
	if got := s.Title(); got != "Step 1: Generate a Random Topic" {
		t.Errorf("Title() = %q", got)
	}
	info, _ := s.sess.Topic()
	view := s.View(100, 40)
	if !strings.Contains(view, info.Topic) {
		t.Errorf("view missing topic %q", info.Topic)
	}
	if !strings.Contains(view, "Next: Pronunciation from Hangul") {
		t.Error("view missing next label")
	}
}

func TestFullRound(t *testing.T) {
	repo := &mockEventRepo{}
	s := newDemoScreen(t, repo)

	press(t, s, enterKey)
	for _, want := range []session.Stage{session.StageHangul, session.StageEnglish, session.StageFillBlank} {
		if s.sess.Stage() != want {
			t.Fatalf("stage = %s, want %s", s.sess.Stage(), want)
		}
		if s.phase != phaseReady {
			t.Fatalf("phase = %d at %s, want ready", s.phase, want)
		}
		answerCorrectly(t, s)
		if s.phase != phaseFeedback {
			t.Fatalf("phase = %d after answer, want feedback", s.phase)
		}
		if !strings.Contains(s.View(100, 40), "Correct!") {
			t.Errorf("feedback at %s missing Correct!", want)
		}
		press(t, s, enterKey)
	}

	if s.sess.Stage() != session.StageContinue {
		t.Fatalf("stage = %s, want continue", s.sess.Stage())
	}
	if s.correct != 3 || s.answered != 3 {
		t.Errorf("score = %d/%d, want 3/3", s.correct, s.answered)
	}
	if got := s.Status(); got != "Round 1  ✓ 3/3" {
		t.Errorf("Status() = %q", got)
	}
	if len(repo.answerEvents) != 3 {
		t.Errorf("answer events = %d, want 3", len(repo.answerEvents))
	}
	for _, e := range repo.answerEvents {
		if !e.Correct {
			t.Errorf("answer at stage %d recorded as wrong", e.Stage)
		}
	}
}

func TestLetterSelectsUntilEnter(t *testing.T) {
	s := newDemoScreen(t, nil)
	press(t, s, enterKey)

	press(t, s, key('c'))
	if s.phase != phaseReady {
		t.Fatalf("phase = %d after letter, want ready", s.phase)
	}
	if s.choices.Selected != 2 {
		t.Errorf("Selected = %d, want 2", s.choices.Selected)
	}
	if s.answered != 0 {
		t.Errorf("answered = %d before enter, want 0", s.answered)
	}

	press(t, s, enterKey)
	if s.phase != phaseFeedback {
		t.Fatalf("phase = %d after enter, want feedback", s.phase)
	}
	if s.choices.Chosen != 2 {
		t.Errorf("Chosen = %d, want 2", s.choices.Chosen)
	}
}

func TestWrongAnswerShowsCorrection(t *testing.T) {
	s := newDemoScreen(t, nil)
	press(t, s, enterKey)

	data, _ := s.sess.StageData(session.StageHangul)
	for i, c := range data.Choices() {
		if c != data.CorrectAnswer {
			press(t, s, key(rune('a'+i)))
			press(t, s, enterKey)
			break
		}
	}

	if s.verdict.Correct {
		t.Fatal("verdict should be wrong")
	}
	view := s.View(100, 40)
	for _, want := range []string{"Wrong!", "Correct Answer: ", data.CorrectAnswer, "Next: Pronunciation from English"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if s.sess.Stage() != session.StageHangul {
		t.Errorf("answering should not advance, stage = %s", s.sess.Stage())
	}
}

func TestNewTopicStartsNextRound(t *testing.T) {
	repo := &mockEventRepo{}
	s := newDemoScreen(t, repo)
	first, _ := s.sess.Topic()

	press(t, s, enterKey)
	for range 3 {
		answerCorrectly(t, s)
		press(t, s, enterKey)
	}
	// New Topic! is focused first.
	press(t, s, enterKey)

	if s.sess.Round() != 2 {
		t.Errorf("Round() = %d, want 2", s.sess.Round())
	}
	if s.sess.Stage() != session.StageTopic {
		t.Errorf("stage = %s, want topic", s.sess.Stage())
	}
	second, _ := s.sess.Topic()
	if second.Topic == first.Topic {
		t.Errorf("topic repeated: %q", second.Topic)
	}
	if _, ok := s.sess.StageData(session.StageHangul); ok {
		t.Error("reset should clear generated stages")
	}

	actions := repo.actions()
	var resets, topics int
	for _, a := range actions {
		switch a {
		case store.ActionReset:
			resets++
		case store.ActionTopic:
			topics++
		}
	}
	if resets != 1 || topics != 2 {
		t.Errorf("actions = %v, want one reset and two topics", actions)
	}
}

func TestEndGameShowsGoodbye(t *testing.T) {
	repo := &mockEventRepo{}
	s := newDemoScreen(t, repo)

	press(t, s, enterKey)
	for range 3 {
		answerCorrectly(t, s)
		press(t, s, enterKey)
	}
	press(t, s, key('l'))
	msgs := press(t, s, enterKey)

	if !s.sess.Ended() {
		t.Error("session should be ended")
	}
	var replace *router.ReplaceScreenMsg
	for _, m := range msgs {
		if r, ok := m.(router.ReplaceScreenMsg); ok {
			replace = &r
		}
	}
	if replace == nil {
		t.Fatalf("expected ReplaceScreenMsg, got %v", msgs)
	}
	bye, ok := replace.Screen.(*goodbyeScreen)
	if !ok {
		t.Fatalf("replacement = %T, want *goodbyeScreen", replace.Screen)
	}
	if !strings.Contains(bye.View(100, 40), "Thanks for playing!") {
		t.Error("goodbye view missing farewell")
	}
	if bye.correct != 3 || bye.answered != 3 {
		t.Errorf("goodbye score = %d/%d, want 3/3", bye.correct, bye.answered)
	}

	actions := repo.actions()
	if actions[len(actions)-1] != store.ActionEnd {
		t.Errorf("last action = %q, want end", actions[len(actions)-1])
	}
}

func TestGenerationFailureAndRetry(t *testing.T) {
	gen := &flakyGenerator{next: gateway.New(content.NewDemoProvider()), fail: true}
	s := New(Options{Generator: gen})
	settle(t, s, s.Init())

	if s.phase != phaseError {
		t.Fatalf("phase = %d, want error", s.phase)
	}
	if !strings.Contains(s.View(100, 40), "service unavailable") {
		t.Error("error view should show the cause")
	}
	if _, ok := s.sess.Topic(); ok {
		t.Error("failed generation should not set a topic")
	}

	gen.fail = false
	press(t, s, key('r'))

	if s.phase != phaseReady {
		t.Fatalf("phase = %d after retry, want ready", s.phase)
	}
	if _, ok := s.sess.Topic(); !ok {
		t.Error("retry should set a topic")
	}
}

func TestEscapeEndsSessionAndPops(t *testing.T) {
	repo := &mockEventRepo{}
	s := newDemoScreen(t, repo)

	if !s.HandlesEscape() {
		t.Fatal("quiz should handle escape")
	}
	msgs := press(t, s, tea.KeyPressMsg{Code: tea.KeyEscape})

	if !s.sess.Ended() {
		t.Error("escape should end the session")
	}
	if len(msgs) != 1 {
		t.Fatalf("msgs = %v, want one PopScreenMsg", msgs)
	}
	if _, ok := msgs[0].(router.PopScreenMsg); !ok {
		t.Errorf("msg = %T, want router.PopScreenMsg", msgs[0])
	}
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	s := New(Options{Generator: gateway.New(content.NewDemoProvider())})
	s.phase = phaseLoading

	_, cmd := s.Update(enterKey)
	if cmd != nil {
		t.Error("enter while loading should do nothing")
	}
	if s.Title() != "Loading" {
		t.Errorf("Title() = %q, want Loading", s.Title())
	}
}

func TestRecorder(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &mockEventRepo{err: errors.New("disk full")}
	rec := newRecorder(repo, zap.New(core))

	rec(session.Event{Kind: session.EventStart, SessionID: "s1", Round: 1})
	rec(session.Event{Kind: session.EventEnter, SessionID: "s1", Round: 1, Stage: session.StageHangul})
	rec(session.Event{Kind: session.EventEnter, SessionID: "s1", Round: 1, Stage: session.StageTopic, Topic: "apple"})
	rec(session.Event{
		Kind: session.EventAnswer, SessionID: "s1", Round: 1, Stage: session.StageHangul,
		Topic: "apple", Prompt: "사과", Chosen: "sa-gwa",
		Verdict: session.Verdict{Correct: true, CorrectAnswer: "sa-gwa"},
	})

	if got, want := repo.actions(), []string{store.ActionStart, store.ActionTopic}; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("actions = %v, want %v", got, want)
	}
	if len(repo.answerEvents) != 1 {
		t.Fatalf("answer events = %d, want 1", len(repo.answerEvents))
	}
	a := repo.answerEvents[0]
	if a.ChosenAnswer != "sa-gwa" || !a.Correct || a.Topic != "apple" {
		t.Errorf("answer event = %+v", a)
	}
	if n := logs.FilterMessage("record session event").Len(); n != 3 {
		t.Errorf("warnings = %d, want 3", n)
	}
}

func TestRecorder_NilRepo(t *testing.T) {
	rec := newRecorder(nil, nil)
	rec(session.Event{Kind: session.EventStart})
}
