// Package session drives one learner through repeated rounds of the quiz.
// A round walks StageTopic through StageContinue; content for each stage
// is generated once and kept until the round is reset.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/VictorTPhan/ella-app/internal/content"
)

// TopicSource picks the topic for a new round.
type TopicSource interface {
	Topic(ctx context.Context) (*content.TopicInfo, error)
}

// Verdict is the outcome of checking one answer.
type Verdict struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
}

// Session owns the state of one learner's quiz. It is not safe for
// concurrent use; callers run one operation at a time.
type Session struct {
	id        string
	round     int
	state     State
	ended     bool
	topics    TopicSource
	providers map[Stage]content.Provider
	observer  Observer
}

// Option configures a Session.
type Option func(*Session)

// WithObserver registers o for session events.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New creates a session at StageTopic. providers maps each quiz stage to
// the provider generating its content.
func New(topics TopicSource, providers map[Stage]content.Provider, opts ...Option) *Session {
	s := &Session{
		id:        uuid.New().String(),
		round:     1,
		state:     newState(),
		topics:    topics,
		providers: providers,
	}
	for _, o := range opts {
		o(s)
	}
	s.emit(Event{Kind: EventStart})
	return s
}

// EnterStage generates the current stage's content if it has not been
// generated yet. It is a no-op for generated stages and StageContinue. On
// failure the state is unchanged and EnterStage may be called again.
func (s *Session) EnterStage(ctx context.Context) error {
	if s.ended {
		return ErrSessionEnded
	}

	stage := s.state.Stage
	switch {
	case stage == StageTopic:
		if s.state.TopicInfo != nil {
			return nil
		}
		info, err := s.topics.Topic(ctx)
		if err != nil {
			return fmt.Errorf("enter %s: %w", stage, err)
		}
		s.state.TopicInfo = info

	case stage.IsQuiz():
		if _, ok := s.state.Memo[stage]; ok {
			return nil
		}
		if s.state.TopicInfo == nil {
			return &InvalidTransitionError{Stage: stage, Reason: "no topic chosen"}
		}
		p, ok := s.providers[stage]
		if !ok {
			return &InvalidTransitionError{Stage: stage, Reason: "no content provider"}
		}
		data, err := p.Provide(ctx, s.state.TopicInfo.Topic)
		if err != nil {
			return fmt.Errorf("enter %s: %w", stage, err)
		}
		s.state.Memo[stage] = data

	default:
		return nil
	}

	s.emit(Event{Kind: EventEnter})
	return nil
}

// CheckAnswer compares chosen against the correct answer of a generated
// quiz stage. It does not change the session.
func (s *Session) CheckAnswer(stage Stage, chosen string) (Verdict, error) {
	if s.ended {
		return Verdict{}, ErrSessionEnded
	}
	if !stage.IsQuiz() {
		return Verdict{}, &InvalidTransitionError{Stage: stage, Reason: "not a quiz stage"}
	}
	data, ok := s.state.Memo[stage]
	if !ok {
		return Verdict{}, &InvalidTransitionError{Stage: stage, Reason: "stage content not generated"}
	}

	v := Verdict{
		Correct:       data.IsCorrect(chosen),
		CorrectAnswer: data.CorrectAnswer,
		Explanation:   data.Explanation,
	}
	s.emit(Event{Kind: EventAnswer, Stage: stage, Prompt: data.Prompt, Chosen: chosen, Verdict: v})
	return v, nil
}

// Advance moves to the next stage. It stays put at StageContinue.
func (s *Session) Advance() error {
	if s.ended {
		return ErrSessionEnded
	}
	if s.state.Stage >= StageContinue {
		return nil
	}
	s.state.Stage++
	s.emit(Event{Kind: EventAdvance})
	return nil
}

// Reset starts a new round: back to StageTopic with no topic and no
// generated content.
func (s *Session) Reset() error {
	if s.ended {
		return ErrSessionEnded
	}
	s.state = newState()
	s.round++
	s.emit(Event{Kind: EventReset})
	return nil
}

// End makes the session terminal. Accessors keep working.
func (s *Session) End() error {
	if s.ended {
		return ErrSessionEnded
	}
	s.ended = true
	s.emit(Event{Kind: EventEnd})
	return nil
}

// ID returns the session's unique ID.
func (s *Session) ID() string { return s.id }

// Round returns the current round, starting at 1.
func (s *Session) Round() int { return s.round }

// Stage returns the current stage.
func (s *Session) Stage() Stage { return s.state.Stage }

// Ended reports whether End was called.
func (s *Session) Ended() bool { return s.ended }

// Topic returns the round's topic, if chosen.
func (s *Session) Topic() (content.TopicInfo, bool) {
	if s.state.TopicInfo == nil {
		return content.TopicInfo{}, false
	}
	return *s.state.TopicInfo, true
}

// StageData returns the generated content of a quiz stage, if any.
func (s *Session) StageData(stage Stage) (content.StageData, bool) {
	data, ok := s.state.Memo[stage]
	if !ok {
		return content.StageData{}, false
	}
	return *data, true
}

// Snapshot returns a copy of the full state.
func (s *Session) Snapshot() State {
	return s.state.clone()
}

func (s *Session) emit(e Event) {
	if s.observer == nil {
		return
	}
	e.SessionID = s.id
	e.Round = s.round
	if e.Kind != EventAnswer {
		e.Stage = s.state.Stage
	}
	if s.state.TopicInfo != nil {
		e.Topic = s.state.TopicInfo.Topic
	}
	s.observer(e)
}
