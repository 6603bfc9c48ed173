// Package content produces the material for each quiz stage: the round's
// topic and, per quiz stage, a prompt with a shuffled multiple-choice
// answer set.
package content

import (
	"context"
	"slices"

	"github.com/VictorTPhan/ella-app/internal/gateway"
)

// ChoiceCount is the size of every answer set.
const ChoiceCount = 4

// Generator is the gateway surface the providers need.
type Generator interface {
	Generate(ctx context.Context, c gateway.Contract, input string) (gateway.Result, error)
}

// TopicInfo is the round's English topic and a short note on saying it in
// Korean.
type TopicInfo struct {
	Topic    string
	Tutorial string
}

// Kind names the quiz stage a StageData was made for.
type Kind string

const (
	KindHangul    Kind = "hangul"
	KindEnglish   Kind = "english"
	KindFillBlank Kind = "fill-blank"
)

// AnswerSet holds four choices with exactly one correct answer. The order
// is fixed when the set is built.
type AnswerSet struct {
	CorrectAnswer string
	Explanation   string
	choices       []string
}

// Choices returns a copy of the choices in display order.
func (a AnswerSet) Choices() []string {
	return slices.Clone(a.choices)
}

// IsCorrect reports whether chosen is exactly the correct answer.
func (a AnswerSet) IsCorrect(chosen string) bool {
	return chosen == a.CorrectAnswer
}

// StageData is everything one quiz stage displays.
type StageData struct {
	Kind Kind

	// Prompt is the display string: the Hangul text, the English topic, or
	// the Korean sentence with a blank.
	Prompt string

	// Subject is the Hangul word removed from a fill-in-the-blank sentence.
	// Empty for other kinds.
	Subject string

	AnswerSet
}

// Provider produces the content of one quiz stage for a topic.
type Provider interface {
	Provide(ctx context.Context, topic string) (*StageData, error)
}
