package content

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/VictorTPhan/ella-app/internal/gateway"
)

var (
	// ErrEmptyField means a response field that later steps depend on was blank.
	ErrEmptyField = errors.New("empty field")

	// ErrInvalidDistractors means the distractors were blank, repeated, or
	// equal to the correct answer.
	ErrInvalidDistractors = errors.New("invalid distractors")
)

// AnswerBuilder turns a correct answer into a shuffled AnswerSet by asking
// the gateway for three distractors.
type AnswerBuilder struct {
	gen Generator

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAnswerBuilder returns a builder using rng for shuffling. A nil rng is
// seeded randomly.
func NewAnswerBuilder(gen Generator, rng *rand.Rand) *AnswerBuilder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &AnswerBuilder{gen: gen, rng: rng}
}

// Build requests distractors for correct and returns the shuffled set.
func (b *AnswerBuilder) Build(ctx context.Context, correct, explanation string) (*AnswerSet, error) {
	correct = strings.TrimSpace(correct)
	if correct == "" {
		return nil, &gateway.GenerationError{
			Contract: distractorsContract.Name,
			Err:      fmt.Errorf("%w: correct answer", ErrEmptyField),
		}
	}

	input, err := gateway.JSONInput(map[string]string{"sequence": correct})
	if err != nil {
		return nil, &gateway.GenerationError{Contract: distractorsContract.Name, Err: err}
	}
	res, err := b.gen.Generate(ctx, distractorsContract, input)
	if err != nil {
		return nil, err
	}

	choices := make([]string, 0, ChoiceCount)
	seen := map[string]string{correct: "the correct answer"}
	for _, key := range distractorsContract.Keys {
		d := strings.TrimSpace(res[key])
		if d == "" {
			return nil, distractorError("%s is empty", key)
		}
		if prev, dup := seen[d]; dup {
			return nil, distractorError("%s repeats %s", key, prev)
		}
		seen[d] = key
		choices = append(choices, d)
	}
	choices = append(choices, correct)

	b.shuffle(choices)
	return &AnswerSet{CorrectAnswer: correct, Explanation: explanation, choices: choices}, nil
}

func (b *AnswerBuilder) shuffle(choices []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
}

func distractorError(format string, args ...any) error {
	return &gateway.GenerationError{
		Contract: distractorsContract.Name,
		Err:      fmt.Errorf("%w: "+format, append([]any{ErrInvalidDistractors}, args...)...),
	}
}
