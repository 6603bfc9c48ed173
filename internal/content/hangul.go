package content

import (
	"context"

	"github.com/VictorTPhan/ella-app/internal/gateway"
)

// HangulProvider asks for the pronunciation of the topic written in Hangul.
type HangulProvider struct {
	gen     Generator
	answers *AnswerBuilder
}

// NewHangulProvider returns a HangulProvider.
func NewHangulProvider(gen Generator, answers *AnswerBuilder) *HangulProvider {
	return &HangulProvider{gen: gen, answers: answers}
}

func (p *HangulProvider) Provide(ctx context.Context, topic string) (*StageData, error) {
	res, err := p.gen.Generate(ctx, translateContract, topic)
	if err != nil {
		return nil, err
	}
	hangul, err := required(translateContract, res, "hangul")
	if err != nil {
		return nil, err
	}

	set, err := phonetics(ctx, p.gen, p.answers, hangulPhoneticsContract, hangul)
	if err != nil {
		return nil, err
	}
	return &StageData{Kind: KindHangul, Prompt: hangul, AnswerSet: *set}, nil
}

// phonetics transliterates input under c and builds the answer set from
// the result.
func phonetics(ctx context.Context, gen Generator, answers *AnswerBuilder, c gateway.Contract, input string) (*AnswerSet, error) {
	res, err := gen.Generate(ctx, c, input)
	if err != nil {
		return nil, err
	}
	correct, err := required(c, res, "final_sequence")
	if err != nil {
		return nil, err
	}
	return answers.Build(ctx, correct, res["thought_process"])
}
