package content

import "context"

// EnglishProvider asks for the Korean pronunciation of the English topic.
type EnglishProvider struct {
	gen     Generator
	answers *AnswerBuilder
}

// NewEnglishProvider returns an EnglishProvider.
func NewEnglishProvider(gen Generator, answers *AnswerBuilder) *EnglishProvider {
	return &EnglishProvider{gen: gen, answers: answers}
}

func (p *EnglishProvider) Provide(ctx context.Context, topic string) (*StageData, error) {
	set, err := phonetics(ctx, p.gen, p.answers, englishPhoneticsContract, topic)
	if err != nil {
		return nil, err
	}
	return &StageData{Kind: KindEnglish, Prompt: topic, AnswerSet: *set}, nil
}
