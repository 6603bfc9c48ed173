package content

import "context"

// FillBlankProvider asks which subject completes a Korean sentence about
// the topic.
type FillBlankProvider struct {
	gen     Generator
	answers *AnswerBuilder
}

// NewFillBlankProvider returns a FillBlankProvider.
func NewFillBlankProvider(gen Generator, answers *AnswerBuilder) *FillBlankProvider {
	return &FillBlankProvider{gen: gen, answers: answers}
}

func (p *FillBlankProvider) Provide(ctx context.Context, topic string) (*StageData, error) {
	res, err := p.gen.Generate(ctx, sentenceContract, topic)
	if err != nil {
		return nil, err
	}
	subject, err := required(sentenceContract, res, "subject")
	if err != nil {
		return nil, err
	}
	sentence, err := required(sentenceContract, res, "sentence_with_blank")
	if err != nil {
		return nil, err
	}

	set, err := phonetics(ctx, p.gen, p.answers, hangulPhoneticsContract, subject)
	if err != nil {
		return nil, err
	}
	return &StageData{
		Kind:      KindFillBlank,
		Prompt:    sentence,
		Subject:   subject,
		AnswerSet: *set,
	}, nil
}
