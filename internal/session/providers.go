package session

import (
	"math/rand/v2"

	"github.com/VictorTPhan/ella-app/internal/content"
)

// NewDefault creates a session wired to the standard content providers.
// rng seeds answer shuffling; nil picks a random seed.
func NewDefault(gen content.Generator, rng *rand.Rand, opts ...Option) *Session {
	answers := content.NewAnswerBuilder(gen, rng)
	providers := map[Stage]content.Provider{
		StageHangul:    content.NewHangulProvider(gen, answers),
		StageEnglish:   content.NewEnglishProvider(gen, answers),
		StageFillBlank: content.NewFillBlankProvider(gen, answers),
	}
	return New(content.NewTopicProvider(gen), providers, opts...)
}
