package llm

// ModelCost is per-million-token pricing in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a request with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns pricing for modelID, or nil if it is not in the table.
// Dated snapshot IDs fall back to their base ID ("gpt-4o-2024-08-06" →
// "gpt-4o").
func LookupCost(modelID string) *ModelCost {
	for id := modelID; id != ""; id = trimDateSuffix(id) {
		if c, ok := modelCosts[id]; ok {
			return &c
		}
		if trimDateSuffix(id) == id {
			break
		}
	}
	return nil
}

// trimDateSuffix drops a trailing "-YYYY-MM-DD" or "-YYYYMMDD".
func trimDateSuffix(id string) string {
	for _, n := range []int{len("-2006-01-02"), len("-20060102")} {
		if len(id) <= n || id[len(id)-n] != '-' {
			continue
		}
		digits := 0
		for _, r := range id[len(id)-n+1:] {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits == 8 {
			return id[:len(id)-n]
		}
	}
	return id
}

// modelCosts comes from models.dev, trimmed to the models ella is
// configured for.
var modelCosts = map[string]ModelCost{
	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},

	// Anthropic
	"claude-haiku-4-5":         {1, 5},
	"claude-sonnet-4":          {3, 15},
	"claude-sonnet-4-5":        {3, 15},
	"claude-3-5-haiku-latest":  {0.8, 4},
	"claude-3-7-sonnet-latest": {3, 15},

	// Google
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-pro":        {1.25, 10},

	// OpenRouter mirrors
	"openai/gpt-4o":      {2.5, 10},
	"openai/gpt-4o-mini": {0.15, 0.6},
}
