// Package gateway is the single entry point for content generation. It
// turns a Contract (system prompt plus required output keys) and a user
// input into a validated string mapping, or a GenerationError.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/VictorTPhan/ella-app/internal/llm"
)

// Contract fixes what one kind of generation call sends and must get back.
type Contract struct {
	// Name identifies the contract, kebab-case. It names the derived schema.
	Name string

	// System is the system prompt.
	System string

	// Keys are the string fields the response must contain.
	Keys []string

	// Purpose tags the request in the LLM event log.
	Purpose string
}

// Schema derives the response schema: an object with one required string
// property per key and nothing else.
func (c Contract) Schema() *llm.Schema {
	props := make(map[string]any, len(c.Keys))
	required := make([]any, 0, len(c.Keys))
	for _, k := range c.Keys {
		props[k] = map[string]any{"type": "string"}
		required = append(required, k)
	}
	return &llm.Schema{
		Name:        c.Name,
		Description: fmt.Sprintf("%s response", c.Name),
		Definition: map[string]any{
			"type":                 "object",
			"properties":           props,
			"required":             required,
			"additionalProperties": false,
		},
	}
}

// Result is the validated response. It holds at least every contract key.
type Result map[string]string

// Gateway sends contracts to an llm.Provider. It makes exactly one attempt
// per call.
type Gateway struct {
	provider    llm.Provider
	timeout     time.Duration
	maxTokens   int
	temperature float64
	log         *zap.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTimeout bounds each call. Zero means no gateway-level timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithMaxTokens caps each response.
func WithMaxTokens(n int) Option {
	return func(g *Gateway) { g.maxTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(g *Gateway) { g.temperature = t }
}

// WithLogger sets the process logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Gateway) {
		if log != nil {
			g.log = log
		}
	}
}

// FromConfig returns the options implied by an llm.Config.
func FromConfig(cfg llm.Config) []Option {
	return []Option{
		WithTimeout(cfg.Timeout),
		WithMaxTokens(cfg.MaxTokens),
		WithTemperature(cfg.Temperature),
	}
}

// New creates a Gateway over provider.
func New(provider llm.Provider, opts ...Option) *Gateway {
	g := &Gateway{provider: provider, log: zap.NewNop()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate sends input under contract c and returns the validated result.
// Every failure is a *GenerationError naming the contract.
func (g *Gateway) Generate(ctx context.Context, c Contract, input string) (Result, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, c.Purpose)

	req := llm.SingleTurn(c.System, input, c.Schema())
	req.MaxTokens = g.maxTokens
	req.Temperature = g.temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		g.log.Warn("generation failed", zap.String("contract", c.Name), zap.Error(err))
		return nil, &GenerationError{Contract: c.Name, Err: err}
	}

	res, err := decode(resp.Content, c.Keys)
	if err != nil {
		g.log.Warn("generation rejected",
			zap.String("contract", c.Name),
			zap.ByteString("content", resp.Content),
			zap.Error(err))
		return nil, &GenerationError{Contract: c.Name, Err: err}
	}
	return res, nil
}

// decode checks that content is a JSON object holding a string for every key.
func decode(content json.RawMessage, keys []string) (Result, error) {
	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformed)
	}

	res := make(Result, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			res[k] = s
		}
	}
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			return nil, &MissingKeyError{Key: k}
		}
		if _, isString := v.(string); !isString {
			return nil, fmt.Errorf("%w: key %q is %T, want string", ErrMalformed, k, v)
		}
	}
	return res, nil
}

// JSONInput encodes v as a user input for contracts that take structured
// input.
func JSONInput(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode input: %w", err)
	}
	return string(b), nil
}

// IsGenerationError reports whether err is or wraps a *GenerationError.
func IsGenerationError(err error) bool {
	var gen *GenerationError
	return errors.As(err, &gen)
}
