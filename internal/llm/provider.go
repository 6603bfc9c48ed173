package llm

import (
	"context"
	"encoding/json"
)

// Provider is the boundary to a text-generation backend.
// Callers send a Request and get back structured JSON.
type Provider interface {
	// Generate sends the request to the backend. When req.Schema is set the
	// provider asks for output in that shape and validates it before
	// returning; Response.Content is then a JSON object.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier the provider is configured with.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System is the system prompt. For ella it carries the output contract.
	System string

	// Messages is the conversation. Every ella call is single-turn, so this
	// holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must satisfy. Nil means the
	// raw text is returned unvalidated.
	Schema *Schema

	// MaxTokens caps the response length. Zero lets the provider decide.
	MaxTokens int

	// Temperature controls randomness (0.0 - 1.0).
	Temperature float64
}

// SingleTurn builds a Request with one user message.
func SingleTurn(system, user string, schema *Schema) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
		Schema:   schema,
	}
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is the JSON shape expected back from the backend.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "hangul-phonetics").
	// It doubles as the compiled-schema cache key, so it must be unique
	// per definition.
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response is what a provider returns.
type Response struct {
	// Content is the validated JSON object when a Schema was given,
	// otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is the token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
