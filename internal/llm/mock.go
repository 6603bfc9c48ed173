package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply for MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays canned responses in FIFO order and records every
// request it receives. An exhausted queue yields ErrProviderUnavailable.
// Content is returned as-is, without schema validation.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider returns a MockProvider loaded with responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another canned response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns how many times Generate was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pending returns how many canned responses are still queued.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}

// ScriptFunc produces the JSON reply for a request.
type ScriptFunc func(req Request) (json.RawMessage, error)

// ScriptedProvider answers every request by calling a function. It backs
// the offline "mock" provider, where a fixed queue would run dry.
type ScriptedProvider struct {
	script ScriptFunc
}

// NewScriptedProvider returns a provider driven by fn.
func NewScriptedProvider(fn ScriptFunc) *ScriptedProvider {
	return &ScriptedProvider{script: fn}
}

func (s *ScriptedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := s.script(req)
	if err != nil {
		return nil, err
	}
	return &Response{Content: content, Model: "mock", StopReason: "end"}, nil
}

func (s *ScriptedProvider) ModelID() string { return "mock" }
