package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/VictorTPhan/ella-app/internal/store"
)

// recordingRepo captures LLM events and fails on demand.
type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"hangul":"사과"}`),
		Usage:   Usage{InputTokens: 30, OutputTokens: 8, TotalTokens: 38},
	})
	p := WithLogging(mock, "openai", repo, nil)

	ctx := WithPurpose(context.Background(), "hangul")
	if _, err := p.Generate(ctx, SingleTurn("translate to korean", "apple", phoneticsSchema())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if !e.Success || e.ErrorMessage != "" {
		t.Errorf("expected success event, got %+v", e)
	}
	if e.Provider != "openai" {
		t.Errorf("provider = %q, want openai", e.Provider)
	}
	if e.Model != "mock" {
		t.Errorf("model = %q, want mock", e.Model)
	}
	if e.Purpose != "hangul" {
		t.Errorf("purpose = %q, want hangul", e.Purpose)
	}
	if e.InputTokens != 30 || e.OutputTokens != 8 {
		t.Errorf("tokens = %d/%d, want 30/8", e.InputTokens, e.OutputTokens)
	}
	if e.ResponseBody != `{"hangul":"사과"}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	for _, want := range []string{"[system]", "translate to korean", "[user]", "apple", "[schema: test-phonetics]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
}

func TestLoggingProvider_RecordsFailureAndWarns(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	repo := &recordingRepo{}
	p := WithLogging(NewMockProvider(), "mock", repo, zap.New(core))

	_, err := p.Generate(context.Background(), SingleTurn("sys", "apple", nil))
	if err == nil {
		t.Fatal("expected error from empty mock")
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Success {
		t.Error("expected Success = false")
	}
	if e.ErrorMessage == "" {
		t.Error("expected error message to be recorded")
	}
	if e.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", e.Purpose)
	}
	if n := logs.FilterMessage("llm request failed").Len(); n != 1 {
		t.Errorf("expected 1 warning log, got %d", n)
	}
}

func TestLoggingProvider_RepoErrorDoesNotFailRequest(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", repo, zap.New(core))

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("repo failure leaked into request: %v", err)
	}
	if n := logs.FilterMessage("record llm request event").Len(); n != 1 {
		t.Errorf("expected repo failure to be logged once, got %d", n)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q, want mock", p.ModelID())
	}
}

func TestLoggingProvider_RecordsExpiredRequest(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: context.DeadlineExceeded})
	p := WithLogging(mock, "mock", repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Generate(ctx, Request{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event after cancellation, got %d", len(repo.events))
	}
	if repo.events[0].Success {
		t.Error("expected Success = false")
	}
}
