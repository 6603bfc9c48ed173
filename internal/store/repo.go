package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	After   int       // id > After
	Before  int       // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// Session actions recorded in session_events.
const (
	ActionStart   = "start"
	ActionTopic   = "topic"
	ActionAdvance = "advance"
	ActionReset   = "reset"
	ActionEnd     = "end"
)

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID string
	Round     int
	Action    string
	Stage     int
	Topic     string
}

// AnswerEventData captures one checked answer.
type AnswerEventData struct {
	SessionID     string
	Round         int
	Stage         int
	Topic         string
	Prompt        string
	CorrectAnswer string
	ChosenAnswer  string
	Correct       bool
}

// StageAccuracy aggregates answers for a single stage.
type StageAccuracy struct {
	Stage   int
	Total   int
	Correct int
}

// Accuracy returns the fraction of correct answers, or 0 with no answers.
func (a StageAccuracy) Accuracy() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}

// TopicRecord is a topic chosen in some session.
type TopicRecord struct {
	Topic     string
	SessionID string
	Timestamp time.Time
}

// EventRepo provides append and query access to recorded history.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// AppendSessionEvent records a session lifecycle transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a checked answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// StageAccuracy returns answer totals per stage, ordered by stage.
	StageAccuracy(ctx context.Context) ([]StageAccuracy, error)

	// RecentTopics returns the most recently chosen topics, newest first.
	RecentTopics(ctx context.Context, limit int) ([]TopicRecord, error)

	// Purge deletes all recorded history.
	Purge(ctx context.Context) error
}
