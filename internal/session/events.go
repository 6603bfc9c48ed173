package session

// EventKind names a session mutation.
type EventKind string

const (
	EventStart   EventKind = "start"
	EventEnter   EventKind = "enter"
	EventAnswer  EventKind = "answer"
	EventAdvance EventKind = "advance"
	EventReset   EventKind = "reset"
	EventEnd     EventKind = "end"
)

// Event describes a mutation after it happened. Stage is the stage the
// session is at once the mutation is applied, except for EventAnswer where
// it is the stage that was answered.
type Event struct {
	Kind      EventKind
	SessionID string
	Round     int
	Stage     Stage
	Topic     string

	// Set for EventAnswer.
	Prompt  string
	Chosen  string
	Verdict Verdict
}

// Observer is notified after each successful mutation and each checked
// answer. It runs on the caller's goroutine and must not call back into
// the session.
type Observer func(Event)
