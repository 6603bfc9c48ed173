package quiz

import (
	"context"

	"go.uber.org/zap"

	"github.com/VictorTPhan/ella-app/internal/session"
	"github.com/VictorTPhan/ella-app/internal/store"
)

// newRecorder returns a session observer that writes history to repo.
// Store failures are logged and never reach the player.
func newRecorder(repo store.EventRepo, log *zap.Logger) session.Observer {
	if log == nil {
		log = zap.NewNop()
	}
	return func(e session.Event) {
		log.Debug("session event",
			zap.String("kind", string(e.Kind)),
			zap.String("session_id", e.SessionID),
			zap.Int("round", e.Round),
			zap.Stringer("stage", e.Stage),
			zap.String("topic", e.Topic))

		if repo == nil {
			return
		}
		ctx := context.Background()

		var err error
		switch e.Kind {
		case session.EventAnswer:
			err = repo.AppendAnswerEvent(ctx, store.AnswerEventData{
				SessionID:     e.SessionID,
				Round:         e.Round,
				Stage:         int(e.Stage),
				Topic:         e.Topic,
				Prompt:        e.Prompt,
				CorrectAnswer: e.Verdict.CorrectAnswer,
				ChosenAnswer:  e.Chosen,
				Correct:       e.Verdict.Correct,
			})
		case session.EventEnter:
			if e.Stage != session.StageTopic {
				return
			}
			err = appendSession(ctx, repo, e, store.ActionTopic)
		case session.EventStart:
			err = appendSession(ctx, repo, e, store.ActionStart)
		case session.EventAdvance:
			err = appendSession(ctx, repo, e, store.ActionAdvance)
		case session.EventReset:
			err = appendSession(ctx, repo, e, store.ActionReset)
		case session.EventEnd:
			err = appendSession(ctx, repo, e, store.ActionEnd)
		}
		if err != nil {
			log.Warn("record session event", zap.String("kind", string(e.Kind)), zap.Error(err))
		}
	}
}

func appendSession(ctx context.Context, repo store.EventRepo, e session.Event, action string) error {
	return repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: e.SessionID,
		Round:     e.Round,
		Action:    action,
		Stage:     int(e.Stage),
		Topic:     e.Topic,
	})
}
