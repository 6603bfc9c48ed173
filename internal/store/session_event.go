package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	sessionEventsTable = "session_events"
	answerEventsTable  = "answer_events"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	query, args := builder().Insert(sessionEventsTable).
		Columns("timestamp", "session_id", "round", "action", "stage", "topic").
		Values(time.Now().UnixMilli(), data.SessionID, data.Round, data.Action, data.Stage, data.Topic).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	query, args := builder().Insert(answerEventsTable).
		Columns(
			"timestamp", "session_id", "round", "stage", "topic",
			"prompt", "correct_answer", "chosen_answer", "correct",
		).
		Values(
			time.Now().UnixMilli(), data.SessionID, data.Round, data.Stage, data.Topic,
			data.Prompt, data.CorrectAnswer, data.ChosenAnswer, data.Correct,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) StageAccuracy(ctx context.Context) ([]StageAccuracy, error) {
	query, args := builder().Select(
		"stage",
		entsql.As(entsql.Count("*"), "total"),
		entsql.As(entsql.Sum("correct"), "correct_total"),
	).
		From(entsql.Table(answerEventsTable)).
		GroupBy("stage").
		OrderBy("stage").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stage accuracy: %w", err)
	}
	defer rows.Close()

	var out []StageAccuracy
	for rows.Next() {
		var a StageAccuracy
		if err := rows.Scan(&a.Stage, &a.Total, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan stage accuracy: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *eventRepo) RecentTopics(ctx context.Context, limit int) ([]TopicRecord, error) {
	sel := builder().Select("topic", "session_id", "timestamp").
		From(entsql.Table(sessionEventsTable)).
		Where(entsql.EQ("action", ActionTopic)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent topics: %w", err)
	}
	defer rows.Close()

	var out []TopicRecord
	for rows.Next() {
		var (
			t  TopicRecord
			ts int64
		)
		if err := rows.Scan(&t.Topic, &t.SessionID, &ts); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		t.Timestamp = time.UnixMilli(ts)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *eventRepo) Purge(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin purge: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{llmEventsTable, sessionEventsTable, answerEventsTable} {
		query, args := builder().Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("purge %s: %w", table, err)
		}
	}
	return tx.Commit()
}
