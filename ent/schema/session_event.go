package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records session lifecycle transitions.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.Int("round").
			Positive().
			Comment("1 for the first topic, incremented on each reset"),
		field.Enum("action").
			Values("start", "topic", "advance", "reset", "end"),
		field.Int("stage").
			Range(0, 4).
			Comment("Stage after the transition"),
		field.String("topic").
			Default("").
			Comment("Round topic, once chosen"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
