// Package schema declares the event tables. The store creates them with
// matching DDL and its tests check the two stay in step.
package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin provides the timestamp shared by all event types. Rows are
// ordered by their auto-increment id.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("timestamp").
			Immutable().
			Comment("Unix milliseconds when the event was recorded"),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}
