package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one checked answer.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.Int("round").
			Positive(),
		field.Int("stage").
			Range(1, 3).
			Comment("hangul, english or fill-blank"),
		field.String("topic"),
		field.String("prompt").
			Comment("Hangul, English topic or blanked sentence shown"),
		field.String("correct_answer").
			NotEmpty(),
		field.String("chosen_answer").
			NotEmpty(),
		field.Bool("correct"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("stage"),
	}
}
