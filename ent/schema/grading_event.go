package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GradingEvent records a manual or LLM grading action on a stored attempt:
// feedback applied to a subjective result, or a reset back to pending.
type GradingEvent struct {
	ent.Schema
}

func (GradingEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (GradingEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			Comment("Attempt the grading action applied to"),
		field.String("question_id").
			Comment("Subjective question that was graded"),
		field.String("action").
			Comment("Action taken: apply, reset"),
		field.String("verdict").
			Default("").
			Comment("Verdict applied: correct, incorrect, partial; empty for reset"),
		field.Float("score").
			Default(0).
			Comment("Score awarded after clamping"),
		field.String("source").
			Default("").
			Comment("Where the feedback came from: llm, file"),
	}
}

func (GradingEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id"),
	}
}
