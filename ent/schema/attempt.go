package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Attempt is one completed quiz run: the full graded summary plus enough
// metadata to list and match attempts without decoding the summary JSON.
type Attempt struct {
	ent.Schema
}

func (Attempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			Unique().
			Immutable().
			Comment("UUID assigned when the summary was computed"),
		field.String("fingerprint_key").
			Comment("Assessment fingerprint key, groups attempts of the same quiz"),
		field.String("title").
			Comment("Assessment title at the time of the attempt"),
		field.Int("question_count").
			Comment("Number of questions in the assessment"),
		field.JSON("summary", map[string]any{}).
			Comment("Full submission summary as JSON"),
		field.Time("started_at").
			Comment("When the attempt began"),
		field.Time("completed_at").
			Default(time.Now).
			Comment("When the attempt was submitted"),
		field.Float("percentage").
			Default(0).
			Comment("Deterministic percentage, denormalized for listings"),
		field.Int("pending_count").
			Default(0).
			Comment("Subjective results still awaiting grading"),
		field.Bool("auto_submitted").
			Default(false).
			Comment("Whether the time limit forced submission"),
	}
}

func (Attempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("fingerprint_key"),
		index.Fields("completed_at"),
	}
}
