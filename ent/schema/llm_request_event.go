package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent is one row per model API call, successful or not.
// The llm stats command aggregates these for token and cost reporting.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Comment("anthropic, openai, gemini, or openrouter"),
		field.String("model").
			Comment("Model that served the request"),
		field.String("purpose").
			Comment("Caller label, e.g. subjective-grading"),
		field.Int("input_tokens").
			Default(0),
		field.Int("output_tokens").
			Default(0),
		field.Int64("latency_ms").
			Default(0),
		field.Bool("success"),
		field.String("error_message").
			Default("").
			Comment("Set when success is false"),
		field.Text("request_body").
			Default("").
			Comment("Flattened prompt as sent"),
		field.Text("response_body").
			Default("").
			Comment("Raw model output, empty on failure"),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("provider"),
		index.Fields("purpose"),
		index.Fields("success"),
	}
}
