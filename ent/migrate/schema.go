// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// AttemptsColumns holds the columns for the "attempts" table.
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "attempt_id", Type: field.TypeString, Unique: true},
		{Name: "fingerprint_key", Type: field.TypeString},
		{Name: "title", Type: field.TypeString},
		{Name: "question_count", Type: field.TypeInt},
		{Name: "summary", Type: field.TypeJSON},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "completed_at", Type: field.TypeTime},
		{Name: "percentage", Type: field.TypeFloat64, Default: 0},
		{Name: "pending_count", Type: field.TypeInt, Default: 0},
		{Name: "auto_submitted", Type: field.TypeBool, Default: false},
	}
	// AttemptsTable holds the schema information for the "attempts" table.
	AttemptsTable = &schema.Table{
		Name:       "attempts",
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attempt_fingerprint_key",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[2]},
			},
			{
				Name:    "attempt_completed_at",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[7]},
			},
		},
	}
	// GradingEventsColumns holds the columns for the "grading_events" table.
	GradingEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "attempt_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "verdict", Type: field.TypeString, Default: ""},
		{Name: "score", Type: field.TypeFloat64, Default: 0},
		{Name: "source", Type: field.TypeString, Default: ""},
	}
	// GradingEventsTable holds the schema information for the "grading_events" table.
	GradingEventsTable = &schema.Table{
		Name:       "grading_events",
		Columns:    GradingEventsColumns,
		PrimaryKey: []*schema.Column{GradingEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "gradingevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{GradingEventsColumns[1]},
			},
			{
				Name:    "gradingevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{GradingEventsColumns[2]},
			},
			{
				Name:    "gradingevent_attempt_id",
				Unique:  false,
				Columns: []*schema.Column{GradingEventsColumns[3]},
			},
		},
	}
	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[1]},
			},
			{
				Name:    "llmrequestevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[2]},
			},
			{
				Name:    "llmrequestevent_provider",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[3]},
			},
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[5]},
			},
			{
				Name:    "llmrequestevent_success",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[9]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AttemptsTable,
		GradingEventsTable,
		LlmRequestEventsTable,
	}
)

func init() {
}
