// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/abhisek/soloquiz/ent/attempt"
	"github.com/abhisek/soloquiz/ent/gradingevent"
	"github.com/abhisek/soloquiz/ent/llmrequestevent"
	"github.com/abhisek/soloquiz/ent/schema"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	attemptFields := schema.Attempt{}.Fields()
	_ = attemptFields
	// attemptDescCompletedAt is the schema descriptor for completed_at field.
	attemptDescCompletedAt := attemptFields[6].Descriptor()
	// attempt.DefaultCompletedAt holds the default value on creation for the completed_at field.
	attempt.DefaultCompletedAt = attemptDescCompletedAt.Default.(func() time.Time)
	// attemptDescPercentage is the schema descriptor for percentage field.
	attemptDescPercentage := attemptFields[7].Descriptor()
	// attempt.DefaultPercentage holds the default value on creation for the percentage field.
	attempt.DefaultPercentage = attemptDescPercentage.Default.(float64)
	// attemptDescPendingCount is the schema descriptor for pending_count field.
	attemptDescPendingCount := attemptFields[8].Descriptor()
	// attempt.DefaultPendingCount holds the default value on creation for the pending_count field.
	attempt.DefaultPendingCount = attemptDescPendingCount.Default.(int)
	// attemptDescAutoSubmitted is the schema descriptor for auto_submitted field.
	attemptDescAutoSubmitted := attemptFields[9].Descriptor()
	// attempt.DefaultAutoSubmitted holds the default value on creation for the auto_submitted field.
	attempt.DefaultAutoSubmitted = attemptDescAutoSubmitted.Default.(bool)
	gradingeventMixin := schema.GradingEvent{}.Mixin()
	gradingeventMixinFields0 := gradingeventMixin[0].Fields()
	_ = gradingeventMixinFields0
	gradingeventFields := schema.GradingEvent{}.Fields()
	_ = gradingeventFields
	// gradingeventDescTimestamp is the schema descriptor for timestamp field.
	gradingeventDescTimestamp := gradingeventMixinFields0[1].Descriptor()
	// gradingevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	gradingevent.DefaultTimestamp = gradingeventDescTimestamp.Default.(func() time.Time)
	// gradingeventDescVerdict is the schema descriptor for verdict field.
	gradingeventDescVerdict := gradingeventFields[3].Descriptor()
	// gradingevent.DefaultVerdict holds the default value on creation for the verdict field.
	gradingevent.DefaultVerdict = gradingeventDescVerdict.Default.(string)
	// gradingeventDescScore is the schema descriptor for score field.
	gradingeventDescScore := gradingeventFields[4].Descriptor()
	// gradingevent.DefaultScore holds the default value on creation for the score field.
	gradingevent.DefaultScore = gradingeventDescScore.Default.(float64)
	// gradingeventDescSource is the schema descriptor for source field.
	gradingeventDescSource := gradingeventFields[5].Descriptor()
	// gradingevent.DefaultSource holds the default value on creation for the source field.
	gradingevent.DefaultSource = gradingeventDescSource.Default.(string)
	llmrequesteventMixin := schema.LLMRequestEvent{}.Mixin()
	llmrequesteventMixinFields0 := llmrequesteventMixin[0].Fields()
	_ = llmrequesteventMixinFields0
	llmrequesteventFields := schema.LLMRequestEvent{}.Fields()
	_ = llmrequesteventFields
	// llmrequesteventDescTimestamp is the schema descriptor for timestamp field.
	llmrequesteventDescTimestamp := llmrequesteventMixinFields0[1].Descriptor()
	// llmrequestevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	llmrequestevent.DefaultTimestamp = llmrequesteventDescTimestamp.Default.(func() time.Time)
	// llmrequesteventDescInputTokens is the schema descriptor for input_tokens field.
	llmrequesteventDescInputTokens := llmrequesteventFields[3].Descriptor()
	// llmrequestevent.DefaultInputTokens holds the default value on creation for the input_tokens field.
	llmrequestevent.DefaultInputTokens = llmrequesteventDescInputTokens.Default.(int)
	// llmrequesteventDescOutputTokens is the schema descriptor for output_tokens field.
	llmrequesteventDescOutputTokens := llmrequesteventFields[4].Descriptor()
	// llmrequestevent.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	llmrequestevent.DefaultOutputTokens = llmrequesteventDescOutputTokens.Default.(int)
	// llmrequesteventDescLatencyMs is the schema descriptor for latency_ms field.
	llmrequesteventDescLatencyMs := llmrequesteventFields[5].Descriptor()
	// llmrequestevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	llmrequestevent.DefaultLatencyMs = llmrequesteventDescLatencyMs.Default.(int64)
	// llmrequesteventDescErrorMessage is the schema descriptor for error_message field.
	llmrequesteventDescErrorMessage := llmrequesteventFields[7].Descriptor()
	// llmrequestevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	llmrequestevent.DefaultErrorMessage = llmrequesteventDescErrorMessage.Default.(string)
	// llmrequesteventDescRequestBody is the schema descriptor for request_body field.
	llmrequesteventDescRequestBody := llmrequesteventFields[8].Descriptor()
	// llmrequestevent.DefaultRequestBody holds the default value on creation for the request_body field.
	llmrequestevent.DefaultRequestBody = llmrequesteventDescRequestBody.Default.(string)
	// llmrequesteventDescResponseBody is the schema descriptor for response_body field.
	llmrequesteventDescResponseBody := llmrequesteventFields[9].Descriptor()
	// llmrequestevent.DefaultResponseBody holds the default value on creation for the response_body field.
	llmrequestevent.DefaultResponseBody = llmrequesteventDescResponseBody.Default.(string)
}
