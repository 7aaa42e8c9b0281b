package results

import "time"

// gradePollMsg is sent at short intervals while an LLM grade is in flight.
type gradePollMsg time.Time

// gradeAppliedMsg is sent after feedback has been applied to the summary
// and the stored attempt updated.
type gradeAppliedMsg struct {
	QuestionID string
	Err        error
	Warn       string // non-fatal persistence problems, surfaced in the status bar
}

// exportedMsg is sent when an export file has been written.
type exportedMsg struct {
	Path string
	Err  error
}
