package grading

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/soloquiz/internal/assessment"
)

// SubmissionSummary aggregates the graded results of one attempt.
//
// The summary is a snapshot taken at submission time. Deterministic totals
// never change afterwards; the pending-subjective fields are derived and are
// refreshed by Recompute whenever a subjective result is rescored.
type SubmissionSummary struct {
	ID         string                 `json:"id"`
	Assessment *assessment.Assessment `json:"-"`

	// Results is ordered parallel to the presented questions.
	Results []*QuestionResult `json:"results"`

	DeterministicEarned     float64 `json:"deterministicEarned"`
	DeterministicMax        float64 `json:"deterministicMax"`
	DeterministicPercentage float64 `json:"deterministicPercentage"`

	SubjectiveMax          float64 `json:"subjectiveMax"`
	PendingSubjectiveMax   float64 `json:"pendingSubjectiveMax"`
	PendingSubjectiveCount int     `json:"pendingSubjectiveCount"`

	StartedAt     time.Time `json:"startedAt"`
	CompletedAt   time.Time `json:"completedAt"`
	ElapsedSec    int       `json:"elapsedSec"`
	AutoSubmitted bool      `json:"autoSubmitted"`
}

// Submission carries everything needed to grade a completed attempt.
type Submission struct {
	Assessment *assessment.Assessment

	// Questions is the presentation order, which may differ from document
	// order when the assessment shuffles.
	Questions []assessment.Question

	// Answers maps question id to submitted value. Missing keys grade as
	// unanswered; extra keys are ignored.
	Answers map[string]Answer

	// StartedAt may be zero when the wall-clock start is unknown (resumed
	// sessions); ElapsedFallbackSec is used instead.
	StartedAt          time.Time
	CompletedAt        time.Time
	ElapsedFallbackSec int
	AutoSubmitted      bool
}

// EvaluateSubmission grades every question of a submission in presentation
// order and aggregates the results.
func EvaluateSubmission(sub Submission) *SubmissionSummary {
	results := make([]*QuestionResult, 0, len(sub.Questions))
	for i := range sub.Questions {
		q := &sub.Questions[i]
		results = append(results, Evaluate(q, sub.Answers[q.ID]))
	}
	return ComputeSummary(sub.Assessment, results, sub.StartedAt, sub.CompletedAt, sub.ElapsedFallbackSec, sub.AutoSubmitted)
}

// ComputeSummary builds a summary over already-graded results. The results
// slice is retained, not copied: subjective entries stay mutable in place.
func ComputeSummary(a *assessment.Assessment, results []*QuestionResult, startedAt, completedAt time.Time, elapsedFallbackSec int, autoSubmitted bool) *SubmissionSummary {
	s := &SubmissionSummary{
		ID:            newAttemptID(),
		Assessment:    a,
		Results:       results,
		CompletedAt:   completedAt,
		AutoSubmitted: autoSubmitted,
	}

	for _, r := range results {
		if r.RequiresManualGrading {
			s.SubjectiveMax += r.Max
			continue
		}
		s.DeterministicEarned += r.EarnedOrZero()
		s.DeterministicMax += r.Max
	}
	if s.DeterministicMax > 0 {
		s.DeterministicPercentage = s.DeterministicEarned / s.DeterministicMax * 100
	}

	s.Recompute()

	s.StartedAt = startedAt
	if startedAt.IsZero() {
		s.StartedAt = completedAt
		s.ElapsedSec = elapsedFallbackSec
	} else {
		s.ElapsedSec = int(completedAt.Sub(startedAt) / time.Second)
	}
	if s.ElapsedSec < 0 {
		s.ElapsedSec = 0
	}

	return s
}

// Recompute refreshes the derived pending-subjective fields. Call after
// applying or resetting subjective feedback. Deterministic totals are fixed
// at submission time and are deliberately left untouched.
func (s *SubmissionSummary) Recompute() {
	s.PendingSubjectiveMax = 0
	s.PendingSubjectiveCount = 0
	for _, r := range s.Results {
		if r.Pending() {
			s.PendingSubjectiveMax += r.Max
			s.PendingSubjectiveCount++
		}
	}
}

// Result returns the result for the given question id, or nil.
func (s *SubmissionSummary) Result(questionID string) *QuestionResult {
	for _, r := range s.Results {
		if r.QuestionID == questionID {
			return r
		}
	}
	return nil
}

// PendingSubjective returns the results still awaiting grading, in order.
func (s *SubmissionSummary) PendingSubjective() []*QuestionResult {
	var pending []*QuestionResult
	for _, r := range s.Results {
		if r.Pending() {
			pending = append(pending, r)
		}
	}
	return pending
}

// ApplyFeedback applies a grading payload to the result for questionID and
// refreshes the pending totals. The result is left unchanged on error.
func (s *SubmissionSummary) ApplyFeedback(questionID string, fb Feedback) error {
	r := s.Result(questionID)
	if r == nil {
		return &FeedbackError{Field: "questionId", Message: "no result for question " + questionID}
	}
	if err := ApplyFeedback(r, fb); err != nil {
		return err
	}
	s.Recompute()
	return nil
}

// ResetSubjective returns the result for questionID to pending and restores
// its contribution to the pending totals.
func (s *SubmissionSummary) ResetSubjective(questionID string) error {
	r := s.Result(questionID)
	if r == nil {
		return &FeedbackError{Field: "questionId", Message: "no result for question " + questionID}
	}
	if err := ResetSubjective(r); err != nil {
		return err
	}
	s.Recompute()
	return nil
}

// newAttemptID generates a unique attempt identifier.
func newAttemptID() string {
	return uuid.NewString()
}
