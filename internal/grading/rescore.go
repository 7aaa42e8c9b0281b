package grading

import "fmt"

// FeedbackError reports an invalid feedback payload. The targeted result is
// never mutated when one is returned.
type FeedbackError struct {
	Field   string
	Message string
}

func (e *FeedbackError) Error() string {
	if e.Field == "" {
		return "invalid feedback: " + e.Message
	}
	return fmt.Sprintf("invalid feedback: %s: %s", e.Field, e.Message)
}

// ApplyFeedback stores a grading payload on a subjective result, setting its
// earned score, correctness, and status from the verdict. The score is
// clamped into [0, result.Max]. Rubric breakdown entries must reference
// rubric titles present on the question and their fractions must lie in
// [0, 1]; a payload violating either is rejected without mutating anything.
func ApplyFeedback(r *QuestionResult, fb Feedback) error {
	if !r.RequiresManualGrading {
		return &FeedbackError{Message: "result is deterministic, not subjective"}
	}
	if err := validateFeedback(r, fb); err != nil {
		return err
	}

	score := clamp(fb.Score, 0, r.Max)

	var status Status
	var isCorrect *bool
	switch fb.Verdict {
	case VerdictCorrect:
		status = StatusCorrect
		isCorrect = boolPtr(true)
	case VerdictIncorrect:
		status = StatusIncorrect
		isCorrect = boolPtr(false)
	case VerdictPartial:
		// Partial credit has no binary correctness.
		status = StatusPartial
	}

	r.Earned = float64Ptr(score)
	r.IsCorrect = isCorrect
	r.Status = status
	if r.Evaluation == nil {
		r.Evaluation = &Evaluation{}
	}
	r.Evaluation.Status = EvaluationScored
	r.Evaluation.AwardedScore = float64Ptr(score)
	r.Evaluation.Verdict = fb.Verdict
	r.Evaluation.FeedbackText = fb.FeedbackText
	r.Evaluation.Improvements = append([]string(nil), fb.Improvements...)
	r.Evaluation.RubricBreakdown = append([]RubricScore(nil), fb.RubricBreakdown...)

	return nil
}

// ResetSubjective is the inverse of ApplyFeedback: it clears the earned
// score, correctness, and feedback payload and returns the result to
// pending, restoring its contribution to the pending subjective totals.
func ResetSubjective(r *QuestionResult) error {
	if !r.RequiresManualGrading {
		return &FeedbackError{Message: "result is deterministic, not subjective"}
	}
	r.Earned = nil
	r.IsCorrect = nil
	r.Status = StatusPending
	r.Evaluation = &Evaluation{Status: EvaluationPending}
	return nil
}

func validateFeedback(r *QuestionResult, fb Feedback) error {
	if !fb.Verdict.Valid() {
		return &FeedbackError{Field: "verdict", Message: fmt.Sprintf("unknown verdict %q", fb.Verdict)}
	}
	if fb.Score < 0 {
		return &FeedbackError{Field: "score", Message: "must be non-negative"}
	}
	if fb.MaxScore < 0 {
		return &FeedbackError{Field: "maxScore", Message: "must be non-negative"}
	}

	known := make(map[string]bool)
	if r.Question != nil {
		for _, rubric := range r.Question.Rubrics {
			known[rubric.Title] = true
		}
	}
	for i, entry := range fb.RubricBreakdown {
		if entry.AchievedFraction < 0 || entry.AchievedFraction > 1 {
			return &FeedbackError{
				Field:   fmt.Sprintf("rubricBreakdown[%d].achievedFraction", i),
				Message: "must lie in [0, 1]",
			}
		}
		if len(known) > 0 && !known[entry.Rubric] {
			return &FeedbackError{
				Field:   fmt.Sprintf("rubricBreakdown[%d].rubric", i),
				Message: fmt.Sprintf("question has no rubric titled %q", entry.Rubric),
			}
		}
	}

	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
