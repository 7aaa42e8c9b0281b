package grading

import (
	"github.com/abhisek/soloquiz/internal/assessment"
)

// Status is the grading outcome of a single question.
type Status string

const (
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
	// StatusPending marks an ungraded subjective result.
	StatusPending Status = "pending"
	// StatusPartial only arises from subjective feedback awarding partial credit.
	StatusPartial Status = "partial"
)

// Verdict is the judgment a grader (human or LLM) passes on a subjective answer.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	VerdictPartial   Verdict = "partial"
)

// Valid reports whether v is one of the three known verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictCorrect, VerdictIncorrect, VerdictPartial:
		return true
	}
	return false
}

// EvaluationStatus tracks the lifecycle of a subjective evaluation.
type EvaluationStatus string

const (
	EvaluationPending EvaluationStatus = "pending"
	EvaluationScored  EvaluationStatus = "scored"
)

// RubricScore is one rubric entry of a feedback breakdown.
type RubricScore struct {
	Rubric           string  `json:"rubric"`
	Comments         string  `json:"comments,omitempty"`
	AchievedFraction float64 `json:"achievedFraction"`
}

// Feedback is the structured grading payload for a subjective result,
// whether typed by a human or produced by an LLM.
type Feedback struct {
	Verdict         Verdict       `json:"verdict"`
	Score           float64       `json:"score"`
	MaxScore        float64       `json:"maxScore"`
	FeedbackText    string        `json:"feedback"`
	RubricBreakdown []RubricScore `json:"rubricBreakdown"`
	Improvements    []string      `json:"improvements,omitempty"`
}

// Evaluation is the mutable sub-record of a subjective result. It is
// rewritten in place by ApplyFeedback and ResetSubjective; the rest of the
// result stays fixed after submission.
type Evaluation struct {
	Status          EvaluationStatus `json:"status"`
	AwardedScore    *float64         `json:"awardedScore,omitempty"`
	Verdict         Verdict          `json:"verdict,omitempty"`
	FeedbackText    string           `json:"feedback,omitempty"`
	Improvements    []string         `json:"improvements,omitempty"`
	RubricBreakdown []RubricScore    `json:"rubricBreakdown,omitempty"`
	EvaluatorModel  string           `json:"evaluatorModel,omitempty"`
}

// QuestionResult is the graded outcome of one question in one attempt.
//
// Exactly one of two shapes holds:
//   - deterministic: RequiresManualGrading is false, Earned and IsCorrect are
//     set at evaluation time and never change;
//   - subjective: RequiresManualGrading is true, Earned and IsCorrect are nil
//     until feedback is applied, and Evaluation is non-nil.
type QuestionResult struct {
	Question *assessment.Question `json:"-"`

	// QuestionID, QuestionText, Kind and Tags are denormalized from the
	// question so a summary decoded from storage still identifies and
	// describes its results without the assessment document.
	QuestionID   string          `json:"questionId"`
	QuestionText string          `json:"questionText,omitempty"`
	Kind         assessment.Kind `json:"kind"`
	Tags         []string        `json:"tags,omitempty"`

	Max           float64 `json:"max"`
	UserAnswer    string  `json:"userAnswer"`
	CorrectAnswer string  `json:"correctAnswer"`
	Feedback      string  `json:"feedback,omitempty"`
	Status        Status  `json:"status"`

	// SelectedOptions preserves the raw option ids the user picked on
	// single/multi questions, for review rendering.
	SelectedOptions []string `json:"selectedOptions,omitempty"`

	RequiresManualGrading bool        `json:"requiresManualGrading"`
	Earned                *float64    `json:"earned"`
	IsCorrect             *bool       `json:"isCorrect"`
	Evaluation            *Evaluation `json:"evaluation,omitempty"`
}

// Pending reports whether the result still awaits subjective grading.
func (r *QuestionResult) Pending() bool {
	return r.RequiresManualGrading && r.Status == StatusPending
}

// EarnedOrZero returns the earned score, treating ungraded as zero.
func (r *QuestionResult) EarnedOrZero() float64 {
	if r.Earned == nil {
		return 0
	}
	return *r.Earned
}

func float64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool          { return &v }
