package grading

import (
	"testing"
	"time"

	"github.com/abhisek/soloquiz/internal/assessment"
)

func testAssessment() *assessment.Assessment {
	return &assessment.Assessment{
		SchemaVersion: "1.0",
		Meta:          assessment.Meta{Title: "Mixed quiz"},
		Questions: []assessment.Question{
			{
				ID: "q1", Kind: assessment.KindSingle, Text: "Pick", Weight: 2,
				Options: []assessment.Option{
					{ID: "a", Label: "A"}, {ID: "b", Label: "B"},
				},
				CorrectOption: "a",
			},
			{
				ID: "q2", Kind: assessment.KindNumeric, Text: "Sum", Weight: 3,
				CorrectNumber: 10,
			},
			{
				ID: "q3", Kind: assessment.KindSubjective, Text: "Explain", Weight: 5,
				Rubrics: []assessment.Rubric{{Title: "depth"}},
			},
		},
	}
}

func submitTestAssessment(t *testing.T, answers map[string]Answer) *SubmissionSummary {
	t.Helper()
	a := testAssessment()
	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return EvaluateSubmission(Submission{
		Assessment:  a,
		Questions:   a.Questions,
		Answers:     answers,
		StartedAt:   started,
		CompletedAt: started.Add(95 * time.Second),
	})
}

func TestEvaluateSubmissionTotals(t *testing.T) {
	s := submitTestAssessment(t, map[string]Answer{
		"q1": TextAnswer("a"),
		"q2": TextAnswer("11"),
		"q3": TextAnswer("free text"),
	})

	if s.DeterministicEarned != 2 {
		t.Errorf("deterministicEarned = %v, want 2", s.DeterministicEarned)
	}
	if s.DeterministicMax != 5 {
		t.Errorf("deterministicMax = %v, want 5", s.DeterministicMax)
	}
	if s.DeterministicPercentage != 40 {
		t.Errorf("deterministicPercentage = %v, want 40", s.DeterministicPercentage)
	}
	if s.SubjectiveMax != 5 {
		t.Errorf("subjectiveMax = %v, want 5", s.SubjectiveMax)
	}
	if s.PendingSubjectiveMax != 5 {
		t.Errorf("pendingSubjectiveMax = %v, want 5", s.PendingSubjectiveMax)
	}
	if s.PendingSubjectiveCount != 1 {
		t.Errorf("pendingSubjectiveCount = %d, want 1", s.PendingSubjectiveCount)
	}
	if s.ElapsedSec != 95 {
		t.Errorf("elapsedSec = %d, want 95", s.ElapsedSec)
	}
	if len(s.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(s.Results))
	}
	if s.ID == "" {
		t.Error("expected a generated attempt id")
	}
}

func TestEvaluateSubmissionMissingAnswers(t *testing.T) {
	// No answers at all: every deterministic question grades incorrect.
	s := submitTestAssessment(t, nil)

	if s.DeterministicEarned != 0 {
		t.Errorf("deterministicEarned = %v, want 0", s.DeterministicEarned)
	}
	if s.DeterministicPercentage != 0 {
		t.Errorf("deterministicPercentage = %v, want 0", s.DeterministicPercentage)
	}
}

func TestPercentageZeroWhenNoDeterministicQuestions(t *testing.T) {
	a := &assessment.Assessment{
		Meta: assessment.Meta{Title: "All subjective"},
		Questions: []assessment.Question{
			{ID: "s1", Kind: assessment.KindSubjective, Weight: 4, Rubrics: []assessment.Rubric{{Title: "r"}}},
		},
	}
	s := EvaluateSubmission(Submission{
		Assessment:  a,
		Questions:   a.Questions,
		CompletedAt: time.Now(),
	})

	if s.DeterministicMax != 0 {
		t.Fatalf("deterministicMax = %v, want 0", s.DeterministicMax)
	}
	if s.DeterministicPercentage != 0 {
		t.Errorf("deterministicPercentage = %v, want 0 for empty deterministic set", s.DeterministicPercentage)
	}
}

func TestElapsedFallsBackWhenStartUnknown(t *testing.T) {
	a := testAssessment()
	completed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := EvaluateSubmission(Submission{
		Assessment:         a,
		Questions:          a.Questions,
		CompletedAt:        completed,
		ElapsedFallbackSec: 42,
	})

	if s.ElapsedSec != 42 {
		t.Errorf("elapsedSec = %d, want fallback 42", s.ElapsedSec)
	}
	if !s.StartedAt.Equal(completed) {
		t.Errorf("startedAt = %v, want completedAt", s.StartedAt)
	}
}

func TestElapsedNeverNegative(t *testing.T) {
	a := testAssessment()
	completed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := EvaluateSubmission(Submission{
		Assessment:  a,
		Questions:   a.Questions,
		StartedAt:   completed.Add(time.Minute), // clock skew
		CompletedAt: completed,
	})

	if s.ElapsedSec != 0 {
		t.Errorf("elapsedSec = %d, want clamp to 0", s.ElapsedSec)
	}
}

func TestApplyFeedbackUpdatesPendingTotals(t *testing.T) {
	s := submitTestAssessment(t, map[string]Answer{"q3": TextAnswer("an essay")})

	before := s.PendingSubjectiveMax

	err := s.ApplyFeedback("q3", Feedback{
		Verdict:  VerdictPartial,
		Score:    3,
		MaxScore: 5,
		RubricBreakdown: []RubricScore{
			{Rubric: "depth", AchievedFraction: 0.6},
		},
	})
	if err != nil {
		t.Fatalf("ApplyFeedback: %v", err)
	}

	r := s.Result("q3")
	if r.Status != StatusPartial {
		t.Errorf("status = %q, want partial", r.Status)
	}
	if r.IsCorrect != nil {
		t.Error("partial verdict must leave isCorrect nil")
	}
	if *r.Earned != 3 {
		t.Errorf("earned = %v, want 3", *r.Earned)
	}

	// Pending max shrinks by exactly the result's max.
	if got := before - s.PendingSubjectiveMax; got != r.Max {
		t.Errorf("pendingSubjectiveMax shrank by %v, want %v", got, r.Max)
	}
	if s.PendingSubjectiveCount != 0 {
		t.Errorf("pendingSubjectiveCount = %d, want 0", s.PendingSubjectiveCount)
	}

	// Deterministic totals are untouched by rescoring.
	if s.DeterministicMax != 5 || s.DeterministicEarned != 0 {
		t.Errorf("deterministic totals changed: earned=%v max=%v", s.DeterministicEarned, s.DeterministicMax)
	}

	// Reset restores the prior pending totals.
	if err := s.ResetSubjective("q3"); err != nil {
		t.Fatalf("ResetSubjective: %v", err)
	}
	if s.PendingSubjectiveMax != before {
		t.Errorf("pendingSubjectiveMax = %v, want restored %v", s.PendingSubjectiveMax, before)
	}
	if s.PendingSubjectiveCount != 1 {
		t.Errorf("pendingSubjectiveCount = %d, want 1", s.PendingSubjectiveCount)
	}
	if r.Earned != nil || r.Status != StatusPending {
		t.Error("reset must return the result to pending with nil earned")
	}
}

func TestApplyFeedbackUnknownQuestion(t *testing.T) {
	s := submitTestAssessment(t, nil)
	if err := s.ApplyFeedback("nope", Feedback{Verdict: VerdictCorrect}); err == nil {
		t.Error("expected error for unknown question id")
	}
}

func TestPendingSubjective(t *testing.T) {
	s := submitTestAssessment(t, nil)

	pending := s.PendingSubjective()
	if len(pending) != 1 || pending[0].Question.ID != "q3" {
		t.Fatalf("pending = %v", pending)
	}

	if err := s.ApplyFeedback("q3", Feedback{Verdict: VerdictCorrect, Score: 5, MaxScore: 5}); err != nil {
		t.Fatalf("ApplyFeedback: %v", err)
	}
	if got := s.PendingSubjective(); len(got) != 0 {
		t.Errorf("pending after scoring = %d, want 0", len(got))
	}
}
