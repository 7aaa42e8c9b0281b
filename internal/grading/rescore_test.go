package grading

import (
	"testing"

	"github.com/abhisek/soloquiz/internal/assessment"
)

func subjectiveResult(t *testing.T) *QuestionResult {
	t.Helper()
	q := &assessment.Question{
		ID:     "subj-1",
		Kind:   assessment.KindSubjective,
		Text:   "Explain",
		Weight: 4,
		Rubrics: []assessment.Rubric{
			{Title: "accuracy"},
			{Title: "clarity"},
		},
	}
	return Evaluate(q, TextAnswer("student response"))
}

func TestApplyFeedbackVerdicts(t *testing.T) {
	tests := []struct {
		verdict     Verdict
		wantStatus  Status
		wantCorrect *bool
	}{
		{VerdictCorrect, StatusCorrect, boolPtr(true)},
		{VerdictIncorrect, StatusIncorrect, boolPtr(false)},
		{VerdictPartial, StatusPartial, nil},
	}

	for _, tc := range tests {
		t.Run(string(tc.verdict), func(t *testing.T) {
			r := subjectiveResult(t)
			err := ApplyFeedback(r, Feedback{Verdict: tc.verdict, Score: 2, MaxScore: 4})
			if err != nil {
				t.Fatalf("ApplyFeedback: %v", err)
			}
			if r.Status != tc.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tc.wantStatus)
			}
			switch {
			case tc.wantCorrect == nil:
				if r.IsCorrect != nil {
					t.Errorf("isCorrect = %v, want nil", *r.IsCorrect)
				}
			case r.IsCorrect == nil:
				t.Error("isCorrect = nil, want set")
			case *r.IsCorrect != *tc.wantCorrect:
				t.Errorf("isCorrect = %v, want %v", *r.IsCorrect, *tc.wantCorrect)
			}
			if r.Evaluation.Status != EvaluationScored {
				t.Errorf("evaluation status = %q, want scored", r.Evaluation.Status)
			}
		})
	}
}

func TestApplyFeedbackClampsScore(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{10, 4}, // above max
		{-1, 0}, // negative is rejected before clamping, covered below
		{2.5, 2.5},
	}

	for _, tc := range tests {
		r := subjectiveResult(t)
		err := ApplyFeedback(r, Feedback{Verdict: VerdictPartial, Score: tc.score, MaxScore: 4})
		if tc.score < 0 {
			if err == nil {
				t.Error("expected rejection of negative score")
			}
			continue
		}
		if err != nil {
			t.Fatalf("ApplyFeedback(score=%v): %v", tc.score, err)
		}
		if *r.Earned != tc.want {
			t.Errorf("earned = %v, want clamped %v", *r.Earned, tc.want)
		}
	}
}

func TestApplyFeedbackStoresPayload(t *testing.T) {
	r := subjectiveResult(t)
	fb := Feedback{
		Verdict:      VerdictCorrect,
		Score:        4,
		MaxScore:     4,
		FeedbackText: "well reasoned",
		Improvements: []string{"cite a source"},
		RubricBreakdown: []RubricScore{
			{Rubric: "accuracy", Comments: "all facts check out", AchievedFraction: 1},
			{Rubric: "clarity", AchievedFraction: 0.75},
		},
	}

	if err := ApplyFeedback(r, fb); err != nil {
		t.Fatalf("ApplyFeedback: %v", err)
	}

	ev := r.Evaluation
	if ev.FeedbackText != "well reasoned" {
		t.Errorf("feedbackText = %q", ev.FeedbackText)
	}
	if len(ev.Improvements) != 1 || ev.Improvements[0] != "cite a source" {
		t.Errorf("improvements = %v", ev.Improvements)
	}
	if len(ev.RubricBreakdown) != 2 {
		t.Fatalf("rubricBreakdown = %v", ev.RubricBreakdown)
	}
	if ev.AwardedScore == nil || *ev.AwardedScore != 4 {
		t.Errorf("awardedScore = %v", ev.AwardedScore)
	}
}

func TestApplyFeedbackRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		fb   Feedback
	}{
		{"unknown verdict", Feedback{Verdict: "maybe", Score: 1, MaxScore: 4}},
		{"negative score", Feedback{Verdict: VerdictPartial, Score: -1, MaxScore: 4}},
		{"fraction above one", Feedback{
			Verdict: VerdictPartial, Score: 1, MaxScore: 4,
			RubricBreakdown: []RubricScore{{Rubric: "accuracy", AchievedFraction: 1.5}},
		}},
		{"fraction below zero", Feedback{
			Verdict: VerdictPartial, Score: 1, MaxScore: 4,
			RubricBreakdown: []RubricScore{{Rubric: "accuracy", AchievedFraction: -0.1}},
		}},
		{"unknown rubric title", Feedback{
			Verdict: VerdictPartial, Score: 1, MaxScore: 4,
			RubricBreakdown: []RubricScore{{Rubric: "vibes", AchievedFraction: 0.5}},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := subjectiveResult(t)
			err := ApplyFeedback(r, tc.fb)
			if err == nil {
				t.Fatal("expected rejection")
			}

			// Rejection must not leave any partial mutation behind.
			if r.Status != StatusPending {
				t.Errorf("status = %q, want untouched pending", r.Status)
			}
			if r.Earned != nil {
				t.Errorf("earned = %v, want nil", *r.Earned)
			}
			if r.Evaluation.Status != EvaluationPending {
				t.Errorf("evaluation status = %q, want pending", r.Evaluation.Status)
			}
		})
	}
}

func TestApplyFeedbackRejectsDeterministicResult(t *testing.T) {
	r := Evaluate(singleQuestion(), TextAnswer("a"))
	if err := ApplyFeedback(r, Feedback{Verdict: VerdictCorrect}); err == nil {
		t.Error("expected rejection for deterministic result")
	}
	if err := ResetSubjective(r); err == nil {
		t.Error("expected rejection for deterministic result")
	}
}
