package grading

import (
	"testing"

	"github.com/abhisek/soloquiz/internal/assessment"
)

func singleQuestion() *assessment.Question {
	return &assessment.Question{
		ID:     "single-1",
		Kind:   assessment.KindSingle,
		Text:   "Pick one",
		Weight: 2,
		Options: []assessment.Option{
			{ID: "a", Label: "Alpha"},
			{ID: "b", Label: "Beta"},
		},
		CorrectOption: "a",
		Feedback:      &assessment.Feedback{Correct: "nice", Incorrect: "nope"},
	}
}

func multiQuestion() *assessment.Question {
	return &assessment.Question{
		ID:     "multi-1",
		Kind:   assessment.KindMulti,
		Text:   "Pick two",
		Weight: 2,
		Options: []assessment.Option{
			{ID: "red", Label: "Red"},
			{ID: "blue", Label: "Blue"},
			{ID: "green", Label: "Green"},
		},
		CorrectOptions: []string{"blue", "red"},
	}
}

func TestEvaluateSingle(t *testing.T) {
	q := singleQuestion()

	tests := []struct {
		name   string
		answer Answer
		want   bool
	}{
		{"correct id", TextAnswer("a"), true},
		{"wrong id", TextAnswer("b"), false},
		{"unknown id", TextAnswer("zz"), false},
		{"unanswered", Answer{}, false},
		{"wrong shape", ListAnswer("a"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Evaluate(q, tc.answer)
			if *r.IsCorrect != tc.want {
				t.Errorf("isCorrect = %v, want %v", *r.IsCorrect, tc.want)
			}
			wantEarned := 0.0
			if tc.want {
				wantEarned = 2
			}
			if *r.Earned != wantEarned {
				t.Errorf("earned = %v, want %v", *r.Earned, wantEarned)
			}
		})
	}
}

func TestEvaluateSingleRendersLabels(t *testing.T) {
	r := Evaluate(singleQuestion(), TextAnswer("a"))
	if r.UserAnswer != "Alpha" {
		t.Errorf("userAnswer = %q, want %q", r.UserAnswer, "Alpha")
	}
	if r.CorrectAnswer != "Alpha" {
		t.Errorf("correctAnswer = %q, want %q", r.CorrectAnswer, "Alpha")
	}

	// Missing labels fall back to the raw id.
	q := singleQuestion()
	q.CorrectOption = "ghost"
	r = Evaluate(q, TextAnswer("ghost"))
	if r.CorrectAnswer != "ghost" {
		t.Errorf("correctAnswer = %q, want raw id fallback", r.CorrectAnswer)
	}
}

func TestEvaluateMulti(t *testing.T) {
	q := multiQuestion()

	tests := []struct {
		name   string
		answer Answer
		want   bool
	}{
		{"exact order", ListAnswer("blue", "red"), true},
		{"reversed order", ListAnswer("red", "blue"), true},
		{"duplicates collapse", ListAnswer("red", "blue", "red"), true},
		{"missing one", ListAnswer("red"), false},
		{"extra one", ListAnswer("red", "blue", "green"), false},
		{"empty", Answer{}, false},
		{"wrong shape", TextAnswer("red"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Evaluate(q, tc.answer)
			if *r.IsCorrect != tc.want {
				t.Errorf("isCorrect = %v, want %v", *r.IsCorrect, tc.want)
			}
		})
	}
}

func TestEvaluateMultiKeepsSelectionOrder(t *testing.T) {
	r := Evaluate(multiQuestion(), ListAnswer("red", "blue"))
	if r.UserAnswer != "Red, Blue" {
		t.Errorf("userAnswer = %q, want %q", r.UserAnswer, "Red, Blue")
	}
	if len(r.SelectedOptions) != 2 || r.SelectedOptions[0] != "red" {
		t.Errorf("selectedOptions = %v", r.SelectedOptions)
	}
}

func TestEvaluateFitb(t *testing.T) {
	q := &assessment.Question{
		ID:     "fitb-1",
		Kind:   assessment.KindFitb,
		Text:   "Spell",
		Weight: 1,
		Accept: []assessment.AcceptEntry{
			{Literal: "Answer"},
			{Pattern: "ans.*", Flags: "i"},
		},
		Normalize: assessment.NormalizeLower,
	}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"literal normalized", "answer  ", true},
		{"literal mixed case", "ANSWER", true},
		{"regex match", "ansatz", true},
		{"no match", "question", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Evaluate(q, TextAnswer(tc.input))
			if *r.IsCorrect != tc.want {
				t.Errorf("Evaluate(%q) correct = %v, want %v", tc.input, *r.IsCorrect, tc.want)
			}
		})
	}

	r := Evaluate(q, TextAnswer("answer  "))
	if r.UserAnswer != "answer" {
		t.Errorf("userAnswer = %q, want normalized %q", r.UserAnswer, "answer")
	}
	if r.CorrectAnswer != "Answer, /ans.*/i" {
		t.Errorf("correctAnswer = %q", r.CorrectAnswer)
	}
}

func TestEvaluateFitbInvalidRegexIsSkipped(t *testing.T) {
	q := &assessment.Question{
		ID:     "fitb-2",
		Kind:   assessment.KindFitb,
		Weight: 1,
		Accept: []assessment.AcceptEntry{
			{Pattern: "([unclosed"},
			{Literal: "ok"},
		},
		Normalize: assessment.NormalizeTrim,
	}

	// The broken entry must not abort the later literal entry.
	r := Evaluate(q, TextAnswer("ok"))
	if !*r.IsCorrect {
		t.Error("expected literal entry to still match after invalid regex")
	}

	r = Evaluate(q, TextAnswer("([unclosed"))
	if *r.IsCorrect {
		t.Error("invalid pattern must be treated as non-matching")
	}
}

func TestEvaluateFitbNormalizeModes(t *testing.T) {
	tests := []struct {
		mode  assessment.NormalizeMode
		input string
		want  bool
	}{
		{assessment.NormalizeTrim, "  Answer ", true},
		{assessment.NormalizeTrim, "answer", false},
		{assessment.NormalizeLower, "  ANSWER ", true},
		{assessment.NormalizeNone, "Answer", true},
		{assessment.NormalizeNone, " Answer", false},
	}

	for _, tc := range tests {
		q := &assessment.Question{
			Kind:      assessment.KindFitb,
			Weight:    1,
			Accept:    []assessment.AcceptEntry{{Literal: "Answer"}},
			Normalize: tc.mode,
		}
		r := Evaluate(q, TextAnswer(tc.input))
		if *r.IsCorrect != tc.want {
			t.Errorf("mode %s input %q: correct = %v, want %v", tc.mode, tc.input, *r.IsCorrect, tc.want)
		}
	}
}

func TestEvaluateNumeric(t *testing.T) {
	q := &assessment.Question{
		ID:            "num-1",
		Kind:          assessment.KindNumeric,
		Weight:        1,
		CorrectNumber: 3.14,
		Tolerance:     0.01,
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"3.14", true},
		{"3.145", true}, // |3.145-3.14| = 0.005 <= 0.01
		{"3.15", true},  // boundary: exactly tolerance
		{"3.16", false},
		{" 3.14 ", true},
		{"abc", false},
		{"", false},
	}

	for _, tc := range tests {
		r := Evaluate(q, TextAnswer(tc.input))
		if *r.IsCorrect != tc.want {
			t.Errorf("Evaluate(%q) correct = %v, want %v", tc.input, *r.IsCorrect, tc.want)
		}
	}

	if r := Evaluate(q, TextAnswer("3.14")); r.CorrectAnswer != "3.14 ± 0.01" {
		t.Errorf("correctAnswer = %q, want tolerance rendering", r.CorrectAnswer)
	}

	q.Tolerance = 0
	if r := Evaluate(q, TextAnswer("3.14")); r.CorrectAnswer != "3.14" {
		t.Errorf("correctAnswer = %q, want bare value", r.CorrectAnswer)
	}
}

func TestEvaluateOrdering(t *testing.T) {
	q := &assessment.Question{
		ID:           "ord-1",
		Kind:         assessment.KindOrdering,
		Weight:       1,
		Items:        []string{"a", "b", "c"},
		CorrectOrder: []string{"b", "a", "c"},
	}

	tests := []struct {
		name   string
		answer Answer
		want   bool
	}{
		{"correct order", ListAnswer("b", "a", "c"), true},
		{"wrong order", ListAnswer("a", "b", "c"), false},
		{"short", ListAnswer("b", "a"), false},
		{"empty", Answer{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Evaluate(q, tc.answer)
			if *r.IsCorrect != tc.want {
				t.Errorf("isCorrect = %v, want %v", *r.IsCorrect, tc.want)
			}
		})
	}

	// Unanswered ordering falls back to showing the unordered items.
	r := Evaluate(q, Answer{})
	if r.UserAnswer != "a → b → c" {
		t.Errorf("userAnswer = %q, want item placeholder", r.UserAnswer)
	}
	if r.CorrectAnswer != "b → a → c" {
		t.Errorf("correctAnswer = %q", r.CorrectAnswer)
	}
}

func TestEvaluateSubjective(t *testing.T) {
	q := &assessment.Question{
		ID:      "subj-1",
		Kind:    assessment.KindSubjective,
		Text:    "Explain",
		Weight:  5,
		Rubrics: []assessment.Rubric{{Title: "clarity"}},
		LlmGrading: &assessment.LlmGrading{
			ReferenceAnswer: "a model answer",
		},
	}

	r := Evaluate(q, TextAnswer("my thoughts"))
	if r.Status != StatusPending {
		t.Errorf("status = %q, want pending", r.Status)
	}
	if !r.RequiresManualGrading {
		t.Error("expected requiresManualGrading")
	}
	if r.Earned != nil || r.IsCorrect != nil {
		t.Error("earned and isCorrect must be nil until scored")
	}
	if r.Max != 5 {
		t.Errorf("max = %v, want 5", r.Max)
	}
	if r.UserAnswer != "my thoughts" {
		t.Errorf("userAnswer = %q", r.UserAnswer)
	}
	if r.CorrectAnswer != "a model answer" {
		t.Errorf("correctAnswer = %q, want reference answer", r.CorrectAnswer)
	}
	if r.Evaluation == nil || r.Evaluation.Status != EvaluationPending {
		t.Error("expected pending evaluation record")
	}
}

func TestEarnedNeverExceedsMax(t *testing.T) {
	questions := []*assessment.Question{
		singleQuestion(),
		multiQuestion(),
		{Kind: assessment.KindNumeric, Weight: 3, CorrectNumber: 7},
		{Kind: assessment.KindOrdering, Weight: 0.5, Items: []string{"x", "y"}, CorrectOrder: []string{"y", "x"}},
	}
	answers := []Answer{
		TextAnswer("a"), ListAnswer("red", "blue"), TextAnswer("7"), ListAnswer("y", "x"),
	}

	for i, q := range questions {
		r := Evaluate(q, answers[i])
		if r.Earned == nil {
			t.Fatalf("question %d: nil earned", i)
		}
		if *r.Earned < 0 || *r.Earned > r.Max {
			t.Errorf("question %d: earned %v outside [0, %v]", i, *r.Earned, r.Max)
		}
	}
}

func TestOutcomeFeedback(t *testing.T) {
	q := singleQuestion()

	if r := Evaluate(q, TextAnswer("a")); r.Feedback != "nice" {
		t.Errorf("feedback = %q, want correct message", r.Feedback)
	}
	if r := Evaluate(q, TextAnswer("b")); r.Feedback != "nope" {
		t.Errorf("feedback = %q, want incorrect message", r.Feedback)
	}
}
