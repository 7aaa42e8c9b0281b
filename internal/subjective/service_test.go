package subjective

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/abhisek/soloquiz/internal/llm"
)

func validFeedbackJSON() json.RawMessage {
	return json.RawMessage(`{
		"verdict": "partial",
		"score": 3,
		"maxScore": 5,
		"feedback": "The response covers goroutines but never mentions channels.",
		"rubricBreakdown": [
			{"rubric": "Accuracy", "comments": "Goroutine description is correct.", "achievedFraction": 1},
			{"rubric": "Completeness", "comments": "Channels are missing.", "achievedFraction": 0.2}
		],
		"improvements": ["Explain how channels synchronize goroutines."]
	}`)
}

func testQuestion() *assessment.Question {
	return &assessment.Question{
		ID:     "q6",
		Kind:   assessment.KindSubjective,
		Text:   "Explain Go's concurrency model.",
		Weight: 5,
		Rubrics: []assessment.Rubric{
			{Title: "Accuracy", Description: "Statements are technically correct"},
			{Title: "Completeness", Description: "Covers goroutines and channels"},
		},
		LlmGrading: &assessment.LlmGrading{
			ReferenceAnswer: "Goroutines are lightweight threads; channels pass values between them.",
		},
	}
}

func testInput() GradingInput {
	return GradingInput{
		AssessmentTitle: "Go Basics",
		QuestionNumber:  6,
		TotalQuestions:  6,
		Question:        testQuestion(),
		UserAnswer:      "Goroutines run concurrently.",
	}
}

func TestService_Grade(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validFeedbackJSON()})
	svc := NewService(mock, DefaultConfig())

	fb, err := svc.Grade(t.Context(), testInput())
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if fb.Verdict != "partial" || fb.Score != 3 || fb.MaxScore != 5 {
		t.Errorf("feedback = %+v", fb)
	}
	if len(fb.RubricBreakdown) != 2 {
		t.Errorf("breakdown entries = %d, want 2", len(fb.RubricBreakdown))
	}

	if mock.CallCount() != 1 {
		t.Fatalf("call count = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != FeedbackSchema {
		t.Error("expected the grading feedback schema on the request")
	}
	prompt := req.Messages[0].Content
	for _, want := range []string{"Go Basics", "Question 6 of 6", "Maximum score: 5", "Accuracy", "Completeness", "Reference answer:", "Goroutines run concurrently."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestService_GradeEmptyAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validFeedbackJSON()})
	svc := NewService(mock, DefaultConfig())

	input := testInput()
	input.UserAnswer = "   "
	if _, err := svc.Grade(t.Context(), input); err != nil {
		t.Fatalf("grade: %v", err)
	}

	if !strings.Contains(mock.Calls[0].Messages[0].Content, "(no response provided)") {
		t.Error("empty answer not marked in prompt")
	}
}

func TestService_GradeBadResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not JSON", `grading went fine`},
		{"unknown verdict", `{"verdict": "great", "score": 1, "maxScore": 5, "feedback": "", "rubricBreakdown": [], "improvements": []}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tc.content)})
			svc := NewService(mock, DefaultConfig())
			if _, err := svc.Grade(t.Context(), testInput()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestService_AsyncRequestConsume(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validFeedbackJSON()})
	svc := NewService(mock, DefaultConfig())

	svc.RequestGrade(t.Context(), testInput())

	var res *GradedResult
	var ok bool
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		res, ok = svc.ConsumeGrade()
		if ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !ok {
		t.Fatal("no result within deadline")
	}
	if res.Err != nil {
		t.Fatalf("result error: %v", res.Err)
	}
	if res.QuestionID != "q6" || res.Feedback == nil {
		t.Errorf("result = %+v", res)
	}

	// Consumed results are cleared.
	if _, ok := svc.ConsumeGrade(); ok {
		t.Error("expected empty pending slot after consume")
	}
}
