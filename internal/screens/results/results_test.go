package results

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/abhisek/soloquiz/internal/grading"
	"github.com/abhisek/soloquiz/internal/llm"
	"github.com/abhisek/soloquiz/internal/router"
	"github.com/abhisek/soloquiz/internal/screen"
	"github.com/abhisek/soloquiz/internal/store"
	"github.com/abhisek/soloquiz/internal/subjective"
)

// captureEvents records grading events; the embedded interface stays nil,
// only AppendGrading is expected to be called.
type captureEvents struct {
	store.EventRepo
	grading []store.GradingEventData
	err     error
}

func (c *captureEvents) AppendGrading(_ context.Context, data store.GradingEventData) error {
	c.grading = append(c.grading, data)
	return c.err
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testAssessment() *assessment.Assessment {
	return &assessment.Assessment{
		SchemaVersion: "1",
		Meta:          assessment.Meta{Title: "Go Basics"},
		Questions: []assessment.Question{
			{
				ID: "q1", Kind: assessment.KindSingle, Weight: 1,
				Text: "Which keyword declares a variable?",
				Options: []assessment.Option{
					{ID: "a", Label: "let"},
					{ID: "b", Label: "var"},
				},
				CorrectOption: "b",
			},
			{
				ID: "q2", Kind: assessment.KindSubjective, Weight: 5,
				Text: "Explain Go's concurrency model.",
				Rubrics: []assessment.Rubric{
					{Title: "Accuracy"},
					{Title: "Completeness"},
				},
			},
		},
	}
}

func testSummary(a *assessment.Assessment) *grading.SubmissionSummary {
	now := time.Now()
	return grading.EvaluateSubmission(grading.Submission{
		Assessment: a,
		Questions:  a.Questions,
		Answers: map[string]grading.Answer{
			"q1": grading.TextAnswer("b"),
			"q2": grading.TextAnswer("Goroutines run concurrently."),
		},
		StartedAt:   now.Add(-time.Minute),
		CompletedAt: now,
	})
}

func gradedFeedbackJSON() json.RawMessage {
	return json.RawMessage(`{
		"verdict": "partial",
		"score": 3,
		"maxScore": 5,
		"feedback": "Covers goroutines but not channels.",
		"rubricBreakdown": [
			{"rubric": "Accuracy", "comments": "Correct as far as it goes.", "achievedFraction": 1},
			{"rubric": "Completeness", "comments": "Channels missing.", "achievedFraction": 0.2}
		],
		"improvements": ["Mention channels."]
	}`)
}

func testResultsScreen(grader *subjective.Service) *ResultsScreen {
	a := testAssessment()
	return New(a, testSummary(a), nil, nil, grader)
}

func TestResultsScreen_NavigationAndDetail(t *testing.T) {
	s := testResultsScreen(nil)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('j'))
	rs := scr.(*ResultsScreen)
	if rs.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", rs.cursor)
	}

	scr, _ = rs.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	rs = scr.(*ResultsScreen)
	if !rs.detail {
		t.Fatal("expected detail view after enter")
	}

	scr, _ = rs.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	rs = scr.(*ResultsScreen)
	if rs.detail {
		t.Error("expected overview after esc")
	}
}

func TestResultsScreen_EscPopsFromOverview(t *testing.T) {
	s := testResultsScreen(nil)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("navigation msg = %T, want router.PopScreenMsg", cmd())
	}
}

func TestResultsScreen_GradeWithoutProvider(t *testing.T) {
	s := testResultsScreen(nil)

	scr, cmd := s.Update(keyPress('g'))
	rs := scr.(*ResultsScreen)
	if cmd != nil {
		t.Error("expected no command without a provider")
	}
	if rs.statusMsg == "" {
		t.Error("expected a status message explaining the missing provider")
	}
}

func TestResultsScreen_GradeFlow(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: gradedFeedbackJSON()})
	grader := subjective.NewService(mock, subjective.DefaultConfig())
	s := testResultsScreen(grader)

	if s.summary.PendingSubjectiveCount != 1 {
		t.Fatalf("pending = %d before grading, want 1", s.summary.PendingSubjectiveCount)
	}

	scr, cmd := s.Update(keyPress('g'))
	rs := scr.(*ResultsScreen)
	if rs.gradingID != "q2" {
		t.Fatalf("gradingID = %q, want q2", rs.gradingID)
	}
	if cmd == nil {
		t.Fatal("expected a poll command")
	}

	// Poll until the async grade lands.
	var applyCmd tea.Cmd
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		scr, applyCmd = rs.Update(gradePollMsg(time.Now()))
		rs = scr.(*ResultsScreen)
		if rs.summary.PendingSubjectiveCount == 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if rs.summary.PendingSubjectiveCount != 0 {
		t.Fatal("grade never applied")
	}

	r := rs.summary.Result("q2")
	if r == nil || r.Evaluation == nil {
		t.Fatal("expected an evaluation on the subjective result")
	}
	if r.Evaluation.EvaluatorModel != "mock" {
		t.Errorf("evaluator model = %q, want \"mock\"", r.Evaluation.EvaluatorModel)
	}
	if r.EarnedOrZero() != 3 {
		t.Errorf("earned = %v, want 3", r.EarnedOrZero())
	}

	// The persistence command reports completion and clears the in-flight
	// marker.
	if applyCmd == nil {
		t.Fatal("expected a persistence command")
	}
	msg, ok := applyCmd().(gradeAppliedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want gradeAppliedMsg", applyCmd())
	}
	scr, _ = rs.Update(msg)
	rs = scr.(*ResultsScreen)
	if rs.gradingID != "" {
		t.Error("expected in-flight marker cleared")
	}
}

func TestResultsScreen_ResetGrade(t *testing.T) {
	s := testResultsScreen(nil)

	fb := grading.Feedback{
		Verdict:      grading.VerdictPartial,
		Score:        3,
		MaxScore:     5,
		FeedbackText: "Partially correct.",
	}
	if err := s.summary.ApplyFeedback("q2", fb); err != nil {
		t.Fatalf("apply feedback: %v", err)
	}

	s.cursor = 1
	s.detail = true
	scr, cmd := s.Update(keyPress('r'))
	rs := scr.(*ResultsScreen)

	if rs.summary.PendingSubjectiveCount != 1 {
		t.Errorf("pending = %d after reset, want 1", rs.summary.PendingSubjectiveCount)
	}
	if cmd == nil {
		t.Error("expected a persistence command after reset")
	}
}

func TestResultsScreen_ResetRecordsUserEvent(t *testing.T) {
	a := testAssessment()
	events := &captureEvents{}
	s := New(a, testSummary(a), nil, events, nil)

	fb := grading.Feedback{Verdict: grading.VerdictPartial, Score: 3, MaxScore: 5}
	if err := s.summary.ApplyFeedback("q2", fb); err != nil {
		t.Fatalf("apply feedback: %v", err)
	}

	s.cursor = 1
	s.detail = true
	_, cmd := s.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected a persistence command after reset")
	}
	msg, ok := cmd().(gradeAppliedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want gradeAppliedMsg", cmd())
	}
	if msg.Err != nil || msg.Warn != "" {
		t.Fatalf("unexpected Err=%v Warn=%q", msg.Err, msg.Warn)
	}

	if len(events.grading) != 1 {
		t.Fatalf("recorded %d grading events, want 1", len(events.grading))
	}
	ev := events.grading[0]
	if ev.Action != "reset" || ev.Source != "user" || ev.QuestionID != "q2" {
		t.Errorf("event = %+v, want a reset of q2 from source \"user\"", ev)
	}
}

func TestResultsScreen_GradingEventFailureWarns(t *testing.T) {
	a := testAssessment()
	events := &captureEvents{err: errors.New("database is closed")}
	s := New(a, testSummary(a), nil, events, nil)

	fb := grading.Feedback{Verdict: grading.VerdictPartial, Score: 3, MaxScore: 5}
	if err := s.summary.ApplyFeedback("q2", fb); err != nil {
		t.Fatalf("apply feedback: %v", err)
	}

	s.cursor = 1
	s.detail = true
	scr, cmd := s.Update(keyPress('r'))
	rs := scr.(*ResultsScreen)
	if cmd == nil {
		t.Fatal("expected a persistence command after reset")
	}
	msg, ok := cmd().(gradeAppliedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want gradeAppliedMsg", cmd())
	}
	if msg.Warn == "" {
		t.Fatal("expected a warning when the grading event cannot be recorded")
	}

	scr, _ = rs.Update(msg)
	rs = scr.(*ResultsScreen)
	if rs.statusMsg != msg.Warn {
		t.Errorf("statusMsg = %q, want the append warning surfaced", rs.statusMsg)
	}
}

func TestResultsScreen_ExportedMsg(t *testing.T) {
	s := testResultsScreen(nil)

	scr, _ := s.Update(exportedMsg{Path: "soloquiz-attempt-abc123.csv"})
	rs := scr.(*ResultsScreen)
	if rs.statusMsg != "Exported to soloquiz-attempt-abc123.csv" {
		t.Errorf("statusMsg = %q", rs.statusMsg)
	}
}

func TestExportFileName(t *testing.T) {
	got := exportFileName("0123456789abcdef", "csv")
	if got != "soloquiz-attempt-01234567.csv" {
		t.Errorf("exportFileName = %q", got)
	}
	if got := exportFileName("ab", "json"); got != "soloquiz-attempt-ab.json" {
		t.Errorf("exportFileName = %q", got)
	}
}
