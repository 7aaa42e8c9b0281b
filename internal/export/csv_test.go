package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/abhisek/soloquiz/internal/grading"
)

func exportSummary(t *testing.T) *grading.SubmissionSummary {
	t.Helper()
	a := &assessment.Assessment{
		SchemaVersion: "1.0",
		Meta:          assessment.Meta{Title: "Go Basics"},
		Questions: []assessment.Question{
			{
				ID: "q1", Kind: assessment.KindSingle, Text: "Pick one", Weight: 2,
				Tags:    []string{"basics", "syntax"},
				Options: []assessment.Option{{ID: "a", Label: "Alpha"}, {ID: "b", Label: "Beta"}},
				CorrectOption: "a",
			},
			{
				ID: "q2", Kind: assessment.KindSubjective, Text: "Explain, with \"quotes\"", Weight: 5,
				Rubrics: []assessment.Rubric{{Title: "Clarity"}},
			},
		},
	}

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return grading.EvaluateSubmission(grading.Submission{
		Assessment: a,
		Questions:  a.Questions,
		Answers: map[string]grading.Answer{
			"q1": grading.TextAnswer("a"),
			"q2": grading.TextAnswer("Because."),
		},
		StartedAt:   started,
		CompletedAt: started.Add(90 * time.Second),
	})
}

func TestCSVLayout(t *testing.T) {
	s := exportSummary(t)

	out, err := CSV("Go Basics", s)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header, two question rows, separator, summary row.
	if len(lines) != 5 {
		t.Fatalf("line count = %d, want 5:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Question #,Question ID,") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "q1") || !strings.Contains(lines[1], "Alpha") {
		t.Errorf("q1 row = %q", lines[1])
	}
	if !strings.Contains(lines[1], "basics; syntax") {
		t.Errorf("q1 row missing joined tags: %q", lines[1])
	}
	if !strings.Contains(lines[1], "auto") || !strings.Contains(lines[1], "true") {
		t.Errorf("q1 row missing grading outcome: %q", lines[1])
	}
	if !strings.Contains(lines[2], "subjective") || !strings.Contains(lines[2], "pending") {
		t.Errorf("q2 row = %q", lines[2])
	}
	// Embedded quotes must be CSV-escaped by doubling.
	if !strings.Contains(lines[2], `""quotes""`) {
		t.Errorf("q2 row quotes not escaped: %q", lines[2])
	}
	if !strings.HasPrefix(lines[4], "Summary,Go Basics,Auto Score,2 / 2,Auto Percentage,100.00%") {
		t.Errorf("summary row = %q", lines[4])
	}
	if !strings.Contains(lines[4], "Time Elapsed (s),90") {
		t.Errorf("summary row missing elapsed: %q", lines[4])
	}
}

func TestCSVAppliedFeedbackRow(t *testing.T) {
	s := exportSummary(t)
	err := s.ApplyFeedback("q2", grading.Feedback{
		Verdict:      grading.VerdictPartial,
		Score:        3,
		MaxScore:     5,
		FeedbackText: "Covers half the ground.",
	})
	if err != nil {
		t.Fatalf("apply feedback: %v", err)
	}

	out, err := CSV("Go Basics", s)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(out, "\n")
	row := lines[2]
	if !strings.Contains(row, "partial") || !strings.Contains(row, ",3,") {
		t.Errorf("graded subjective row = %q", row)
	}
	if !strings.Contains(row, "scored") || !strings.Contains(row, "Covers half the ground.") {
		t.Errorf("row missing evaluation fields: %q", row)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := exportSummary(t)

	out, err := JSON("Go Basics", s)
	if err != nil {
		t.Fatalf("json: %v", err)
	}

	var doc struct {
		Title   string                     `json:"title"`
		Summary *grading.SubmissionSummary `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Title != "Go Basics" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Summary.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(doc.Summary.Results))
	}
	// Question identity survives the round trip without the document.
	if doc.Summary.Results[1].QuestionID != "q2" || doc.Summary.Results[1].Kind != assessment.KindSubjective {
		t.Errorf("round-tripped result = %+v", doc.Summary.Results[1])
	}
	if doc.Summary.Result("q2") == nil {
		t.Error("Result lookup failed on decoded summary")
	}
}
