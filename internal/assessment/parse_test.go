package assessment

import (
	"strings"
	"testing"
)

const validDocument = `{
	"schemaVersion": "1.0",
	"meta": {"title": "Go Basics", "timeLimitSec": 600},
	"questions": [
		{
			"id": "q1", "type": "single", "text": "Pick one",
			"options": [{"id": "a", "label": "A"}, {"id": "b", "label": "B"}],
			"correct": "a"
		},
		{
			"id": "q2", "type": "multi", "text": "Pick some", "weight": 2,
			"options": [{"id": "a", "label": "A"}, {"id": "b", "label": "B"}, {"id": "c", "label": "C"}],
			"correct": ["a", "c"]
		},
		{
			"id": "q3", "type": "fitb", "text": "Fill in",
			"accept": ["answer", {"pattern": "ans.*", "flags": "i"}]
		},
		{
			"id": "q4", "type": "numeric", "text": "How much",
			"correct": 3.14, "tolerance": 0.01
		},
		{
			"id": "q5", "type": "ordering", "text": "Sort these",
			"items": ["x", "y", "z"], "correctOrder": ["z", "y", "x"]
		},
		{
			"id": "q6", "type": "subjective", "text": "Explain", "weight": 5,
			"rubrics": [{"title": "Clarity", "description": "Is it clear"}],
			"llmGrading": {"referenceAnswer": "Because."}
		}
	]
}`

func TestParseValidDocument(t *testing.T) {
	a, issues := Parse([]byte(validDocument))
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if a.Meta.Title != "Go Basics" {
		t.Errorf("title = %q, want %q", a.Meta.Title, "Go Basics")
	}
	if a.Meta.TimeLimitSec != 600 {
		t.Errorf("timeLimitSec = %d, want 600", a.Meta.TimeLimitSec)
	}
	if len(a.Questions) != 6 {
		t.Fatalf("question count = %d, want 6", len(a.Questions))
	}

	q1 := a.Question("q1")
	if q1 == nil || q1.Kind != KindSingle || q1.CorrectOption != "a" {
		t.Errorf("q1 = %+v, want single with correct a", q1)
	}
	if q1.Weight != 1 {
		t.Errorf("q1 weight = %v, want default 1", q1.Weight)
	}

	q2 := a.Question("q2")
	if q2.Weight != 2 {
		t.Errorf("q2 weight = %v, want 2", q2.Weight)
	}
	if len(q2.CorrectOptions) != 2 || q2.CorrectOptions[0] != "a" || q2.CorrectOptions[1] != "c" {
		t.Errorf("q2 correct = %v, want [a c]", q2.CorrectOptions)
	}

	q3 := a.Question("q3")
	if q3.Normalize != NormalizeTrim {
		t.Errorf("q3 normalize = %q, want default trim", q3.Normalize)
	}
	if len(q3.Accept) != 2 {
		t.Fatalf("q3 accept = %v, want 2 entries", q3.Accept)
	}
	if q3.Accept[0].IsPattern() || q3.Accept[0].Literal != "answer" {
		t.Errorf("q3 accept[0] = %+v, want literal answer", q3.Accept[0])
	}
	if !q3.Accept[1].IsPattern() || q3.Accept[1].Pattern != "ans.*" || q3.Accept[1].Flags != "i" {
		t.Errorf("q3 accept[1] = %+v, want pattern ans.* with flag i", q3.Accept[1])
	}

	q4 := a.Question("q4")
	if q4.CorrectNumber != 3.14 || q4.Tolerance != 0.01 {
		t.Errorf("q4 = correct %v tolerance %v, want 3.14 / 0.01", q4.CorrectNumber, q4.Tolerance)
	}

	q5 := a.Question("q5")
	if len(q5.CorrectOrder) != 3 || q5.CorrectOrder[0] != "z" {
		t.Errorf("q5 correctOrder = %v", q5.CorrectOrder)
	}

	q6 := a.Question("q6")
	if len(q6.Rubrics) != 1 || q6.Rubrics[0].Title != "Clarity" {
		t.Errorf("q6 rubrics = %v", q6.Rubrics)
	}
	if q6.LlmGrading == nil || q6.LlmGrading.ReferenceAnswer != "Because." {
		t.Errorf("q6 llmGrading = %+v", q6.LlmGrading)
	}
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid JSON", `{"schemaVersion": `},
		{"missing meta", `{"schemaVersion": "1.0", "questions": []}`},
		{"empty title", `{"schemaVersion": "1.0", "meta": {"title": ""}, "questions": []}`},
		{"wrong schema version", `{"schemaVersion": "2.0", "meta": {"title": "T"}, "questions": []}`},
		{"zero time limit", `{"schemaVersion": "1.0", "meta": {"title": "T", "timeLimitSec": 0}, "questions": []}`},
		{"unknown question type", `{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
			{"id": "q1", "type": "essay", "text": "x"}]}`},
		{"single with one option", `{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
			{"id": "q1", "type": "single", "text": "x", "options": [{"id": "a", "label": "A"}], "correct": "a"}]}`},
		{"fitb without accept", `{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
			{"id": "q1", "type": "fitb", "text": "x"}]}`},
		{"subjective without rubrics", `{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
			{"id": "q1", "type": "subjective", "text": "x"}]}`},
		{"negative weight", `{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
			{"id": "q1", "type": "numeric", "text": "x", "correct": 1, "weight": -1}]}`},
		{"negative tolerance", `{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
			{"id": "q1", "type": "numeric", "text": "x", "correct": 1, "tolerance": -0.5}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, issues := Parse([]byte(tc.doc))
			if a != nil {
				t.Fatalf("expected nil assessment, got %+v", a)
			}
			if len(issues) == 0 {
				t.Fatal("expected issues, got none")
			}
		})
	}
}

func TestParseSemanticIssues(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
		wantMsg  string
	}{
		{
			"duplicate question id",
			`{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
				{"id": "q1", "type": "numeric", "text": "x", "correct": 1},
				{"id": "q1", "type": "numeric", "text": "y", "correct": 2}]}`,
			"/questions/1/id", "duplicate question id",
		},
		{
			"duplicate option id",
			`{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
				{"id": "q1", "type": "single", "text": "x",
				 "options": [{"id": "a", "label": "A"}, {"id": "a", "label": "B"}], "correct": "a"}]}`,
			"/questions/0/options/1/id", "duplicate option id",
		},
		{
			"correct references unknown option",
			`{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
				{"id": "q1", "type": "single", "text": "x",
				 "options": [{"id": "a", "label": "A"}, {"id": "b", "label": "B"}], "correct": "z"}]}`,
			"/questions/0/correct", "not an option id",
		},
		{
			"duplicate correct option",
			`{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
				{"id": "q1", "type": "multi", "text": "x",
				 "options": [{"id": "a", "label": "A"}, {"id": "b", "label": "B"}], "correct": ["a", "a"]}]}`,
			"/questions/0/correct", "duplicate correct option",
		},
		{
			"correctOrder not a permutation",
			`{"schemaVersion": "1.0", "meta": {"title": "T"}, "questions": [
				{"id": "q1", "type": "ordering", "text": "x",
				 "items": ["a", "b", "c"], "correctOrder": ["a", "b", "b"]}]}`,
			"/questions/0/correctOrder", "permutation",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, issues := Parse([]byte(tc.doc))
			if a != nil {
				t.Fatalf("expected nil assessment, got %+v", a)
			}
			found := false
			for _, issue := range issues {
				if issue.Path == tc.wantPath && strings.Contains(issue.Message, tc.wantMsg) {
					found = true
				}
			}
			if !found {
				t.Errorf("issues %v missing {path %q, message containing %q}", issues, tc.wantPath, tc.wantMsg)
			}
		})
	}
}

func TestIssueString(t *testing.T) {
	if got := (Issue{Path: "/questions/0/id", Message: "bad"}).String(); got != "/questions/0/id: bad" {
		t.Errorf("String() = %q", got)
	}
	if got := (Issue{Message: "bad"}).String(); got != "bad" {
		t.Errorf("String() = %q", got)
	}
}

func TestAcceptEntryString(t *testing.T) {
	if got := (AcceptEntry{Literal: "yes"}).String(); got != "yes" {
		t.Errorf("literal String() = %q", got)
	}
	if got := (AcceptEntry{Pattern: "a+", Flags: "i"}).String(); got != "/a+/i" {
		t.Errorf("pattern String() = %q", got)
	}
}
