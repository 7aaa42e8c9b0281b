package assessment

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the question union. The validator guarantees every
// question in a parsed Assessment carries one of these values.
type Kind string

const (
	KindSingle     Kind = "single"
	KindMulti      Kind = "multi"
	KindFitb       Kind = "fitb"
	KindNumeric    Kind = "numeric"
	KindOrdering   Kind = "ordering"
	KindSubjective Kind = "subjective"
)

// Kinds lists every question kind in declaration order.
var Kinds = []Kind{KindSingle, KindMulti, KindFitb, KindNumeric, KindOrdering, KindSubjective}

// Deterministic reports whether questions of this kind are graded
// automatically. Subjective questions always defer to human or LLM judgment.
func (k Kind) Deterministic() bool {
	return k != KindSubjective
}

// Option is one selectable choice of a single or multi question.
type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Explanation string `json:"explanation,omitempty"`
}

// Feedback holds the optional per-outcome messages shown after grading.
type Feedback struct {
	Correct   string `json:"correct,omitempty"`
	Incorrect string `json:"incorrect,omitempty"`
}

// NormalizeMode selects how fill-in-the-blank input is normalized
// before comparison.
type NormalizeMode string

const (
	NormalizeTrim  NormalizeMode = "trim"
	NormalizeLower NormalizeMode = "lower"
	NormalizeNone  NormalizeMode = "none"
)

// AcceptEntry is one acceptable fill-in-the-blank answer: either a literal
// string or a regular expression with optional flags.
type AcceptEntry struct {
	Literal string
	Pattern string
	Flags   string
}

// IsPattern reports whether the entry is a regex rather than a literal.
func (a AcceptEntry) IsPattern() bool {
	return a.Pattern != ""
}

// String renders the entry for display in a correct-answer listing.
func (a AcceptEntry) String() string {
	if a.IsPattern() {
		return fmt.Sprintf("/%s/%s", a.Pattern, a.Flags)
	}
	return a.Literal
}

// UnmarshalJSON accepts either a JSON string (literal) or an object
// with pattern and optional flags.
func (a *AcceptEntry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &a.Literal)
	}
	var obj struct {
		Pattern string `json:"pattern"`
		Flags   string `json:"flags,omitempty"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.Pattern = obj.Pattern
	a.Flags = obj.Flags
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON.
func (a AcceptEntry) MarshalJSON() ([]byte, error) {
	if !a.IsPattern() {
		return json.Marshal(a.Literal)
	}
	return json.Marshal(struct {
		Pattern string `json:"pattern"`
		Flags   string `json:"flags,omitempty"`
	}{a.Pattern, a.Flags})
}

// Rubric is one grading criterion of a subjective question.
type Rubric struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// LlmGrading carries optional guidance for LLM-assisted grading of a
// subjective question. It enriches the grading prompt; the rubrics list
// remains the source of truth for the breakdown shape.
type LlmGrading struct {
	Rubric            string `json:"rubric,omitempty"`
	ReferenceAnswer   string `json:"referenceAnswer,omitempty"`
	AdditionalContext string `json:"additionalContext,omitempty"`
	EvaluatorModel    string `json:"evaluatorModel,omitempty"`
}

// Question is one entry of an assessment. Kind selects which of the
// per-kind field groups is populated; Parse guarantees the invariants
// for each kind (see schema.go and the semantic checks in parse.go).
type Question struct {
	ID       string
	Kind     Kind
	Text     string
	Weight   float64 // normalized: defaults to 1 when the document omits it
	Tags     []string
	Feedback *Feedback

	// single / multi
	Options        []Option
	CorrectOption  string   // single
	CorrectOptions []string // multi

	// fitb
	Accept    []AcceptEntry
	Normalize NormalizeMode

	// numeric
	CorrectNumber float64
	Tolerance     float64

	// ordering
	Items        []string
	CorrectOrder []string
	ShuffleItems bool

	// subjective
	Rubrics    []Rubric
	LlmGrading *LlmGrading
}

// questionDoc is the raw JSON shape of a question. The "correct" key holds
// a string, a string array, or a number depending on the kind, so it is
// captured as raw JSON and decoded per kind.
type questionDoc struct {
	ID       string          `json:"id"`
	Type     Kind            `json:"type"`
	Text     string          `json:"text"`
	Weight   *float64        `json:"weight,omitempty"`
	Tags     []string        `json:"tags,omitempty"`
	Feedback *Feedback       `json:"feedback,omitempty"`
	Options  []Option        `json:"options,omitempty"`
	Correct  json.RawMessage `json:"correct,omitempty"`

	Accept    []AcceptEntry `json:"accept,omitempty"`
	Normalize NormalizeMode `json:"normalize,omitempty"`

	Tolerance *float64 `json:"tolerance,omitempty"`

	Items        []string `json:"items,omitempty"`
	CorrectOrder []string `json:"correctOrder,omitempty"`
	ShuffleItems bool     `json:"shuffleItems,omitempty"`

	Rubrics    []Rubric    `json:"rubrics,omitempty"`
	LlmGrading *LlmGrading `json:"llmGrading,omitempty"`
}

// UnmarshalJSON decodes the raw document shape and resolves the
// kind-dependent "correct" field and defaults.
func (q *Question) UnmarshalJSON(data []byte) error {
	var doc questionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	q.ID = doc.ID
	q.Kind = doc.Type
	q.Text = doc.Text
	q.Tags = doc.Tags
	q.Feedback = doc.Feedback
	q.Options = doc.Options
	q.Accept = doc.Accept
	q.Items = doc.Items
	q.CorrectOrder = doc.CorrectOrder
	q.ShuffleItems = doc.ShuffleItems
	q.Rubrics = doc.Rubrics
	q.LlmGrading = doc.LlmGrading

	q.Weight = 1
	if doc.Weight != nil {
		q.Weight = *doc.Weight
	}

	q.Normalize = doc.Normalize
	if q.Kind == KindFitb && q.Normalize == "" {
		q.Normalize = NormalizeTrim
	}

	q.Tolerance = 0
	if doc.Tolerance != nil {
		q.Tolerance = *doc.Tolerance
	}

	switch q.Kind {
	case KindSingle:
		if err := json.Unmarshal(doc.Correct, &q.CorrectOption); err != nil {
			return fmt.Errorf("question %q: correct: %w", q.ID, err)
		}
	case KindMulti:
		if err := json.Unmarshal(doc.Correct, &q.CorrectOptions); err != nil {
			return fmt.Errorf("question %q: correct: %w", q.ID, err)
		}
	case KindNumeric:
		if err := json.Unmarshal(doc.Correct, &q.CorrectNumber); err != nil {
			return fmt.Errorf("question %q: correct: %w", q.ID, err)
		}
	}

	return nil
}

// Meta carries the assessment-level metadata.
type Meta struct {
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	ShuffleQuestions bool   `json:"shuffleQuestions,omitempty"`
	TimeLimitSec     int    `json:"timeLimitSec,omitempty"`
}

// Assessment is a validated quiz document. The question slice preserves
// document order, which is the presentation order before any shuffle.
type Assessment struct {
	SchemaVersion string     `json:"schemaVersion"`
	Meta          Meta       `json:"meta"`
	Questions     []Question `json:"questions"`
}

// Question returns the question with the given id, or nil.
func (a *Assessment) Question(id string) *Question {
	for i := range a.Questions {
		if a.Questions[i].ID == id {
			return &a.Questions[i]
		}
	}
	return nil
}
