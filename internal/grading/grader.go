package grading

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/soloquiz/internal/assessment"
)

// Answer is a submitted value for one question: free text for single, fitb,
// numeric and subjective kinds; an ordered id or item list for multi and
// ordering kinds. The zero value means "unanswered". A value of the wrong
// shape for the question kind grades as unanswered, never as an error.
type Answer struct {
	Text string
	List []string
}

// TextAnswer wraps a free-text submission.
func TextAnswer(s string) Answer { return Answer{Text: s} }

// ListAnswer wraps an ordered list submission.
func ListAnswer(values ...string) Answer { return Answer{List: values} }

// Evaluate grades one question against a submitted value.
//
// Deterministic kinds produce a final result: earned is the full weight when
// correct, zero otherwise — partial credit only arises later from subjective
// feedback. Subjective questions produce a pending result carrying the
// rubric data forward. Evaluate never fails: malformed or absent answers
// grade as incorrect (or pending, for subjective).
func Evaluate(q *assessment.Question, value Answer) *QuestionResult {
	if q.Kind == assessment.KindSubjective {
		return evaluateSubjective(q, value)
	}

	eval := evaluateDeterministic(q, value)

	earned := 0.0
	status := StatusIncorrect
	if eval.isCorrect {
		earned = q.Weight
		status = StatusCorrect
	}

	return &QuestionResult{
		Question:              q,
		QuestionID:            q.ID,
		QuestionText:          q.Text,
		Kind:                  q.Kind,
		Tags:                  q.Tags,
		Max:                   q.Weight,
		UserAnswer:            eval.userAnswer,
		CorrectAnswer:         eval.correctAnswer,
		Feedback:              outcomeFeedback(q, eval.isCorrect),
		Status:                status,
		SelectedOptions:       eval.selectedOptions,
		RequiresManualGrading: false,
		Earned:                float64Ptr(earned),
		IsCorrect:             boolPtr(eval.isCorrect),
	}
}

func evaluateSubjective(q *assessment.Question, value Answer) *QuestionResult {
	referenceAnswer := ""
	if q.LlmGrading != nil {
		referenceAnswer = q.LlmGrading.ReferenceAnswer
	}
	return &QuestionResult{
		Question:              q,
		QuestionID:            q.ID,
		QuestionText:          q.Text,
		Kind:                  q.Kind,
		Tags:                  q.Tags,
		Max:                   q.Weight,
		UserAnswer:            value.Text,
		CorrectAnswer:         referenceAnswer,
		Feedback:              outcomeFeedback(q, false),
		Status:                StatusPending,
		RequiresManualGrading: true,
		Evaluation:            &Evaluation{Status: EvaluationPending},
	}
}

// deterministicEvaluation is the kind-specific portion of a result.
type deterministicEvaluation struct {
	userAnswer      string
	correctAnswer   string
	isCorrect       bool
	selectedOptions []string
}

func evaluateDeterministic(q *assessment.Question, value Answer) deterministicEvaluation {
	switch q.Kind {
	case assessment.KindSingle:
		return evaluateSingle(q, value)
	case assessment.KindMulti:
		return evaluateMulti(q, value)
	case assessment.KindFitb:
		return evaluateFitb(q, value)
	case assessment.KindNumeric:
		return evaluateNumeric(q, value)
	case assessment.KindOrdering:
		return evaluateOrdering(q, value)
	}
	// Unknown kinds are rejected by the validator; grade as unanswered
	// rather than panicking on a hand-built question.
	return deterministicEvaluation{}
}

func evaluateSingle(q *assessment.Question, value Answer) deterministicEvaluation {
	selected := value.Text
	var selectedOptions []string
	if selected != "" {
		selectedOptions = []string{selected}
	}
	return deterministicEvaluation{
		userAnswer:      renderOptionLabels(q, selectedOptions),
		correctAnswer:   renderOptionLabels(q, []string{q.CorrectOption}),
		isCorrect:       selected != "" && selected == q.CorrectOption,
		selectedOptions: selectedOptions,
	}
}

func evaluateMulti(q *assessment.Question, value Answer) deterministicEvaluation {
	selected := value.List
	return deterministicEvaluation{
		userAnswer:      renderOptionLabels(q, selected),
		correctAnswer:   renderOptionLabels(q, q.CorrectOptions),
		isCorrect:       sameStringSet(selected, q.CorrectOptions),
		selectedOptions: append([]string(nil), selected...),
	}
}

// sameStringSet compares two id lists with set semantics: duplicates are
// removed and order is ignored.
func sameStringSet(a, b []string) bool {
	return setKey(a) == setKey(b)
}

func setKey(values []string) string {
	unique := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	sort.Strings(unique)
	return strings.Join(unique, "\x00")
}

func evaluateFitb(q *assessment.Question, value Answer) deterministicEvaluation {
	normalized := normalizeFitb(q.Normalize, value.Text)

	isCorrect := false
	for _, entry := range q.Accept {
		if entry.IsPattern() {
			if matchAcceptPattern(entry, normalized) {
				isCorrect = true
				break
			}
			continue
		}
		if normalizeFitb(q.Normalize, entry.Literal) == normalized {
			isCorrect = true
			break
		}
	}

	parts := make([]string, len(q.Accept))
	for i, entry := range q.Accept {
		parts[i] = entry.String()
	}

	return deterministicEvaluation{
		userAnswer:    normalized,
		correctAnswer: strings.Join(parts, ", "),
		isCorrect:     isCorrect,
	}
}

// matchAcceptPattern tests a regex accept entry against the normalized
// submission. An invalid pattern is logged and treated as non-matching so a
// bad entry can never fail the whole question.
func matchAcceptPattern(entry assessment.AcceptEntry, text string) bool {
	re, err := compileAcceptPattern(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid accept pattern %s: %v\n", entry, err)
		return false
	}
	return re.MatchString(text)
}

func compileAcceptPattern(entry assessment.AcceptEntry) (*regexp.Regexp, error) {
	var inline strings.Builder
	for _, f := range entry.Flags {
		switch f {
		case 'i', 'm', 's':
			inline.WriteRune(f)
		default:
			return nil, fmt.Errorf("unsupported flag %q", string(f))
		}
	}
	pattern := entry.Pattern
	if inline.Len() > 0 {
		pattern = "(?" + inline.String() + ")" + pattern
	}
	return regexp.Compile(pattern)
}

func normalizeFitb(mode assessment.NormalizeMode, text string) string {
	switch mode {
	case assessment.NormalizeLower:
		return strings.ToLower(strings.TrimSpace(text))
	case assessment.NormalizeNone:
		return text
	default:
		return strings.TrimSpace(text)
	}
}

func evaluateNumeric(q *assessment.Question, value Answer) deterministicEvaluation {
	text := strings.TrimSpace(value.Text)

	isCorrect := false
	if parsed, err := strconv.ParseFloat(text, 64); err == nil {
		isCorrect = math.Abs(parsed-q.CorrectNumber) <= q.Tolerance
	}

	correctAnswer := formatNumber(q.CorrectNumber)
	if q.Tolerance > 0 {
		correctAnswer = fmt.Sprintf("%s ± %s", correctAnswer, formatNumber(q.Tolerance))
	}

	return deterministicEvaluation{
		userAnswer:    text,
		correctAnswer: correctAnswer,
		isCorrect:     isCorrect,
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const orderingSeparator = " → "

func evaluateOrdering(q *assessment.Question, value Answer) deterministicEvaluation {
	submitted := value.List

	// Empty submission is always incorrect; the unordered item list stands
	// in as the displayed "user answer".
	displayed := submitted
	if len(displayed) == 0 {
		displayed = q.Items
	}

	isCorrect := len(submitted) > 0 && sameSequence(submitted, q.CorrectOrder)

	return deterministicEvaluation{
		userAnswer:    strings.Join(displayed, orderingSeparator),
		correctAnswer: strings.Join(q.CorrectOrder, orderingSeparator),
		isCorrect:     isCorrect,
	}
}

func sameSequence(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// renderOptionLabels maps option ids to their labels for display, falling
// back to the raw id when no option matches.
func renderOptionLabels(q *assessment.Question, ids []string) string {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = id
		for _, opt := range q.Options {
			if opt.ID == id {
				labels[i] = opt.Label
				break
			}
		}
	}
	return strings.Join(labels, ", ")
}

func outcomeFeedback(q *assessment.Question, isCorrect bool) string {
	if q.Feedback == nil {
		return ""
	}
	if isCorrect {
		return q.Feedback.Correct
	}
	if q.Feedback.Incorrect != "" {
		return q.Feedback.Incorrect
	}
	if q.Kind == assessment.KindSubjective {
		return q.Feedback.Correct
	}
	return ""
}
