package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/soloquiz/internal/grading"
)

// csvHeader is the per-question column layout of an attempt export.
var csvHeader = []string{
	"Question #",
	"Question ID",
	"Type",
	"Weight",
	"Tags",
	"Question",
	"Your Answer",
	"Correct Answer",
	"Grading Mode",
	"Correct?",
	"Awarded Score",
	"Evaluation Status",
	"Evaluation Notes",
}

// CSV renders a submission summary as a CSV document: one row per question
// in presentation order, then a blank line and a summary row.
func CSV(title string, s *grading.SubmissionSummary) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for i, r := range s.Results {
		if err := w.Write(questionRow(i+1, r)); err != nil {
			return "", fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	if err := w.Write([]string{""}); err != nil {
		return "", fmt.Errorf("write csv separator: %w", err)
	}
	if err := w.Write(summaryRow(title, s)); err != nil {
		return "", fmt.Errorf("write csv summary: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return b.String(), nil
}

func questionRow(number int, r *grading.QuestionResult) []string {
	mode := "auto"
	if r.RequiresManualGrading {
		mode = "subjective"
	}

	correct := "pending"
	if r.IsCorrect != nil {
		correct = strconv.FormatBool(*r.IsCorrect)
	} else if r.Status == grading.StatusPartial {
		correct = "partial"
	}

	evalStatus := ""
	evalNotes := ""
	if r.Evaluation != nil {
		evalStatus = string(r.Evaluation.Status)
		evalNotes = r.Evaluation.FeedbackText
	}

	return []string{
		strconv.Itoa(number),
		r.QuestionID,
		string(r.Kind),
		formatScore(r.Max),
		strings.Join(r.Tags, "; "),
		r.QuestionText,
		r.UserAnswer,
		r.CorrectAnswer,
		mode,
		correct,
		formatScore(r.EarnedOrZero()),
		evalStatus,
		evalNotes,
	}
}

func summaryRow(title string, s *grading.SubmissionSummary) []string {
	return []string{
		"Summary",
		title,
		"Auto Score",
		fmt.Sprintf("%s / %s", formatScore(s.DeterministicEarned), formatScore(s.DeterministicMax)),
		"Auto Percentage",
		fmt.Sprintf("%.2f%%", s.DeterministicPercentage),
		"Subjective Max Score",
		formatScore(s.SubjectiveMax),
		"Time Elapsed (s)",
		strconv.Itoa(s.ElapsedSec),
		"Completed",
		s.CompletedAt.UTC().Format(time.RFC3339),
		"",
	}
}

// formatScore renders a score without a trailing ".0" for whole values.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
