package export

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/soloquiz/internal/grading"
)

// jsonDocument wraps a summary with its assessment title for export.
type jsonDocument struct {
	Title   string                     `json:"title"`
	Summary *grading.SubmissionSummary `json:"summary"`
}

// JSON renders a submission summary as an indented JSON document.
func JSON(title string, s *grading.SubmissionSummary) (string, error) {
	out, err := json.MarshalIndent(jsonDocument{Title: title, Summary: s}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	return string(out) + "\n", nil
}
