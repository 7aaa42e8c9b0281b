package subjective

import (
	"fmt"
	"strings"

	"github.com/abhisek/soloquiz/internal/assessment"
)

const gradingSystemPrompt = `You are assisting an instructor by grading a student's free-form response against a rubric. Be fair and consistent: award partial credit where the response meets some rubric criteria, and explain every deduction.`

// GradingInput holds all context needed to grade one subjective response.
type GradingInput struct {
	AssessmentTitle string
	QuestionNumber  int
	TotalQuestions  int
	Question        *assessment.Question
	UserAnswer      string
}

func buildGradingUserMessage(input GradingInput) string {
	q := input.Question
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Assessment: %s\n", input.AssessmentTitle))
	b.WriteString(fmt.Sprintf("Question %d of %d:\n%s\n", input.QuestionNumber, input.TotalQuestions, strings.TrimSpace(q.Text)))
	b.WriteString(fmt.Sprintf("Maximum score: %s\n", formatWeight(q.Weight)))

	b.WriteString("\nRubric:\n")
	if q.LlmGrading != nil && q.LlmGrading.Rubric != "" {
		b.WriteString(strings.TrimSpace(q.LlmGrading.Rubric))
		b.WriteString("\n")
	}
	for _, r := range q.Rubrics {
		if r.Description != "" {
			b.WriteString(fmt.Sprintf("- %s: %s\n", r.Title, r.Description))
		} else {
			b.WriteString(fmt.Sprintf("- %s\n", r.Title))
		}
	}

	if q.LlmGrading != nil {
		if ref := strings.TrimSpace(q.LlmGrading.ReferenceAnswer); ref != "" {
			b.WriteString("\nReference answer:\n")
			b.WriteString(ref)
			b.WriteString("\n")
		}
		if extra := strings.TrimSpace(q.LlmGrading.AdditionalContext); extra != "" {
			b.WriteString("\nAdditional context:\n")
			b.WriteString(extra)
			b.WriteString("\n")
		}
	}

	answer := strings.TrimSpace(input.UserAnswer)
	if answer == "" {
		answer = "(no response provided)"
	}
	b.WriteString("\nStudent response:\n")
	b.WriteString(answer)
	b.WriteString("\n")

	b.WriteString(`
Instructions:
1. Score the response out of the maximum score. The score must not exceed it.
2. Use verdict "correct" only when the response fully satisfies the rubric, "partial" when it earns some but not all credit, and "incorrect" otherwise.
3. Produce one rubricBreakdown entry per rubric criterion, using the rubric titles exactly as listed above.
4. List 1-3 concrete improvements the student could make. An excellent response may have an empty list.`)

	return b.String()
}

// formatWeight renders a score without a trailing ".0" for whole numbers.
func formatWeight(w float64) string {
	if w == float64(int64(w)) {
		return fmt.Sprintf("%d", int64(w))
	}
	return fmt.Sprintf("%g", w)
}
