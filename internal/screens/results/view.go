package results

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/soloquiz/internal/grading"
	"github.com/abhisek/soloquiz/internal/ui/theme"
)

func (s *ResultsScreen) View(width, height int) string {
	if s.detail {
		return s.renderDetail(width, height)
	}
	return s.renderOverview(width, height)
}

// renderOverview renders the score block and the question list.
func (s *ResultsScreen) renderOverview(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(s.title))
	b.WriteString("\n\n")

	scoreLine := fmt.Sprintf("Auto-graded: %s / %s  (%.1f%%)",
		formatScore(sum.DeterministicEarned),
		formatScore(sum.DeterministicMax),
		sum.DeterministicPercentage)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(scoreLine))
	b.WriteString("\n")

	if sum.SubjectiveMax > 0 {
		subjLine := fmt.Sprintf("Written responses: %s pts", formatScore(sum.SubjectiveMax))
		if sum.PendingSubjectiveCount > 0 {
			subjLine += fmt.Sprintf(" — %d awaiting grading", sum.PendingSubjectiveCount)
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Warning).
				Render(subjLine))
		} else {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(subjLine + " — all graded"))
		}
		b.WriteString("\n")
	}

	timeLine := fmt.Sprintf("Time: %d:%02d", sum.ElapsedSec/60, sum.ElapsedSec%60)
	if sum.AutoSubmitted {
		timeLine += "  ·  auto-submitted at the time limit"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(timeLine))
	b.WriteString("\n\n")

	for i, r := range sum.Results {
		b.WriteString(s.renderResultLine(i, r, width))
		b.WriteString("\n")
	}

	if s.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.statusMsg))
	}

	return b.String()
}

func (s *ResultsScreen) renderResultLine(i int, r *grading.QuestionResult, width int) string {
	cursor := "  "
	if i == s.cursor {
		cursor = "▸ "
	}

	icon, iconStyle := statusIcon(r)

	text := r.QuestionText
	maxText := width - 30
	if maxText > 0 && len(text) > maxText {
		text = text[:maxText-1] + "…"
	}

	score := fmt.Sprintf("%s/%s", formatScore(r.EarnedOrZero()), formatScore(r.Max))
	if r.Pending() {
		score = "—/" + formatScore(r.Max)
	}

	line := fmt.Sprintf("  %s%s %2d. %s  (%s)", cursor, iconStyle.Render(icon), i+1, text, score)

	if i == s.cursor {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(line)
}

// renderDetail renders one question's full review.
func (s *ResultsScreen) renderDetail(width, height int) string {
	r := s.summary.Results[s.cursor]
	contentWidth := min(width-6, 90)

	var b strings.Builder

	icon, iconStyle := statusIcon(r)
	b.WriteString(fmt.Sprintf("  %s %s\n", iconStyle.Render(icon),
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("Question %d of %d  ·  %s  ·  %s/%s pts",
				s.cursor+1, len(s.summary.Results), r.Kind,
				formatScore(r.EarnedOrZero()), formatScore(r.Max)))))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		Bold(true).
		PaddingLeft(2).
		Render(r.QuestionText))
	b.WriteString("\n\n")

	if r.RequiresManualGrading {
		b.WriteString(s.renderSubjectiveDetail(r, contentWidth))
	} else {
		b.WriteString(renderDeterministicDetail(r, contentWidth))
	}

	if s.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(theme.Accent).
			Render(s.statusMsg))
		b.WriteString("\n")
	}

	return b.String()
}

func renderDeterministicDetail(r *grading.QuestionResult, width int) string {
	var b strings.Builder

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Width(width - 18).Foreground(theme.Text)

	answer := r.UserAnswer
	if answer == "" {
		answer = "(unanswered)"
	}
	b.WriteString("  " + label.Render("Your answer:    ") + value.Render(answer) + "\n")
	b.WriteString("  " + label.Render("Correct answer: ") + value.Render(r.CorrectAnswer) + "\n")

	if r.Feedback != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Foreground(theme.TextDim).
			Italic(true).
			PaddingLeft(2).
			Render(r.Feedback))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *ResultsScreen) renderSubjectiveDetail(r *grading.QuestionResult, width int) string {
	var b strings.Builder

	answer := r.UserAnswer
	if answer == "" {
		answer = "(no response)"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(2).Render("Your response:"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		PaddingLeft(4).
		Render(answer))
	b.WriteString("\n\n")

	if r.CorrectAnswer != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(2).
			Render("Compared with the reference answer:"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			PaddingLeft(4).
			Render(renderDiff(r.UserAnswer, r.CorrectAnswer)))
		b.WriteString("\n\n")
	}

	b.WriteString(renderEvaluation(r, width))
	return b.String()
}

// renderDiff colorizes a word diff of the response against the reference:
// shared words plain, missing reference words green with +, extra submitted
// words dimmed with strikethrough.
func renderDiff(submitted, reference string) string {
	tokens := grading.BuildDiffTokens(submitted, reference)
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		switch t.Kind {
		case grading.DiffMatch:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Render(t.Text))
		case grading.DiffAdd:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Success).Render("+"+t.Text))
		case grading.DiffRemove:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Strikethrough(true).Render(t.Text))
		}
	}
	return strings.Join(parts, " ")
}

func renderEvaluation(r *grading.QuestionResult, width int) string {
	ev := r.Evaluation
	if ev == nil {
		return ""
	}

	var b strings.Builder

	if ev.Status == grading.EvaluationPending {
		b.WriteString(theme.Pending.PaddingLeft(2).Render("Awaiting grading."))
		b.WriteString("\n")
		return b.String()
	}

	verdictStyle := theme.Correct
	switch ev.Verdict {
	case grading.VerdictIncorrect:
		verdictStyle = theme.Incorrect
	case grading.VerdictPartial:
		verdictStyle = theme.Partial
	}

	header := fmt.Sprintf("Verdict: %s", ev.Verdict)
	if ev.AwardedScore != nil {
		header += fmt.Sprintf("  ·  awarded %s/%s", formatScore(*ev.AwardedScore), formatScore(r.Max))
	}
	if ev.EvaluatorModel != "" {
		header += "  ·  " + ev.EvaluatorModel
	}
	b.WriteString(verdictStyle.PaddingLeft(2).Render(header))
	b.WriteString("\n")

	if ev.FeedbackText != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(ev.FeedbackText))
		b.WriteString("\n")
	}

	if len(ev.RubricBreakdown) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(2).Render("Rubric:"))
		b.WriteString("\n")
		for _, rb := range ev.RubricBreakdown {
			line := fmt.Sprintf("  - %s: %.0f%%", rb.Rubric, rb.AchievedFraction*100)
			if rb.Comments != "" {
				line += " — " + rb.Comments
			}
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Foreground(theme.Text).
				PaddingLeft(2).
				Render(line))
			b.WriteString("\n")
		}
	}

	if len(ev.Improvements) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(2).Render("To improve:"))
		b.WriteString("\n")
		for _, imp := range ev.Improvements {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Foreground(theme.Text).
				PaddingLeft(2).
				Render("  - " + imp))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func statusIcon(r *grading.QuestionResult) (string, lipgloss.Style) {
	switch r.Status {
	case grading.StatusCorrect:
		return "✓", theme.Correct
	case grading.StatusIncorrect:
		return "✗", theme.Incorrect
	case grading.StatusPartial:
		return "◐", theme.Partial
	default:
		return "…", theme.Pending
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
