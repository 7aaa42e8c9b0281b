package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/abhisek/soloquiz/internal/ui/components"
	"github.com/abhisek/soloquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.submitting {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Grading your answers...")
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	if s.confirmSubmit {
		return s.renderSubmitConfirm(width)
	}
	return s.renderQuestionView(width, height)
}

// renderQuestionView renders the active question with its input widget.
func (s *QuizScreen) renderQuestionView(width, height int) string {
	q := &s.questions[s.index]

	var b strings.Builder

	// Progress line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d/%d", s.index+1, len(s.questions)))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d answered  %s", s.answeredCount(), s.Status()))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", float64(s.answeredCount())/float64(len(s.questions)), false, max(width-4, 8))
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	// Question text with kind and weight tag line.
	tagLine := string(q.Kind)
	if q.Weight != 1 {
		tagLine += fmt.Sprintf("  ·  %s pts", trimFloat(q.Weight))
	}
	if q.Kind == assessment.KindMulti {
		tagLine += "  ·  select all that apply"
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("  " + tagLine))
	b.WriteString("\n\n")

	textStyle := lipgloss.NewStyle().
		Width(min(width-4, 90)).
		Foreground(theme.Text).
		Bold(true).
		PaddingLeft(2)
	b.WriteString(textStyle.Render(q.Text))
	b.WriteString("\n\n")

	b.WriteString(s.renderInput(q, width))

	return b.String()
}

func (s *QuizScreen) renderInput(q *assessment.Question, width int) string {
	w := s.widgets[s.index]

	switch q.Kind {
	case assessment.KindSingle, assessment.KindMulti:
		return w.choice.View()

	case assessment.KindOrdering:
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  Arrange into the correct order:"))
		b.WriteString("\n\n")
		b.WriteString(w.order.View())
		return b.String()

	case assessment.KindFitb, assessment.KindNumeric:
		return "  Answer: " + w.text.View()

	case assessment.KindSubjective:
		var b strings.Builder
		if len(q.Rubrics) > 0 {
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("  Graded on: " + rubricTitles(q)))
			b.WriteString("\n\n")
		}
		area := w.area
		area.SetWidth(min(width-6, 84))
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(area.View()))
		return b.String()
	}

	return ""
}

// renderSubmitConfirm renders the submit confirmation, warning about
// unanswered questions.
func (s *QuizScreen) renderSubmitConfirm(width int) string {
	unanswered := len(s.questions) - s.answeredCount()

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Submit your answers?"))
	b.WriteString("\n")

	if unanswered > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Render(fmt.Sprintf("%d of %d questions are unanswered.", unanswered, len(s.questions))))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("All questions answered."))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, grade it"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep reviewing"))

	return b.String()
}

// renderQuitConfirm renders the abandon confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Abandon this attempt?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Nothing will be graded or saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, abandon"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func rubricTitles(q *assessment.Question) string {
	titles := make([]string, len(q.Rubrics))
	for i, r := range q.Rubrics {
		titles[i] = r.Title
	}
	return strings.Join(titles, ", ")
}

func trimFloat(v float64) string {
	out := fmt.Sprintf("%g", v)
	return out
}
