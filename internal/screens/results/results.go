package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/abhisek/soloquiz/internal/export"
	"github.com/abhisek/soloquiz/internal/grading"
	"github.com/abhisek/soloquiz/internal/router"
	"github.com/abhisek/soloquiz/internal/screen"
	"github.com/abhisek/soloquiz/internal/store"
	"github.com/abhisek/soloquiz/internal/subjective"
	"github.com/abhisek/soloquiz/internal/ui/layout"
)

// ResultsScreen shows a graded attempt: the score overview, a per-question
// review, LLM grading of pending subjective responses, and export.
type ResultsScreen struct {
	assessment *assessment.Assessment // nil when reviewing a stored attempt without its document
	summary    *grading.SubmissionSummary
	attempts   store.AttemptRepo   // nil disables persistence of rescoring
	events     store.EventRepo     // nil disables grading events
	grader     *subjective.Service // nil disables LLM grading

	title  string
	cursor int
	detail bool

	// gradingID is the question currently being graded by the LLM, empty
	// when idle.
	gradingID string
	statusMsg string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.StatusProvider = (*ResultsScreen)(nil)

// New creates a results screen over a graded summary.
func New(a *assessment.Assessment, summary *grading.SubmissionSummary, attempts store.AttemptRepo, events store.EventRepo, grader *subjective.Service) *ResultsScreen {
	s := &ResultsScreen{
		assessment: a,
		summary:    summary,
		attempts:   attempts,
		events:     events,
		grader:     grader,
	}
	if a != nil {
		s.title = a.Meta.Title
	}
	return s
}

// SetTitle overrides the display title, used when reviewing a stored
// attempt without its assessment document.
func (s *ResultsScreen) SetTitle(title string) {
	s.title = title
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) Status() string {
	if s.gradingID != "" {
		return "grading..."
	}
	if n := s.summary.PendingSubjectiveCount; n > 0 {
		return fmt.Sprintf("%d pending", n)
	}
	return ""
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.detail {
		hints := []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "↑↓", Description: "Prev/Next question"},
		}
		r := s.summary.Results[s.cursor]
		if r.Pending() && s.grader != nil && s.gradingID == "" {
			hints = append(hints, layout.KeyHint{Key: "G", Description: "Grade with LLM"})
		}
		if r.RequiresManualGrading && !r.Pending() {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Reset grade"})
		}
		return hints
	}

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Review"},
	}
	if s.summary.PendingSubjectiveCount > 0 && s.grader != nil && s.gradingID == "" {
		hints = append(hints, layout.KeyHint{Key: "G", Description: "Grade pending"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "E", Description: "Export CSV"},
		layout.KeyHint{Key: "X", Description: "Export JSON"},
		layout.KeyHint{Key: "Q", Description: "Quit"},
	)
	return hints
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradePollMsg:
		return s.handleGradePoll()

	case gradeAppliedMsg:
		return s.handleGradeApplied(msg)

	case exportedMsg:
		if msg.Err != nil {
			s.statusMsg = fmt.Sprintf("Export failed: %v", msg.Err)
		} else {
			s.statusMsg = "Exported to " + msg.Path
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ResultsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	s.statusMsg = ""

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil
	case "down", "j":
		if s.cursor < len(s.summary.Results)-1 {
			s.cursor++
		}
		return s, nil
	}

	if s.detail {
		switch key {
		case "esc", "backspace":
			s.detail = false
		case "g", "G":
			return s.startGrading(s.summary.Results[s.cursor])
		case "r", "R":
			return s.resetGrade(s.summary.Results[s.cursor])
		}
		return s, nil
	}

	switch key {
	case "enter":
		s.detail = true
	case "g", "G":
		pending := s.summary.PendingSubjective()
		if len(pending) == 0 {
			return s, nil
		}
		return s.startGrading(pending[0])
	case "e", "E":
		return s, s.exportCmd("csv")
	case "x", "X":
		return s, s.exportCmd("json")
	case "esc":
		// Pops back to the history screen when reviewing a stored
		// attempt; no-op when results is the only screen.
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "q", "Q":
		return s, tea.Quit
	}
	return s, nil
}

// startGrading kicks off an async LLM grade for one pending result.
func (s *ResultsScreen) startGrading(r *grading.QuestionResult) (screen.Screen, tea.Cmd) {
	if s.grader == nil {
		s.statusMsg = "No LLM provider configured; set SOLOQUIZ_LLM_PROVIDER to grade."
		return s, nil
	}
	if s.gradingID != "" || !r.Pending() {
		return s, nil
	}

	q := s.question(r)
	if q == nil {
		s.statusMsg = "Cannot grade: the assessment document is not loaded."
		return s, nil
	}

	s.gradingID = r.QuestionID
	s.grader.RequestGrade(context.Background(), subjective.GradingInput{
		AssessmentTitle: s.title,
		QuestionNumber:  s.resultIndex(r.QuestionID) + 1,
		TotalQuestions:  len(s.summary.Results),
		Question:        q,
		UserAnswer:      r.UserAnswer,
	})
	return s, gradePollCmd()
}

func (s *ResultsScreen) handleGradePoll() (screen.Screen, tea.Cmd) {
	res, ok := s.grader.ConsumeGrade()
	if !ok {
		return s, gradePollCmd()
	}

	if res.Err != nil {
		s.gradingID = ""
		s.statusMsg = fmt.Sprintf("Grading failed: %v", res.Err)
		return s, nil
	}

	if err := s.summary.ApplyFeedback(res.QuestionID, *res.Feedback); err != nil {
		s.gradingID = ""
		s.statusMsg = fmt.Sprintf("Grading rejected: %v", err)
		return s, nil
	}
	if r := s.summary.Result(res.QuestionID); r != nil && r.Evaluation != nil {
		r.Evaluation.EvaluatorModel = s.grader.ModelID()
	}

	return s, s.persistRescore(res.QuestionID, "apply", string(res.Feedback.Verdict), "llm", res.Feedback.Score)
}

func (s *ResultsScreen) handleGradeApplied(msg gradeAppliedMsg) (screen.Screen, tea.Cmd) {
	s.gradingID = ""
	if msg.Err != nil {
		s.statusMsg = fmt.Sprintf("Warning: grade applied but not saved: %v", msg.Err)
		return s, nil
	}
	if msg.Warn != "" {
		s.statusMsg = msg.Warn
	}

	// Chain into the next pending question when grading from the overview.
	if !s.detail {
		if pending := s.summary.PendingSubjective(); len(pending) > 0 {
			return s.startGrading(pending[0])
		}
	}
	return s, nil
}

// resetGrade returns a scored subjective result to pending.
func (s *ResultsScreen) resetGrade(r *grading.QuestionResult) (screen.Screen, tea.Cmd) {
	if !r.RequiresManualGrading || r.Pending() {
		return s, nil
	}
	if err := s.summary.ResetSubjective(r.QuestionID); err != nil {
		s.statusMsg = fmt.Sprintf("Reset failed: %v", err)
		return s, nil
	}
	return s, s.persistRescore(r.QuestionID, "reset", "", "user", 0)
}

// persistRescore updates the stored attempt and appends a grading event.
func (s *ResultsScreen) persistRescore(questionID, action, verdict, source string, score float64) tea.Cmd {
	attempts := s.attempts
	events := s.events
	summary := s.summary

	return func() tea.Msg {
		ctx := context.Background()

		var warn string
		if events != nil {
			if err := events.AppendGrading(ctx, store.GradingEventData{
				AttemptID:  summary.ID,
				QuestionID: questionID,
				Action:     action,
				Verdict:    verdict,
				Score:      score,
				Source:     source,
			}); err != nil {
				warn = fmt.Sprintf("Warning: grading event not recorded: %v", err)
			}
		}

		if attempts == nil {
			return gradeAppliedMsg{QuestionID: questionID, Warn: warn}
		}

		raw, err := json.Marshal(summary)
		if err != nil {
			return gradeAppliedMsg{QuestionID: questionID, Err: fmt.Errorf("encode summary: %w", err)}
		}
		rec := &store.AttemptRecord{
			AttemptID:    summary.ID,
			Summary:      raw,
			Percentage:   summary.DeterministicPercentage,
			PendingCount: summary.PendingSubjectiveCount,
		}
		if err := attempts.Update(ctx, rec); err != nil {
			return gradeAppliedMsg{QuestionID: questionID, Err: err}
		}
		return gradeAppliedMsg{QuestionID: questionID, Warn: warn}
	}
}

// exportCmd writes the summary to a file in the working directory.
func (s *ResultsScreen) exportCmd(format string) tea.Cmd {
	summary := s.summary
	title := s.title

	return func() tea.Msg {
		var content string
		var err error
		switch format {
		case "csv":
			content, err = export.CSV(title, summary)
		default:
			content, err = export.JSON(title, summary)
		}
		if err != nil {
			return exportedMsg{Err: err}
		}

		path := exportFileName(summary.ID, format)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return exportedMsg{Err: err}
		}
		return exportedMsg{Path: path}
	}
}

func exportFileName(attemptID, format string) string {
	id := attemptID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("soloquiz-attempt-%s.%s", id, format)
}

// question resolves the assessment question for a result, preferring the
// in-memory pointer and falling back to a document lookup.
func (s *ResultsScreen) question(r *grading.QuestionResult) *assessment.Question {
	if r.Question != nil {
		return r.Question
	}
	if s.assessment != nil {
		return s.assessment.Question(r.QuestionID)
	}
	return nil
}

func (s *ResultsScreen) resultIndex(questionID string) int {
	for i, r := range s.summary.Results {
		if r.QuestionID == questionID {
			return i
		}
	}
	return 0
}

// gradePollCmd polls for a finished LLM grade.
func gradePollCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return gradePollMsg(t)
	})
}
