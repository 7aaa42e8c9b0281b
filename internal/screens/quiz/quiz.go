package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/abhisek/soloquiz/internal/grading"
	"github.com/abhisek/soloquiz/internal/router"
	"github.com/abhisek/soloquiz/internal/screen"
	"github.com/abhisek/soloquiz/internal/screens/results"
	"github.com/abhisek/soloquiz/internal/store"
	"github.com/abhisek/soloquiz/internal/subjective"
	"github.com/abhisek/soloquiz/internal/ui/components"
	"github.com/abhisek/soloquiz/internal/ui/layout"
)

// answerWidget holds the input state for one question. Exactly one field is
// in use, selected by the question kind.
type answerWidget struct {
	choice components.ChoiceList // single, multi
	order  components.OrderList  // ordering
	text   components.TextInput  // fitb, numeric
	area   components.TextArea   // subjective

	// touched marks ordering widgets the user has rearranged; an untouched
	// ordering question grades as unanswered.
	touched bool
}

// QuizScreen runs one attempt over an assessment: it presents questions in
// order, tracks answers and the clock, and on submission grades the attempt
// and hands off to the results screen.
type QuizScreen struct {
	assessment *assessment.Assessment
	attempts   store.AttemptRepo   // nil when the store is unavailable
	events     store.EventRepo     // nil when the store is unavailable
	grader     *subjective.Service // nil when no LLM provider is configured

	questions []assessment.Question // presentation order
	widgets   []*answerWidget
	index     int

	startedAt time.Time
	elapsed   time.Duration

	confirmSubmit bool
	confirmQuit   bool
	submitting    bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a quiz screen over a validated assessment. The repos and
// grader may be nil; the attempt then runs without persistence or LLM
// grading.
func New(a *assessment.Assessment, attempts store.AttemptRepo, events store.EventRepo, grader *subjective.Service) *QuizScreen {
	questions := append([]assessment.Question(nil), a.Questions...)
	if a.Meta.ShuffleQuestions {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	widgets := make([]*answerWidget, len(questions))
	for i := range questions {
		widgets[i] = newAnswerWidget(&questions[i])
	}

	return &QuizScreen{
		assessment: a,
		attempts:   attempts,
		events:     events,
		grader:     grader,
		questions:  questions,
		widgets:    widgets,
		startedAt:  time.Now(),
	}
}

func newAnswerWidget(q *assessment.Question) *answerWidget {
	w := &answerWidget{}
	switch q.Kind {
	case assessment.KindSingle, assessment.KindMulti:
		choices := make([]components.Choice, len(q.Options))
		for i, opt := range q.Options {
			choices[i] = components.Choice{ID: opt.ID, Label: opt.Label}
		}
		w.choice = components.NewChoiceList(choices, q.Kind == assessment.KindMulti)
	case assessment.KindOrdering:
		items := append([]string(nil), q.Items...)
		if q.ShuffleItems {
			rand.Shuffle(len(items), func(i, j int) {
				items[i], items[j] = items[j], items[i]
			})
		}
		choices := make([]components.Choice, len(items))
		for i, item := range items {
			choices[i] = components.Choice{ID: item, Label: item}
		}
		w.order = components.NewOrderList(choices)
	case assessment.KindNumeric:
		w.text = components.NewTextInput("Type a number...", true, 40)
	case assessment.KindFitb:
		w.text = components.NewTextInput("Type your answer...", false, 120)
	case assessment.KindSubjective:
		w.area = components.NewTextArea("Write your response...")
	}
	return w
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.widgetInit(), tickCmd())
}

func (s *QuizScreen) Title() string {
	return s.assessment.Meta.Title
}

// Status renders the header clock: count-up normally, countdown when the
// assessment carries a time limit.
func (s *QuizScreen) Status() string {
	if limit := s.assessment.Meta.TimeLimitSec; limit > 0 {
		remaining := time.Duration(limit)*time.Second - s.elapsed
		if remaining < 0 {
			remaining = 0
		}
		return "⏱ " + formatClock(remaining)
	}
	return formatClock(s.elapsed)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon attempt"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.confirmSubmit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Review answers"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next"},
		{Key: "Shift+Tab", Description: "Prev"},
	}
	switch s.questions[s.index].Kind {
	case assessment.KindSingle, assessment.KindMulti:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Mark"})
	case assessment.KindOrdering:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Lift/drop"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Submit"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
	return hints
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick()

	case submittedMsg:
		return s.handleSubmitted(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward everything else (blink ticks and the like) to the active
	// input widget.
	if !s.submitting && !s.confirmQuit && !s.confirmSubmit {
		cmd := s.forwardToWidget(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}

	s.elapsed = time.Since(s.startedAt)

	if limit := s.assessment.Meta.TimeLimitSec; limit > 0 && s.elapsed >= time.Duration(limit)*time.Second {
		return s.submit(true)
	}

	return s, tickCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.submitting {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, tea.Quit
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.confirmSubmit {
		switch key {
		case "y", "Y", "enter":
			s.confirmSubmit = false
			return s.submit(false)
		case "n", "N", "esc":
			s.confirmSubmit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "ctrl+s":
		s.confirmSubmit = true
		return s, nil
	case "tab":
		return s.advance(1)
	case "shift+tab":
		return s.advance(-1)
	case "enter":
		// Enter inserts a newline in a written response; everywhere else
		// it advances, asking for confirmation past the last question.
		if s.questions[s.index].Kind != assessment.KindSubjective {
			return s.advance(1)
		}
	}

	return s, s.forwardToWidget(msg)
}

// advance moves the cursor by delta questions. Moving forward past the last
// question opens the submit confirmation instead of wrapping.
func (s *QuizScreen) advance(delta int) (screen.Screen, tea.Cmd) {
	next := s.index + delta
	if next >= len(s.questions) {
		s.confirmSubmit = true
		return s, nil
	}
	if next < 0 {
		next = 0
	}
	s.index = next
	return s, s.widgetInit()
}

// widgetInit returns the focus command for the active question's widget.
func (s *QuizScreen) widgetInit() tea.Cmd {
	w := s.widgets[s.index]
	switch s.questions[s.index].Kind {
	case assessment.KindFitb, assessment.KindNumeric:
		return w.text.Init()
	case assessment.KindSubjective:
		return w.area.Init()
	}
	return nil
}

func (s *QuizScreen) forwardToWidget(msg tea.Msg) tea.Cmd {
	w := s.widgets[s.index]
	var cmd tea.Cmd
	switch s.questions[s.index].Kind {
	case assessment.KindSingle, assessment.KindMulti:
		w.choice, cmd = w.choice.Update(msg)
	case assessment.KindOrdering:
		wasMoving := w.order.Moving()
		before := w.order.Sequence()
		w.order, cmd = w.order.Update(msg)
		// Lifting an item counts as an answer even if it is dropped back
		// in place; so does any rearrangement, including direct
		// shift-moves that never lift.
		if wasMoving || w.order.Moving() || !slices.Equal(before, w.order.Sequence()) {
			w.touched = true
		}
	case assessment.KindFitb, assessment.KindNumeric:
		w.text, cmd = w.text.Update(msg)
	case assessment.KindSubjective:
		w.area, cmd = w.area.Update(msg)
	}
	return cmd
}

// answered reports whether the question at index i has a recorded answer.
func (s *QuizScreen) answered(i int) bool {
	w := s.widgets[i]
	switch s.questions[i].Kind {
	case assessment.KindSingle, assessment.KindMulti:
		return len(w.choice.Selected()) > 0
	case assessment.KindOrdering:
		return w.touched
	case assessment.KindFitb, assessment.KindNumeric:
		return w.text.Value() != ""
	case assessment.KindSubjective:
		return w.area.Value() != ""
	}
	return false
}

func (s *QuizScreen) answeredCount() int {
	n := 0
	for i := range s.questions {
		if s.answered(i) {
			n++
		}
	}
	return n
}

// collectAnswers builds the submission map from the widget states.
func (s *QuizScreen) collectAnswers() map[string]grading.Answer {
	answers := make(map[string]grading.Answer, len(s.questions))
	for i := range s.questions {
		q := &s.questions[i]
		w := s.widgets[i]
		switch q.Kind {
		case assessment.KindSingle:
			if ids := w.choice.Selected(); len(ids) == 1 {
				answers[q.ID] = grading.TextAnswer(ids[0])
			}
		case assessment.KindMulti:
			if ids := w.choice.Selected(); len(ids) > 0 {
				answers[q.ID] = grading.ListAnswer(ids...)
			}
		case assessment.KindOrdering:
			if w.touched {
				answers[q.ID] = grading.ListAnswer(w.order.Sequence()...)
			}
		case assessment.KindFitb, assessment.KindNumeric:
			if v := w.text.Value(); v != "" {
				answers[q.ID] = grading.TextAnswer(v)
			}
		case assessment.KindSubjective:
			if v := w.area.Value(); v != "" {
				answers[q.ID] = grading.TextAnswer(v)
			}
		}
	}
	return answers
}

// submit grades the attempt and persists it, then replaces this screen with
// the results view.
func (s *QuizScreen) submit(auto bool) (screen.Screen, tea.Cmd) {
	s.submitting = true

	sub := grading.Submission{
		Assessment:    s.assessment,
		Questions:     s.questions,
		Answers:       s.collectAnswers(),
		StartedAt:     s.startedAt,
		CompletedAt:   time.Now(),
		AutoSubmitted: auto,
	}

	attempts := s.attempts
	a := s.assessment
	return s, func() tea.Msg {
		summary := grading.EvaluateSubmission(sub)

		var saveErr error
		if attempts != nil {
			saveErr = saveAttempt(context.Background(), attempts, a, summary)
		}
		return submittedMsg{Summary: summary, SaveErr: saveErr}
	}
}

func (s *QuizScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	if msg.SaveErr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not store attempt: %v\n", msg.SaveErr)
	}
	next := results.New(s.assessment, msg.Summary, s.attempts, s.events, s.grader)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// saveAttempt converts a summary into an attempt record and stores it.
func saveAttempt(ctx context.Context, attempts store.AttemptRepo, a *assessment.Assessment, summary *grading.SubmissionSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	rec := &store.AttemptRecord{
		AttemptID:      summary.ID,
		FingerprintKey: assessment.NewFingerprint(a).Key(),
		Title:          a.Meta.Title,
		QuestionCount:  len(summary.Results),
		Summary:        raw,
		StartedAt:      summary.StartedAt,
		CompletedAt:    summary.CompletedAt,
		Percentage:     summary.DeterministicPercentage,
		PendingCount:   summary.PendingSubjectiveCount,
		AutoSubmitted:  summary.AutoSubmitted,
	}
	return attempts.Save(ctx, rec)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
