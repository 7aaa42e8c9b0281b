package quiz

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/abhisek/soloquiz/internal/router"
	"github.com/abhisek/soloquiz/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testAssessment() *assessment.Assessment {
	return &assessment.Assessment{
		SchemaVersion: "1",
		Meta:          assessment.Meta{Title: "Go Basics"},
		Questions: []assessment.Question{
			{
				ID: "q1", Kind: assessment.KindSingle, Weight: 1,
				Text: "Which keyword declares a variable?",
				Options: []assessment.Option{
					{ID: "a", Label: "let"},
					{ID: "b", Label: "var"},
					{ID: "c", Label: "def"},
				},
				CorrectOption: "b",
			},
			{
				ID: "q2", Kind: assessment.KindNumeric, Weight: 1,
				Text:          "How many bits in a byte?",
				CorrectNumber: 8,
			},
			{
				ID: "q3", Kind: assessment.KindOrdering, Weight: 2,
				Text:         "Order the pipeline stages.",
				Items:        []string{"parse", "compile", "link"},
				CorrectOrder: []string{"parse", "compile", "link"},
			},
		},
	}
}

func testQuizScreen() *QuizScreen {
	return New(testAssessment(), nil, nil, nil)
}

func TestQuizScreen_Title(t *testing.T) {
	s := testQuizScreen()
	if s.Title() != "Go Basics" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestQuizScreen_AdvancePastLastOpensSubmitConfirm(t *testing.T) {
	s := testQuizScreen()

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyTab))
	scr, _ = scr.Update(specialKey(tea.KeyTab))
	qs := scr.(*QuizScreen)
	if qs.index != 2 {
		t.Fatalf("index = %d after two tabs, want 2", qs.index)
	}

	scr, _ = qs.Update(specialKey(tea.KeyTab))
	qs = scr.(*QuizScreen)
	if !qs.confirmSubmit {
		t.Error("expected submit confirmation past the last question")
	}

	// N returns to the questions without submitting.
	scr, _ = qs.Update(keyPress('n'))
	qs = scr.(*QuizScreen)
	if qs.confirmSubmit || qs.submitting {
		t.Error("expected confirmation dismissed")
	}
}

func TestQuizScreen_CollectAnswers(t *testing.T) {
	s := testQuizScreen()

	// Mark option 2 on the single-choice question.
	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('2'))
	qs := scr.(*QuizScreen)

	// Type the numeric answer directly.
	qs.widgets[1].text.SetValue("8")

	answers := qs.collectAnswers()
	if got := answers["q1"].Text; got != "b" {
		t.Errorf("q1 answer = %q, want \"b\"", got)
	}
	if got := answers["q2"].Text; got != "8" {
		t.Errorf("q2 answer = %q, want \"8\"", got)
	}
	// The untouched ordering question must not appear at all.
	if _, ok := answers["q3"]; ok {
		t.Error("untouched ordering question should be unanswered")
	}

	if n := qs.answeredCount(); n != 2 {
		t.Errorf("answeredCount = %d, want 2", n)
	}
}

func TestQuizScreen_OrderingCountsOnceTouched(t *testing.T) {
	s := testQuizScreen()
	s.index = 2

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('J'))
	qs := scr.(*QuizScreen)

	answers := qs.collectAnswers()
	ans, ok := answers["q3"]
	if !ok {
		t.Fatal("expected ordering answer after rearranging")
	}
	if len(ans.List) != 3 || ans.List[0] != "compile" {
		t.Errorf("ordering answer = %v", ans.List)
	}
}

func TestQuizScreen_OrderingNavigationIsNotAnAnswer(t *testing.T) {
	s := testQuizScreen()
	s.index = 2

	// Moving the cursor without rearranging leaves the question
	// unanswered.
	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('j'))
	scr, _ = scr.Update(keyPress('k'))
	qs := scr.(*QuizScreen)

	if _, ok := qs.collectAnswers()["q3"]; ok {
		t.Fatal("cursor movement alone should not record an ordering answer")
	}
}

func TestQuizScreen_SubmitFlow(t *testing.T) {
	s := testQuizScreen()
	s.widgets[1].text.SetValue("8")

	var scr screen.Screen = s
	scr, _ = scr.Update(ctrlKey('s'))
	qs := scr.(*QuizScreen)
	if !qs.confirmSubmit {
		t.Fatal("expected submit confirmation after ctrl+s")
	}

	scr, cmd := qs.Update(keyPress('y'))
	qs = scr.(*QuizScreen)
	if !qs.submitting {
		t.Fatal("expected submitting state after confirmation")
	}
	if cmd == nil {
		t.Fatal("expected a grading command")
	}

	msg, ok := cmd().(submittedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want submittedMsg", cmd())
	}
	if msg.Summary == nil {
		t.Fatal("expected a graded summary")
	}
	if msg.Summary.DeterministicEarned != 1 {
		t.Errorf("earned = %v, want 1 (numeric correct, rest unanswered)", msg.Summary.DeterministicEarned)
	}
	if msg.SaveErr != nil {
		t.Errorf("save error without a store: %v", msg.SaveErr)
	}

	// The submitted message swaps in the results screen.
	_, cmd = qs.Update(msg)
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("navigation msg = %T, want router.ReplaceScreenMsg", cmd())
	}
}

func TestQuizScreen_TimerAutoSubmits(t *testing.T) {
	a := testAssessment()
	a.Meta.TimeLimitSec = 1
	s := New(a, nil, nil, nil)
	s.startedAt = time.Now().Add(-2 * time.Second)

	scr, cmd := s.Update(timerTickMsg(time.Now()))
	qs := scr.(*QuizScreen)
	if !qs.submitting {
		t.Fatal("expected auto-submit once the limit is exceeded")
	}
	if cmd == nil {
		t.Fatal("expected a grading command")
	}

	msg, ok := cmd().(submittedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want submittedMsg", cmd())
	}
	if !msg.Summary.AutoSubmitted {
		t.Error("expected the summary to record the auto submission")
	}
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	s := testQuizScreen()

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	qs := scr.(*QuizScreen)
	if !qs.confirmQuit {
		t.Fatal("expected quit confirmation after esc")
	}

	scr, _ = qs.Update(keyPress('n'))
	qs = scr.(*QuizScreen)
	if qs.confirmQuit {
		t.Error("expected quit confirmation dismissed")
	}

	scr, _ = qs.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Error("expected a quit command after confirmation")
	}
}

func TestQuizScreen_StatusClock(t *testing.T) {
	s := testQuizScreen()
	s.elapsed = 95 * time.Second
	if got := s.Status(); got != "1:35" {
		t.Errorf("Status = %q, want \"1:35\"", got)
	}

	a := testAssessment()
	a.Meta.TimeLimitSec = 120
	s = New(a, nil, nil, nil)
	s.elapsed = 30 * time.Second
	if got := s.Status(); got != "⏱ 1:30" {
		t.Errorf("Status = %q, want countdown \"⏱ 1:30\"", got)
	}
}
