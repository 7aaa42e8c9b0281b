package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soloquiz/internal/screen"
)

type fakeScreen struct {
	name    string
	initRan bool
}

func (s *fakeScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *fakeScreen) View(int, int) string                    { return s.name }
func (s *fakeScreen) Title() string                           { return s.name }

func TestPushRunsInitAndDeepens(t *testing.T) {
	r := New(&fakeScreen{name: "quiz"})

	results := &fakeScreen{name: "results"}
	r.Push(results)

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "results" {
		t.Errorf("active = %q, want %q", r.Active().Title(), "results")
	}
	if !results.initRan {
		t.Error("Init did not run on pushed screen")
	}
}

func TestPopRevealsPrevious(t *testing.T) {
	r := New(&fakeScreen{name: "history"})
	r.Push(&fakeScreen{name: "results"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "history" {
		t.Errorf("active = %q, want %q", r.Active().Title(), "history")
	}
}

func TestPopOnLastScreenIsNoop(t *testing.T) {
	r := New(&fakeScreen{name: "quiz"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("Depth() = %d after bottom pop, want 1", r.Depth())
	}
}

func TestReplaceSwapsInPlace(t *testing.T) {
	r := New(&fakeScreen{name: "quiz"})

	results := &fakeScreen{name: "results"}
	r.Replace(results)

	if r.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "results" {
		t.Errorf("active = %q, want %q", r.Active().Title(), "results")
	}
	if !results.initRan {
		t.Error("Init did not run on replacement screen")
	}
}

func TestNavigationMessages(t *testing.T) {
	r := New(&fakeScreen{name: "quiz"})

	results := &fakeScreen{name: "results"}
	r.Update(ReplaceScreenMsg{Screen: results})

	if r.Active().Title() != "results" {
		t.Errorf("active = %q, want %q", r.Active().Title(), "results")
	}
	if !results.initRan {
		t.Error("Init did not run via ReplaceScreenMsg")
	}

	r.Update(PushScreenMsg{Screen: &fakeScreen{name: "detail"}})
	if r.Depth() != 2 {
		t.Errorf("Depth() = %d after push msg, want 2", r.Depth())
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("Depth() = %d after pop msg, want 1", r.Depth())
	}
}

func TestReplaceKeepsStackDepth(t *testing.T) {
	r := New(&fakeScreen{name: "history"})
	r.Push(&fakeScreen{name: "results"})
	r.Replace(&fakeScreen{name: "detail"})

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "detail" {
		t.Errorf("active = %q, want %q", r.Active().Title(), "detail")
	}
}
