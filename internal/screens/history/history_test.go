package history

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soloquiz/internal/grading"
	"github.com/abhisek/soloquiz/internal/router"
	"github.com/abhisek/soloquiz/internal/screen"
	"github.com/abhisek/soloquiz/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// mockAttemptRepo implements store.AttemptRepo over a slice.
type mockAttemptRepo struct {
	records []*store.AttemptRecord
	deleted []string
}

func (m *mockAttemptRepo) Save(_ context.Context, rec *store.AttemptRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *mockAttemptRepo) Get(_ context.Context, id string) (*store.AttemptRecord, error) {
	for _, rec := range m.records {
		if rec.AttemptID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (m *mockAttemptRepo) List(_ context.Context, _ string, _ int) ([]*store.AttemptRecord, error) {
	return append([]*store.AttemptRecord(nil), m.records...), nil
}

func (m *mockAttemptRepo) Update(_ context.Context, _ *store.AttemptRecord) error {
	return nil
}

func (m *mockAttemptRepo) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	for i, rec := range m.records {
		if rec.AttemptID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			break
		}
	}
	return nil
}

func testAttemptRecord(id string) *store.AttemptRecord {
	summary := &grading.SubmissionSummary{ID: id}
	raw, _ := json.Marshal(summary)
	return &store.AttemptRecord{
		AttemptID:     id,
		Title:         "Go Basics",
		QuestionCount: 4,
		Summary:       raw,
		CompletedAt:   time.Now(),
		Percentage:    75,
	}
}

func loadedScreen(t *testing.T, repo *mockAttemptRepo) *HistoryScreen {
	t.Helper()
	s := New(repo, nil, nil)
	msg := s.Init()()
	scr, _ := s.Update(msg)
	return scr.(*HistoryScreen)
}

func TestHistoryScreen_LoadsAttempts(t *testing.T) {
	repo := &mockAttemptRepo{records: []*store.AttemptRecord{
		testAttemptRecord("attempt-1"),
		testAttemptRecord("attempt-2"),
	}}

	s := loadedScreen(t, repo)
	if !s.loaded {
		t.Fatal("expected loaded state")
	}
	if len(s.records) != 2 {
		t.Fatalf("records = %d, want 2", len(s.records))
	}
}

func TestHistoryScreen_OpenPushesResults(t *testing.T) {
	repo := &mockAttemptRepo{records: []*store.AttemptRecord{
		testAttemptRecord("attempt-1"),
	}}
	s := loadedScreen(t, repo)

	var scr screen.Screen = s
	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Errorf("navigation msg = %T, want router.PushScreenMsg", cmd())
	}
}

func TestHistoryScreen_DeleteFlow(t *testing.T) {
	repo := &mockAttemptRepo{records: []*store.AttemptRecord{
		testAttemptRecord("attempt-1"),
		testAttemptRecord("attempt-2"),
	}}
	s := loadedScreen(t, repo)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('d'))
	hs := scr.(*HistoryScreen)
	if !hs.confirmDelete {
		t.Fatal("expected delete confirmation")
	}

	// N keeps the attempt.
	scr, _ = hs.Update(keyPress('n'))
	hs = scr.(*HistoryScreen)
	if hs.confirmDelete {
		t.Fatal("expected confirmation dismissed")
	}
	if len(repo.deleted) != 0 {
		t.Fatal("nothing should be deleted yet")
	}

	// D then Y deletes and reloads.
	scr, _ = hs.Update(keyPress('d'))
	hs = scr.(*HistoryScreen)
	scr, cmd := hs.Update(keyPress('y'))
	hs = scr.(*HistoryScreen)
	if cmd == nil {
		t.Fatal("expected a delete command")
	}
	scr, cmd = hs.Update(cmd())
	hs = scr.(*HistoryScreen)
	if len(repo.deleted) != 1 || repo.deleted[0] != "attempt-1" {
		t.Errorf("deleted = %v", repo.deleted)
	}

	// The delete handler schedules a reload.
	if cmd == nil {
		t.Fatal("expected a reload command")
	}
	scr, _ = hs.Update(cmd())
	hs = scr.(*HistoryScreen)
	if len(hs.records) != 1 {
		t.Errorf("records = %d after delete, want 1", len(hs.records))
	}
}

func TestHistoryScreen_EmptyView(t *testing.T) {
	s := loadedScreen(t, &mockAttemptRepo{})
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty view for empty history")
	}
}
