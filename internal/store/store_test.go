package store

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(id, fingerprint string, completed time.Time) *AttemptRecord {
	return &AttemptRecord{
		AttemptID:      id,
		FingerprintKey: fingerprint,
		Title:          "Go Basics",
		QuestionCount:  6,
		Summary:        []byte(`{"deterministicPercentage": 40}`),
		StartedAt:      completed.Add(-2 * time.Minute),
		CompletedAt:    completed,
		Percentage:     40,
		PendingCount:   1,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAttemptSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	// No attempt yet.
	rec, err := repo.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil record for unknown attempt")
	}

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.Save(ctx, testRecord("a1", "Quiz::6::q1|q2|q3", now)); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec, err = repo.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil {
		t.Fatal("expected non-nil record")
	}
	if rec.Title != "Go Basics" || rec.QuestionCount != 6 || rec.Percentage != 40 {
		t.Errorf("record = %+v", rec)
	}
	if string(rec.Summary) == "" {
		t.Error("summary JSON not round-tripped")
	}
}

func TestAttemptListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("a%d", i+1)
		if err := repo.Save(ctx, testRecord(id, "fp", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	recs, err := repo.List(ctx, "fp", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("listed %d attempts, want 3", len(recs))
	}
	if recs[0].AttemptID != "a3" || recs[2].AttemptID != "a1" {
		t.Errorf("order = [%s %s %s], want newest first", recs[0].AttemptID, recs[1].AttemptID, recs[2].AttemptID)
	}
}

func TestAttemptListFiltersByFingerprint(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	if err := repo.Save(ctx, testRecord("a1", "fp-one", base)); err != nil {
		t.Fatalf("save a1: %v", err)
	}
	if err := repo.Save(ctx, testRecord("a2", "fp-two", base.Add(time.Minute))); err != nil {
		t.Fatalf("save a2: %v", err)
	}

	recs, err := repo.List(ctx, "fp-one", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 || recs[0].AttemptID != "a1" {
		t.Errorf("filtered list = %+v, want just a1", recs)
	}

	all, err := repo.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered list has %d attempts, want 2", len(all))
	}
}

func TestAttemptSavePrunesOldest(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < MaxStoredAttempts+3; i++ {
		id := fmt.Sprintf("a%d", i+1)
		if err := repo.Save(ctx, testRecord(id, "fp", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	recs, err := repo.List(ctx, "fp", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != MaxStoredAttempts {
		t.Fatalf("remaining attempts = %d, want %d", len(recs), MaxStoredAttempts)
	}

	// The oldest three are gone, the newest survives.
	if rec, _ := repo.Get(ctx, "a1"); rec != nil {
		t.Error("expected a1 to be pruned")
	}
	if rec, _ := repo.Get(ctx, fmt.Sprintf("a%d", MaxStoredAttempts+3)); rec == nil {
		t.Error("expected newest attempt to survive pruning")
	}
}

func TestAttemptUpdate(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.Save(ctx, testRecord("a1", "fp", now)); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec := testRecord("a1", "fp", now)
	rec.Summary = []byte(`{"deterministicPercentage": 40, "graded": true}`)
	rec.PendingCount = 0
	if err := repo.Update(ctx, rec); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PendingCount != 0 {
		t.Errorf("pendingCount = %d, want 0", got.PendingCount)
	}

	if err := repo.Update(ctx, testRecord("nope", "fp", now)); err == nil {
		t.Error("expected error updating unknown attempt")
	}
}

func TestAttemptDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.Save(ctx, testRecord("a1", "fp", now)); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := repo.Delete(ctx, "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec, _ := repo.Get(ctx, "a1"); rec != nil {
		t.Error("expected attempt gone after delete")
	}

	if err := repo.Delete(ctx, "a1"); err == nil {
		t.Error("expected error deleting unknown attempt")
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestEventRepoAppend(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "subjective-grading",
		InputTokens:  10,
		OutputTokens: 20,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append llm request: %v", err)
	}

	err = repo.AppendGrading(ctx, GradingEventData{
		AttemptID:  "a1",
		QuestionID: "q6",
		Action:     "apply",
		Verdict:    "partial",
		Score:      2.5,
		Source:     "llm",
	})
	if err != nil {
		t.Fatalf("append grading: %v", err)
	}

	llmCount, err := s.Client().LLMRequestEvent.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count llm events: %v", err)
	}
	if llmCount != 1 {
		t.Errorf("llm event count = %d, want 1", llmCount)
	}

	gradingCount, err := s.Client().GradingEvent.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count grading events: %v", err)
	}
	if gradingCount != 1 {
		t.Errorf("grading event count = %d, want 1", gradingCount)
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	// Check that the attempts table exists.
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='attempts'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "attempts" {
		t.Errorf("table name = %q, want 'attempts'", name)
	}
}

func appendTestLLMEvent(t *testing.T, repo EventRepo, purpose, model string, in, out int) {
	t.Helper()
	err := repo.AppendLLMRequest(context.Background(), LLMRequestEventData{
		Provider:     "mock",
		Model:        model,
		Purpose:      purpose,
		InputTokens:  in,
		OutputTokens: out,
		LatencyMs:    100,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append llm request: %v", err)
	}
}

func TestQueryLLMEventsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendTestLLMEvent(t, repo, "subjective-grading", "m1", 10, 5)
	appendTestLLMEvent(t, repo, "subjective-grading", "m1", 20, 10)
	appendTestLLMEvent(t, repo, "subjective-grading", "m2", 30, 15)

	recs, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d events, want 3", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Sequence >= recs[i-1].Sequence {
			t.Errorf("events not newest first: seq[%d]=%d seq[%d]=%d",
				i-1, recs[i-1].Sequence, i, recs[i].Sequence)
		}
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d events with limit 2", len(limited))
	}

	// Before excludes the newest event's own sequence.
	older, err := repo.QueryLLMEvents(ctx, QueryOpts{Before: recs[0].Sequence})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(older) != 2 {
		t.Errorf("got %d events before seq %d, want 2", len(older), recs[0].Sequence)
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendTestLLMEvent(t, repo, "subjective-grading", "m1", 10, 5)

	recs, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil || len(recs) != 1 {
		t.Fatalf("query: %v (%d recs)", err, len(recs))
	}

	rec, err := repo.GetLLMEvent(ctx, recs[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil {
		t.Fatal("expected non-nil event")
	}
	if rec.Model != "m1" || rec.InputTokens != 10 {
		t.Errorf("event = %+v", rec)
	}

	missing, err := repo.GetLLMEvent(ctx, 999999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown event id")
	}
}

func TestQueryGradingEventsFiltersAndOrders(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []GradingEventData{
		{AttemptID: "a1", QuestionID: "q5", Action: "apply", Verdict: "good", Score: 4, Source: "llm"},
		{AttemptID: "a2", QuestionID: "q5", Action: "apply", Verdict: "poor", Score: 1, Source: "llm"},
		{AttemptID: "a1", QuestionID: "q5", Action: "reset", Source: "user"},
	}
	for i, e := range events {
		if err := repo.AppendGrading(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	recs, err := repo.QueryGradingEvents(ctx, "a1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d events for a1, want 2", len(recs))
	}
	if recs[0].Action != "apply" || recs[1].Action != "reset" {
		t.Errorf("events not oldest first: %q then %q", recs[0].Action, recs[1].Action)
	}
}

func TestLLMUsageAggregations(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendTestLLMEvent(t, repo, "subjective-grading", "m1", 10, 5)
	appendTestLLMEvent(t, repo, "subjective-grading", "m2", 20, 10)
	appendTestLLMEvent(t, repo, "other", "m1", 7, 3)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	stats := make(map[string]LLMUsageStat, len(byPurpose))
	for _, st := range byPurpose {
		stats[st.Purpose] = st
	}
	grading := stats["subjective-grading"]
	if grading.Calls != 2 || grading.InputTokens != 30 || grading.OutputTokens != 15 {
		t.Errorf("subjective-grading usage = %+v", grading)
	}
	if stats["other"].Calls != 1 {
		t.Errorf("other usage = %+v", stats["other"])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	models := make(map[string]LLMModelUsage, len(byModel))
	for _, m := range byModel {
		models[m.Model] = m
	}
	if models["m1"].Calls != 2 || models["m1"].InputTokens != 17 {
		t.Errorf("m1 usage = %+v", models["m1"])
	}
	if models["m2"].OutputTokens != 10 {
		t.Errorf("m2 usage = %+v", models["m2"])
	}
}
