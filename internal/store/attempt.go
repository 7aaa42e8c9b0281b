package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/soloquiz/ent"
	"github.com/abhisek/soloquiz/ent/attempt"
)

// attemptRepo implements AttemptRepo using the ent client.
type attemptRepo struct {
	client *ent.Client
}

func (r *attemptRepo) Save(ctx context.Context, rec *AttemptRecord) error {
	summaryMap, err := summaryToMap(rec.Summary)
	if err != nil {
		return fmt.Errorf("decode summary: %w", err)
	}

	_, err = r.client.Attempt.Create().
		SetAttemptID(rec.AttemptID).
		SetFingerprintKey(rec.FingerprintKey).
		SetTitle(rec.Title).
		SetQuestionCount(rec.QuestionCount).
		SetSummary(summaryMap).
		SetStartedAt(rec.StartedAt).
		SetCompletedAt(rec.CompletedAt).
		SetPercentage(rec.Percentage).
		SetPendingCount(rec.PendingCount).
		SetAutoSubmitted(rec.AutoSubmitted).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}

	return r.prune(ctx, rec.FingerprintKey, MaxStoredAttempts)
}

func (r *attemptRepo) Get(ctx context.Context, attemptID string) (*AttemptRecord, error) {
	a, err := r.client.Attempt.Query().
		Where(attempt.AttemptIDEQ(attemptID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query attempt: %w", err)
	}
	return entAttemptToRecord(a)
}

func (r *attemptRepo) List(ctx context.Context, fingerprintKey string, limit int) ([]*AttemptRecord, error) {
	q := r.client.Attempt.Query().
		Order(ent.Desc(attempt.FieldCompletedAt))
	if fingerprintKey != "" {
		q = q.Where(attempt.FingerprintKeyEQ(fingerprintKey))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	attempts, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	recs := make([]*AttemptRecord, 0, len(attempts))
	for _, a := range attempts {
		rec, err := entAttemptToRecord(a)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (r *attemptRepo) Update(ctx context.Context, rec *AttemptRecord) error {
	summaryMap, err := summaryToMap(rec.Summary)
	if err != nil {
		return fmt.Errorf("decode summary: %w", err)
	}

	n, err := r.client.Attempt.Update().
		Where(attempt.AttemptIDEQ(rec.AttemptID)).
		SetSummary(summaryMap).
		SetPercentage(rec.Percentage).
		SetPendingCount(rec.PendingCount).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update attempt: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("attempt %q not found", rec.AttemptID)
	}
	return nil
}

func (r *attemptRepo) Delete(ctx context.Context, attemptID string) error {
	n, err := r.client.Attempt.Delete().
		Where(attempt.AttemptIDEQ(attemptID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete attempt: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("attempt %q not found", attemptID)
	}
	return nil
}

// prune deletes all but the keep most recent attempts of one assessment.
func (r *attemptRepo) prune(ctx context.Context, fingerprintKey string, keep int) error {
	older, err := r.client.Attempt.Query().
		Where(attempt.FingerprintKeyEQ(fingerprintKey)).
		Order(ent.Desc(attempt.FieldCompletedAt)).
		Offset(keep).
		All(ctx)
	if err != nil {
		return fmt.Errorf("query attempts for prune: %w", err)
	}
	if len(older) == 0 {
		return nil
	}

	ids := make([]int, 0, len(older))
	for _, a := range older {
		ids = append(ids, a.ID)
	}
	_, err = r.client.Attempt.Delete().
		Where(attempt.IDIn(ids...)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("prune attempts: %w", err)
	}
	return nil
}

// summaryToMap converts raw summary JSON to map[string]any for ent JSON storage.
func summaryToMap(raw []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// entAttemptToRecord converts an ent Attempt to a store AttemptRecord.
func entAttemptToRecord(a *ent.Attempt) (*AttemptRecord, error) {
	raw, err := json.Marshal(a.Summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	return &AttemptRecord{
		AttemptID:      a.AttemptID,
		FingerprintKey: a.FingerprintKey,
		Title:          a.Title,
		QuestionCount:  a.QuestionCount,
		Summary:        raw,
		StartedAt:      a.StartedAt,
		CompletedAt:    a.CompletedAt,
		Percentage:     a.Percentage,
		PendingCount:   a.PendingCount,
		AutoSubmitted:  a.AutoSubmitted,
	}, nil
}
