package store

import (
	"context"
	"time"
)

// MaxStoredAttempts is how many attempts are kept per assessment before
// pruning discards the oldest.
const MaxStoredAttempts = 10

// AttemptRecord is one stored quiz run. Summary holds the full submission
// summary as JSON; the remaining fields are denormalized for listings so
// callers can show history without decoding it.
type AttemptRecord struct {
	AttemptID      string
	FingerprintKey string
	Title          string
	QuestionCount  int
	Summary        []byte
	StartedAt      time.Time
	CompletedAt    time.Time
	Percentage     float64
	PendingCount   int
	AutoSubmitted  bool
}

// AttemptRepo manages stored attempts.
type AttemptRepo interface {
	// Save stores a new attempt and prunes older attempts of the same
	// assessment beyond MaxStoredAttempts.
	Save(ctx context.Context, rec *AttemptRecord) error

	// Get returns the attempt with the given id, or nil if not found.
	Get(ctx context.Context, attemptID string) (*AttemptRecord, error)

	// List returns attempts newest first. A non-empty fingerprintKey
	// restricts the listing to attempts of that assessment.
	List(ctx context.Context, fingerprintKey string, limit int) ([]*AttemptRecord, error)

	// Update replaces the stored summary and denormalized fields of an
	// existing attempt, used after subjective rescoring.
	Update(ctx context.Context, rec *AttemptRecord) error

	// Delete removes the attempt with the given id.
	Delete(ctx context.Context, attemptID string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// GradingEventData captures a grading action on a stored attempt.
type GradingEventData struct {
	AttemptID  string
	QuestionID string
	Action     string // "apply" or "reset"
	Verdict    string
	Score      float64
	Source     string // "llm", "file", or "user" for manual resets
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// GradingEventRecord is a stored grading action.
type GradingEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GradingEventData
}

// LLMUsageStat aggregates LLM usage for one purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// LLMModelUsage aggregates LLM usage for one model, for cost estimation.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendGrading records a grading action event.
	AppendGrading(ctx context.Context, data GradingEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event by row id, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// QueryGradingEvents returns the grading history of an attempt,
	// oldest first.
	QueryGradingEvents(ctx context.Context, attemptID string) ([]GradingEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per request purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
