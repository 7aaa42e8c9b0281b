package subjective

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/soloquiz/internal/grading"
	"github.com/abhisek/soloquiz/internal/llm"
)

// Config holds grading request settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for subjective grading.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.2,
	}
}

// Service grades subjective responses with an LLM. Grade is synchronous;
// RequestGrade/ConsumeGrade provide the async variant screens poll from.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	pending *GradedResult
	ready   bool
}

// GradedResult pairs a question with its grading outcome.
type GradedResult struct {
	QuestionID string
	Feedback   *grading.Feedback
	Err        error
}

// NewService creates a subjective grading service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// ModelID returns the underlying provider's model identifier.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}

// Grade sends one response to the LLM and returns validated feedback.
func (s *Service) Grade(ctx context.Context, input GradingInput) (*grading.Feedback, error) {
	ctx = llm.WithPurpose(ctx, "subjective-grading")

	req := llm.Request{
		System: gradingSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGradingUserMessage(input)},
		},
		Schema:      FeedbackSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("subjective grading: %w", err)
	}

	fb, err := ParseFeedback(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", input.Question.ID, err)
	}
	return fb, nil
}

// RequestGrade starts async grading. Only one grade is in-flight at a
// time — new requests replace pending ones.
func (s *Service) RequestGrade(ctx context.Context, input GradingInput) {
	go func() {
		fb, err := s.Grade(ctx, input)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending = &GradedResult{QuestionID: input.Question.ID, Feedback: fb, Err: err}
		s.ready = true
	}()
}

// ConsumeGrade returns the pending result if one is ready.
// Returns (nil, false) if grading is still in flight.
func (s *Service) ConsumeGrade() (*GradedResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	res := s.pending
	s.pending = nil
	s.ready = false
	return res, true
}

// ParseFeedback decodes a feedback JSON document. Structural problems are
// reported here; range and rubric-title validation happens when the
// feedback is applied to a result.
func ParseFeedback(raw []byte) (*grading.Feedback, error) {
	var fb grading.Feedback
	if err := json.Unmarshal(raw, &fb); err != nil {
		return nil, fmt.Errorf("parse feedback: %w", err)
	}
	if !fb.Verdict.Valid() {
		return nil, fmt.Errorf("parse feedback: unknown verdict %q", fb.Verdict)
	}
	return &fb, nil
}
