package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction the rest of the app talks to for
// model calls. Implementations wrap one vendor SDK each; decorators add
// retry and event logging on top.
type Provider interface {
	// Generate runs one completion. When the request carries a Schema
	// the returned Content is JSON already validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier.
	ModelID() string
}

// Request is a provider-neutral completion request.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation so far. Grading requests are
	// single-turn, so this is usually one user message.
	Messages []Message

	// Schema, when set, switches the provider to its native structured
	// output mode and the response must conform to it.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0, 1]; zero means deterministic.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and describes the JSON shape expected back from the
// model. Name is kebab-case ("grading-feedback") and doubles as the
// schema/tool name on providers that want one.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the provider-neutral result of one completion.
type Response struct {
	// Content is validated JSON when the request had a Schema,
	// otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request, which may be
	// more specific than the configured alias.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is the token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
