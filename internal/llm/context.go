package llm

import "context"

type contextKey struct{}

var purposeKey contextKey

// WithPurpose tags the context with a short label describing why this
// request is being made (for example "subjective-grading"). The logging
// decorator stores the label with each event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom reads the purpose label back out of the context, falling
// back to "unknown" for untagged requests.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey).(string); ok {
		return p
	}
	return "unknown"
}
