package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/soloquiz/internal/store"
)

type loggingProvider struct {
	inner  Provider
	events store.EventRepo
}

// WithLogging wraps a Provider so every request is appended to the event
// log, including failures.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &loggingProvider{inner: p, events: repo}
}

func (l *loggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A failed append must not fail the request itself.
	if appendErr := l.events.AppendLLMRequest(ctx, data); appendErr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record LLM request event: %v\n", appendErr)
	}

	return resp, err
}

// renderRequest flattens a request into the readable form stored in the
// event log.
func renderRequest(req Request) string {
	var b strings.Builder

	writeSection := func(tag, body string) {
		b.WriteString("[" + tag + "]\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	if req.System != "" {
		writeSection("system", req.System)
	}
	for _, m := range req.Messages {
		writeSection(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			b.WriteString("[schema: " + req.Schema.Name + "]\n")
			b.Write(def)
			b.WriteString("\n")
		}
	}

	return b.String()
}
