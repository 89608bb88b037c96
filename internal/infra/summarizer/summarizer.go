// Package summarizer provides abstractive summarization backends.
// The default backend calls a Hugging Face hosted seq2seq model (facebook/bart-large-cnn);
// OpenAI, Claude and Gemini adapters are available as alternatives. Every backend is
// wrapped by Resilient, which adds a timeout, retry, a circuit breaker and metrics.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"textsum/internal/handler/http/requestid"

	"github.com/google/uuid"
)

// Summarizer produces candidate summaries for a piece of text.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) ([]Candidate, error)
}

// Request describes one summarization call. Lengths are in model tokens.
type Request struct {
	Text          string
	MaxLength     int
	MinLength     int
	Deterministic bool
}

// Candidate is a single generated summary.
type Candidate struct {
	SummaryText string `json:"summary_text"`
}

var (
	// ErrNoCandidates is returned when a backend answers without any summary.
	ErrNoCandidates = errors.New("summarizer returned no candidates")

	// ErrCircuitOpen is returned while the provider's circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("summarizer unavailable: circuit breaker open")
)

// First returns the text of the first candidate.
func First(candidates []Candidate) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	return candidates[0].SummaryText, nil
}

// maxPromptRunes bounds the text embedded in chat prompts.
const maxPromptRunes = 10000

// buildPrompt renders the instruction sent to chat-style models.
func buildPrompt(req Request, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the following text. The summary must be between %d and %d tokens long. ",
		req.MinLength, req.MaxLength)
	b.WriteString("Reply with the summary only, without any preamble.\n\n")
	b.WriteString(text)
	return b.String()
}

// callID returns the HTTP request ID carried by ctx, or a fresh UUID.
func callID(ctx context.Context) string {
	if id := requestid.FromContext(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}

// SummarizerFunc adapts a function to the Summarizer interface.
type SummarizerFunc func(ctx context.Context, req Request) ([]Candidate, error)

// Summarize implements Summarizer.
func (f SummarizerFunc) Summarize(ctx context.Context, req Request) ([]Candidate, error) {
	return f(ctx, req)
}
