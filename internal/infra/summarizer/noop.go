package summarizer

import (
	"context"
	"strings"
)

// NoOp is an offline summarizer for development and tests.
// It returns the leading words of the input, at most MaxLength of them.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize implements Summarizer.
func (n *NoOp) Summarize(_ context.Context, req Request) ([]Candidate, error) {
	words := strings.Fields(req.Text)
	if req.MaxLength > 0 && len(words) > req.MaxLength {
		words = words[:req.MaxLength]
	}
	summary := strings.Join(words, " ")
	if summary == "" {
		return nil, nil
	}
	return []Candidate{{SummaryText: summary}}, nil
}
