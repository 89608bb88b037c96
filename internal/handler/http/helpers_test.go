package http

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"textsum/internal/infra/summarizer"
	"textsum/internal/usecase/form"
	"textsum/internal/usecase/summarize"
)

/* ───────── stubs ───────── */

const foxSentence = "The quick brown fox jumps over the lazy dog."

// stubSummarizer answers every call with summary or err and counts calls.
type stubSummarizer struct {
	summary string
	err     error
	calls   atomic.Int32
	state   string
}

func (s *stubSummarizer) Summarize(_ context.Context, _ summarizer.Request) ([]summarizer.Candidate, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []summarizer.Candidate{{SummaryText: s.summary}}, nil
}

func (s *stubSummarizer) Provider() string { return "stub" }

func (s *stubSummarizer) CircuitState() string {
	if s.state == "" {
		return "closed"
	}
	return s.state
}

func newPipeline(s *stubSummarizer) (*summarize.Service, *form.Controller) {
	svc := summarize.NewService(s)
	return svc, form.NewController(svc)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
