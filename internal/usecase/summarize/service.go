// Package summarize implements the summarize-and-score pipeline shared by the
// HTML form, the JSON API and the CLI.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"textsum/internal/domain/entity"
	"textsum/internal/infra/summarizer"
	"textsum/internal/observability/logging"
	"textsum/internal/observability/metrics"
	"textsum/internal/observability/tracing"
	"textsum/internal/textsim"
	"textsum/internal/utils/text"
)

// providerNamer is implemented by summarizers that know their backend name.
type providerNamer interface {
	Provider() string
}

// Service runs one submission: validate, derive bounds, summarize, score.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	Summarizer summarizer.Summarizer
	provider   string
}

// NewService creates a Service around s.
func NewService(s summarizer.Summarizer) *Service {
	provider := "custom"
	if p, ok := s.(providerNamer); ok {
		provider = p.Provider()
	}
	return &Service{Summarizer: s, provider: provider}
}

// Provider returns the name of the summarization backend.
func (s *Service) Provider() string {
	return s.provider
}

// Summarize summarizes raw and scores the summary against the trimmed input.
// Empty input returns an error wrapping entity.ErrEmptyInput without calling
// the summarizer.
func (s *Service) Summarize(ctx context.Context, raw string) (*entity.Summary, error) {
	ctx, span := tracing.StartSpan(ctx, "summarize.submit")
	defer span.End()
	logger := logging.WithRequestID(ctx, logging.FromContext(ctx))

	input, err := entity.NormalizeInput(raw)
	if err != nil {
		metrics.RecordSubmission(metrics.OutcomeEmptyInput, 0)
		tracing.RecordError(span, err)
		return nil, err
	}

	bounds := entity.NewSummaryBounds(input)
	inputLength := text.CountRunes(input)
	metrics.RecordInputLength(inputLength)
	span.SetAttributes(
		attribute.Int("input_length", inputLength),
		attribute.Int("max_length", bounds.MaxLength),
		attribute.Int("min_length", bounds.MinLength),
		attribute.String("provider", s.provider),
	)

	start := time.Now()
	summary, score, err := s.run(ctx, input, bounds)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordSubmission(metrics.OutcomeFailure, duration)
		tracing.RecordError(span, err)
		logger.Warn("submission failed",
			slog.String("provider", s.provider),
			slog.Int("input_length", inputLength),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, err
	}

	metrics.RecordSubmission(metrics.OutcomeSuccess, duration)
	metrics.RecordAccuracy(float64(score))
	logger.Info("submission completed",
		slog.String("provider", s.provider),
		slog.Int("input_length", inputLength),
		slog.Int("summary_length", text.CountRunes(summary)),
		slog.Int("max_length", bounds.MaxLength),
		slog.Float64("accuracy", float64(score)),
		slog.Duration("duration", duration))

	return &entity.Summary{
		Input:    input,
		Text:     summary,
		Score:    score,
		Bounds:   bounds,
		Provider: s.provider,
		Duration: duration,
	}, nil
}

func (s *Service) run(ctx context.Context, input string, bounds entity.SummaryBounds) (string, entity.AccuracyScore, error) {
	modelCtx, modelSpan := tracing.StartSpan(ctx, "summarize.model")
	candidates, err := s.Summarizer.Summarize(modelCtx, summarizer.Request{
		Text:          input,
		MaxLength:     bounds.MaxLength,
		MinLength:     bounds.MinLength,
		Deterministic: true,
	})
	if err == nil {
		modelSpan.SetAttributes(attribute.Int("candidates", len(candidates)))
	}
	tracing.RecordError(modelSpan, err)
	modelSpan.End()
	if err != nil {
		return "", 0, fmt.Errorf("summarize: %w", err)
	}

	summary, err := summarizer.First(candidates)
	if err != nil {
		return "", 0, fmt.Errorf("summarize: %w", err)
	}

	_, scoreSpan := tracing.StartSpan(ctx, "summarize.accuracy")
	defer scoreSpan.End()
	similarity, err := textsim.Similarity(input, summary)
	if err != nil {
		tracing.RecordError(scoreSpan, err)
		return "", 0, fmt.Errorf("score summary: %w", err)
	}
	score, err := entity.NewAccuracyScore(similarity)
	if err != nil {
		tracing.RecordError(scoreSpan, err)
		return "", 0, fmt.Errorf("score summary: %w", err)
	}
	scoreSpan.SetAttributes(attribute.Float64("accuracy", float64(score)))
	return summary, score, nil
}
