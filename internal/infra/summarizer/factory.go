package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"textsum/internal/config"
	"textsum/internal/resilience/circuitbreaker"
	"textsum/internal/resilience/retry"
)

// New builds the configured backend wrapped in Resilient.
// The result is meant to be created once and shared for the process lifetime;
// Close releases it.
func New(ctx context.Context, cfg config.SummarizerConfig, metrics MetricsRecorder) (*Resilient, error) {
	var backend Summarizer
	switch cfg.Provider {
	case config.ProviderHuggingFace:
		backend = NewHuggingFace(&http.Client{Timeout: cfg.Timeout}, cfg.HuggingFace.Endpoint, cfg.Model, cfg.HuggingFace.Token)
	case config.ProviderOpenAI:
		backend = NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.Model)
	case config.ProviderClaude:
		backend = NewClaude(cfg.Claude.APIKey, cfg.Claude.BaseURL, cfg.Model)
	case config.ProviderGemini:
		g, err := NewGemini(ctx, cfg.Gemini.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		backend = g
	case config.ProviderNoop:
		backend = NewNoOp()
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Provider)
	}

	cb := circuitbreaker.DefaultConfig(cfg.Provider + "-api")
	if v := cfg.CircuitBreaker.MaxRequests; v > 0 {
		cb.MaxRequests = v
	}
	if v := cfg.CircuitBreaker.Interval; v > 0 {
		cb.Interval = v
	}
	if v := cfg.CircuitBreaker.Timeout; v > 0 {
		cb.Timeout = v
	}
	if v := cfg.CircuitBreaker.FailureThreshold; v > 0 {
		cb.FailureThreshold = v
	}
	if v := cfg.CircuitBreaker.MinRequests; v > 0 {
		cb.MinRequests = v
	}

	slog.Info("Initialized summarizer",
		slog.String("provider", cfg.Provider),
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout),
		slog.Int("retry_attempts", cfg.RetryAttempts))

	return NewResilient(cfg.Provider, backend, ResilientOptions{
		Timeout:        cfg.Timeout,
		CircuitBreaker: cb,
		Retry:          retry.SummarizerConfig(cfg.RetryAttempts),
		Metrics:        metrics,
	}), nil
}
