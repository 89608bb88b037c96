package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"textsum/internal/resilience/circuitbreaker"
	"textsum/internal/resilience/retry"
	"textsum/internal/utils/text"
)

// Resilient wraps a backend with a per-call timeout, retry with backoff,
// a circuit breaker and metrics. It is safe for concurrent use.
type Resilient struct {
	provider       string
	next           Summarizer
	timeout        time.Duration
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	metrics        MetricsRecorder
}

// ResilientOptions configures NewResilient.
type ResilientOptions struct {
	Timeout        time.Duration
	CircuitBreaker circuitbreaker.Config
	Retry          retry.Config
	// Metrics defaults to the Prometheus recorder when nil.
	Metrics MetricsRecorder
}

// NewResilient wraps next, which is identified by provider in logs and metrics.
func NewResilient(provider string, next Summarizer, opts ResilientOptions) *Resilient {
	if opts.Metrics == nil {
		opts.Metrics = NewPrometheusMetrics()
	}
	if opts.CircuitBreaker.Name == "" {
		opts.CircuitBreaker.Name = provider + "-api"
	}
	if opts.CircuitBreaker.IsSuccessful == nil {
		opts.CircuitBreaker.IsSuccessful = backendHealthy
	}
	return &Resilient{
		provider:       provider,
		next:           next,
		timeout:        opts.Timeout,
		circuitBreaker: circuitbreaker.New(opts.CircuitBreaker),
		retryConfig:    opts.Retry,
		metrics:        opts.Metrics,
	}
}

// Provider returns the backend name, e.g. "huggingface".
func (r *Resilient) Provider() string {
	return r.provider
}

// CircuitState returns the circuit breaker state as "closed", "half-open" or "open".
func (r *Resilient) CircuitState() string {
	return r.circuitBreaker.State().String()
}

// Close releases the backend if it holds resources.
func (r *Resilient) Close() error {
	if c, ok := r.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Summarize implements Summarizer.
//
// A call the caller gave up on (its context is done) is reported as failed
// to the caller but does not count against the provider's circuit breaker.
func (r *Resilient) Summarize(ctx context.Context, req Request) ([]Candidate, error) {
	callerCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	var result []Candidate

	retryErr := retry.WithBackoff(ctx, r.retryConfig, func() error {
		candidates, err := circuitbreaker.Execute(r.circuitBreaker, func() ([]Candidate, error) {
			candidates, err := r.next.Summarize(ctx, req)
			if err != nil {
				if callerCtx.Err() != nil {
					return nil, &abandonedError{err: err}
				}
				return nil, err
			}
			if len(candidates) == 0 {
				return nil, ErrNoCandidates
			}
			return candidates, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				slog.WarnContext(ctx, "summarizer circuit breaker open, request rejected",
					slog.String("service", r.circuitBreaker.Name()),
					slog.String("state", r.CircuitState()))
				return ErrCircuitOpen
			}
			return err
		}
		result = candidates
		return nil
	})

	duration := time.Since(start)
	r.metrics.RecordDuration(r.provider, duration)

	if retryErr != nil {
		r.metrics.RecordCall(r.provider, outcomeOf(retryErr))
		return nil, fmt.Errorf("%s summarize failed: %w", r.provider, retryErr)
	}

	r.metrics.RecordCall(r.provider, OutcomeSuccess)
	r.metrics.RecordLength(r.provider, text.CountRunes(result[0].SummaryText))
	return result, nil
}

// abandonedError marks a backend error that happened after the caller's
// context was done.
type abandonedError struct {
	err error
}

func (e *abandonedError) Error() string { return e.err.Error() }

func (e *abandonedError) Unwrap() error { return e.err }

// backendHealthy is the breaker's success test: abandoned calls say nothing
// about the backend.
func backendHealthy(err error) bool {
	var abandoned *abandonedError
	return err == nil || errors.As(err, &abandoned)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrCircuitOpen):
		return OutcomeCircuitOpen
	case errors.Is(err, ErrNoCandidates):
		return OutcomeEmpty
	case errors.As(err, new(*abandonedError)):
		return OutcomeCanceled
	default:
		return OutcomeFailure
	}
}
