// Package metrics provides centralized Prometheus metrics for textsum.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
			// Submits wait on a model call, so the buckets reach a minute.
			Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)
)

// Submission metrics track the summarize-and-score workflow
var (
	// SubmissionsTotal counts submits by outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textsum_submissions_total",
			Help: "Total number of summarize submissions by outcome",
		},
		[]string{"outcome"},
	)

	// SubmissionDuration measures a whole submit: model call plus scoring
	SubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textsum_submission_duration_seconds",
			Help:    "Time taken to summarize and score one input",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
	)

	// AccuracyScore records the lexical accuracy percentage of each summary
	AccuracyScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textsum_accuracy_percent",
			Help:    "TF-IDF cosine similarity between input and summary, in percent",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	// InputLength records input sizes in runes
	InputLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textsum_input_length_runes",
			Help:    "Length of submitted text in Unicode code points",
			Buckets: prometheus.ExponentialBuckets(32, 4, 8),
		},
	)
)

// Submission outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeEmptyInput  = "empty_input"
	OutcomeFailure     = "failure"
	OutcomeRateLimited = "rate_limited"
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
