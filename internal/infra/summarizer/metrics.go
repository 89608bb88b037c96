package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Call outcomes recorded by MetricsRecorder.RecordCall.
const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeCircuitOpen = "circuit_open"
	OutcomeEmpty       = "empty"
	OutcomeCanceled    = "canceled"
)

// MetricsRecorder records per-provider summarizer metrics.
// Tests inject a fake recorder instead of touching the Prometheus registry.
type MetricsRecorder interface {
	// RecordCall counts one call by provider and outcome.
	RecordCall(provider, outcome string)

	// RecordDuration records the wall time of one call, including retries.
	RecordDuration(provider string, duration time.Duration)

	// RecordLength records the length of a returned summary in runes.
	RecordLength(provider string, length int)
}

// PrometheusMetrics implements MetricsRecorder on the default Prometheus registry.
type PrometheusMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	length   *prometheus.HistogramVec
}

var (
	prometheusMetricsInstance *PrometheusMetrics
	prometheusMetricsOnce     sync.Once
)

func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		return promauto.NewHistogramVec(opts, labels)
	}
	return h
}

// NewPrometheusMetrics returns the process-wide recorder, registering it on first use.
func NewPrometheusMetrics() *PrometheusMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusMetrics{
			calls: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "summarizer_calls_total",
				Help: "Total number of summarizer calls by provider and outcome",
			}, []string{"provider", "outcome"}),
			duration: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "summarizer_call_duration_seconds",
				Help:    "Time taken by a summarizer call, retries included",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			}, []string{"provider"}),
			length: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "summarizer_summary_length_runes",
				Help:    "Distribution of generated summary lengths in runes",
				Buckets: []float64{25, 50, 100, 200, 400, 800, 1600},
			}, []string{"provider"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordCall implements MetricsRecorder.
func (p *PrometheusMetrics) RecordCall(provider, outcome string) {
	p.calls.WithLabelValues(provider, outcome).Inc()
}

// RecordDuration implements MetricsRecorder.
func (p *PrometheusMetrics) RecordDuration(provider string, duration time.Duration) {
	p.duration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordLength implements MetricsRecorder.
func (p *PrometheusMetrics) RecordLength(provider string, length int) {
	p.length.WithLabelValues(provider).Observe(float64(length))
}
