// Package metrics holds the Prometheus collectors exposed on /metrics:
// HTTP request metrics and submission metrics (outcomes, durations,
// accuracy distribution and input sizes). Summarizer backend metrics
// live with the summarizer package.
//
//	start := time.Now()
//	result, err := svc.Summarize(ctx, input)
//	metrics.RecordSubmission(metrics.OutcomeSuccess, time.Since(start))
//	metrics.RecordAccuracy(float64(result.Score))
package metrics
