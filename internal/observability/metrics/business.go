package metrics

import "time"

// RecordSubmission counts one submit with the given outcome.
// Duration is observed only for submits that reached the summarizer.
func RecordSubmission(outcome string, duration time.Duration) {
	SubmissionsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess || outcome == OutcomeFailure {
		SubmissionDuration.Observe(duration.Seconds())
	}
}

// RecordAccuracy records the accuracy percentage of a successful submit.
func RecordAccuracy(percent float64) {
	AccuracyScore.Observe(percent)
}

// RecordInputLength records the rune length of a non-empty input.
func RecordInputLength(runes int) {
	InputLength.Observe(float64(runes))
}
