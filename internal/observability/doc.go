// Package observability groups the logging, metrics and tracing support used
// by the textsum server and CLI.
//
// Subpackages:
//   - logging: slog construction and request ID propagation
//   - metrics: Prometheus HTTP and submission metrics
//   - tracing: OpenTelemetry HTTP middleware and span helpers
package observability
