// Package http serves the summarization form, the JSON API and the
// operational endpoints, together with their middleware.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// SummarizerStatus is implemented by the resilient summarizer.
type SummarizerStatus interface {
	Provider() string
	CircuitState() string
}

// HealthHandler reports the summarizer backend and its circuit breaker state.
// An open circuit means submits are being rejected, which is reported as unhealthy.
type HealthHandler struct {
	Summarizer SummarizerStatus
	Version    string
	now        func() time.Time
}

// ServeHTTP returns 200 when healthy and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := map[string]CheckStatus{
		"summarizer": h.checkSummarizer(),
	}

	status := "healthy"
	statusCode := http.StatusOK
	for _, c := range checks {
		if c.Status == "unhealthy" {
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
		}
	}

	now := time.Now
	if h.now != nil {
		now = h.now
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}); err != nil {
		slog.Warn("health: failed to encode response", slog.Any("error", err))
	}
}

func (h *HealthHandler) checkSummarizer() CheckStatus {
	if h.Summarizer == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}

	state := h.Summarizer.CircuitState()
	details := map[string]any{
		"provider":        h.Summarizer.Provider(),
		"circuit_breaker": state,
	}

	switch state {
	case "open":
		return CheckStatus{Status: "unhealthy", Message: "circuit breaker open", Details: details}
	case "half-open":
		return CheckStatus{Status: "degraded", Message: "circuit breaker probing", Details: details}
	default:
		return CheckStatus{Status: "healthy", Details: details}
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Warn("alive: failed to write response", slog.Any("error", err))
	}
}
