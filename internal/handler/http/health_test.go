package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		summarizer     SummarizerStatus
		expectedStatus int
		expectedHealth string
		expectedCheck  string
	}{
		{
			name:           "circuit closed",
			summarizer:     &stubSummarizer{state: "closed"},
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedCheck:  "healthy",
		},
		{
			name:           "circuit half-open",
			summarizer:     &stubSummarizer{state: "half-open"},
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedCheck:  "degraded",
		},
		{
			name:           "circuit open",
			summarizer:     &stubSummarizer{state: "open"},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
			expectedCheck:  "unhealthy",
		},
		{
			name:           "not configured",
			summarizer:     nil,
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
			expectedCheck:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
			handler := &HealthHandler{
				Summarizer: tt.summarizer,
				Version:    "test-version",
				now:        func() time.Time { return fixed },
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedHealth, resp.Status)
			assert.Equal(t, "test-version", resp.Version)
			assert.Equal(t, "2026-01-02T03:04:05Z", resp.Timestamp)
			assert.Equal(t, tt.expectedCheck, resp.Checks["summarizer"].Status)
		})
	}
}

func TestHealthHandler_Details(t *testing.T) {
	handler := &HealthHandler{Summarizer: &stubSummarizer{}}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	details := resp.Checks["summarizer"].Details
	assert.Equal(t, "stub", details["provider"])
	assert.Equal(t, "closed", details["circuit_breaker"])
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "alive", rec.Body.String())
}
