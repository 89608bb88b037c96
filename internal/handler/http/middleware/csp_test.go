package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"textsum/pkg/security/csp"
)

func serveCSP(t *testing.T, cfg CSPMiddlewareConfig, path string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewCSPMiddleware(cfg).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCSPMiddleware_Disabled(t *testing.T) {
	rec := serveCSP(t, CSPMiddlewareConfig{
		Enabled:       false,
		DefaultPolicy: csp.FormPolicy(),
	}, "/")

	assert.Empty(t, rec.Header().Get(csp.HeaderEnforce))
	assert.Empty(t, rec.Header().Get(csp.HeaderReportOnly))
	assert.Empty(t, rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSPMiddleware_DefaultPolicy(t *testing.T) {
	rec := serveCSP(t, CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.FormPolicy(),
	}, "/")

	assert.Equal(t, csp.FormPolicy().Build(), rec.Header().Get(csp.HeaderEnforce))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestCSPMiddleware_PathPolicies(t *testing.T) {
	cfg := CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.FormPolicy(),
		PathPolicies: map[string]*csp.CSPBuilder{
			"/api/":      csp.APIPolicy(),
			"/api/admin": csp.NewCSPBuilder().DefaultSrc("'self'"),
		},
	}

	tests := []struct {
		path string
		want string
	}{
		{"/", csp.FormPolicy().Build()},
		{"/health", csp.FormPolicy().Build()},
		{"/api/summaries", csp.APIPolicy().Build()},
		{"/api/admin/x", "default-src 'self'"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serveCSP(t, cfg, tt.path)
			assert.Equal(t, tt.want, rec.Header().Get(csp.HeaderEnforce))
		})
	}
}

func TestCSPMiddleware_ReportOnly(t *testing.T) {
	rec := serveCSP(t, CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.FormPolicy(),
		ReportOnly:    true,
	}, "/")

	assert.Empty(t, rec.Header().Get(csp.HeaderEnforce))
	assert.NotEmpty(t, rec.Header().Get(csp.HeaderReportOnly))
}

func TestCSPMiddleware_NoPolicy(t *testing.T) {
	rec := serveCSP(t, CSPMiddlewareConfig{Enabled: true}, "/")

	assert.Empty(t, rec.Header().Get(csp.HeaderEnforce))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestCSPMiddleware_Concurrent(t *testing.T) {
	h := NewCSPMiddleware(CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.FormPolicy(),
		PathPolicies:  map[string]*csp.CSPBuilder{"/api/": csp.APIPolicy()},
	}).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := "/"
			if i%2 == 0 {
				path = "/api/summaries"
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.NotEmpty(t, rec.Header().Get(csp.HeaderEnforce))
		}(i)
	}
	wg.Wait()
}
