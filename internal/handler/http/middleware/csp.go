// Package middleware holds HTTP middleware that decorates responses with
// security headers.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"textsum/pkg/security/csp"
)

// CSPMiddlewareConfig holds configuration for CSP middleware.
type CSPMiddlewareConfig struct {
	// Enabled controls whether CSP headers are applied.
	Enabled bool

	// DefaultPolicy applies when no entry in PathPolicies matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to policies. The longest matching prefix wins.
	//
	//	map[string]*csp.CSPBuilder{
	//	    "/api/": csp.APIPolicy(),
	//	}
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly sends Content-Security-Policy-Report-Only instead of enforcing.
	ReportOnly bool
}

type renderedPolicy struct {
	header string
	value  string
}

// CSPMiddleware applies Content-Security-Policy headers to HTTP responses.
// Policies are rendered once at construction.
type CSPMiddleware struct {
	enabled  bool
	fallback *renderedPolicy
	prefixes map[string]*renderedPolicy
}

// NewCSPMiddleware creates a CSP middleware from config.
func NewCSPMiddleware(config CSPMiddlewareConfig) *CSPMiddleware {
	m := &CSPMiddleware{
		enabled:  config.Enabled,
		fallback: render(config.DefaultPolicy, config.ReportOnly),
		prefixes: make(map[string]*renderedPolicy, len(config.PathPolicies)),
	}
	for prefix, policy := range config.PathPolicies {
		if rp := render(policy, config.ReportOnly); rp != nil {
			m.prefixes[prefix] = rp
		}
	}
	return m
}

func render(policy *csp.CSPBuilder, reportOnly bool) *renderedPolicy {
	if policy == nil {
		return nil
	}
	if reportOnly {
		policy.ReportOnly(true)
	}
	value := policy.Build()
	if value == "" {
		return nil
	}
	return &renderedPolicy{header: policy.HeaderName(), value: value}
}

// Middleware returns an HTTP middleware handler that applies CSP headers.
// Every response also carries X-Content-Type-Options: nosniff.
func (m *CSPMiddleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.enabled {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-Content-Type-Options", "nosniff")

			if p := m.selectPolicy(r.URL.Path); p != nil {
				w.Header().Set(p.header, p.value)
				slog.Debug("CSP header applied",
					slog.String("path", r.URL.Path),
					slog.String("header", p.header),
				)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// selectPolicy returns the policy of the longest matching prefix, or the default.
func (m *CSPMiddleware) selectPolicy(path string) *renderedPolicy {
	longest := ""
	var matched *renderedPolicy
	for prefix, p := range m.prefixes {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longest) {
			longest = prefix
			matched = p
		}
	}
	if matched != nil {
		return matched
	}
	return m.fallback
}
