package http

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"textsum/internal/handler/http/respond"
	"textsum/internal/observability/metrics"
)

// ErrRateLimited is returned to clients that submit faster than allowed.
var ErrRateLimited = errors.New("too many submissions, please wait and try again")

// SubmitLimiterConfig configures SubmitLimiter.
type SubmitLimiterConfig struct {
	// Rate is the sustained number of submits per second per client.
	Rate float64
	// Burst is the number of submits a client may make at once.
	Burst int
	// TrustProxyHeaders keys clients by X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that sets them.
	TrustProxyHeaders bool
	// IdleTTL is how long an unused client entry is kept.
	IdleTTL time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SubmitLimiter throttles summarization submits per client IP with a token bucket.
// Only submits go through it; rendering the form and the operational
// endpoints are never limited.
type SubmitLimiter struct {
	cfg SubmitLimiterConfig
	now func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastClean time.Time
}

// NewSubmitLimiter creates a limiter. Zero IdleTTL defaults to 10 minutes.
func NewSubmitLimiter(cfg SubmitLimiterConfig) *SubmitLimiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &SubmitLimiter{
		cfg:       cfg,
		now:       time.Now,
		clients:   make(map[string]*clientLimiter),
		lastClean: time.Now(),
	}
}

// Allow reports whether r may submit now and consumes a token if so.
func (l *SubmitLimiter) Allow(r *http.Request) bool {
	if l == nil {
		return true
	}
	key := clientIP(r, l.cfg.TrustProxyHeaders)
	now := l.now()

	l.mu.Lock()
	l.cleanupLocked(now)
	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.cfg.Rate), l.cfg.Burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	allowed := c.limiter.AllowN(now, 1)
	if !allowed {
		metrics.RecordSubmission(metrics.OutcomeRateLimited, 0)
	}
	return allowed
}

// Limit wraps next so rejected requests get a 429 JSON error.
func (l *SubmitLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r) {
			w.Header().Set("Retry-After", "1")
			respond.SafeError(w, http.StatusTooManyRequests, ErrRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cleanupLocked drops idle entries, at most once per IdleTTL.
func (l *SubmitLimiter) cleanupLocked(now time.Time) {
	if now.Sub(l.lastClean) < l.cfg.IdleTTL {
		return
	}
	l.lastClean = now
	cutoff := now.Add(-l.cfg.IdleTTL)
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

// clientIP extracts the client address. Proxy headers are honored only when trusted.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// The first X-Forwarded-For entry is the client.
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
