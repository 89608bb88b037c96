package http

import (
	"log/slog"
	"net/http"
	"time"

	"textsum/internal/handler/http/middleware"
	"textsum/internal/handler/http/requestid"
	"textsum/internal/observability/tracing"
	"textsum/internal/usecase/form"
	"textsum/pkg/security/csp"
)

// Routes.
const (
	RouteForm      = "/"
	RouteSummaries = "/api/summaries"
	RouteHealth    = "/health"
	RouteLive      = "/live"
	RouteMetrics   = "/metrics"
)

// RouterConfig wires the handlers together.
type RouterConfig struct {
	Controller *form.Controller
	// Pipeline backs the JSON API. It is normally the same service the controller uses.
	Pipeline   form.Pipeline
	Summarizer SummarizerStatus
	Limiter    *SubmitLimiter
	Logger     *slog.Logger
	Version    string

	MaxRequestBytes int64
	// APITimeout bounds a JSON API submit end to end. Zero disables it.
	APITimeout time.Duration
	CSPEnabled bool
}

// NewRouter returns the application handler with the full middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	formHandler := &FormHandler{Controller: cfg.Controller, Limiter: cfg.Limiter, Logger: logger}
	api := &SummariesHandler{Pipeline: cfg.Pipeline}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+RouteForm+"{$}", formHandler.Show)
	mux.HandleFunc("POST "+RouteForm+"{$}", formHandler.Submit)
	mux.Handle("POST "+RouteSummaries, Chain(http.HandlerFunc(api.Create),
		cfg.Limiter.Limit,
		Timeout(cfg.APITimeout),
	))
	mux.Handle("GET "+RouteHealth, &HealthHandler{Summarizer: cfg.Summarizer, Version: cfg.Version})
	mux.Handle("GET "+RouteLive, &LiveHandler{})
	mux.Handle("GET "+RouteMetrics, MetricsHandler())

	headers := middleware.NewCSPMiddleware(middleware.CSPMiddlewareConfig{
		Enabled:       cfg.CSPEnabled,
		DefaultPolicy: csp.FormPolicy(),
		PathPolicies: map[string]*csp.CSPBuilder{
			"/api/":      csp.APIPolicy(),
			RouteHealth:  csp.APIPolicy(),
			RouteLive:    csp.APIPolicy(),
			RouteMetrics: csp.APIPolicy(),
		},
	})

	mws := []Middleware{
		requestid.Middleware,
		tracing.Middleware,
		Logging(logger),
		Recover(logger),
		MetricsMiddleware,
		headers.Middleware(),
	}
	if cfg.MaxRequestBytes > 0 {
		mws = append(mws, LimitRequestBody(cfg.MaxRequestBytes))
	}
	return Chain(mux, mws...)
}
