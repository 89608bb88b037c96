// Package app assembles the summarization pipeline and the HTTP server from
// configuration. Both the API binary and the CLI's serve command use it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"textsum/internal/config"
	hhttp "textsum/internal/handler/http"
	"textsum/internal/infra/summarizer"
	"textsum/internal/usecase/form"
	"textsum/internal/usecase/summarize"
)

// App holds the long-lived components. The summarizer is built once and
// shared by every request for the lifetime of the process.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Version    string
	Summarizer *summarizer.Resilient
	Service    *summarize.Service
	Controller *form.Controller
	Limiter    *hhttp.SubmitLimiter
}

// New builds the summarizer, the pipeline and the form controller.
// Close releases the summarizer.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s, err := summarizer.New(ctx, cfg.Summarizer, nil)
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}
	svc := summarize.NewService(s)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Version:    version,
		Summarizer: s,
		Service:    svc,
		Controller: form.NewController(svc),
		Limiter: hhttp.NewSubmitLimiter(hhttp.SubmitLimiterConfig{
			Rate:              cfg.Server.SubmitRatePerSecond,
			Burst:             cfg.Server.SubmitBurst,
			TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
		}),
	}, nil
}

// Close releases the summarizer backend.
func (a *App) Close() error {
	return a.Summarizer.Close()
}

// APITimeout is the end-to-end budget of one API submit: every attempt at the
// full summarizer timeout plus the longest backoff between attempts, with a
// few seconds for scoring and encoding.
func APITimeout(cfg config.SummarizerConfig) time.Duration {
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return time.Duration(attempts)*cfg.Timeout + time.Duration(attempts-1)*10*time.Second + 5*time.Second
}

// Handler returns the HTTP handler with every route and middleware.
func (a *App) Handler() http.Handler {
	return hhttp.NewRouter(hhttp.RouterConfig{
		Controller:      a.Controller,
		Pipeline:        a.Service,
		Summarizer:      a.Summarizer,
		Limiter:         a.Limiter,
		Logger:          a.Logger,
		Version:         a.Version,
		MaxRequestBytes: a.Config.Server.MaxRequestBytes,
		APITimeout:      APITimeout(a.Config.Summarizer),
		CSPEnabled:      true,
	})
}

// Serve listens on the configured address until ctx is canceled.
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Config.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.Config.Server.Addr, err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is canceled, then shuts down gracefully
// within the configured shutdown timeout.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	writeTimeout := APITimeout(a.Config.Summarizer) + 10*time.Second
	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server starting",
			slog.String("addr", ln.Addr().String()),
			slog.String("version", a.Version))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		a.Logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
