package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"textsum/internal/app"
	"textsum/internal/observability/tracing"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the summarization form and JSON API over HTTP",
		Long: `Serve starts the HTTP server:

  GET  /               the summarization form
  POST /               submit the form
  POST /api/summaries  JSON API, body {"text": "..."}
  GET  /health         summarizer provider and circuit breaker state
  GET  /live           liveness probe
  GET  /metrics        Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides HTTP_ADDR)")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	logger := newLogger(cmd, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	shutdownTracing := tracing.Setup()
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("failed to stop tracer provider", slog.Any("error", err))
		}
	}()

	a, err := app.New(cmd.Context(), cfg, logger, getVersion())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return a.Serve(cmd.Context())
}
