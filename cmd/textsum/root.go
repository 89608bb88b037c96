package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"textsum/internal/config"
	"textsum/internal/observability/logging"
)

// NewRootCmd creates the root command for textsum.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textsum",
		Short: "Summarize text and score the summary against its source",
		Long: `textsum sends text to an abstractive summarization model and reports
an accuracy score: the TF-IDF cosine similarity between the input and the
summary, as a percentage.

The provider is chosen by configuration (huggingface, openai, claude, gemini
or noop). Settings are read from a YAML file and the environment; see
SUMMARIZER_PROVIDER, HF_API_TOKEN, OPENAI_API_KEY, ANTHROPIC_API_KEY and
GEMINI_API_KEY.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to a YAML config file (default: $TEXTSUM_CONFIG or $XDG_CONFIG_HOME/textsum/config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewSummarizeCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves and loads the configuration named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.ResolvePath(path))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a logger on stderr at level, or at debug with --verbose.
func newLogger(cmd *cobra.Command, level, format string) *slog.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	return logging.New(cmd.ErrOrStderr(), level, format)
}
