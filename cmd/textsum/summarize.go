package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"textsum/internal/app"
	"textsum/internal/observability/logging"
	"textsum/internal/report"
)

// NewSummarizeCmd creates the summarize command.
func NewSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [text...]",
		Short: "Summarize text and print the accuracy score",
		Long: `Summarize sends the text to the configured model and prints the summary
followed by its accuracy score.

Arguments are joined with spaces. With no arguments the text is read from stdin.

Examples:
  textsum summarize "The quick brown fox jumps over the lazy dog."
  cat article.txt | textsum summarize --format markdown
  textsum summarize --format json --include-input < notes.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runSummarizeCmd,
	}

	cmd.Flags().StringP("format", "f", report.FormatText, "Output format: text, json or markdown")
	cmd.Flags().Bool("include-input", false, "Include the input text in json and markdown output")

	return cmd
}

func runSummarizeCmd(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	includeInput, _ := cmd.Flags().GetBool("include-input")

	// reject a bad format before spending a model call
	w, err := report.NewWriter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, "warn", logging.FormatText)
	slog.SetDefault(logger)

	a, err := app.New(cmd.Context(), cfg, logger, getVersion())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	res, err := a.Controller.Submit(cmd.Context(), text)
	if err != nil {
		if d := res.State.Dialog; d != nil {
			return errors.New(d.Title + ": " + d.Message)
		}
		return err
	}

	if _, err := w.Write(report.New(res.Summary, includeInput, time.Now())); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// readInput joins args, or reads all of in when there are none.
func readInput(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}
