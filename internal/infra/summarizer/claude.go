package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"textsum/internal/utils/text"
)

// DefaultClaudeModel is used when no model is configured.
const DefaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Claude summarizes through the Anthropic Messages API.
type Claude struct {
	client anthropic.Client
	model  string
}

// NewClaude creates a Claude backend. baseURL may be empty to use the public API.
func NewClaude(apiKey, baseURL, model string) *Claude {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultClaudeModel
	}
	return &Claude{
		// Retries are handled by Resilient.
		client: anthropic.NewClient(append(opts, option.WithMaxRetries(0))...),
		model:  model,
	}
}

// Summarize implements Summarizer. Claude returns a single candidate.
func (c *Claude) Summarize(ctx context.Context, req Request) ([]Candidate, error) {
	requestID := callID(ctx)

	input, truncated := text.Truncate(req.Text, maxPromptRunes)
	if truncated {
		slog.WarnContext(ctx, "text truncated for claude api",
			slog.String("request_id", requestID),
			slog.Int("original_length", text.CountRunes(req.Text)),
			slog.Int("truncated_length", maxPromptRunes))
	}

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.String("provider", "claude"),
		slog.String("model", c.model),
		slog.Int("input_length", text.CountRunes(input)),
		slog.Int("max_length", req.MaxLength))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(req.MaxLength),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(req, input))),
		},
	}
	if req.Deterministic {
		params.Temperature = anthropic.Float(0)
	}

	start := time.Now()
	message, err := c.client.Messages.New(ctx, params)
	duration := time.Since(start)
	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("claude api error: %w", asHTTPError(err))
	}

	var b strings.Builder
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	summary := strings.TrimSpace(b.String())

	slog.InfoContext(ctx, "Summarization completed",
		slog.String("request_id", requestID),
		slog.Int("summary_length", text.CountRunes(summary)),
		slog.Duration("duration", duration))

	if summary == "" {
		return nil, nil
	}
	return []Candidate{{SummaryText: summary}}, nil
}
