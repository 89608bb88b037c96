package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"textsum/internal/utils/text"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAI summarizes through the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI backend. baseURL may be empty to use the public API.
func NewOpenAI(apiKey, baseURL, model string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Summarize implements Summarizer. Every returned choice becomes a candidate.
func (o *OpenAI) Summarize(ctx context.Context, req Request) ([]Candidate, error) {
	requestID := callID(ctx)

	input, truncated := text.Truncate(req.Text, maxPromptRunes)
	if truncated {
		slog.WarnContext(ctx, "text truncated for openai api",
			slog.String("request_id", requestID),
			slog.Int("original_length", text.CountRunes(req.Text)),
			slog.Int("truncated_length", maxPromptRunes))
	}

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.String("provider", "openai"),
		slog.String("model", o.model),
		slog.Int("input_length", text.CountRunes(input)),
		slog.Int("max_length", req.MaxLength))

	chatReq := openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: req.MaxLength,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildPrompt(req, input),
		}},
	}
	if req.Deterministic {
		// A zero temperature is dropped by omitempty and the API default (1) applies.
		chatReq.Temperature = math.SmallestNonzeroFloat32
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	duration := time.Since(start)
	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("openai api error: %w", asHTTPError(err))
	}

	candidates := make([]Candidate, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		summary := strings.TrimSpace(choice.Message.Content)
		if summary == "" {
			continue
		}
		candidates = append(candidates, Candidate{SummaryText: summary})
	}

	slog.InfoContext(ctx, "Summarization completed",
		slog.String("request_id", requestID),
		slog.Int("candidates", len(candidates)),
		slog.Duration("duration", duration))

	return candidates, nil
}
