package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"textsum/internal/resilience/retry"
	"textsum/internal/utils/text"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// Gemini summarizes through the Google Generative Language API.
// The client is opened once and reused for every call.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini opens a Gemini client. Extra client options are appended after the API key.
// Close releases the client.
func NewGemini(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultGeminiModel
	}
	cl, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: cl, model: model}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Summarize implements Summarizer. Each response candidate with text becomes a Candidate.
func (g *Gemini) Summarize(ctx context.Context, req Request) ([]Candidate, error) {
	requestID := callID(ctx)

	input, truncated := text.Truncate(req.Text, maxPromptRunes)
	if truncated {
		slog.WarnContext(ctx, "text truncated for gemini api",
			slog.String("request_id", requestID),
			slog.Int("original_length", text.CountRunes(req.Text)),
			slog.Int("truncated_length", maxPromptRunes))
	}

	m := g.client.GenerativeModel(g.model)
	m.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: ptrInt32(int32(req.MaxLength)),
	}
	if req.Deterministic {
		m.GenerationConfig.Temperature = ptrFloat32(0)
	}

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.String("provider", "gemini"),
		slog.String("model", g.model),
		slog.Int("input_length", text.CountRunes(input)),
		slog.Int("max_length", req.MaxLength))

	start := time.Now()
	resp, err := m.GenerateContent(ctx, genai.Text(buildPrompt(req, input)))
	duration := time.Since(start)
	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			err = &retry.HTTPError{StatusCode: gErr.Code, Message: gErr.Message, Err: err}
		}
		return nil, fmt.Errorf("gemini api error: %w", err)
	}

	candidates := geminiCandidates(resp)
	slog.InfoContext(ctx, "Summarization completed",
		slog.String("request_id", requestID),
		slog.Int("candidates", len(candidates)),
		slog.Duration("duration", duration))

	return candidates, nil
}

func geminiCandidates(resp *genai.GenerateContentResponse) []Candidate {
	if resp == nil {
		return nil
	}
	var out []Candidate
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, Candidate{SummaryText: s})
		}
	}
	return out
}

func ptrFloat32(v float32) *float32 { return &v }

func ptrInt32(v int32) *int32 { return &v }
