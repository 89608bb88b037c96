package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"textsum/internal/resilience/retry"
	"textsum/internal/utils/text"
)

// DefaultHuggingFaceModel is the pretrained CNN/DailyMail summarization model.
const DefaultHuggingFaceModel = "facebook/bart-large-cnn"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4 << 10

// HuggingFace calls the Hugging Face Inference API summarization task.
type HuggingFace struct {
	client   *http.Client
	endpoint string
	model    string
	token    string
}

// NewHuggingFace creates a client for endpoint/model. token may be empty for public models.
// A nil client uses http.DefaultClient.
func NewHuggingFace(client *http.Client, endpoint, model, token string) *HuggingFace {
	if client == nil {
		client = http.DefaultClient
	}
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	return &HuggingFace{
		client:   client,
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		token:    token,
	}
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfError struct {
	Error string `json:"error"`
}

// Summarize implements Summarizer.
func (h *HuggingFace) Summarize(ctx context.Context, req Request) ([]Candidate, error) {
	requestID := callID(ctx)

	body, err := json.Marshal(hfRequest{
		Inputs: req.Text,
		Parameters: hfParameters{
			MaxLength: req.MaxLength,
			MinLength: req.MinLength,
			DoSample:  !req.Deterministic,
		},
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("encode huggingface request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint+"/"+h.model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build huggingface request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if h.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.token)
	}

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.String("provider", "huggingface"),
		slog.String("model", h.model),
		slog.Int("input_length", text.CountRunes(req.Text)),
		slog.Int("max_length", req.MaxLength),
		slog.Int("min_length", req.MinLength))

	start := time.Now()
	resp, err := h.client.Do(httpReq)
	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("huggingface api error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &retry.HTTPError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", httpErr.Message))
		return nil, fmt.Errorf("huggingface api error: %w", httpErr)
	}

	var candidates []Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("decode huggingface response: %w", err)
	}

	summaryLength := 0
	if len(candidates) > 0 {
		summaryLength = text.CountRunes(candidates[0].SummaryText)
	}
	slog.InfoContext(ctx, "Summarization completed",
		slog.String("request_id", requestID),
		slog.Int("candidates", len(candidates)),
		slog.Int("summary_length", summaryLength),
		slog.Duration("duration", time.Since(start)))

	return candidates, nil
}

// readErrorMessage extracts the "error" field of an API error body, falling back to the raw text.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return "empty response body"
	}
	var e hfError
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(raw))
}
