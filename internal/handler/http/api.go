package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"textsum/internal/handler/http/respond"
	"textsum/internal/usecase/form"
)

// SummarizeRequest is the body of POST /api/summaries.
type SummarizeRequest struct {
	Text string `json:"text"`
}

// SummarizeResponse is the body of a successful POST /api/summaries.
type SummarizeResponse struct {
	Summary       string  `json:"summary"`
	Accuracy      float64 `json:"accuracy"`
	AccuracyLabel string  `json:"accuracy_label"`
	MaxLength     int     `json:"max_length"`
	MinLength     int     `json:"min_length"`
	Provider      string  `json:"provider"`
	DurationMS    int64   `json:"duration_ms"`
}

// dialogResponse is the body of a rejected submit. Error mirrors Dialog.Message.
type dialogResponse struct {
	Error  string       `json:"error"`
	Dialog *form.Dialog `json:"dialog"`
}

// SummariesHandler serves the JSON API over the summarize pipeline.
// It does not touch the form state.
type SummariesHandler struct {
	Pipeline form.Pipeline
}

// Create handles POST /api/summaries.
//
// 200 with the summary and score, 400 for empty input or a malformed body,
// 413 for an oversized body and 502 when summarization fails.
func (h *SummariesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			respond.SafeError(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
		case errors.Is(err, io.EOF):
			respond.SafeError(w, http.StatusBadRequest, errors.New("request body is required"))
		default:
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		}
		return
	}

	summary, err := h.Pipeline.Summarize(r.Context(), req.Text)
	if err != nil {
		d := form.DialogFor(err)
		if d.Kind == form.DialogWarning {
			respond.JSON(w, http.StatusBadRequest, dialogResponse{Error: d.Message, Dialog: d})
			return
		}
		respond.SafeError(w, http.StatusBadGateway, respond.NewAppError(http.StatusBadGateway, d.Message, err))
		return
	}

	respond.JSON(w, http.StatusOK, SummarizeResponse{
		Summary:       summary.Text,
		Accuracy:      float64(summary.Score),
		AccuracyLabel: summary.Score.Label(),
		MaxLength:     summary.Bounds.MaxLength,
		MinLength:     summary.Bounds.MinLength,
		Provider:      summary.Provider,
		DurationMS:    summary.Duration.Milliseconds(),
	})
}
