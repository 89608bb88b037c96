// Package form holds the state of the summarization form: the input area,
// the read-only output area, the accuracy label and the last dialog shown.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"textsum/internal/domain/entity"
	"textsum/pkg/security/redact"
)

// DialogKind classifies a blocking message shown to the user.
type DialogKind string

const (
	DialogWarning DialogKind = "warning"
	DialogError   DialogKind = "error"
)

// Dialog titles and message formats.
const (
	WarningTitle       = "Input Error"
	ErrorTitle         = "Error"
	errorMessagePrefix = "An error occurred: "
)

// Dialog is a blocking message raised by a submit.
type Dialog struct {
	Kind    DialogKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

// State is a snapshot of the form.
type State struct {
	Input         string        `json:"input"`
	Output        string        `json:"output"`
	AccuracyLabel string        `json:"accuracy_label"`
	Provider      string        `json:"provider,omitempty"`
	Duration      time.Duration `json:"duration,omitempty"`
	// Dialog is set when the latest submit raised one.
	Dialog *Dialog `json:"dialog,omitempty"`
}

// Pipeline is the summarize-and-score step behind the form.
type Pipeline interface {
	Summarize(ctx context.Context, raw string) (*entity.Summary, error)
}

// Result is the outcome of one Submit.
type Result struct {
	State State
	// Summary is nil unless the submit succeeded.
	Summary *entity.Summary
}

// Controller owns the form state. Submits are serialized: one runs to
// completion before the next starts.
type Controller struct {
	pipeline Pipeline

	submitMu sync.Mutex // serializes Submit
	mu       sync.RWMutex
	state    State
}

// NewController returns a controller with an empty form.
func NewController(p Pipeline) *Controller {
	return &Controller{
		pipeline: p,
		state:    State{AccuracyLabel: entity.AccuracyNotAvailable},
	}
}

// State returns a copy of the current form state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Submit runs the pipeline on raw and updates the form.
//
// On success the output and the accuracy label are replaced. On failure a
// dialog is attached and the previous output and label stay as they were;
// the returned error is the pipeline error. The input area always keeps raw.
func (c *Controller) Submit(ctx context.Context, raw string) (Result, error) {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	summary, err := c.pipeline.Summarize(ctx, raw)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Input = raw
	if err != nil {
		c.state.Dialog = DialogFor(err)
		return Result{State: c.state.clone()}, err
	}

	c.state.Output = summary.Text
	c.state.AccuracyLabel = summary.Score.Label()
	c.state.Provider = summary.Provider
	c.state.Duration = summary.Duration
	c.state.Dialog = nil
	return Result{State: c.state.clone(), Summary: summary}, nil
}

// DialogFor maps a pipeline error to the dialog the user sees.
// Empty input is a warning; anything else is an error carrying the
// failure description with credentials masked.
func DialogFor(err error) *Dialog {
	if errors.Is(err, entity.ErrEmptyInput) {
		msg := "Please enter some text to summarize."
		var ve *entity.ValidationError
		if errors.As(err, &ve) && ve.Message != "" {
			msg = ve.Message
		}
		return &Dialog{Kind: DialogWarning, Title: WarningTitle, Message: msg}
	}
	return &Dialog{Kind: DialogError, Title: ErrorTitle, Message: errorMessagePrefix + redact.Error(err)}
}

func (s State) clone() State {
	if s.Dialog != nil {
		d := *s.Dialog
		s.Dialog = &d
	}
	return s
}
