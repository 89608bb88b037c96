package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"textsum/internal/domain/entity"
)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Report is the printable view of one successful submission.
type Report struct {
	Summary       string    `json:"summary"`
	Accuracy      float64   `json:"accuracy"`
	AccuracyLabel string    `json:"accuracy_label"`
	MaxLength     int       `json:"max_length"`
	MinLength     int       `json:"min_length"`
	Provider      string    `json:"provider"`
	DurationMS    int64     `json:"duration_ms"`
	Input         string    `json:"input,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// New builds a Report from s. includeInput controls whether the input text is embedded.
func New(s *entity.Summary, includeInput bool, now time.Time) *Report {
	r := &Report{
		Summary:       s.Text,
		Accuracy:      float64(s.Score),
		AccuracyLabel: s.Score.Label(),
		MaxLength:     s.Bounds.MaxLength,
		MinLength:     s.Bounds.MinLength,
		Provider:      s.Provider,
		DurationMS:    s.Duration.Milliseconds(),
		GeneratedAt:   now.UTC(),
	}
	if includeInput {
		r.Input = s.Input
	}
	return r
}

// Writer outputs a report.
type Writer interface {
	// Write returns the number of bytes written.
	Write(r *Report) (int, error)
}

// NewWriter returns the writer for format.
func NewWriter(format string, out io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return NewTextWriter(out), nil
	case FormatJSON:
		return NewJSONWriter(out, WithPrettyPrint()), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(out), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want text, json or markdown)", format)
	}
}

// TextWriter prints the summary followed by the accuracy label, like the form does.
type TextWriter struct {
	output io.Writer
}

// NewTextWriter creates a TextWriter.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{output: output}
}

// Write implements Writer.
func (w *TextWriter) Write(r *Report) (int, error) {
	return fmt.Fprintf(w.output, "%s\n\n%s\n", r.Summary, r.AccuracyLabel)
}
