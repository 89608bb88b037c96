package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
)

// lowOverlapPercent flags summaries that share few terms with their input.
const lowOverlapPercent = 20

// MarkdownWriter outputs reports as GitHub-flavored Markdown.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(r *Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Summary Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Provider", "`" + r.Provider + "`"},
			{"Accuracy", r.AccuracyLabel},
			{"Length bounds", strconv.Itoa(r.MinLength) + " to " + strconv.Itoa(r.MaxLength)},
			{"Duration", (time.Duration(r.DurationMS) * time.Millisecond).String()},
			{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	if r.Accuracy < lowOverlapPercent {
		md.Warningf("Low lexical overlap (%.2f%%). The summary shares few terms with the input.", r.Accuracy)
	} else {
		md.Note("Accuracy is the TF-IDF cosine similarity between the input and the summary.")
	}
	md.PlainText("")

	md.H2("Summary")
	md.PlainText("")
	md.PlainText(r.Summary)
	md.PlainText("")

	if r.Input != "" {
		md.Details("Input text", r.Input)
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}
