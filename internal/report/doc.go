// Package report renders a summarization result for the CLI in plain text,
// JSON or Markdown.
package report
