// Package entity defines the domain types of a summarization submission:
// the input text, the length bounds derived from it, and the accuracy score.
package entity

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"textsum/internal/utils/text"
)

const (
	// MinSummaryLength is the fixed lower bound passed to the summarizer.
	MinSummaryLength = 5

	// MaxSummaryLengthFloor is the smallest upper bound ever passed to the summarizer.
	MaxSummaryLengthFloor = 15

	// AccuracyNotAvailable is the score label shown before the first successful submit.
	AccuracyNotAvailable = "Accuracy: N/A"
)

// SummaryBounds holds the length limits handed to the summarization capability.
// MaxLength is a proportional cap, not a prediction: the model may return less.
type SummaryBounds struct {
	MaxLength int
	MinLength int
}

// NewSummaryBounds derives the bounds for an already-trimmed input:
// max(15, L/2) where L is the number of Unicode code points, and a fixed minimum of 5.
func NewSummaryBounds(input string) SummaryBounds {
	maxLength := text.CountRunes(input) / 2
	if maxLength < MaxSummaryLengthFloor {
		maxLength = MaxSummaryLengthFloor
	}
	return SummaryBounds{
		MaxLength: maxLength,
		MinLength: MinSummaryLength,
	}
}

// NormalizeInput trims surrounding whitespace and rejects empty input.
// The information separators U+001C..U+001F count as whitespace too.
func NormalizeInput(raw string) (string, error) {
	trimmed := strings.TrimFunc(raw, isInputSpace)
	if trimmed == "" {
		return "", &ValidationError{
			Field:   "text",
			Message: "Please enter some text to summarize.",
			Err:     ErrEmptyInput,
		}
	}
	return trimmed, nil
}

func isInputSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// AccuracyScore is the lexical-overlap percentage between an input and its summary.
type AccuracyScore float64

// NewAccuracyScore converts a cosine similarity in [0, 1] to a percentage.
// Values a few ULPs outside the range (floating point noise) are clamped.
func NewAccuracyScore(similarity float64) (AccuracyScore, error) {
	if math.IsNaN(similarity) || similarity < -1e-9 || similarity > 1+1e-9 {
		return 0, fmt.Errorf("%w: similarity %v", ErrScoreOutOfRange, similarity)
	}
	pct := similarity * 100
	pct = math.Max(0, math.Min(100, pct))
	return AccuracyScore(pct), nil
}

// Label renders the score the way the form shows it, e.g. "Accuracy: 57.97%".
func (s AccuracyScore) Label() string {
	return fmt.Sprintf("Accuracy: %.2f%%", float64(s))
}

// Summary is the outcome of one successful submission.
type Summary struct {
	Input    string
	Text     string
	Score    AccuracyScore
	Bounds   SummaryBounds
	Provider string
	Duration time.Duration
}
