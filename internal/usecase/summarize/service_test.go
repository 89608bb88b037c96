package summarize_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsum/internal/domain/entity"
	"textsum/internal/infra/summarizer"
	"textsum/internal/textsim"
	"textsum/internal/usecase/summarize"
)

/* ───────── stubs ───────── */

type stubSummarizer struct {
	requests   []summarizer.Request
	candidates []summarizer.Candidate
	err        error
}

func (s *stubSummarizer) Summarize(_ context.Context, req summarizer.Request) ([]summarizer.Candidate, error) {
	s.requests = append(s.requests, req)
	return s.candidates, s.err
}

type namedSummarizer struct{ stubSummarizer }

func (namedSummarizer) Provider() string { return "huggingface" }

const foxSentence = "The quick brown fox jumps over the lazy dog."

/* ───────── tests ───────── */

func TestService_Summarize_FoxScenario(t *testing.T) {
	stub := &stubSummarizer{candidates: []summarizer.Candidate{{SummaryText: "The quick brown fox jumps."}}}
	svc := summarize.NewService(stub)

	got, err := svc.Summarize(context.Background(), "  "+foxSentence+"\n")

	require.NoError(t, err)
	require.Len(t, stub.requests, 1)
	want := summarizer.Request{Text: foxSentence, MaxLength: 22, MinLength: 5, Deterministic: true}
	if diff := cmp.Diff(want, stub.requests[0]); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, foxSentence, got.Input)
	assert.Equal(t, "The quick brown fox jumps.", got.Text)
	assert.Equal(t, entity.SummaryBounds{MaxLength: 22, MinLength: 5}, got.Bounds)
	assert.InDelta(t, 71.90400934963505, float64(got.Score), 1e-9)
	assert.Equal(t, "Accuracy: 71.90%", got.Score.Label())
	assert.Equal(t, "custom", got.Provider)
}

func TestService_Summarize_UsesFirstCandidate(t *testing.T) {
	stub := &stubSummarizer{candidates: []summarizer.Candidate{
		{SummaryText: "A fox."},
		{SummaryText: foxSentence},
	}}
	svc := summarize.NewService(stub)

	got, err := svc.Summarize(context.Background(), foxSentence)

	require.NoError(t, err)
	assert.Equal(t, "A fox.", got.Text)
	assert.InDelta(t, 21.951095080860833, float64(got.Score), 1e-9)
}

func TestService_Summarize_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t \n"} {
		stub := &stubSummarizer{}
		svc := summarize.NewService(stub)

		got, err := svc.Summarize(context.Background(), raw)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, entity.ErrEmptyInput)
		assert.Empty(t, stub.requests, "summarizer must not be called for %q", raw)
	}
}

func TestService_Summarize_Failures(t *testing.T) {
	boom := errors.New("HTTP 503: Model is currently loading")

	tests := []struct {
		name       string
		stub       *stubSummarizer
		input      string
		wantErr    error
		wantPrefix string
	}{
		{
			name:       "summarizer error",
			stub:       &stubSummarizer{err: boom},
			input:      foxSentence,
			wantErr:    boom,
			wantPrefix: "summarize: ",
		},
		{
			name:       "no candidates",
			stub:       &stubSummarizer{},
			input:      foxSentence,
			wantErr:    summarizer.ErrNoCandidates,
			wantPrefix: "summarize: ",
		},
		{
			name:       "empty vocabulary",
			stub:       &stubSummarizer{candidates: []summarizer.Candidate{{SummaryText: "!"}}},
			input:      "? !",
			wantErr:    textsim.ErrEmptyVocabulary,
			wantPrefix: "score summary: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := summarize.NewService(tt.stub)

			got, err := svc.Summarize(context.Background(), tt.input)

			assert.Nil(t, got)
			require.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, entity.ErrEmptyInput)
			assert.Contains(t, err.Error(), tt.wantPrefix)
		})
	}
}

func TestService_Summarize_MinimumBounds(t *testing.T) {
	stub := &stubSummarizer{candidates: []summarizer.Candidate{{SummaryText: "short text"}}}
	svc := summarize.NewService(stub)

	_, err := svc.Summarize(context.Background(), "short text")

	require.NoError(t, err)
	assert.Equal(t, 15, stub.requests[0].MaxLength)
	assert.Equal(t, 5, stub.requests[0].MinLength)
}

func TestService_Provider(t *testing.T) {
	svc := summarize.NewService(&namedSummarizer{stubSummarizer{candidates: []summarizer.Candidate{{SummaryText: "fox"}}}})
	assert.Equal(t, "huggingface", svc.Provider())

	got, err := svc.Summarize(context.Background(), "fox den")
	require.NoError(t, err)
	assert.Equal(t, "huggingface", got.Provider)
}
