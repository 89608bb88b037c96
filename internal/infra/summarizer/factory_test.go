package summarizer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsum/internal/config"
)

func testSummarizerConfig(provider string) config.SummarizerConfig {
	return config.SummarizerConfig{
		Provider:      provider,
		Model:         config.DefaultModel(provider),
		Timeout:       time.Second,
		RetryAttempts: 1,
		HuggingFace:   config.HuggingFaceConfig{Endpoint: "http://127.0.0.1:0"},
		OpenAI:        config.OpenAIConfig{APIKey: "sk-test"},
		Claude:        config.ClaudeConfig{APIKey: "sk-ant-test"},
		Gemini:        config.GeminiConfig{APIKey: "gm-test"},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxRequests:      3,
			Interval:         30 * time.Second,
			Timeout:          60 * time.Second,
			FailureThreshold: 0.6,
			MinRequests:      5,
		},
	}
}

func TestNew_Providers(t *testing.T) {
	tests := []struct {
		provider string
		backend  any
	}{
		{config.ProviderHuggingFace, &HuggingFace{}},
		{config.ProviderOpenAI, &OpenAI{}},
		{config.ProviderClaude, &Claude{}},
		{config.ProviderGemini, &Gemini{}},
		{config.ProviderNoop, &NoOp{}},
	}

	m := &fakeMetrics{}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			r, err := New(context.Background(), testSummarizerConfig(tt.provider), m)
			require.NoError(t, err)
			assert.Equal(t, tt.provider, r.Provider())
			assert.Equal(t, tt.provider+"-api", r.circuitBreaker.Name())
			assert.IsType(t, tt.backend, r.next)
			assert.NoError(t, r.Close())
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), testSummarizerConfig("markov"), &fakeMetrics{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown summarizer provider "markov"`)
}

func TestNew_NoopEndToEnd(t *testing.T) {
	r, err := New(context.Background(), testSummarizerConfig(config.ProviderNoop), &fakeMetrics{})
	require.NoError(t, err)

	candidates, err := r.Summarize(context.Background(), Request{Text: "alpha beta gamma", MaxLength: 2, MinLength: 1})
	require.NoError(t, err)
	assert.Equal(t, "alpha beta", candidates[0].SummaryText)
}
