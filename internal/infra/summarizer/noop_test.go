package summarizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOp_Summarize(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []Candidate
	}{
		{
			name: "keeps leading words",
			req:  Request{Text: "one two  three\nfour five", MaxLength: 3},
			want: []Candidate{{SummaryText: "one two three"}},
		},
		{
			name: "short input is returned whole",
			req:  Request{Text: "The quick brown fox", MaxLength: 15},
			want: []Candidate{{SummaryText: "The quick brown fox"}},
		},
		{
			name: "blank input yields nothing",
			req:  Request{Text: "   ", MaxLength: 15},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewNoOp().Summarize(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
