package textsim

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorizer_FitTransform(t *testing.T) {
	v := NewVectorizer()
	m, err := v.FitTransform([]string{"The quick brown fox", "quick fox"})
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"brown", "fox", "quick", "the"}, v.terms); diff != "" {
		t.Errorf("vocabulary mismatch (-want +got):\n%s", diff)
	}

	shared := 1.0
	single := math.Log(3.0/2.0) + 1
	idf := v.idf
	assert.InDelta(t, single, idf[0], 1e-12) // brown
	assert.InDelta(t, shared, idf[1], 1e-12) // fox
	assert.InDelta(t, shared, idf[2], 1e-12) // quick
	assert.InDelta(t, single, idf[3], 1e-12) // the

	require.Len(t, m, 2)
	for i, row := range m {
		assert.InDelta(t, 1.0, l2(row), 1e-12, "row %d must be unit length", i)
	}
	assert.Zero(t, m[1][0], "summary has no 'brown'")
	assert.InDelta(t, m[1][1], m[1][2], 1e-12, "fox and quick weigh the same in the summary")
}

func TestVectorizer_TermFrequencyCounts(t *testing.T) {
	v := NewVectorizer()
	m, err := v.FitTransform([]string{"go go go rust", "go"})
	require.NoError(t, err)

	// vocabulary: go (df=2, idf=1), rust (df=1)
	rustIDF := math.Log(3.0/2.0) + 1
	norm := math.Sqrt(9 + rustIDF*rustIDF)
	assert.InDelta(t, 3/norm, m[0][0], 1e-12)
	assert.InDelta(t, rustIDF/norm, m[0][1], 1e-12)
	assert.InDelta(t, 1.0, m[1][0], 1e-12)
}

func TestVectorizer_EmptyVocabulary(t *testing.T) {
	_, err := NewVectorizer().FitTransform([]string{"a", "! ?"})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestVectorizer_OneDocumentWithoutTerms(t *testing.T) {
	m, err := NewVectorizer().FitTransform([]string{"hello world", "a"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, m[1])
}
