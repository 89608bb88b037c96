package textsim

// CosineSimilarity returns the pairwise cosine similarity of the rows of m.
// Entry [i][j] compares row i with row j. A row with zero norm has similarity 0
// with every row, itself included.
func CosineSimilarity(m Matrix) [][]float64 {
	norms := make([]float64, len(m))
	for i, row := range m {
		norms[i] = l2(row)
	}

	out := make([][]float64, len(m))
	for i := range m {
		out[i] = make([]float64, len(m))
		for j := range m {
			if norms[i] == 0 || norms[j] == 0 {
				continue
			}
			out[i][j] = dot(m[i], m[j]) / (norms[i] * norms[j])
		}
	}
	return out
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Similarity fits a vectorizer on exactly {original, summary} and returns the
// cosine similarity of the two documents, in [0, 1].
func Similarity(original, summary string) (float64, error) {
	m, err := NewVectorizer().FitTransform([]string{original, summary})
	if err != nil {
		return 0, err
	}
	return CosineSimilarity(m)[0][1], nil
}
