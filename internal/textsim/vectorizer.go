package textsim

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyVocabulary is returned when no document in the corpus contains a single term.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no terms")

// Matrix holds one row per document, one column per vocabulary term.
type Matrix [][]float64

// Vectorizer fits a vocabulary and IDF weights on a corpus and produces
// L2-normalized TF-IDF rows for it.
type Vectorizer struct {
	terms []string
	index map[string]int
	idf   []float64
}

// NewVectorizer returns an unfitted Vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// FitTransform learns the vocabulary and IDF weights from corpus and returns its
// TF-IDF matrix. Row i corresponds to corpus[i]. Terms are ordered alphabetically.
func (v *Vectorizer) FitTransform(corpus []string) (Matrix, error) {
	docs := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, doc := range corpus {
		docs[i] = Tokenize(doc)
		seen := make(map[string]struct{}, len(docs[i]))
		for _, term := range docs[i] {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	v.terms = make([]string, 0, len(df))
	for term := range df {
		v.terms = append(v.terms, term)
	}
	sort.Strings(v.terms)

	n := float64(len(corpus))
	v.index = make(map[string]int, len(v.terms))
	v.idf = make([]float64, len(v.terms))
	for j, term := range v.terms {
		v.index[term] = j
		v.idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	m := make(Matrix, len(docs))
	for i, tokens := range docs {
		row := make([]float64, len(v.terms))
		for _, term := range tokens {
			row[v.index[term]]++
		}
		for j := range row {
			row[j] *= v.idf[j]
		}
		normalize(row)
		m[i] = row
	}

	return m, nil
}

// normalize scales row to unit L2 norm in place. Zero rows are left as is.
func normalize(row []float64) {
	norm := l2(row)
	if norm == 0 {
		return
	}
	for j := range row {
		row[j] /= norm
	}
}

func l2(row []float64) float64 {
	var sum float64
	for _, x := range row {
		sum += x * x
	}
	return math.Sqrt(sum)
}
