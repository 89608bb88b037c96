// Package textsim scores lexical similarity between two texts.
//
// Documents are turned into TF-IDF vectors over a vocabulary fitted on the
// documents themselves, then compared with cosine similarity. The weighting
// matches scikit-learn's TfidfVectorizer defaults: lowercase input, tokens of
// two or more word characters, raw term counts, smoothed IDF
// ln((1+n)/(1+df)) + 1, and L2-normalized rows.
//
// Because the vocabulary is fitted per call, scores from different pairs of
// documents are not comparable with each other.
//
// Example usage:
//
//	sim, err := textsim.Similarity(original, summary)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Accuracy: %.2f%%\n", sim*100)
package textsim
