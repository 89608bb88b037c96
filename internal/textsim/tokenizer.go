package textsim

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minTokenRunes is the shortest run of word characters kept as a term.
const minTokenRunes = 2

// Tokenize lowercases doc and splits it into terms: maximal runs of letters,
// numbers and underscores that are at least two characters long.
func Tokenize(doc string) []string {
	// cases.Caser keeps internal state, so a fresh one is built per call.
	lower := cases.Lower(language.Und).String(doc)

	var (
		tokens []string
		start  = -1
		runes  int
	)
	flush := func(end int) {
		if start >= 0 && runes >= minTokenRunes {
			tokens = append(tokens, lower[start:end])
		}
		start, runes = -1, 0
	}

	for i, r := range lower {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(lower))

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
