// Package text provides rune-aware helpers for measuring and cutting user text.
package text

import "unicode/utf8"

// CountRunes counts the number of Unicode code points in the given text.
// Length bounds are defined in code points, never bytes.
//
//	CountRunes("hello")   // 5
//	CountRunes("日本語")   // 3
//	CountRunes("Hello👋") // 6
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns at most maxRunes code points of s and whether anything was cut.
// It never splits a multi-byte character.
func Truncate(s string, maxRunes int) (string, bool) {
	if maxRunes <= 0 {
		return "", s != ""
	}
	count := 0
	for i := range s {
		if count == maxRunes {
			return s[:i], true
		}
		count++
	}
	return s, false
}
