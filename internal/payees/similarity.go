package payees

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// SimilarityRatio is 1 - editDistance/maxLen over runes, in [0, 1].
func SimilarityRatio(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	len1, len2 := utf8.RuneCountInString(s1), utf8.RuneCountInString(s2)
	if len1 == 0 || len2 == 0 {
		return 0.0
	}

	maxLen := len1
	if len2 > maxLen {
		maxLen = len2
	}

	distance := levenshtein.ComputeDistance(s1, s2)
	return 1.0 - float64(distance)/float64(maxLen)
}

// FoldedSimilarity compares case-insensitively with whitespace collapsed.
func FoldedSimilarity(s1, s2 string) float64 {
	return SimilarityRatio(fold(s1), fold(s2))
}

func fold(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
