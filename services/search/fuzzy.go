package search

import "strings"

// fuzzyMatch scores text against query in [0,1]. A case-insensitive substring
// match scores 1. Otherwise the score is the fraction of query runes that
// occur anywhere in text. Each query rune is checked on its own, so repeated
// runes in the query all count against a single occurrence in text.
func fuzzyMatch(text string, query string) float64 {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	if strings.Contains(lowerText, lowerQuery) {
		return 1
	}

	queryRunes := []rune(lowerQuery)
	matchCount := 0
	for _, r := range queryRunes {
		if strings.ContainsRune(lowerText, r) {
			matchCount++
		}
	}

	return float64(matchCount) / float64(len(queryRunes))
}
