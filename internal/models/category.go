package models

import (
	"strings"
	"unicode"
)

// NormalizeCategory canonicalizes a free-text menu category so that
// case-variant spellings ("main course", "MAIN COURSE") group under one
// display name ("Main Course"). It must be called on every path that
// stores a category; the customer-facing menu does not re-normalize.
func NormalizeCategory(category string) string {
	words := strings.Fields(category)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
