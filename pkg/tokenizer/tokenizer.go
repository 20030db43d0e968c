// Package tokenizer gives rough token estimates for prompt logging.
package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// Estimate returns an approximate token count for text. It takes the larger
// of a word based and a character based guess so that long unbroken strings
// (scene headings, JSON) are not undercounted.
func Estimate(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	byWords := len(strings.Fields(text)) * 4 / 3
	byChars := utf8.RuneCountInString(text) / 4
	return max(byWords, byChars, 1)
}

// EstimateAll sums Estimate over parts.
func EstimateAll(parts ...string) int {
	total := 0
	for _, p := range parts {
		total += Estimate(p)
	}
	return total
}
