// Package reconcile matches administrative-unit names recorded
// inconsistently across a primary statistics extract and an authoritative
// reference table, and merges the canonical reference attributes onto every
// primary row.
package reconcile

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultSuffixTokens are the administrative-unit decorations stripped
// before comparison. Removal is case-sensitive: a token only matches the
// exact casing listed here.
var DefaultSuffixTokens = []string{
	" tumani", " district", " District",
	" shahri", " city", " City",
}

// DefaultCountryTokens are country-name fragments, in Latin and Cyrillic
// scripts, stripped before comparison.
var DefaultCountryTokens = []string{
	"Respublikasi", "Республика", "Republic of",
	"Ўзбекистон", "Узбекистан", "Uzbekistan",
}

// Normalizer strips suffix and country tokens from raw names so that
// variants of the same district compare well. It is pure and idempotent:
// the token lists contain nothing that stripping could reintroduce.
type Normalizer struct {
	tokens []string
}

// NewNormalizer builds a Normalizer from explicit token lists. Empty lists
// fall back to the defaults.
func NewNormalizer(suffixTokens, countryTokens []string) *Normalizer {
	if len(suffixTokens) == 0 {
		suffixTokens = DefaultSuffixTokens
	}
	if len(countryTokens) == 0 {
		countryTokens = DefaultCountryTokens
	}

	tokens := make([]string, 0, len(suffixTokens)+len(countryTokens))
	tokens = append(tokens, suffixTokens...)
	tokens = append(tokens, countryTokens...)
	return &Normalizer{tokens: tokens}
}

// Normalize trims the name, removes every occurrence of the configured
// tokens, and trims again. The input is NFC-normalized first so that
// visually identical Cyrillic sequences compare equal.
func (n *Normalizer) Normalize(name string) string {
	s := strings.TrimSpace(norm.NFC.String(name))
	for _, tok := range n.tokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	return strings.TrimSpace(s)
}
