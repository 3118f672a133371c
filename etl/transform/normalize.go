package transform

import (
	"regexp"
	"strings"
	"unicode"
)

// Normalizer maps raw free-text state names to their canonical form. The
// alias table is injected at construction and never mutated afterwards, so a
// Normalizer value is safe to share.
type Normalizer struct {
	aliases map[string]string
}

// DefaultAliases returns the known alias collisions in the pulse data:
// ampersand-joined compound names that must fold into their "and"-joined
// spellings before title-casing.
func DefaultAliases() map[string]string {
	return map[string]string{
		"andaman & nicobar islands":          "andaman and nicobar islands",
		"dadra & nagar haveli & daman & diu": "dadra and nagar haveli and daman and diu",
		"jammu & kashmir":                    "jammu and kashmir",
	}
}

// NewNormalizer builds a Normalizer from an alias table. The table is copied.
func NewNormalizer(aliases map[string]string) *Normalizer {
	copied := make(map[string]string, len(aliases))
	for k, v := range aliases {
		copied[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
	}
	return &Normalizer{aliases: copied}
}

// StateName canonicalizes a state name: lowercase and trim, fold known
// aliases, then title-case. Total over any input; empty stays empty.
// Idempotent: a canonical name normalizes to itself.
func (n *Normalizer) StateName(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return ""
	}
	if alias, ok := n.aliases[normalized]; ok {
		normalized = alias
	}
	return titleCase(normalized)
}

var nonLabelChars = regexp.MustCompile(`[^\w\s-]`)

// CleanLabel is the narrower cleaner for district and entity free text:
// strips everything but word characters, spaces and hyphens, and collapses
// internal whitespace. Not used for pincodes, which pass through verbatim.
func CleanLabel(raw string) string {
	cleaned := nonLabelChars.ReplaceAllString(raw, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
