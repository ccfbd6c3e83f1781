package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

var titleCaser = cases.Title(language.English)

// NormalizePhrase folds a phrase into the canonical form used for index keys
// and match comparisons: half-width, lowercase, punctuation replaced by
// spaces, whitespace collapsed.
func NormalizePhrase(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	folded := width.Fold.String(value)
	lowered := strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return CollapseSpaces(b.String())
}

// CollapseSpaces trims the string and squeezes runs of whitespace into single
// spaces.
func CollapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// SnakeCase converts a normalized phrase into its underscore-joined variant.
func SnakeCase(phrase string) string {
	return strings.ReplaceAll(NormalizePhrase(phrase), " ", "_")
}

// DisplayTitle renders a canonical key as a human-readable title, e.g.
// "terminator_assault_squad" becomes "Terminator Assault Squad".
func DisplayTitle(key string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(key)
	return titleCaser.String(CollapseSpaces(cleaned))
}

// ContainsPhrase reports whether needle occurs in haystack on token
// boundaries. Both arguments must already be normalized.
func ContainsPhrase(haystack, needle string) bool {
	if needle == "" || haystack == "" {
		return false
	}
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}
