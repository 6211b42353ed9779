package utils

import (
	"strings"
	"unicode"
)

// CategoryNormalizer cleans the free-text category strings that arrive on
// treatment records before they are used as grouping keys. Upstream feeds
// deliver categories with inconsistent encodings (replacement characters,
// stray control bytes, doubled whitespace) and a handful of spelling
// variants for the same category.
type CategoryNormalizer struct {
	aliases map[string]string
}

// NewCategoryNormalizer creates a normalizer with the given alias table.
// Alias keys are matched against the identifier form of the input (see
// NormalizeIdentifier); values are the canonical display names.
func NewCategoryNormalizer(aliases map[string]string) *CategoryNormalizer {
	folded := make(map[string]string, len(aliases))
	for k, v := range aliases {
		folded[NormalizeIdentifier(k)] = v
	}
	return &CategoryNormalizer{aliases: folded}
}

// Normalize returns the cleaned category name, or "" when nothing usable
// remains after stripping artifacts.
func (n *CategoryNormalizer) Normalize(raw string) string {
	cleaned := stripArtifacts(raw)
	if cleaned == "" {
		return ""
	}

	if n != nil && n.aliases != nil {
		if canonical, ok := n.aliases[NormalizeIdentifier(cleaned)]; ok {
			return canonical
		}
	}

	return cleaned
}

// stripArtifacts removes encoding garbage and collapses whitespace.
func stripArtifacts(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == unicode.ReplacementChar:
			// Mojibake marker from a bad decode upstream
		case unicode.IsControl(r):
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeIdentifier converts a string to a normalized identifier
func NormalizeIdentifier(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}

	var out strings.Builder
	lastUnderscore := false

	for _, ch := range trimmed {
		isAlphaNum := unicode.IsLetter(ch) || unicode.IsDigit(ch)
		if isAlphaNum {
			out.WriteRune(unicode.ToLower(ch))
			lastUnderscore = false
		} else if !lastUnderscore {
			out.WriteRune('_')
			lastUnderscore = true
		}
	}

	return strings.Trim(out.String(), "_")
}
