// Package textutil provides the canonical text normalization and entity
// matching primitives shared by every planning stage.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenLen excludes short/common words from overlap scoring.
// This is a precision-over-recall choice: "at", "the", "of" never count.
const minTokenLen = 4

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// NormalizeKey canonicalizes text into the comparison key used for dedup,
// equality, and containment checks: Unicode-decomposed, diacritics stripped,
// lowercased, with non-alphanumeric runs collapsed to single spaces.
// NormalizeKey is idempotent.
func NormalizeKey(text string) string {
	if text == "" {
		return ""
	}
	decomposed, _, err := transform.String(stripMarks, text)
	if err != nil {
		decomposed = text
	}
	var sb strings.Builder
	sb.Grow(len(decomposed))
	pendingSpace := false
	for _, r := range strings.ToLower(decomposed) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return sb.String()
}

// Tokenize splits lowercased text on non-alphanumeric boundaries and keeps
// only tokens of length >= 4.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) >= minTokenLen {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// TokenSet returns the distinct tokens of text as a set
func TokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokenize(text) {
		set[tok] = true
	}
	return set
}

// TokensWithoutStopwords returns the normalized tokens of text minus a
// caller-supplied stopword set. Unlike Tokenize, no length filter applies:
// the stopword set already carries the domain's generic words.
func TokensWithoutStopwords(text string, stopwords map[string]bool) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(NormalizeKey(text)) {
		if tok != "" && !stopwords[tok] {
			set[tok] = true
		}
	}
	return set
}

// OverlapCount returns the size of the intersection of two token sets
func OverlapCount(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for tok := range a {
		if b[tok] {
			count++
		}
	}
	return count
}
