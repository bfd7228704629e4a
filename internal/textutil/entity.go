package textutil

import (
	"regexp"
	"strings"
)

// Stopword sets for entity matching, supplied per domain. Suffix words
// carry no identity: "Columbia University" and "Columbia College" should
// still match on "columbia".
var (
	// SchoolStopwords are generic school-suffix words
	SchoolStopwords = map[string]bool{
		"university": true,
		"college":    true,
		"school":     true,
		"institute":  true,
		"faculty":    true,
	}

	// CompanyStopwords are generic corporate-suffix words
	CompanyStopwords = map[string]bool{
		"group":        true,
		"inc":          true,
		"corp":         true,
		"ltd":          true,
		"llc":          true,
		"company":      true,
		"technologies": true,
		"tech":         true,
	}
)

// MatchEntity reports whether two short spans denote the same real-world
// entity. Substring containment on the normalized strings is checked first
// and short-circuits; otherwise the stopword-free token sets must share at
// least minTokenOverlap tokens.
func MatchEntity(a, b string, stopwords map[string]bool, minTokenOverlap int) bool {
	na := NormalizeKey(a)
	nb := NormalizeKey(b)
	if na == "" || nb == "" {
		return false
	}
	if strings.Contains(nb, na) || strings.Contains(na, nb) {
		return true
	}
	required := minTokenOverlap
	if required < 1 {
		required = 1
	}
	overlap := OverlapCount(
		TokensWithoutStopwords(a, stopwords),
		TokensWithoutStopwords(b, stopwords),
	)
	return overlap >= required
}

// SchoolMinOverlap returns the token-overlap requirement for matching two
// school names: single-token names can match on containment or one shared
// token, multi-token names need two.
func SchoolMinOverlap(a, b string) int {
	aTokens := TokensWithoutStopwords(a, SchoolStopwords)
	bTokens := TokensWithoutStopwords(b, SchoolStopwords)
	if len(aTokens) <= 1 || len(bTokens) <= 1 {
		return 1
	}
	return 2
}

// IsNYC reports whether a location string normalizes as New York City
func IsNYC(location string) bool {
	loc := NormalizeKey(location)
	return strings.Contains(loc, "new york") || strings.Contains(loc, "nyc") || strings.HasSuffix(loc, " ny")
}

// CompactRoleTitle makes a role title shorter and quote-safe without
// inventing facts: whitespace collapsed, trailing qualifiers after common
// separators dropped, hard cap at 60 characters.
func CompactRoleTitle(title string) string {
	if title == "" {
		return ""
	}
	text := strings.TrimSpace(strings.Join(strings.Fields(title), " "))
	for _, sep := range []string{" | ", " — ", " – ", " - ", ","} {
		if idx := strings.Index(text, sep); idx >= 0 {
			text = strings.TrimSpace(text[:idx])
		}
	}
	return Truncate(text, 60)
}

// Truncate caps text at limit characters, replacing the tail with "..."
func Truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return strings.TrimRight(text[:limit-3], " ") + "..."
}

// Employment-type and duration patterns used by IsLikelyMetadataCompany.
// LinkedIn scrapes often surface "Full-time" or "Jan 2021 - Present" in the
// company slot; those are metadata, not employers. The filter is a
// best-effort heuristic: false negatives are expected and acceptable.
var (
	employmentTypeRe = regexp.MustCompile(`^(full ?time|part ?time|self ?employed|freelance|contract|internship|apprenticeship|seasonal|temporary|permanent)$`)
	durationRe       = regexp.MustCompile(`(^|\s)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)(uary|ruary|ch|il|e|y|ust|tember|ober|ember)?\s+(19|20)\d{2}(\s|$)|\d+\s*(yrs?|years?|mos?|months?)(\s|$)|(^|\s)present($|\s)|^(19|20)\d{2}(\s(19|20)\d{2})?$`)
)

// IsLikelyMetadataCompany reports whether a company string looks like an
// employment-type token or a duration/date string rather than a real
// company name.
func IsLikelyMetadataCompany(company string) bool {
	key := NormalizeKey(company)
	if key == "" {
		return true
	}
	return employmentTypeRe.MatchString(key) || durationRe.MatchString(key)
}
