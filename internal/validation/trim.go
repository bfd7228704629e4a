package validation

import (
	"strings"

	"github.com/jonathan/outreach-composer/internal/types"
)

// TrimToLimitPreservingCTA forces the text to end with the CTA and fit the
// limit. If the CTA appears mid-text everything after it is dropped; if it
// is missing it is appended. When over the limit, the prefix is cut and an
// ellipsis inserted so the CTA always survives.
func TrimToLimitPreservingCTA(text, cta string, limit int) string {
	if text == "" {
		return text
	}
	if cta != "" && !strings.HasSuffix(text, cta) {
		if idx := strings.LastIndex(text, cta); idx >= 0 {
			text = text[:idx+len(cta)]
		} else {
			text = strings.TrimRight(text, " .") + " " + cta
		}
	}
	if len(text) <= limit {
		return text
	}
	if cta == "" {
		return strings.TrimRight(text[:limit], " ")
	}

	const ellipsis = " ... "
	maxPrefix := limit - len(cta) - len(ellipsis)
	if maxPrefix <= 0 {
		if len(cta) > limit {
			return cta[:limit]
		}
		return cta
	}
	prefix := strings.TrimRight(text[:maxPrefix], " ")
	return prefix + ellipsis + cta
}

// ValidateVariantTextExtended runs ValidateVariantText and additionally
// requires the text to end with its CTA. Codes are deduplicated in first-
// occurrence order.
func ValidateVariantTextExtended(text string, plan types.BridgeEntry, banlist []string) []string {
	violations := ValidateVariantText(text, plan, banlist)
	if plan.CTA != "" && !strings.HasSuffix(text, plan.CTA) {
		violations = append(violations, ViolationMissingCTAEnd)
	}
	seen := make(map[string]bool, len(violations))
	deduped := violations[:0]
	for _, code := range violations {
		if !seen[code] {
			seen[code] = true
			deduped = append(deduped, code)
		}
	}
	return deduped
}
