// Package validation checks generated variant text against its bridge-plan
// contract and the banned-phrase list.
package validation

import (
	"strings"

	"github.com/jonathan/outreach-composer/internal/textutil"
	"github.com/jonathan/outreach-composer/internal/types"
)

// MaxVariantLen is the hard character limit for a connection note
const MaxVariantLen = 300

// Violation codes returned by ValidateVariantText
const (
	ViolationEmptyText      = "empty text"
	ViolationTooLong        = "length > 300"
	ViolationMissingFact    = "missing target_fact"
	ViolationMissingHook    = "missing hook_text"
	ViolationMissingProof   = "missing proof_point"
	ViolationMissingCTA     = "missing CTA"
	ViolationMissingToken   = "missing required_token"
	ViolationBannedPhrase   = "contains banned phrase"
	ViolationMissingCTAEnd  = "missing CTA end"
)

// ValidateVariantText returns the violation codes for one variant. Checks
// are independent — one failure does not hide another — except empty text,
// which short-circuits everything.
func ValidateVariantText(text string, plan types.BridgeEntry, banlist []string) []string {
	var violations []string
	if text == "" {
		return []string{ViolationEmptyText}
	}
	if len(text) > MaxVariantLen {
		violations = append(violations, ViolationTooLong)
	}

	textKey := textutil.NormalizeKey(text)
	textTokens := textutil.TokenSet(text)

	if plan.TargetFact != "" && !containsFact(textKey, textTokens, plan.TargetFact) {
		violations = append(violations, ViolationMissingFact)
	}
	if plan.HookText != "" && !containsFact(textKey, textTokens, plan.HookText) {
		violations = append(violations, ViolationMissingHook)
	}
	if plan.ProofPoint != "" && !containsProofPoint(textTokens, plan.ProofPoint) {
		violations = append(violations, ViolationMissingProof)
	}
	if plan.CTA != "" && !strings.Contains(textKey, textutil.NormalizeKey(plan.CTA)) {
		violations = append(violations, ViolationMissingCTA)
	}
	if plan.RequiredToken != "" && !strings.Contains(textKey, textutil.NormalizeKey(plan.RequiredToken)) {
		violations = append(violations, ViolationMissingToken)
	}

	lowered := strings.ToLower(text)
	for _, phrase := range banlist {
		if phrase != "" && strings.Contains(lowered, strings.ToLower(phrase)) {
			violations = append(violations, ViolationBannedPhrase)
			break
		}
	}
	return violations
}

// containsFact accepts either normalized-substring presence or a two-token
// overlap: the model may lightly reorder a fact without losing it.
func containsFact(textKey string, textTokens map[string]bool, fact string) bool {
	factKey := textutil.NormalizeKey(fact)
	if factKey != "" && strings.Contains(textKey, factKey) {
		return true
	}
	return textutil.OverlapCount(textutil.TokenSet(fact), textTokens) >= 2
}

// containsProofPoint requires a token overlap scaled to the proof point's
// own vocabulary: min(3, max(1, unique-token-count/2)).
func containsProofPoint(textTokens map[string]bool, proofPoint string) bool {
	proofTokens := textutil.TokenSet(proofPoint)
	threshold := len(proofTokens) / 2
	if threshold < 1 {
		threshold = 1
	}
	if threshold > 3 {
		threshold = 3
	}
	return textutil.OverlapCount(proofTokens, textTokens) >= threshold
}
