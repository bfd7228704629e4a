package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-composer/internal/types"
)

func TestTrimToLimitPreservingCTA_AppendsMissingCTA(t *testing.T) {
	got := TrimToLimitPreservingCTA("Great note.", "Open to connect?", 300)
	assert.Equal(t, "Great note Open to connect?", got)
}

func TestTrimToLimitPreservingCTA_CutsTrailingTextAfterCTA(t *testing.T) {
	got := TrimToLimitPreservingCTA("Hello. Open to connect? PS: more text", "Open to connect?", 300)
	assert.Equal(t, "Hello. Open to connect?", got)
}

func TestTrimToLimitPreservingCTA_AlreadyEndsWithCTA(t *testing.T) {
	text := "Hello. Open to connect?"
	assert.Equal(t, text, TrimToLimitPreservingCTA(text, "Open to connect?", 300))
}

func TestTrimToLimitPreservingCTA_OverLimitKeepsCTA(t *testing.T) {
	cta := "Open to connect?"
	text := strings.Repeat("word ", 100) + cta
	got := TrimToLimitPreservingCTA(text, cta, 300)
	assert.LessOrEqual(t, len(got), 300)
	assert.True(t, strings.HasSuffix(got, cta))
	assert.Contains(t, got, " ... ")
}

func TestTrimToLimitPreservingCTA_NoCTA(t *testing.T) {
	got := TrimToLimitPreservingCTA(strings.Repeat("x", 50), "", 20)
	assert.Equal(t, 20, len(got))
}

func TestTrimToLimitPreservingCTA_Empty(t *testing.T) {
	assert.Equal(t, "", TrimToLimitPreservingCTA("", "Open to connect?", 300))
}

func TestValidateVariantTextExtended_CTAMidTextFlagsEnd(t *testing.T) {
	plan := types.BridgeEntry{CTA: "Open to connect?"}
	violations := ValidateVariantTextExtended("Open to connect? More text after", plan, nil)
	assert.Equal(t, []string{ViolationMissingCTAEnd}, violations)
}

func TestValidateVariantTextExtended_CleanWhenCTAEnds(t *testing.T) {
	plan := types.BridgeEntry{CTA: "Open to connect?"}
	violations := ValidateVariantTextExtended("Short note. Open to connect?", plan, nil)
	assert.Empty(t, violations)
}

func TestValidateVariantTextExtended_Dedupes(t *testing.T) {
	plan := types.BridgeEntry{CTA: "Open to connect?"}
	violations := ValidateVariantTextExtended("no closing line", plan, nil)
	assert.Equal(t, []string{ViolationMissingCTA, ViolationMissingCTAEnd}, violations)
}
