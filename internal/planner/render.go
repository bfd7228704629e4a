package planner

import (
	"fmt"
	"strings"

	"github.com/jonathan/outreach-composer/internal/types"
)

const systemPrompt = "You write maximally tailored LinkedIn connection notes under a hard 300-character limit. " +
	"Return strict JSON only (no markdown, no prose). " +
	"Do NOT fabricate details. Use ONLY the BRIDGE_PLAN strings below. " +
	"Write exactly 3 variants labeled short, direct, warm. " +
	"Hard constraints per variant: " +
	"(1) <= 300 characters. " +
	"(2) Must include TARGET_FACT verbatim. " +
	"(3) Must include HOOK_TEXT verbatim. " +
	"(4) Must include PROOF_POINT verbatim. " +
	"(5) Must include INTENT (verbatim or a minimal rephrase with same meaning). " +
	"(6) Must include CTA verbatim, and end with CTA. " +
	"(7) If REQUIRED_TOKEN is provided, it must appear verbatim AND not as a standalone fragment. " +
	"(8) Must include an explicit bridge sentence that contains both TARGET_FACT and PROOF_POINT; " +
	"use exactly: 'Seeing {TARGET_FACT}, {PROOF_POINT}.' " +
	"You may keep everything else minimal; do not add extra background (no schools/locations/headlines) beyond PROOF_POINT. " +
	"Avoid banlist phrases. " +
	"Never refuse or explain constraints; always produce JSON."

// renderMessages assembles the system and user payload for the model
func renderMessages(target types.TargetProfile, targetFacts []types.Fact, plan types.BridgePlan, banlist []string) Messages {
	var lines []string
	lines = append(lines, fmt.Sprintf("TARGET_NAME: %s", target.Name), "", "TARGET_FACTS_RANKED:")
	if len(targetFacts) == 0 {
		lines = append(lines, "- (none)")
	}
	for idx, fact := range boundFacts(targetFacts, maxFactTrace) {
		lines = append(lines, fmt.Sprintf("- %d. [%s] %s (score %d)", idx+1, fact.Type, fact.Text, fact.Score))
	}
	lines = append(lines, "", "BRIDGE_PLAN (MUST FOLLOW EXACTLY):")
	for _, label := range VariantLabels {
		entry := plan[label]
		lines = append(lines,
			fmt.Sprintf("%s:", label),
			fmt.Sprintf("  TARGET_FACT=%s", entry.TargetFact),
			fmt.Sprintf("  HOOK_TEXT=%s", entry.HookText),
			fmt.Sprintf("  PROOF_POINT=%s", entry.ProofPoint),
			fmt.Sprintf("  INTENT=%s", entry.Intent),
			fmt.Sprintf("  CTA=%s", entry.CTA),
		)
		if entry.RequiredToken != "" {
			lines = append(lines, fmt.Sprintf("  REQUIRED_TOKEN=%s", entry.RequiredToken))
		}
	}
	lines = append(lines,
		"",
		fmt.Sprintf("BANLIST: %s", strings.Join(banlist, ", ")),
		"",
		"HARD TEMPLATE (recommended, keep it short):",
		"Hi {TARGET_NAME}, {HOOK_TEXT}. Seeing {TARGET_FACT}, {PROOF_POINT}. {INTENT}. {CTA}",
		"If REQUIRED_TOKEN is present, include it inside the first sentence, e.g. '{HOOK_TEXT} ({REQUIRED_TOKEN})'.",
		"Do not add extra facts about the sender beyond PROOF_POINT.",
		"",
		"OUTPUT_JSON_SCHEMA (shape):",
		"{",
		"  \"variants\": [",
		"    {\"label\": \"short\", \"text\": \"...\", \"char_count\": 123},",
		"    {\"label\": \"direct\", \"text\": \"...\", \"char_count\": 140},",
		"    {\"label\": \"warm\", \"text\": \"...\", \"char_count\": 155}",
		"  ]",
		"}",
	)
	return Messages{System: systemPrompt, User: strings.Join(lines, "\n")}
}
