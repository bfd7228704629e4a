// Package bridge composes the per-variant instruction tuple — target fact,
// hook text, proof point, intent, CTA — that the text-generation model is
// told to use and the validator later checks against.
package bridge

import (
	"fmt"
	"strings"

	"github.com/jonathan/outreach-composer/internal/facts"
	"github.com/jonathan/outreach-composer/internal/proofpoints"
	"github.com/jonathan/outreach-composer/internal/textutil"
	"github.com/jonathan/outreach-composer/internal/types"
)

const (
	maxHookTextLen = 70
	maxIntentLen   = 80

	// Anchors below this score of domain/location type get overridden by a
	// high-signal fact: a weak "Shared focus on X" makes a worse opener
	// than "Engineer at Acme".
	weakAnchorScore = 7

	// fallbackHookText is the hook of last resort when every candidate is
	// empty, used, or metadata-looking.
	fallbackHookText = "your work"
)

// IntentTemplate maps a tag to its intent sentence format (one %s verb
// slot for the company or role).
type IntentTemplate struct {
	Tag    string
	Format string
}

// Tables holds the fixed lookup tables injected into the builder
type Tables struct {
	VariantLabels []string
	CTAByVariant  map[string]string
	IntentByTag   []IntentTemplate // tried in order; first present tag wins
	GenericIntent string           // fallback format, one %s
}

// BuildPlan composes one BridgeEntry per variant label.
//
// Facts are assigned round-robin over the boosted descending-sorted list
// (reusing the top fact once exhausted). The anchor's text becomes the hook
// unless the anchor is a weak domain/location type and a high-signal fact
// exists; hook text is compacted to 70 chars and made unique across
// variants by falling back through anchors, then facts, then "your work".
func BuildPlan(
	sender types.SenderProfile,
	target types.TargetProfile,
	targetTags types.TagSet,
	allAnchors []types.Anchor,
	anchorPlan types.AnchorPlan,
	rankedProofPoints []types.ScoredProofPoint,
	targetFacts []types.Fact,
	proofPointList []string,
	classifyAnchor func(types.Anchor) types.AnchorType,
	tables Tables,
) types.BridgePlan {
	boosted := facts.BoostSchoolFacts(sender, targetFacts)
	highSignal, hasHighSignal := facts.HighSignal(boosted)

	selected := make(map[string]types.Fact, len(tables.VariantLabels))
	usedFactKeys := make(map[string]bool)
	for _, label := range tables.VariantLabels {
		chosen := types.Fact{}
		found := false
		for _, fact := range boosted {
			key := textutil.NormalizeKey(fact.Text)
			if key != "" && !usedFactKeys[key] {
				chosen = fact
				usedFactKeys[key] = true
				found = true
				break
			}
		}
		if !found && len(boosted) > 0 {
			chosen = boosted[0]
		}
		selected[label] = chosen
	}

	plan := make(types.BridgePlan, len(tables.VariantLabels))
	usedHookKeys := make(map[string]bool)
	for _, label := range tables.VariantLabels {
		anchor := anchorPlan[label]
		anchorType := classifyAnchor(anchor)
		targetFact := selected[label].Text

		hookText := anchor.Text
		if (anchorType == types.AnchorDomain || anchorType == types.AnchorLocation) &&
			anchor.Score < weakAnchorScore && hasHighSignal {
			hookText = targetFact
			if hookText == "" {
				hookText = highSignal.Text
			}
		}
		hookText = compactHookText(hookText, targetFact)
		hookText = chooseUniqueHookText(hookText, targetFact, allAnchors, boosted, usedHookKeys)
		if key := textutil.NormalizeKey(hookText); key != "" {
			usedHookKeys[key] = true
		}

		plan[label] = types.BridgeEntry{
			TargetFact: targetFact,
			HookText:   hookText,
			ProofPoint: proofpoints.SelectForVariant(targetTags, anchorType, proofPointList, rankedProofPoints),
			Intent:     BuildIntent(targetTags, targetFact, target, tables),
			CTA:        tables.CTAByVariant[label],
			// Forced token insertion reads unnaturally; the field stays
			// empty but is kept on the wire for forward compatibility.
			RequiredToken: "",
		}
	}
	return plan
}

// BuildIntent produces the tag-driven intent sentence, capped at 80 chars
func BuildIntent(tags types.TagSet, targetFact string, target types.TargetProfile, tables Tables) string {
	companyOrRole := ""
	for _, exp := range target.TopExperiences {
		if exp.Company != "" && !textutil.IsLikelyMetadataCompany(exp.Company) {
			companyOrRole = exp.Company
			break
		}
	}
	if companyOrRole == "" && !isDomainFactText(targetFact) {
		companyOrRole = companyFromFact(targetFact)
	}
	if companyOrRole == "" && target.Headline != "" && len(target.Headline) <= 60 {
		companyOrRole = target.Headline
	}
	if companyOrRole == "" {
		companyOrRole = fallbackHookText
	}

	format := tables.GenericIntent
	for _, template := range tables.IntentByTag {
		if tags.Has(template.Tag) {
			format = template.Format
			break
		}
	}
	return textutil.Truncate(fmt.Sprintf(format, companyOrRole), maxIntentLen)
}

// SelectRequiredToken picks the single token a message would be forced to
// include: a real company, else an entity-matched school, else a headline
// keyword. The bridge currently leaves RequiredToken empty, but the
// selection logic is preserved alongside the field.
func SelectRequiredToken(sender types.SenderProfile, target types.TargetProfile) string {
	for _, exp := range target.TopExperiences {
		if exp.Company != "" && !textutil.IsLikelyMetadataCompany(exp.Company) {
			return exp.Company
		}
	}
	if len(target.Education) > 0 {
		school := target.Education[0].School
		if school != "" {
			for _, mySchool := range sender.Schools {
				required := textutil.SchoolMinOverlap(mySchool, school)
				if textutil.MatchEntity(mySchool, school, textutil.SchoolStopwords, required) {
					return school
				}
			}
		}
	}
	return headlineKeyword(target.Headline)
}

func compactHookText(hookText, targetFact string) string {
	text := strings.Join(strings.Fields(hookText), " ")
	if text == "" {
		return targetFact
	}
	if len(text) <= maxHookTextLen {
		return text
	}
	if targetFact != "" && len(targetFact) <= maxHookTextLen {
		return targetFact
	}
	return textutil.Truncate(text, maxHookTextLen)
}

func chooseUniqueHookText(
	primaryHook, targetFact string,
	allAnchors []types.Anchor,
	boostedFacts []types.Fact,
	usedHookKeys map[string]bool,
) string {
	candidates := []string{primaryHook, targetFact}
	for _, anchor := range allAnchors {
		candidates = append(candidates, anchor.Text)
	}
	for _, fact := range boostedFacts {
		candidates = append(candidates, fact.Text)
	}
	for _, candidate := range candidates {
		text := strings.Join(strings.Fields(candidate), " ")
		if text == "" {
			continue
		}
		key := textutil.NormalizeKey(text)
		if key == "" || usedHookKeys[key] {
			continue
		}
		if textutil.IsLikelyMetadataCompany(text) {
			continue
		}
		return text
	}

	fallback := primaryHook
	if fallback == "" {
		fallback = targetFact
	}
	fallback = strings.Join(strings.Fields(fallback), " ")
	if fallback != "" && !textutil.IsLikelyMetadataCompany(fallback) {
		return fallback
	}
	return fallbackHookText
}

// companyFromFact recovers the entity a fact is about: the company in
// "Title at Company", the school in "School alum", else the fact itself.
func companyFromFact(targetFact string) string {
	if idx := strings.Index(targetFact, " at "); idx >= 0 {
		return strings.TrimSpace(targetFact[idx+len(" at "):])
	}
	if strings.HasSuffix(targetFact, " alum") {
		return strings.TrimSpace(strings.TrimSuffix(targetFact, " alum"))
	}
	return targetFact
}

// isDomainFactText reports whether the fact is a bare domain/location
// token, which would read badly inside an intent sentence.
func isDomainFactText(targetFact string) bool {
	switch textutil.NormalizeKey(targetFact) {
	case "nyc", "analytics", "product", "computer vision", "finance", "community":
		return true
	}
	return false
}

var headlineKeywordPatterns = []string{
	"computer vision", "vision", "opencv", "yolo", "product", "growth",
	"analytics", "data", "machine learning", "ml", "sql", "python", "ai",
	"finance", "trading", "investment", "community", "outreach", "partnership",
}

// headlineKeyword returns the first recognized keyword in the headline,
// preserving the headline's own casing.
func headlineKeyword(headline string) string {
	if headline == "" {
		return ""
	}
	lowered := strings.ToLower(headline)
	for _, pattern := range headlineKeywordPatterns {
		if idx := strings.Index(lowered, pattern); idx >= 0 {
			return headline[idx : idx+len(pattern)]
		}
	}
	return ""
}
