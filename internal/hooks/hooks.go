// Package hooks scores and derives candidate talking points ("hooks")
// against a target profile.
package hooks

import (
	"fmt"
	"strings"

	"github.com/jonathan/outreach-composer/internal/classify"
	"github.com/jonathan/outreach-composer/internal/textutil"
	"github.com/jonathan/outreach-composer/internal/types"
)

// ScoreHook rates a hook's specificity against the target profile.
// Components: length bonus (0-4), token overlap with the concatenated
// target text (0-3), +3 per contained company, +2 per contained title,
// +3 per contained school, +1 for a contained location.
func ScoreHook(hook string, target types.TargetProfile) int {
	if hook == "" {
		return 0
	}
	score := 0
	hookLower := strings.ToLower(hook)
	targetText := strings.ToLower(classify.TargetText(target))

	lengthBonus := len(hook)
	if lengthBonus > 80 {
		lengthBonus = 80
	}
	score += lengthBonus / 20

	overlap := textutil.OverlapCount(textutil.TokenSet(hook), textutil.TokenSet(targetText))
	if overlap > 3 {
		overlap = 3
	}
	score += overlap

	for _, exp := range target.TopExperiences {
		if company := strings.ToLower(exp.Company); company != "" && strings.Contains(hookLower, company) {
			score += 3
		}
		if title := strings.ToLower(exp.Title); title != "" && strings.Contains(hookLower, title) {
			score += 2
		}
	}
	for _, edu := range target.Education {
		if school := strings.ToLower(edu.School); school != "" && strings.Contains(hookLower, school) {
			score += 3
		}
	}
	if location := strings.ToLower(target.Location); location != "" && strings.Contains(hookLower, location) {
		score++
	}
	return score
}

// Derive builds up to MaxDerivedHooks talking points from the target
// profile itself: role-at-company lines first, then schools, then the raw
// headline.
func Derive(target types.TargetProfile) []string {
	var derived []string
	for _, exp := range target.TopExperiences {
		switch {
		case exp.Title != "" && exp.Company != "" && !textutil.IsLikelyMetadataCompany(exp.Company):
			derived = append(derived, fmt.Sprintf("%s at %s", exp.Title, exp.Company))
		case exp.Company != "" && !textutil.IsLikelyMetadataCompany(exp.Company):
			derived = append(derived, fmt.Sprintf("%s experience", exp.Company))
		case exp.Title != "":
			derived = append(derived, exp.Title)
		}
	}
	for _, edu := range target.Education {
		if edu.School != "" {
			derived = append(derived, fmt.Sprintf("%s alum", edu.School))
		}
	}
	if target.Headline != "" {
		derived = append(derived, target.Headline)
	}
	if len(derived) > types.MaxDerivedHooks {
		derived = derived[:types.MaxDerivedHooks]
	}
	return derived
}

// ScoreAll pairs each hook with its score, for debug traces
func ScoreAll(hookList []string, target types.TargetProfile) []types.ScoredHook {
	scored := make([]types.ScoredHook, 0, len(hookList))
	for _, hook := range hookList {
		scored = append(scored, types.ScoredHook{Hook: hook, Score: ScoreHook(hook, target)})
	}
	return scored
}
