// Package proofpoints picks the sender-side credibility statement that best
// matches a chosen anchor's theme.
package proofpoints

import (
	"regexp"
	"strings"

	"github.com/jonathan/outreach-composer/internal/classify"
	"github.com/jonathan/outreach-composer/internal/types"
)

// Theme patterns, tried in fixed priority order when their gate applies
var (
	cvPattern        = regexp.MustCompile(`(yolo|opencv|vision|camera|radar|tracking)`)
	communityPattern = regexp.MustCompile(`(outreach|partnership|club|speaker|events)`)
	productPattern   = regexp.MustCompile(`(product management|pm\b|growth|decision-support|dashboard|roadmap)`)
	financePattern   = regexp.MustCompile(`(accounting|pricing|performance|forecast)`)
	analyticsPattern = regexp.MustCompile(`(pipeline|data-quality|pandas|sql|monitoring|dashboard|accounting|analytics)`)
)

// Tag-fit patterns used by ScoreProofPoint; slightly wider than the theme
// patterns above because fit scoring rewards any related vocabulary.
var (
	analyticsFitRe = regexp.MustCompile(`(pipeline|data-quality|analytics|dashboard|pandas|sql|monitoring|accounting)`)
	productFitRe   = regexp.MustCompile(`(product|decision-support|dashboard)`)
	financeFitRe   = regexp.MustCompile(`(accounting|commercial|performance|forecast|pricing)`)
)

// Strength heuristic patterns: prefer concrete, credible achievements over
// generic or self-targeting lines.
var (
	actionVerbRe = regexp.MustCompile(`\b(built|shipped|prototyped|automated|deployed|launched|owned|delivered)\b`)
	concreteRe   = regexp.MustCompile(`\b(pipeline|data-quality|monitoring|dashboard|pandas|sql|opencv|yolo|camera|radar)\b`)
	disclaimerRe = regexp.MustCompile(`\b(targeting|internship|internships)\b`)
	fillerRe     = regexp.MustCompile(`\b(student|dual degree|based in|core stack)\b`)
)

const minStrongScore = 2

// ScoreProofPoint rates how well a proof point fits the target's tags
func ScoreProofPoint(point string, tags types.TagSet) int {
	lowered := strings.ToLower(point)
	score := 1
	if tags.Has(classify.TagCV) && cvPattern.MatchString(lowered) {
		score += 4
	}
	if tags.Has(classify.TagAnalytics) && analyticsFitRe.MatchString(lowered) {
		score += 4
	}
	if tags.Has(classify.TagProduct) && productFitRe.MatchString(lowered) {
		score += 2
	}
	if tags.Has(classify.TagCommunity) && communityPattern.MatchString(lowered) {
		score += 4
	}
	if tags.Has(classify.TagFinance) && financeFitRe.MatchString(lowered) {
		score += 2
	}
	return score
}

// StrengthScore rates how concrete and credible a proof point reads on its
// own: action verbs and deliverables up, disclaimers and biography down.
func StrengthScore(point string) int {
	lowered := strings.ToLower(point)
	score := 0
	if actionVerbRe.MatchString(lowered) {
		score += 6
	}
	if concreteRe.MatchString(lowered) {
		score += 3
	}
	if disclaimerRe.MatchString(lowered) {
		score -= 8
	}
	if fillerRe.MatchString(lowered) {
		score -= 4
	}
	return score
}

// SelectForVariant picks the proof point whose theme best matches the
// chosen anchor. Patterns apply in fixed priority (cv, then
// school/community, then product, then finance, then generic analytics);
// the first pattern with any match wins, and ties within a pattern go to
// the strongest, then shortest, then first proof point. With no pattern
// match the externally-ranked list, then the strongest point overall, then
// any point serve as fallbacks.
func SelectForVariant(
	tags types.TagSet,
	anchorType types.AnchorType,
	proofPoints []string,
	ranked []types.ScoredProofPoint,
) string {
	type gated struct {
		applies bool
		pattern *regexp.Regexp
	}
	order := []gated{
		{tags.Has(classify.TagCV), cvPattern},
		{anchorType == types.AnchorSchool || tags.Has(classify.TagCommunity), communityPattern},
		{tags.Has(classify.TagProduct), productPattern},
		{tags.Has(classify.TagFinance), financePattern},
		{true, analyticsPattern},
	}
	for _, entry := range order {
		if !entry.applies {
			continue
		}
		var matches []string
		for _, point := range proofPoints {
			if entry.pattern.MatchString(strings.ToLower(point)) {
				matches = append(matches, point)
			}
		}
		if picked, ok := pickBest(matches); ok {
			return picked
		}
	}

	if len(ranked) > 0 {
		var rankedPoints []string
		for _, item := range ranked {
			if item.Point != "" {
				rankedPoints = append(rankedPoints, item.Point)
			}
		}
		if picked, ok := pickBest(rankedPoints); ok {
			return picked
		}
	}

	var strong []string
	for _, point := range proofPoints {
		if StrengthScore(point) >= minStrongScore {
			strong = append(strong, point)
		}
	}
	if picked, ok := pickBest(strong); ok {
		return picked
	}
	if picked, ok := pickBest(proofPoints); ok {
		return picked
	}
	return ""
}

// RankAll scores every proof point against the target tags for the debug
// trace and the ranked fallback list.
func RankAll(proofPoints []string, tags types.TagSet) []types.ScoredProofPoint {
	scored := make([]types.ScoredProofPoint, 0, len(proofPoints))
	for _, point := range proofPoints {
		scored = append(scored, types.ScoredProofPoint{
			Point: point,
			Score: ScoreProofPoint(point, tags) + StrengthScore(point),
		})
	}
	return scored
}

func pickBest(candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	best := candidates[0]
	bestStrength := StrengthScore(best)
	for _, candidate := range candidates[1:] {
		strength := StrengthScore(candidate)
		if strength > bestStrength || (strength == bestStrength && len(candidate) < len(best)) {
			best = candidate
			bestStrength = strength
		}
	}
	return best, true
}
