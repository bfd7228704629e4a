package anchors

import (
	"github.com/jonathan/outreach-composer/internal/textutil"
	"github.com/jonathan/outreach-composer/internal/types"
)

// SelectPlan assigns one anchor per variant label, maximizing diversity of
// anchor type and avoiding text repeats across variants.
//
// School anchors seed the first variant and industry anchors the next:
// those two types are strong enough that a plan should always surface them
// when available. Each remaining variant takes, in preference order, an
// anchor with unused text and unused type, then merely unused text, then an
// unused type, then the rotated head of the list as a last resort.
//
// cycleIndex rotates the pick within each candidate set so repeated calls
// with the same inputs can vary the plan across retry attempts. With an
// empty pool the plan is empty for all variants.
func SelectPlan(candidates []types.Anchor, labels []string, cycleIndex int) types.AnchorPlan {
	plan := make(types.AnchorPlan)
	if len(candidates) == 0 || len(labels) == 0 {
		return plan
	}
	if cycleIndex < 0 {
		cycleIndex = 0
	}

	usedTypes := make(map[types.AnchorType]bool)
	usedTexts := make(map[string]bool)
	next := 0

	assign := func(anchor types.Anchor) {
		plan[labels[next]] = anchor
		usedTypes[ClassifyType(anchor)] = true
		usedTexts[textutil.NormalizeKey(anchor.Text)] = true
		next++
	}

	for _, seedType := range []types.AnchorType{types.AnchorSchool, types.AnchorIndustry} {
		if next >= len(labels) {
			break
		}
		matches := filterAnchors(candidates, func(a types.Anchor) bool {
			return ClassifyType(a) == seedType && !usedTexts[textutil.NormalizeKey(a.Text)]
		})
		if len(matches) > 0 {
			assign(pickRotated(matches, cycleIndex))
		}
	}

	for next < len(labels) {
		unusedBoth := filterAnchors(candidates, func(a types.Anchor) bool {
			return !usedTexts[textutil.NormalizeKey(a.Text)] && !usedTypes[ClassifyType(a)]
		})
		if len(unusedBoth) > 0 {
			assign(pickRotated(unusedBoth, cycleIndex))
			continue
		}
		unusedText := filterAnchors(candidates, func(a types.Anchor) bool {
			return !usedTexts[textutil.NormalizeKey(a.Text)]
		})
		if len(unusedText) > 0 {
			assign(pickRotated(unusedText, cycleIndex))
			continue
		}
		unusedType := filterAnchors(candidates, func(a types.Anchor) bool {
			return !usedTypes[ClassifyType(a)]
		})
		if len(unusedType) > 0 {
			assign(unusedType[0])
			continue
		}
		assign(pickRotated(candidates, cycleIndex))
	}

	return plan
}

func filterAnchors(in []types.Anchor, keep func(types.Anchor) bool) []types.Anchor {
	var out []types.Anchor
	for _, anchor := range in {
		if keep(anchor) {
			out = append(out, anchor)
		}
	}
	return out
}

func pickRotated(matches []types.Anchor, cycleIndex int) types.Anchor {
	return matches[cycleIndex%len(matches)]
}
