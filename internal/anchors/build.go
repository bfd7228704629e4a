// Package anchors generates and selects connection points between a sender
// and a target: shared schools, companies, roles, locations, domain tags,
// and hooks, each with a score and an evidence string.
package anchors

import (
	"fmt"
	"sort"

	"github.com/jonathan/outreach-composer/internal/classify"
	"github.com/jonathan/outreach-composer/internal/hooks"
	"github.com/jonathan/outreach-composer/internal/textutil"
	"github.com/jonathan/outreach-composer/internal/types"
)

// Scores per anchor source. A verified shared school is the strongest
// opener; derived hooks start at the bottom and earn their way up via the
// hook score.
const (
	scoreSchool        = 12
	schoolNYCBonus     = 4
	scoreIndustry      = 10
	scoreCompany       = 9
	scoreRole          = 6
	scoreRoleTitleOnly = 5
	scoreLocation      = 6
	scoreDomain        = 4
	hookBase           = 4
	derivedBase        = 3
)

// BuildCandidates produces the deduplicated, score-descending anchor list
// for one request. Candidates from every source are generated
// independently, then deduped by normalized text keeping the max score.
func BuildCandidates(
	sender types.SenderProfile,
	target types.TargetProfile,
	callerHooks []string,
	derivedHooks []string,
	senderTags types.TagSet,
	targetTags types.TagSet,
	phrases []classify.DomainPhrase,
) []types.Anchor {
	var out []types.Anchor

	bothNYC := textutil.IsNYC(sender.Location) && textutil.IsNYC(target.Location)

	for _, mySchool := range sender.Schools {
		for _, edu := range target.Education {
			if edu.School == "" {
				continue
			}
			required := textutil.SchoolMinOverlap(mySchool, edu.School)
			if !textutil.MatchEntity(mySchool, edu.School, textutil.SchoolStopwords, required) {
				continue
			}
			score := scoreSchool
			text := fmt.Sprintf("%s alum", edu.School)
			if bothNYC {
				score += schoolNYCBonus
				text = fmt.Sprintf("%s alum in NYC", edu.School)
			}
			out = append(out, types.Anchor{
				Type:     types.AnchorSchool,
				Text:     text,
				Score:    score,
				Evidence: fmt.Sprintf("%s + %s + %s", mySchool, edu.School, target.Location),
			})
		}
	}

	for _, exp := range target.TopExperiences {
		company := exp.Company
		title := textutil.CompactRoleTitle(exp.Title)
		realCompany := company != "" && !textutil.IsLikelyMetadataCompany(company)
		if realCompany {
			for _, myExp := range sender.Experiences {
				if textutil.MatchEntity(myExp, company, textutil.CompanyStopwords, 1) {
					out = append(out, types.Anchor{
						Type:     types.AnchorCompany,
						Text:     fmt.Sprintf("Both have experience at %s", company),
						Score:    scoreCompany,
						Evidence: fmt.Sprintf("%s + %s", myExp, company),
					})
				}
			}
		}
		switch {
		case realCompany && title != "":
			out = append(out, types.Anchor{
				Type:     types.AnchorRole,
				Text:     fmt.Sprintf("%s at %s", title, company),
				Score:    scoreRole,
				Evidence: fmt.Sprintf("%s + %s", title, company),
			})
		case title != "":
			out = append(out, types.Anchor{
				Type:     types.AnchorRole,
				Text:     title,
				Score:    scoreRoleTitleOnly,
				Evidence: title,
			})
		}
	}

	if bothNYC {
		out = append(out, types.Anchor{
			Type:     types.AnchorLocation,
			Text:     "Both based in NYC",
			Score:    scoreLocation,
			Evidence: fmt.Sprintf("%s + %s", sender.Location, target.Location),
		})
	}

	// Shared tags beat target-only tags: a genuinely common background is
	// worth more than guessing at the target's field.
	for _, tag := range targetTags.Sorted() {
		if senderTags.Has(tag) {
			out = append(out, types.Anchor{
				Type:     types.AnchorIndustry,
				Text:     fmt.Sprintf("Shared background in %s", classify.PhraseFor(tag, phrases)),
				Score:    scoreIndustry,
				Evidence: fmt.Sprintf("shared_tag=%s", tag),
			})
		}
	}

	for _, fallback := range domainFallbacks {
		if targetTags.Has(fallback.tag) && !senderTags.Has(fallback.tag) {
			out = append(out, types.Anchor{
				Type:     types.AnchorDomain,
				Text:     fallback.text,
				Score:    scoreDomain,
				Evidence: fmt.Sprintf("target_tags=%s", fallback.tag),
			})
		}
	}

	for _, hook := range callerHooks {
		out = append(out, types.Anchor{
			Type:     types.AnchorHook,
			Text:     hook,
			Score:    hookBase + hooks.ScoreHook(hook, target),
			Evidence: "extension hook",
		})
	}
	for _, hook := range derivedHooks {
		out = append(out, types.Anchor{
			Type:     types.AnchorDerived,
			Text:     hook,
			Score:    derivedBase + hooks.ScoreHook(hook, target),
			Evidence: "derived hook",
		})
	}

	return dedupeAndSort(out)
}

// domainFallbacks are the weak target-only domain anchors: a safety net
// when no shared-tag anchor exists.
var domainFallbacks = []struct {
	tag  string
	text string
}{
	{classify.TagCV, "Shared focus on computer vision"},
	{classify.TagAnalytics, "Shared focus on analytics/data"},
	{classify.TagProduct, "Shared product/analytics focus"},
}

// ClassifyType normalizes an anchor's type, mapping anything unknown to
// AnchorOther.
func ClassifyType(anchor types.Anchor) types.AnchorType {
	switch anchor.Type {
	case types.AnchorSchool, types.AnchorIndustry, types.AnchorCompany, types.AnchorRole,
		types.AnchorLocation, types.AnchorDomain, types.AnchorHook, types.AnchorDerived:
		return anchor.Type
	}
	return types.AnchorOther
}

func dedupeAndSort(in []types.Anchor) []types.Anchor {
	index := make(map[string]int, len(in))
	deduped := make([]types.Anchor, 0, len(in))
	for _, anchor := range in {
		key := textutil.NormalizeKey(anchor.Text)
		if key == "" {
			continue
		}
		if at, seen := index[key]; seen {
			if anchor.Score > deduped[at].Score {
				deduped[at] = anchor
			}
			continue
		}
		index[key] = len(deduped)
		deduped = append(deduped, anchor)
	}
	sort.SliceStable(deduped, func(i, j int) bool { return deduped[i].Score > deduped[j].Score })
	return deduped
}
