// Package facts derives a ranked list of verifiable facts about a target
// profile. Facts never reference the sender; they are what a generated
// message can safely claim about the recipient.
package facts

import (
	"fmt"
	"sort"

	"github.com/jonathan/outreach-composer/internal/classify"
	"github.com/jonathan/outreach-composer/internal/textutil"
	"github.com/jonathan/outreach-composer/internal/types"
)

// Scores per fact source. Role-at-company is the strongest signal;
// a bare location barely registers.
const (
	scoreRoleCompany    = 12
	scoreCompany        = 10
	scoreTitleAsCompany = 9
	scoreSchool         = 9
	scoreDomain         = 6
	scoreHeadline       = 4
	scoreLocation       = 3

	schoolBoost        = 2
	headlineFactMaxLen = 60
)

// BuildTargetFacts extracts facts from a compact target profile, deduped by
// normalized text (highest score wins) and sorted descending by score with
// insertion order as the tie-break.
func BuildTargetFacts(target types.TargetProfile, rules []classify.Rule, phrases []classify.DomainPhrase) []types.Fact {
	var out []types.Fact

	for _, exp := range target.TopExperiences {
		title := textutil.CompactRoleTitle(exp.Title)
		if title != "" && exp.Company != "" && !textutil.IsLikelyMetadataCompany(exp.Company) {
			out = append(out, types.Fact{
				Type:  types.FactRoleCompany,
				Text:  fmt.Sprintf("%s at %s", title, exp.Company),
				Score: scoreRoleCompany,
			})
			break
		}
	}

	for _, exp := range target.TopExperiences {
		title := textutil.CompactRoleTitle(exp.Title)
		switch {
		case exp.Company != "" && !textutil.IsLikelyMetadataCompany(exp.Company):
			out = append(out, types.Fact{Type: types.FactCompany, Text: exp.Company, Score: scoreCompany})
		case title != "" && !textutil.IsLikelyMetadataCompany(title):
			out = append(out, types.Fact{Type: types.FactCompany, Text: title, Score: scoreTitleAsCompany})
		}
	}

	if len(target.Education) > 0 && target.Education[0].School != "" {
		out = append(out, types.Fact{
			Type:  types.FactSchool,
			Text:  fmt.Sprintf("%s alum", target.Education[0].School),
			Score: scoreSchool,
		})
	}

	// Domain facts come from headline+about only; experience text already
	// produced stronger facts above.
	domainTags := classify.ClassifyText(target.Headline+" "+target.About, rules)
	for _, entry := range phrases {
		if domainTags.Has(entry.Tag) {
			out = append(out, types.Fact{Type: types.FactDomain, Text: entry.Phrase, Score: scoreDomain})
		}
	}

	if target.Headline != "" {
		out = append(out, types.Fact{
			Type:  types.FactHeadline,
			Text:  textutil.Truncate(target.Headline, headlineFactMaxLen),
			Score: scoreHeadline,
		})
	}

	if target.Location != "" && textutil.IsNYC(target.Location) {
		out = append(out, types.Fact{Type: types.FactLocation, Text: "NYC", Score: scoreLocation})
	}

	return dedupeAndSort(out)
}

// BoostSchoolFacts adds schoolBoost to any school fact whose school
// entity-matches one of the sender's schools. The required token overlap
// scales with name length: single-token names match on containment or one
// shared token, multi-token names need two.
func BoostSchoolFacts(sender types.SenderProfile, targetFacts []types.Fact) []types.Fact {
	boosted := make([]types.Fact, 0, len(targetFacts))
	for _, fact := range targetFacts {
		score := fact.Score
		if fact.Type == types.FactSchool && len(sender.Schools) > 0 {
			school := schoolFromFact(fact.Text)
			for _, mySchool := range sender.Schools {
				required := textutil.SchoolMinOverlap(mySchool, school)
				if textutil.MatchEntity(mySchool, school, textutil.SchoolStopwords, required) {
					score += schoolBoost
					break
				}
			}
		}
		boosted = append(boosted, types.Fact{Type: fact.Type, Text: fact.Text, Score: score})
	}
	sort.SliceStable(boosted, func(i, j int) bool { return boosted[i].Score > boosted[j].Score })
	return boosted
}

// HighSignal returns the first role_company/company/school fact, if any
func HighSignal(ranked []types.Fact) (types.Fact, bool) {
	for _, fact := range ranked {
		switch fact.Type {
		case types.FactRoleCompany, types.FactCompany, types.FactSchool:
			return fact, true
		}
	}
	return types.Fact{}, false
}

func schoolFromFact(text string) string {
	const suffix = " alum"
	if len(text) > len(suffix) && text[len(text)-len(suffix):] == suffix {
		return text[:len(text)-len(suffix)]
	}
	return text
}

func dedupeAndSort(in []types.Fact) []types.Fact {
	index := make(map[string]int, len(in))
	deduped := make([]types.Fact, 0, len(in))
	for _, fact := range in {
		key := textutil.NormalizeKey(fact.Text)
		if key == "" {
			continue
		}
		if at, seen := index[key]; seen {
			if fact.Score > deduped[at].Score {
				deduped[at] = fact
			}
			continue
		}
		index[key] = len(deduped)
		deduped = append(deduped, fact)
	}
	sort.SliceStable(deduped, func(i, j int) bool { return deduped[i].Score > deduped[j].Score })
	return deduped
}
