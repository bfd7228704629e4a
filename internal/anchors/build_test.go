package anchors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-composer/internal/classify"
	"github.com/jonathan/outreach-composer/internal/types"
)

func build(sender types.SenderProfile, target types.TargetProfile, senderTags, targetTags types.TagSet) []types.Anchor {
	return BuildCandidates(sender, target, nil, nil, senderTags, targetTags, classify.DefaultDomainPhrases())
}

func findAnchor(t *testing.T, anchors []types.Anchor, text string) types.Anchor {
	t.Helper()
	for _, anchor := range anchors {
		if anchor.Text == text {
			return anchor
		}
	}
	t.Fatalf("anchor %q not found in %v", text, anchors)
	return types.Anchor{}
}

func TestBuildCandidates_SharedSchoolInNYC(t *testing.T) {
	sender := types.SenderProfile{
		Location: "New York, NY",
		Schools:  []string{"Columbia University"},
	}
	target := types.TargetProfile{
		Location:  "Brooklyn, NY",
		Education: []types.Education{{School: "Columbia University"}},
	}
	candidates := build(sender, target, types.TagSet{}, types.TagSet{})

	school := findAnchor(t, candidates, "Columbia University alum in NYC")
	assert.Equal(t, types.AnchorSchool, school.Type)
	assert.Equal(t, 16, school.Score)
	assert.Equal(t, school, candidates[0])
}

func TestBuildCandidates_SharedSchoolOutsideNYC(t *testing.T) {
	sender := types.SenderProfile{Schools: []string{"Columbia College"}}
	target := types.TargetProfile{
		Education: []types.Education{{School: "Columbia University"}},
	}
	candidates := build(sender, target, types.TagSet{}, types.TagSet{})

	school := findAnchor(t, candidates, "Columbia University alum")
	assert.Equal(t, 12, school.Score)
}

func TestBuildCandidates_CompanyAndRole(t *testing.T) {
	sender := types.SenderProfile{
		Experiences: []string{"Analytics intern at Acme Corp"},
	}
	target := types.TargetProfile{
		TopExperiences: []types.Experience{{Title: "Engineer", Company: "Acme Corp"}},
	}
	candidates := build(sender, target, types.TagSet{}, types.TagSet{})

	company := findAnchor(t, candidates, "Both have experience at Acme Corp")
	assert.Equal(t, types.AnchorCompany, company.Type)
	assert.Equal(t, 9, company.Score)

	role := findAnchor(t, candidates, "Engineer at Acme Corp")
	assert.Equal(t, types.AnchorRole, role.Type)
	assert.Equal(t, 6, role.Score)
}

func TestBuildCandidates_TitleOnlyRole(t *testing.T) {
	target := types.TargetProfile{
		TopExperiences: []types.Experience{{Title: "Engineer"}},
	}
	candidates := build(types.SenderProfile{}, target, types.TagSet{}, types.TagSet{})

	role := findAnchor(t, candidates, "Engineer")
	assert.Equal(t, 5, role.Score)
}

func TestBuildCandidates_SharedTagBeatsTargetOnlyTag(t *testing.T) {
	senderTags := types.TagSet{classify.TagAnalytics: true}
	targetTags := types.TagSet{classify.TagAnalytics: true, classify.TagProduct: true}
	candidates := build(types.SenderProfile{}, types.TargetProfile{}, senderTags, targetTags)

	industry := findAnchor(t, candidates, "Shared background in analytics")
	assert.Equal(t, types.AnchorIndustry, industry.Type)
	assert.Equal(t, 10, industry.Score)

	fallback := findAnchor(t, candidates, "Shared product/analytics focus")
	assert.Equal(t, types.AnchorDomain, fallback.Type)
	assert.Equal(t, 4, fallback.Score)
}

func TestBuildCandidates_NoDomainFallbackWhenTagShared(t *testing.T) {
	senderTags := types.TagSet{classify.TagCV: true}
	targetTags := types.TagSet{classify.TagCV: true}
	candidates := build(types.SenderProfile{}, types.TargetProfile{}, senderTags, targetTags)

	for _, anchor := range candidates {
		assert.NotEqual(t, types.AnchorDomain, anchor.Type)
	}
}

func TestBuildCandidates_LocationAnchor(t *testing.T) {
	sender := types.SenderProfile{Location: "NYC"}
	target := types.TargetProfile{Location: "New York"}
	candidates := build(sender, target, types.TagSet{}, types.TagSet{})

	location := findAnchor(t, candidates, "Both based in NYC")
	assert.Equal(t, 6, location.Score)
}

func TestBuildCandidates_HooksScoredAboveBase(t *testing.T) {
	target := types.TargetProfile{
		TopExperiences: []types.Experience{{Title: "Engineer", Company: "Acme"}},
	}
	candidates := BuildCandidates(
		types.SenderProfile{}, target,
		[]string{"saw your talk on Acme data pipelines"},
		[]string{"Engineer at Acme"},
		types.TagSet{}, types.TagSet{}, classify.DefaultDomainPhrases(),
	)

	hook := findAnchor(t, candidates, "saw your talk on Acme data pipelines")
	assert.Equal(t, types.AnchorHook, hook.Type)
	assert.Greater(t, hook.Score, 4)

	derived := findAnchor(t, candidates, "Engineer at Acme")
	assert.Equal(t, types.AnchorDerived, derived.Type)
	assert.Greater(t, derived.Score, 3)
}

func TestBuildCandidates_Empty(t *testing.T) {
	candidates := build(types.SenderProfile{}, types.TargetProfile{}, types.TagSet{}, types.TagSet{})
	assert.Empty(t, candidates)
}

func TestBuildCandidates_DedupesKeepingMaxScore(t *testing.T) {
	// The derived hook repeats the role anchor text; only one anchor
	// survives with the higher score.
	target := types.TargetProfile{
		TopExperiences: []types.Experience{{Title: "Engineer", Company: "Acme"}},
	}
	candidates := BuildCandidates(
		types.SenderProfile{}, target,
		nil, []string{"Engineer at Acme"},
		types.TagSet{}, types.TagSet{}, classify.DefaultDomainPhrases(),
	)

	count := 0
	for _, anchor := range candidates {
		if anchor.Text == "Engineer at Acme" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestClassifyType_UnknownMapsToOther(t *testing.T) {
	assert.Equal(t, types.AnchorOther, ClassifyType(types.Anchor{Type: "mystery"}))
	assert.Equal(t, types.AnchorSchool, ClassifyType(types.Anchor{Type: types.AnchorSchool}))
}
