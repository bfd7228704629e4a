package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-composer/internal/types"
)

func TestClassifyText_MultipleTags(t *testing.T) {
	tags := ClassifyText("Product growth with SQL dashboards", DefaultRules())
	assert.True(t, tags.Has(TagProduct))
	assert.True(t, tags.Has(TagAnalytics))
	assert.False(t, tags.Has(TagCV))
}

func TestClassifyText_NoMatch(t *testing.T) {
	tags := ClassifyText("gardening weekend hobby", DefaultRules())
	assert.Empty(t, tags)
}

func TestClassifyText_CaseInsensitive(t *testing.T) {
	tags := ClassifyText("COMPUTER VISION engineer", DefaultRules())
	assert.True(t, tags.Has(TagCV))
}

func TestClassifyTarget_UsesAllFields(t *testing.T) {
	target := types.TargetProfile{
		Name:     "Dana",
		Headline: "Engineer",
		About:    "Working on perception and imaging systems",
	}
	tags := ClassifyTarget(target, DefaultRules())
	assert.True(t, tags.Has(TagCV))
}

func TestClassifySender_UsesExperiencesAndFocus(t *testing.T) {
	sender := types.SenderProfile{
		Experiences: []string{"Equity research summer role"},
		FocusAreas:  []string{"community events"},
	}
	tags := ClassifySender(sender, DefaultRules())
	assert.True(t, tags.Has(TagFinance))
	assert.True(t, tags.Has(TagCommunity))
}

func TestTargetText_SkipsEmptyFields(t *testing.T) {
	target := types.TargetProfile{
		Name:           "Dana",
		TopExperiences: []types.Experience{{Title: "Engineer", Company: ""}},
	}
	assert.Equal(t, "Dana Engineer", TargetText(target))
}

func TestPhraseFor_KnownTag(t *testing.T) {
	assert.Equal(t, "computer vision", PhraseFor(TagCV, DefaultDomainPhrases()))
}

func TestPhraseFor_UnknownTagFallsBackToRawTag(t *testing.T) {
	assert.Equal(t, "robotics", PhraseFor("robotics", DefaultDomainPhrases()))
}
