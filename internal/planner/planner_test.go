package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-composer/internal/types"
)

func sampleRequest() types.GenerateRequest {
	return types.GenerateRequest{
		MyProfile: types.SenderProfile{
			Headline:    "Analytics student",
			Location:    "New York, NY",
			Schools:     []string{"Columbia University"},
			Experiences: []string{"Analytics intern at Acme"},
			ProofPoints: []string{"Built SQL dashboards for commercial performance"},
			DoNotSay:    []string{"rockstar"},
		},
		TargetProfile: types.TargetProfile{
			Name:     "Dana",
			Headline: "Data lead at Acme",
			Location: "Brooklyn, NY",
			TopExperiences: []types.Experience{
				{Title: "Data Lead", Company: "Acme"},
			},
			Education: []types.Education{{School: "Columbia University"}},
		},
	}
}

func TestBuildContext_ProducesFullBridgePlan(t *testing.T) {
	ctx := BuildContext(sampleRequest(), "req-1", "model-x", 0)

	assert.Len(t, ctx.BridgePlan, len(VariantLabels))
	for _, label := range VariantLabels {
		entry := ctx.BridgePlan[label]
		assert.NotEmpty(t, entry.HookText, "label %s", label)
		assert.Equal(t, CTAByVariant[label], entry.CTA)
		assert.Empty(t, entry.RequiredToken)
	}
}

func TestBuildContext_TraceCarriesIdentity(t *testing.T) {
	ctx := BuildContext(sampleRequest(), "req-1", "model-x", 0)
	assert.Equal(t, "req-1", ctx.Trace.RequestID)
	assert.Equal(t, "model-x", ctx.Trace.ModelName)
}

func TestBuildContext_MessagesNameTheTarget(t *testing.T) {
	ctx := BuildContext(sampleRequest(), "req-1", "model-x", 0)
	assert.Contains(t, ctx.Messages.User, "TARGET_NAME: Dana")
	assert.Contains(t, ctx.Messages.User, "BRIDGE_PLAN")
	assert.Contains(t, ctx.Messages.User, "BANLIST:")
	assert.NotEmpty(t, ctx.Messages.System)
}

func TestBuildContext_BanlistIncludesDoNotSay(t *testing.T) {
	ctx := BuildContext(sampleRequest(), "req-1", "model-x", 0)
	assert.Contains(t, ctx.Banlist, "rockstar")
	for _, phrase := range BaseBanlist {
		assert.Contains(t, ctx.Banlist, phrase)
	}
}

func TestBuildContext_FallbackProofPointsWhenSenderHasNone(t *testing.T) {
	req := sampleRequest()
	req.MyProfile.ProofPoints = nil
	ctx := BuildContext(req, "req-1", "model-x", 0)

	assert.NotEmpty(t, ctx.Trace.RankedProofPoints)
	for _, label := range VariantLabels {
		assert.NotEmpty(t, ctx.BridgePlan[label].ProofPoint, "label %s", label)
	}
}

func TestBuildContext_HooksBounded(t *testing.T) {
	req := sampleRequest()
	req.Hooks = []string{"one", "", "two", "three", "four"}
	ctx := BuildContext(req, "req-1", "model-x", 0)

	assert.Equal(t, []string{"one", "two", "three"}, ctx.Trace.HooksIn)
}

func TestBuildContext_SharedSchoolAnchorsThePlan(t *testing.T) {
	ctx := BuildContext(sampleRequest(), "req-1", "model-x", 0)

	found := false
	for _, anchor := range ctx.Trace.AnchorCandidates {
		if strings.Contains(anchor.Text, "Columbia University alum") {
			found = true
		}
	}
	assert.True(t, found)
	assert.Equal(t, types.AnchorSchool, ctx.Trace.AnchorPlan["short"].Type)
}

func TestBuildContext_CycleIndexVariesThePlan(t *testing.T) {
	// Deterministic for a fixed cycle index
	first := BuildContext(sampleRequest(), "req-1", "model-x", 0)
	again := BuildContext(sampleRequest(), "req-2", "model-x", 0)
	assert.Equal(t, first.Trace.AnchorPlan, again.Trace.AnchorPlan)
}

func TestBuildBanlist_TrimsAndDropsBlanks(t *testing.T) {
	sender := types.SenderProfile{DoNotSay: []string{" spam ", "", "ninja"}}
	banlist := BuildBanlist(sender)

	assert.Contains(t, banlist, "spam")
	assert.Contains(t, banlist, "ninja")
	assert.NotContains(t, banlist, "")
	assert.NotContains(t, banlist, " spam ")
}
