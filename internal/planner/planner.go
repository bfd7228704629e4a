// Package planner runs the deterministic planning pipeline for one
// request: compact the profiles, extract facts, build and select anchors,
// compose the bridge plan, and render the model instruction payload.
package planner

import (
	"sort"
	"strings"

	"github.com/jonathan/outreach-composer/internal/anchors"
	"github.com/jonathan/outreach-composer/internal/bridge"
	"github.com/jonathan/outreach-composer/internal/classify"
	"github.com/jonathan/outreach-composer/internal/facts"
	"github.com/jonathan/outreach-composer/internal/hooks"
	"github.com/jonathan/outreach-composer/internal/proofpoints"
	"github.com/jonathan/outreach-composer/internal/types"
)

// Messages is the instruction payload for the text-generation model
type Messages struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Trace captures every intermediate planning artifact for the request
// log. Nothing downstream reads it back; it exists for debugging.
type Trace struct {
	RequestID         string                   `json:"request_id"`
	ModelName         string                   `json:"model_name"`
	CompactMyProfile  types.SenderProfile      `json:"compact_my_profile"`
	CompactTarget     types.TargetProfile      `json:"compact_target_profile"`
	HooksIn           []string                 `json:"hooks_in"`
	DerivedHooks      []string                 `json:"derived_hooks"`
	HookScoresSorted  []types.ScoredHook       `json:"hook_scores_sorted"`
	DerivedScores     []types.ScoredHook       `json:"derived_scores"`
	TargetTags        []string                 `json:"target_tags"`
	SenderTags        []string                 `json:"sender_tags"`
	RankedProofPoints []types.ScoredProofPoint `json:"ranked_proof_points"`
	AnchorCandidates  []types.Anchor           `json:"anchor_candidates"`
	AnchorPlan        types.AnchorPlan         `json:"anchor_plan"`
	TargetFacts       []types.Fact             `json:"target_facts"`
	BridgePlan        types.BridgePlan         `json:"bridge_plan"`
}

// Context is everything the orchestration layer needs for one attempt
type Context struct {
	Messages   Messages
	BridgePlan types.BridgePlan
	Banlist    []string
	Trace      Trace
}

// BuildContext runs the full planning pipeline. cycleIndex rotates the
// anchor plan across retry attempts; everything else is deterministic.
func BuildContext(req types.GenerateRequest, requestID, modelName string, cycleIndex int) Context {
	sender := req.MyProfile.Compact()
	target := req.TargetProfile.Compact()

	callerHooks := boundHooks(req.Hooks)

	proofPointList := sender.ProofPoints
	if len(proofPointList) == 0 {
		proofPointList = append([]string(nil), FallbackProofPoints...)
		if len(proofPointList) > types.MaxProofPoints {
			proofPointList = proofPointList[:types.MaxProofPoints]
		}
	}

	rules := classify.DefaultRules()
	phrases := classify.DefaultDomainPhrases()
	targetTags := classify.ClassifyTarget(target, rules)
	senderTags := classify.ClassifySender(sender, rules)

	derived := hooks.Derive(target)
	hookScores := hooks.ScoreAll(callerHooks, target)
	if len(hookScores) == 0 {
		hookScores = hooks.ScoreAll(derived, target)
	}
	sort.SliceStable(hookScores, func(i, j int) bool { return hookScores[i].Score > hookScores[j].Score })
	derivedScores := hooks.ScoreAll(derived, target)

	ranked := proofpoints.RankAll(proofPointList, targetTags)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > maxRankedProofTrace {
		ranked = ranked[:maxRankedProofTrace]
	}

	banlist := BuildBanlist(sender)

	candidates := anchors.BuildCandidates(sender, target, callerHooks, derived, senderTags, targetTags, phrases)
	planPool := candidates
	if len(planPool) > maxAnchorsForPlan {
		planPool = planPool[:maxAnchorsForPlan]
	}
	anchorPlan := anchors.SelectPlan(planPool, VariantLabels, cycleIndex)

	targetFacts := facts.BuildTargetFacts(target, rules, phrases)
	bridgePlan := bridge.BuildPlan(
		sender, target, targetTags,
		candidates, anchorPlan,
		ranked, targetFacts, proofPointList,
		anchors.ClassifyType, DefaultTables(),
	)

	trace := Trace{
		RequestID:         requestID,
		ModelName:         modelName,
		CompactMyProfile:  sender,
		CompactTarget:     target,
		HooksIn:           callerHooks,
		DerivedHooks:      derived,
		HookScoresSorted:  hookScores,
		DerivedScores:     derivedScores,
		TargetTags:        targetTags.Sorted(),
		SenderTags:        senderTags.Sorted(),
		RankedProofPoints: ranked,
		AnchorCandidates:  boundAnchors(candidates, maxAnchorTrace),
		AnchorPlan:        anchorPlan,
		TargetFacts:       boundFacts(targetFacts, maxFactTrace),
		BridgePlan:        bridgePlan,
	}

	return Context{
		Messages:   renderMessages(target, targetFacts, bridgePlan, banlist),
		BridgePlan: bridgePlan,
		Banlist:    banlist,
		Trace:      trace,
	}
}

// BuildBanlist combines the base banlist with the sender's bounded
// do-not-say list, dropping blanks.
func BuildBanlist(sender types.SenderProfile) []string {
	combined := make([]string, 0, len(BaseBanlist)+len(sender.DoNotSay))
	combined = append(combined, BaseBanlist...)
	doNotSay := sender.DoNotSay
	if len(doNotSay) > types.MaxDoNotSay {
		doNotSay = doNotSay[:types.MaxDoNotSay]
	}
	combined = append(combined, doNotSay...)

	out := make([]string, 0, len(combined))
	for _, item := range combined {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func boundHooks(in []string) []string {
	out := make([]string, 0, types.MaxCallerHooks)
	for _, hook := range in {
		if hook == "" {
			continue
		}
		out = append(out, hook)
		if len(out) == types.MaxCallerHooks {
			break
		}
	}
	return out
}

func boundAnchors(in []types.Anchor, max int) []types.Anchor {
	if len(in) > max {
		return in[:max]
	}
	return in
}

func boundFacts(in []types.Fact, max int) []types.Fact {
	if len(in) > max {
		return in[:max]
	}
	return in
}
