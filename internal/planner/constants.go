package planner

import (
	"github.com/jonathan/outreach-composer/internal/bridge"
	"github.com/jonathan/outreach-composer/internal/classify"
)

// VariantLabels are the three message drafts produced per request, in
// plan order.
var VariantLabels = []string{"short", "direct", "warm"}

// CTAByVariant is the fixed closing line per variant
var CTAByVariant = map[string]string{
	"short":  "Open to connect?",
	"direct": "Open to a quick chat?",
	"warm":   "Worth connecting?",
}

// BaseBanlist holds phrases a connection note must never contain; the
// sender's do-not-say list is appended per request.
var BaseBanlist = []string{
	"hope you are well",
	"impressive",
	"pick your brain",
	"leverage",
	"synergy",
	"reach out",
	"would love to learn more",
	"amazing",
	"incredible",
	"admire",
	"inspiring",
}

// FallbackProofPoints stand in when the sender supplies none, so the
// bridge plan never ships without a credibility line.
var FallbackProofPoints = []string{
	"Built production-grade pipelines on European accounting data at Chanel; automated data-quality checks in pandas",
	"Shipped analytics tools and monitoring dashboards for commercial performance at Sigma Group",
	"Prototyped vehicle-tracking with camera + radar context at Forvia using YOLO/OpenCV",
	"VP Outreach & Partnerships at Columbia Product Managers Club (speaker outreach + partnerships + events)",
	"Daily stack: Python, pandas, SQL; ML foundations; dashboards and decision-support",
	"Based in NYC; targeting Summer 2026 analytics/product/data internship",
}

// Trace and selection bounds
const (
	maxAnchorsForPlan   = 8
	maxRankedProofTrace = 6
	maxAnchorTrace      = 10
	maxFactTrace        = 5
)

// DefaultTables returns the fixed lookup tables handed to the bridge
// builder. Intent templates are tried in order; the first tag present on
// the target wins.
func DefaultTables() bridge.Tables {
	return bridge.Tables{
		VariantLabels: VariantLabels,
		CTAByVariant:  CTAByVariant,
		IntentByTag: []bridge.IntentTemplate{
			{Tag: classify.TagCV, Format: "Curious what you're building in vision at %s"},
			{Tag: classify.TagFinance, Format: "Curious what you focus on in %s"},
			{Tag: classify.TagProduct, Format: "Curious how you think about product/growth at %s"},
			{Tag: classify.TagAnalytics, Format: "Curious how you apply analytics at %s"},
			{Tag: classify.TagCommunity, Format: "Curious about your outreach/community work at %s"},
		},
		GenericIntent: "Curious about your path at %s",
	}
}
