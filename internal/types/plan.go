package types

import "sort"

// FactType classifies where a target fact came from
type FactType string

// Fact types, ordered roughly by signal strength
const (
	FactRoleCompany FactType = "role_company"
	FactCompany     FactType = "company"
	FactSchool      FactType = "school"
	FactDomain      FactType = "domain"
	FactHeadline    FactType = "headline"
	FactLocation    FactType = "location"
)

// Fact is a verifiable, target-only statement with a heuristic score.
// Facts never reference the sender.
type Fact struct {
	Type  FactType `json:"type"`
	Text  string   `json:"text"`
	Score int      `json:"score"`
}

// AnchorType classifies the provenance of a connection point
type AnchorType string

// Anchor types
const (
	AnchorSchool   AnchorType = "school"
	AnchorIndustry AnchorType = "industry"
	AnchorCompany  AnchorType = "company"
	AnchorRole     AnchorType = "role"
	AnchorLocation AnchorType = "location"
	AnchorDomain   AnchorType = "domain"
	AnchorHook     AnchorType = "hook"
	AnchorDerived  AnchorType = "derived"
	AnchorOther    AnchorType = "other"
)

// Anchor is a candidate shared-connection point between sender and target
type Anchor struct {
	Type     AnchorType `json:"type"`
	Text     string     `json:"text"`
	Score    int        `json:"score"`
	Evidence string     `json:"evidence"`
}

// AnchorPlan maps a variant label to its single chosen anchor
type AnchorPlan map[string]Anchor

// BridgeEntry is the per-variant contract of strings a generated message
// must incorporate. RequiredToken is preserved for forward compatibility
// but is currently always empty.
type BridgeEntry struct {
	TargetFact    string `json:"target_fact"`
	HookText      string `json:"hook_text"`
	ProofPoint    string `json:"proof_point"`
	Intent        string `json:"intent"`
	CTA           string `json:"cta"`
	RequiredToken string `json:"required_token"`
}

// BridgePlan maps a variant label to its bridge entry
type BridgePlan map[string]BridgeEntry

// Variant is one labeled message draft produced by the model
type Variant struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
}

// TagSet is a set of domain tags produced by the classifier
type TagSet map[string]bool

// Has reports whether the tag is present
func (t TagSet) Has(tag string) bool { return t[tag] }

// Sorted returns the tags in lexical order, for stable logging
func (t TagSet) Sorted() []string {
	tags := make([]string, 0, len(t))
	for tag := range t {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ScoredHook pairs a hook with its specificity score, for debug traces
type ScoredHook struct {
	Hook  string `json:"hook"`
	Score int    `json:"score"`
}

// ScoredProofPoint pairs a proof point with its combined score
type ScoredProofPoint struct {
	Point string `json:"point"`
	Score int    `json:"score"`
}
