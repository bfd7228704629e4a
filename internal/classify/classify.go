// Package classify tags profiles with domain categories using a fixed
// regex rule table. The table is configuration, not logic: swap it per
// locale or domain without touching control flow.
package classify

import (
	"regexp"
	"strings"

	"github.com/jonathan/outreach-composer/internal/types"
)

// Tag names produced by the default rule table
const (
	TagAnalytics = "analytics"
	TagProduct   = "product"
	TagCV        = "cv"
	TagCommunity = "community"
	TagFinance   = "finance"
)

// Rule maps one tag to the pattern that triggers it
type Rule struct {
	Tag     string
	Pattern *regexp.Regexp
}

// DefaultRules returns the built-in rule table. Patterns run against
// lowercased concatenated profile text; multiple tags may apply.
func DefaultRules() []Rule {
	return []Rule{
		{TagAnalytics, regexp.MustCompile(`(data|analytics|ml|machine learning|sql|python|bi|business intelligence|stats|statistic|quant|ai)`)},
		{TagProduct, regexp.MustCompile(`(product|pm|product management|growth|roadmap)`)},
		{TagCV, regexp.MustCompile(`(computer vision|vision|opencv|yolo|camera|radar|perception|imaging)`)},
		{TagCommunity, regexp.MustCompile(`(community|partnership|outreach|events|club|association)`)},
		{TagFinance, regexp.MustCompile(`(finance|trading|investment|bank|equity)`)},
	}
}

// ClassifyText applies the rule table to lowercased text. Absence of any
// match yields the empty set, never nil-dereference downstream.
func ClassifyText(text string, rules []Rule) types.TagSet {
	tags := make(types.TagSet)
	lowered := strings.ToLower(text)
	for _, rule := range rules {
		if rule.Pattern.MatchString(lowered) {
			tags[rule.Tag] = true
		}
	}
	return tags
}

// TargetText concatenates the searchable fields of a target profile
func TargetText(target types.TargetProfile) string {
	parts := []string{target.Name, target.Headline, target.Location, target.About}
	for _, exp := range target.TopExperiences {
		parts = append(parts, exp.Title, exp.Company)
	}
	for _, edu := range target.Education {
		parts = append(parts, edu.School)
	}
	return joinNonEmpty(parts)
}

// SenderText concatenates the searchable fields of a sender profile
func SenderText(sender types.SenderProfile) string {
	parts := []string{sender.Headline, sender.Location, sender.InternshipGoal}
	parts = append(parts, sender.Experiences...)
	parts = append(parts, sender.FocusAreas...)
	parts = append(parts, sender.ProofPoints...)
	return joinNonEmpty(parts)
}

// ClassifyTarget tags a target profile using the given rules
func ClassifyTarget(target types.TargetProfile, rules []Rule) types.TagSet {
	return ClassifyText(TargetText(target), rules)
}

// ClassifySender tags a sender profile using the given rules
func ClassifySender(sender types.SenderProfile, rules []Rule) types.TagSet {
	return ClassifyText(SenderText(sender), rules)
}

func joinNonEmpty(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}
