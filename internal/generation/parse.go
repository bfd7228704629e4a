// Package generation orchestrates model calls for one request: plan,
// prompt, parse, trim, validate, retry, and audit-log.
package generation

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/outreach-composer/internal/planner"
	"github.com/jonathan/outreach-composer/internal/types"
	"github.com/jonathan/outreach-composer/internal/validation"
)

var fenceRe = regexp.MustCompile("(?i)```(?:json)?\\s*([\\s\\S]*?)```")

type rawVariant struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
}

type rawResponse struct {
	Variants []rawVariant `json:"variants"`
}

// ParseVariants extracts the variant list from free-form model output.
// Fenced code blocks are unwrapped and, failing a direct parse, the
// outermost brace-delimited slice is retried before giving up.
func ParseVariants(content string) ([]types.Variant, bool) {
	raw, ok := parseJSONContent(content)
	if !ok {
		return nil, false
	}
	return normalizeVariants(raw.Variants), true
}

func parseJSONContent(content string) (rawResponse, bool) {
	var parsed rawResponse
	if content == "" {
		return parsed, false
	}
	candidate := strings.TrimSpace(content)
	if match := fenceRe.FindStringSubmatch(candidate); match != nil {
		candidate = strings.TrimSpace(match[1])
	}
	if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
		return parsed, true
	}
	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end <= start {
		return parsed, false
	}
	if err := json.Unmarshal([]byte(candidate[start:end+1]), &parsed); err != nil {
		return rawResponse{}, false
	}
	return parsed, true
}

// normalizeVariants drops empty drafts, caps runaway text, and forces the
// expected label sequence onto mislabeled items.
func normalizeVariants(items []rawVariant) []types.Variant {
	var variants []types.Variant
	for index, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		if len(text) > validation.MaxVariantLen {
			text = strings.TrimRight(text[:validation.MaxVariantLen-3], " ") + "..."
		}
		label := strings.ToLower(strings.TrimSpace(item.Label))
		if !isKnownLabel(label) {
			if index < len(planner.VariantLabels) {
				label = planner.VariantLabels[index]
			} else {
				label = "variant"
			}
		}
		variants = append(variants, types.Variant{Label: label, Text: text, CharCount: len(text)})
	}
	return variants
}

func isKnownLabel(label string) bool {
	for _, known := range planner.VariantLabels {
		if label == known {
			return true
		}
	}
	return false
}
