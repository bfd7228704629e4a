// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/outreach-composer/internal/generation"
	"github.com/jonathan/outreach-composer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTargetFacts outputs the ranked facts extracted from the target profile.
func (p *Printer) PrintTargetFacts(facts []types.Fact) {
	if len(facts) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(facts), maxItemsToShow)
	for i := 0; i < count; i++ {
		fact := facts[i]
		text := fact.Text
		if len(text) > 40 {
			text = text[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  [%s] %s\n", i+1, fact.Type, text))
		sb.WriteString(fmt.Sprintf("    Score: %d\n", fact.Score))
	}
	if len(facts) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more facts", len(facts)-maxItemsToShow))
	}

	p.printBox("RANKED TARGET FACTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnchorCandidates outputs the scored anchor pool.
func (p *Printer) PrintAnchorCandidates(candidates []types.Anchor) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates: %d\n\n", len(candidates)))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		anchor := candidates[i]
		text := anchor.Text
		if len(text) > 40 {
			text = text[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("• [%s] %s\n", anchor.Type, text))
		sb.WriteString(fmt.Sprintf("  Score: %d", anchor.Score))
		if anchor.Evidence != "" {
			evidence := anchor.Evidence
			if len(evidence) > 30 {
				evidence = evidence[:27] + "..."
			}
			sb.WriteString(fmt.Sprintf("  (%s)", evidence))
		}
		sb.WriteString("\n")
	}
	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(candidates)-maxItemsToShow))
	}

	p.printBox("ANCHOR CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBridgePlan outputs the per-variant writing plan.
func (p *Printer) PrintBridgePlan(labels []string, plan types.BridgePlan) {
	if len(plan) == 0 {
		return
	}

	var sb strings.Builder
	for i, label := range labels {
		entry, ok := plan[label]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", label))
		sb.WriteString(fmt.Sprintf("  fact:  %s\n", clip(entry.TargetFact, 45)))
		sb.WriteString(fmt.Sprintf("  hook:  %s\n", clip(entry.HookText, 45)))
		sb.WriteString(fmt.Sprintf("  proof: %s\n", clip(entry.ProofPoint, 45)))
		sb.WriteString(fmt.Sprintf("  cta:   %s\n", clip(entry.CTA, 45)))
		if i < len(labels)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("BRIDGE PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidations outputs any constraint violations found per variant.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidations(validations []generation.VariantValidation) {
	total := 0
	for _, v := range validations {
		total += len(v.Violations)
	}
	if total == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", total))
	for _, v := range validations {
		if len(v.Violations) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", v.Label))
		for _, violation := range v.Violations {
			sb.WriteString(fmt.Sprintf("  %s\n", violation))
		}
	}

	p.printBox("CONSTRAINT VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVariants outputs the final variant texts with character counts.
func (p *Printer) PrintVariants(variants []types.Variant) {
	if len(variants) == 0 {
		return
	}

	var sb strings.Builder
	for i, variant := range variants {
		sb.WriteString(fmt.Sprintf("%s (%d chars):\n", variant.Label, variant.CharCount))
		for _, line := range wrapText(variant.Text, boxWidth-8) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
		if i < len(variants)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("GENERATED VARIANTS", strings.TrimSuffix(sb.String(), "\n"))
}

func clip(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit-3] + "..."
}

// wrapText breaks text into lines of at most width characters on word
// boundaries.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
