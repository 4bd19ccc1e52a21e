// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/witcheck/internal/proposals"
	"github.com/jonathan/witcheck/internal/types"
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintViolations outputs a per-kind tally and the first few missing annotations.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL DECLARATIONS ANNOTATED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d missing annotation(s):\n\n", len(violations.Violations)))

	counts := violations.CountByKind()
	for _, kind := range types.DeclarationKinds {
		if n := counts[kind]; n > 0 {
			sb.WriteString(fmt.Sprintf("  %-10s %d\n", kind, n))
		}
	}
	sb.WriteString("\n")

	count := min(len(violations.Violations), maxItemsToShow)
	for i := 0; i < count; i++ {
		v := violations.Violations[i]
		sb.WriteString(fmt.Sprintf("⚠ %s '%s'\n", v.Declaration, v.Name))
		sb.WriteString(fmt.Sprintf("  %s:%d\n", v.File, v.Line))
	}
	if len(violations.Violations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(violations.Violations)-maxItemsToShow))
	}

	p.printBox("MISSING VERSION ANNOTATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProposalResults outputs a pass/fail line per validated proposal.
func (p *Printer) PrintProposalResults(results []proposals.Result) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	passed := 0
	for _, r := range results {
		if !r.Failed() {
			passed++
			sb.WriteString(fmt.Sprintf("✓ %s\n", r.Target.Label()))
			continue
		}
		steps := append([]string(nil), r.FailedSteps...)
		sort.Strings(steps)
		sb.WriteString(fmt.Sprintf("✗ %s\n", r.Target.Label()))
		sb.WriteString(fmt.Sprintf("  [%s]\n", strings.Join(steps, ", ")))
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d proposal(s) passed", passed, len(results)))

	p.printBox("PROPOSAL VALIDATION", sb.String())
}
