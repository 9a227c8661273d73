// Package observability renders keyword, score and plan summaries for the
// CLI's human-readable output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for pretty mode
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
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// more appends the "and N more" trailer when items were cut
func more(sb *strings.Builder, total, shown int, noun string) {
	if total > shown {
		fmt.Fprintf(sb, "  ... and %d more %s\n", total-shown, noun)
	}
}

// PrintKeywords outputs the ranked keywords with weights and categories.
func (p *Printer) PrintKeywords(kws []types.Keyword) {
	if len(kws) == 0 {
		p.printBox("JOB KEYWORDS", "No keywords found")
		return
	}

	var sb strings.Builder
	count := min(len(kws), maxItemsToShow)
	for i := 0; i < count; i++ {
		kw := kws[i]
		fmt.Fprintf(&sb, "%2d. %-30s %.2f", i+1, kw.Phrase, kw.Weight)
		if kw.Category != "" {
			fmt.Fprintf(&sb, "  %s", kw.Category)
		}
		sb.WriteString("\n")
	}
	more(&sb, len(kws), count, "keywords")

	p.printBox("JOB KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreReport outputs coverage and per-keyword densities.
func (p *Printer) PrintScoreReport(report *types.ScoreReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Tokens:   %d\n", report.TotalTokens)
	fmt.Fprintf(&sb, "Coverage: %.0f%%\n", report.Coverage*100)
	if len(report.Entries) > 0 {
		sb.WriteString("\n")
	}

	count := min(len(report.Entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := report.Entries[i]
		mark := "✗"
		if entry.Occurrences > 0 {
			mark = "✓"
		}
		fmt.Fprintf(&sb, "%s %-30s %2d  %.2f%%\n", mark, entry.Keyword.Phrase, entry.Occurrences, entry.Density*100)
	}
	more(&sb, len(report.Entries), count, "keywords")

	p.printBox("SCORE REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRewritePlan outputs the planned additions per section.
func (p *Printer) PrintRewritePlan(plan *types.RewritePlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Target %.2f%%, ceiling %.2f%%\n", plan.TargetDensity*100, plan.Ceiling*100)
	if len(plan.Directives) == 0 {
		sb.WriteString("\nNo edits needed\n")
	}

	for _, directive := range plan.Directives {
		fmt.Fprintf(&sb, "\n[%s] (%s confidence)\n", directive.SectionTitle, directive.Confidence)
		for _, addition := range directive.Additions {
			fmt.Fprintf(&sb, "  + %-28s x%d\n", addition.Keyword.Phrase, addition.Count)
		}
	}

	for _, warning := range plan.Warnings {
		fmt.Fprintf(&sb, "\n! %s", warning)
	}

	p.printBox("REWRITE PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTailored outputs the outcome of a tailoring run followed by its report.
func (p *Printer) PrintTailored(tailored *types.TailoredResume) {
	if tailored == nil {
		return
	}

	status := "met"
	if !tailored.MetTarget {
		status = "not met"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "ID:       %s\n", tailored.ID)
	fmt.Fprintf(&sb, "Attempts: %d\n", tailored.Attempts)
	fmt.Fprintf(&sb, "Targets:  %s", status)
	p.printBox("TAILORED RESUME", sb.String())

	p.PrintScoreReport(tailored.Report)
}
