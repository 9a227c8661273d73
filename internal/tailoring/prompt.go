package tailoring

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
)

// buildRewritePrompt fills the rewrite template from the plan
func buildRewritePrompt(resume string, p *prepared, opts Options) (string, error) {
	maxLength := opts.MaxResumeLength
	if maxLength <= 0 {
		maxLength = 2 * utf8.RuneCountInString(resume)
	}

	return prompts.Render(prompts.TailoringFile, prompts.KeyRewrite, map[string]string{
		"Resume":        resume,
		"Keywords":      formatKeywords(p.plan.Targeted()),
		"Directives":    formatDirectives(p.plan.Directives),
		"TargetDensity": fmt.Sprintf("%.4f", p.plan.TargetDensity),
		"Ceiling":       fmt.Sprintf("%.4f", p.plan.Ceiling),
		"MaxLength":     strconv.Itoa(maxLength),
	})
}

// buildFeedback describes the previous attempt's violations
func buildFeedback(attempt int, violations []violation) (string, error) {
	lines := make([]string, len(violations))
	for i, v := range violations {
		lines[i] = "- " + v.String()
	}
	return prompts.Render(prompts.TailoringFile, prompts.KeyCorrectiveHints, map[string]string{
		"Attempt":    strconv.Itoa(attempt),
		"Violations": strings.Join(lines, "\n"),
	})
}

func formatKeywords(kws []types.Keyword) string {
	lines := make([]string, len(kws))
	for i, kw := range kws {
		if kw.Category != "" {
			lines[i] = fmt.Sprintf("- %s (%s)", kw.Phrase, kw.Category)
		} else {
			lines[i] = "- " + kw.Phrase
		}
	}
	return strings.Join(lines, "\n")
}

func formatDirectives(directives []types.Directive) string {
	var sb strings.Builder
	for i, d := range directives {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. Section %q", i+1, d.SectionTitle)
		if d.Confidence == types.ConfidenceLow {
			sb.WriteString(" (no closely related content; integrate carefully)")
		}
		sb.WriteString(":")
		for _, a := range d.Additions {
			fmt.Fprintf(&sb, "\n   - add %q %d more time(s) (currently %d)", a.Keyword.Phrase, a.Count, a.Current)
		}
	}
	return sb.String()
}
