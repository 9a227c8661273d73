package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-tailor/internal/types"
)

var kubernetes = types.Keyword{Phrase: "Kubernetes", Canonical: "kubernet", Weight: 1, Category: types.CategoryTool}

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeywords([]types.Keyword{kubernetes, {Phrase: "Go", Canonical: "go", Weight: 0.5}})

	output := buf.String()
	assert.Contains(t, output, "JOB KEYWORDS")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "tool")
	assert.Contains(t, output, "0.50")
}

func TestPrintKeywords_Truncates(t *testing.T) {
	var buf bytes.Buffer
	kws := make([]types.Keyword, 15)
	for i := range kws {
		kws[i] = types.Keyword{Phrase: fmt.Sprintf("kw%d", i), Canonical: fmt.Sprintf("kw%d", i), Weight: 1}
	}

	NewPrinter(&buf).PrintKeywords(kws)
	assert.Contains(t, buf.String(), "and 5 more keywords")
	assert.NotContains(t, buf.String(), "kw12")
}

func TestPrintKeywords_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintKeywords(nil)
	assert.Contains(t, buf.String(), "No keywords found")
}

func TestPrintScoreReport(t *testing.T) {
	var buf bytes.Buffer
	report := &types.ScoreReport{
		TotalTokens: 200,
		Coverage:    0.5,
		Entries: []types.KeywordScore{
			{Keyword: kubernetes, Occurrences: 4, Density: 0.02},
			{Keyword: types.Keyword{Phrase: "Terraform", Canonical: "terraform", Weight: 0.4}},
		},
	}

	NewPrinter(&buf).PrintScoreReport(report)

	output := buf.String()
	assert.Contains(t, output, "Tokens:   200")
	assert.Contains(t, output, "Coverage: 50%")
	assert.Contains(t, output, "✓ Kubernetes")
	assert.Contains(t, output, "✗ Terraform")
	assert.Contains(t, output, "2.00%")
}

func TestPrintRewritePlan(t *testing.T) {
	var buf bytes.Buffer
	plan := &types.RewritePlan{
		TargetDensity: 0.025,
		Ceiling:       0.0375,
		Directives: []types.Directive{{
			SectionTitle: "Experience",
			Confidence:   types.ConfidenceHigh,
			Additions:    []types.KeywordAddition{{Keyword: kubernetes, Count: 3}},
		}},
		Warnings: []string{"no viable section for Rust"},
	}

	NewPrinter(&buf).PrintRewritePlan(plan)

	output := buf.String()
	assert.Contains(t, output, "Target 2.50%, ceiling 3.75%")
	assert.Contains(t, output, "[Experience] (high confidence)")
	assert.Contains(t, output, "x3")
	assert.Contains(t, output, "! no viable section for Rust")
}

func TestPrintRewritePlan_NoEdits(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRewritePlan(&types.RewritePlan{TargetDensity: 0.025, Ceiling: 0.0375})
	assert.Contains(t, buf.String(), "No edits needed")
}

func TestPrintTailored(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTailored(&types.TailoredResume{
		ID:        "abc",
		Attempts:  2,
		MetTarget: false,
		Report:    &types.ScoreReport{TotalTokens: 10},
	})

	output := buf.String()
	assert.Contains(t, output, "TAILORED RESUME")
	assert.Contains(t, output, "Targets:  not met")
	assert.Contains(t, output, "SCORE REPORT")
}

func TestPrinter_NilInputs(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintScoreReport(nil)
	p.PrintRewritePlan(nil)
	p.PrintTailored(nil)
	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
	assert.Contains(t, buf.String(), "...")
}
