package scoring

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyword(phrase string) types.Keyword {
	return types.Keyword{Phrase: phrase, Canonical: parsing.StemPhrase(phrase), Weight: 1}
}

func mustDoc(t *testing.T, text string) *types.Document {
	t.Helper()
	doc, err := parsing.Normalize(text, 0)
	require.NoError(t, err)
	return doc
}

const resume = `Summary
Deployed services to Kubernetes and managed k8s clusters.

Experience
- Designed distributed systems in Go.
- Maintained a distributed system for billing.

Skills
Kubernetes, Docker, Golang`

func TestScore_CountsExactAndStemmedVariants(t *testing.T) {
	doc := mustDoc(t, resume)
	report := Score(doc, []types.Keyword{keyword("Kubernetes"), keyword("distributed systems"), keyword("Go"), keyword("Terraform")})

	require.Len(t, report.Entries, 4)
	assert.Equal(t, doc.TokenCount(), report.TotalTokens)

	k8s := report.Entries[0]
	assert.Equal(t, 3, k8s.Occurrences, "Kubernetes, k8s and Kubernetes")
	assert.Equal(t, 2, k8s.ExactMatches)
	assert.Equal(t, []types.SectionHits{{Section: 0, Count: 2}, {Section: 2, Count: 1}}, k8s.Sections)

	distributed := report.Entries[1]
	assert.Equal(t, 2, distributed.Occurrences, "plural and singular stem to the same form")
	assert.Equal(t, 1, distributed.ExactMatches)

	golang := report.Entries[2]
	assert.Equal(t, 2, golang.Occurrences)

	assert.Equal(t, 0, report.Entries[3].Occurrences)
	assert.Equal(t, 0.0, report.Entries[3].Density)
	assert.InDelta(t, 0.75, report.Coverage, 1e-9)

	for _, e := range report.Entries {
		assert.InDelta(t, float64(e.Occurrences)/float64(report.TotalTokens), e.Density, 1e-12)
		assert.GreaterOrEqual(t, e.Density, 0.0)
		assert.LessOrEqual(t, e.Density, 1.0)
	}
}

func TestScore_NonOverlapping(t *testing.T) {
	doc := mustDoc(t, "go go go")
	report := Score(doc, []types.Keyword{keyword("go go")})
	assert.Equal(t, 1, report.Entries[0].Occurrences)
}

func TestScore_DoesNotCrossSentences(t *testing.T) {
	doc := mustDoc(t, "We use distributed.\nSystems are hard.")
	report := Score(doc, []types.Keyword{keyword("distributed systems")})
	assert.Equal(t, 0, report.Entries[0].Occurrences)
}

func TestScore_Deterministic(t *testing.T) {
	doc := mustDoc(t, resume)
	kws := []types.Keyword{keyword("Kubernetes"), keyword("Docker"), keyword("distributed systems")}

	first := Score(doc, kws)
	second := Score(doc, kws)
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second, "reports are fresh per call")
}

func TestScore_EmptyDocument(t *testing.T) {
	report := Score(mustDoc(t, ""), []types.Keyword{keyword("Go")})
	assert.Equal(t, 0, report.TotalTokens)
	assert.Equal(t, 0.0, report.Entries[0].Density)
	assert.Equal(t, 0.0, report.Coverage)
}

func TestScore_NoKeywords(t *testing.T) {
	report := Score(mustDoc(t, resume), nil)
	assert.Empty(t, report.Entries)
	assert.Equal(t, 0.0, report.Coverage)
}

func TestDensity(t *testing.T) {
	tests := []struct {
		name        string
		occurrences int
		total       int
		want        float64
	}{
		{"zero total", 3, 0, 0},
		{"zero occurrences", 0, 100, 0},
		{"ratio", 25, 1000, 0.025},
		{"clamped", 5, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Density(tt.occurrences, tt.total), 1e-12)
		})
	}
}

func BenchmarkScore(b *testing.B) {
	doc, _ := parsing.Normalize(strings.Repeat(resume+"\n\n", 50), 0)
	kws := []types.Keyword{keyword("Kubernetes"), keyword("Docker"), keyword("distributed systems")}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Score(doc, kws)
	}
}
