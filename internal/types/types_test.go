package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tok(text string, pos int) Token {
	return Token{Text: text, Norm: text, Stem: text, Position: pos}
}

func TestDocument_TokensAndText(t *testing.T) {
	doc := &Document{Sections: []Section{
		{
			Title:   "Skills",
			Heading: []Token{tok("Skills", 0)},
			Sentences: []Sentence{
				{Tokens: []Token{tok("Go", 1), tok("and", 2), tok("Rust", 3)}},
			},
		},
		{
			Title:     SectionBody,
			Sentences: []Sentence{{Tokens: []Token{tok("Kubernetes", 4)}}},
		},
	}}

	assert.Equal(t, 5, doc.TokenCount())
	assert.Equal(t, 4, doc.Sections[0].TokenCount())
	assert.Len(t, doc.Sections[0].Spans(), 2)
	assert.Len(t, doc.Sections[1].Spans(), 1)
	assert.Equal(t, "Skills Go and Rust Kubernetes", doc.Text())

	var empty *Document
	assert.Zero(t, empty.TokenCount())
	assert.Empty(t, empty.Text())
}

func TestKeyword_Stems(t *testing.T) {
	kw := Keyword{Phrase: "Distributed Systems", Canonical: "distribut system"}
	assert.Equal(t, []string{"distribut", "system"}, kw.Stems())
	assert.Equal(t, 2, kw.Len())
}

func TestScoreReport_Entry(t *testing.T) {
	report := &ScoreReport{Entries: []KeywordScore{
		{Keyword: Keyword{Canonical: "go"}, Occurrences: 2},
	}}

	entry, ok := report.Entry("go")
	assert.True(t, ok)
	assert.Equal(t, 2, entry.Occurrences)

	_, ok = report.Entry("rust")
	assert.False(t, ok)

	var missing *ScoreReport
	_, ok = missing.Entry("go")
	assert.False(t, ok)
}

func TestRewritePlan_TargetedAndTotals(t *testing.T) {
	k8s := Keyword{Phrase: "Kubernetes", Canonical: "kubernet"}
	goKw := Keyword{Phrase: "Go", Canonical: "go"}
	plan := &RewritePlan{Directives: []Directive{
		{SectionIndex: 1, Additions: []KeywordAddition{{Keyword: k8s, Count: 2}, {Keyword: goKw, Count: 1}}},
		{SectionIndex: 2, Additions: []KeywordAddition{{Keyword: k8s, Count: 3}}},
	}}

	assert.Equal(t, []Keyword{k8s, goKw}, plan.Targeted())
	assert.Equal(t, 5, plan.TotalAdditions("kubernet"))
	assert.Equal(t, 1, plan.TotalAdditions("go"))
	assert.Zero(t, plan.TotalAdditions("rust"))

	var none *RewritePlan
	assert.Nil(t, none.Targeted())
	assert.Zero(t, none.TotalAdditions("go"))
}
