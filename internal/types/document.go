// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Section titles assigned when the source text carries no usable header
const (
	SectionPreamble = "Preamble"
	SectionBody     = "Body"
)

// Token is a single normalized word from source text
type Token struct {
	Text     string `json:"text"`     // Surface form as written
	Norm     string `json:"norm"`     // Lower-cased, alias-folded form
	Stem     string `json:"stem"`     // Canonical stemmed form used for matching
	Position int    `json:"position"` // Zero-based index in the document token stream
}

// Sentence is an ordered run of tokens
type Sentence struct {
	Tokens []Token `json:"tokens"`
}

// Section is a titled block of a document
type Section struct {
	Title     string     `json:"title"`
	Heading   []Token    `json:"heading,omitempty"` // Tokens of the header line, empty for implicit sections
	Sentences []Sentence `json:"sentences"`
}

// Document is normalized text broken into ordered sections
type Document struct {
	Sections []Section `json:"sections"`
}

// Spans returns every token run of the section (heading first, then sentences).
// Phrase matching never crosses a span boundary.
func (s Section) Spans() [][]Token {
	spans := make([][]Token, 0, len(s.Sentences)+1)
	if len(s.Heading) > 0 {
		spans = append(spans, s.Heading)
	}
	for _, sentence := range s.Sentences {
		spans = append(spans, sentence.Tokens)
	}
	return spans
}

// TokenCount returns the number of tokens in the section including its heading
func (s Section) TokenCount() int {
	count := len(s.Heading)
	for _, sentence := range s.Sentences {
		count += len(sentence.Tokens)
	}
	return count
}

// Tokens returns every token of the document in source order
func (d *Document) Tokens() []Token {
	if d == nil {
		return nil
	}
	tokens := make([]Token, 0, d.TokenCount())
	for _, section := range d.Sections {
		for _, span := range section.Spans() {
			tokens = append(tokens, span...)
		}
	}
	return tokens
}

// TokenCount returns the total number of tokens in the document
func (d *Document) TokenCount() int {
	if d == nil {
		return 0
	}
	count := 0
	for _, section := range d.Sections {
		count += section.TokenCount()
	}
	return count
}

// Text reconstructs the document as space-joined surface tokens
func (d *Document) Text() string {
	tokens := d.Tokens()
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Text
	}
	return strings.Join(words, " ")
}
