package types

import "strings"

// KeywordCategory classifies an extracted keyword
type KeywordCategory string

// Keyword categories
const (
	CategorySkill         KeywordCategory = "skill"
	CategoryTool          KeywordCategory = "tool"
	CategoryQualification KeywordCategory = "qualification"
)

// Keyword is a significant phrase derived from a job description
type Keyword struct {
	Phrase        string          `json:"phrase"`    // Display form taken from the highest-weight occurrence
	Canonical     string          `json:"canonical"` // Space-joined stems, unique per keyword set
	Weight        float64         `json:"weight"`    // Importance normalized to (0, 1]
	Category      KeywordCategory `json:"category,omitempty"`
	FirstPosition int             `json:"first_position"`
}

// Stems returns the canonical stems of the keyword
func (k Keyword) Stems() []string {
	return strings.Fields(k.Canonical)
}

// Len returns the number of tokens in the keyword phrase
func (k Keyword) Len() int {
	return len(k.Stems())
}
