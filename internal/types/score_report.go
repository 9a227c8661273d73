package types

// SectionHits counts keyword occurrences within one section
type SectionHits struct {
	Section int `json:"section"`
	Count   int `json:"count"`
}

// KeywordScore is the overlap result for a single keyword
type KeywordScore struct {
	Keyword      Keyword       `json:"keyword"`
	Occurrences  int           `json:"occurrences"`   // Exact and stemmed-variant matches
	ExactMatches int           `json:"exact_matches"` // Matches whose surface form equals the phrase
	Density      float64       `json:"density"`       // Occurrences / total tokens, in [0, 1]
	Sections     []SectionHits `json:"sections,omitempty"`
}

// ScoreReport maps keywords to occurrence counts and densities for one document version
type ScoreReport struct {
	TotalTokens int            `json:"total_tokens"`
	Entries     []KeywordScore `json:"entries"`
	Coverage    float64        `json:"coverage"` // Fraction of keywords present at least once
}

// Entry returns the score for a keyword by canonical form
func (r *ScoreReport) Entry(canonical string) (KeywordScore, bool) {
	if r == nil {
		return KeywordScore{}, false
	}
	for _, entry := range r.Entries {
		if entry.Keyword.Canonical == canonical {
			return entry, true
		}
	}
	return KeywordScore{}, false
}
