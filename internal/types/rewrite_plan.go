package types

// Confidence levels for rewrite directives
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// Reasons recorded for keywords that need no edit
const (
	ReasonAboveCeiling = "above_ceiling"
	ReasonWithinTarget = "within_target"
	ReasonNoHeadroom   = "no_headroom"
	ReasonNoSection    = "no_section"
)

// KeywordAddition asks for a number of extra occurrences of a keyword
type KeywordAddition struct {
	Keyword Keyword `json:"keyword"`
	Count   int     `json:"count"`
	Current int     `json:"current"` // Occurrences before the edit
}

// Directive is a single planned edit targeting one section
type Directive struct {
	SectionIndex int               `json:"section_index"`
	SectionTitle string            `json:"section_title"`
	Additions    []KeywordAddition `json:"additions"`
	Rationale    string            `json:"rationale"`
	Confidence   string            `json:"confidence"`
}

// UnchangedKeyword records a keyword the plan leaves alone
type UnchangedKeyword struct {
	Keyword Keyword `json:"keyword"`
	Density float64 `json:"density"`
	Reason  string  `json:"reason"`
}

// RewritePlan is the ordered list of edits for one resume version
type RewritePlan struct {
	ID              string             `json:"id,omitempty"`
	TargetDensity   float64            `json:"target_density"`
	ToleranceFactor float64            `json:"tolerance_factor"`
	Ceiling         float64            `json:"ceiling"`
	TotalTokens     int                `json:"total_tokens"`
	Directives      []Directive        `json:"directives"`
	Unchanged       []UnchangedKeyword `json:"unchanged,omitempty"`
	Warnings        []string           `json:"warnings,omitempty"`
}

// Targeted returns the keywords that at least one directive adds, in plan order
func (p *RewritePlan) Targeted() []Keyword {
	if p == nil {
		return nil
	}
	seen := make(map[string]bool)
	var keywords []Keyword
	for _, directive := range p.Directives {
		for _, addition := range directive.Additions {
			if seen[addition.Keyword.Canonical] {
				continue
			}
			seen[addition.Keyword.Canonical] = true
			keywords = append(keywords, addition.Keyword)
		}
	}
	return keywords
}

// TotalAdditions returns the number of occurrences the plan adds for a keyword
func (p *RewritePlan) TotalAdditions(canonical string) int {
	if p == nil {
		return 0
	}
	total := 0
	for _, directive := range p.Directives {
		for _, addition := range directive.Additions {
			if addition.Keyword.Canonical == canonical {
				total += addition.Count
			}
		}
	}
	return total
}
