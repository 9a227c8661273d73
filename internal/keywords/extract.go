// Package keywords extracts ranked keyword phrases from a job description document.
package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// maxPhraseLen is the longest candidate phrase in tokens
	maxPhraseLen = 3

	weightSignificant = 1.5
	weightDefault     = 1.0

	// phraseBonus rewards each extra token in a phrase
	phraseBonus = 0.5
)

// candidate accumulates every occurrence of one canonical phrase
type candidate struct {
	canonical  string
	stems      []string
	phrase     string
	bestWeight float64
	count      int
	score      float64
	firstPos   int
	qualifies  bool // seen in a qualifications or education section
	emphasized bool // seen in a significant section
}

// Extract returns up to maxKeywords phrases ranked by weighted frequency.
// A maxKeywords of zero or less keeps every candidate.
func Extract(doc *types.Document, maxKeywords int) []types.Keyword {
	if doc == nil {
		return nil
	}

	candidates := make(map[string]*candidate)
	for _, section := range doc.Sections {
		sectionWeight := weightDefault
		if SignificantSection(section.Title) {
			sectionWeight = weightSignificant
		}
		qualifies := qualificationSection(section.Title)

		for _, sentence := range section.Sentences {
			collect(candidates, sentence.Tokens, sectionWeight, qualifies)
		}
	}

	ranked := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		if len(c.stems) > 1 && c.count < 2 {
			continue
		}
		ranked = append(ranked, c)
	}
	ranked = dropSubsumed(ranked)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.firstPos != b.firstPos {
			return a.firstPos < b.firstPos
		}
		return a.canonical < b.canonical
	})

	if maxKeywords > 0 && len(ranked) > maxKeywords {
		ranked = ranked[:maxKeywords]
	}
	if len(ranked) == 0 {
		return []types.Keyword{}
	}

	top := ranked[0].score
	keywords := make([]types.Keyword, len(ranked))
	for i, c := range ranked {
		keywords[i] = types.Keyword{
			Phrase:        c.phrase,
			Canonical:     c.canonical,
			Weight:        c.score / top,
			Category:      categorize(c),
			FirstPosition: c.firstPos,
		}
	}
	return keywords
}

// collect records every eligible n-gram of one sentence
func collect(candidates map[string]*candidate, tokens []types.Token, sectionWeight float64, qualifies bool) {
	for n := 1; n <= maxPhraseLen; n++ {
		occurrenceWeight := sectionWeight * (1 + phraseBonus*float64(n-1))
		for i := 0; i+n <= len(tokens); i++ {
			window := tokens[i : i+n]
			if !eligible(window) {
				continue
			}

			stems := make([]string, n)
			surfaces := make([]string, n)
			for k, tok := range window {
				stems[k] = tok.Stem
				surfaces[k] = tok.Text
			}
			canonical := strings.Join(stems, " ")

			c, ok := candidates[canonical]
			if !ok {
				c = &candidate{canonical: canonical, stems: stems, firstPos: window[0].Position}
				candidates[canonical] = c
			}
			c.count++
			c.score += occurrenceWeight
			if occurrenceWeight > c.bestWeight {
				c.bestWeight = occurrenceWeight
				c.phrase = strings.Join(surfaces, " ")
			}
			if window[0].Position < c.firstPos {
				c.firstPos = window[0].Position
			}
			c.qualifies = c.qualifies || qualifies
			c.emphasized = c.emphasized || sectionWeight > weightDefault
		}
	}
}

// eligible rejects windows edged by stopwords and windows with no letters
func eligible(window []types.Token) bool {
	first, last := window[0], window[len(window)-1]
	if IsStopword(first.Norm) || IsStopword(last.Norm) {
		return false
	}

	hasLetter := false
	for _, tok := range window {
		if strings.IndexFunc(tok.Norm, unicode.IsLetter) >= 0 {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}

	if len(window) == 1 && utf8.RuneCountInString(first.Norm) < 2 && !strings.ContainsAny(first.Norm, "+#") {
		return false
	}
	return true
}

// dropSubsumed removes phrases that only ever occur inside a longer phrase
func dropSubsumed(candidates []*candidate) []*candidate {
	kept := make([]*candidate, 0, len(candidates))
	for _, short := range candidates {
		subsumed := false
		for _, long := range candidates {
			if len(long.stems) > len(short.stems) && long.count == short.count && containsRun(long.stems, short.stems) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, short)
		}
	}
	return kept
}

func containsRun(haystack, needle []string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for k := range needle {
			if haystack[i+k] != needle[k] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func categorize(c *candidate) types.KeywordCategory {
	if tools[c.canonical] {
		return types.CategoryTool
	}
	if c.qualifies {
		return types.CategoryQualification
	}
	for _, word := range strings.Fields(c.phrase) {
		if qualificationWords[strings.ToLower(word)] {
			return types.CategoryQualification
		}
	}
	if c.emphasized {
		return types.CategorySkill
	}
	return ""
}
