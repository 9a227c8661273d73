// Package scoring measures keyword overlap between a document and a keyword set.
package scoring

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Score counts keyword occurrences in doc and computes their densities.
// Occurrences are non-overlapping stem matches inside a single sentence or
// heading; an occurrence is exact when its lower-cased surface form equals
// the keyword phrase too.
func Score(doc *types.Document, kws []types.Keyword) *types.ScoreReport {
	total := doc.TokenCount()
	report := &types.ScoreReport{
		TotalTokens: total,
		Entries:     make([]types.KeywordScore, 0, len(kws)),
	}

	present := 0
	for _, kw := range kws {
		entry := scoreKeyword(doc, kw)
		entry.Density = Density(entry.Occurrences, total)
		if entry.Occurrences > 0 {
			present++
		}
		report.Entries = append(report.Entries, entry)
	}

	if len(kws) > 0 {
		report.Coverage = float64(present) / float64(len(kws))
	}
	return report
}

// Density returns occurrences over total tokens clamped to [0, 1]
func Density(occurrences, total int) float64 {
	if total <= 0 || occurrences <= 0 {
		return 0
	}
	if occurrences >= total {
		return 1
	}
	return float64(occurrences) / float64(total)
}

func scoreKeyword(doc *types.Document, kw types.Keyword) types.KeywordScore {
	entry := types.KeywordScore{Keyword: kw}
	stems := kw.Stems()
	if len(stems) == 0 || doc == nil {
		return entry
	}
	surface := strings.Fields(strings.ToLower(kw.Phrase))

	for idx, section := range doc.Sections {
		hits := 0
		for _, span := range section.Spans() {
			for i := 0; i+len(stems) <= len(span); {
				window := span[i : i+len(stems)]
				if !matchesStems(window, stems) {
					i++
					continue
				}
				hits++
				if matchesSurface(window, surface) {
					entry.ExactMatches++
				}
				i += len(stems)
			}
		}
		if hits > 0 {
			entry.Occurrences += hits
			entry.Sections = append(entry.Sections, types.SectionHits{Section: idx, Count: hits})
		}
	}
	return entry
}

func matchesStems(window []types.Token, stems []string) bool {
	for k, tok := range window {
		if tok.Stem != stems[k] {
			return false
		}
	}
	return true
}

func matchesSurface(window []types.Token, surface []string) bool {
	if len(surface) != len(window) {
		return false
	}
	for k, tok := range window {
		if strings.ToLower(tok.Text) != surface[k] {
			return false
		}
	}
	return true
}
