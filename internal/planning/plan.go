// Package planning decides where and how often keywords should be added to a resume.
package planning

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// epsilon absorbs float error before rounding occurrence counts
const epsilon = 1e-9

// excludedSections are only used when nothing else is available
var excludedSections = []string{"contact", "references", strings.ToLower(types.SectionPreamble)}

// Plan builds a rewrite plan that lifts each under-represented keyword toward
// targetDensity without letting it exceed targetDensity*toleranceFactor.
func Plan(doc *types.Document, report *types.ScoreReport, targetDensity, toleranceFactor float64) (*types.RewritePlan, error) {
	if doc == nil {
		return nil, &InvalidArgumentError{Field: "document", Message: "is required"}
	}
	if report == nil {
		return nil, &InvalidArgumentError{Field: "report", Message: "is required"}
	}
	if targetDensity <= 0 || targetDensity >= 1 || math.IsNaN(targetDensity) {
		return nil, &InvalidArgumentError{Field: "target_density", Message: fmt.Sprintf("must be in (0, 1), got %v", targetDensity)}
	}
	if toleranceFactor < 1 || math.IsNaN(toleranceFactor) {
		return nil, &InvalidArgumentError{Field: "tolerance_factor", Message: fmt.Sprintf("must be >= 1, got %v", toleranceFactor)}
	}

	ceiling := targetDensity * toleranceFactor
	total := report.TotalTokens
	plan := &types.RewritePlan{
		TargetDensity:   targetDensity,
		ToleranceFactor: toleranceFactor,
		Ceiling:         ceiling,
		TotalTokens:     total,
		Directives:      []types.Directive{},
	}

	candidates := compatibleSections(doc)
	grouped := make(map[directiveKey]*types.Directive)

	for _, entry := range report.Entries {
		kw := entry.Keyword
		switch {
		case entry.Density > ceiling:
			plan.Unchanged = append(plan.Unchanged, unchanged(entry, types.ReasonAboveCeiling))
			continue
		case entry.Density >= targetDensity:
			plan.Unchanged = append(plan.Unchanged, unchanged(entry, types.ReasonWithinTarget))
			continue
		}

		add := Additions(entry.Occurrences, total, kw.Len(), targetDensity, ceiling)
		if add <= 0 {
			plan.Unchanged = append(plan.Unchanged, unchanged(entry, types.ReasonNoHeadroom))
			continue
		}
		if len(candidates) == 0 {
			plan.Unchanged = append(plan.Unchanged, unchanged(entry, types.ReasonNoSection))
			plan.Warnings = append(plan.Warnings, (&NoViableSectionError{Keyword: kw.Phrase}).Error())
			continue
		}

		confidence := types.ConfidenceHigh
		section, relevance := mostRelevant(doc, candidates, kw, report)
		if relevance == 0 {
			confidence = types.ConfidenceLow
			section = leastDense(doc, candidates, report)
			plan.Warnings = append(plan.Warnings, (&NoViableSectionError{
				Keyword:  kw.Phrase,
				Fallback: doc.Sections[section].Title,
			}).Error())
		}

		key := directiveKey{section: section, confidence: confidence}
		directive, ok := grouped[key]
		if !ok {
			directive = &types.Directive{
				SectionIndex: section,
				SectionTitle: doc.Sections[section].Title,
				Confidence:   confidence,
			}
			grouped[key] = directive
		}
		directive.Additions = append(directive.Additions, types.KeywordAddition{
			Keyword: kw,
			Count:   add,
			Current: entry.Occurrences,
		})
	}

	for _, directive := range grouped {
		directive.Rationale = rationale(directive, total, targetDensity, ceiling)
		plan.Directives = append(plan.Directives, *directive)
	}
	sort.Slice(plan.Directives, func(i, j int) bool {
		a, b := plan.Directives[i], plan.Directives[j]
		if a.SectionIndex != b.SectionIndex {
			return a.SectionIndex < b.SectionIndex
		}
		return a.Confidence == types.ConfidenceHigh && b.Confidence != types.ConfidenceHigh
	})

	return plan, nil
}

// Additions returns how many occurrences of an n-token keyword to add so its
// density reaches target, capped so that (occurrences+add)/total stays at or
// below ceiling. Insertions grow the document by n tokens each, so the target
// count solves (occ+add)/(total+n*add) = target.
func Additions(occurrences, total, n int, target, ceiling float64) int {
	if total <= 0 || n <= 0 {
		return 0
	}
	denominator := 1 - target*float64(n)
	if denominator <= 0 {
		return 0
	}
	needed := int(math.Ceil((target*float64(total)-float64(occurrences))/denominator - epsilon))
	limit := int(math.Floor(ceiling*float64(total)+epsilon)) - occurrences
	if needed > limit {
		needed = limit
	}
	if needed < 0 {
		return 0
	}
	return needed
}

type directiveKey struct {
	section    int
	confidence string
}

func unchanged(entry types.KeywordScore, reason string) types.UnchangedKeyword {
	return types.UnchangedKeyword{Keyword: entry.Keyword, Density: entry.Density, Reason: reason}
}

// compatibleSections returns indices of sections with body text, preferring
// sections other than contact, references and preamble blocks
func compatibleSections(doc *types.Document) []int {
	var preferred, fallback []int
	for i, section := range doc.Sections {
		if len(section.Sentences) == 0 {
			continue
		}
		if isExcluded(section.Title) {
			fallback = append(fallback, i)
			continue
		}
		preferred = append(preferred, i)
	}
	if len(preferred) > 0 {
		return preferred
	}
	return fallback
}

func isExcluded(title string) bool {
	lower := strings.ToLower(title)
	for _, name := range excludedSections {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

// mostRelevant scores sections by token overlap: tokens sharing a stem with
// the keyword count double, tokens sharing a stem with any other keyword count once
func mostRelevant(doc *types.Document, candidates []int, kw types.Keyword, report *types.ScoreReport) (int, int) {
	own := stemSet(kw)
	others := make(map[string]bool)
	for _, entry := range report.Entries {
		if entry.Keyword.Canonical == kw.Canonical {
			continue
		}
		for _, stem := range entry.Keyword.Stems() {
			if !own[stem] {
				others[stem] = true
			}
		}
	}

	best, bestScore := candidates[0], -1
	for _, idx := range candidates {
		score := 0
		for _, span := range doc.Sections[idx].Spans() {
			for _, tok := range span {
				switch {
				case own[tok.Stem]:
					score += 2
				case others[tok.Stem]:
					score++
				}
			}
		}
		if score > bestScore {
			best, bestScore = idx, score
		}
	}
	return best, bestScore
}

// leastDense returns the candidate section with the lowest share of keyword tokens
func leastDense(doc *types.Document, candidates []int, report *types.ScoreReport) int {
	all := make(map[string]bool)
	for _, entry := range report.Entries {
		for _, stem := range entry.Keyword.Stems() {
			all[stem] = true
		}
	}

	best, bestDensity := candidates[0], math.Inf(1)
	for _, idx := range candidates {
		section := doc.Sections[idx]
		count := section.TokenCount()
		if count == 0 {
			continue
		}
		hits := 0
		for _, span := range section.Spans() {
			for _, tok := range span {
				if all[tok.Stem] {
					hits++
				}
			}
		}
		if density := float64(hits) / float64(count); density < bestDensity {
			best, bestDensity = idx, density
		}
	}
	return best
}

func stemSet(kw types.Keyword) map[string]bool {
	set := make(map[string]bool)
	for _, stem := range kw.Stems() {
		set[stem] = true
	}
	return set
}

func rationale(d *types.Directive, total int, target, ceiling float64) string {
	parts := make([]string, len(d.Additions))
	for i, a := range d.Additions {
		current := 0.0
		if total > 0 {
			current = float64(a.Current) / float64(total)
		}
		parts[i] = fmt.Sprintf("add %d x %q (density %.4f, target %.4f, ceiling %.4f)", a.Count, a.Keyword.Phrase, current, target, ceiling)
	}
	reason := "section already discusses related terms"
	if d.Confidence == types.ConfidenceLow {
		reason = "no section relates to these keywords; using the least keyword-dense section"
	}
	return fmt.Sprintf("%s: %s", reason, strings.Join(parts, "; "))
}
