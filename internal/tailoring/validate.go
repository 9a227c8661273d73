package tailoring

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/scoring"
	"github.com/jonathan/resume-tailor/internal/types"
)

// violation is one targeted keyword outside its accepted density range
type violation struct {
	keyword types.Keyword
	density float64
	min     float64
	max     float64
	message string
}

func (v violation) String() string {
	if v.message != "" {
		return v.message
	}
	return fmt.Sprintf("%s: density %.4f, expected %.4f to %.4f", v.keyword.Phrase, v.density, v.min, v.max)
}

// candidate is a validated model completion
type candidate struct {
	text       string
	report     *types.ScoreReport
	violations []violation
	deviation  float64 // Summed distance of targeted densities from [target, ceiling]
}

// validate re-normalizes and re-scores a completion against the plan. A
// targeted keyword passes when its density lies within
// [target - slack, ceiling + slack].
func validate(text string, p *prepared, opts Options) *candidate {
	cleaned := llm.StripCodeFence(text)
	c := &candidate{text: cleaned}

	doc, err := parsing.Normalize(cleaned, opts.MaxResumeLength)
	if err != nil {
		var tooLarge *parsing.InputTooLargeError
		message := "candidate could not be normalized"
		if errors.As(err, &tooLarge) {
			message = fmt.Sprintf("candidate has %d characters, limit is %d", tooLarge.Length, tooLarge.Limit)
		}
		c.violations = append(c.violations, violation{message: message})
		c.report = scoring.Score(&types.Document{}, p.keywords)
		c.deviation = float64(len(p.plan.Targeted()))
		return c
	}

	c.report = scoring.Score(doc, p.keywords)
	target, ceiling := p.plan.TargetDensity, p.plan.Ceiling
	lower, upper := target-opts.DensitySlack, ceiling+opts.DensitySlack

	for _, kw := range p.plan.Targeted() {
		entry, _ := c.report.Entry(kw.Canonical)
		switch {
		case entry.Density < target:
			c.deviation += target - entry.Density
		case entry.Density > ceiling:
			c.deviation += entry.Density - ceiling
		}
		if entry.Density < lower || entry.Density > upper {
			c.violations = append(c.violations, violation{
				keyword: kw,
				density: entry.Density,
				min:     target,
				max:     ceiling,
			})
		}
	}
	return c
}
