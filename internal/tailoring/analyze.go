package tailoring

import (
	"context"
	"strings"

	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Analysis is the model-free part of a tailoring request
type Analysis struct {
	Keywords           []types.Keyword    `json:"keywords"`
	Report             *types.ScoreReport `json:"report"`
	Plan               *types.RewritePlan `json:"plan"`
	JobDescriptionHash string             `json:"job_description_hash"`
}

// Analyze extracts keywords, scores the resume and plans edits without
// invoking the model. Errors are *Failure values.
func (e *Engine) Analyze(ctx context.Context, resume, jobDescription string) (*Analysis, error) {
	r := e.newRun(Request{Resume: resume, JobDescription: jobDescription})
	r.to(StateReceived, "analyze")

	p, failure := r.prepare(ctx)
	if failure != nil {
		return nil, r.fail(failure)
	}
	return &Analysis{
		Keywords:           p.keywords,
		Report:             p.resumeReport,
		Plan:               p.plan,
		JobDescriptionHash: p.jdHash,
	}, nil
}

// ExtractKeywords normalizes a job description and returns its ranked keywords.
// A maxKeywords of zero or less uses the engine default.
func (e *Engine) ExtractKeywords(ctx context.Context, jobDescription string, maxKeywords int) ([]types.Keyword, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Failure{Code: CodeCancelled, Message: "request cancelled", Cause: err}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &Failure{Code: CodeInvalidInput, Message: "job description is required"}
	}
	doc, err := parsing.Normalize(jobDescription, e.opts.MaxJobDescriptionLength)
	if err != nil {
		return nil, normalizeFailure("job description", err)
	}
	if maxKeywords <= 0 {
		maxKeywords = e.opts.MaxKeywords
	}
	return e.extractKeywords(ctx, doc, HashJobDescription(jobDescription), maxKeywords, e.logger), nil
}
