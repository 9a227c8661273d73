// Package tailoring orchestrates a resume tailoring request from raw text to a
// validated TailoredResume.
package tailoring

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/ident"
	"github.com/jonathan/resume-tailor/internal/keywords"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/planning"
	"github.com/jonathan/resume-tailor/internal/scoring"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Options holds the tunables of the engine
type Options struct {
	MaxResumeLength         int
	MaxJobDescriptionLength int
	MaxKeywords             int
	TargetDensity           float64
	ToleranceFactor         float64
	DensitySlack            float64
	MaxRetries              int
	MaxConcurrency          int
	InvokeTimeout           time.Duration
}

// DefaultOptions returns the engine defaults
func DefaultOptions() Options {
	return Options{
		MaxResumeLength:         50000,
		MaxJobDescriptionLength: 20000,
		MaxKeywords:             20,
		TargetDensity:           0.025,
		ToleranceFactor:         1.5,
		DensitySlack:            0.005,
		MaxRetries:              2,
		MaxConcurrency:          4,
		InvokeTimeout:           120 * time.Second,
	}
}

// Store persists completed artifacts
type Store interface {
	SaveTailoredResume(ctx context.Context, tailored *types.TailoredResume) error
}

// KeywordCache stores extraction results keyed by job description
type KeywordCache interface {
	Get(ctx context.Context, key string) ([]types.Keyword, bool, error)
	Set(ctx context.Context, key string, kws []types.Keyword) error
}

// Deps are the optional collaborators of an Engine
type Deps struct {
	Store        Store
	Cache        KeywordCache
	Logger       *zap.Logger
	Stamper      ident.Stamper
	OnTransition TransitionFunc
}

// Engine runs tailoring requests. It is safe for concurrent use; every
// request owns its documents, reports and plan.
type Engine struct {
	invoker llm.Invoker
	opts    Options
	deps    Deps
	logger  *zap.Logger
}

// Request is one tailoring request
type Request struct {
	ResumeID       string `json:"resume_id,omitempty"`
	Resume         string `json:"resume"`
	JobDescription string `json:"job_description"`
}

// New creates an Engine. The invoker is used as-is; wrap it in an
// llm.Limiter to bound concurrent calls.
func New(invoker llm.Invoker, opts Options, deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		invoker: invoker,
		opts:    opts,
		deps:    deps,
		logger:  logger,
	}
}

// Options returns the engine's tunables
func (e *Engine) Options() Options {
	return e.opts
}

// HashJobDescription returns the hex sha256 of the trimmed, LF-normalized job description
func HashJobDescription(jd string) string {
	normalized := strings.ReplaceAll(jd, "\r\n", "\n")
	normalized = strings.TrimSpace(strings.ReplaceAll(normalized, "\r", "\n"))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Tailor runs one request to completion. On failure the error is a *Failure.
func (e *Engine) Tailor(ctx context.Context, req Request) (*types.TailoredResume, error) {
	r := e.newRun(req)
	r.to(StateReceived, "")

	p, failure := r.prepare(ctx)
	if failure != nil {
		return nil, r.fail(failure)
	}

	if len(p.plan.Directives) == 0 {
		tailored := r.artifact(req.Resume, p.resumeReport, p, 0, true)
		return r.complete(ctx, tailored, "plan has no edits")
	}

	return r.rewrite(ctx, p)
}

// prepared holds the per-request values built before the first invocation
type prepared struct {
	resumeDoc    *types.Document
	keywords     []types.Keyword
	resumeReport *types.ScoreReport
	plan         *types.RewritePlan
	jdHash       string
}

// run is the state of a single request
type run struct {
	e       *Engine
	req     Request
	id      string
	state   State
	attempt int
	trace   []Transition
	log     *zap.Logger
}

func (e *Engine) newRun(req Request) *run {
	id := e.deps.Stamper.ID()
	return &run{
		e:   e,
		req: req,
		id:  id,
		log: e.logger.With(zap.String("run_id", id), zap.String("resume_id", req.ResumeID)),
	}
}

func (r *run) to(next State, message string) {
	if r.state != "" && !CanTransition(r.state, next) {
		r.log.Error("illegal tailoring transition", zap.String("from", string(r.state)), zap.String("to", string(next)))
	}
	t := Transition{RunID: r.id, From: r.state, To: next, Attempt: r.attempt, Message: message}
	r.trace = append(r.trace, t)
	r.state = next

	r.log.Debug("tailoring transition",
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)),
		zap.Int("attempt", t.Attempt),
		zap.String("message", message),
	)
	if r.e.deps.OnTransition != nil {
		r.e.deps.OnTransition(t)
	}
}

func (r *run) fail(f *Failure) error {
	f.Attempts = r.attempt
	r.to(StateFailed, string(f.Code))
	f.Trace = r.trace
	r.log.Warn("tailoring failed",
		zap.String("code", string(f.Code)),
		zap.Int("attempts", f.Attempts),
		zap.Error(f),
	)
	return f
}

func (r *run) cancelled(err error) *Failure {
	return &Failure{Code: CodeCancelled, Message: "request cancelled", Cause: err}
}

// prepare normalizes both inputs, extracts keywords, scores and plans
func (r *run) prepare(ctx context.Context) (*prepared, *Failure) {
	opts := r.e.opts
	if strings.TrimSpace(r.req.Resume) == "" {
		return nil, &Failure{Code: CodeInvalidInput, Message: "resume is required"}
	}
	if strings.TrimSpace(r.req.JobDescription) == "" {
		return nil, &Failure{Code: CodeInvalidInput, Message: "job description is required"}
	}
	if err := ctx.Err(); err != nil {
		return nil, r.cancelled(err)
	}

	resumeDoc, err := parsing.Normalize(r.req.Resume, opts.MaxResumeLength)
	if err != nil {
		return nil, normalizeFailure("resume", err)
	}
	jdDoc, err := parsing.Normalize(r.req.JobDescription, opts.MaxJobDescriptionLength)
	if err != nil {
		return nil, normalizeFailure("job description", err)
	}
	r.to(StateNormalized, "")

	p := &prepared{resumeDoc: resumeDoc, jdHash: HashJobDescription(r.req.JobDescription)}
	p.keywords = r.e.extractKeywords(ctx, jdDoc, p.jdHash, opts.MaxKeywords, r.log)
	p.resumeReport = scoring.Score(resumeDoc, p.keywords)
	r.to(StateScored, fmt.Sprintf("%d keywords, coverage %.2f", len(p.keywords), p.resumeReport.Coverage))

	if err := ctx.Err(); err != nil {
		return nil, r.cancelled(err)
	}

	plan, err := planning.Plan(resumeDoc, p.resumeReport, opts.TargetDensity, opts.ToleranceFactor)
	if err != nil {
		return nil, &Failure{Code: CodeInvalidInput, Message: "cannot plan rewrite", LastReport: p.resumeReport, Cause: err}
	}
	plan.ID = r.e.deps.Stamper.ID()
	p.plan = plan
	for _, warning := range plan.Warnings {
		r.log.Info("rewrite plan warning", zap.String("code", string(CodeNoViableSection)), zap.String("warning", warning))
	}
	r.to(StatePlanned, fmt.Sprintf("%d directives", len(plan.Directives)))

	return p, nil
}

func normalizeFailure(input string, err error) *Failure {
	var tooLarge *parsing.InputTooLargeError
	if errors.As(err, &tooLarge) {
		return &Failure{Code: CodeInputTooLarge, Message: input + " exceeds maximum length", Cause: err}
	}
	return &Failure{Code: CodeInvalidInput, Message: "cannot normalize " + input, Cause: err}
}

// keywordCacheKey identifies an extraction result
func keywordCacheKey(jdHash string, maxKeywords int) string {
	return fmt.Sprintf("keywords:%s:%d", jdHash, maxKeywords)
}

// extractKeywords consults the cache first. Cache failures only cost a re-extraction.
func (e *Engine) extractKeywords(ctx context.Context, jdDoc *types.Document, jdHash string, maxKeywords int, log *zap.Logger) []types.Keyword {
	if e.deps.Cache == nil {
		return keywords.Extract(jdDoc, maxKeywords)
	}

	key := keywordCacheKey(jdHash, maxKeywords)
	cached, ok, err := e.deps.Cache.Get(ctx, key)
	if err != nil {
		log.Warn("keyword cache read failed", zap.Error(err))
	}
	if ok {
		return cached
	}

	kws := keywords.Extract(jdDoc, maxKeywords)
	if err := e.deps.Cache.Set(ctx, key, kws); err != nil {
		log.Warn("keyword cache write failed", zap.Error(err))
	}
	return kws
}

// rewrite drives the Invoking/Validating loop
func (r *run) rewrite(ctx context.Context, p *prepared) (*types.TailoredResume, error) {
	opts := r.e.opts
	maxAttempts := opts.MaxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	failureLimit := opts.MaxRetries
	if failureLimit < 1 {
		failureLimit = 1
	}

	base, err := buildRewritePrompt(r.req.Resume, p, opts)
	if err != nil {
		return nil, r.fail(&Failure{Code: CodeInvalidInput, Message: "cannot build prompt", Cause: err})
	}

	var (
		best            *candidate
		lastViolations  []violation
		invokerFailures int
		lastInvokeErr   error
	)
	lastReport := p.resumeReport

	for r.attempt < maxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, r.fail(r.cancelledWith(err, lastReport))
		}

		r.attempt++
		prompt := base
		if len(lastViolations) > 0 {
			feedback, err := buildFeedback(r.attempt-1, lastViolations)
			if err != nil {
				return nil, r.fail(&Failure{Code: CodeInvalidInput, Message: "cannot build prompt", Cause: err})
			}
			prompt = base + "\n\n" + feedback
		}
		r.to(StateInvoking, "")

		text, err := r.e.invoker.Invoke(ctx, prompt, opts.InvokeTimeout)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil, r.fail(r.cancelledWith(err, lastReport))
			}
			invokerFailures++
			lastInvokeErr = err
			r.log.Warn("model invocation failed",
				zap.Int("attempt", r.attempt),
				zap.String("kind", string(invokeCode(err))),
				zap.Error(err),
			)
			if invokerFailures >= failureLimit {
				break
			}
			continue
		}

		r.to(StateValidating, "")
		cand := validate(text, p, opts)
		lastReport = cand.report
		if best == nil || cand.deviation < best.deviation {
			best = cand
		}
		if len(cand.violations) == 0 {
			tailored := r.artifact(cand.text, cand.report, p, r.attempt, true)
			return r.complete(ctx, tailored, "")
		}
		lastViolations = cand.violations
		r.log.Info("candidate rejected",
			zap.Int("attempt", r.attempt),
			zap.Int("violations", len(cand.violations)),
			zap.Float64("deviation", cand.deviation),
		)
	}

	if best == nil || invokerFailures >= failureLimit {
		f := &Failure{
			Code:       CodeUpstreamUnavailable,
			Message:    fmt.Sprintf("model invoker failed %d times", invokerFailures),
			LastReport: lastReport,
			Cause:      lastInvokeErr,
		}
		if best != nil {
			f.Best = r.artifact(best.text, best.report, p, r.attempt, false)
		}
		return nil, r.fail(f)
	}

	return nil, r.fail(&Failure{
		Code:       CodeQualityNotAchieved,
		Message:    fmt.Sprintf("keyword density targets not met after %d attempts", r.attempt),
		LastReport: lastReport,
		Best:       r.artifact(best.text, best.report, p, r.attempt, false),
	})
}

func (r *run) cancelledWith(err error, report *types.ScoreReport) *Failure {
	f := r.cancelled(err)
	f.LastReport = report
	return f
}

func (r *run) artifact(text string, report *types.ScoreReport, p *prepared, attempts int, met bool) *types.TailoredResume {
	stamper := r.e.deps.Stamper
	return &types.TailoredResume{
		ID:                 stamper.ID(),
		ResumeID:           r.req.ResumeID,
		JobDescriptionHash: p.jdHash,
		Text:               text,
		Report:             report,
		PlanID:             p.plan.ID,
		Plan:               p.plan,
		Attempts:           attempts,
		MetTarget:          met,
		CreatedAt:          stamper.Time(),
	}
}

// complete persists the artifact. A cancelled context writes nothing.
func (r *run) complete(ctx context.Context, tailored *types.TailoredResume, message string) (*types.TailoredResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, r.fail(r.cancelledWith(err, tailored.Report))
	}
	if r.e.deps.Store != nil {
		if err := r.e.deps.Store.SaveTailoredResume(ctx, tailored); err != nil {
			return nil, r.fail(&Failure{Code: CodeStorageFailed, Message: "cannot save tailored resume", LastReport: tailored.Report, Cause: err})
		}
	}
	r.to(StateCompleted, message)
	r.log.Info("tailoring completed",
		zap.String("tailored_id", tailored.ID),
		zap.Int("attempts", tailored.Attempts),
		zap.Float64("coverage", tailored.Report.Coverage),
	)
	return tailored, nil
}

// invokeCode maps an invoker error to its taxonomy code
func invokeCode(err error) Code {
	switch {
	case errors.Is(err, llm.ErrTimeout):
		return CodeTimeout
	case errors.Is(err, llm.ErrInvalidResponse):
		return CodeInvalidResponse
	default:
		return CodeServiceUnavailable
	}
}
