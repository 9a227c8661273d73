package tailoring

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Outcome is the result of one request in a batch
type Outcome struct {
	Index  int
	Result *types.TailoredResume
	Err    error
}

// TailorBatch runs independent requests concurrently, at most MaxConcurrency
// at a time. A failed request never cancels the others; cancelling ctx
// cancels all of them.
func (e *Engine) TailorBatch(ctx context.Context, reqs []Request) []Outcome {
	outcomes := make([]Outcome, len(reqs))

	var g errgroup.Group
	if e.opts.MaxConcurrency > 0 {
		g.SetLimit(e.opts.MaxConcurrency)
	}
	for i, req := range reqs {
		g.Go(func() error {
			result, err := e.Tailor(ctx, req)
			outcomes[i] = Outcome{Index: i, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
