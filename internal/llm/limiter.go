package llm

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds concurrent invocations of an Invoker. Waiters are admitted
// in arrival order, so no request waits behind later arrivals.
type Limiter struct {
	next Invoker
	sem  *semaphore.Weighted
}

var _ Invoker = (*Limiter)(nil)

// NewLimiter wraps next with at most capacity concurrent calls. A capacity
// below one is treated as one.
func NewLimiter(next Invoker, capacity int) *Limiter {
	if capacity < 1 {
		capacity = 1
	}
	return &Limiter{next: next, sem: semaphore.NewWeighted(int64(capacity))}
}

// Invoke waits for a slot, then delegates. Waiting is bounded by ctx only;
// the timeout applies to the delegated call.
func (l *Limiter) Invoke(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer l.sem.Release(1)

	return l.next.Invoke(ctx, prompt, timeout)
}
