package ratelimiter

import (
	"errors"
	"fmt"
)

// Sentinel errors reported to submitters. They mirror the teacher's
// package-level error-variable block (ErrPoolClosed, ErrQueueFull,
// ErrInvalidPriority in the fokv-workpool vars.go and the
// ErrInvalidPriority/ErrPushToActive pair in azargarov-wpool's
// bucket_scheduler.go): simple and flat, returned as-is rather than
// carrying their own context.
var (
	// ErrLimitReached is returned by Wait when the queue is at
	// maxQueued and the policy is reject-on-full.
	ErrLimitReached = errors.New("ratelimiter: queue limit reached")

	// ErrStopped is returned when a submission is made to a Limiter
	// whose scope has already been released.
	ErrStopped = errors.New("ratelimiter: limiter stopped")

	// Cancelled is the sentinel outcome delivered to a submitter whose
	// job was cancelled before it produced a value — either because the
	// caller cancelled, or because the limiter was torn down.
	Cancelled = errors.New("ratelimiter: cancelled")
)

// JobFailure wraps an error returned by a user job so callers can tell
// "my job failed" apart from "the limiter refused/cancelled me" while
// still unwrapping to the original error via errors.Is/errors.As.
type JobFailure struct {
	Err error
}

func (e *JobFailure) Error() string { return fmt.Sprintf("ratelimiter: job failed: %v", e.Err) }
func (e *JobFailure) Unwrap() error { return e.Err }

func newJobFailure(err error) error {
	if err == nil {
		return nil
	}
	return &JobFailure{Err: err}
}
