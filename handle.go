package ratelimiter

import (
	"context"
	"fmt"
	"sync"
)

// Job is a unit of work submitted to a Limiter. It receives a context
// that is cancelled if the submitter cancels or the limiter tears down,
// and returns either a result value or an error.
//
// This generalizes the teacher's JobFunc[T]/Job[T] pair (wpool.go) —
// which carried payload, Fn, Ctx and CleanupFunc as separate fields on
// a struct — into a single closure, since spec.md §3 describes the
// Task Handle's executable as "a no-argument effect" wrapping whatever
// payload the caller closed over.
type Job[T any] func(ctx context.Context) (T, error)

// outcome is the one-shot result slot spec.md §3/§4.A describes:
// success value, failure, or cancellation. Exactly one outcome is ever
// written for a given handle.
type outcome[T any] struct {
	val T
	err error
}

// handle couples one submitted job to its waiting submitter (spec.md
// §3's Task Handle / component A). It carries the executable, the
// one-shot result slot, the cancel signal, and the completion event.
//
// Grounded on the teacher's Job[T] (wpool.go) for the payload/Fn/Ctx
// shape, and on the split between item[T] (what's queued) and
// submitReq[T] (what the caller attached) in scheduler.go for keeping
// the result/cancel wiring separate from the queued executable.
type handle[T any] struct {
	job    Job[T]
	ctx    context.Context
	cancel context.CancelFunc

	result  chan outcome[T] // buffered 1: the one-shot result slot
	started sync.Once       // guards "executed at most once"
	done    sync.Once       // guards "result slot written exactly once"

	// afterComplete, if set, is invoked exactly once when the outcome is
	// written, with admitted reporting whether the job was ever taken
	// off the queue (true) or cancelled while still queued (false). The
	// Limiter wires this to its MetricsPolicy to tell CANCELLED-QUEUED
	// apart from CANCELLED-RUNNING, a distinction the handle itself
	// can't make since it has no notion of queue membership.
	afterComplete func(err error, admitted bool)
}

// newHandle constructs a Task Handle from a user job. parent is the
// limiter's own root context, cancelled on teardown — the caller's
// context is observed separately by Wait, which raises this
// handle's cancel signal itself rather than deriving from it directly.
func newHandle[T any](parent context.Context, job Job[T]) *handle[T] {
	ctx, cancel := context.WithCancel(parent)
	return &handle[T]{
		job:    job,
		ctx:    ctx,
		cancel: cancel,
		result: make(chan outcome[T], 1),
	}
}

// executable runs the job, capturing its outcome into the result slot
// and signalling completion. It must be invoked at most once; a second
// invocation is a programming error and panics, matching spec.md §4.A.
//
// If the cancel signal was raised before executable ever ran, the job
// is never invoked at all: the executable observes the signal and
// exits promptly with a cancellation outcome, satisfying spec.md §4.A's
// "no-loss of cancellation" guarantee for the pre-run case.
func (h *handle[T]) executable() {
	alreadyStarted := true
	h.started.Do(func() { alreadyStarted = false })
	if alreadyStarted {
		panic("ratelimiter: task handle executed twice")
	}

	defer func() {
		if r := recover(); r != nil {
			h.complete(outcome[T]{err: newJobFailure(fmt.Errorf("job panicked: %v", r))}, true)
		}
	}()

	select {
	case <-h.ctx.Done():
		h.complete(outcome[T]{err: Cancelled}, true)
		return
	default:
	}

	val, err := h.job(h.ctx)
	if err != nil {
		if h.ctx.Err() != nil {
			h.complete(outcome[T]{err: Cancelled}, true)
			return
		}
		h.complete(outcome[T]{err: newJobFailure(err)}, true)
		return
	}
	h.complete(outcome[T]{val: val}, true)
}

// completeQueued completes the handle as Cancelled on behalf of a task
// that was removed from the queue before ever being admitted. The
// executable is never invoked for this path — no slot is consumed.
func (h *handle[T]) completeQueued() {
	h.complete(outcome[T]{err: Cancelled}, false)
}

// complete writes the outcome exactly once. Later calls are no-ops,
// enforcing the "result slot written exactly once" invariant even if
// callers race to report both a panic-recovery outcome and a normal one.
func (h *handle[T]) complete(o outcome[T], admitted bool) {
	h.done.Do(func() {
		if h.afterComplete != nil {
			h.afterComplete(o.err, admitted)
		}
		h.result <- o
	})
}

// awaitResult waits for the completion event, then surfaces the
// outcome: success yields the value, failure re-raises the original
// error (wrapped in *JobFailure), cancellation surfaces as Cancelled.
func (h *handle[T]) awaitResult() (T, error) {
	o := <-h.result
	return o.val, o.err
}

// raiseCancel raises the cancel signal. If the executable hasn't run
// yet, it will observe the signal and exit immediately once invoked.
// If the executable is already running, its job should observe
// ctx.Done() and return promptly.
func (h *handle[T]) raiseCancel() {
	h.cancel()
}
