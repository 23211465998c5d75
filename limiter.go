package ratelimiter

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Limiter is the scoped facade of spec.md §3/§4.D (component D): a
// single minInterval/maxQueued/maxConcurrent policy shared by every
// call to Wait against it. It owns the priority queue and the pacer
// goroutine that drains it, and ties the two together.
//
// Grounded on the teacher's Pool[T] public surface (wpool.go): a
// constructor that validates its arguments and panics on violation,
// a Stop/Shutdown(ctx) pair for teardown, and an ActiveWorkers-style
// accessor (Pending here, since "active workers" has no equivalent —
// concurrency is tracked by the pacer's semaphore, not exposed as a
// separate count per spec.md's minimal interface).
type Limiter struct {
	minInterval   time.Duration
	maxQueued     int
	maxConcurrent int

	rootCtx    context.Context
	rootCancel context.CancelFunc

	queue *boundedPQ
	pacer *pacer

	metrics MetricsPolicy
	logger  *zap.Logger

	stopOnce sync.Once
}

// New constructs a Limiter. minInterval, maxQueued and maxConcurrent
// are the three required, validated parameters (spec.md §6/§7); a
// violation is a programmer error and panics immediately rather than
// surfacing as a runtime error, matching the teacher's FillDefaults
// precondition checks (options.go).
//
// Ambient collaborators (logger, metrics, clock) are supplied through
// functional options, following the teacher's Option pattern.
func New(minInterval time.Duration, maxQueued, maxConcurrent int, opts ...Option) *Limiter {
	checkPreconditions(minInterval, maxQueued, maxConcurrent)

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	rootCtx = withLogger(rootCtx, cfg.logger)

	q := newBoundedPQ(maxQueued)
	l := &Limiter{
		minInterval:   minInterval,
		maxQueued:     maxQueued,
		maxConcurrent: maxConcurrent,
		rootCtx:       rootCtx,
		rootCancel:    rootCancel,
		queue:         q,
		metrics:       cfg.metrics,
		logger:        cfg.logger,
	}
	l.pacer = newPacer(q, minInterval, maxConcurrent, cfg.clock, cfg.metrics, cfg.logger)

	l.logger.Info("ratelimiter started",
		zap.Duration("min_interval", minInterval),
		zap.Int("max_queued", maxQueued),
		zap.Int("max_concurrent", maxConcurrent),
	)
	return l
}

// Wait submits job to l at the given priority (higher values run
// first among pending entries, no aging) and blocks until it reaches
// a terminal state: success, failure (wrapped as *JobFailure), or
// cancellation (Cancelled).
//
// Wait is a free function rather than a method because Go methods
// cannot introduce their own type parameters: the Limiter itself is
// not generic (its queue is monomorphic, per spec.md §9), but each
// call to Wait is, for whatever result type its job produces.
//
// If ctx is cancelled before job terminates, Wait installs the two-step
// cancellation protocol of spec.md §4.D: first try to remove the entry
// from the queue outright (no slot consumed, the job never runs); if
// that fails because the job is already admitted, raise the handle's
// own cancel signal instead and let the running job observe it.
func Wait[T any](ctx context.Context, l *Limiter, priority int, job Job[T]) (T, error) {
	var zero T

	if l.rootCtx.Err() != nil {
		return zero, ErrStopped
	}

	h := newHandle[T](l.rootCtx, job)
	h.afterComplete = l.afterComplete

	id, err := l.queue.enqueue(h.executable, h.completeQueued, priority)
	if err != nil {
		l.metrics.IncRejected()
		return zero, err
	}
	l.metrics.SetQueued(l.queue.len())

	select {
	case o := <-h.result:
		return o.val, o.err
	case <-ctx.Done():
	}

	if l.queue.delete(id) {
		h.completeQueued()
	} else {
		h.raiseCancel()
	}
	o := <-h.result
	return o.val, o.err
}

// afterComplete classifies a handle's terminal outcome into the
// MetricsPolicy taxonomy of spec.md §4.D's state machine: COMPLETED
// covers both success and JobFailure (the admission itself ran to
// term), while Cancelled splits on whether admission ever happened.
func (l *Limiter) afterComplete(err error, admitted bool) {
	switch {
	case err == nil:
		l.metrics.IncCompleted()
	case errors.Is(err, Cancelled):
		if admitted {
			l.metrics.IncCancelledRunning()
		} else {
			l.metrics.IncCancelledQueued()
		}
	default:
		l.metrics.IncCompleted()
	}
}

// Pending reports the current number of queued-but-not-yet-admitted
// tasks. The value may be stale the instant after it's read.
func (l *Limiter) Pending() int {
	return l.queue.len()
}

// Metrics returns the MetricsPolicy this Limiter reports to, the
// NoopMetrics default if none was supplied via WithMetrics. Grounded on
// the teacher's ActiveWorkers()/QueueLength() cold-path accessors on
// Pool[T] (wpool.go): a way to observe internal state without requiring
// the caller to have kept its own reference to what it passed in.
func (l *Limiter) Metrics() MetricsPolicy {
	return l.metrics
}

// Stop halts admission, cancels every in-flight job, waits for them to
// return, and completes every still-queued task as Cancelled. It is
// idempotent and blocks until teardown is complete — callers that need
// a deadline should use Shutdown instead.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		l.pacer.stop()
		l.rootCancel()
		l.pacer.wg.Wait()
		for _, cancel := range l.queue.drain() {
			cancel()
		}
		l.logger.Info("ratelimiter stopped")
	})
}

// Shutdown is Stop bounded by ctx, grounded on the teacher's
// Shutdown(ctx)/Stop() pair (wpool.go): Stop runs to completion on its
// own goroutine regardless of outcome, but Shutdown returns as soon as
// either it finishes or ctx expires.
func (l *Limiter) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		l.Stop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
