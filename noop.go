package ratelimiter

import "math"

// NewNoop builds a Limiter with no pacing and effectively unbounded
// concurrency: every Wait call is admitted the instant it's queued.
// Grounded on the teacher's NoopMetrics (metrics.go) — the same
// "implements the real interface, does none of the work" shape applied
// here to the admission policy rather than to metrics collection.
//
// Spec.md calls this out as a thin adapter over the core contract, not
// part of it: it exists purely so tests and callers that don't care
// about pacing can still go through Wait/Pending/Stop without tuning a
// real minInterval/maxConcurrent pair.
func NewNoop(maxQueued int, opts ...Option) *Limiter {
	return New(0, maxQueued, math.MaxInt32, opts...)
}
