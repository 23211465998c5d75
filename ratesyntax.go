package ratelimiter

import (
	"fmt"
	"time"
)

// Every converts an "N every Duration" rate into the fixed minInterval
// New expects. Spec.md calls this convenience syntax out explicitly as
// a thin adapter over the core contract, not part of it — the core
// only ever reasons in terms of a single minInterval.
func Every(n int, d time.Duration) time.Duration {
	if n <= 0 {
		panic(fmt.Sprintf("ratelimiter: n must be > 0, got %d", n))
	}
	if d <= 0 {
		panic(fmt.Sprintf("ratelimiter: d must be > 0, got %s", d))
	}
	return d / time.Duration(n)
}

// NewRate is New expressed in "N every Duration" terms: NewRate(5,
// time.Second, ...) admits at most 5 jobs per second, paced evenly
// rather than in a single burst followed by idle time.
func NewRate(n int, per time.Duration, maxQueued, maxConcurrent int, opts ...Option) *Limiter {
	return New(Every(n, per), maxQueued, maxConcurrent, opts...)
}
