package ratelimiter

import "time"

// clock abstracts time so scenario tests can drive the pacer with a
// virtualised clock instead of real sleeps, per spec.md §8's "use a
// virtualised clock" requirement. The teacher calls time.Now/time.NewTimer
// directly (wpool.go, scheduler.go); this seam is new but kept minimal
// and stdlib-only, in the same spirit as the teacher's small interfaces
// (schedQueue[T], MetricsPolicy).
type clock interface {
	Now() time.Time
	NewTimer(d time.Duration) timer
}

// timer abstracts time.Timer so a fake clock can fire it deterministically.
type timer interface {
	C() <-chan time.Time
	Stop() bool
	Reset(d time.Duration) bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTimer(d time.Duration) timer {
	return &realTimer{t: time.NewTimer(d)}
}

type realTimer struct{ t *time.Timer }

func (r *realTimer) C() <-chan time.Time      { return r.t.C }
func (r *realTimer) Stop() bool               { return r.t.Stop() }
func (r *realTimer) Reset(d time.Duration) bool { return r.t.Reset(d) }
