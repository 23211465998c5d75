package ratelimiter

import "sync/atomic"

// MetricsPolicy defines hooks used by the limiter to report admission
// and terminal-state activity. Implementations must be safe for
// concurrent use and lightweight/non-blocking, exactly as required by
// the teacher's MetricsPolicy doc comment (metrics.go).
//
// The method set is the limiter's own terminal-state taxonomy
// (spec.md §4.D's state machine) rather than the teacher's generic
// executed/queued counters.
type MetricsPolicy interface {
	// IncAdmitted records a job being taken off the queue and started.
	IncAdmitted()

	// IncRejected records a Wait call rejected with ErrLimitReached.
	IncRejected()

	// IncCompleted records a job whose executable returned (success or
	// JobFailure — both are terminal admissions, see spec.md §8 invariant 4).
	IncCompleted()

	// IncCancelledQueued records a submission cancelled before admission.
	IncCancelledQueued()

	// IncCancelledRunning records a submission cancelled after admission.
	IncCancelledRunning()

	// SetQueued reports the current queue depth.
	SetQueued(n int)

	// SetInFlight reports the current in-flight execution count.
	SetInFlight(n int)
}

// AtomicMetrics is a lock-free MetricsPolicy backed by atomics, grounded
// on the teacher's AtomicMetrics (metrics.go): writes optimized for hot
// paths, reads intended for cold-path observation, with a padding field
// to avoid false sharing between the write-heavy and read-heavy halves.
type AtomicMetrics struct {
	admitted         atomic.Uint64
	rejected         atomic.Uint64
	completed        atomic.Uint64
	cancelledQueued  atomic.Uint64
	cancelledRunning atomic.Uint64

	_ [40]byte // padding to avoid false sharing with the gauges below

	queued   atomic.Int64
	inFlight atomic.Int64
}

func (m *AtomicMetrics) IncAdmitted()         { m.admitted.Add(1) }
func (m *AtomicMetrics) IncRejected()         { m.rejected.Add(1) }
func (m *AtomicMetrics) IncCompleted()        { m.completed.Add(1) }
func (m *AtomicMetrics) IncCancelledQueued()  { m.cancelledQueued.Add(1) }
func (m *AtomicMetrics) IncCancelledRunning() { m.cancelledRunning.Add(1) }
func (m *AtomicMetrics) SetQueued(n int)      { m.queued.Store(int64(n)) }
func (m *AtomicMetrics) SetInFlight(n int)    { m.inFlight.Store(int64(n)) }

// Admitted returns the total number of jobs admitted. Cold-path only.
func (m *AtomicMetrics) Admitted() uint64 { return m.admitted.Load() }

// Rejected returns the total number of Wait calls rejected for being
// over capacity. Cold-path only.
func (m *AtomicMetrics) Rejected() uint64 { return m.rejected.Load() }

// Completed returns the total number of admitted jobs that ran to
// completion (success or failure). Cold-path only.
func (m *AtomicMetrics) Completed() uint64 { return m.completed.Load() }

// CancelledQueued returns the total number of submissions cancelled
// while still queued. Cold-path only.
func (m *AtomicMetrics) CancelledQueued() uint64 { return m.cancelledQueued.Load() }

// CancelledRunning returns the total number of submissions cancelled
// after admission. Cold-path only.
func (m *AtomicMetrics) CancelledRunning() uint64 { return m.cancelledRunning.Load() }

// Queued returns the last reported queue depth. Cold-path only.
func (m *AtomicMetrics) Queued() int64 { return m.queued.Load() }

// InFlight returns the last reported in-flight count. Cold-path only.
func (m *AtomicMetrics) InFlight() int64 { return m.inFlight.Load() }

// NoopMetrics discards all metric updates, for zero overhead when
// metrics collection is disabled — grounded on the teacher's
// NoopMetrics (metrics.go).
type NoopMetrics struct{}

func (*NoopMetrics) IncAdmitted()         {}
func (*NoopMetrics) IncRejected()         {}
func (*NoopMetrics) IncCompleted()        {}
func (*NoopMetrics) IncCancelledQueued()  {}
func (*NoopMetrics) IncCancelledRunning() {}
func (*NoopMetrics) SetQueued(int)        {}
func (*NoopMetrics) SetInFlight(int)      {}
