package ratelimiter

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// pacer is the Pacer/Executor Loop of spec.md §4.C / component C: it
// pulls one task per minInterval from the queue and launches it under
// a concurrency bound, tolerating job failures without stopping.
//
// Grounded on the teacher's scheduler() goroutine (scheduler.go) for
// the overall "single loop, pop-then-dispatch" shape, and on wpool.go's
// workerSlots-channel semaphore for the concurrency gate. Aging/Tick
// machinery from the teacher's scheduler is dropped along with the
// priority queue's aging (see queue.go) — there is no per-tick
// re-ranking here, only a fixed-delay pacing timer.
type pacer struct {
	q           *boundedPQ
	minInterval time.Duration
	sem         chan struct{}
	clock       clock
	metrics     MetricsPolicy
	logger      *zap.Logger

	stopCh   chan struct{}
	doneCh   chan struct{}
	wg       sync.WaitGroup // tracks launched, still-running executables
	inFlight atomic.Int64
}

func newPacer(q *boundedPQ, minInterval time.Duration, maxConcurrent int, cl clock, metrics MetricsPolicy, logger *zap.Logger) *pacer {
	p := &pacer{
		q:           q,
		minInterval: minInterval,
		sem:         make(chan struct{}, maxConcurrent),
		clock:       cl,
		metrics:     metrics,
		logger:      logger,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	go p.run()
	return p
}

// run is the admission loop. Each iteration:
//  1. acquires a concurrency slot (blocks if maxConcurrent in-flight —
//     per spec.md §4.C, while blocked here the queue is not even
//     touched, so queued tasks simply remain queued);
//  2. waits out whatever remains of minInterval since the last
//     admission (fixed delay, sampled fresh each iteration rather than
//     scheduled on a wall-clock tick train, per spec.md §9);
//  3. dequeues — blocking if the queue is empty — and launches.
//
// Only after both gates pass does it dequeue, so the item it picks is
// always the true current head of the priority queue at the moment of
// admission (spec.md §5: "strictly higher priority wins at the moment
// of dequeue").
func (p *pacer) run() {
	defer close(p.doneCh)

	var lastAdmit time.Time
	haveLastAdmit := false

	for {
		select {
		case p.sem <- struct{}{}:
		case <-p.stopCh:
			return
		}

		if haveLastAdmit {
			if remaining := p.minInterval - p.clock.Now().Sub(lastAdmit); remaining > 0 {
				t := p.clock.NewTimer(remaining)
				select {
				case <-t.C():
				case <-p.stopCh:
					t.Stop()
					return
				}
			}
		}

		job, ok := p.q.dequeue()
		if !ok {
			// queue closed and drained: shutting down.
			return
		}

		lastAdmit = p.clock.Now()
		haveLastAdmit = true
		p.launch(job)
	}
}

// launch runs job on its own goroutine, releasing the concurrency slot
// when it returns. Job failures and panics are isolated inside job
// itself (handle.executable recovers panics); the loop is never
// observably failed by a user job, per spec.md §4.C/§7.
func (p *pacer) launch(job func()) {
	p.metrics.IncAdmitted()
	p.metrics.SetQueued(p.q.len())
	p.metrics.SetInFlight(int(p.inFlight.Add(1)))
	p.wg.Add(1)
	go func() {
		defer func() {
			p.metrics.SetInFlight(int(p.inFlight.Add(-1)))
			<-p.sem
			p.wg.Done()
		}()
		job()
	}()
}

// stop halts the admission loop and waits for it to exit. It does not
// wait for in-flight executions to finish — callers that need that
// should wait on the pacer's own in-flight tracking (the Limiter does,
// via wg) after interrupting running jobs.
func (p *pacer) stop() {
	close(p.stopCh)
	p.q.close()
	<-p.doneCh
}
