// Package ratelimiter provides a priority-aware, interval-paced
// admission control for asynchronous jobs.
//
// A Limiter enforces three things on whatever jobs are submitted to it
// through Wait: a minimum spacing between successive admissions (fixed
// delay, not fixed rate), a bound on how many jobs may run at once,
// and a bound on how many may wait in its queue before submissions
// start being rejected outright. Among queued jobs, strictly higher
// priority wins at the moment of admission; there is no aging, so a
// low-priority job can in principle wait indefinitely behind a steady
// stream of higher-priority ones.
//
//	l := ratelimiter.New(200*time.Millisecond, 64, 4)
//	defer l.Stop()
//
//	result, err := ratelimiter.Wait(ctx, l, 0, func(ctx context.Context) (int, error) {
//		return doWork(ctx)
//	})
//
// The architecture is four small pieces wired together: a Task Handle
// (handle.go) carrying one job's one-shot result and cancel signal, a
// bounded priority queue (queue.go) holding submitted-but-not-yet-admitted
// entries, a pacer (pacer.go) that drains the queue under the interval
// and concurrency bounds, and the Limiter facade (limiter.go) that ties
// the three together behind Wait.
package ratelimiter
