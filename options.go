package ratelimiter

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// config holds everything New needs beyond the three required,
// precondition-checked parameters. It follows the teacher's
// Options-struct-plus-FillDefaults shape (options.go in azargarov-wpool),
// generalized from a QueueType/Workers pair to a logger/metrics/clock
// set of ambient collaborators.
type config struct {
	logger  *zap.Logger
	metrics MetricsPolicy
	clock   clock
}

func defaultConfig() config {
	return config{
		logger:  zap.NewNop(),
		metrics: &NoopMetrics{},
		clock:   realClock{},
	}
}

// Option configures ambient collaborators of a Limiter. It never
// configures minInterval/maxQueued/maxConcurrent — those are required,
// validated positional parameters of New, per spec.md §6.
type Option func(*config)

// WithLogger attaches a structured logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics attaches a MetricsPolicy implementation. A nil policy is
// ignored. Defaults to a zero-overhead no-op, matching the teacher's
// NoopMetrics default posture.
func WithMetrics(m MetricsPolicy) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}

func withClock(cl clock) Option {
	return func(c *config) {
		if cl != nil {
			c.clock = cl
		}
	}
}

// checkPreconditions enforces spec.md §6's construction preconditions.
// Violations are programming errors: they panic rather than return an
// error, matching the teacher's own expectation in
// fokv-workpool/advanced's "invalid configuration panics" test.
func checkPreconditions(minInterval time.Duration, maxQueued, maxConcurrent int) {
	if minInterval < 0 {
		panic(fmt.Sprintf("ratelimiter: minInterval must be >= 0, got %s", minInterval))
	}
	if maxQueued <= 0 {
		panic(fmt.Sprintf("ratelimiter: maxQueued must be > 0, got %d", maxQueued))
	}
	if maxConcurrent <= 0 {
		panic(fmt.Sprintf("ratelimiter: maxConcurrent must be > 0, got %d", maxConcurrent))
	}
}
