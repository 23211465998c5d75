package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andreyvlasov/ratelimiter"
	"github.com/andreyvlasov/ratelimiter/internal/promadapter"
)

// buildServeCommand wires a Limiter, an optional Prometheus endpoint,
// and a burst of synthetic jobs, then waits until every job has
// finished or SIGINT/SIGTERM arrives, whichever comes first.
//
// Grounded on ChuLiYu-raft-recovery's buildRunCommand/runControllerNode:
// load config, optionally start the metrics HTTP server on its own
// goroutine, start the main component, then block on a signal channel
// before shutting down.
func buildServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the limiter against a burst of synthetic jobs until they finish or it is interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	return cmd
}

func runServe() error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	var metrics ratelimiter.MetricsPolicy = &ratelimiter.NoopMetrics{}
	if cfg.Metrics.Enabled {
		collector := promadapter.NewCollector(prometheus.DefaultRegisterer)
		metrics = collector
		go func() {
			logger.Info("starting metrics server", zap.Int("port", cfg.Metrics.Port))
			if err := promadapter.StartServer(cfg.Metrics.Port); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	l := ratelimiter.New(
		cfg.Limiter.MinInterval,
		cfg.Limiter.MaxQueued,
		cfg.Limiter.MaxConcurrent,
		ratelimiter.WithLogger(logger),
		ratelimiter.WithMetrics(metrics),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Demo.JobCount; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			priority := rand.Intn(5)
			ctx := context.Background()
			start := time.Now()
			_, err := ratelimiter.Wait(ctx, l, priority, func(ctx context.Context) (int, error) {
				select {
				case <-time.After(cfg.Demo.JobDuration):
					return n, nil
				case <-ctx.Done():
					return 0, ctx.Err()
				}
			})
			logger.Info("job finished",
				zap.Int("job", n),
				zap.Int("priority", priority),
				zap.Duration("latency", time.Since(start)),
				zap.Error(err),
			)
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all demo jobs finished")
	case <-sigCh:
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := l.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown did not complete cleanly", zap.Error(err))
	}
	return nil
}
