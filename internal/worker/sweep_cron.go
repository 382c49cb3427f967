package worker

// sweep_cron.go
// Background goroutine that periodically queues a full alert sweep. The
// sweep itself runs in the worker pool, the same path as on-demand checks.

import (
	"context"
	"time"

	"github.com/Lahari-104/Mediguard/internal/service"

	"github.com/rs/zerolog/log"
)

// SweepCronConfig holds all dependencies for the sweep goroutine.
type SweepCronConfig struct {
	Queue    service.TaskQueue
	Interval time.Duration
}

// StartSweepCron launches a goroutine that enqueues a sweep every Interval.
// It respects the context for graceful shutdown.
func StartSweepCron(ctx context.Context, cfg SweepCronConfig) {
	if cfg.Interval <= 0 {
		log.Warn().Msg("sweep_cron: non-positive interval, periodic sweeps disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("sweep_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sweep_cron: shutting down")
				return
			case <-ticker.C:
				tick(ctx, cfg.Queue)
			}
		}
	}()
}

func tick(ctx context.Context, q service.TaskQueue) {
	if err := q.EnqueueAlertSweep(ctx); err != nil {
		log.Error().Err(err).Msg("sweep_cron: failed to enqueue sweep")
	}
}
