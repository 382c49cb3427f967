package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handler processes the payload of one job type. Failures are handled
// (logged, dead-lettered) inside Process; the pool never retries.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage)
}

// Handlers routes job types to their Handler.
type Handlers map[string]Handler

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers Handlers) {
	queues := []string{QueueAlerts, QueueNotifications}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				if !idlePopError(ctx, err) {
					log.Error().Err(err).Int("worker", id).Msg("dequeue failed, backing off")
					sleepCtx(ctx, popBackoff)
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, result[0], result[1], handlers)
		}
	}
}

// popBackoff is the pause after a dequeue error that is not a plain timeout,
// e.g. Redis unreachable.
var popBackoff = 2 * time.Second

// idlePopError reports the errors BRPOP returns in normal operation: the
// poll timeout (redis.Nil) and shutdown.
func idlePopError(ctx context.Context, err error) bool {
	return errors.Is(err, redis.Nil) || ctx.Err() != nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func processJob(ctx context.Context, queue, raw string, handlers Handlers) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	h, ok := handlers[job.Type]
	if !ok {
		log.Error().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		return
	}
	log.Debug().Str("type", job.Type).Str("queue", queue).Msg("processing job")
	h.Process(ctx, job.Payload)
}
