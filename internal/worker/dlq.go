package worker

// dlq.go: Dead Letter Queue
// Notifications that fail are terminal (no retry) and are parked here for
// manual inspection. One Redis list per source queue: dlq:{original_queue}

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps a failed job with metadata for debugging.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // ISO 8601
	Attempts      int             `json:"attempts"`
}

// DeadLetterSink receives jobs that will not be attempted again.
type DeadLetterSink interface {
	Push(ctx context.Context, entry DLQEntry) error
}

// RedisDLQ is the DeadLetterSink backed by Redis lists.
type RedisDLQ struct {
	rdb *redis.Client
}

func NewRedisDLQ(rdb *redis.Client) *RedisDLQ {
	return &RedisDLQ{rdb: rdb}
}

func (d *RedisDLQ) Push(ctx context.Context, entry DLQEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, DLQPrefix+entry.OriginalQueue, data).Err()
}

// Length returns the number of entries in a DLQ for monitoring.
func (d *RedisDLQ) Length(ctx context.Context, queue string) (int64, error) {
	return d.rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// sendToDLQ pushes a failed job to the sink, logging either outcome.
func sendToDLQ(ctx context.Context, sink DeadLetterSink, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}
	if err := sink.Push(ctx, entry); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to push to DLQ")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job moved to dead letter queue")
}
