package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/service"

	"github.com/redis/go-redis/v9"
)

const (
	QueueAlerts        = "jobs:alerts"
	QueueNotifications = "jobs:notifications"

	JobAlertSweep   = "alert_sweep"
	JobNotification = "notification"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SweepJobPayload is the job envelope sent to QueueAlerts.
type SweepJobPayload struct {
	RequestedAt time.Time `json:"requested_at"`
}

var _ service.TaskQueue = (*Dispatcher)(nil)

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueAlertSweep pushes a full rule sweep to Redis.
func (d *Dispatcher) EnqueueAlertSweep(ctx context.Context) error {
	return d.enqueue(ctx, QueueAlerts, JobAlertSweep, SweepJobPayload{RequestedAt: time.Now().UTC()})
}

// EnqueueNotification pushes one alert email to Redis.
func (d *Dispatcher) EnqueueNotification(ctx context.Context, job dto.NotificationJob) error {
	return d.enqueue(ctx, QueueNotifications, JobNotification, job)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	encoded, err := encodeJob(jobType, payload)
	if err != nil {
		return err
	}
	if err := d.rdb.LPush(ctx, queue, encoded).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w: %v", jobType, service.ErrTransientDependency, err)
	}
	return nil
}

func encodeJob(jobType string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Job{Type: jobType, Payload: data})
}
