package worker

// notification_worker.go
// Processes alert emails from QueueNotifications. One attempt per job:
// a failure is logged, counted and dead-lettered, never retried.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/infra"
	"github.com/Lahari-104/Mediguard/internal/repository"
	"github.com/Lahari-104/Mediguard/internal/service"
	"github.com/Lahari-104/Mediguard/internal/telemetry"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AlertSender is the email transport. *infra.Mailer satisfies it.
type AlertSender interface {
	SendAlert(to, subject, message string) error
}

// NotificationWorker sends alert emails through the circuit breaker.
type NotificationWorker struct {
	sender AlertSender
	cb     *infra.CircuitBreaker
	alerts repository.AlertRepository
	dlq    DeadLetterSink
}

func NewNotificationWorker(sender AlertSender, cb *infra.CircuitBreaker, alerts repository.AlertRepository, dlq DeadLetterSink) *NotificationWorker {
	return &NotificationWorker{sender: sender, cb: cb, alerts: alerts, dlq: dlq}
}

func (w *NotificationWorker) Process(ctx context.Context, raw json.RawMessage) {
	var job dto.NotificationJob
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return
	}
	if job.ToEmail == "" {
		log.Warn().Str("alert_id", job.AlertID).Msg("notification_worker: empty to_email, skipping")
		return
	}

	err := w.cb.Execute(func() error {
		return w.sender.SendAlert(job.ToEmail, job.Subject, job.Message)
	})
	if err != nil {
		err = fmt.Errorf("%w: %v", service.ErrTransientDependency, err)
		telemetry.NotificationsSent.WithLabelValues("failed").Inc()
		log.Error().Err(err).
			Str("to", job.ToEmail).
			Str("alert_id", job.AlertID).
			Msg("notification_worker: delivery failed")
		sendToDLQ(ctx, w.dlq, QueueNotifications, JobNotification, raw, err.Error(), 1)
		return
	}

	telemetry.NotificationsSent.WithLabelValues("sent").Inc()
	log.Info().Str("to", job.ToEmail).Str("alert_id", job.AlertID).Msg("notification_worker: alert email sent")

	id, err := uuid.Parse(job.AlertID)
	if err != nil {
		log.Warn().Str("alert_id", job.AlertID).Msg("notification_worker: invalid alert_id, email_sent not recorded")
		return
	}
	if err := w.alerts.MarkEmailSent(ctx, id); err != nil {
		log.Error().Err(err).Str("alert_id", job.AlertID).Msg("notification_worker: failed to record email_sent")
	}
}
