package service

import (
	"context"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/model"
	"github.com/Lahari-104/Mediguard/internal/repository"

	"github.com/rs/zerolog/log"
)

// TaskQueue accepts deferred work. Jobs run at most once, in no particular
// order relative to the request that queued them.
type TaskQueue interface {
	EnqueueAlertSweep(ctx context.Context) error
	EnqueueNotification(ctx context.Context, job dto.NotificationJob) error
}

// Notifier fans an alert out to its recipients. Dispatch is fire-and-forget:
// it never reports failure to the caller.
type Notifier interface {
	Dispatch(ctx context.Context, alert *model.Alert)
}

const qualityAlertSubject = "Quality Issue Alert"

type notifier struct {
	users repository.UserRepository
	queue TaskQueue
}

func NewNotifier(users repository.UserRepository, queue TaskQueue) Notifier {
	return &notifier{users: users, queue: queue}
}

// Dispatch only handles quality_issue alerts. Staff recipients are read at
// dispatch time, one email job is queued per recipient.
func (n *notifier) Dispatch(ctx context.Context, alert *model.Alert) {
	if alert.AlertType != model.AlertQualityIssue {
		return
	}

	staff, err := n.users.ListByRole(ctx, model.RoleStaff)
	if err != nil {
		log.Error().Err(err).Str("alert_id", alert.ID.String()).Msg("notifier: failed to resolve staff recipients")
		return
	}
	if len(staff) == 0 {
		log.Warn().Str("alert_id", alert.ID.String()).Msg("notifier: no staff recipients")
		return
	}

	queued := 0
	for _, u := range staff {
		job := dto.NotificationJob{
			AlertID: alert.ID.String(),
			ToEmail: u.Email,
			Subject: qualityAlertSubject,
			Message: alert.Message,
		}
		if err := n.queue.EnqueueNotification(ctx, job); err != nil {
			log.Error().Err(err).Str("to", u.Email).Msg("notifier: failed to enqueue email")
			continue
		}
		queued++
	}
	log.Info().
		Str("alert_id", alert.ID.String()).
		Int("recipients", len(staff)).
		Int("queued", queued).
		Msg("notifier: quality alert dispatched")
}
