package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/model"
	"github.com/Lahari-104/Mediguard/internal/repository"
	"github.com/Lahari-104/Mediguard/internal/telemetry"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AlertRules are the tunable thresholds of the rule engine.
type AlertRules struct {
	// ExpiryWindow is how far ahead of expiry_date a line gets an expiry_warning.
	ExpiryWindow time.Duration
	// LowStockRatio: a line is low when current < ratio × initial.
	LowStockRatio decimal.Decimal
}

// DefaultAlertRules: 30 days, 10%.
func DefaultAlertRules() AlertRules {
	return AlertRules{
		ExpiryWindow:  30 * 24 * time.Hour,
		LowStockRatio: decimal.NewFromFloat(0.10),
	}
}

// SweepResult reports what one sweep created. Err joins the failures of
// individual rules; a failed rule never prevents the others from running.
type SweepResult struct {
	ExpiryWarnings int
	ExpiredBatches int
	LowStock       int
	Err            error
}

// AlertEngine evaluates alert rules against current state. Every rule is
// idempotent: at most one alert ever exists per (batch, alert type), read or
// not, even if the condition later clears and recurs.
type AlertEngine interface {
	EvaluateExpiry(ctx context.Context, now time.Time) (int, error)
	EvaluateExpired(ctx context.Context, now time.Time) (int, error)
	EvaluateLowStock(ctx context.Context) (int, error)
	// EvaluateQualityIssue returns the alert it created, or created=false when
	// the batch is not failed or already has one.
	EvaluateQualityIssue(ctx context.Context, batch *model.Batch) (alert *model.Alert, created bool, err error)

	Sweep(ctx context.Context, now time.Time) SweepResult
	// ScheduleSweep queues a sweep and returns without waiting for it.
	ScheduleSweep(ctx context.Context) error

	List(ctx context.Context, unreadOnly bool) ([]dto.AlertResponse, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type alertEngine struct {
	alerts    repository.AlertRepository
	inventory repository.InventoryRepository
	batches   repository.BatchRepository
	queue     TaskQueue
	rules     AlertRules
	now       func() time.Time
}

func NewAlertEngine(
	alerts repository.AlertRepository,
	inventory repository.InventoryRepository,
	batches repository.BatchRepository,
	queue TaskQueue,
	rules AlertRules,
) AlertEngine {
	return &alertEngine{
		alerts:    alerts,
		inventory: inventory,
		batches:   batches,
		queue:     queue,
		rules:     rules,
		now:       time.Now,
	}
}

// raise inserts the alert unless the (batch, type) pair already has one.
func (e *alertEngine) raise(ctx context.Context, a *model.Alert) (bool, error) {
	a.CreatedAt = e.now()
	created, err := e.alerts.CreateIfAbsent(ctx, a)
	if err != nil {
		return false, fmt.Errorf("insert %s alert: %w", a.AlertType, err)
	}
	if created {
		telemetry.AlertsCreated.WithLabelValues(string(a.AlertType)).Inc()
		log.Info().
			Str("alert_type", string(a.AlertType)).
			Str("severity", string(a.Severity)).
			Str("batch_number", deref(a.BatchNumber)).
			Msg("alert raised")
	}
	return created, nil
}

func lineAlert(line *model.InventoryLine, t model.AlertType, sev model.Severity, title, msg string) *model.Alert {
	batchID := line.BatchID
	number := line.BatchNumber
	return &model.Alert{
		ID:          uuid.New(),
		AlertType:   t,
		Title:       title,
		Message:     msg,
		BatchID:     &batchID,
		BatchNumber: &number,
		Severity:    sev,
	}
}

func (e *alertEngine) EvaluateExpiry(ctx context.Context, now time.Time) (int, error) {
	lines, err := e.inventory.ListExpiringBetween(ctx, now, now.Add(e.rules.ExpiryWindow))
	if err != nil {
		return 0, fmt.Errorf("expiry rule: %w", err)
	}
	created := 0
	var errs lineErrors
	for i := range lines {
		l := &lines[i]
		a := lineAlert(l, model.AlertExpiryWarning, model.SeverityMedium, "Batch Expiring Soon",
			fmt.Sprintf("%s (Batch: %s) expires soon", l.ProductName, l.BatchNumber))
		ok, err := e.raise(ctx, a)
		if err != nil {
			errs.add("expiry", l, err)
			continue
		}
		if ok {
			created++
		}
	}
	return created, errs.join("expiry rule")
}

// EvaluateExpired covers lines already past expiry_date, which EvaluateExpiry
// does not, and moves their batches to expired.
func (e *alertEngine) EvaluateExpired(ctx context.Context, now time.Time) (int, error) {
	lines, err := e.inventory.ListExpiredBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("expired rule: %w", err)
	}
	created := 0
	var errs lineErrors
	for i := range lines {
		l := &lines[i]
		a := lineAlert(l, model.AlertExpiredBatch, model.SeverityHigh, "Batch Expired",
			fmt.Sprintf("%s (Batch: %s) expired on %s", l.ProductName, l.BatchNumber, l.ExpiryDate.Format(dateLayout)))
		ok, err := e.raise(ctx, a)
		if err != nil {
			errs.add("expired", l, err)
		} else if ok {
			created++
		}
		if err := e.expireBatch(ctx, l.BatchID); err != nil {
			errs.add("expired", l, err)
		}
	}
	return created, errs.join("expired rule")
}

func (e *alertEngine) expireBatch(ctx context.Context, batchID uuid.UUID) error {
	return runTx(ctx, e.batches.DB(), func(tx *gorm.DB) error {
		b, err := e.batches.FindByIDTx(tx, batchID)
		if err != nil {
			return notFoundOr(err, "batch "+batchID.String())
		}
		if !canTransition(b.Status, model.BatchExpired) {
			return nil
		}
		return e.batches.UpdateStatusTx(tx, batchID, model.BatchExpired)
	})
}

// lineErrors collects per-line failures so one bad row does not starve the
// rest of a rule.
type lineErrors []error

func (le *lineErrors) add(rule string, l *model.InventoryLine, err error) {
	log.Error().
		Err(err).
		Str("rule", rule).
		Str("inventory_id", l.ID.String()).
		Str("batch_id", l.BatchID.String()).
		Msg("alert rule failed for line")
	*le = append(*le, err)
}

func (le lineErrors) join(rule string) error {
	if len(le) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %d line(s) failed: %w", rule, len(le), errors.Join(le...))
}

// isLowStock reports current < ratio × initial. A line registered with
// initial == 0 always counts as low.
func isLowStock(current, initial int, ratio decimal.Decimal) bool {
	if initial == 0 {
		return true
	}
	threshold := ratio.Mul(decimal.NewFromInt(int64(initial)))
	return decimal.NewFromInt(int64(current)).LessThan(threshold)
}

func (e *alertEngine) EvaluateLowStock(ctx context.Context) (int, error) {
	lines, err := e.inventory.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("low stock rule: %w", err)
	}
	created := 0
	var errs lineErrors
	for i := range lines {
		l := &lines[i]
		if !isLowStock(l.CurrentStock, l.InitialStock, e.rules.LowStockRatio) {
			continue
		}
		a := lineAlert(l, model.AlertLowStock, model.SeverityHigh, "Low Stock Alert",
			fmt.Sprintf("Low stock for %s (Batch: %s)", l.ProductName, l.BatchNumber))
		ok, err := e.raise(ctx, a)
		if err != nil {
			errs.add("low_stock", l, err)
			continue
		}
		if ok {
			created++
		}
	}
	return created, errs.join("low stock rule")
}

func (e *alertEngine) EvaluateQualityIssue(ctx context.Context, batch *model.Batch) (*model.Alert, bool, error) {
	if batch.QualityStatus != model.QualityFailed {
		return nil, false, nil
	}
	batchID := batch.ID
	number := batch.BatchNumber
	a := &model.Alert{
		ID:          uuid.New(),
		AlertType:   model.AlertQualityIssue,
		Title:       "Quality Test Failed",
		Message:     fmt.Sprintf("Quality test failed for %s (Batch: %s)", batch.ProductName, batch.BatchNumber),
		BatchID:     &batchID,
		BatchNumber: &number,
		Severity:    model.SeverityHigh,
	}
	created, err := e.raise(ctx, a)
	if err != nil || !created {
		return nil, false, err
	}
	return a, true, nil
}

func (e *alertEngine) Sweep(ctx context.Context, now time.Time) SweepResult {
	start := time.Now()
	defer func() { telemetry.SweepDuration.Observe(time.Since(start).Seconds()) }()

	var res SweepResult
	var errs []error
	run := func(rule string, fn func() (int, error), into *int) {
		n, err := fn()
		*into = n
		if err != nil {
			log.Error().Err(err).Str("rule", rule).Msg("alert sweep: rule failed")
			errs = append(errs, err)
		}
	}

	run("expiry_warning", func() (int, error) { return e.EvaluateExpiry(ctx, now) }, &res.ExpiryWarnings)
	run("expired_batch", func() (int, error) { return e.EvaluateExpired(ctx, now) }, &res.ExpiredBatches)
	run("low_stock", func() (int, error) { return e.EvaluateLowStock(ctx) }, &res.LowStock)

	res.Err = errors.Join(errs...)
	log.Info().
		Int("expiry_warnings", res.ExpiryWarnings).
		Int("expired_batches", res.ExpiredBatches).
		Int("low_stock", res.LowStock).
		Bool("failed", res.Err != nil).
		Msg("alert sweep finished")
	return res
}

func (e *alertEngine) ScheduleSweep(ctx context.Context) error {
	if err := e.queue.EnqueueAlertSweep(ctx); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	return nil
}

func (e *alertEngine) List(ctx context.Context, unreadOnly bool) ([]dto.AlertResponse, error) {
	alerts, err := e.alerts.List(ctx, unreadOnly)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AlertResponse, len(alerts))
	for i := range alerts {
		resp[i] = toAlertResponse(&alerts[i])
	}
	return resp, nil
}

func (e *alertEngine) MarkRead(ctx context.Context, id uuid.UUID) error {
	found, err := e.alerts.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
