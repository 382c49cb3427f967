package repository

import (
	"context"

	"github.com/Lahari-104/Mediguard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlertRepository interface {
	// CreateIfAbsent inserts a unless an alert with the same (batch_id, alert_type)
	// already exists. created reports whether the row was written.
	CreateIfAbsent(ctx context.Context, a *model.Alert) (created bool, err error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Alert, error)
	// List returns alerts newest-created first.
	List(ctx context.Context, unreadOnly bool) ([]model.Alert, error)
	// MarkRead reports false when no alert has the given id.
	MarkRead(ctx context.Context, id uuid.UUID) (bool, error)
	MarkEmailSent(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int64, error)
}

type alertRepo struct{ db *gorm.DB }

func NewAlertRepository(db *gorm.DB) AlertRepository { return &alertRepo{db: db} }

// CreateIfAbsent relies on idx_alert_batch_type: two concurrent sweeps racing
// on the same pair both issue the INSERT, exactly one of them affects a row.
func (r *alertRepo) CreateIfAbsent(ctx context.Context, a *model.Alert) (bool, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "batch_id"}, {Name: "alert_type"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *alertRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	var a model.Alert
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *alertRepo) List(ctx context.Context, unreadOnly bool) ([]model.Alert, error) {
	q := r.db.WithContext(ctx).Model(&model.Alert{})
	if unreadOnly {
		q = q.Where("is_read = false")
	}
	var alerts []model.Alert
	err := q.Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

func (r *alertRepo) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Alert{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		return true, nil
	}
	// Already-read rows are still reported as updated by Postgres, so 0 means absent.
	return false, nil
}

func (r *alertRepo) MarkEmailSent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Alert{}).Where("id = ?", id).Update("email_sent", true).Error
}

func (r *alertRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Alert{}).Where("is_read = false").Count(&n).Error
	return n, err
}
