package repository

import (
	"context"

	"github.com/Lahari-104/Mediguard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QualityReportRepository interface {
	CreateTx(tx *gorm.DB, r *model.QualityReport) error
	List(ctx context.Context) ([]model.QualityReport, error)
	// ListByBatch returns the batch's reports oldest first.
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]model.QualityReport, error)
}

type qualityReportRepo struct{ db *gorm.DB }

func NewQualityReportRepository(db *gorm.DB) QualityReportRepository {
	return &qualityReportRepo{db: db}
}

func (r *qualityReportRepo) CreateTx(tx *gorm.DB, rep *model.QualityReport) error {
	return tx.Create(rep).Error
}

func (r *qualityReportRepo) List(ctx context.Context) ([]model.QualityReport, error) {
	var reps []model.QualityReport
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reps).Error
	return reps, err
}

func (r *qualityReportRepo) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]model.QualityReport, error) {
	var reps []model.QualityReport
	err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).Order("created_at ASC").Find(&reps).Error
	return reps, err
}
