package repository

import (
	"context"

	"github.com/Lahari-104/Mediguard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchFilter narrows List; zero values mean "no filter".
type BatchFilter struct {
	ManufacturerID *uuid.UUID
	Status         model.BatchStatus
	QualityStatus  model.QualityStatus
}

type BatchRepository interface {
	Create(ctx context.Context, b *model.Batch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Batch, error)
	List(ctx context.Context, filter BatchFilter) ([]model.Batch, error)
	Count(ctx context.Context, filter BatchFilter) (int64, error)

	// Used inside transactions, callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Batch, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.BatchStatus) error
	UpdateQualityStatusTx(tx *gorm.DB, id uuid.UUID, status model.QualityStatus) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type batchRepo struct{ db *gorm.DB }

func NewBatchRepository(db *gorm.DB) BatchRepository { return &batchRepo{db: db} }

func (r *batchRepo) Create(ctx context.Context, b *model.Batch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *batchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	return r.FindByIDTx(r.db.WithContext(ctx), id)
}

func (r *batchRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Batch, error) {
	var b model.Batch
	if err := tx.First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *batchRepo) filtered(ctx context.Context, f BatchFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Batch{})
	if f.ManufacturerID != nil {
		q = q.Where("manufacturer_id = ?", *f.ManufacturerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.QualityStatus != "" {
		q = q.Where("quality_status = ?", f.QualityStatus)
	}
	return q
}

func (r *batchRepo) List(ctx context.Context, f BatchFilter) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.filtered(ctx, f).Order("created_at DESC").Find(&batches).Error
	return batches, err
}

func (r *batchRepo) Count(ctx context.Context, f BatchFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, err
}

func (r *batchRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.BatchStatus) error {
	return tx.Model(&model.Batch{}).Where("id = ?", id).Update("status", status).Error
}

func (r *batchRepo) UpdateQualityStatusTx(tx *gorm.DB, id uuid.UUID, status model.QualityStatus) error {
	return tx.Model(&model.Batch{}).Where("id = ?", id).Update("quality_status", status).Error
}

func (r *batchRepo) DB() *gorm.DB { return r.db }
