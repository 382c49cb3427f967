package repository

import (
	"context"
	"time"

	"github.com/Lahari-104/Mediguard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryLine, error)
	FindByBatchID(ctx context.Context, batchID uuid.UUID) (*model.InventoryLine, error)
	List(ctx context.Context) ([]model.InventoryLine, error)
	// ListExpiringBetween returns lines whose expiry_date is in [from, to].
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]model.InventoryLine, error)
	// ListExpiredBefore returns lines whose expiry_date is strictly before t.
	ListExpiredBefore(ctx context.Context, t time.Time) ([]model.InventoryLine, error)
	Count(ctx context.Context) (int64, error)

	// CreateTx fails with gorm.ErrDuplicatedKey when the batch already has a line.
	CreateTx(tx *gorm.DB, line *model.InventoryLine) error
	// FindByIDForUpdateTx row-locks the line until the transaction ends.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryLine, error)
	SetStockTx(tx *gorm.DB, id uuid.UUID, stock int, at time.Time) error

	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryLine, error) {
	var l model.InventoryLine
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *inventoryRepo) FindByBatchID(ctx context.Context, batchID uuid.UUID) (*model.InventoryLine, error) {
	var l model.InventoryLine
	if err := r.db.WithContext(ctx).First(&l, "batch_id = ?", batchID).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *inventoryRepo) List(ctx context.Context) ([]model.InventoryLine, error) {
	var lines []model.InventoryLine
	err := r.db.WithContext(ctx).Order("expiry_date ASC").Find(&lines).Error
	return lines, err
}

func (r *inventoryRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]model.InventoryLine, error) {
	var lines []model.InventoryLine
	err := r.db.WithContext(ctx).
		Where("expiry_date >= ? AND expiry_date <= ?", from, to).
		Order("expiry_date ASC").
		Find(&lines).Error
	return lines, err
}

func (r *inventoryRepo) ListExpiredBefore(ctx context.Context, t time.Time) ([]model.InventoryLine, error) {
	var lines []model.InventoryLine
	err := r.db.WithContext(ctx).Where("expiry_date < ?", t).Order("expiry_date ASC").Find(&lines).Error
	return lines, err
}

func (r *inventoryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.InventoryLine{}).Count(&n).Error
	return n, err
}

func (r *inventoryRepo) CreateTx(tx *gorm.DB, line *model.InventoryLine) error {
	return tx.Create(line).Error
}

func (r *inventoryRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryLine, error) {
	var l model.InventoryLine
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *inventoryRepo) SetStockTx(tx *gorm.DB, id uuid.UUID, stock int, at time.Time) error {
	return tx.Model(&model.InventoryLine{}).Where("id = ?", id).Updates(map[string]interface{}{
		"current_stock": stock,
		"last_updated":  at,
	}).Error
}

func (r *inventoryRepo) DB() *gorm.DB { return r.db }
