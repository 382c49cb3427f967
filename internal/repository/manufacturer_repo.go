package repository

import (
	"context"

	"github.com/Lahari-104/Mediguard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ManufacturerRepository interface {
	Create(ctx context.Context, m *model.Manufacturer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Manufacturer, error)
	List(ctx context.Context) ([]model.Manufacturer, error)
	Count(ctx context.Context) (int64, error)
}

type manufacturerRepo struct{ db *gorm.DB }

func NewManufacturerRepository(db *gorm.DB) ManufacturerRepository {
	return &manufacturerRepo{db: db}
}

func (r *manufacturerRepo) Create(ctx context.Context, m *model.Manufacturer) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *manufacturerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Manufacturer, error) {
	var m model.Manufacturer
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *manufacturerRepo) List(ctx context.Context) ([]model.Manufacturer, error) {
	var ms []model.Manufacturer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&ms).Error
	return ms, err
}

func (r *manufacturerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Manufacturer{}).Count(&n).Error
	return n, err
}
