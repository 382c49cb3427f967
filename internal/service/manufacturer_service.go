package service

import (
	"context"
	"time"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/model"
	"github.com/Lahari-104/Mediguard/internal/repository"

	"github.com/google/uuid"
)

type ManufacturerService interface {
	Create(ctx context.Context, req dto.CreateManufacturerRequest) (*dto.ManufacturerResponse, error)
	List(ctx context.Context) ([]dto.ManufacturerResponse, error)
}

type manufacturerService struct {
	repo repository.ManufacturerRepository
}

func NewManufacturerService(repo repository.ManufacturerRepository) ManufacturerService {
	return &manufacturerService{repo: repo}
}

func (s *manufacturerService) Create(ctx context.Context, req dto.CreateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	m := &model.Manufacturer{
		ID:            uuid.New(),
		Name:          req.Name,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
		LicenseNumber: req.LicenseNumber,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := toManufacturerResponse(m)
	return &resp, nil
}

func (s *manufacturerService) List(ctx context.Context) ([]dto.ManufacturerResponse, error) {
	ms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ManufacturerResponse, len(ms))
	for i := range ms {
		resp[i] = toManufacturerResponse(&ms[i])
	}
	return resp, nil
}
