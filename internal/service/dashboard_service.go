package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/infra"
	"github.com/Lahari-104/Mediguard/internal/model"
	"github.com/Lahari-104/Mediguard/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	Traceability(ctx context.Context, batchID uuid.UUID) (*dto.TraceabilityResponse, error)
	WriteTraceabilityPDF(ctx context.Context, batchID uuid.UUID, w io.Writer) error
}

type dashboardService struct {
	batches       repository.BatchRepository
	manufacturers repository.ManufacturerRepository
	inventory     repository.InventoryRepository
	reports       repository.QualityReportRepository
	alerts        repository.AlertRepository
	rdb           *redis.Client // nil disables caching
}

func NewDashboardService(
	batches repository.BatchRepository,
	manufacturers repository.ManufacturerRepository,
	inventory repository.InventoryRepository,
	reports repository.QualityReportRepository,
	alerts repository.AlertRepository,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{
		batches:       batches,
		manufacturers: manufacturers,
		inventory:     inventory,
		reports:       reports,
		alerts:        alerts,
		rdb:           rdb,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var resp dto.DashboardStatsResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	var resp dto.DashboardStatsResponse
	var err error
	if resp.TotalBatches, err = s.batches.Count(ctx, repository.BatchFilter{}); err != nil {
		return nil, err
	}
	if resp.TotalManufacturers, err = s.manufacturers.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalInventoryItems, err = s.inventory.Count(ctx); err != nil {
		return nil, err
	}
	if resp.ActiveAlerts, err = s.alerts.CountUnread(ctx); err != nil {
		return nil, err
	}
	pending := repository.BatchFilter{QualityStatus: model.QualityPending}
	if resp.PendingQualityTests, err = s.batches.Count(ctx, pending); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, b, statsCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("dashboard: stats cache write failed")
			}
		}
	}
	return &resp, nil
}

func (s *dashboardService) sheet(ctx context.Context, batchID uuid.UUID) (*infra.TraceabilitySheet, error) {
	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		return nil, notFoundOr(err, "batch "+batchID.String())
	}
	sheet := &infra.TraceabilitySheet{Batch: batch}

	m, err := s.manufacturers.FindByID(ctx, batch.ManufacturerID)
	switch {
	case err == nil:
		sheet.Manufacturer = m
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	line, err := s.inventory.FindByBatchID(ctx, batchID)
	switch {
	case err == nil:
		sheet.Line = line
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	if sheet.Reports, err = s.reports.ListByBatch(ctx, batchID); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *dashboardService) Traceability(ctx context.Context, batchID uuid.UUID) (*dto.TraceabilityResponse, error) {
	sheet, err := s.sheet(ctx, batchID)
	if err != nil {
		return nil, err
	}
	resp := &dto.TraceabilityResponse{
		Batch:          toBatchResponse(sheet.Batch),
		QualityReports: make([]dto.QualityReportResponse, len(sheet.Reports)),
	}
	if sheet.Manufacturer != nil {
		m := toManufacturerResponse(sheet.Manufacturer)
		resp.Manufacturer = &m
	}
	if sheet.Line != nil {
		l := toInventoryLineResponse(sheet.Line)
		resp.Inventory = &l
	}
	for i := range sheet.Reports {
		resp.QualityReports[i] = toQualityReportResponse(&sheet.Reports[i])
	}
	return resp, nil
}

func (s *dashboardService) WriteTraceabilityPDF(ctx context.Context, batchID uuid.UUID, w io.Writer) error {
	sheet, err := s.sheet(ctx, batchID)
	if err != nil {
		return err
	}
	return infra.WriteTraceabilityPDF(w, *sheet)
}
