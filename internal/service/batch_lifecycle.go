package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/model"
	"github.com/Lahari-104/Mediguard/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BatchLifecycle owns batch creation, status transitions, inventory
// registration and quality verdicts.
type BatchLifecycle interface {
	CreateBatch(ctx context.Context, req dto.CreateBatchRequest) (*dto.BatchResponse, error)
	GetBatch(ctx context.Context, id uuid.UUID) (*dto.BatchResponse, error)
	ListBatches(ctx context.Context, filter dto.BatchFilter) ([]dto.BatchResponse, error)
	Transition(ctx context.Context, id uuid.UUID, to model.BatchStatus) (*dto.BatchResponse, error)

	// RegisterInventory creates the batch's single inventory line and moves it in_stock.
	RegisterInventory(ctx context.Context, req dto.RegisterInventoryRequest) (*dto.InventoryLineResponse, error)
	ListInventory(ctx context.Context) ([]dto.InventoryLineResponse, error)

	// RecordQualityResult appends a report and overwrites the batch verdict.
	// A failed result raises the quality_issue alert and schedules staff email.
	RecordQualityResult(ctx context.Context, req dto.CreateQualityReportRequest) (*dto.QualityReportResponse, error)
	ListQualityReports(ctx context.Context) ([]dto.QualityReportResponse, error)
}

type batchLifecycle struct {
	batches       repository.BatchRepository
	inventory     repository.InventoryRepository
	reports       repository.QualityReportRepository
	manufacturers repository.ManufacturerRepository
	alerts        AlertEngine
	notifier      Notifier
	now           func() time.Time
}

func NewBatchLifecycle(
	batches repository.BatchRepository,
	inventory repository.InventoryRepository,
	reports repository.QualityReportRepository,
	manufacturers repository.ManufacturerRepository,
	alerts AlertEngine,
	notifier Notifier,
) BatchLifecycle {
	return &batchLifecycle{
		batches:       batches,
		inventory:     inventory,
		reports:       reports,
		manufacturers: manufacturers,
		alerts:        alerts,
		notifier:      notifier,
		now:           time.Now,
	}
}

// canTransition is the batch status table. expired is terminal.
func canTransition(from, to model.BatchStatus) bool {
	switch from {
	case model.BatchInProduction:
		return to == model.BatchInTransit || to == model.BatchInStock
	case model.BatchInTransit:
		return to == model.BatchInStock
	case model.BatchInStock:
		return to == model.BatchDepleted || to == model.BatchExpired
	case model.BatchDepleted:
		return to == model.BatchInStock || to == model.BatchExpired
	case model.BatchExpired:
		return false
	}
	return false
}

// ── Batches ──────────────────────────────────────────────────────────────────

func (s *batchLifecycle) CreateBatch(ctx context.Context, req dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	mID, err := uuid.Parse(req.ManufacturerID)
	if err != nil {
		return nil, validationf("manufacturer_id %q is not a uuid", req.ManufacturerID)
	}
	if !req.ExpiryDate.After(req.ProductionDate) {
		return nil, validationf("expiry_date must be after production_date")
	}
	if req.Quantity <= 0 {
		return nil, validationf("quantity must be positive")
	}

	m, err := s.manufacturers.FindByID(ctx, mID)
	if err != nil {
		return nil, notFoundOr(err, "manufacturer "+mID.String())
	}

	b := &model.Batch{
		ID:               uuid.New(),
		BatchNumber:      req.BatchNumber,
		ProductName:      req.ProductName,
		ProductType:      req.ProductType,
		ManufacturerID:   m.ID,
		ManufacturerName: m.Name,
		ProductionDate:   req.ProductionDate,
		ExpiryDate:       req.ExpiryDate,
		Quantity:         req.Quantity,
		Status:           model.BatchInProduction,
		QualityStatus:    model.QualityPending,
		CreatedAt:        s.now(),
	}
	if err := s.batches.Create(ctx, b); err != nil {
		return nil, err
	}
	resp := toBatchResponse(b)
	return &resp, nil
}

func (s *batchLifecycle) GetBatch(ctx context.Context, id uuid.UUID) (*dto.BatchResponse, error) {
	b, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "batch "+id.String())
	}
	resp := toBatchResponse(b)
	return &resp, nil
}

func (s *batchLifecycle) ListBatches(ctx context.Context, f dto.BatchFilter) ([]dto.BatchResponse, error) {
	filter := repository.BatchFilter{
		Status:        model.BatchStatus(f.Status),
		QualityStatus: model.QualityStatus(f.QualityStatus),
	}
	if f.ManufacturerID != "" {
		id, err := uuid.Parse(f.ManufacturerID)
		if err != nil {
			return nil, validationf("manufacturer_id %q is not a uuid", f.ManufacturerID)
		}
		filter.ManufacturerID = &id
	}
	batches, err := s.batches.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BatchResponse, len(batches))
	for i := range batches {
		resp[i] = toBatchResponse(&batches[i])
	}
	return resp, nil
}

func (s *batchLifecycle) Transition(ctx context.Context, id uuid.UUID, to model.BatchStatus) (*dto.BatchResponse, error) {
	if !to.Valid() {
		return nil, validationf("unknown status %q", to)
	}
	var batch *model.Batch
	err := runTx(ctx, s.batches.DB(), func(tx *gorm.DB) error {
		b, err := s.batches.FindByIDTx(tx, id)
		if err != nil {
			return notFoundOr(err, "batch "+id.String())
		}
		if !canTransition(b.Status, to) {
			return validationf("cannot move batch from %s to %s", b.Status, to)
		}
		if err := s.checkStockAgreesTx(ctx, tx, b, to); err != nil {
			return err
		}
		if err := s.batches.UpdateStatusTx(tx, id, to); err != nil {
			return err
		}
		b.Status = to
		batch = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toBatchResponse(batch)
	return &resp, nil
}

// checkStockAgreesTx keeps in_stock and depleted consistent with the batch's
// inventory line: depleted needs zero stock, in_stock (once a line exists)
// needs some.
func (s *batchLifecycle) checkStockAgreesTx(ctx context.Context, tx *gorm.DB, b *model.Batch, to model.BatchStatus) error {
	if to != model.BatchDepleted && to != model.BatchInStock {
		return nil
	}
	line, err := s.inventory.FindByBatchID(ctx, b.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	lineID := line.ID
	line, err = s.inventory.FindByIDForUpdateTx(tx, lineID)
	if err != nil {
		return notFoundOr(err, "inventory line "+lineID.String())
	}
	switch {
	case to == model.BatchDepleted && line.CurrentStock > 0:
		return validationf("batch %s still holds %d units and cannot be depleted", b.BatchNumber, line.CurrentStock)
	case to == model.BatchInStock && line.CurrentStock == 0:
		return validationf("batch %s has no stock; replenish it through the stock ledger", b.BatchNumber)
	}
	return nil
}

// ── Inventory ────────────────────────────────────────────────────────────────

func (s *batchLifecycle) RegisterInventory(ctx context.Context, req dto.RegisterInventoryRequest) (*dto.InventoryLineResponse, error) {
	batchID, err := uuid.Parse(req.BatchID)
	if err != nil {
		return nil, validationf("batch_id %q is not a uuid", req.BatchID)
	}
	if req.Quantity < 0 {
		return nil, validationf("quantity must not be negative")
	}

	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		return nil, notFoundOr(err, "batch "+batchID.String())
	}
	if batch.Status != model.BatchInStock && !canTransition(batch.Status, model.BatchInStock) {
		return nil, validationf("batch %s is %s and cannot be stocked", batch.BatchNumber, batch.Status)
	}

	existing, err := s.inventory.FindByBatchID(ctx, batchID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("batch %s already has inventory line %s: %w", batch.BatchNumber, existing.ID, ErrConflict)
	}

	now := s.now()
	line := &model.InventoryLine{
		ID:           uuid.New(),
		BatchID:      batch.ID,
		BatchNumber:  batch.BatchNumber,
		ProductName:  batch.ProductName,
		CurrentStock: req.Quantity,
		InitialStock: req.Quantity,
		ExpiryDate:   batch.ExpiryDate,
		Location:     req.Location,
		LastUpdated:  now,
	}

	err = runTx(ctx, s.inventory.DB(), func(tx *gorm.DB) error {
		if err := s.inventory.CreateTx(tx, line); err != nil {
			return conflictOr(err, "batch "+batch.BatchNumber+" already has an inventory line")
		}
		if batch.Status == model.BatchInStock {
			return nil
		}
		return s.batches.UpdateStatusTx(tx, batch.ID, model.BatchInStock)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("batch_id", batch.ID.String()).
		Str("inventory_id", line.ID.String()).
		Int("initial_stock", line.InitialStock).
		Msg("inventory registered")
	resp := toInventoryLineResponse(line)
	return &resp, nil
}

func (s *batchLifecycle) ListInventory(ctx context.Context) ([]dto.InventoryLineResponse, error) {
	lines, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InventoryLineResponse, len(lines))
	for i := range lines {
		resp[i] = toInventoryLineResponse(&lines[i])
	}
	return resp, nil
}

// ── Quality ──────────────────────────────────────────────────────────────────

func (s *batchLifecycle) RecordQualityResult(ctx context.Context, req dto.CreateQualityReportRequest) (*dto.QualityReportResponse, error) {
	batchID, err := uuid.Parse(req.BatchID)
	if err != nil {
		return nil, validationf("batch_id %q is not a uuid", req.BatchID)
	}
	result := model.QualityStatus(req.Result)
	if !result.Valid() {
		return nil, validationf("unknown result %q", req.Result)
	}

	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		return nil, notFoundOr(err, "batch "+batchID.String())
	}

	report := &model.QualityReport{
		ID:          uuid.New(),
		BatchID:     batch.ID,
		BatchNumber: batch.BatchNumber,
		ProductName: batch.ProductName,
		TestDate:    req.TestDate,
		TestType:    req.TestType,
		Result:      result,
		Notes:       req.Notes,
		TestedBy:    req.TestedBy,
		CreatedAt:   s.now(),
	}

	err = runTx(ctx, s.batches.DB(), func(tx *gorm.DB) error {
		if err := s.reports.CreateTx(tx, report); err != nil {
			return err
		}
		return s.batches.UpdateQualityStatusTx(tx, batch.ID, result)
	})
	if err != nil {
		return nil, err
	}
	batch.QualityStatus = result

	if result == model.QualityFailed {
		s.raiseQualityIssue(ctx, batch)
	}

	resp := toQualityReportResponse(report)
	return &resp, nil
}

// raiseQualityIssue never fails the submission: the report and verdict are
// already committed, alert and email problems are logged. It detaches from
// the request's cancellation: the alert is one-shot, so emails dropped by a
// client disconnect could never be sent again.
func (s *batchLifecycle) raiseQualityIssue(ctx context.Context, batch *model.Batch) {
	ctx = context.WithoutCancel(ctx)
	alert, created, err := s.alerts.EvaluateQualityIssue(ctx, batch)
	if err != nil {
		log.Error().Err(err).Str("batch_id", batch.ID.String()).Msg("quality_issue alert failed")
		return
	}
	if !created {
		return
	}
	s.notifier.Dispatch(ctx, alert)
}

func (s *batchLifecycle) ListQualityReports(ctx context.Context) ([]dto.QualityReportResponse, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.QualityReportResponse, len(reports))
	for i := range reports {
		resp[i] = toQualityReportResponse(&reports[i])
	}
	return resp, nil
}
