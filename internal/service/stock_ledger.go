package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/model"
	"github.com/Lahari-104/Mediguard/internal/repository"
	"github.com/Lahari-104/Mediguard/internal/telemetry"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StockLedger is the only writer of InventoryLine.CurrentStock.
type StockLedger interface {
	// Adjust applies a signed delta to one line. It never evaluates alert
	// rules; low stock is picked up by the next sweep.
	Adjust(ctx context.Context, lineID uuid.UUID, delta int) (*dto.AdjustStockResponse, error)
}

type stockLedger struct {
	inventory repository.InventoryRepository
	batches   repository.BatchRepository
	locks     *lineLocks
	now       func() time.Time
}

func NewStockLedger(inventory repository.InventoryRepository, batches repository.BatchRepository) StockLedger {
	return &stockLedger{
		inventory: inventory,
		batches:   batches,
		locks:     newLineLocks(),
		now:       time.Now,
	}
}

// Adjust holds the line's in-process lock and a row lock for the whole
// read-modify-write, so concurrent consumers always see each other's writes.
func (s *stockLedger) Adjust(ctx context.Context, lineID uuid.UUID, delta int) (*dto.AdjustStockResponse, error) {
	if delta == 0 {
		return nil, validationf("delta must be non-zero")
	}

	unlock := s.locks.lock(lineID)
	defer unlock()

	var newStock int
	err := runTx(ctx, s.inventory.DB(), func(tx *gorm.DB) error {
		line, err := s.inventory.FindByIDForUpdateTx(tx, lineID)
		if err != nil {
			return notFoundOr(err, "inventory line "+lineID.String())
		}

		if delta > 0 && line.CurrentStock > math.MaxInt-delta {
			return validationf("line %s holds %d, adding %d overflows", lineID, line.CurrentStock, delta)
		}
		next := line.CurrentStock + delta
		if next < 0 {
			return fmt.Errorf("line %s holds %d, cannot apply %d: %w",
				lineID, line.CurrentStock, delta, ErrInsufficientStock)
		}
		if err := s.inventory.SetStockTx(tx, line.ID, next, s.now()); err != nil {
			return err
		}
		newStock = next
		return s.syncDepletionTx(tx, line.BatchID, next)
	})
	if err != nil {
		telemetry.StockAdjustments.WithLabelValues(adjustOutcome(err)).Inc()
		return nil, err
	}

	telemetry.StockAdjustments.WithLabelValues("applied").Inc()
	log.Debug().
		Str("inventory_id", lineID.String()).
		Int("delta", delta).
		Int("new_stock", newStock).
		Msg("stock adjusted")
	return &dto.AdjustStockResponse{InventoryID: lineID.String(), NewStock: newStock}, nil
}

// syncDepletionTx keeps the owning batch's status in step with its stock:
// in_stock → depleted at zero, depleted → in_stock on replenishment.
func (s *stockLedger) syncDepletionTx(tx *gorm.DB, batchID uuid.UUID, stock int) error {
	batch, err := s.batches.FindByIDTx(tx, batchID)
	if err != nil {
		return notFoundOr(err, "batch "+batchID.String())
	}
	var to model.BatchStatus
	switch {
	case stock == 0 && batch.Status == model.BatchInStock:
		to = model.BatchDepleted
	case stock > 0 && batch.Status == model.BatchDepleted:
		to = model.BatchInStock
	default:
		return nil
	}
	return s.batches.UpdateStatusTx(tx, batchID, to)
}

func adjustOutcome(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	}
	return "error"
}
