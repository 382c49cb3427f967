package handler

import (
	"net/http"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/model"
	"github.com/Lahari-104/Mediguard/internal/service"

	"github.com/gin-gonic/gin"
)

// BatchesHandler serves batches, inventory lines and quality reports, all
// of which go through the batch lifecycle service.
type BatchesHandler struct {
	lifecycle service.BatchLifecycle
	ledger    service.StockLedger
}

func NewBatchesHandler(lifecycle service.BatchLifecycle, ledger service.StockLedger) *BatchesHandler {
	return &BatchesHandler{lifecycle: lifecycle, ledger: ledger}
}

// ── Batches ──────────────────────────────────────────────────────────────────

func (h *BatchesHandler) CreateBatch(c *gin.Context) {
	var req dto.CreateBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.lifecycle.CreateBatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BatchesHandler) ListBatches(c *gin.Context) {
	var filter dto.BatchFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.lifecycle.ListBatches(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BatchesHandler) GetBatch(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.lifecycle.GetBatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BatchesHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.UpdateBatchStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.lifecycle.Transition(c.Request.Context(), id, model.BatchStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Inventory ────────────────────────────────────────────────────────────────

func (h *BatchesHandler) RegisterInventory(c *gin.Context) {
	var req dto.RegisterInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.lifecycle.RegisterInventory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BatchesHandler) ListInventory(c *gin.Context) {
	resp, err := h.lifecycle.ListInventory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdjustStock godoc
// @Summary Apply a signed stock delta to an inventory line
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Inventory line ID"
// @Param body body dto.AdjustStockRequest true "Delta"
// @Success 200 {object} dto.AdjustStockResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/inventory/{id}/stock [put]
func (h *BatchesHandler) AdjustStock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.Adjust(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Quality reports ──────────────────────────────────────────────────────────

// CreateQualityReport godoc
// @Summary Submit a quality test result
// @Description A failed result raises a quality_issue alert and emails staff.
// @Tags quality
// @Accept json
// @Produce json
// @Param body body dto.CreateQualityReportRequest true "Report"
// @Success 201 {object} dto.QualityReportResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/quality-reports [post]
func (h *BatchesHandler) CreateQualityReport(c *gin.Context) {
	var req dto.CreateQualityReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.lifecycle.RecordQualityResult(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BatchesHandler) ListQualityReports(c *gin.Context) {
	resp, err := h.lifecycle.ListQualityReports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
