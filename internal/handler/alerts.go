package handler

import (
	"net/http"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/service"

	"github.com/gin-gonic/gin"
)

type AlertsHandler struct{ engine service.AlertEngine }

func NewAlertsHandler(engine service.AlertEngine) *AlertsHandler {
	return &AlertsHandler{engine: engine}
}

// List returns alerts newest first; ?unread=true hides read ones.
func (h *AlertsHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	resp, err := h.engine.List(c.Request.Context(), unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlertsHandler) MarkRead(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.engine.MarkRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Check godoc
// @Summary Schedule an expiry and low-stock sweep
// @Tags alerts
// @Produce json
// @Success 202 {object} dto.SweepScheduledResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/alerts/check [post]
func (h *AlertsHandler) Check(c *gin.Context) {
	if err := h.engine.ScheduleSweep(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.SweepScheduledResponse{Message: "Alert check scheduled"})
}
