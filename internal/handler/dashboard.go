package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Lahari-104/Mediguard/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) Traceability(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Traceability(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TraceabilityPDF renders into a buffer first so a failure can still
// produce a JSON error instead of a truncated PDF.
func (h *DashboardHandler) TraceabilityPDF(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.WriteTraceabilityPDF(c.Request.Context(), id, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="batch-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
