package handler

import (
	"net/http"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/service"

	"github.com/gin-gonic/gin"
)

type ManufacturersHandler struct{ svc service.ManufacturerService }

func NewManufacturersHandler(svc service.ManufacturerService) *ManufacturersHandler {
	return &ManufacturersHandler{svc: svc}
}

func (h *ManufacturersHandler) Create(c *gin.Context) {
	var req dto.CreateManufacturerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ManufacturersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
