package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-assist/internal/httperr"
	"github.com/BruksfildServices01/barber-assist/internal/httpresp"
	"github.com/BruksfildServices01/barber-assist/internal/store"
)

type BarberHandler struct {
	store *store.Store
}

func NewBarberHandler(st *store.Store) *BarberHandler {
	return &BarberHandler{store: st}
}

type CreateBarberRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty" binding:"required"`
}

func (h *BarberHandler) List(c *gin.Context) {
	snap := h.store.Snapshot()
	httpresp.List(c, snap.Barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barber := h.store.AddBarber(c.Request.Context(), req.Name, req.Specialty)
	httpresp.Created(c, barber)
}
