package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-assist/internal/httperr"
	"github.com/BruksfildServices01/barber-assist/internal/httpresp"
	"github.com/BruksfildServices01/barber-assist/internal/store"
)

type ClientHandler struct {
	store *store.Store
}

func NewClientHandler(st *store.Store) *ClientHandler {
	return &ClientHandler{store: st}
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	snap := h.store.Snapshot()
	httpresp.List(c, snap.Clients)
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client := h.store.AddClient(c.Request.Context(), req.Name, req.Phone)
	httpresp.Created(c, client)
}
