package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-assist/internal/httperr"
	"github.com/BruksfildServices01/barber-assist/internal/httpresp"
	"github.com/BruksfildServices01/barber-assist/internal/voice"
)

type VoiceHandler struct {
	controller *voice.Controller
}

func NewVoiceHandler(ctrl *voice.Controller) *VoiceHandler {
	return &VoiceHandler{controller: ctrl}
}

func (h *VoiceHandler) Start(c *gin.Context) {
	if err := h.controller.Start(c.Request.Context()); err != nil {
		if errors.Is(err, voice.ErrSessionActive) {
			httperr.Conflict(c, "session_active", "O assistente já está ativo.")
			return
		}
		httperr.Internal(c, "voice_start_failed", h.controller.StatusLog())
		return
	}

	h.Status(c)
}

func (h *VoiceHandler) Stop(c *gin.Context) {
	h.controller.Stop()
	h.Status(c)
}

func (h *VoiceHandler) Status(c *gin.Context) {
	httpresp.OK(c, gin.H{
		"state": h.controller.State(),
		"log":   h.controller.StatusLog(),
	})
}
