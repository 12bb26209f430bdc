package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-assist/internal/httpresp"
	"github.com/BruksfildServices01/barber-assist/internal/notify"
)

type NotificationHandler struct {
	notifier *notify.Notifier
}

func NewNotificationHandler(n *notify.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: n}
}

func (h *NotificationHandler) List(c *gin.Context) {
	httpresp.List(c, h.notifier.Active())
}

// Confirm marca o agendamento como confirmado e limpa o aviso.
func (h *NotificationHandler) Confirm(c *gin.Context) {
	id := c.Param("id")
	h.notifier.Confirm(c.Request.Context(), id)
	httpresp.OK(c, gin.H{"id": id, "action": "confirmed"})
}

// Snooze adia o aviso por 5 minutos.
func (h *NotificationHandler) Snooze(c *gin.Context) {
	id := c.Param("id")
	h.notifier.Snooze(id)
	httpresp.OK(c, gin.H{"id": id, "action": "snoozed"})
}

// Dismiss silencia o aviso por 30 minutos.
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	id := c.Param("id")
	h.notifier.Dismiss(id)
	httpresp.OK(c, gin.H{"id": id, "action": "dismissed"})
}
