package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-assist/internal/clock"
	domain "github.com/BruksfildServices01/barber-assist/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-assist/internal/httpresp"
	"github.com/BruksfildServices01/barber-assist/internal/store"
	"github.com/BruksfildServices01/barber-assist/internal/timezone"
)

type DashboardHandler struct {
	store *store.Store
	clock clock.Clock
}

func NewDashboardHandler(st *store.Store, clk clock.Clock) *DashboardHandler {
	return &DashboardHandler{store: st, clock: clk}
}

type ChartEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type DashboardResponse struct {
	Pending   int          `json:"pending"`
	Confirmed int          `json:"confirmed"`
	Today     int          `json:"today"`
	Clients   int          `json:"clients"`
	Chart     []ChartEntry `json:"chart"`
}

func (h *DashboardHandler) Get(c *gin.Context) {
	snap := h.store.Snapshot()
	today := timezone.DayKey(h.clock.Now(), timezone.DefaultTimezone)

	var pending, confirmed, todayCount int
	for _, ap := range snap.Appointments {
		switch domain.Status(ap.Status) {
		case domain.StatusPending:
			pending++
		case domain.StatusConfirmed:
			confirmed++
		}
		if timezone.DayKey(ap.Date, timezone.DefaultTimezone) == today {
			todayCount++
		}
	}

	httpresp.OK(c, DashboardResponse{
		Pending:   pending,
		Confirmed: confirmed,
		Today:     todayCount,
		Clients:   len(snap.Clients),
		Chart: []ChartEntry{
			{Name: "Pendentes", Value: pending, Color: "#fbbf24"},
			{Name: "Confirmados", Value: confirmed, Color: "#4ade80"},
			{Name: "Hoje", Value: todayCount, Color: "#60a5fa"},
		},
	})
}
