package handlers

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-assist/internal/clock"
	domain "github.com/BruksfildServices01/barber-assist/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-assist/internal/httperr"
	"github.com/BruksfildServices01/barber-assist/internal/httpresp"
	"github.com/BruksfildServices01/barber-assist/internal/models"
	"github.com/BruksfildServices01/barber-assist/internal/store"
	"github.com/BruksfildServices01/barber-assist/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	store *store.Store
	clock clock.Clock
}

func NewAppointmentHandler(st *store.Store, clk clock.Clock) *AppointmentHandler {
	return &AppointmentHandler{store: st, clock: clk}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type CreateAppointmentRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	BarberID string `json:"barber_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Service  string `json:"service" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AgendaItem é um agendamento com as referências já resolvidas para
// exibição; referência quebrada vira rótulo genérico.
type AgendaItem struct {
	models.Appointment
	ClientName string `json:"client_name"`
	BarberName string `json:"barber_name"`
	Time       string `json:"time"`
}

// AgendaGroup agrupa os agendamentos de um mesmo dia, com o cabeçalho
// "Hoje" / "Amanhã" / dia por extenso.
type AgendaGroup struct {
	Date  string       `json:"date"`
	Label string       `json:"label"`
	Items []AgendaItem `json:"items"`
}

// ======================================================
// AGENDA (ordenada e agrupada por dia)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	snap := h.store.Snapshot()
	now := h.clock.Now()

	sorted := make([]models.Appointment, len(snap.Appointments))
	copy(sorted, snap.Appointments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var groups []AgendaGroup
	index := make(map[string]int)

	for _, ap := range sorted {
		key := timezone.DayKey(ap.Date, timezone.DefaultTimezone)

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, AgendaGroup{
				Date:  key,
				Label: timezone.DayLabel(ap.Date, now, timezone.DefaultTimezone),
			})
		}

		groups[i].Items = append(groups[i].Items, AgendaItem{
			Appointment: ap,
			ClientName:  snap.ClientName(ap.ClientID),
			BarberName:  snap.BarberName(ap.BarberID),
			Time:        timezone.ShortTime(ap.Date, timezone.DefaultTimezone),
		})
	}

	httpresp.List(c, groups)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := parseAppointmentDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	// Integridade referencial não é imposta: id de cliente ou
	// barbeiro inexistente degrada para rótulo genérico na exibição.
	ap := h.store.AddAppointment(c.Request.Context(), req.ClientID, req.BarberID, date, req.Service)
	httpresp.Created(c, ap)
}

// parseAppointmentDate aceita RFC 3339 completo ou data+hora local sem
// offset (formato dos inputs do app), interpretada no fuso da barbearia.
func parseAppointmentDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation(
		"2006-01-02T15:04",
		raw,
		timezone.Location(timezone.DefaultTimezone),
	)
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	status := domain.Status(req.Status)
	if !domain.IsValid(status) {
		httperr.BadRequest(c, "invalid_status", "Status desconhecido.")
		return
	}

	if !h.store.UpdateAppointmentStatus(c.Request.Context(), id, status) {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"id": id, "status": string(status)})
}
