package seed

import (
	"time"

	"github.com/BruksfildServices01/barber-assist/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-assist/internal/models"
	"github.com/BruksfildServices01/barber-assist/internal/timezone"
)

// Data monta o dataset inicial usado quando não existe agregado
// persistido. Os horários caem sempre no dia de "now", no fuso da
// barbearia, para que o quadro inicial faça sentido.
func Data(now time.Time) models.AppData {
	loc := timezone.Location(timezone.DefaultTimezone)
	local := now.In(loc)

	at := func(hour, min int) time.Time {
		return time.Date(local.Year(), local.Month(), local.Day(), hour, min, 0, 0, loc)
	}

	return models.AppData{
		Clients: []models.Client{
			{ID: "c1", Name: "Carlos Silva", Phone: "(11) 99999-1234"},
			{ID: "c2", Name: "Roberto Almeida", Phone: "(11) 98888-5678"},
			{ID: "c3", Name: "João Souza", Phone: "(21) 97777-4321"},
		},
		Barbers: []models.Barber{
			{ID: "b1", Name: "Mestre Navalha", Specialty: "Corte Clássico"},
			{ID: "b2", Name: "Barba Ruiva", Specialty: "Barba Terapia"},
		},
		Appointments: []models.Appointment{
			{
				ID:       "a1",
				ClientID: "c1",
				BarberID: "b1",
				Date:     at(14, 0),
				Service:  "Corte + Barba",
				Status:   string(appointment.StatusPending),
			},
			{
				ID:       "a2",
				ClientID: "c2",
				BarberID: "b2",
				Date:     at(15, 30),
				Service:  "Barba Modelada",
				Status:   string(appointment.StatusConfirmed),
			},
			{
				ID:       "a3",
				ClientID: "c3",
				BarberID: "b1",
				Date:     at(16, 0),
				Service:  "Corte Degrade",
				Status:   string(appointment.StatusPending),
			},
		},
	}
}
