package models

// AppData é o agregado completo persistido como um único documento JSON.
type AppData struct {
	Clients      []Client      `json:"clients"`
	Barbers      []Barber      `json:"barbers"`
	Appointments []Appointment `json:"appointments"`
}

// Clone devolve uma cópia profunda do agregado. O notifier e o assistente
// de voz leem sempre uma cópia, nunca as fatias internas.
func (d AppData) Clone() AppData {
	out := AppData{
		Clients:      make([]Client, len(d.Clients)),
		Barbers:      make([]Barber, len(d.Barbers)),
		Appointments: make([]Appointment, len(d.Appointments)),
	}
	copy(out.Clients, d.Clients)
	copy(out.Barbers, d.Barbers)
	copy(out.Appointments, d.Appointments)
	return out
}

// ClientName resolve o nome de um cliente; referência quebrada degrada
// para rótulo genérico em vez de falhar.
func (d AppData) ClientName(id string) string {
	for _, c := range d.Clients {
		if c.ID == id {
			return c.Name
		}
	}
	return "Cliente"
}

func (d AppData) BarberName(id string) string {
	for _, b := range d.Barbers {
		if b.ID == id {
			return b.Name
		}
	}
	return "Barbeiro"
}
