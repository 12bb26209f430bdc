package models

import "time"

type Appointment struct {
	ID string `json:"id"`

	ClientID string `json:"clientId"`
	BarberID string `json:"barberId"`

	// Date serializa como RFC 3339, o mesmo formato ISO que o
	// documento persistido sempre usou.
	Date time.Time `json:"date"`

	Service string `json:"service"`
	Status  string `json:"status"`
}
