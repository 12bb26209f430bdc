package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ===============================
// Validations
// ===============================

// IsValid verifica se o status pertence ao conjunto fixo.
func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// InitialStatus: todo agendamento nasce pendente, independente do input.
func InitialStatus() Status {
	return StatusPending
}

// IsPending: somente agendamentos pendentes participam de notificação
// e da agenda do assistente de voz.
func IsPending(s string) bool {
	return Status(s) == StatusPending
}
