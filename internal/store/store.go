package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-assist/internal/backup"
	"github.com/BruksfildServices01/barber-assist/internal/clock"
	domain "github.com/BruksfildServices01/barber-assist/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-assist/internal/models"
	"github.com/BruksfildServices01/barber-assist/internal/seed"
	"github.com/BruksfildServices01/barber-assist/internal/storage"
	"github.com/BruksfildServices01/barber-assist/internal/timezone"
)

// Store é o dono único do agregado em memória. Toda mutação é uma
// sequência read-modify-write-persist sob o mesmo mutex; consumidores
// leem via Snapshot.
type Store struct {
	persister storage.Persister
	backup    *backup.Dispatcher
	clock     clock.Clock
	logger    *zap.Logger

	mu   sync.RWMutex
	data models.AppData
}

// New carrega o agregado do persister ou semeia a fixture quando não há
// nada gravado. Falha de leitura ou parse também cai na fixture: nunca
// é fatal.
func New(
	ctx context.Context,
	persister storage.Persister,
	bkp *backup.Dispatcher,
	clk clock.Clock,
	logger *zap.Logger,
) *Store {
	s := &Store{
		persister: persister,
		backup:    bkp,
		clock:     clk,
		logger:    logger,
	}

	data, err := persister.Load(ctx)
	switch {
	case err == nil:
		s.data = *data
	case errors.Is(err, storage.ErrNotFound):
		s.data = seed.Data(clk.Now())
	default:
		logger.Warn("failed to load stored data, seeding defaults", zap.Error(err))
		s.data = seed.Data(clk.Now())
	}

	if err != nil {
		s.mu.Lock()
		s.persist(ctx)
		s.mu.Unlock()
	}

	return s
}

// persist grava o agregado inteiro. Best effort: erro é logado, a
// mutação em memória permanece (last write wins).
// Chamar com s.mu já adquirido.
func (s *Store) persist(ctx context.Context) {
	snapshot := s.data.Clone()
	if err := s.persister.Save(ctx, &snapshot); err != nil {
		s.logger.Error("failed to persist data", zap.Error(err))
	}
	s.backup.Dispatch(snapshot)
}

// ======================================================
// MUTATIONS
// ======================================================

func (s *Store) AddClient(ctx context.Context, name, phone string) models.Client {
	client := models.Client{
		ID:    uuid.NewString(),
		Name:  name,
		Phone: phone,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Clients = append(s.data.Clients, client)
	s.persist(ctx)
	return client
}

func (s *Store) AddBarber(ctx context.Context, name, specialty string) models.Barber {
	barber := models.Barber{
		ID:        uuid.NewString(),
		Name:      name,
		Specialty: specialty,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Barbers = append(s.data.Barbers, barber)
	s.persist(ctx)
	return barber
}

// AddAppointment cria sempre em PENDING, independente do que o caller
// mandar.
func (s *Store) AddAppointment(
	ctx context.Context,
	clientID, barberID string,
	date time.Time,
	service string,
) models.Appointment {
	ap := models.Appointment{
		ID:       uuid.NewString(),
		ClientID: clientID,
		BarberID: barberID,
		Date:     date,
		Service:  service,
		Status:   string(domain.InitialStatus()),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Appointments = append(s.data.Appointments, ap)
	s.persist(ctx)
	return ap
}

// UpdateAppointmentStatus troca o status do agendamento. No-op quando o
// id não existe; devolve se encontrou.
func (s *Store) UpdateAppointmentStatus(ctx context.Context, id string, status domain.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Appointments {
		if s.data.Appointments[i].ID != id {
			continue
		}
		s.data.Appointments[i].Status = string(status)
		s.persist(ctx)
		return true
	}
	return false
}

// ======================================================
// READS
// ======================================================

// Snapshot devolve uma cópia consistente do agregado. O notifier lê um
// snapshot por tick.
func (s *Store) Snapshot() models.AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// scheduleContext é o blob compacto embutido na instrução de sistema do
// assistente de voz.
type scheduleContext struct {
	PendingCount   int      `json:"pendingCount"`
	PendingDetails []string `json:"pendingDetails"`
	Today          string   `json:"today"`
}

// FormattedSchedule serializa os agendamentos PENDING (id, cliente,
// barbeiro, horário local, serviço) mais a contagem e a data atual.
func (s *Store) FormattedSchedule() string {
	snap := s.Snapshot()
	now := s.clock.Now()

	sc := scheduleContext{
		PendingDetails: []string{},
		Today:          timezone.ShortDate(now, timezone.DefaultTimezone),
	}

	for _, ap := range snap.Appointments {
		if !domain.IsPending(ap.Status) {
			continue
		}
		sc.PendingDetails = append(sc.PendingDetails,
			"ID: "+ap.ID+
				", Cliente: "+snap.ClientName(ap.ClientID)+
				", Barbeiro: "+snap.BarberName(ap.BarberID)+
				", Horário: "+timezone.WeekdayTime(ap.Date, timezone.DefaultTimezone)+
				", Serviço: "+ap.Service)
	}
	sc.PendingCount = len(sc.PendingDetails)

	b, err := json.Marshal(sc)
	if err != nil {
		s.logger.Error("failed to serialize schedule context", zap.Error(err))
		return "{}"
	}
	return string(b)
}

// PendingIDs lista os ids dos agendamentos pendentes; usada para validar
// lotes do tool call antes do dispatch.
func (s *Store) PendingIDs() map[string]bool {
	snap := s.Snapshot()
	ids := make(map[string]bool)
	for _, ap := range snap.Appointments {
		if domain.IsPending(ap.Status) {
			ids[ap.ID] = true
		}
	}
	return ids
}
