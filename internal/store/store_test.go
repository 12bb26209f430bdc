package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-assist/internal/clock"
	domain "github.com/BruksfildServices01/barber-assist/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-assist/internal/models"
	"github.com/BruksfildServices01/barber-assist/internal/storage"
)

type fakePersister struct {
	data    *models.AppData
	loadErr error
	saves   []models.AppData
}

func (f *fakePersister) Load(ctx context.Context) (*models.AppData, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.data == nil {
		return nil, storage.ErrNotFound
	}
	clone := f.data.Clone()
	return &clone, nil
}

func (f *fakePersister) Save(ctx context.Context, data *models.AppData) error {
	f.saves = append(f.saves, data.Clone())
	return nil
}

func newTestStore(t *testing.T, p *fakePersister, now time.Time) *Store {
	t.Helper()
	return New(context.Background(), p, nil, clock.NewFixed(now), zap.NewNop())
}

var testNow = time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC)

func TestNew_SeedsWhenStorageEmpty(t *testing.T) {
	p := &fakePersister{}
	s := newTestStore(t, p, testNow)

	snap := s.Snapshot()
	if len(snap.Clients) != 3 || len(snap.Barbers) != 2 || len(snap.Appointments) != 3 {
		t.Fatalf("unexpected seed sizes: %d clients, %d barbers, %d appointments",
			len(snap.Clients), len(snap.Barbers), len(snap.Appointments))
	}
	if len(p.saves) != 1 {
		t.Fatalf("expected seed to be persisted once, got %d saves", len(p.saves))
	}
}

func TestNew_SeedsOnCorruptStorage(t *testing.T) {
	p := &fakePersister{loadErr: errors.New("parse failure")}
	s := newTestStore(t, p, testNow)

	if len(s.Snapshot().Clients) != 3 {
		t.Fatalf("expected seed fallback on load error")
	}
}

func TestNew_LoadsExistingData(t *testing.T) {
	p := &fakePersister{data: &models.AppData{
		Clients: []models.Client{{ID: "x1", Name: "Fulano", Phone: "123"}},
	}}
	s := newTestStore(t, p, testNow)

	snap := s.Snapshot()
	if len(snap.Clients) != 1 || snap.Clients[0].ID != "x1" {
		t.Fatalf("expected stored data to win over seed, got %+v", snap.Clients)
	}
	if len(p.saves) != 0 {
		t.Fatalf("expected no save on clean load, got %d", len(p.saves))
	}
}

func TestAddClient_PersistsFullAggregate(t *testing.T) {
	p := &fakePersister{data: &models.AppData{}}
	s := newTestStore(t, p, testNow)

	client := s.AddClient(context.Background(), "Carlos Silva", "(11) 99999-1234")
	if client.ID == "" {
		t.Fatalf("expected generated id")
	}

	if len(p.saves) != 1 {
		t.Fatalf("expected one save, got %d", len(p.saves))
	}
	saved := p.saves[0]
	if len(saved.Clients) != 1 || saved.Clients[0].Name != "Carlos Silva" {
		t.Fatalf("aggregate not persisted in full: %+v", saved)
	}
}

func TestAddAppointment_AlwaysPending(t *testing.T) {
	p := &fakePersister{data: &models.AppData{}}
	s := newTestStore(t, p, testNow)

	ap := s.AddAppointment(context.Background(), "c1", "b1", testNow.Add(time.Hour), "Corte")
	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("expected PENDING, got %s", ap.Status)
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	p := &fakePersister{data: &models.AppData{
		Appointments: []models.Appointment{
			{ID: "a1", Status: string(domain.StatusPending)},
		},
	}}
	s := newTestStore(t, p, testNow)

	t.Run("updates existing", func(t *testing.T) {
		if !s.UpdateAppointmentStatus(context.Background(), "a1", domain.StatusConfirmed) {
			t.Fatalf("expected update to find a1")
		}
		if got := s.Snapshot().Appointments[0].Status; got != string(domain.StatusConfirmed) {
			t.Fatalf("expected CONFIRMED, got %s", got)
		}
	})

	t.Run("no-op on unknown id", func(t *testing.T) {
		saves := len(p.saves)
		if s.UpdateAppointmentStatus(context.Background(), "missing", domain.StatusCancelled) {
			t.Fatalf("expected no-op for unknown id")
		}
		if len(p.saves) != saves {
			t.Fatalf("no-op must not persist")
		}
	})

	t.Run("repeated confirm is idempotent", func(t *testing.T) {
		s.UpdateAppointmentStatus(context.Background(), "a1", domain.StatusConfirmed)
		if got := s.Snapshot().Appointments[0].Status; got != string(domain.StatusConfirmed) {
			t.Fatalf("expected CONFIRMED after repeat, got %s", got)
		}
	})
}

func TestFormattedSchedule(t *testing.T) {
	date := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	p := &fakePersister{data: &models.AppData{
		Clients: []models.Client{{ID: "c1", Name: "Carlos Silva"}},
		Barbers: []models.Barber{{ID: "b1", Name: "Mestre Navalha"}},
		Appointments: []models.Appointment{
			{ID: "a1", ClientID: "c1", BarberID: "b1", Date: date, Service: "Corte + Barba", Status: string(domain.StatusPending)},
			{ID: "a2", ClientID: "c1", BarberID: "b1", Date: date, Service: "Barba", Status: string(domain.StatusConfirmed)},
			{ID: "a3", ClientID: "ghost", BarberID: "b1", Date: date, Service: "Corte", Status: string(domain.StatusPending)},
		},
	}}
	s := newTestStore(t, p, testNow)

	raw := s.FormattedSchedule()

	var parsed struct {
		PendingCount   int      `json:"pendingCount"`
		PendingDetails []string `json:"pendingDetails"`
		Today          string   `json:"today"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatalf("schedule blob is not valid JSON: %v", err)
	}

	if parsed.PendingCount != 2 {
		t.Fatalf("expected pendingCount 2, got %d", parsed.PendingCount)
	}
	if len(parsed.PendingDetails) != 2 {
		t.Fatalf("expected 2 details, got %d", len(parsed.PendingDetails))
	}
	if !strings.Contains(parsed.PendingDetails[0], "Carlos Silva") ||
		!strings.Contains(parsed.PendingDetails[0], "Mestre Navalha") {
		t.Fatalf("detail missing resolved names: %s", parsed.PendingDetails[0])
	}
	// Referência quebrada degrada para rótulo genérico.
	if !strings.Contains(parsed.PendingDetails[1], "Cliente: Cliente") {
		t.Fatalf("expected placeholder client label, got %s", parsed.PendingDetails[1])
	}
	if parsed.Today == "" {
		t.Fatalf("expected today to be set")
	}
}

func TestPendingIDs(t *testing.T) {
	p := &fakePersister{data: &models.AppData{
		Appointments: []models.Appointment{
			{ID: "a1", Status: string(domain.StatusPending)},
			{ID: "a2", Status: string(domain.StatusCancelled)},
		},
	}}
	s := newTestStore(t, p, testNow)

	ids := s.PendingIDs()
	if !ids["a1"] || ids["a2"] {
		t.Fatalf("unexpected pending set: %v", ids)
	}
}
