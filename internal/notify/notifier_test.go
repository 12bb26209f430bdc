package notify

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-assist/internal/clock"
	domain "github.com/BruksfildServices01/barber-assist/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-assist/internal/models"
	"github.com/BruksfildServices01/barber-assist/internal/storage"
	"github.com/BruksfildServices01/barber-assist/internal/store"
)

type memPersister struct {
	data *models.AppData
}

func (m *memPersister) Load(ctx context.Context) (*models.AppData, error) {
	if m.data == nil {
		return nil, storage.ErrNotFound
	}
	clone := m.data.Clone()
	return &clone, nil
}

func (m *memPersister) Save(ctx context.Context, data *models.AppData) error {
	clone := data.Clone()
	m.data = &clone
	return nil
}

func pendingAt(id string, date time.Time) models.Appointment {
	return models.Appointment{
		ID:       id,
		ClientID: "c1",
		BarberID: "b1",
		Date:     date,
		Service:  "Corte",
		Status:   string(domain.StatusPending),
	}
}

func newFixture(t *testing.T, now time.Time, appointments ...models.Appointment) (*Notifier, *store.Store, *clock.Fixed) {
	t.Helper()

	clk := clock.NewFixed(now)
	p := &memPersister{data: &models.AppData{
		Clients:      []models.Client{{ID: "c1", Name: "Carlos Silva"}},
		Barbers:      []models.Barber{{ID: "b1", Name: "Mestre Navalha"}},
		Appointments: appointments,
	}}
	st := store.New(context.Background(), p, nil, clk, zap.NewNop())
	return New(st, clk, zap.NewNop()), st, clk
}

var base = time.Date(2026, 8, 31, 13, 50, 0, 0, time.UTC)

func TestTick_Classification(t *testing.T) {
	cases := []struct {
		name     string
		offset   time.Duration
		wantType Type
		wantNone bool
		wantDiff int
	}{
		{name: "ten minutes ahead is upcoming", offset: 10 * time.Minute, wantType: TypeUpcoming, wantDiff: 10},
		{name: "exactly now is upcoming", offset: 0, wantType: TypeUpcoming, wantDiff: 0},
		{name: "boundary at 15 minutes is upcoming", offset: 15 * time.Minute, wantType: TypeUpcoming, wantDiff: 15},
		{name: "sixteen minutes ahead is silent", offset: 16 * time.Minute, wantNone: true},
		{name: "one second past start is late", offset: -time.Second, wantType: TypeLate, wantDiff: -1},
		{name: "five minutes past start is late", offset: -5 * time.Minute, wantType: TypeLate, wantDiff: -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, _, _ := newFixture(t, base, pendingAt("a1", base.Add(tc.offset)))
			n.Tick()

			active := n.Active()
			if tc.wantNone {
				if len(active) != 0 {
					t.Fatalf("expected no notification, got %+v", active)
				}
				return
			}
			if len(active) != 1 {
				t.Fatalf("expected one notification, got %d", len(active))
			}
			got := active[0]
			if got.Type != tc.wantType || got.MinutesDiff != tc.wantDiff {
				t.Fatalf("got type=%s diff=%d, want type=%s diff=%d",
					got.Type, got.MinutesDiff, tc.wantType, tc.wantDiff)
			}
			if got.ClientName != "Carlos Silva" {
				t.Fatalf("expected resolved client name, got %s", got.ClientName)
			}
		})
	}
}

func TestTick_IgnoresNonPending(t *testing.T) {
	ap := pendingAt("a1", base.Add(5*time.Minute))
	ap.Status = string(domain.StatusConfirmed)

	n, _, _ := newFixture(t, base, ap)
	n.Tick()

	if len(n.Active()) != 0 {
		t.Fatalf("confirmed appointment must not notify")
	}
}

func TestTick_ReclassifiesInPlace(t *testing.T) {
	// a1 às 14:00; às 13:50 é upcoming (+10), às 14:05 vira late (-5)
	// na mesma notificação, sem duplicar.
	n, _, clk := newFixture(t, base, pendingAt("a1", base.Add(10*time.Minute)))

	n.Tick()
	active := n.Active()
	if len(active) != 1 || active[0].Type != TypeUpcoming || active[0].MinutesDiff != 10 {
		t.Fatalf("unexpected first classification: %+v", active)
	}

	clk.Advance(15 * time.Minute)
	n.Tick()

	active = n.Active()
	if len(active) != 1 {
		t.Fatalf("expected single notification after reclassification, got %d", len(active))
	}
	if active[0].Type != TypeLate || active[0].MinutesDiff != -5 {
		t.Fatalf("expected late -5, got type=%s diff=%d", active[0].Type, active[0].MinutesDiff)
	}
}

func TestTick_RemovesWhenStatusChangesExternally(t *testing.T) {
	n, st, _ := newFixture(t, base, pendingAt("a1", base.Add(5*time.Minute)))

	n.Tick()
	if len(n.Active()) != 1 {
		t.Fatalf("expected notification before external change")
	}

	st.UpdateAppointmentStatus(context.Background(), "a1", domain.StatusCancelled)
	n.Tick()

	if len(n.Active()) != 0 {
		t.Fatalf("expected notification cleared after cancellation")
	}
}

func TestConfirm_ClearsAndDoesNotRegenerate(t *testing.T) {
	n, st, _ := newFixture(t, base, pendingAt("a1", base.Add(5*time.Minute)))

	n.Tick()
	n.Confirm(context.Background(), "a1")

	if len(n.Active()) != 0 {
		t.Fatalf("expected notification cleared on confirm")
	}
	if got := st.Snapshot().Appointments[0].Status; got != string(domain.StatusConfirmed) {
		t.Fatalf("expected CONFIRMED, got %s", got)
	}

	n.Tick()
	if len(n.Active()) != 0 {
		t.Fatalf("confirmed appointment must not regenerate")
	}
}

func TestSnooze_SuppressesForFiveMinutes(t *testing.T) {
	// Atrasado fica sempre em janela notificável, então a supressão é
	// o único motivo de silêncio.
	n, _, clk := newFixture(t, base, pendingAt("a1", base.Add(-time.Minute)))

	n.Tick()
	n.Snooze("a1")
	if len(n.Active()) != 0 {
		t.Fatalf("expected notification cleared on snooze")
	}

	clk.Advance(SnoozeDuration - time.Second)
	n.Tick()
	if len(n.Active()) != 0 {
		t.Fatalf("expected suppression to hold just before expiry")
	}

	clk.Advance(time.Second)
	n.Tick()
	if len(n.Active()) != 1 {
		t.Fatalf("expected notification back after snooze expiry")
	}
}

func TestDismiss_SuppressesForThirtyMinutes(t *testing.T) {
	n, _, clk := newFixture(t, base, pendingAt("a1", base.Add(-time.Minute)))

	n.Tick()
	n.Dismiss("a1")

	clk.Advance(DismissDuration - time.Minute)
	n.Tick()
	if len(n.Active()) != 0 {
		t.Fatalf("expected suppression to hold before expiry")
	}

	clk.Advance(time.Minute)
	n.Tick()
	if len(n.Active()) != 1 {
		t.Fatalf("expected notification back after dismissal expiry")
	}
}

func TestScenario_UpcomingLateConfirm(t *testing.T) {
	// Cenário completo: a1 às 14:00; 13:50 upcoming +10; 14:05 late -5;
	// confirmação via tool call limpa e encerra.
	n, st, clk := newFixture(t, base, pendingAt("a1", base.Add(10*time.Minute)))

	n.Tick()
	if a := n.Active(); len(a) != 1 || a[0].Type != TypeUpcoming || a[0].MinutesDiff != 10 {
		t.Fatalf("13:50: expected upcoming +10, got %+v", a)
	}

	clk.Advance(15 * time.Minute)
	n.Tick()
	if a := n.Active(); len(a) != 1 || a[0].Type != TypeLate || a[0].MinutesDiff != -5 {
		t.Fatalf("14:05: expected late -5, got %+v", a)
	}

	// O caminho do tool call escreve direto no store.
	st.UpdateAppointmentStatus(context.Background(), "a1", domain.StatusConfirmed)
	n.Tick()
	if len(n.Active()) != 0 {
		t.Fatalf("expected notification cleared after tool-call confirm")
	}
}
