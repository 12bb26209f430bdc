package notify

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-assist/internal/clock"
	domain "github.com/BruksfildServices01/barber-assist/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-assist/internal/store"
	"github.com/BruksfildServices01/barber-assist/internal/timezone"
)

type Type string

const (
	TypeUpcoming Type = "upcoming"
	TypeLate     Type = "late"
)

const (
	// CheckInterval é o período do scan.
	CheckInterval = 5 * time.Second

	// UpcomingWindow: agendamento a até 15 minutos do início conta
	// como "próximo cliente".
	UpcomingWindow = 15

	SnoozeDuration  = 5 * time.Minute
	DismissDuration = 30 * time.Minute
)

// Notification é uma entrada ativa do quadro de avisos, no máximo uma
// por agendamento.
type Notification struct {
	ID          string `json:"id"` // id do agendamento
	Type        Type   `json:"type"`
	ClientName  string `json:"clientName"`
	Time        string `json:"time"`
	MinutesDiff int    `json:"minutesDiff"`
}

// Notifier roda o scan periódico sobre um snapshot do store e mantém o
// conjunto ativo mais o mapa de supressão (snooze/dismiss).
type Notifier struct {
	store  *store.Store
	clock  clock.Clock
	logger *zap.Logger

	mu         sync.Mutex
	active     []Notification
	suppressed map[string]time.Time // id -> notificar de novo só depois deste instante

	stopOnce sync.Once
	stopCh   chan struct{}
}

func New(st *store.Store, clk clock.Clock, logger *zap.Logger) *Notifier {
	return &Notifier{
		store:      st,
		clock:      clk,
		logger:     logger,
		suppressed: make(map[string]time.Time),
		stopCh:     make(chan struct{}),
	}
}

// Start dispara o loop de scan em background.
func (n *Notifier) Start(ctx context.Context) {
	n.logger.Info("starting appointment notifier", zap.Duration("interval", CheckInterval))
	go n.run(ctx)
}

func (n *Notifier) Stop() {
	n.stopOnce.Do(func() {
		close(n.stopCh)
	})
}

func (n *Notifier) run(ctx context.Context) {
	ticker := time.NewTicker(CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.Tick()
		case <-n.stopCh:
			n.logger.Info("appointment notifier stopped")
			return
		case <-ctx.Done():
			n.logger.Info("appointment notifier cancelled")
			return
		}
	}
}

// Tick executa um scan completo: reclassifica as notificações ativas,
// cria as novas e remove as de agendamentos que deixaram de ser
// PENDING. Computação pura sobre um snapshot; não pode falhar.
func (n *Notifier) Tick() {
	snap := n.store.Snapshot()
	now := n.clock.Now()

	n.mu.Lock()
	defer n.mu.Unlock()

	byID := make(map[string]int, len(n.active))
	for i, item := range n.active {
		byID[item.ID] = i
	}

	keep := make(map[string]bool)

	for _, ap := range snap.Appointments {
		if !domain.IsPending(ap.Status) {
			continue
		}

		if until, ok := n.suppressed[ap.ID]; ok {
			if until.After(now) {
				continue
			}
			delete(n.suppressed, ap.ID)
		}

		diffMins := int(math.Floor(ap.Date.Sub(now).Minutes()))

		var kind Type
		switch {
		case diffMins >= 0 && diffMins <= UpcomingWindow:
			kind = TypeUpcoming
		case diffMins < 0:
			kind = TypeLate
		default:
			continue
		}

		if i, ok := byID[ap.ID]; ok {
			// Já ativa: atualiza tipo e offset em vez de só pular.
			// Um "upcoming" vira "late" assim que o offset fica
			// negativo num tick seguinte.
			n.active[i].Type = kind
			n.active[i].MinutesDiff = diffMins
			keep[ap.ID] = true
			continue
		}

		n.active = append(n.active, Notification{
			ID:          ap.ID,
			Type:        kind,
			ClientName:  snap.ClientName(ap.ClientID),
			Time:        timezone.ShortTime(ap.Date, timezone.DefaultTimezone),
			MinutesDiff: diffMins,
		})
		keep[ap.ID] = true

		n.logger.Info("appointment notification raised",
			zap.String("appointment_id", ap.ID),
			zap.String("type", string(kind)),
			zap.Int("minutes_diff", diffMins),
		)
	}

	// Limpeza: some com notificações de agendamentos removidos,
	// confirmados, cancelados ou fora de janela ativa.
	filtered := n.active[:0]
	for _, item := range n.active {
		if keep[item.ID] {
			filtered = append(filtered, item)
		}
	}
	n.active = filtered
}

// Active devolve uma cópia do conjunto ativo.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Notification, len(n.active))
	copy(out, n.active)
	return out
}

// Confirm marca o agendamento como CONFIRMED e limpa a notificação na
// hora; como ele deixa de ser PENDING, não regenera.
func (n *Notifier) Confirm(ctx context.Context, id string) {
	n.store.UpdateAppointmentStatus(ctx, id, domain.StatusConfirmed)
	n.remove(id)
}

// Snooze suprime o agendamento por 5 minutos.
func (n *Notifier) Snooze(id string) {
	n.suppress(id, SnoozeDuration)
}

// Dismiss suprime por 30 minutos; fora isso, idêntico ao snooze.
func (n *Notifier) Dismiss(id string) {
	n.suppress(id, DismissDuration)
}

func (n *Notifier) suppress(id string, d time.Duration) {
	n.mu.Lock()
	n.suppressed[id] = n.clock.Now().Add(d)
	n.mu.Unlock()
	n.remove(id)
}

func (n *Notifier) remove(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	filtered := n.active[:0]
	for _, item := range n.active {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	n.active = filtered
}
