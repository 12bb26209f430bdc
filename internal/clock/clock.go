package clock

import (
	"sync"
	"time"
)

// Clock permite injetar o tempo no notifier, no store e no assistente de voz.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem devolve um relógio baseado em time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fixed é um relógio controlável, usado nos testes para avançar o
// wall-clock entre ticks.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
