package voice

import (
	"context"
	"sync"
	"time"
)

// NullSource é um AudioSource sem dispositivo: o canal nunca emite
// frames e fecha no Stop. Serve de placeholder quando o processo roda
// sem captura local; o microfone real vive no cliente que embute o
// serviço.
type NullSource struct {
	mu sync.Mutex
	ch chan []byte
}

func NewNullSource() *NullSource {
	return &NullSource{}
}

func (s *NullSource) Start(ctx context.Context) (<-chan []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ch = make(chan []byte)
	return s.ch, nil
}

func (s *NullSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ch != nil {
		close(s.ch)
		s.ch = nil
	}
}

// NullSink descarta o áudio agendado.
type NullSink struct{}

func (NullSink) PlayAt(pcm []byte, start time.Time) error { return nil }
func (NullSink) StopAll()                                 {}
func (NullSink) Close() error                             { return nil }
