package voice

import (
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-assist/internal/clock"
)

// playbackScheduler agenda fragmentos de áudio de forma contígua: um
// cursor "próximo início" avança monotonicamente, então fragmentos que
// chegam em mensagens separadas tocam emendados, sem sobreposição,
// independente do jitter de rede.
type playbackScheduler struct {
	sink  AudioSink
	clock clock.Clock

	mu   sync.Mutex
	next time.Time
}

func newPlaybackScheduler(sink AudioSink, clk clock.Clock) *playbackScheduler {
	return &playbackScheduler{sink: sink, clock: clk}
}

// Enqueue agenda um fragmento PCM16 na taxa de saída, imediatamente
// após o último já agendado (ou agora, se o cursor ficou para trás).
func (p *playbackScheduler) Enqueue(pcm []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	if p.next.Before(now) {
		p.next = now
	}

	start := p.next
	p.next = p.next.Add(PCM16Duration(len(pcm), OutputSampleRate))

	return p.sink.PlayAt(pcm, start)
}

// Cancel derruba tudo que ainda não tocou e zera o cursor.
func (p *playbackScheduler) Cancel() {
	p.mu.Lock()
	p.next = time.Time{}
	p.mu.Unlock()
	p.sink.StopAll()
}
