package voice

import (
	"context"
	"encoding/json"
	"time"
)

// State do ciclo de vida da sessão de voz.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateConnected  State = "connected"
	StateError      State = "error"
)

// ToolDeclaration descreve uma função que o modelo pode invocar durante
// a conversa.
type ToolDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// SessionConfig é o payload de abertura: instrução de sistema (com o
// snapshot da agenda embutido), modalidade de resposta e ferramentas.
type SessionConfig struct {
	Model             string
	SystemInstruction string
	Tools             []ToolDeclaration
}

// ToolCall é uma invocação de função vinda do modelo; Args chega como
// JSON bruto e é validado antes do dispatch.
type ToolCall struct {
	ID   string
	Name string
	Args json.RawMessage
}

// ServerMessage é um evento de entrada da sessão: fragmento de áudio
// sintetizado (PCM16 little-endian), lote de tool calls, ou ambos.
type ServerMessage struct {
	Audio        []byte
	ToolCalls    []ToolCall
	TurnComplete bool
}

// Callbacks da sessão. Disparam em goroutine do transporte e
// intercalam com o resto do sistema.
type Callbacks struct {
	OnOpen    func()
	OnMessage func(ServerMessage)
	OnClose   func()
	OnError   func(error)
}

// LiveSession é a sessão bidirecional aberta com o serviço de fala.
type LiveSession interface {
	// SendRealtimeInput envia um frame de áudio capturado (PCM16 LE,
	// 16 kHz mono).
	SendRealtimeInput(pcm []byte) error

	// SendToolResponse devolve o resultado de um tool call,
	// referenciando o id de correlação da chamada.
	SendToolResponse(callID, name, result string) error

	Close() error
}

// LiveClient abre sessões com o serviço de fala em tempo real.
type LiveClient interface {
	Connect(ctx context.Context, cfg SessionConfig, cb Callbacks) (LiveSession, error)
}

// AudioSource é o colaborador de captura (microfone): entrega frames
// PCM16 LE 16 kHz num canal, no ritmo do hardware, até Stop.
type AudioSource interface {
	Start(ctx context.Context) (<-chan []byte, error)
	Stop()
}

// AudioSink é o colaborador de reprodução: aceita buffers com horário
// de início explícito. StopAll cancela tudo que ainda não tocou.
type AudioSink interface {
	PlayAt(pcm []byte, start time.Time) error
	StopAll()
	Close() error
}
