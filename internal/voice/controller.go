package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-assist/internal/clock"
	domain "github.com/BruksfildServices01/barber-assist/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-assist/internal/store"
)

// ConfirmToolName é a única ferramenta declarada na sessão.
const ConfirmToolName = "confirmAppointments"

var ErrSessionActive = errors.New("voice: session already active")

// Controller é o dono da sessão de voz: abre a conexão com o serviço de
// fala, bombeia o microfone para fora, agenda o áudio sintetizado para
// reprodução contígua e despacha o tool call de confirmação no store.
//
// Estados: idle -> connecting -> connected -> idle. Falha em qualquer
// ponto libera todos os recursos e volta para idle; nada fica
// pela metade (microfone aberto sem sessão, por exemplo).
type Controller struct {
	store  *store.Store
	client LiveClient
	mic    AudioSource
	sink   AudioSink
	clock  clock.Clock
	logger *zap.Logger
	model  string

	mu        sync.Mutex
	state     State
	session   LiveSession
	sched     *playbackScheduler
	micCancel context.CancelFunc
	lastLog   string
}

func NewController(
	st *store.Store,
	client LiveClient,
	mic AudioSource,
	sink AudioSink,
	clk clock.Clock,
	logger *zap.Logger,
	model string,
) *Controller {
	return &Controller{
		store:   st,
		client:  client,
		mic:     mic,
		sink:    sink,
		clock:   clk,
		logger:  logger,
		model:   model,
		state:   StateIdle,
		lastLog: "Clique no microfone para iniciar o assistente.",
	}
}

func confirmToolDeclaration() ToolDeclaration {
	return ToolDeclaration{
		Name:        ConfirmToolName,
		Description: "Confirms a list of appointments given their IDs.",
		Parameters: map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"appointmentIds": map[string]any{
					"type":        "ARRAY",
					"items":       map[string]any{"type": "STRING"},
					"description": "Array of appointment IDs to confirm.",
				},
			},
			"required": []string{"appointmentIds"},
		},
	}
}

func systemInstruction(scheduleContext string) string {
	return fmt.Sprintf(`Você é um assistente de barbearia profissional e eficiente. Fale em Português do Brasil.
Sua principal função é ajudar o barbeiro a gerenciar o dia.

Ao iniciar, verifique IMEDIATAMENTE os dados fornecidos abaixo sobre agendamentos pendentes.
Se houver agendamentos pendentes (status PENDING), sua primeira fala DEVE ser informar quantos são, detalhar brevemente (quem e hora) e perguntar se o barbeiro gostaria de confirmá-los agora.

Dados atuais da barbearia (JSON):
%s

Se o usuário confirmar, use a ferramenta '%s' com os IDs correspondentes.
Seja breve, direto e educado.`, scheduleContext, ConfirmToolName)
}

// Start abre a sessão. O snapshot da agenda embutido na instrução é
// point-in-time: não é atualizado durante a sessão.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrSessionActive
	}
	c.state = StateConnecting
	c.lastLog = "Conectando ao assistente..."
	c.mu.Unlock()

	cfg := SessionConfig{
		Model:             c.model,
		SystemInstruction: systemInstruction(c.store.FormattedSchedule()),
		Tools:             []ToolDeclaration{confirmToolDeclaration()},
	}

	sess, err := c.client.Connect(ctx, cfg, Callbacks{
		OnOpen:    c.onOpen,
		OnMessage: c.onMessage,
		OnClose:   c.onClose,
		OnError:   c.onError,
	})
	if err != nil {
		c.logger.Error("voice session connect failed", zap.Error(err))
		c.mu.Lock()
		c.state = StateIdle
		c.lastLog = "Falha ao conectar. Verifique a API key."
		c.mu.Unlock()
		return err
	}

	micCtx, micCancel := context.WithCancel(context.Background())
	frames, err := c.mic.Start(micCtx)
	if err != nil {
		// Sem microfone não há sessão: derruba tudo e volta a idle.
		c.logger.Error("microphone acquisition failed", zap.Error(err))
		micCancel()
		_ = sess.Close()
		c.mu.Lock()
		c.state = StateIdle
		c.lastLog = "Erro ao acessar microfone."
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if c.state != StateConnecting {
		// Stop chegou durante o connect.
		c.mu.Unlock()
		micCancel()
		c.mic.Stop()
		_ = sess.Close()
		return nil
	}
	c.session = sess
	c.sched = newPlaybackScheduler(c.sink, c.clock)
	c.micCancel = micCancel
	c.state = StateConnected
	c.lastLog = "Assistente ouvindo... (Pode falar)"
	c.mu.Unlock()

	go c.pumpMic(frames, sess)

	return nil
}

// pumpMic envia cada frame capturado assim que chega, sem acumular além
// de um frame; o backpressure é a própria cadência do hardware.
func (c *Controller) pumpMic(frames <-chan []byte, sess LiveSession) {
	for frame := range frames {
		if err := sess.SendRealtimeInput(frame); err != nil {
			c.logger.Warn("failed to send audio frame", zap.Error(err))
			return
		}
	}
}

func (c *Controller) onOpen() {
	c.logger.Info("voice session open")
}

func (c *Controller) onMessage(m ServerMessage) {
	c.mu.Lock()
	sched := c.sched
	sess := c.session
	c.mu.Unlock()
	if sess == nil {
		return
	}

	if len(m.Audio) > 0 && sched != nil {
		if err := sched.Enqueue(m.Audio); err != nil {
			c.logger.Warn("failed to schedule playback", zap.Error(err))
		}
	}

	for _, tc := range m.ToolCalls {
		c.dispatchToolCall(tc, sess)
	}
}

type confirmArgs struct {
	AppointmentIDs []string `json:"appointmentIds"`
}

// dispatchToolCall valida e aplica um tool call. Nomes desconhecidos e
// argumentos malformados são ignorados; ids desconhecidos dentro do
// lote são pulados sem derrubar o resto.
func (c *Controller) dispatchToolCall(tc ToolCall, sess LiveSession) {
	if tc.Name != ConfirmToolName {
		c.logger.Warn("ignoring unknown tool call", zap.String("name", tc.Name))
		return
	}

	var args confirmArgs
	if err := json.Unmarshal(tc.Args, &args); err != nil {
		c.logger.Warn("malformed tool call arguments", zap.Error(err))
		return
	}

	pending := c.store.PendingIDs()
	var confirmed []string
	for _, id := range args.AppointmentIDs {
		if !pending[id] {
			c.logger.Warn("skipping unknown appointment id in tool call", zap.String("id", id))
			continue
		}
		if c.store.UpdateAppointmentStatus(context.Background(), id, domain.StatusConfirmed) {
			confirmed = append(confirmed, id)
		}
	}

	result := "Nenhum agendamento pendente encontrado para os IDs informados."
	if len(confirmed) > 0 {
		result = fmt.Sprintf("Agendamentos %s confirmados com sucesso.", strings.Join(confirmed, ", "))
		c.setLog(fmt.Sprintf("Confirmando agendamentos: %s", strings.Join(confirmed, ", ")))
	}

	if err := sess.SendToolResponse(tc.ID, tc.Name, result); err != nil {
		c.logger.Warn("failed to send tool response", zap.Error(err))
	}
}

func (c *Controller) onClose() {
	c.logger.Info("voice session closed by remote end")
	c.Stop()
}

func (c *Controller) onError(err error) {
	c.logger.Error("voice session error", zap.Error(err))
	c.mu.Lock()
	if c.state == StateConnecting || c.state == StateConnected {
		c.state = StateError
	}
	c.mu.Unlock()
	c.Stop()
	c.setLog("Erro na conexão com IA.")
}

// Stop encerra e libera tudo: sessão, microfone e reprodução pendente.
// Idempotente; chamar em idle é no-op. Nenhum callback de reprodução
// dispara depois do retorno.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state == StateIdle && c.session == nil {
		c.mu.Unlock()
		return
	}
	sess := c.session
	sched := c.sched
	micCancel := c.micCancel
	c.session = nil
	c.sched = nil
	c.micCancel = nil
	c.state = StateIdle
	c.lastLog = "Assistente desconectado."
	c.mu.Unlock()

	if micCancel != nil {
		micCancel()
	}
	c.mic.Stop()
	if sched != nil {
		sched.Cancel()
	}
	if sess != nil {
		// Close pode disparar onClose de novo; a essa altura o estado
		// já é idle e a reentrada é no-op.
		_ = sess.Close()
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) StatusLog() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastLog
}

func (c *Controller) setLog(msg string) {
	c.mu.Lock()
	c.lastLog = msg
	c.mu.Unlock()
}
