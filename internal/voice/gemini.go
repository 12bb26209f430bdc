package voice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const liveHost = "generativelanguage.googleapis.com"
const livePath = "/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

// ===============================
// Wire frames (BidiGenerateContent)
// ===============================

type liveClientMessage struct {
	Setup         *liveSetup         `json:"setup,omitempty"`
	RealtimeInput *liveRealtimeInput `json:"realtimeInput,omitempty"`
	ToolResponse  *liveToolResponse  `json:"toolResponse,omitempty"`
}

type liveSetup struct {
	Model             string          `json:"model"`
	GenerationConfig  liveGenConfig   `json:"generationConfig"`
	SystemInstruction *liveContent    `json:"systemInstruction,omitempty"`
	Tools             []liveToolGroup `json:"tools,omitempty"`
}

type liveGenConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type liveContent struct {
	Parts []livePart `json:"parts"`
}

type livePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *liveInlineData `json:"inlineData,omitempty"`
}

type liveInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type liveToolGroup struct {
	FunctionDeclarations []ToolDeclaration `json:"functionDeclarations"`
}

type liveRealtimeInput struct {
	MediaChunks []liveInlineData `json:"mediaChunks"`
}

type liveToolResponse struct {
	FunctionResponses []liveFunctionResponse `json:"functionResponses"`
}

type liveFunctionResponse struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type liveServerMessage struct {
	SetupComplete *struct{}          `json:"setupComplete,omitempty"`
	ServerContent *liveServerContent `json:"serverContent,omitempty"`
	ToolCall      *liveToolCall      `json:"toolCall,omitempty"`
}

type liveServerContent struct {
	ModelTurn    *liveContent `json:"modelTurn,omitempty"`
	TurnComplete bool         `json:"turnComplete,omitempty"`
}

type liveToolCall struct {
	FunctionCalls []liveFunctionCall `json:"functionCalls"`
}

type liveFunctionCall struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

// ===============================
// Client
// ===============================

// GeminiLiveClient abre sessões bidirecionais de áudio com o Gemini
// Live por WebSocket.
type GeminiLiveClient struct {
	apiKey string
	logger *zap.Logger
}

func NewGeminiLiveClient(apiKey string, logger *zap.Logger) *GeminiLiveClient {
	return &GeminiLiveClient{apiKey: apiKey, logger: logger}
}

func (c *GeminiLiveClient) Connect(ctx context.Context, cfg SessionConfig, cb Callbacks) (LiveSession, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	wsURL := fmt.Sprintf("wss://%s%s?%s", liveHost, livePath, params.Encode())

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial live endpoint: %w", err)
	}

	sess := &geminiSession{
		conn:   conn,
		cb:     cb,
		logger: c.logger,
	}

	setup := liveClientMessage{
		Setup: &liveSetup{
			Model: "models/" + cfg.Model,
			GenerationConfig: liveGenConfig{
				ResponseModalities: []string{"AUDIO"},
			},
			SystemInstruction: &liveContent{
				Parts: []livePart{{Text: cfg.SystemInstruction}},
			},
			Tools: []liveToolGroup{{FunctionDeclarations: cfg.Tools}},
		},
	}
	if err := sess.writeJSON(setup); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("send setup: %w", err)
	}

	// O servidor responde com setupComplete antes de qualquer conteúdo.
	var first liveServerMessage
	if err := conn.ReadJSON(&first); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("read setup ack: %w", err)
	}
	if first.SetupComplete == nil {
		_ = conn.Close()
		return nil, fmt.Errorf("unexpected first frame from live endpoint")
	}

	go sess.readLoop()

	if cb.OnOpen != nil {
		go cb.OnOpen()
	}

	return sess, nil
}

type geminiSession struct {
	conn   *websocket.Conn
	cb     Callbacks
	logger *zap.Logger

	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    bool
}

func (s *geminiSession) writeJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return fmt.Errorf("session closed")
	}
	return s.conn.WriteJSON(v)
}

func (s *geminiSession) SendRealtimeInput(pcm []byte) error {
	return s.writeJSON(liveClientMessage{
		RealtimeInput: &liveRealtimeInput{
			MediaChunks: []liveInlineData{{
				MimeType: fmt.Sprintf("audio/pcm;rate=%d", InputSampleRate),
				Data:     base64.StdEncoding.EncodeToString(pcm),
			}},
		},
	})
}

func (s *geminiSession) SendToolResponse(callID, name, result string) error {
	return s.writeJSON(liveClientMessage{
		ToolResponse: &liveToolResponse{
			FunctionResponses: []liveFunctionResponse{{
				ID:       callID,
				Name:     name,
				Response: map[string]any{"result": result},
			}},
		},
	})
}

func (s *geminiSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		s.closed = true
		s.writeMu.Unlock()
		err = s.conn.Close()
	})
	return err
}

func (s *geminiSession) readLoop() {
	for {
		var msg liveServerMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			s.writeMu.Lock()
			wasClosed := s.closed
			s.writeMu.Unlock()

			if wasClosed || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if s.cb.OnClose != nil {
					s.cb.OnClose()
				}
				return
			}
			if s.cb.OnError != nil {
				s.cb.OnError(err)
			}
			return
		}

		out, ok := decodeServerMessage(msg, s.logger)
		if !ok {
			continue
		}
		if s.cb.OnMessage != nil {
			s.cb.OnMessage(out)
		}
	}
}

// decodeServerMessage achata o frame do serviço no evento neutro que o
// controller consome.
func decodeServerMessage(msg liveServerMessage, logger *zap.Logger) (ServerMessage, bool) {
	var out ServerMessage
	seen := false

	if msg.ServerContent != nil {
		out.TurnComplete = msg.ServerContent.TurnComplete
		if msg.ServerContent.TurnComplete {
			seen = true
		}
		if msg.ServerContent.ModelTurn != nil {
			for _, part := range msg.ServerContent.ModelTurn.Parts {
				if part.InlineData == nil || part.InlineData.Data == "" {
					continue
				}
				b, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					logger.Warn("invalid audio payload", zap.Error(err))
					continue
				}
				out.Audio = append(out.Audio, b...)
				seen = true
			}
		}
	}

	if msg.ToolCall != nil {
		for _, fc := range msg.ToolCall.FunctionCalls {
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:   fc.ID,
				Name: fc.Name,
				Args: fc.Args,
			})
		}
		seen = seen || len(out.ToolCalls) > 0
	}

	return out, seen
}
