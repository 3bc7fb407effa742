package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"movie-quiz/internal/app"
)

type WSHandler struct {
	sessions  app.SessionRepository
	newEngine app.EngineFactory
	logger    zerolog.Logger
	upgrader  websocket.Upgrader
}

func NewWSHandler(sessions app.SessionRepository, newEngine app.EngineFactory, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		sessions:  sessions,
		newEngine: newEngine,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Answer *bool `json:"answer"`
}

// ServeWS upgrades the request and runs one quiz session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	logger := h.logger.With().Str("session", sessionID).Logger()

	send := make(chan outboundMessage, 32)
	stop := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug().Err(err).Msg("ws write error")
				// keep draining so the engine never blocks
				for range send {
				}
				return
			}
		}
	}()

	presenter := &wsPresenter{send: send, stop: stop}
	engine, _ := h.sessions.GetOrCreate(sessionID, func() *app.QuizEngine {
		return h.newEngine(r.Context(), presenter)
	})
	logger.Info().Msg("session started")
	engine.Start()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Answer == nil {
				presenter.push("error", errorPayload{Message: "invalid answer payload"})
				continue
			}
			engine.SubmitAnswer(*payload.Answer)
		case "restart":
			engine.Restart()
		case "retry":
			engine.Retry()
		default:
			presenter.push("error", errorPayload{Message: "unsupported message type"})
		}
	}

	close(stop)
	h.sessions.Delete(sessionID)
	close(send)
	<-writerDone
	logger.Info().Msg("session closed")
}
