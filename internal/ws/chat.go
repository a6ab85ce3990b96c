// Package ws carries the chat panel's socket. One connection serves one
// authenticated user; each inbound frame is a chat request and each reply
// frame carries the stored turn plus the mock assistant turn. Token-level
// streaming is out of scope.
package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lovico/lovico-server/internal/domain"
	"github.com/lovico/lovico-server/internal/schema"
	"github.com/lovico/lovico-server/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type ChatHandler struct {
	chatService *service.ChatService
	authService *service.AuthService
	log         *logrus.Logger
	upgrader    websocket.Upgrader
}

func NewChatHandler(chatService *service.ChatService, authService *service.AuthService, log *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		authService: authService,
		log:         log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced by the CORS layer for the HTTP
			// surface; the socket accepts the upgrade and relies on token
			// auth below.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type outFrame struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message,omitempty"`
	Reply   *domain.Message `json:"reply,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Handle upgrades the connection after validating the token passed as a
// query parameter (browsers cannot set headers on websocket dials).
func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token required", http.StatusUnauthorized)
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	sub, _ := (*claims)["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		http.Error(w, "invalid token claims", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	h.serve(conn, userID, r)
}

// serve runs the read pump in a goroutine and keeps all writes on this
// goroutine; gorilla connections allow only one concurrent writer.
func (h *ChatHandler) serve(conn *websocket.Conn, userID uuid.UUID, r *http.Request) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	send := make(chan outFrame, 8)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)

	push := func(frame outFrame) bool {
		select {
		case send <- frame:
			return true
		case <-quit:
			return false
		}
	}

	go func() {
		defer close(done)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.WithError(err).Debug("chat socket closed unexpectedly")
				}
				return
			}

			var req schema.ChatRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				if !push(outFrame{Type: "error", Error: "invalid chat request"}) {
					return
				}
				continue
			}

			userMsg, reply, err := h.chatService.SendMessage(r.Context(), userID, req)
			if err != nil {
				if !push(outFrame{Type: "error", Error: err.Error()}) {
					return
				}
				continue
			}

			if !push(outFrame{Type: "message", Message: userMsg, Reply: reply}) {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case frame := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				h.log.WithError(err).Debug("chat socket write failed")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
