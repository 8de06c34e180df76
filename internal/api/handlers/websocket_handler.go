package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	ws "github.com/thounda/employee-polls-be/internal/websocket"
)

// WebSocketHandler handles upgrading HTTP connections to WebSocket
// connections for live tally and leaderboard updates.
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request. Connections on
// /ws/questions/{id} are subscribed to that question; /ws gets the global
// feed.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	questionID := chi.URLParam(r, "id")

	client := ws.NewClient(h.hub, conn, questionID)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump(h.handleIncomingWSMessage)
}

// subscribeRequest is the only client-to-server message shape we accept.
type subscribeRequest struct {
	Action     string `json:"action"`
	QuestionID string `json:"questionId"`
}

// handleIncomingWSMessage lets a global-feed client narrow or widen what
// it receives.
func (h *WebSocketHandler) handleIncomingWSMessage(client *ws.Client, raw []byte) {
	var req subscribeRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Warn().Err(err).Msg("Ignoring malformed websocket message")
		return
	}

	switch req.Action {
	case "subscribe":
		if req.QuestionID != "" {
			client.Subscribe(req.QuestionID)
		}
	case "unsubscribe":
		if req.QuestionID != "" {
			client.Unsubscribe(req.QuestionID)
		}
	default:
		log.Warn().Str("action", req.Action).Msg("Unknown websocket action")
	}
}
