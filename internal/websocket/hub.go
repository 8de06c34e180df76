package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/thounda/employee-polls-be/internal/models"
	"github.com/thounda/employee-polls-be/internal/views"
)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages from the clients for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of question IDs to the set of clients subscribed to them.
	subscriptions map[string]map[*Client]bool

	subscribe   chan subscription
	unsubscribe chan subscription
	targeted    chan targetedMessage
}

type subscription struct {
	client     *Client
	questionID string
}

type targetedMessage struct {
	questionID string
	data       []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		subscribe:     make(chan subscription),
		unsubscribe:   make(chan subscription),
		targeted:      make(chan targetedMessage),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
			// If the client connected on a question route, subscribe it now.
			if client.QuestionID != "" {
				h.addSubscription(client, client.QuestionID)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case sub := <-h.subscribe:
			h.addSubscription(sub.client, sub.questionID)
		case sub := <-h.unsubscribe:
			if subs, ok := h.subscriptions[sub.questionID]; ok {
				delete(subs, sub.client)
				if len(subs) == 0 {
					delete(h.subscriptions, sub.questionID)
				}
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		case msg := <-h.targeted:
			h.broadcastTo(msg.questionID, msg.data)
		}
	}
}

// broadcastTo delivers a message to the clients subscribed to a question
// and to clients watching the global feed. Only the Run goroutine touches
// the subscription map, so this is only called from Run.
func (h *Hub) broadcastTo(questionID string, message []byte) {
	deliver := func(client *Client) {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.clients, client)
			h.removeSubscription(client)
		}
	}
	subs := h.subscriptions[questionID]
	for client := range subs {
		deliver(client)
	}
	for client := range h.clients {
		if client.QuestionID == "" && !subs[client] {
			deliver(client)
		}
	}
}

func (h *Hub) addSubscription(client *Client, questionID string) {
	if h.subscriptions[questionID] == nil {
		h.subscriptions[questionID] = make(map[*Client]bool)
	}
	h.subscriptions[questionID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for questionID, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, questionID)
			}
		}
	}
}

// NotifyQuestionCreated broadcasts a freshly created question to every
// connected client.
func (h *Hub) NotifyQuestionCreated(q models.Question) {
	h.push(Message{Action: ActionQuestionCreated, Payload: q})
}

// NotifyTallyChanged sends a new tally to the clients subscribed to the
// question and to global watchers.
func (h *Hub) NotifyTallyChanged(questionID string, tally views.Tally) {
	data, err := json.Marshal(Message{Action: ActionTallyChanged, Payload: TallyPayload{QuestionID: questionID, Tally: tally}})
	if err != nil {
		log.Error().Err(err).Str("question_id", questionID).Msg("Failed to marshal tally message")
		return
	}
	h.targeted <- targetedMessage{questionID: questionID, data: data}
}

// NotifyLeaderboard broadcasts a leaderboard snapshot.
func (h *Hub) NotifyLeaderboard(ranked []views.RankedUser) {
	h.push(Message{Action: ActionLeaderboardUpdated, Payload: ranked})
}

func (h *Hub) push(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("action", msg.Action).Msg("Failed to marshal hub message")
		return
	}
	h.Broadcast <- data
}
