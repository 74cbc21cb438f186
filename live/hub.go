package live

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"

	"github.com/muqabla/sportshub/models"
)

const (
	MessageTypeMatchUpdated     = "MATCH_UPDATED"
	MessageTypeStandingsUpdated = "STANDINGS_UPDATED"
)

// Message is the typed JSON frame pushed to event rooms.
type Message struct {
	Type    string      `json:"type"`
	EventID int         `json:"eventId"`
	Payload interface{} `json:"payload"`
}

// Hub fans messages out to websocket clients grouped into per-event rooms.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func eventRoom(eventID int) string {
	return "event:" + strconv.Itoa(eventID)
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.logger.Debug("client joined room",
				slog.String("room", client.room),
				slog.Int("clients", len(h.rooms[client.room])))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, present := clients[client]; present {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastMatchUpdate pushes the updated match to the event's room.
func (h *Hub) BroadcastMatchUpdate(eventID int, match *models.Match) {
	h.broadcast(eventID, Message{
		Type:    MessageTypeMatchUpdated,
		EventID: eventID,
		Payload: match,
	})
}

// BroadcastStandingsUpdate pushes the recalculated table to the event's room.
func (h *Hub) BroadcastStandingsUpdate(eventID int, standings []models.Standing) {
	h.broadcast(eventID, Message{
		Type:    MessageTypeStandingsUpdated,
		EventID: eventID,
		Payload: standings,
	})
}

func (h *Hub) broadcast(eventID int, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[eventRoom(eventID)]
	if !ok {
		return
	}

	frame, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message",
			slog.String("type", message.Type),
			slog.Any("error", err))
		return
	}

	for client := range clients {
		client.trySend(frame)
	}
}
