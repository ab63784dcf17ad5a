package service

import (
	"encoding/json"

	"github.com/gorilla/websocket"
)

// Event is pushed to a connected user over their websocket.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is one websocket connection belonging to a user. A user may be
// connected from several tabs or devices at once.
type Client struct {
	UserID uint
	Send   chan []byte
	Conn   *websocket.Conn
}

type userEvent struct {
	userID uint
	data   []byte
}

// Hub fans events out to whichever of a user's connections are open.
// All map access happens on the Run goroutine.
type Hub struct {
	clients    map[uint]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	events     chan userEvent
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		events:     make(chan userEvent, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
		case client := <-h.Unregister:
			if conns, ok := h.clients[client.UserID]; ok {
				if conns[client] {
					delete(conns, client)
					close(client.Send)
					if len(conns) == 0 {
						delete(h.clients, client.UserID)
					}
				}
			}
		case ev := <-h.events:
			for client := range h.clients[ev.userID] {
				select {
				case client.Send <- ev.data:
				default:
					// slow consumer, drop the connection
					delete(h.clients[ev.userID], client)
					close(client.Send)
				}
			}
		}
	}
}

// Push delivers an event to the user if they are connected; offline users
// simply miss it and catch up from the database.
func (h *Hub) Push(userID uint, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		logger.Warnf("Failed to marshal %s event: %v", ev.Type, err)
		return
	}
	select {
	case h.events <- userEvent{userID: userID, data: data}:
	default:
		logger.Warnf("Event queue full, dropping %s event for user %d", ev.Type, userID)
	}
}

var hub = NewHub()

// GetHub exposes the process-wide hub to main and the controllers.
func GetHub() *Hub {
	return hub
}
