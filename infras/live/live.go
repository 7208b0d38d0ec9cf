package live

//go:generate go run go.uber.org/mock/mockgen -source=./live.go -destination=./mocks/live_mock.go -package=mocks

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

const sendBuffer = 32

// Event is pushed to dashboards when a booking changes.
type Event struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
	ListingID string `json:"listing_id"`
	Status    string `json:"status"`
	OwnerID   string `json:"-"`
	UserID    string `json:"-"`
}

type Broadcaster interface {
	Broadcast(event Event)
}

type Client struct {
	ID     string
	UserID string
	Admin  bool
	Send   chan []byte
}

func NewClient(id, userID string, admin bool) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		Admin:  admin,
		Send:   make(chan []byte, sendBuffer),
	}
}

// wants reports whether the event concerns the client: admins see everything, others their own listings and bookings.
func (c *Client) wants(event Event) bool {
	if c.Admin {
		return true
	}

	return c.UserID != "" && (c.UserID == event.OwnerID || c.UserID == event.UserID)
}

type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.ID] = c
}

// Unregister removes the client and closes its Send channel. Unknown ids are ignored.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.Send)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Broadcast never blocks: a client whose buffer is full is dropped.
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal live event")

		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if !client.wants(event) {
			continue
		}

		select {
		case client.Send <- payload:
		default:
			log.Warn().Str("client", client.ID).Msg("live client is too slow, disconnecting")

			go h.Unregister(client.ID)
		}
	}
}
