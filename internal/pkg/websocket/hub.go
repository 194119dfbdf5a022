package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// delivery is a notification addressed to one user
type delivery struct {
	userID int64
	data   []byte
}

// Hub maintains the set of connected clients per user and routes notifications to them
type Hub struct {
	// Registered clients organized by user ID; only touched from Run
	clients map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	deliver    chan delivery

	// Closed when Run returns so pumps never block on a stopped hub
	done chan struct{}

	// Connection counts per user, readable from other goroutines
	mu     sync.RWMutex
	counts map[int64]int

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		done:       make(chan struct{}),
		counts:     make(map[int64]int),
		logger:     logger,
	}
}

// Run handles client registrations and deliveries until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliver:
			h.deliverMessage(d)
		}
	}
}

// add hands a client to the hub; false means the hub has stopped
func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// remove hands a client back to the hub unless it has stopped
func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	h.setCount(client.userID, len(h.clients[client.userID]))

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}
	h.setCount(client.userID, len(clients))

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client unregistered")
}

func (h *Hub) deliverMessage(d delivery) {
	clients, ok := h.clients[d.userID]
	if !ok {
		h.logger.Debug().Int64("userID", d.userID).Msg("User not connected, notification dropped")
		return
	}

	for client := range clients {
		select {
		case client.send <- d.data:
		default:
			// Slow consumer; drop the connection
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) closeAll() {
	for _, clients := range h.clients {
		for client := range clients {
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) setCount(userID int64, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n == 0 {
		delete(h.counts, userID)
		return
	}
	h.counts[userID] = n
}

// Notify queues a notification for every connection of the user.
// Delivery is best effort: if the queue is full the event is dropped.
func (h *Hub) Notify(userID int64, n Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to marshal notification")
		return
	}

	select {
	case h.deliver <- delivery{userID: userID, data: data}:
	default:
		h.logger.Warn().Int64("userID", userID).Str("type", string(n.Type)).Msg("Notification queue full, dropping event")
	}
}

// GetClientsCount returns the number of open connections for a user
func (h *Hub) GetClientsCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.counts[userID]
}
