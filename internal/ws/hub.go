package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/markerbridge/markerbridge/internal/events"
	"github.com/markerbridge/markerbridge/internal/metrics"
)

var _ events.Consumer = (*Hub)(nil)

var ErrNoRecipients = errors.New("ws: no recipient accepted the message")

const (
	TypeEvent    = "event"
	TypeCallback = "callback"
)

// EventMessage carries one bridge event to the host.
type EventMessage struct {
	Type    string         `json:"type"`
	Name    string         `json:"name"`
	Payload events.Payload `json:"payload,omitempty"`
}

// CallbackMessage resolves an initialize request issued over HTTP.
type CallbackMessage struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Hub fans bridge output out to every connected host socket. It is a live
// consumer while it is open and at least one socket is connected.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		c.closeSend()
		return
	}
	h.clients[c] = struct{}{}
	metrics.ActiveConsumers.Inc()
	h.logger.Debug("ws register", "clients", len(h.clients))
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.closeSend()
	metrics.ActiveConsumers.Dec()
	h.logger.Debug("ws unregister", "clients", len(h.clients))
}

func (h *Hub) Live() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.closed && len(h.clients) > 0
}

func (h *Hub) Deliver(name string, payload events.Payload) error {
	data, err := json.Marshal(EventMessage{Type: TypeEvent, Name: name, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", name, err)
	}
	if h.Broadcast(data) == 0 {
		return ErrNoRecipients
	}
	return nil
}

// Resolve tells the host how the initialize request id ended. An empty
// errMsg means success.
func (h *Hub) Resolve(id string, errMsg string) {
	data, err := json.Marshal(CallbackMessage{
		Type:  TypeCallback,
		ID:    id,
		OK:    errMsg == "",
		Error: errMsg,
	})
	if err != nil {
		h.logger.Error("marshal callback", "id", id, "err", err)
		return
	}
	h.Broadcast(data)
}

// Broadcast sends data to every client without blocking and returns how many
// accepted it. Clients with a full buffer miss the message.
func (h *Hub) Broadcast(data []byte) int {
	if data == nil {
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return 0
	}

	sent := 0
	for c := range h.clients {
		select {
		case c.Send <- data:
			sent++
		default:
			h.logger.Warn("ws dropped message")
		}
	}

	h.logger.Debug("ws broadcast", "recipients", sent)
	return sent
}

// Shutdown disconnects every client. The hub stays dead afterwards.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		c.closeSend()
		metrics.ActiveConsumers.Dec()
	}
	clear(h.clients)
}
