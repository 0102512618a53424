package events

import (
	"log/slog"
	"sync"

	"github.com/markerbridge/markerbridge/internal/metrics"
)

var _ Emitter = (*Channel)(nil)

// Channel gates emission on the attached consumer being live. Events emitted
// while no live consumer is attached are dropped, never queued.
type Channel struct {
	mu       sync.Mutex
	consumer Consumer
	logger   *slog.Logger
}

func NewChannel(logger *slog.Logger) *Channel {
	return &Channel{logger: logger}
}

// Attach replaces the current consumer.
func (c *Channel) Attach(consumer Consumer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumer = consumer
}

// Detach removes the current consumer. Once Detach returns no further
// delivery reaches it.
func (c *Channel) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumer = nil
}

// Emit delivers the event and reports whether a live consumer accepted it.
// The liveness check and the delivery happen under one lock so a concurrent
// Detach cannot slip between them.
func (c *Channel) Emit(name string, payload Payload) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.consumer == nil || !c.consumer.Live() {
		c.logger.Debug("event dropped, no live consumer", "event", name)
		metrics.EventsDropped.WithLabelValues(name).Inc()
		return false
	}

	if err := c.consumer.Deliver(name, payload); err != nil {
		c.logger.Warn("event delivery failed", "event", name, "err", err)
		metrics.EventsDropped.WithLabelValues(name).Inc()
		return false
	}

	c.logger.Debug("event emitted", "event", name, "payload", payload)
	metrics.EventsEmitted.WithLabelValues(name).Inc()
	return true
}
