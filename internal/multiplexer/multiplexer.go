// Package multiplexer turns every asynchronous engine callback into exactly
// one host event.
package multiplexer

import (
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/markerbridge/markerbridge/internal/engine"
	"github.com/markerbridge/markerbridge/internal/events"
)

var (
	_ engine.ScannerListener = (*Multiplexer)(nil)
	_ engine.ContentListener = (*Multiplexer)(nil)
	_ engine.ModeListener    = (*Multiplexer)(nil)
)

// Category is a kind of engine listener.
type Category string

const (
	CategoryScanner Category = "scanner"
	CategoryContent Category = "content"
	CategoryMode    Category = "mode"
)

// Multiplexer holds no per-event state. Ordering across categories is not
// guaranteed; within one category events keep the engine's order.
type Multiplexer struct {
	emitter  events.Emitter
	registry engine.Registrar
	logger   *slog.Logger

	once   sync.Once
	mu     sync.RWMutex
	routes map[Category]bool
}

func New(emitter events.Emitter, registry engine.Registrar, logger *slog.Logger) *Multiplexer {
	return &Multiplexer{
		emitter:  emitter,
		registry: registry,
		logger:   logger,
		routes:   make(map[Category]bool),
	}
}

// Install registers the multiplexer as the engine's scanner, content and mode
// listener. Only the first call has an effect.
func (m *Multiplexer) Install() {
	m.once.Do(func() {
		m.registry.SetScannerListener(m)
		m.registry.SetContentListener(m)
		m.registry.SetModeListener(m)

		m.mu.Lock()
		m.routes[CategoryScanner] = true
		m.routes[CategoryContent] = true
		m.routes[CategoryMode] = true
		m.mu.Unlock()

		m.logger.Info("engine listeners installed")
	})
}

// Installed lists the categories currently routed to the multiplexer.
func (m *Multiplexer) Installed() []Category {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Category, 0, len(m.routes))
	for c, on := range m.routes {
		if on {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

func (m *Multiplexer) OnMarkerDetect(markerType, data string, err error) {
	if data == "" {
		data = "null"
	}

	if err == nil {
		m.logger.Info("marker detected", "type", markerType, "data", data)
		m.emitter.Emit(events.DetectSuccess, events.Payload{"data": data})
		return
	}

	m.logger.Error("marker detect failed", "type", markerType, "data", data, "err", err)
	m.emitter.Emit(events.DetectError, events.Payload{"error": err.Error()})
}

func (m *Multiplexer) OnMarkerContent(markerID string, data json.RawMessage) {
	m.logger.Info("marker content", "marker", markerID, "bytes", len(data))

	content := "{}"
	if len(data) > 0 && string(data) != "null" {
		content = string(data)
	}

	m.emitter.Emit(events.ContentResolved, events.Payload{
		"markerId": markerID,
		"data":     content,
	})
}

func (m *Multiplexer) OnModeChange(oldMode, newMode engine.Mode) {
	m.logger.Info("mode change", "old", oldMode, "new", newMode)
	m.emitter.Emit(events.ModeChanged, events.Payload{
		"oldMode": oldMode.String(),
		"newMode": newMode.String(),
	})
}

// OnEngineError reports an asynchronous engine failure that is not tied to
// any request.
func (m *Multiplexer) OnEngineError(err error) {
	msg := "unknown engine error"
	if err != nil {
		msg = err.Error()
	}
	m.logger.Error("engine error", "err", msg)
	m.emitter.Emit(events.EngineError, events.Payload{"error": msg})
}
