package view

import (
	"log/slog"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/markerbridge/markerbridge/internal/engine"
)

// Manager keeps one Controller per host view tag.
type Manager struct {
	factory     Factory
	foreground  engine.ForegroundFunc
	logger      *slog.Logger
	controllers *xsync.Map[string, *Controller]
}

func NewManager(factory Factory, foreground engine.ForegroundFunc, logger *slog.Logger) *Manager {
	return &Manager{
		factory:     factory,
		foreground:  foreground,
		logger:      logger,
		controllers: xsync.NewMap[string, *Controller](),
	}
}

func (m *Manager) Mount(tag string, slot engine.Slot) {
	c, _ := m.controllers.LoadOrStore(tag, NewController(tag, m.factory, m.foreground, m.logger))
	c.Mount(slot)
}

func (m *Manager) Unmount(tag string) {
	c, ok := m.controllers.LoadAndDelete(tag)
	if !ok {
		return
	}
	c.Unmount()
}

func (m *Manager) SetCameraEnabled(tag string, enabled bool) {
	c, ok := m.controllers.Load(tag)
	if !ok {
		m.logger.Warn("camera toggle for unknown view", "view", tag, "enabled", enabled)
		return
	}
	c.SetCameraEnabled(enabled)
}

// Controller returns the controller mounted under tag.
func (m *Manager) Controller(tag string) (*Controller, bool) {
	return m.controllers.Load(tag)
}

// UnmountAll tears down every mounted view.
func (m *Manager) UnmountAll() {
	m.controllers.Range(func(tag string, _ *Controller) bool {
		m.Unmount(tag)
		return true
	})
}
