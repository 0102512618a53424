// Package view binds embedded scanner views to host layout slots.
package view

import (
	"log/slog"
	"sync"

	"github.com/markerbridge/markerbridge/internal/engine"
)

// Factory constructs fresh native scanner views.
type Factory interface {
	NewScannerView() engine.ScannerView
}

// Controller owns at most one native scanner view. Mounting a second
// controller while one is active is a host-side usage error.
type Controller struct {
	mu            sync.Mutex
	tag           string
	factory       Factory
	foreground    engine.ForegroundFunc
	view          engine.ScannerView
	slot          engine.Slot
	cameraEnabled bool
	logger        *slog.Logger
}

func NewController(
	tag string,
	factory Factory,
	foreground engine.ForegroundFunc,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		tag:           tag,
		factory:       factory,
		foreground:    foreground,
		cameraEnabled: true,
		logger:        logger.With("view", tag),
	}
}

// currentForeground treats a nil foreground like a missing one.
func (c *Controller) currentForeground() (engine.Foreground, error) {
	fg, err := c.foreground()
	if err != nil {
		return nil, err
	}
	if fg == nil {
		return nil, engine.ErrNoForeground
	}
	return fg, nil
}

// Mount creates the native view, attaches it to the current foreground
// context and fills slot with it. Without a foreground context the slot stays
// empty and nothing is retried.
func (c *Controller) Mount(slot engine.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != nil {
		c.logger.Warn("mount ignored, view already mounted")
		return
	}

	fg, err := c.currentForeground()
	if err != nil {
		c.logger.Error("cannot mount scanner view", "err", err)
		return
	}

	v := c.factory.NewScannerView()
	if err := fg.AttachView(c.tag, v); err != nil {
		c.logger.Error("attach scanner view failed", "err", err)
		return
	}

	c.view = v
	c.slot = slot
	c.cameraEnabled = true
	if slot != nil {
		slot.Fill(v)
	}
	c.logger.Info("scanner view mounted")
}

// Unmount detaches the view on a best-effort basis. A foreground context that
// has already gone away is not an error.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view == nil {
		return
	}

	c.view = nil
	c.cameraEnabled = true
	if c.slot != nil {
		c.slot.Clear()
		c.slot = nil
	}

	fg, err := c.currentForeground()
	if err != nil {
		c.logger.Debug("no foreground at unmount, skipping detach", "err", err)
		return
	}
	if err := fg.DetachView(c.tag); err != nil {
		c.logger.Debug("detach scanner view failed", "err", err)
		return
	}
	c.logger.Info("scanner view unmounted")
}

// SetCameraEnabled starts the capture loop only on a false->true edge and
// stops it only on a true->false edge.
func (c *Controller) SetCameraEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view == nil {
		return
	}

	switch {
	case enabled && !c.cameraEnabled:
		c.logger.Info("start camera")
		c.cameraEnabled = true
		c.view.StartCamera()
	case !enabled && c.cameraEnabled:
		c.logger.Info("stop camera")
		c.cameraEnabled = false
		c.view.StopCamera()
	}
}

func (c *Controller) CameraEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cameraEnabled
}

func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view != nil
}
