// Package activity matches foreground-return signals against the scanning UI
// launch that caused them.
package activity

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/markerbridge/markerbridge/internal/engine"
	"github.com/markerbridge/markerbridge/internal/events"
)

type State int

const (
	Idle State = iota
	AwaitingResult
)

func (s State) String() string {
	if s == AwaitingResult {
		return "awaiting_result"
	}
	return "idle"
}

// Correlator owns the single pending scanner request of a bridge.
type Correlator struct {
	mu      sync.Mutex
	state   State
	code    int
	emitter events.Emitter
	logger  *slog.Logger
}

func NewCorrelator(emitter events.Emitter, logger *slog.Logger) *Correlator {
	return &Correlator{
		code:    engine.ScannerRequestCode,
		emitter: emitter,
		logger:  logger,
	}
}

func (c *Correlator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Launch starts the scanning UI on fg. A launch while another is outstanding
// replaces it.
func (c *Correlator) Launch(fg engine.Foreground) error {
	if fg == nil {
		return engine.ErrNoForeground
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == AwaitingResult {
		c.logger.Warn("scanner launched while another is outstanding, replacing", "request_code", c.code)
	}
	if err := fg.StartScanner(c.code); err != nil {
		return fmt.Errorf("start scanner: %w", err)
	}
	c.state = AwaitingResult
	c.logger.Debug("scanner launched", "request_code", c.code)
	return nil
}

// Close asks fg to finish the scanning UI. The outcome arrives later through
// OnActivityResult.
func (c *Correlator) Close(fg engine.Foreground) error {
	if fg == nil {
		return engine.ErrNoForeground
	}
	if err := fg.FinishScanner(c.code); err != nil {
		return fmt.Errorf("finish scanner: %w", err)
	}
	return nil
}

// OnActivityResult handles a foreground-return signal. A matching request code
// always yields exactly one scannerClosed event; anything else is ignored.
func (c *Correlator) OnActivityResult(requestCode, resultCode int) {
	c.logger.Info("activity result", "request_code", requestCode, "result_code", resultCode)

	c.mu.Lock()
	if requestCode != c.code {
		c.mu.Unlock()
		return
	}
	c.state = Idle
	c.mu.Unlock()

	c.emitter.Emit(events.ScannerClosed, nil)
}
