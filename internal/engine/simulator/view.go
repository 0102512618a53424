package simulator

import (
	"sync"

	"github.com/markerbridge/markerbridge/internal/engine"
)

// View is a fake scanner view that counts camera transitions. Views start with
// the capture loop running.
type View struct {
	mu      sync.Mutex
	running bool
	starts  int
	stops   int
}

func (v *View) StartCamera() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.running = true
	v.starts++
}

func (v *View) StopCamera() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.running = false
	v.stops++
}

// Counts returns how many times StartCamera and StopCamera were called.
func (v *View) Counts() (starts, stops int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.starts, v.stops
}

func (v *View) Running() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.running
}

// Slot is a fake host layout region.
type Slot struct {
	mu   sync.Mutex
	view engine.ScannerView
}

func (s *Slot) Fill(v engine.ScannerView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = nil
}

func (s *Slot) View() engine.ScannerView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}
