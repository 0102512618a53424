package main

import "sync"

type terminator interface {
	Dispatch(f func())
	Terminate()
}

// windowStopper ends a window's run loop from another goroutine, at most once
// and never after the loop has already returned.
type windowStopper struct {
	mu     sync.Mutex
	window terminator
	done   bool
}

func (s *windowStopper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.window == nil || s.done {
		return
	}
	s.done = true
	s.window.Dispatch(s.window.Terminate)
}

// Exited records that the run loop returned on its own.
func (s *windowStopper) Exited() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
}
