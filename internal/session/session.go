// Package session tracks whether the native engine has been initialized.
//
// The lifecycle is Uninitialized -> Initializing -> Ready. Ready is terminal
// for the process; there is no teardown path. Reset exists for tests.
package session

import "sync/atomic"

type State int32

const (
	Uninitialized State = iota
	Initializing
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

type Session struct {
	state atomic.Int32
}

var process = &Session{}

// Process returns the process-wide session.
func Process() *Session {
	return process
}

func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) Ready() bool {
	return s.State() == Ready
}

// Begin moves an uninitialized session to Initializing. It reports whether the
// session is now Initializing; false means it is already Ready.
func (s *Session) Begin() bool {
	if s.state.CompareAndSwap(int32(Uninitialized), int32(Initializing)) {
		return true
	}
	return s.State() == Initializing
}

func (s *Session) MarkReady() {
	s.state.Store(int32(Ready))
}

// Fail returns an Initializing session to Uninitialized so a later initialize
// can try again. A Ready session is left alone.
func (s *Session) Fail() {
	s.state.CompareAndSwap(int32(Initializing), int32(Uninitialized))
}

func (s *Session) Reset() {
	s.state.Store(int32(Uninitialized))
}
