package events

// Event names emitted to the host.
const (
	ScannerClosed   = "scannerClosed"
	EngineError     = "engineError"
	DetectSuccess   = "detectSuccess"
	DetectError     = "detectError"
	ContentResolved = "contentResolved"
	ModeChanged     = "modeChanged"
)

// Payload is the flat string map carried by an event. A nil Payload means the
// event has none.
type Payload map[string]string

// Emitter publishes named events to the host.
type Emitter interface {
	Emit(name string, payload Payload) bool
}

// Consumer is the host-side receiver of events.
type Consumer interface {
	// Live reports whether the consumer can accept an event right now.
	Live() bool
	// Deliver runs while the Channel lock is held. It must not call back
	// into the bridge on the same goroutine; hand such work off instead.
	Deliver(name string, payload Payload) error
}
