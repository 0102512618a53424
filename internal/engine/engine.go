package engine

import (
	"encoding/json"
	"errors"
)

var (
	ErrNoEngine       = errors.New("engine: no native engine registered")
	ErrNoForeground   = errors.New("engine: no foreground context available")
	ErrNotInitialized = errors.New("engine: not initialized")
	ErrUnknownEnv     = errors.New("engine: unknown environment")
)

// ScannerRequestCode is the correlation token used when the scanning UI is
// launched for a result.
const ScannerRequestCode = 2222

// Mode is the scanner UI behaviour owned by the native engine.
type Mode string

const (
	ModeNormal       Mode = "Normal"
	ModeTroubleshoot Mode = "Troubleshoot"
)

func (m Mode) String() string { return string(m) }

// InitListener receives the outcome of one Init call. The engine may also
// report asynchronous engine-level errors through the same listener.
type InitListener interface {
	OnLoadSuccess()
	OnLoadFailed(message string)
	OnEngineError(err error)
}

// ScannerListener receives marker detection attempts. err is nil on success.
// data is empty when the engine had nothing to report.
type ScannerListener interface {
	OnMarkerDetect(markerType, data string, err error)
}

// ContentListener receives resolved marker content. data is nil when the
// engine resolved the marker without content.
type ContentListener interface {
	OnMarkerContent(markerID string, data json.RawMessage)
}

// ModeListener receives every scanner mode transition.
type ModeListener interface {
	OnModeChange(oldMode, newMode Mode)
}

// Registrar is the part of the engine that holds long-lived listeners.
type Registrar interface {
	SetScannerListener(l ScannerListener)
	SetContentListener(l ContentListener)
	SetModeListener(l ModeListener)
}

// Foreground is the active on-screen UI container. It can host the modal
// scanning UI and embedded scanner views.
type Foreground interface {
	// StartScanner launches the scanning UI for a result tagged with requestCode.
	StartScanner(requestCode int) error
	// FinishScanner closes the scanning UI launched with requestCode.
	FinishScanner(requestCode int) error
	// AttachView adds v to the view hierarchy under tag and commits the
	// transaction before returning.
	AttachView(tag string, v ScannerView) error
	// DetachView removes the view attached under tag, if any.
	DetachView(tag string) error
}

// ForegroundFunc looks up the current foreground context. It returns
// ErrNoForeground when there is none.
type ForegroundFunc func() (Foreground, error)

// ScannerView is an embeddable camera-driven scanning view. StartCamera and
// StopCamera are not idempotent in the native layer.
type ScannerView interface {
	StartCamera()
	StopCamera()
}

// Slot is the host layout region a rendered scanner view fills.
type Slot interface {
	Fill(v ScannerView)
	Clear()
}

// Engine is implemented by the native scanning SDK.
type Engine interface {
	Registrar

	Initialized() bool
	Init(apiKey string, l InitListener)

	SetUserInfo(info map[string]string)
	SetScannerParams(params map[string]string)
	AddScannerParam(key, value string)
	SetDynamicProfile(profile map[string]any)
	SetDynamicProfileValue(key, value string)
	SetCustomAdLabel(label string)
	SetAppUserID(id string)
	SetLogoVisible(visible bool)

	StartScanning()
	StopScanning()

	PerformMarker(fg Foreground, markerID string, props map[string]any)
	StartTroubleshoot(fg Foreground)
	SetMode(fg Foreground, m Mode)
	Mode() Mode

	NewScannerView() ScannerView
}
