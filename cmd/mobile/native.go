package mobile

// The types in this file are implemented by native code (Kotlin/Swift) and
// bound with gomobile.
//
// Rules for gomobile compatibility:
//   - methods may only use primitive types, strings, []byte, or other
//     gomobile-bound types as parameters and return values
//   - maps cross the boundary as JSON object strings
//   - errors are returned as the last return value

// NativeEngine wraps the native scanning SDK.
type NativeEngine interface {
	IsInitialized() bool
	Init(apiKey string, listener InitListener)

	SetScannerListener(l ScannerListener)
	SetContentListener(l ContentListener)
	SetModeListener(l ModeListener)

	SetUserInfo(infoJSON string) error
	SetScannerParams(paramsJSON string) error
	AddScannerParam(key string, value string) error
	SetDynamicProfile(profileJSON string) error
	SetDynamicProfileValue(key string, value string) error
	SetCustomAdLabel(label string) error
	SetAppUserId(id string) error
	SetLogoVisible(visible bool) error
	StartScanning() error
	StopScanning() error

	PerformMarker(fg NativeForeground, markerID string, propsJSON string) error
	StartTroubleshoot(fg NativeForeground) error
	SetMode(fg NativeForeground, mode string) error
	GetMode() string

	NewScannerView() NativeScannerView
}

// NativeForeground is the current activity / view controller.
type NativeForeground interface {
	StartScanner(requestCode int) error
	FinishScanner(requestCode int) error
	AttachView(tag string, v NativeScannerView) error
	DetachView(tag string) error
}

// ForegroundSource returns the current foreground, or nil when the app has
// none.
type ForegroundSource interface {
	Current() NativeForeground
}

type NativeScannerView interface {
	StartCamera()
	StopCamera()
}

// ViewSlot is the host layout container a scanner view fills.
type ViewSlot interface {
	Fill(v NativeScannerView)
	Clear()
}

// EventSink is the host event emitter. IsActive must report false once the
// host runtime has been torn down. Emit must not call back into this package
// before returning; post follow-up commands to another thread.
type EventSink interface {
	IsActive() bool
	Emit(name string, payloadJSON string) error
}

// UIThread posts tasks to the main thread.
type UIThread interface {
	Post(task *Task)
}

type SuccessCallback interface {
	Invoke()
}

type ErrorCallback interface {
	Invoke(message string)
}

// Listeners below are implemented in Go and handed to native code.

type InitListener interface {
	OnLoadSuccess()
	OnLoadFailed(message string)
	OnEngineError(message string)
}

// ScannerListener.OnMarkerDetect reports success when errMsg is empty.
type ScannerListener interface {
	OnMarkerDetect(markerType string, data string, errMsg string)
}

// ContentListener.OnMarkerContent takes an empty dataJSON for no content.
type ContentListener interface {
	OnMarkerContent(markerID string, dataJSON string)
}

type ModeListener interface {
	OnModeChange(oldMode string, newMode string)
}

// Task is a unit of work native code runs on the UI thread.
type Task struct {
	fn func()
}

func (t *Task) Run() {
	if t != nil && t.fn != nil {
		t.fn()
	}
}
