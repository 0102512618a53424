// Package simulator is an in-memory scanning engine. It records every call it
// receives and lets the caller fire the callbacks a real engine would.
package simulator

import (
	"encoding/json"
	"fmt"
	"maps"
	"sync"

	"github.com/markerbridge/markerbridge/internal/engine"
)

var _ engine.Engine = (*Engine)(nil)

type Engine struct {
	// AutoInit completes every Init asynchronously, the way a reachable
	// backend would.
	AutoInit bool

	mu sync.Mutex

	initialized bool
	initCalls   []string
	initLn      engine.InitListener

	scanner engine.ScannerListener
	content engine.ContentListener
	modeLn  engine.ModeListener

	mode          engine.Mode
	userInfo      map[string]string
	scannerParams map[string]string
	profile       map[string]any
	adLabel       string
	appUserID     string
	logoVisible   bool
	scanning      bool
	performed     []string
	troubleshoots int
	views         []*View
	calls         int
}

func New() *Engine {
	return &Engine{
		mode:          engine.ModeNormal,
		userInfo:      map[string]string{},
		scannerParams: map[string]string{},
		profile:       map[string]any{},
		logoVisible:   true,
	}
}

func (e *Engine) record() {
	e.calls++
}

// Calls returns how many engine methods have been invoked.
func (e *Engine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

func (e *Engine) Init(apiKey string, l engine.InitListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.initCalls = append(e.initCalls, apiKey)
	e.initLn = l
	if e.AutoInit {
		go e.CompleteInit()
	}
}

// InitCalls returns the credentials passed to Init, in order.
func (e *Engine) InitCalls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.initCalls...)
}

// CompleteInit reports a successful load to the last init listener.
func (e *Engine) CompleteInit() {
	e.mu.Lock()
	e.initialized = true
	l := e.initLn
	e.mu.Unlock()
	if l != nil {
		l.OnLoadSuccess()
	}
}

// FailInit reports a failed load to the last init listener.
func (e *Engine) FailInit(message string) {
	e.mu.Lock()
	l := e.initLn
	e.mu.Unlock()
	if l != nil {
		l.OnLoadFailed(message)
	}
}

// RaiseError reports an engine-level error through the init listener.
func (e *Engine) RaiseError(err error) {
	e.mu.Lock()
	l := e.initLn
	e.mu.Unlock()
	if l != nil {
		l.OnEngineError(err)
	}
}

func (e *Engine) SetScannerListener(l engine.ScannerListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.scanner = l
}

func (e *Engine) SetContentListener(l engine.ContentListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.content = l
}

func (e *Engine) SetModeListener(l engine.ModeListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.modeLn = l
}

// Listeners returns the currently registered listeners.
func (e *Engine) Listeners() (engine.ScannerListener, engine.ContentListener, engine.ModeListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scanner, e.content, e.modeLn
}

// Detect fires a marker detection attempt. A non-empty errMsg reports failure.
func (e *Engine) Detect(markerType, data, errMsg string) {
	e.mu.Lock()
	l := e.scanner
	e.mu.Unlock()
	if l == nil {
		return
	}
	var err error
	if errMsg != "" {
		err = fmt.Errorf("%s", errMsg)
	}
	l.OnMarkerDetect(markerType, data, err)
}

// Resolve fires resolved content for markerID. A nil data reports no content.
func (e *Engine) Resolve(markerID string, data map[string]any) error {
	e.mu.Lock()
	l := e.content
	e.mu.Unlock()
	if l == nil {
		return nil
	}
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal content: %w", err)
		}
		raw = b
	}
	l.OnMarkerContent(markerID, raw)
	return nil
}

func (e *Engine) SetUserInfo(info map[string]string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	maps.Copy(e.userInfo, info)
}

func (e *Engine) UserInfo() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.userInfo)
}

func (e *Engine) SetScannerParams(params map[string]string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	maps.Copy(e.scannerParams, params)
}

func (e *Engine) AddScannerParam(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.scannerParams[key] = value
}

func (e *Engine) ScannerParams() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.scannerParams)
}

func (e *Engine) SetDynamicProfile(profile map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	maps.Copy(e.profile, profile)
}

func (e *Engine) SetDynamicProfileValue(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.profile[key] = value
}

func (e *Engine) DynamicProfile() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.profile)
}

func (e *Engine) SetCustomAdLabel(label string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.adLabel = label
}

func (e *Engine) SetAppUserID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.appUserID = id
}

func (e *Engine) AppUserID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.appUserID
}

func (e *Engine) SetLogoVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.logoVisible = visible
}

func (e *Engine) LogoVisible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.logoVisible
}

func (e *Engine) StartScanning() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.scanning = true
}

func (e *Engine) StopScanning() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.scanning = false
}

func (e *Engine) Scanning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scanning
}

func (e *Engine) PerformMarker(_ engine.Foreground, markerID string, _ map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	e.performed = append(e.performed, markerID)
}

func (e *Engine) Performed() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.performed...)
}

func (e *Engine) StartTroubleshoot(fg engine.Foreground) {
	e.mu.Lock()
	e.record()
	e.troubleshoots++
	e.mu.Unlock()
	e.SetMode(fg, engine.ModeTroubleshoot)
}

func (e *Engine) SetMode(_ engine.Foreground, m engine.Mode) {
	e.mu.Lock()
	e.record()
	old := e.mode
	e.mode = m
	l := e.modeLn
	e.mu.Unlock()
	if l != nil {
		l.OnModeChange(old, m)
	}
}

func (e *Engine) Mode() engine.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Engine) NewScannerView() engine.ScannerView {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record()
	v := &View{running: true}
	e.views = append(e.views, v)
	return v
}

// Views returns every scanner view the engine has constructed.
func (e *Engine) Views() []*View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*View(nil), e.views...)
}
