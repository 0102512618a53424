package mobile

import (
	"sync"
)

type fakeEngine struct {
	mu sync.Mutex

	initialized bool
	autoLoad    bool
	initCalls   int
	initL       InitListener
	scannerL    ScannerListener
	contentL    ContentListener
	modeL       ModeListener

	userInfo  string
	params    string
	profile   string
	performed []string
	mode      string
	views     []*fakeView
}

func (e *fakeEngine) IsInitialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

func (e *fakeEngine) Init(apiKey string, l InitListener) {
	e.mu.Lock()
	e.initCalls++
	e.initL = l
	auto := e.autoLoad
	if auto {
		e.initialized = true
	}
	e.mu.Unlock()
	if auto {
		l.OnLoadSuccess()
	}
}

func (e *fakeEngine) SetScannerListener(l ScannerListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scannerL = l
}

func (e *fakeEngine) SetContentListener(l ContentListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.contentL = l
}

func (e *fakeEngine) SetModeListener(l ModeListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modeL = l
}

func (e *fakeEngine) SetUserInfo(infoJSON string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.userInfo = infoJSON
	return nil
}

func (e *fakeEngine) SetScannerParams(paramsJSON string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = paramsJSON
	return nil
}

func (e *fakeEngine) AddScannerParam(string, string) error { return nil }

func (e *fakeEngine) SetDynamicProfile(profileJSON string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile = profileJSON
	return nil
}

func (e *fakeEngine) SetDynamicProfileValue(string, string) error { return nil }
func (e *fakeEngine) SetCustomAdLabel(string) error               { return nil }
func (e *fakeEngine) SetAppUserId(string) error                   { return nil }
func (e *fakeEngine) SetLogoVisible(bool) error                   { return nil }
func (e *fakeEngine) StartScanning() error                        { return nil }
func (e *fakeEngine) StopScanning() error                         { return nil }

func (e *fakeEngine) PerformMarker(_ NativeForeground, markerID, propsJSON string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.performed = append(e.performed, markerID+" "+propsJSON)
	return nil
}

func (e *fakeEngine) StartTroubleshoot(NativeForeground) error { return nil }

func (e *fakeEngine) SetMode(_ NativeForeground, mode string) error {
	e.mu.Lock()
	old := e.mode
	e.mode = mode
	l := e.modeL
	e.mu.Unlock()
	if l != nil {
		l.OnModeChange(old, mode)
	}
	return nil
}

func (e *fakeEngine) GetMode() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *fakeEngine) NewScannerView() NativeScannerView {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := &fakeView{}
	e.views = append(e.views, v)
	return v
}

func (e *fakeEngine) listeners() (ScannerListener, ContentListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scannerL, e.contentL
}

type fakeView struct {
	mu     sync.Mutex
	starts int
	stops  int
}

func (v *fakeView) StartCamera() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.starts++
}

func (v *fakeView) StopCamera() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stops++
}

func (v *fakeView) counts() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.starts, v.stops
}

type fakeForeground struct {
	mu       sync.Mutex
	started  []int
	finished []int
	attached map[string]NativeScannerView
}

func newFakeForeground() *fakeForeground {
	return &fakeForeground{attached: map[string]NativeScannerView{}}
}

func (f *fakeForeground) StartScanner(code int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, code)
	return nil
}

func (f *fakeForeground) FinishScanner(code int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished = append(f.finished, code)
	return nil
}

func (f *fakeForeground) AttachView(tag string, v NativeScannerView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached[tag] = v
	return nil
}

func (f *fakeForeground) DetachView(tag string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.attached, tag)
	return nil
}

type fakeSource struct {
	mu sync.Mutex
	fg NativeForeground
}

func (s *fakeSource) Current() NativeForeground {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fg
}

func (s *fakeSource) set(fg NativeForeground) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fg = fg
}

type emitted struct {
	name    string
	payload string
}

type fakeSink struct {
	mu     sync.Mutex
	active bool
	events []emitted
}

func (s *fakeSink) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *fakeSink) Emit(name, payloadJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, emitted{name: name, payload: payloadJSON})
	return nil
}

func (s *fakeSink) all() []emitted {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]emitted(nil), s.events...)
}

type fakeSlot struct {
	mu     sync.Mutex
	filled NativeScannerView
}

func (s *fakeSlot) Fill(v NativeScannerView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filled = v
}

func (s *fakeSlot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filled = nil
}

func (s *fakeSlot) view() NativeScannerView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filled
}

type successFunc func()

func (f successFunc) Invoke() { f() }

type errorFunc func(string)

func (f errorFunc) Invoke(message string) { f(message) }
