package mobile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/markerbridge/markerbridge/internal/engine"
	"github.com/markerbridge/markerbridge/internal/events"
)

var errForeignValue = errors.New("mobile: value was not created by this bridge")

var _ engine.Engine = (*nativeEngine)(nil)

// nativeEngine adapts a NativeEngine to engine.Engine.
type nativeEngine struct {
	native NativeEngine
	logger *slog.Logger
}

func (e *nativeEngine) check(call string, err error) {
	if err != nil {
		e.logger.Error("native call failed", "call", call, "err", err)
	}
}

func (e *nativeEngine) encode(call string, v any) (string, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		e.logger.Error("encode native argument", "call", call, "err", err)
		return "", false
	}
	return string(data), true
}

func (e *nativeEngine) Initialized() bool { return e.native.IsInitialized() }

func (e *nativeEngine) Init(apiKey string, l engine.InitListener) {
	e.native.Init(apiKey, &initAdapter{l: l})
}

func (e *nativeEngine) SetScannerListener(l engine.ScannerListener) {
	e.native.SetScannerListener(&scannerAdapter{l: l})
}

func (e *nativeEngine) SetContentListener(l engine.ContentListener) {
	e.native.SetContentListener(&contentAdapter{l: l})
}

func (e *nativeEngine) SetModeListener(l engine.ModeListener) {
	e.native.SetModeListener(&modeAdapter{l: l})
}

func (e *nativeEngine) SetUserInfo(info map[string]string) {
	if s, ok := e.encode("SetUserInfo", info); ok {
		e.check("SetUserInfo", e.native.SetUserInfo(s))
	}
}

func (e *nativeEngine) SetScannerParams(params map[string]string) {
	if s, ok := e.encode("SetScannerParams", params); ok {
		e.check("SetScannerParams", e.native.SetScannerParams(s))
	}
}

func (e *nativeEngine) AddScannerParam(key, value string) {
	e.check("AddScannerParam", e.native.AddScannerParam(key, value))
}

func (e *nativeEngine) SetDynamicProfile(profile map[string]any) {
	if s, ok := e.encode("SetDynamicProfile", profile); ok {
		e.check("SetDynamicProfile", e.native.SetDynamicProfile(s))
	}
}

func (e *nativeEngine) SetDynamicProfileValue(key, value string) {
	e.check("SetDynamicProfileValue", e.native.SetDynamicProfileValue(key, value))
}

func (e *nativeEngine) SetCustomAdLabel(label string) {
	e.check("SetCustomAdLabel", e.native.SetCustomAdLabel(label))
}

func (e *nativeEngine) SetAppUserID(id string) {
	e.check("SetAppUserId", e.native.SetAppUserId(id))
}

func (e *nativeEngine) SetLogoVisible(visible bool) {
	e.check("SetLogoVisible", e.native.SetLogoVisible(visible))
}

func (e *nativeEngine) StartScanning() { e.check("StartScanning", e.native.StartScanning()) }

func (e *nativeEngine) StopScanning() { e.check("StopScanning", e.native.StopScanning()) }

func (e *nativeEngine) PerformMarker(fg engine.Foreground, markerID string, props map[string]any) {
	nfg, err := unwrapForeground(fg)
	if err != nil {
		e.check("PerformMarker", err)
		return
	}
	if s, ok := e.encode("PerformMarker", props); ok {
		e.check("PerformMarker", e.native.PerformMarker(nfg, markerID, s))
	}
}

func (e *nativeEngine) StartTroubleshoot(fg engine.Foreground) {
	nfg, err := unwrapForeground(fg)
	if err != nil {
		e.check("StartTroubleshoot", err)
		return
	}
	e.check("StartTroubleshoot", e.native.StartTroubleshoot(nfg))
}

func (e *nativeEngine) SetMode(fg engine.Foreground, m engine.Mode) {
	nfg, err := unwrapForeground(fg)
	if err != nil {
		e.check("SetMode", err)
		return
	}
	e.check("SetMode", e.native.SetMode(nfg, m.String()))
}

func (e *nativeEngine) Mode() engine.Mode { return engine.Mode(e.native.GetMode()) }

func (e *nativeEngine) NewScannerView() engine.ScannerView {
	return &scannerView{native: e.native.NewScannerView()}
}

type initAdapter struct{ l engine.InitListener }

func (a *initAdapter) OnLoadSuccess()              { a.l.OnLoadSuccess() }
func (a *initAdapter) OnLoadFailed(message string) { a.l.OnLoadFailed(message) }
func (a *initAdapter) OnEngineError(message string) {
	a.l.OnEngineError(errors.New(message))
}

type scannerAdapter struct{ l engine.ScannerListener }

func (a *scannerAdapter) OnMarkerDetect(markerType, data, errMsg string) {
	var err error
	if errMsg != "" {
		err = errors.New(errMsg)
	}
	a.l.OnMarkerDetect(markerType, data, err)
}

type contentAdapter struct{ l engine.ContentListener }

func (a *contentAdapter) OnMarkerContent(markerID, dataJSON string) {
	var raw json.RawMessage
	switch {
	case dataJSON == "":
	case json.Valid([]byte(dataJSON)):
		raw = json.RawMessage(dataJSON)
	default:
		raw, _ = json.Marshal(map[string]string{"value": dataJSON})
	}
	a.l.OnMarkerContent(markerID, raw)
}

type modeAdapter struct{ l engine.ModeListener }

func (a *modeAdapter) OnModeChange(oldMode, newMode string) {
	a.l.OnModeChange(engine.Mode(oldMode), engine.Mode(newMode))
}

type scannerView struct{ native NativeScannerView }

func (v *scannerView) StartCamera() { v.native.StartCamera() }
func (v *scannerView) StopCamera()  { v.native.StopCamera() }

type foreground struct{ native NativeForeground }

func unwrapForeground(fg engine.Foreground) (NativeForeground, error) {
	f, ok := fg.(*foreground)
	if !ok {
		return nil, fmt.Errorf("foreground: %w", errForeignValue)
	}
	return f.native, nil
}

func (f *foreground) StartScanner(requestCode int) error {
	return f.native.StartScanner(requestCode)
}

func (f *foreground) FinishScanner(requestCode int) error {
	return f.native.FinishScanner(requestCode)
}

func (f *foreground) AttachView(tag string, v engine.ScannerView) error {
	sv, ok := v.(*scannerView)
	if !ok {
		return fmt.Errorf("attach view: %w", errForeignValue)
	}
	return f.native.AttachView(tag, sv.native)
}

func (f *foreground) DetachView(tag string) error {
	return f.native.DetachView(tag)
}

func lookupForeground(src ForegroundSource) engine.ForegroundFunc {
	return func() (engine.Foreground, error) {
		if src == nil {
			return nil, engine.ErrNoForeground
		}
		fg := src.Current()
		if fg == nil {
			return nil, engine.ErrNoForeground
		}
		return &foreground{native: fg}, nil
	}
}

type slot struct{ native ViewSlot }

func (s *slot) Fill(v engine.ScannerView) {
	if sv, ok := v.(*scannerView); ok {
		s.native.Fill(sv.native)
	}
}

func (s *slot) Clear() { s.native.Clear() }

var _ events.Consumer = (*sinkConsumer)(nil)

type sinkConsumer struct{ sink EventSink }

func (c *sinkConsumer) Live() bool { return c.sink.IsActive() }

func (c *sinkConsumer) Deliver(name string, payload events.Payload) error {
	var body string
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", name, err)
		}
		body = string(data)
	}
	return c.sink.Emit(name, body)
}

type uiDispatcher struct{ ui UIThread }

func (d uiDispatcher) Dispatch(f func()) {
	d.ui.Post(&Task{fn: f})
}
