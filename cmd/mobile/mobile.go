// Package mobile is the gomobile-bound entry point for Android and iOS hosts.
package mobile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/markerbridge/markerbridge/internal/bridge"
	"github.com/markerbridge/markerbridge/internal/engine"
	"github.com/markerbridge/markerbridge/internal/logger"
)

var (
	mu      sync.Mutex
	started bool

	slogger = logger.NewText(os.Stdout, slog.LevelDebug)
	native  = logger.NewNative(slogger)

	foregrounds ForegroundSource
	dispatcher  bridge.Dispatcher = bridge.Immediate

	once sync.Once
	b    *bridge.Bridge
)

// RegisterEngine must be called before Start.
func RegisterEngine(e NativeEngine) {
	engine.Register(&nativeEngine{native: e, logger: slogger.With("component", "native-engine")})
}

// RegisterForeground sets the lookup for the current activity.
func RegisterForeground(src ForegroundSource) {
	mu.Lock()
	defer mu.Unlock()
	foregrounds = src
}

// RegisterUIThread routes view and engine-init work through the main thread.
// Without it work runs on the calling goroutine.
func RegisterUIThread(ui UIThread) {
	mu.Lock()
	defer mu.Unlock()
	if ui == nil {
		dispatcher = bridge.Immediate
		return
	}
	dispatcher = uiDispatcher{ui: ui}
}

// Log forwards a native log line into the bridge logger.
func Log(level, message string) {
	native.Log(level, message)
}

// Start attaches sink as the live event consumer. The bridge itself is
// created once per process and survives Stop.
func Start(sink EventSink) error {
	mu.Lock()
	defer mu.Unlock()

	if started {
		return fmt.Errorf("bridge already started")
	}

	eng, err := engine.Safe()
	if err != nil {
		return fmt.Errorf("call RegisterEngine before Start: %w", err)
	}

	once.Do(func() {
		b = bridge.New(bridge.Options{
			Engine:     eng,
			Foreground: currentForeground,
			Dispatcher: bridge.DispatchFunc(dispatch),
			Logger:     slogger,
		})
	})

	if sink != nil {
		b.Attach(&sinkConsumer{sink: sink})
	}
	started = true
	slogger.Info("mobile bridge started", "listeners", b.Listeners())
	return nil
}

// Stop detaches the event sink. Commands issued afterwards still reach the
// engine but no events are delivered until the next Start.
func Stop() {
	mu.Lock()
	defer mu.Unlock()

	if !started {
		return
	}
	b.Detach()
	started = false
	slogger.Info("mobile bridge stopped")
}

func currentForeground() (engine.Foreground, error) {
	mu.Lock()
	src := foregrounds
	mu.Unlock()
	return lookupForeground(src)()
}

func dispatch(f func()) {
	mu.Lock()
	d := dispatcher
	mu.Unlock()
	d.Dispatch(f)
}

func current() *bridge.Bridge {
	mu.Lock()
	defer mu.Unlock()
	if b == nil {
		slogger.Warn("command before Start")
	}
	return b
}

func decodeStrings(command, s string) (map[string]string, bool) {
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		slogger.Warn("command dropped", "command", command, "reason", "invalid_input", "err", err)
		return nil, false
	}
	return m, true
}

func decodeObject(command, s string) (map[string]any, bool) {
	if s == "" {
		return map[string]any{}, true
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		slogger.Warn("command dropped", "command", command, "reason", "invalid_input", "err", err)
		return nil, false
	}
	return m, true
}

// Init initializes the engine. Either callback may be nil.
func Init(apiKey string, success SuccessCallback, failure ErrorCallback) {
	br := current()
	if br == nil {
		if failure != nil {
			failure.Invoke(engine.ErrNoEngine.Error())
		}
		return
	}
	var onSuccess func()
	if success != nil {
		onSuccess = success.Invoke
	}
	var onError func(string)
	if failure != nil {
		onError = failure.Invoke
	}
	br.Initialize(apiKey, onSuccess, onError)
}

func LaunchScanner() {
	if br := current(); br != nil {
		br.LaunchScanner()
	}
}

func CloseScanner() {
	if br := current(); br != nil {
		br.CloseScanner()
	}
}

// OnActivityResult is forwarded from the host activity for every result.
func OnActivityResult(requestCode, resultCode int) {
	if br := current(); br != nil {
		br.OnActivityResult(requestCode, resultCode)
	}
}

// SetUserInfo takes a JSON object of string values.
func SetUserInfo(infoJSON string) {
	br := current()
	if br == nil {
		return
	}
	if info, ok := decodeStrings("setUserInfo", infoJSON); ok {
		br.SetUserInfo(info)
	}
}

// SetScannerParams takes a JSON object of string values.
func SetScannerParams(paramsJSON string) {
	br := current()
	if br == nil {
		return
	}
	if params, ok := decodeStrings("setScannerParams", paramsJSON); ok {
		br.SetScannerParams(params)
	}
}

func AddScannerParam(key, value string) {
	if br := current(); br != nil {
		br.AddScannerParam(key, value)
	}
}

// SetDynamicProfile takes a JSON object.
func SetDynamicProfile(profileJSON string) {
	br := current()
	if br == nil {
		return
	}
	if profile, ok := decodeObject("setDynamicProfile", profileJSON); ok {
		br.SetDynamicProfile(profile)
	}
}

func SetDynamicProfileValue(key, value string) {
	if br := current(); br != nil {
		br.SetDynamicProfileValue(key, value)
	}
}

func SetCustomAdLabel(label string) {
	if br := current(); br != nil {
		br.SetCustomAdLabel(label)
	}
}

func SetAppUserId(id string) {
	if br := current(); br != nil {
		br.SetAppUserID(id)
	}
}

func SetLogoVisible(visible bool) {
	if br := current(); br != nil {
		br.SetLogoVisible(visible)
	}
}

func StartScanning() {
	if br := current(); br != nil {
		br.StartScanning()
	}
}

func StopScanning() {
	if br := current(); br != nil {
		br.StopScanning()
	}
}

// PerformMarker takes optional JSON properties; "" means none.
func PerformMarker(markerID, propsJSON string) {
	br := current()
	if br == nil {
		return
	}
	if props, ok := decodeObject("performMarker", propsJSON); ok {
		br.PerformMarker(markerID, props)
	}
}

func StartTroubleshoot() {
	if br := current(); br != nil {
		br.StartTroubleshoot()
	}
}

func SetTroubleshootMode() {
	if br := current(); br != nil {
		br.SetTroubleshootMode()
	}
}

func SetNormalMode() {
	if br := current(); br != nil {
		br.SetNormalMode()
	}
}

// GetMode returns "" before Start.
func GetMode() string {
	br := current()
	if br == nil {
		return ""
	}
	return br.Mode().String()
}

// SetEnv takes DEV, QA or PROD.
func SetEnv(name string) {
	if br := current(); br != nil {
		br.SetEnvironment(name)
	}
}

func MountView(tag string, s ViewSlot) {
	br := current()
	if br == nil || s == nil {
		return
	}
	br.MountView(tag, &slot{native: s})
}

func UnmountView(tag string) {
	if br := current(); br != nil {
		br.UnmountView(tag)
	}
}

func SetCameraEnabled(tag string, enabled bool) {
	if br := current(); br != nil {
		br.SetCameraEnabled(tag, enabled)
	}
}
