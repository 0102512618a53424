package bridge

import (
	"maps"

	"github.com/markerbridge/markerbridge/internal/callback"
	"github.com/markerbridge/markerbridge/internal/engine"
)

// Initialize starts the engine with apiKey. When the engine is already ready
// onSuccess runs right away and the engine is not contacted.
func (b *Bridge) Initialize(apiKey string, onSuccess func(), onError func(message string)) {
	b.logger.Info("initialize",
		"success", onSuccess != nil,
		"error", onError != nil,
	)

	if b.session.Ready() {
		b.logger.Info("already initialized, resolving success")
		if onSuccess != nil {
			onSuccess()
		}
		return
	}
	if b.engine.Initialized() {
		b.session.MarkReady()
		b.logger.Info("engine initialized elsewhere, resolving success")
		if onSuccess != nil {
			onSuccess()
		}
		return
	}

	b.session.Begin()
	handle := callback.New(onSuccess, onError, b.mux, b.logger)
	listener := initListener{bridge: b, handle: handle}

	b.dispatcher.Dispatch(func() {
		b.engine.Init(apiKey, listener)
	})
}

func (b *Bridge) LaunchScanner() {
	b.onForeground("launchScanner", func(fg engine.Foreground) {
		if err := b.correlator.Launch(fg); err != nil {
			b.logger.Error("launch scanner failed", "err", err)
		}
	})
}

func (b *Bridge) CloseScanner() {
	b.onForeground("closeScanner", func(fg engine.Foreground) {
		if err := b.correlator.Close(fg); err != nil {
			b.logger.Error("close scanner failed", "err", err)
		}
	})
}

func (b *Bridge) SetUserInfo(info map[string]string) {
	if !b.ready() {
		b.drop("setUserInfo", reasonNotInitialized, engine.ErrNotInitialized)
		return
	}
	if info == nil {
		b.drop("setUserInfo", reasonInvalidInput, nil)
		return
	}
	b.engine.SetUserInfo(maps.Clone(info))
}

func (b *Bridge) SetScannerParams(params map[string]string) {
	if params == nil {
		b.drop("setScannerParams", reasonInvalidInput, nil)
		return
	}
	b.engine.SetScannerParams(maps.Clone(params))
}

func (b *Bridge) AddScannerParam(key, value string) {
	b.engine.AddScannerParam(key, value)
}

func (b *Bridge) SetDynamicProfile(profile map[string]any) {
	if profile == nil {
		b.drop("setDynamicProfile", reasonInvalidInput, nil)
		return
	}
	b.engine.SetDynamicProfile(maps.Clone(profile))
}

func (b *Bridge) SetDynamicProfileValue(key, value string) {
	b.engine.SetDynamicProfileValue(key, value)
}

func (b *Bridge) SetCustomAdLabel(label string) {
	b.engine.SetCustomAdLabel(label)
}

func (b *Bridge) SetAppUserID(id string) {
	b.engine.SetAppUserID(id)
}

func (b *Bridge) SetLogoVisible(visible bool) {
	b.engine.SetLogoVisible(visible)
}

func (b *Bridge) StartScanning() {
	b.engine.StartScanning()
}

func (b *Bridge) StopScanning() {
	b.engine.StopScanning()
}

func (b *Bridge) PerformMarker(markerID string, props map[string]any) {
	if props == nil {
		props = map[string]any{}
	}
	b.onForeground("performMarker", func(fg engine.Foreground) {
		b.engine.PerformMarker(fg, markerID, props)
	})
}

func (b *Bridge) StartTroubleshoot() {
	b.onForeground("startTroubleshoot", func(fg engine.Foreground) {
		b.engine.StartTroubleshoot(fg)
	})
}

func (b *Bridge) SetMode(m engine.Mode) {
	if m != engine.ModeNormal && m != engine.ModeTroubleshoot {
		b.drop("setMode", reasonInvalidInput, nil)
		return
	}
	b.onForeground("setMode", func(fg engine.Foreground) {
		b.engine.SetMode(fg, m)
	})
}

func (b *Bridge) SetTroubleshootMode() { b.SetMode(engine.ModeTroubleshoot) }

func (b *Bridge) SetNormalMode() { b.SetMode(engine.ModeNormal) }

// Mode reads the current scanner mode synchronously.
func (b *Bridge) Mode() engine.Mode {
	return b.engine.Mode()
}

// SetEnvironment selects one of DEV, QA or PROD. An unknown name leaves the
// engine configuration untouched.
func (b *Bridge) SetEnvironment(name string) {
	env, err := engine.ParseEnv(name)
	if err != nil {
		b.drop("setEnvironment", reasonInvalidInput, err)
		return
	}
	b.logger.Info("environment selected", "env", env)
	b.engine.SetScannerParams(env.ScannerParams())
}

func (b *Bridge) MountView(tag string, slot engine.Slot) {
	if b.closed.Load() {
		b.drop("mountView", reasonClosed, nil)
		return
	}
	b.dispatcher.Dispatch(func() { b.views.Mount(tag, slot) })
}

func (b *Bridge) UnmountView(tag string) {
	b.dispatcher.Dispatch(func() { b.views.Unmount(tag) })
}

func (b *Bridge) SetCameraEnabled(tag string, enabled bool) {
	b.dispatcher.Dispatch(func() { b.views.SetCameraEnabled(tag, enabled) })
}
