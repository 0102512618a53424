package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markerbridge/markerbridge/internal/bridge"
	"github.com/markerbridge/markerbridge/internal/engine"
	"github.com/markerbridge/markerbridge/internal/engine/simulator"
	"github.com/markerbridge/markerbridge/internal/handlers"
	"github.com/markerbridge/markerbridge/internal/session"
	"github.com/markerbridge/markerbridge/internal/ws"
)

type fixture struct {
	eng   *simulator.Engine
	fg    *simulator.Foreground
	slots map[string]*simulator.Slot
	mux   http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := simulator.New()
	fg := simulator.NewForeground()
	presence := simulator.NewPresence(fg)

	b := bridge.New(bridge.Options{
		Engine:     eng,
		Foreground: presence.Lookup,
		Session:    &session.Session{},
		Logger:     logger,
	})
	hub := ws.NewHub(logger)
	b.Attach(hub)
	fg.OnResult = b.OnActivityResult

	f := &fixture{eng: eng, fg: fg, slots: map[string]*simulator.Slot{}}
	slots := func(tag string) engine.Slot {
		s := &simulator.Slot{}
		f.slots[tag] = s
		return s
	}
	h := handlers.New(b, hub, func() string { return "stored-key" }, logger)
	f.mux = New(h, slots, nil, logger)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Init(t *testing.T) {
	t.Run("explicit key", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/init", `{"apiKey":"k1","callbackId":"c1"}`)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, []string{"k1"}, f.eng.InitCalls())
	})

	t.Run("falls back to stored key", func(t *testing.T) {
		f := newFixture(t)
		f.do(t, http.MethodPost, "/api/init", `{}`)
		assert.Equal(t, []string{"stored-key"}, f.eng.InitCalls())
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/init", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, f.eng.InitCalls())
	})
}

func TestRouter_Commands(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusAccepted, f.do(t, http.MethodPut, "/api/scanner-params", `{"beep":"on"}`).Code)
	assert.Equal(t, http.StatusAccepted, f.do(t, http.MethodPut, "/api/scanner-params/vibrate", `{"value":"off"}`).Code)
	assert.Equal(t, http.StatusAccepted, f.do(t, http.MethodPut, "/api/env", `{"env":"staging"}`).Code)
	assert.Equal(t, map[string]string{"beep": "on", "vibrate": "off"}, f.eng.ScannerParams())

	f.do(t, http.MethodPut, "/api/dynamic-profile", `{"tier":"gold"}`)
	f.do(t, http.MethodPut, "/api/dynamic-profile/lang", `{"value":"de"}`)
	assert.Equal(t, map[string]any{"tier": "gold", "lang": "de"}, f.eng.DynamicProfile())

	f.do(t, http.MethodPut, "/api/logo", `{"visible":false}`)
	assert.False(t, f.eng.LogoVisible())

	f.do(t, http.MethodPut, "/api/app-user-id", `{"value":"u-9"}`)
	assert.Equal(t, "u-9", f.eng.AppUserID())

	f.do(t, http.MethodPost, "/api/markers/m-3/perform", "")
	assert.Equal(t, []string{"m-3"}, f.eng.Performed())

	f.do(t, http.MethodPost, "/api/scanner/launch", "")
	assert.Equal(t, []int{engine.ScannerRequestCode}, f.fg.Started())
	f.do(t, http.MethodPost, "/api/scanner/close", "")
	assert.Equal(t, []int{engine.ScannerRequestCode}, f.fg.Finished())

	f.do(t, http.MethodPost, "/api/scanning/start", "")
	assert.True(t, f.eng.Scanning())
}

func TestRouter_Mode(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPut, "/api/mode", `{"mode":"Troubleshoot"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/mode", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Troubleshoot", body["mode"])
}

func TestRouter_Views(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodPost, "/api/views/main", "")
	require.Len(t, f.eng.Views(), 1)
	assert.NotNil(t, f.slots["main"].View())

	f.do(t, http.MethodPut, "/api/views/main/camera", `{"enabled":false}`)
	f.do(t, http.MethodPut, "/api/views/main/camera", `{"enabled":false}`)
	starts, stops := f.eng.Views()[0].Counts()
	assert.Zero(t, starts)
	assert.Equal(t, 1, stops)

	f.do(t, http.MethodDelete, "/api/views/main", "")
	assert.Nil(t, f.slots["main"].View())
}

func TestRouter_MarkerQR(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/markers/m-1/qr.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestRouter_Metrics(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPut, "/api/user-info", `{"name":"x"}`)

	rec := f.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "markerbridge_commands_dropped_total")
}
