package multiplexer

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markerbridge/markerbridge/internal/engine"
	"github.com/markerbridge/markerbridge/internal/engine/simulator"
	"github.com/markerbridge/markerbridge/internal/events"
)

func setup(t *testing.T) (*Multiplexer, *simulator.Engine, *events.Recorder) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ch := events.NewChannel(logger)
	rec := &events.Recorder{}
	ch.Attach(rec)
	eng := simulator.New()
	return New(ch, eng, logger), eng, rec
}

func TestMultiplexer_Install(t *testing.T) {
	m, eng, _ := setup(t)
	assert.Empty(t, m.Installed())

	m.Install()
	calls := eng.Calls()
	m.Install()

	assert.Equal(t, calls, eng.Calls(), "second install must not touch the engine")
	assert.Equal(t, []Category{CategoryContent, CategoryMode, CategoryScanner}, m.Installed())

	scanner, content, mode := eng.Listeners()
	assert.Same(t, m, scanner)
	assert.Same(t, m, content)
	assert.Same(t, m, mode)
}

func TestMultiplexer_MarkerDetect(t *testing.T) {
	t.Run("success carries data", func(t *testing.T) {
		m, _, rec := setup(t)
		m.OnMarkerDetect("qr", "payload", nil)
		assert.Equal(t, []events.Event{{Name: events.DetectSuccess, Payload: events.Payload{"data": "payload"}}}, rec.Events())
	})

	t.Run("missing data becomes null", func(t *testing.T) {
		m, _, rec := setup(t)
		m.OnMarkerDetect("qr", "", nil)
		assert.Equal(t, "null", rec.Events()[0].Payload["data"])
	})

	t.Run("failure carries only error", func(t *testing.T) {
		m, _, rec := setup(t)
		m.OnMarkerDetect("qr", "partial", errors.New("blurry"))
		evs := rec.Events()
		require.Len(t, evs, 1)
		assert.Equal(t, events.DetectError, evs[0].Name)
		assert.Equal(t, events.Payload{"error": "blurry"}, evs[0].Payload)
	})
}

func TestMultiplexer_MarkerContent(t *testing.T) {
	cases := []struct {
		name string
		data json.RawMessage
		want string
	}{
		{"object", json.RawMessage(`{"title":"x"}`), `{"title":"x"}`},
		{"absent", nil, "{}"},
		{"json null", json.RawMessage("null"), "{}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _, rec := setup(t)
			m.OnMarkerContent("m-1", tc.data)
			evs := rec.Named(events.ContentResolved)
			require.Len(t, evs, 1)
			assert.Equal(t, "m-1", evs[0].Payload["markerId"])
			assert.Equal(t, tc.want, evs[0].Payload["data"])

			var parsed map[string]any
			assert.NoError(t, json.Unmarshal([]byte(evs[0].Payload["data"]), &parsed))
		})
	}
}

func TestMultiplexer_ModeChangeAndErrors(t *testing.T) {
	m, eng, rec := setup(t)
	m.Install()

	eng.SetMode(nil, engine.ModeTroubleshoot)
	eng.SetMode(nil, engine.ModeNormal)
	m.OnEngineError(errors.New("camera unavailable"))
	m.OnEngineError(nil)

	modes := rec.Named(events.ModeChanged)
	require.Len(t, modes, 2)
	assert.Equal(t, events.Payload{"oldMode": "Normal", "newMode": "Troubleshoot"}, modes[0].Payload)
	assert.Equal(t, events.Payload{"oldMode": "Troubleshoot", "newMode": "Normal"}, modes[1].Payload)

	errs := rec.Named(events.EngineError)
	require.Len(t, errs, 2)
	assert.Equal(t, "camera unavailable", errs[0].Payload["error"])
	assert.Equal(t, "unknown engine error", errs[1].Payload["error"])
}
