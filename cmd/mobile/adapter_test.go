package mobile

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markerbridge/markerbridge/internal/engine"
	"github.com/markerbridge/markerbridge/internal/events"
)

type recordingListener struct {
	markerType string
	data       string
	err        error
	markerID   string
	content    json.RawMessage
	oldMode    engine.Mode
	newMode    engine.Mode
}

func (r *recordingListener) OnMarkerDetect(markerType, data string, err error) {
	r.markerType, r.data, r.err = markerType, data, err
}

func (r *recordingListener) OnMarkerContent(markerID string, data json.RawMessage) {
	r.markerID, r.content = markerID, data
}

func (r *recordingListener) OnModeChange(oldMode, newMode engine.Mode) {
	r.oldMode, r.newMode = oldMode, newMode
}

func TestScannerAdapter(t *testing.T) {
	r := &recordingListener{}
	a := &scannerAdapter{l: r}

	a.OnMarkerDetect("QR", "abc", "")
	assert.Equal(t, "QR", r.markerType)
	assert.Equal(t, "abc", r.data)
	assert.NoError(t, r.err)

	a.OnMarkerDetect("QR", "", "blurry")
	assert.EqualError(t, r.err, "blurry")
}

func TestContentAdapter(t *testing.T) {
	r := &recordingListener{}
	a := &contentAdapter{l: r}

	a.OnMarkerContent("m1", `{"title":"x"}`)
	assert.Equal(t, "m1", r.markerID)
	assert.JSONEq(t, `{"title":"x"}`, string(r.content))

	a.OnMarkerContent("m2", "")
	assert.Nil(t, r.content)

	a.OnMarkerContent("m3", "not json")
	assert.JSONEq(t, `{"value":"not json"}`, string(r.content))
}

func TestModeAdapter(t *testing.T) {
	r := &recordingListener{}
	(&modeAdapter{l: r}).OnModeChange("Normal", "Troubleshoot")
	assert.Equal(t, engine.ModeNormal, r.oldMode)
	assert.Equal(t, engine.ModeTroubleshoot, r.newMode)
}

func TestNativeEngineEncodesMaps(t *testing.T) {
	fe := &fakeEngine{}
	e := &nativeEngine{native: fe, logger: slog.Default()}

	e.SetUserInfo(map[string]string{"name": "a"})
	e.SetDynamicProfile(map[string]any{"age": 3})

	assert.JSONEq(t, `{"name":"a"}`, fe.userInfo)
	assert.JSONEq(t, `{"age":3}`, fe.profile)
}

func TestNativeEngineUnwrapsForeground(t *testing.T) {
	fe := &fakeEngine{}
	e := &nativeEngine{native: fe, logger: slog.Default()}

	e.PerformMarker(&foreground{native: newFakeForeground()}, "m1", map[string]any{})
	require.Len(t, fe.performed, 1)
	assert.Equal(t, "m1 {}", fe.performed[0])

	e.PerformMarker(nil, "m2", map[string]any{})
	assert.Len(t, fe.performed, 1)
}

func TestForegroundAttachRejectsForeignView(t *testing.T) {
	nfg := newFakeForeground()
	fg := &foreground{native: nfg}

	err := fg.AttachView("t", struct{ engine.ScannerView }{})
	assert.ErrorIs(t, err, errForeignValue)

	v := &fakeView{}
	require.NoError(t, fg.AttachView("t", &scannerView{native: v}))
	assert.Same(t, v, nfg.attached["t"])
}

func TestLookupForeground(t *testing.T) {
	_, err := lookupForeground(nil)()
	assert.ErrorIs(t, err, engine.ErrNoForeground)

	src := &fakeSource{}
	_, err = lookupForeground(src)()
	assert.ErrorIs(t, err, engine.ErrNoForeground)

	src.set(newFakeForeground())
	fg, err := lookupForeground(src)()
	require.NoError(t, err)
	assert.NotNil(t, fg)
}

func TestSinkConsumer(t *testing.T) {
	sink := &fakeSink{active: true}
	c := &sinkConsumer{sink: sink}

	assert.True(t, c.Live())
	require.NoError(t, c.Deliver(events.DetectSuccess, events.Payload{"data": "x"}))
	require.NoError(t, c.Deliver(events.ScannerClosed, nil))

	got := sink.all()
	require.Len(t, got, 2)
	assert.JSONEq(t, `{"data":"x"}`, got[0].payload)
	assert.Equal(t, "", got[1].payload)
}

func TestInitAdapterWrapsEngineError(t *testing.T) {
	var got error
	l := &initAdapter{l: initFuncs{onError: func(err error) { got = err }}}
	l.OnEngineError("boom")
	assert.EqualError(t, got, "boom")
}

type initFuncs struct {
	onError func(error)
}

func (initFuncs) OnLoadSuccess()            {}
func (initFuncs) OnLoadFailed(string)       {}
func (f initFuncs) OnEngineError(err error) { f.onError(err) }
