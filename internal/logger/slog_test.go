package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNative_Log(t *testing.T) {
	var buf bytes.Buffer
	n := NewNative(New(&buf, slog.LevelDebug))

	n.Log("warning", "camera busy")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "camera busy", line["msg"])
	assert.Equal(t, "native", line["source"])
}
