package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/markerbridge/markerbridge/internal/credentials"
)

func runKey(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"key"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestKeyCommand(t *testing.T) {
	keyring.MockInit()

	out, err := runKey(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "no api key stored")

	out, err = runKey(t, "set", "k-42")
	require.NoError(t, err)
	assert.Contains(t, out, "api key stored")

	got, err := credentials.LoadAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "k-42", got)

	out, err = runKey(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "api key stored")

	_, err = runKey(t, "delete")
	require.NoError(t, err)
	_, err = credentials.LoadAPIKey()
	assert.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestKeyCommand_SetRequiresValue(t *testing.T) {
	keyring.MockInit()

	_, err := runKey(t, "set")
	assert.Error(t, err)

	_, err = runKey(t, "set", "")
	assert.Error(t, err)
}
