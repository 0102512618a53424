package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		cases := map[string]Env{
			"DEV":    EnvDev,
			"qa":     EnvQA,
			" Prod ": EnvProd,
		}
		for in, want := range cases {
			got, err := ParseEnv(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseEnv("staging")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownEnv))
	})
}

func TestEnv_ScannerParams(t *testing.T) {
	assert.Equal(t, map[string]string{
		"webad_env":               "3",
		"scanner_QR_code_enabled": "false",
	}, EnvDev.ScannerParams())
	assert.Equal(t, "0", EnvQA.ScannerParams()["webad_env"])
	assert.Equal(t, "PROD", EnvProd.String())
}

func TestRegistry(t *testing.T) {
	Register(nil)
	_, err := Safe()
	assert.ErrorIs(t, err, ErrNoEngine)
}
