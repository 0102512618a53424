package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Env selects the backend the engine resolves markers against.
type Env int

const (
	EnvQA   Env = 0
	EnvProd Env = 1
	EnvDev  Env = 3
)

var envNames = map[string]Env{
	"DEV":  EnvDev,
	"QA":   EnvQA,
	"PROD": EnvProd,
}

func ParseEnv(name string) (Env, error) {
	env, ok := envNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w %q, expected DEV/QA/PROD", ErrUnknownEnv, name)
	}
	return env, nil
}

func (e Env) String() string {
	for name, v := range envNames {
		if v == e {
			return name
		}
	}
	return "Env(" + strconv.Itoa(int(e)) + ")"
}

// ScannerParams returns the scanner parameters that select e.
func (e Env) ScannerParams() map[string]string {
	return map[string]string{
		"webad_env":               strconv.Itoa(int(e)),
		"scanner_QR_code_enabled": "false",
	}
}
