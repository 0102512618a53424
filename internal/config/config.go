package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/markerbridge/markerbridge/internal/credentials"
	"github.com/markerbridge/markerbridge/internal/engine"
)

const (
	appName    = "markerbridge"
	configFile = "config.json"
)

type Config struct {
	Env           string            `json:"env"`
	ListenAddr    string            `json:"listen_addr"`
	LogLevel      string            `json:"log_level"`
	LogoVisible   bool              `json:"logo_visible"`
	ScannerParams map[string]string `json:"scanner_params,omitempty"`
	APIKey        string            `json:"-"`
}

func Default() Config {
	return Config{
		Env:         "PROD",
		ListenAddr:  "127.0.0.1:0",
		LogLevel:    "info",
		LogoVisible: true,
	}
}

// Load reads the config file from the user config dir, creating it with
// defaults on first run, then applies environment overrides. The API key
// comes from the keyring unless MARKERBRIDGE_API_KEY is set.
func Load() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(configDir, appName))
}

func LoadFrom(appDir string) (*Config, error) {
	path := filepath.Join(appDir, configFile)
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(appDir, 0700); err != nil {
			return nil, err
		}
		out, _ := json.MarshalIndent(cfg, "", "  ")
		_ = os.WriteFile(path, out, 0600)
		slog.Info("generated new config", "path", path)
	default:
		return nil, err
	}

	if key, err := credentials.LoadAPIKey(); err == nil {
		cfg.APIKey = key
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MARKERBRIDGE_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("MARKERBRIDGE_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("MARKERBRIDGE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MARKERBRIDGE_LOGO_VISIBLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogoVisible = b
		}
	}
	if v := os.Getenv("MARKERBRIDGE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
}

func (c *Config) Validate() error {
	if _, err := engine.ParseEnv(c.Env); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen_addr is empty")
	}
	return nil
}

func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
}
