package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "markerbridge"
	keyAPIKey   = "api_key"
)

var ErrNotFound = errors.New("credentials: not found")

// StoreAPIKey keeps the engine credential in the OS keyring.
func StoreAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("store api key: empty value")
	}
	if err := keyring.Set(serviceName, keyAPIKey, apiKey); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}
	return nil
}

func LoadAPIKey() (string, error) {
	val, err := keyring.Get(serviceName, keyAPIKey)
	if err != nil {
		return "", ErrNotFound
	}
	return val, nil
}

func DeleteAPIKey() {
	_ = keyring.Delete(serviceName, keyAPIKey)
}
