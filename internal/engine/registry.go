package engine

import "sync"

var (
	mu     sync.RWMutex
	global Engine
)

// Register is called once from native code before the bridge starts.
func Register(e Engine) {
	mu.Lock()
	defer mu.Unlock()
	global = e
}

// Safe returns the registered engine, or ErrNoEngine before Register.
func Safe() (Engine, error) {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		return nil, ErrNoEngine
	}
	return global, nil
}
