// Package callback guards a single pending initialization request.
package callback

import (
	"log/slog"
	"sync/atomic"
)

// Installer is notified on the first successful resolution of a handle.
type Installer interface {
	Install()
}

// Handle pairs an optional success and error callback. At most one of them
// fires, at most once, no matter how often the engine calls back. A consumed
// handle stays allocated but inert.
type Handle struct {
	onSuccess func()
	onError   func(message string)
	installer Installer
	logger    *slog.Logger
	consumed  atomic.Bool
}

func New(
	onSuccess func(),
	onError func(message string),
	installer Installer,
	logger *slog.Logger,
) *Handle {
	logger.Debug("callback handle created",
		"success", onSuccess != nil,
		"error", onError != nil,
	)
	return &Handle{
		onSuccess: onSuccess,
		onError:   onError,
		installer: installer,
		logger:    logger,
	}
}

func (h *Handle) Consumed() bool {
	return h.consumed.Load()
}

// ResolveSuccess invokes the success callback and, on that transition only,
// installs the listener target.
func (h *Handle) ResolveSuccess() {
	if h.onSuccess == nil {
		h.logger.Warn("init success skipped", "reason", "no success callback")
		return
	}
	if !h.consumed.CompareAndSwap(false, true) {
		h.logger.Warn("init success skipped", "reason", "already consumed")
		return
	}

	h.onSuccess()
	if h.installer != nil {
		h.installer.Install()
	}
}

func (h *Handle) ResolveFailure(message string) {
	if h.onError == nil {
		h.logger.Warn("init failure skipped", "reason", "no error callback", "err", message)
		return
	}
	if !h.consumed.CompareAndSwap(false, true) {
		h.logger.Warn("init failure skipped", "reason", "already consumed", "err", message)
		return
	}

	h.onError(message)
}
