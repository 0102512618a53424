// Package bridge is the command surface a host drives the native scanning
// engine through.
//
// No command blocks or fails loudly. Precondition failures are logged and the
// command is dropped; engine failures arrive later as a callback or an event.
package bridge

import (
	"log/slog"
	"sync/atomic"

	"github.com/markerbridge/markerbridge/internal/activity"
	"github.com/markerbridge/markerbridge/internal/callback"
	"github.com/markerbridge/markerbridge/internal/engine"
	"github.com/markerbridge/markerbridge/internal/events"
	"github.com/markerbridge/markerbridge/internal/metrics"
	"github.com/markerbridge/markerbridge/internal/multiplexer"
	"github.com/markerbridge/markerbridge/internal/session"
	"github.com/markerbridge/markerbridge/internal/view"
)

const (
	reasonNoForeground   = "no_foreground"
	reasonNotInitialized = "not_initialized"
	reasonInvalidInput   = "invalid_input"
	reasonClosed         = "closed"
)

type Options struct {
	Engine     engine.Engine
	Foreground engine.ForegroundFunc
	Dispatcher Dispatcher
	// Session defaults to the process-wide session.
	Session *session.Session
	Logger  *slog.Logger
}

type Bridge struct {
	engine     engine.Engine
	foreground engine.ForegroundFunc
	dispatcher Dispatcher
	session    *session.Session
	logger     *slog.Logger

	channel    *events.Channel
	mux        *multiplexer.Multiplexer
	correlator *activity.Correlator
	views      *view.Manager

	closed atomic.Bool
}

func New(opts Options) *Bridge {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "bridge")

	foreground := opts.Foreground
	if foreground == nil {
		foreground = func() (engine.Foreground, error) { return nil, engine.ErrNoForeground }
	}
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = Immediate
	}
	sess := opts.Session
	if sess == nil {
		sess = session.Process()
	}

	channel := events.NewChannel(logger)
	return &Bridge{
		engine:     opts.Engine,
		foreground: foreground,
		dispatcher: dispatcher,
		session:    sess,
		logger:     logger,
		channel:    channel,
		mux:        multiplexer.New(channel, opts.Engine, logger),
		correlator: activity.NewCorrelator(channel, logger),
		views:      view.NewManager(opts.Engine, foreground, logger),
	}
}

// Attach makes c the live event consumer.
func (b *Bridge) Attach(c events.Consumer) {
	b.channel.Attach(c)
}

// Detach stops event delivery to the host.
func (b *Bridge) Detach() {
	b.channel.Detach()
}

// Listeners returns the engine listener categories routed to the bridge.
func (b *Bridge) Listeners() []multiplexer.Category {
	return b.mux.Installed()
}

// Close detaches the host consumer, tears down mounted views and stops
// reacting to foreground-return signals.
func (b *Bridge) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	b.channel.Detach()
	b.dispatcher.Dispatch(b.views.UnmountAll)
	b.logger.Info("bridge closed")
}

func (b *Bridge) drop(command, reason string, err error) {
	b.logger.Warn("command dropped", "command", command, "reason", reason, "err", err)
	metrics.CommandsDropped.WithLabelValues(command, reason).Inc()
}

// ready reports whether the engine is initialized, syncing the session when
// the engine got there on its own.
func (b *Bridge) ready() bool {
	if b.session.Ready() {
		return true
	}
	if b.engine.Initialized() {
		b.session.MarkReady()
		return true
	}
	return false
}

// onForeground runs fn on the UI thread with the current foreground context,
// or drops the command when there is none.
func (b *Bridge) onForeground(command string, fn func(fg engine.Foreground)) {
	b.dispatcher.Dispatch(func() {
		fg, err := b.foreground()
		if err == nil && fg == nil {
			err = engine.ErrNoForeground
		}
		if err != nil {
			b.drop(command, reasonNoForeground, err)
			return
		}
		fn(fg)
	})
}

// OnActivityResult forwards a foreground-return signal from the host.
func (b *Bridge) OnActivityResult(requestCode, resultCode int) {
	if b.closed.Load() {
		return
	}
	b.correlator.OnActivityResult(requestCode, resultCode)
}

type initListener struct {
	bridge *Bridge
	handle *callback.Handle
}

func (l initListener) OnLoadSuccess() {
	l.bridge.logger.Info("engine load success")
	l.bridge.session.MarkReady()
	l.handle.ResolveSuccess()
}

func (l initListener) OnLoadFailed(message string) {
	l.bridge.logger.Error("engine load failed", "err", message)
	l.bridge.session.Fail()
	l.handle.ResolveFailure(message)
}

func (l initListener) OnEngineError(err error) {
	l.bridge.mux.OnEngineError(err)
}
