package bridge

import (
	"log/slog"
	"sync"
)

// Dispatcher runs f on the foreground UI thread. webview.WebView satisfies it.
type Dispatcher interface {
	Dispatch(f func())
}

type DispatchFunc func(f func())

func (d DispatchFunc) Dispatch(f func()) { d(f) }

// Immediate runs f on the calling goroutine. Use it when the caller already
// is the UI thread, and in tests.
var Immediate Dispatcher = DispatchFunc(func(f func()) { f() })

// Loop is a Dispatcher backed by one goroutine, for hosts that have no UI
// thread of their own. Functions run in submission order. Dispatch never
// blocks; the queue grows as needed.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	stopped bool
	done    chan struct{}
	logger  *slog.Logger
}

func NewLoop(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loop{
		done:   make(chan struct{}),
		logger: logger.With("component", "dispatch-loop"),
	}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.pending) == 0 && !l.stopped {
			l.cond.Wait()
		}
		if len(l.pending) == 0 {
			l.mu.Unlock()
			return
		}
		f := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]
		l.mu.Unlock()

		f()
	}
}

// Dispatch queues f. After Stop, f is dropped and logged.
func (l *Loop) Dispatch(f func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		l.logger.Warn("dispatch after stop, dropped")
		return
	}
	l.pending = append(l.pending, f)
	l.mu.Unlock()
	l.cond.Signal()
}

// Stop runs everything already queued and waits for it. It must not be
// called from a function running on the loop.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
	l.cond.Broadcast()
	<-l.done
}
