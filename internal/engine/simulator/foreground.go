package simulator

import (
	"fmt"
	"sync"

	"github.com/markerbridge/markerbridge/internal/engine"
)

var _ engine.Foreground = (*Foreground)(nil)

// ResultFunc is invoked when a launched scanner finishes.
type ResultFunc func(requestCode, resultCode int)

// Foreground is a fake on-screen container. Finishing a launched scanner
// reports back through OnResult, the way a real activity result would.
type Foreground struct {
	mu       sync.Mutex
	started  []int
	finished []int
	attached map[string]engine.ScannerView
	OnResult ResultFunc
}

func NewForeground() *Foreground {
	return &Foreground{attached: map[string]engine.ScannerView{}}
}

func (f *Foreground) StartScanner(requestCode int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, requestCode)
	return nil
}

func (f *Foreground) FinishScanner(requestCode int) error {
	f.mu.Lock()
	f.finished = append(f.finished, requestCode)
	onResult := f.OnResult
	f.mu.Unlock()
	if onResult != nil {
		onResult(requestCode, 0)
	}
	return nil
}

func (f *Foreground) AttachView(tag string, v engine.ScannerView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.attached[tag]; exists {
		return fmt.Errorf("view %q already attached", tag)
	}
	f.attached[tag] = v
	return nil
}

func (f *Foreground) DetachView(tag string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.attached, tag)
	return nil
}

func (f *Foreground) Started() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.started...)
}

func (f *Foreground) Finished() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.finished...)
}

// Attached returns the view attached under tag.
func (f *Foreground) Attached(tag string) (engine.ScannerView, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.attached[tag]
	return v, ok
}

// Presence controls what a ForegroundFunc built from it returns.
type Presence struct {
	mu sync.Mutex
	fg *Foreground
}

func NewPresence(fg *Foreground) *Presence {
	return &Presence{fg: fg}
}

func (p *Presence) Set(fg *Foreground) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fg = fg
}

func (p *Presence) Lookup() (engine.Foreground, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fg == nil {
		return nil, engine.ErrNoForeground
	}
	return p.fg, nil
}
