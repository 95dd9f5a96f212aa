package heartbeat

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler arms recurring callbacks and reports the current time
type Scheduler interface {
	// Every calls fn once per interval until the returned handle is cancelled
	Every(interval time.Duration, fn func()) *Handle
	// Now returns the scheduler's view of wall-clock time
	Now() time.Time
}

// Handle controls one armed heartbeat
type Handle struct {
	once     sync.Once
	stopped  atomic.Bool
	stopCh   chan struct{}
	onCancel func()
}

func newHandle(onCancel func()) *Handle {
	return &Handle{
		stopCh:   make(chan struct{}),
		onCancel: onCancel,
	}
}

// Cancel stops the heartbeat. Safe to call more than once, from any
// goroutine, including from inside the heartbeat's own callback.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}

	h.once.Do(func() {
		h.stopped.Store(true)
		close(h.stopCh)
		if h.onCancel != nil {
			h.onCancel()
		}
	})
}

// Cancelled reports whether Cancel has been called
func (h *Handle) Cancelled() bool {
	return h == nil || h.stopped.Load()
}

// Done is closed once the handle is cancelled
func (h *Handle) Done() <-chan struct{} {
	return h.stopCh
}

// Ticker is the production Scheduler backed by time.Ticker
type Ticker struct{}

// NewTicker creates a wall-clock scheduler
func NewTicker() *Ticker {
	return &Ticker{}
}

// Now returns time.Now()
func (t *Ticker) Now() time.Time {
	return time.Now()
}

// Every starts a goroutine that calls fn on every tick
func (t *Ticker) Every(interval time.Duration, fn func()) *Handle {
	h := newHandle(nil)
	if interval <= 0 {
		h.Cancel()
		return h
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.stopCh:
				return
			case <-ticker.C:
				// A cancel can race the tick; never run fn after it
				if h.Cancelled() {
					return
				}
				fn()
			}
		}
	}()

	return h
}
