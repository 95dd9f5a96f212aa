package clock

import (
	"sync"
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/heartbeat"
	"github.com/ranihwanifactory/watchclock/pkg/models"
)

// TickInterval is the clock heartbeat period
const TickInterval = time.Second

// AlarmSource provides the live alarm collection
type AlarmSource interface {
	Snapshot() []models.Alarm
}

// Handlers receive the output of each tick
type Handlers struct {
	OnTick  func(now time.Time)                    // current time for display
	OnMatch func(alarm models.Alarm, at time.Time) // matched alarm
}

// TickLoop wakes once per second, publishes the wall-clock time and
// checks the alarm collection for a match
type TickLoop struct {
	mu        sync.Mutex
	scheduler heartbeat.Scheduler
	source    AlarmSource
	handlers  Handlers
	beat      *heartbeat.Handle
	gen       int
}

// NewTickLoop creates a stopped tick loop
func NewTickLoop(scheduler heartbeat.Scheduler, source AlarmSource, handlers Handlers) *TickLoop {
	return &TickLoop{
		scheduler: scheduler,
		source:    source,
		handlers:  handlers,
	}
}

// Start arms the heartbeat; calling it while running does nothing
func (l *TickLoop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.beat != nil {
		return
	}
	l.gen++
	gen := l.gen
	l.beat = l.scheduler.Every(TickInterval, func() { l.tick(gen) })
}

// Stop cancels the heartbeat; no tick is delivered after it returns
func (l *TickLoop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.beat != nil {
		l.beat.Cancel()
		l.beat = nil
	}
}

// Running reports whether the heartbeat is armed
func (l *TickLoop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.beat != nil
}

func (l *TickLoop) tick(gen int) {
	l.mu.Lock()
	if l.beat == nil || gen != l.gen {
		l.mu.Unlock()
		return
	}
	// Read the real time on every wake rather than counting ticks
	now := l.scheduler.Now()
	l.mu.Unlock()

	if l.handlers.OnTick != nil {
		l.handlers.OnTick(now)
	}

	if l.source == nil {
		return
	}
	if alarm, ok := Match(now, l.source.Snapshot()); ok && l.handlers.OnMatch != nil {
		l.handlers.OnMatch(alarm, now)
	}
}
