package timer

import (
	"fmt"
	"sync"
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/heartbeat"
)

const (
	// MaxCountdownMinutes is the largest configurable countdown
	MaxCountdownMinutes = 999
	// DefaultCountdownMinutes is the countdown length on first open
	DefaultCountdownMinutes = 1
	// CountdownInterval is the countdown heartbeat period
	CountdownInterval = time.Second
)

// Sounds are the cues the timers play
type Sounds interface {
	Click()
	Tick()
	Success()
}

// Phase is the derived state of a countdown
type Phase string

const (
	PhaseConfiguring Phase = "configuring"
	PhaseRunning     Phase = "running"
	PhasePaused      Phase = "paused"
	PhaseCompleted   Phase = "completed"
)

// CountdownState is a snapshot of a countdown
type CountdownState struct {
	TotalSeconds     int
	RemainingSeconds int
	Running          bool
	Configuring      bool // true until the first start after a reset
}

// Phase derives the state machine phase
func (s CountdownState) Phase() Phase {
	switch {
	case s.Configuring:
		return PhaseConfiguring
	case s.Running:
		return PhaseRunning
	case s.RemainingSeconds == 0:
		return PhaseCompleted
	default:
		return PhasePaused
	}
}

// Progress returns remaining/total, or 0 for an empty countdown
func (s CountdownState) Progress() float64 {
	if s.TotalSeconds <= 0 {
		return 0
	}
	return float64(s.RemainingSeconds) / float64(s.TotalSeconds)
}

// Countdown counts configured whole minutes down to zero, one second per heartbeat
type Countdown struct {
	mu        sync.Mutex
	state     CountdownState
	scheduler heartbeat.Scheduler
	sounds    Sounds
	beat      *heartbeat.Handle
	gen       int
	onChange  func(CountdownState)
}

// NewCountdown creates a countdown in the configuring phase
func NewCountdown(scheduler heartbeat.Scheduler, sounds Sounds) *Countdown {
	total := DefaultCountdownMinutes * 60
	return &Countdown{
		state: CountdownState{
			TotalSeconds:     total,
			RemainingSeconds: total,
			Configuring:      true,
		},
		scheduler: scheduler,
		sounds:    sounds,
	}
}

// SetOnChange registers a callback that receives every state change
func (c *Countdown) SetOnChange(fn func(CountdownState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// SetMinutes sets the duration while configuring. Out of range values are
// clamped to [0, MaxCountdownMinutes]. Returns false once started.
func (c *Countdown) SetMinutes(minutes int) bool {
	c.mu.Lock()
	if !c.state.Configuring {
		c.mu.Unlock()
		return false
	}

	minutes = max(0, min(MaxCountdownMinutes, minutes))
	c.state.TotalSeconds = minutes * 60
	c.state.RemainingSeconds = c.state.TotalSeconds
	state, notify := c.state, c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify(state)
	}
	return true
}

// Toggle is the start control: it starts from configuring, and afterwards
// pauses or resumes
func (c *Countdown) Toggle() {
	c.mu.Lock()
	c.state.Configuring = false

	if c.state.Running {
		c.stopLocked()
	} else if c.state.RemainingSeconds > 0 {
		c.state.Running = true
		c.gen++
		gen := c.gen
		c.beat = c.scheduler.Every(CountdownInterval, func() { c.tick(gen) })
	}
	state, notify := c.state, c.onChange
	c.mu.Unlock()

	c.sounds.Click()
	if notify != nil {
		notify(state)
	}
}

// Reset stops the countdown and returns to configuring with the full duration
func (c *Countdown) Reset() {
	c.mu.Lock()
	c.stopLocked()
	c.state.RemainingSeconds = c.state.TotalSeconds
	c.state.Configuring = true
	state, notify := c.state, c.onChange
	c.mu.Unlock()

	c.sounds.Click()
	if notify != nil {
		notify(state)
	}
}

// Close cancels the heartbeat when the owning view goes away
func (c *Countdown) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// State returns a snapshot
func (c *Countdown) State() CountdownState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Format renders the remaining time as MM:SS
func (c *Countdown) Format() string {
	return FormatRemaining(c.State().RemainingSeconds)
}

func (c *Countdown) stopLocked() {
	c.state.Running = false
	if c.beat != nil {
		c.beat.Cancel()
		c.beat = nil
	}
}

func (c *Countdown) tick(gen int) {
	c.mu.Lock()
	if c.beat == nil || gen != c.gen || !c.state.Running {
		c.mu.Unlock()
		return
	}

	c.state.RemainingSeconds--
	completed := c.state.RemainingSeconds <= 0
	if completed {
		c.state.RemainingSeconds = 0
		c.stopLocked()
	}
	state, notify := c.state, c.onChange
	c.mu.Unlock()

	if completed {
		c.sounds.Success()
	}
	if notify != nil {
		notify(state)
	}
}

// FormatRemaining renders whole seconds as MM:SS; minutes may exceed two digits
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
