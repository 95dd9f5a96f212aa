package timer

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/heartbeat"
)

// StopwatchInterval is the stopwatch heartbeat period. Each heartbeat adds
// exactly one interval, so elapsed time drifts from the wall clock when
// heartbeats are late.
const StopwatchInterval = 10 * time.Millisecond

// StopwatchState is a snapshot of a stopwatch
type StopwatchState struct {
	ElapsedMilliseconds int64
	Running             bool
	Laps                []int64 // most recent first
}

// Stopwatch accumulates elapsed time in fixed 10ms steps and records laps
type Stopwatch struct {
	mu        sync.Mutex
	state     StopwatchState
	scheduler heartbeat.Scheduler
	sounds    Sounds
	beat      *heartbeat.Handle
	gen       int
	onChange  func(StopwatchState)
}

// NewStopwatch creates a stopped stopwatch at zero
func NewStopwatch(scheduler heartbeat.Scheduler, sounds Sounds) *Stopwatch {
	return &Stopwatch{
		scheduler: scheduler,
		sounds:    sounds,
	}
}

// SetOnChange registers a callback for start, pause, lap and reset.
// Heartbeat ticks are not reported; poll State for display.
func (sw *Stopwatch) SetOnChange(fn func(StopwatchState)) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.onChange = fn
}

// Toggle starts or pauses the stopwatch
func (sw *Stopwatch) Toggle() {
	sw.mu.Lock()
	if sw.state.Running {
		sw.stopLocked()
	} else {
		sw.state.Running = true
		sw.gen++
		gen := sw.gen
		sw.beat = sw.scheduler.Every(StopwatchInterval, func() { sw.tick(gen) })
	}
	state, notify := sw.snapshotLocked(), sw.onChange
	sw.mu.Unlock()

	if notify != nil {
		notify(state)
	}
}

// RecordLap prepends the current elapsed time to the laps. It is rejected
// while stopped at zero.
func (sw *Stopwatch) RecordLap() bool {
	sw.mu.Lock()
	if !sw.state.Running && sw.state.ElapsedMilliseconds == 0 {
		sw.mu.Unlock()
		return false
	}
	sw.state.Laps = append([]int64{sw.state.ElapsedMilliseconds}, sw.state.Laps...)
	state, notify := sw.snapshotLocked(), sw.onChange
	sw.mu.Unlock()

	sw.sounds.Tick()
	if notify != nil {
		notify(state)
	}
	return true
}

// Reset stops the stopwatch and clears elapsed time and laps together
func (sw *Stopwatch) Reset() {
	sw.mu.Lock()
	sw.stopLocked()
	sw.state = StopwatchState{}
	state, notify := sw.snapshotLocked(), sw.onChange
	sw.mu.Unlock()

	if notify != nil {
		notify(state)
	}
}

// Close cancels the heartbeat when the owning view goes away
func (sw *Stopwatch) Close() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.stopLocked()
}

// State returns a snapshot; Laps is a copy
func (sw *Stopwatch) State() StopwatchState {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.snapshotLocked()
}

// Laps returns a copy of the recorded laps, most recent first
func (sw *Stopwatch) Laps() []int64 {
	return sw.State().Laps
}

// Format renders the elapsed time as MM:SS.CC
func (sw *Stopwatch) Format() string {
	return FormatElapsed(sw.State().ElapsedMilliseconds)
}

func (sw *Stopwatch) snapshotLocked() StopwatchState {
	state := sw.state
	state.Laps = slices.Clone(sw.state.Laps)
	if state.Laps == nil {
		state.Laps = []int64{}
	}
	return state
}

func (sw *Stopwatch) stopLocked() {
	sw.state.Running = false
	if sw.beat != nil {
		sw.beat.Cancel()
		sw.beat = nil
	}
}

func (sw *Stopwatch) tick(gen int) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.beat == nil || gen != sw.gen || !sw.state.Running {
		return
	}
	sw.state.ElapsedMilliseconds += StopwatchInterval.Milliseconds()
}

// FormatElapsed renders milliseconds as MM:SS.CC
func FormatElapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centiseconds := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centiseconds)
}
