package notify

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/message"
	"github.com/ranihwanifactory/watchclock/pkg/models"
)

// firedLayout identifies one alarm minute
const firedLayout = "2006-01-02 15:04"

// AlarmSound is the audio the coordinator drives
type AlarmSound interface {
	StartAlarmLoop()
	StopAlarmLoop()
	Click()
}

// Motivator produces the text shown while an alarm rings
type Motivator interface {
	Motivation(ctx context.Context, label string) string
}

// Options configures a Coordinator
type Options struct {
	Sound     AlarmSound
	Motivator Motivator        // optional
	Now       func() time.Time // defaults to time.Now
	Spawn     func(func())     // runs the motivation request; defaults to a goroutine
}

// Coordinator turns alarm matches into a ringing session that lasts until
// the user dismisses it
type Coordinator struct {
	mu        sync.Mutex
	opts      Options
	state     State
	ringing   RingingState
	session   int
	cancel    context.CancelFunc
	lastFired map[string]string
	events    []chan Event
	closed    bool
}

// NewCoordinator creates an idle coordinator
func NewCoordinator(opts Options) *Coordinator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Spawn == nil {
		opts.Spawn = func(fn func()) { go fn() }
	}
	return &Coordinator{
		opts:      opts,
		state:     StateIdle,
		lastFired: make(map[string]string),
	}
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (c *Coordinator) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		close(ch)
		return ch
	}
	c.events = append(c.events, ch)
	return ch
}

// HandleMatch starts ringing for alarm. It is ignored while another alarm
// rings, and an alarm rings at most once per minute.
func (c *Coordinator) HandleMatch(alarm models.Alarm, at time.Time) bool {
	c.mu.Lock()
	if c.closed || c.state == StateRinging {
		c.mu.Unlock()
		return false
	}

	key := at.Format(firedLayout)
	if c.lastFired[alarm.ID] == key {
		c.mu.Unlock()
		return false
	}
	c.lastFired[alarm.ID] = key

	c.state = StateRinging
	c.session++
	session := c.session
	c.ringing = RingingState{Alarm: alarm.Clone(), Since: at}
	c.opts.Sound.StartAlarmLoop()

	var ctx context.Context
	if c.opts.Motivator != nil {
		ctx, c.cancel = context.WithCancel(context.Background())
	}
	c.emitLocked(Event{Type: EventRing, Alarm: alarm.Clone(), At: at})
	c.mu.Unlock()

	log.Printf("[ALARM] Ringing %q at %s", alarm.Label, alarm.Time)

	if ctx != nil {
		label := alarm.Label
		c.opts.Spawn(func() { c.fetchMotivation(ctx, session, label) })
	}
	return true
}

// Dismiss stops the ringing alarm and returns to idle
func (c *Coordinator) Dismiss() bool {
	c.mu.Lock()
	if c.state != StateRinging {
		c.mu.Unlock()
		return false
	}

	alarm := c.ringing.Alarm
	c.stopLocked()
	c.opts.Sound.Click()
	c.emitLocked(Event{Type: EventDismiss, Alarm: alarm, At: c.opts.Now()})
	c.mu.Unlock()

	log.Printf("[ALARM] Dismissed %q", alarm.Label)
	return true
}

// Ringing returns the current ringing session, if any
func (c *Coordinator) Ringing() (RingingState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRinging {
		return RingingState{}, false
	}
	state := c.ringing
	state.Alarm = state.Alarm.Clone()
	return state, true
}

// State returns the coordinator mode
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close silences any ringing alarm and closes observers
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.state == StateRinging {
		c.stopLocked()
	}
	events := c.events
	c.events = nil
	c.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (c *Coordinator) stopLocked() {
	c.opts.Sound.StopAlarmLoop()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = StateIdle
	c.ringing = RingingState{}
	c.session++
}

func (c *Coordinator) fetchMotivation(ctx context.Context, session int, label string) {
	text := strings.TrimSpace(c.opts.Motivator.Motivation(ctx, label))
	if text == "" {
		text = message.FallbackMotivation
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The alarm may have been dismissed while the request was in flight
	if c.state != StateRinging || session != c.session {
		return
	}
	c.ringing.Message = text
	c.emitLocked(Event{Type: EventMessage, Alarm: c.ringing.Alarm.Clone(), Message: text, At: c.opts.Now()})
}

func (c *Coordinator) emitLocked(event Event) {
	for _, ch := range c.events {
		select {
		case ch <- event:
		default:
		}
	}
}
