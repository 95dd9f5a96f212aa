package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/audio"
	"github.com/ranihwanifactory/watchclock/pkg/clock"
	"github.com/ranihwanifactory/watchclock/pkg/heartbeat"
	"github.com/ranihwanifactory/watchclock/pkg/message"
	"github.com/ranihwanifactory/watchclock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSound struct {
	mu      sync.Mutex
	starts  int
	stops   int
	clicks  int
	looping bool
}

func (s *fakeSound) StartAlarmLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts++
	s.looping = true
}

func (s *fakeSound) StopAlarmLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	s.looping = false
}

func (s *fakeSound) Click() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks++
}

type fakeMotivator struct {
	text   string
	labels []string
}

func (m *fakeMotivator) Motivation(ctx context.Context, label string) string {
	m.labels = append(m.labels, label)
	return m.text
}

// deferredSpawn holds motivation requests until the test runs them
type deferredSpawn struct {
	pending []func()
}

func (d *deferredSpawn) spawn(fn func()) { d.pending = append(d.pending, fn) }

func (d *deferredSpawn) runAll() {
	pending := d.pending
	d.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func at(hour, minute, second int) time.Time {
	return time.Date(2026, 10, 18, hour, minute, second, 0, time.Local)
}

func wakeAlarm() models.Alarm {
	return models.Alarm{ID: "wake", Time: "07:00", Label: "Wake", Enabled: true, Days: models.AllWeekdays}
}

func newCoordinator(sound AlarmSound, motivator Motivator, spawn *deferredSpawn) *Coordinator {
	opts := Options{
		Sound: sound,
		Now:   func() time.Time { return at(7, 0, 30) },
	}
	if motivator != nil {
		opts.Motivator = motivator
	}
	if spawn != nil {
		opts.Spawn = spawn.spawn
	}
	return NewCoordinator(opts)
}

func TestCoordinator_RingsUntilDismissed(t *testing.T) {
	synthOut := &countingOutput{}
	sched := heartbeat.NewManual(at(6, 59, 59))
	synth := audio.NewSynthesizer(audio.Options{
		SampleRate: 8000,
		Scheduler:  sched,
		NewOutput:  func(int) audio.Output { return synthOut },
	})
	coord := NewCoordinator(Options{Sound: synth})

	store := &sliceSource{alarms: []models.Alarm{wakeAlarm()}}
	loop := clock.NewTickLoop(sched, store, clock.Handlers{
		OnMatch: func(alarm models.Alarm, now time.Time) { coord.HandleMatch(alarm, now) },
	})
	loop.Start()
	defer loop.Stop()

	sched.Advance(time.Second)
	require.Equal(t, StateRinging, coord.State())
	ringing, ok := coord.Ringing()
	require.True(t, ok)
	assert.Equal(t, "wake", ringing.Alarm.ID)
	assert.True(t, at(7, 0, 0).Equal(ringing.Since))
	assert.True(t, synth.AlarmLooping())

	sched.Advance(time.Second)
	assert.Equal(t, StateRinging, coord.State(), "no auto-dismiss")
	beeps := synthOut.count()
	assert.Greater(t, beeps, 1, "beep repeats while ringing")

	require.True(t, coord.Dismiss())
	assert.Equal(t, StateIdle, coord.State())
	assert.False(t, synth.AlarmLooping())

	afterDismiss := synthOut.count()
	sched.Advance(5 * time.Second)
	assert.Equal(t, afterDismiss, synthOut.count(), "no beep after dismiss")
}

func TestCoordinator_IgnoresMatchWhileRinging(t *testing.T) {
	sound := &fakeSound{}
	coord := newCoordinator(sound, nil, nil)

	require.True(t, coord.HandleMatch(wakeAlarm(), at(7, 0, 0)))
	other := models.Alarm{ID: "gym", Time: "07:00", Label: "Gym", Enabled: true}
	assert.False(t, coord.HandleMatch(other, at(7, 0, 0)))

	ringing, _ := coord.Ringing()
	assert.Equal(t, "wake", ringing.Alarm.ID)
	assert.Equal(t, 1, sound.starts)
}

func TestCoordinator_AtMostOncePerMinute(t *testing.T) {
	sound := &fakeSound{}
	coord := newCoordinator(sound, nil, nil)

	require.True(t, coord.HandleMatch(wakeAlarm(), at(7, 0, 0)))
	require.True(t, coord.Dismiss())

	assert.False(t, coord.HandleMatch(wakeAlarm(), at(7, 0, 0).Add(400*time.Millisecond)), "jittered second wake")
	assert.Equal(t, StateIdle, coord.State())

	assert.True(t, coord.HandleMatch(wakeAlarm(), at(7, 0, 0).AddDate(0, 0, 1)), "rings again the next day")
}

func TestCoordinator_DismissWhenIdle(t *testing.T) {
	sound := &fakeSound{}
	coord := newCoordinator(sound, nil, nil)

	assert.False(t, coord.Dismiss())
	assert.Equal(t, 0, sound.stops)
	assert.Equal(t, 0, sound.clicks)
}

func TestCoordinator_DismissStopsLoopAndClicks(t *testing.T) {
	sound := &fakeSound{}
	coord := newCoordinator(sound, nil, nil)

	coord.HandleMatch(wakeAlarm(), at(7, 0, 0))
	coord.Dismiss()

	assert.Equal(t, 1, sound.stops)
	assert.Equal(t, 1, sound.clicks)
	assert.False(t, sound.looping)
	_, ok := coord.Ringing()
	assert.False(t, ok)
}

func TestCoordinator_MotivationAttachesToSession(t *testing.T) {
	sound := &fakeSound{}
	motivator := &fakeMotivator{text: "Up you get!"}
	spawn := &deferredSpawn{}
	coord := newCoordinator(sound, motivator, spawn)
	events := coord.Subscribe(8)

	coord.HandleMatch(wakeAlarm(), at(7, 0, 0))
	ringing, _ := coord.Ringing()
	assert.Empty(t, ringing.Message, "message resolves asynchronously")

	spawn.runAll()
	ringing, _ = coord.Ringing()
	assert.Equal(t, "Up you get!", ringing.Message)
	assert.Equal(t, []string{"Wake"}, motivator.labels)

	assert.Equal(t, EventRing, (<-events).Type)
	msg := <-events
	assert.Equal(t, EventMessage, msg.Type)
	assert.Equal(t, "Up you get!", msg.Message)
}

func TestCoordinator_LateMotivationIsDropped(t *testing.T) {
	sound := &fakeSound{}
	spawn := &deferredSpawn{}
	coord := newCoordinator(sound, &fakeMotivator{text: "late"}, spawn)

	coord.HandleMatch(wakeAlarm(), at(7, 0, 0))
	coord.Dismiss()

	next := models.Alarm{ID: "nap", Time: "07:05", Label: "Nap", Enabled: true}
	coord.HandleMatch(next, at(7, 5, 0))

	// Only the first request resolves; it belongs to a dismissed session
	spawn.pending[0]()
	ringing, ok := coord.Ringing()
	require.True(t, ok)
	assert.Equal(t, "nap", ringing.Alarm.ID)
	assert.Empty(t, ringing.Message)
}

func TestCoordinator_BlankMotivationFallsBack(t *testing.T) {
	spawn := &deferredSpawn{}
	coord := newCoordinator(&fakeSound{}, &fakeMotivator{text: "  "}, spawn)

	coord.HandleMatch(wakeAlarm(), at(7, 0, 0))
	spawn.runAll()

	ringing, _ := coord.Ringing()
	assert.Equal(t, message.FallbackMotivation, ringing.Message)
}

func TestCoordinator_EventsAndClose(t *testing.T) {
	sound := &fakeSound{}
	coord := newCoordinator(sound, nil, nil)
	events := coord.Subscribe(4)

	coord.HandleMatch(wakeAlarm(), at(7, 0, 0))
	coord.Dismiss()
	coord.HandleMatch(models.Alarm{ID: "b", Time: "08:00", Label: "B", Enabled: true}, at(8, 0, 0))
	coord.Close()
	coord.Close()

	var types []EventType
	for event := range events {
		types = append(types, event.Type)
	}
	assert.Equal(t, []EventType{EventRing, EventDismiss, EventRing}, types)
	assert.Equal(t, StateIdle, coord.State())
	assert.False(t, sound.looping, "close silences a ringing alarm")
	assert.False(t, coord.HandleMatch(wakeAlarm(), at(9, 0, 0)))

	_, open := <-coord.Subscribe(1)
	assert.False(t, open)
}

func TestCoordinator_FullSubscriberDoesNotBlock(t *testing.T) {
	coord := newCoordinator(&fakeSound{}, nil, nil)
	coord.Subscribe(1)

	for i := range 5 {
		coord.HandleMatch(models.Alarm{ID: "a", Time: "07:00", Label: "A", Enabled: true}, at(7, i, 0))
		coord.Dismiss()
	}
	assert.Equal(t, StateIdle, coord.State())
}

type sliceSource struct {
	alarms []models.Alarm
}

func (s *sliceSource) Snapshot() []models.Alarm {
	return append([]models.Alarm(nil), s.alarms...)
}

type countingOutput struct {
	mu    sync.Mutex
	plays int
}

func (o *countingOutput) Play(pcm []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.plays++
}

func (o *countingOutput) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.plays
}
