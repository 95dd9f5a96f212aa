package audio

import (
	"sync"
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/heartbeat"
)

const (
	// DefaultSampleRate is used when no sample rate is configured
	DefaultSampleRate = 44100
	// AlarmRepeatInterval is the gap between alarm beeps
	AlarmRepeatInterval = 500 * time.Millisecond
)

// Options configures a Synthesizer
type Options struct {
	SampleRate int
	Volume     float64 // 0..1 scaling applied to every cue
	Scheduler  heartbeat.Scheduler
	// NewOutput opens the output on first use; defaults to NewOtoOutput
	NewOutput func(sampleRate int) Output
}

// Synthesizer renders and plays the click, tick, success and alarm cues.
// All methods return immediately.
type Synthesizer struct {
	mu         sync.Mutex
	sampleRate int
	volume     float64
	scheduler  heartbeat.Scheduler
	newOutput  func(sampleRate int) Output
	output     Output
	muted      bool
	rendered   map[string][]byte

	alarm    *heartbeat.Handle
	alarmGen int
}

// NewSynthesizer creates a synthesizer; the output is opened lazily
func NewSynthesizer(opts Options) *Synthesizer {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Volume <= 0 || opts.Volume > 1 {
		opts.Volume = 1
	}
	if opts.Scheduler == nil {
		opts.Scheduler = heartbeat.NewTicker()
	}
	if opts.NewOutput == nil {
		opts.NewOutput = NewOtoOutput
	}

	return &Synthesizer{
		sampleRate: opts.SampleRate,
		volume:     opts.Volume,
		scheduler:  opts.Scheduler,
		newOutput:  opts.NewOutput,
		rendered:   make(map[string][]byte),
	}
}

// SetMuted silences every cue without closing the output
func (s *Synthesizer) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

// Muted reports the mute flag
func (s *Synthesizer) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Click plays a short descending blip
func (s *Synthesizer) Click() { s.play(clickCue) }

// Tick plays a short square-wave tick
func (s *Synthesizer) Tick() { s.play(tickCue) }

// Success plays a rising major arpeggio
func (s *Synthesizer) Success() { s.play(successCue) }

// StartAlarmLoop beeps now and every AlarmRepeatInterval until StopAlarmLoop.
// A loop that is already running is replaced, never doubled.
func (s *Synthesizer) StartAlarmLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopAlarmLocked()
	s.alarmGen++
	gen := s.alarmGen
	s.alarm = s.scheduler.Every(AlarmRepeatInterval, func() { s.beep(gen) })
	s.playLocked(beepCue)
}

// StopAlarmLoop cancels the alarm beep; no beep starts after it returns
func (s *Synthesizer) StopAlarmLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopAlarmLocked()
}

// AlarmLooping reports whether the alarm beep is armed
func (s *Synthesizer) AlarmLooping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alarm != nil
}

func (s *Synthesizer) stopAlarmLocked() {
	if s.alarm != nil {
		s.alarm.Cancel()
		s.alarm = nil
	}
}

func (s *Synthesizer) beep(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stale callback from a loop that has since been stopped or replaced
	if s.alarm == nil || gen != s.alarmGen {
		return
	}
	s.playLocked(beepCue)
}

func (s *Synthesizer) play(cue Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playLocked(cue)
}

func (s *Synthesizer) playLocked(cue Cue) {
	if s.muted {
		return
	}

	if s.output == nil {
		s.output = s.newOutput(s.sampleRate)
	}

	pcm, ok := s.rendered[cue.Name]
	if !ok {
		pcm = encodePCM(cue.Render(s.sampleRate), s.volume)
		s.rendered[cue.Name] = pcm
	}
	s.output.Play(pcm)
}
