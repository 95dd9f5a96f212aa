package audio

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/heartbeat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 8000

type recordingOutput struct {
	mu     sync.Mutex
	played [][]byte
}

func (r *recordingOutput) Play(pcm []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, pcm)
}

func (r *recordingOutput) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.played)
}

func newTestSynth(t *testing.T) (*Synthesizer, *recordingOutput, *heartbeat.Manual, *int) {
	t.Helper()
	out := &recordingOutput{}
	sched := heartbeat.NewManual(time.Date(2026, 10, 18, 7, 0, 0, 0, time.Local))
	opened := 0
	synth := NewSynthesizer(Options{
		SampleRate: testSampleRate,
		Scheduler:  sched,
		NewOutput: func(sampleRate int) Output {
			assert.Equal(t, testSampleRate, sampleRate)
			opened++
			return out
		},
	})
	return synth, out, sched, &opened
}

func TestSynthesizer_OutputOpenedLazilyOnce(t *testing.T) {
	synth, out, _, opened := newTestSynth(t)
	assert.Equal(t, 0, *opened)

	synth.Click()
	synth.Tick()
	synth.Success()

	assert.Equal(t, 1, *opened)
	assert.Equal(t, 3, out.count())
}

func TestSynthesizer_CueLengths(t *testing.T) {
	synth, out, _, _ := newTestSynth(t)

	synth.Click()
	synth.Tick()
	synth.Success()

	// 16-bit mono: two bytes per sample
	assert.Len(t, out.played[0], testSampleRate/10*2)
	assert.Len(t, out.played[1], testSampleRate/20*2)
	assert.Len(t, out.played[2], testSampleRate*6/10*2)
}

func TestSynthesizer_AlarmLoopRepeatsEvery500ms(t *testing.T) {
	synth, out, sched, _ := newTestSynth(t)

	synth.StartAlarmLoop()
	assert.Equal(t, 1, out.count(), "first beep is immediate")
	assert.True(t, synth.AlarmLooping())

	sched.Advance(2 * time.Second)
	assert.Equal(t, 5, out.count())
}

func TestSynthesizer_NoBeepAfterStop(t *testing.T) {
	synth, out, sched, _ := newTestSynth(t)

	synth.StartAlarmLoop()
	synth.StopAlarmLoop()
	beeps := out.count()

	sched.Advance(time.Hour)
	assert.Equal(t, beeps, out.count())
	assert.False(t, synth.AlarmLooping())
	assert.Equal(t, 0, sched.Active())

	assert.NotPanics(t, synth.StopAlarmLoop)
}

func TestSynthesizer_RestartReplacesLoop(t *testing.T) {
	synth, out, sched, _ := newTestSynth(t)

	synth.StartAlarmLoop()
	synth.StartAlarmLoop()
	assert.Equal(t, 1, sched.Active(), "previous loop must be cancelled")

	before := out.count()
	sched.Advance(time.Second)
	assert.Equal(t, before+2, out.count())
}

func TestSynthesizer_MuteSuppressesEveryCue(t *testing.T) {
	synth, out, sched, opened := newTestSynth(t)

	synth.Click()
	require.Equal(t, 1, *opened)

	synth.SetMuted(true)
	assert.True(t, synth.Muted())
	synth.Click()
	synth.Tick()
	synth.Success()
	synth.StartAlarmLoop()
	sched.Advance(2 * time.Second)

	assert.Equal(t, 1, out.count(), "muted cues never reach the output")
	assert.NotNil(t, synth.output, "output stays open while muted")
	assert.Equal(t, 1, *opened)
}

func TestSynthesizer_UnmuteDuringAlarmResumesBeeping(t *testing.T) {
	synth, out, sched, _ := newTestSynth(t)

	synth.SetMuted(true)
	synth.StartAlarmLoop()
	sched.Advance(time.Second)
	assert.Equal(t, 0, out.count())

	synth.SetMuted(false)
	sched.Advance(time.Second)
	assert.Equal(t, 2, out.count())

	synth.StopAlarmLoop()
}

func TestSynthesizer_MutedBeforeFirstCueNeverOpensOutput(t *testing.T) {
	synth, _, _, opened := newTestSynth(t)

	synth.SetMuted(true)
	synth.Click()
	assert.Equal(t, 0, *opened)
}

func TestToneRender_Envelope(t *testing.T) {
	tone := Tone{Wave: Sine, StartFreq: 880, EndFreq: 440, StartGain: 0.1, EndGain: 0.01, Duration: 100 * time.Millisecond}
	samples := tone.Render(testSampleRate)
	require.Len(t, samples, testSampleRate/10)

	peak := func(from, to int) float64 {
		p := 0.0
		for _, v := range samples[from:to] {
			p = math.Max(p, math.Abs(v))
		}
		return p
	}

	head := peak(0, 40)
	tail := peak(len(samples)-40, len(samples))
	assert.LessOrEqual(t, head, 0.1+1e-9)
	assert.Greater(t, head, tail)
	assert.Less(t, tail, 0.02)
}

func TestExpRamp(t *testing.T) {
	assert.InDelta(t, 880, expRamp(880, 440, 0), 1e-9)
	assert.InDelta(t, 440, expRamp(880, 440, 1), 1e-9)
	assert.InDelta(t, 880/math.Sqrt2, expRamp(880, 440, 0.5), 1e-9)
	assert.Equal(t, 1200.0, expRamp(1200, 1200, 0.3))
}

func TestSuccessCue_StaggeredVoices(t *testing.T) {
	require.Len(t, successCue.Tones, 4)
	for i, tone := range successCue.Tones {
		assert.Equal(t, time.Duration(i)*100*time.Millisecond, tone.Offset)
		assert.Equal(t, 300*time.Millisecond, tone.Duration)
		assert.Equal(t, Triangle, tone.Wave)
	}
	assert.Equal(t, 600*time.Millisecond, successCue.Length())
}

func TestEncodePCM_Clamps(t *testing.T) {
	buf := encodePCM([]float64{2, -2, 0}, 1)
	require.Len(t, buf, 6)
	assert.Equal(t, []byte{0xff, 0x7f}, buf[0:2])
	assert.Equal(t, []byte{0x01, 0x80}, buf[2:4])
	assert.Equal(t, []byte{0x00, 0x00}, buf[4:6])
}
