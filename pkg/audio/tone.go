package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// Waveform selects the oscillator shape of a tone
type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
)

// Tone is one oscillator voice with exponential pitch and gain ramps
type Tone struct {
	Wave      Waveform
	StartFreq float64 // Hz at Offset
	EndFreq   float64 // Hz at Offset+Duration
	StartGain float64
	EndGain   float64
	Offset    time.Duration // start relative to the beginning of the cue
	Duration  time.Duration
}

// Cue is a named group of tones rendered into a single buffer
type Cue struct {
	Name  string
	Tones []Tone
}

var (
	clickCue = Cue{Name: "click", Tones: []Tone{
		{Wave: Sine, StartFreq: 880, EndFreq: 440, StartGain: 0.1, EndGain: 0.01, Duration: 100 * time.Millisecond},
	}}

	tickCue = Cue{Name: "tick", Tones: []Tone{
		{Wave: Square, StartFreq: 1200, EndFreq: 1200, StartGain: 0.05, EndGain: 0.01, Duration: 50 * time.Millisecond},
	}}

	successCue = Cue{Name: "success", Tones: arpeggio([]float64{523.25, 659.25, 783.99, 1046.50})}

	beepCue = Cue{Name: "beep", Tones: []Tone{
		{Wave: Sine, StartFreq: 880, EndFreq: 1760, StartGain: 0.1, EndGain: 0.01, Duration: 200 * time.Millisecond},
	}}
)

// arpeggio staggers one triangle voice per note, 100ms apart, 300ms each
func arpeggio(notes []float64) []Tone {
	tones := make([]Tone, 0, len(notes))
	for i, freq := range notes {
		tones = append(tones, Tone{
			Wave:      Triangle,
			StartFreq: freq,
			EndFreq:   freq,
			StartGain: 0.1,
			EndGain:   0.01,
			Offset:    time.Duration(i) * 100 * time.Millisecond,
			Duration:  300 * time.Millisecond,
		})
	}
	return tones
}

// Length returns the time from the first tone start to the last tone end
func (c Cue) Length() time.Duration {
	var length time.Duration
	for _, tone := range c.Tones {
		if end := tone.Offset + tone.Duration; end > length {
			length = end
		}
	}
	return length
}

// Render mixes every tone of the cue into mono samples in [-1, 1]
func (c Cue) Render(sampleRate int) []float64 {
	out := make([]float64, samplesFor(c.Length(), sampleRate))
	for _, tone := range c.Tones {
		start := samplesFor(tone.Offset, sampleRate)
		for i, v := range tone.Render(sampleRate) {
			if start+i < len(out) {
				out[start+i] += v
			}
		}
	}
	for i, v := range out {
		out[i] = math.Max(-1, math.Min(1, v))
	}
	return out
}

// Render produces the samples of a single tone
func (t Tone) Render(sampleRate int) []float64 {
	n := samplesFor(t.Duration, sampleRate)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	total := t.Duration.Seconds()
	phase := 0.0
	for i := range out {
		elapsed := float64(i) / float64(sampleRate)
		freq := expRamp(t.StartFreq, t.EndFreq, elapsed/total)
		out[i] = oscillate(t.Wave, phase) * expRamp(t.StartGain, t.EndGain, elapsed/total)
		phase += 2 * math.Pi * freq / float64(sampleRate)
		if phase > 2*math.Pi {
			phase -= 2 * math.Pi
		}
	}
	return out
}

// expRamp interpolates exponentially from a to b; both must be positive
func expRamp(a, b, progress float64) float64 {
	if a <= 0 || b <= 0 || a == b {
		return a
	}
	return a * math.Pow(b/a, progress)
}

func oscillate(wave Waveform, phase float64) float64 {
	switch wave {
	case Square:
		if math.Sin(phase) >= 0 {
			return 1
		}
		return -1
	case Triangle:
		return 2 / math.Pi * math.Asin(math.Sin(phase))
	default:
		return math.Sin(phase)
	}
}

func samplesFor(d time.Duration, sampleRate int) int {
	return int(math.Round(d.Seconds() * float64(sampleRate)))
}

// encodePCM converts samples to signed 16-bit little-endian mono
func encodePCM(samples []float64, volume float64) []byte {
	buf := make([]byte, len(samples)*2)
	for i, v := range samples {
		s := int16(math.Round(math.Max(-1, math.Min(1, v*volume)) * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}
