package audio

import (
	"bytes"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// Output receives rendered PCM and plays it without blocking the caller
type Output interface {
	Play(pcm []byte)
}

// otoOutput plays PCM through the process-wide oto context
type otoOutput struct {
	sampleRate int
}

// NewOtoOutput returns an Output backed by the shared audio device.
// The device is opened on the first Play, not here.
func NewOtoOutput(sampleRate int) Output {
	return &otoOutput{sampleRate: sampleRate}
}

// initAudioContext initializes the global audio context once
func initAudioContext(sampleRate int) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("[AUDIO] Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Printf("[AUDIO] Audio context initialized at %d Hz", sampleRate)
	})
}

// Play hands the buffer to a goroutine so the caller never waits on the device
func (o *otoOutput) Play(pcm []byte) {
	go o.play(pcm)
}

func (o *otoOutput) play(pcm []byte) {
	initAudioContext(o.sampleRate)

	if !audioCtxReady || globalAudioCtx == nil {
		return
	}

	player := globalAudioCtx.NewPlayer(bytes.NewReader(pcm))
	player.Play()

	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	if err := player.Close(); err != nil {
		log.Printf("[AUDIO] Failed to close audio player: %v", err)
	}
}
