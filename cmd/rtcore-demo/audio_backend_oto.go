// audio_backend_oto.go - Otto-backed audio beep for interactive builds
//go:build !headless

package main

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	beepSampleRate = 44100
	beepFrequency  = 880.0
	beepDuration   = 0.08 // seconds
)

// otoBeeper renders a fixed-length sine burst through ebitengine/oto/v3
// each time Beep is called, serializing overlapping requests onto one
// player the way OtoPlayer in the teacher serializes SoundChip output.
type otoBeeper struct {
	mu     sync.Mutex
	ctx    *oto.Context
	tone   []byte
	player *oto.Player
}

func newBeepBackend() (audioBackend, error) {
	op := &oto.NewContextOptions{
		SampleRate:   beepSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("audio: creating oto context: %w", err)
	}
	<-ready

	n := int(beepSampleRate * beepDuration)
	tone := make([]byte, n*4)
	for i := 0; i < n; i++ {
		sample := float32(0.2 * math.Sin(2*math.Pi*beepFrequency*float64(i)/beepSampleRate))
		putFloat32LE(tone[i*4:], sample)
	}

	return &otoBeeper{ctx: ctx, tone: tone}, nil
}

func putFloat32LE(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

func (b *otoBeeper) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player != nil {
		b.player.Close()
	}
	b.player = b.ctx.NewPlayer(bytes.NewReader(b.tone))
	b.player.Play()
}

func (b *otoBeeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		return b.player.Close()
	}
	return nil
}
