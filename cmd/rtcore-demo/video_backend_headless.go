// video_backend_headless.go - No-op video backend for headless builds
//go:build headless

package main

import (
	"context"
	"sync"

	"github.com/zotley/rtcore"
)

// headlessVideoBackend is the CI / no-display fallback: it accepts status
// updates but never produces mouse samples, mirroring the teacher's own
// HeadlessVideoOutput no-op sink.
type headlessVideoBackend struct {
	mu      sync.Mutex
	line    string
	spriteX int
	spriteY int
}

func newVideoBackend() (videoBackend, error) {
	return &headlessVideoBackend{}, nil
}

func (v *headlessVideoBackend) SetStatusLine(line string) {
	v.mu.Lock()
	v.line = line
	v.mu.Unlock()
}

func (v *headlessVideoBackend) SetSpritePosition(x, y int) {
	v.mu.Lock()
	v.spriteX, v.spriteY = x, y
	v.mu.Unlock()
}

func (v *headlessVideoBackend) Run(ctx context.Context, _ *rtcore.Runtime, _ uint8) error {
	<-ctx.Done()
	return nil
}

func (v *headlessVideoBackend) Close() error { return nil }
