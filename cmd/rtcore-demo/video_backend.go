// video_backend.go - Shared interface for the video backend pair

package main

import (
	"context"

	"github.com/zotley/rtcore"
)

// Drawable-area dimensions, shared by both backend implementations so the
// animation process can bounce its sprite off the same bounds the ebiten
// window actually draws within.
const (
	screenWidth  = 640
	screenHeight = 120
)

// videoBackend renders the demo's single text-mode status line and feeds
// mouse-delta samples back into the runtime. Two implementations exist —
// video_backend_ebiten.go (default) and video_backend_headless.go (//go:build
// headless) — the same split the teacher uses for every peripheral backend.
type videoBackend interface {
	// Run blocks until ctx is done, driving the backend's own event loop.
	Run(ctx context.Context, rt *rtcore.Runtime, mousePID uint8) error
	SetStatusLine(line string)
	// SetSpritePosition reports the animation process's current bounce
	// coordinates, in backend drawable-area pixels.
	SetSpritePosition(x, y int)
	Close() error
}
