// audio_backend.go - Shared interface for the audio backend pair

package main

// audioBackend is implemented by audio_backend_oto.go (default) and
// audio_backend_headless.go (//go:build headless) — the same backend-pair
// split video_backend.go documents for the video surface. The beep timer's
// single expiry, dispatched by the timer-dispatch process, turns into a
// short tone through it.
type audioBackend interface {
	Beep()
	Close() error
}
