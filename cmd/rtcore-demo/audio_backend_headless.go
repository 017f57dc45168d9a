// audio_backend_headless.go - No-op audio backend for headless builds
//go:build headless

package main

type headlessBeeper struct{}

func newBeepBackend() (audioBackend, error) {
	return headlessBeeper{}, nil
}

func (headlessBeeper) Beep()        {}
func (headlessBeeper) Close() error { return nil }
