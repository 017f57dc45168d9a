// platform.go - Host interrupt-masking hooks

package rtcore

import "sync"

// Platform supplies the two hooks a deployment provides for masking and
// unmasking its own notion of an interrupt: LockInterrupts and
// UnlockInterrupts. On bare-metal Go targets these would mask/unmask the
// real interrupt controller; in a hosted program the default NoopPlatform is
// enough, because CriticalSection already provides real mutual exclusion
// between goroutines on its own.
type Platform interface {
	LockInterrupts()
	UnlockInterrupts()
}

// NoopPlatform is the default Platform: CriticalSection's own mutex already
// serialises callers, so there is no hardware interrupt controller to mask.
// Supply a real implementation only when embedding rtcore on a target where
// "interrupt" means an actual asynchronous CPU trap outside Go's scheduler.
type NoopPlatform struct{}

func (NoopPlatform) LockInterrupts()   {}
func (NoopPlatform) UnlockInterrupts() {}

var _ Platform = NoopPlatform{}
var _ Platform = (*MutexPlatform)(nil)

// MutexPlatform is a Platform that additionally holds a process-wide mutex
// for the duration of the masked region, for hosts that want a visible,
// inspectable stand-in for "interrupts disabled" (e.g. to assert in a test
// that no other goroutine observes the masked state).
type MutexPlatform struct {
	mu sync.Mutex
}

func (p *MutexPlatform) LockInterrupts()   { p.mu.Lock() }
func (p *MutexPlatform) UnlockInterrupts() { p.mu.Unlock() }
