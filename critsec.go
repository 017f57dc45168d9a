// critsec.go - Nestable critical-section gate

/*
██████╗ ████████╗ ██████╗ ██████╗ ██████╗ ███████╗
██╔══██╗╚══██╔══╝██╔════╝██╔═══██╗██╔══██╗██╔════╝
██████╔╝   ██║   ██║     ██║   ██║██████╔╝█████╗
██╔══██╗   ██║   ██║     ██║   ██║██╔══██╗██╔══╝
██║  ██║   ██║   ╚██████╗╚██████╔╝██║  ██║███████╗
╚═╝  ╚═╝   ╚═╝    ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝

(c) 2024 - 2026 Zayn Otley
https://github.com/zotley/rtcore
License: GPLv3 or later
*/

package rtcore

import (
	"sync"

	"github.com/zotley/rtcore/internal/goid"
)

// CriticalSection is a nesting gate that masks the platform's interrupts on
// the 0->1 transition and always increments the nesting depth; exit always
// decrements and unmasks on the 1->0 transition. It is the sole means of
// mutual exclusion in this package: every mutation of process-table fields,
// timer-array fields, and queue fields goes through it.
//
// Real hardware only ever has one execution context active at a time (an
// ISR preempts the main loop; it is never truly concurrent with it), which
// is what makes a plain nesting counter safe there. Go's goroutines do not
// give us that for free, so this gate is a genuine recursive mutex: the same
// goroutine may call enter any number of times without blocking on itself,
// while a different goroutine calling enter blocks until the current
// holder's outermost exit. Ownership is tracked by goroutine id (see
// internal/goid) rather than by threading a token through every call, to
// keep a flat, parameterless API.
type CriticalSection struct {
	platform Platform

	mu    sync.Mutex
	cond  *sync.Cond
	owner int64
	depth int
}

// NewCriticalSection constructs a gate that masks/unmasks via platform.
func NewCriticalSection(platform Platform) *CriticalSection {
	cs := &CriticalSection{platform: platform, owner: -1}
	cs.cond = sync.NewCond(&cs.mu)
	return cs
}

// Enter increments the nesting depth, masking interrupts on the 0->1
// transition. Safe to call from any goroutine; nests correctly within a
// single goroutine's call stack and serialises against every other
// goroutine's outermost enter.
func (c *CriticalSection) Enter() {
	self := goid.Current()

	c.mu.Lock()
	for c.depth > 0 && c.owner != self {
		c.cond.Wait()
	}
	if c.depth == 0 {
		c.owner = self
		c.platform.LockInterrupts()
	}
	c.depth++
	c.mu.Unlock()
}

// Exit decrements the nesting depth, unmasking interrupts when it reaches
// zero. Behavior is undefined if called without a matching prior Enter by
// the same goroutine.
func (c *CriticalSection) Exit() {
	c.mu.Lock()
	c.depth--
	if c.depth == 0 {
		c.owner = -1
		c.platform.UnlockInterrupts()
		c.cond.Broadcast()
	}
	c.mu.Unlock()
}

// EnterISR and ExitISR alias Enter/Exit, documenting at call sites that the
// code is standing in for an interrupt handler.
func (c *CriticalSection) EnterISR() { c.Enter() }
func (c *CriticalSection) ExitISR()  { c.Exit() }

// Masked reports whether the gate is currently held by any goroutine. Test
// and diagnostic use only.
func (c *CriticalSection) Masked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.depth > 0
}
