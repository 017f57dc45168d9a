// timer.go - Delta-queue software timers and expiry dispatch

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

// TimeoutHandler is invoked once per expired timer, by the internal
// timer-dispatch process, with the timer's id and opaque argument. It runs
// in the cooperative scheduler's context, never from TimerTick's caller.
type TimeoutHandler func(timerID uint8, arg any)

// timer is one installed software timer. The active portion of rt.timers
// is kept sorted by absolute expiration ascending, but stored as relative
// deltas — ticks holds the number of ticks between the previous active
// timer's expiration and this one's (or between "now" and this one's, for
// the head).
type timer struct {
	handler TimeoutHandler
	arg     any
	timerID uint8
	ticks   int
}

// expiredTimer is the wire shape pushed onto the expiry queue: just enough
// to dispatch the handler, copied by value the way Queue copies every item.
type expiredTimer struct {
	handler TimeoutHandler
	arg     any
	timerID uint8
}

// InstallTimeoutHandler installs handler to fire after exactly ticks ticks
// from now, identified by timerID. Returns false if the timer array is
// full or timers are disabled.
func (rt *Runtime) InstallTimeoutHandler(handler TimeoutHandler, arg any, timerID uint8, ticks int) bool {
	if !rt.cfg.EnableTimers {
		return false
	}

	rt.cs.Enter()
	defer rt.cs.Exit()

	return rt.installTimeoutHandlerLocked(handler, arg, timerID, ticks)
}

func (rt *Runtime) installTimeoutHandlerLocked(handler TimeoutHandler, arg any, timerID uint8, ticks int) bool {
	if len(rt.timers) == cap(rt.timers) {
		return false
	}

	insertIndex := 0
	if len(rt.timers) > 0 {
		sumTicks := 0
		insertIndex = len(rt.timers) // default: after the last pending slot
		for n := rt.activeIndex; n < len(rt.timers); n++ {
			sumTicks += rt.timers[n].ticks
			if sumTicks > ticks {
				insertIndex = n
				break
			}
		}
	}

	// Shift timers at and after insertIndex one slot toward higher indices.
	rt.timers = append(rt.timers, timer{})
	copy(rt.timers[insertIndex+1:], rt.timers[insertIndex:len(rt.timers)-1])

	rt.timers[insertIndex] = timer{handler: handler, arg: arg, timerID: timerID}

	sumBefore := 0
	for n := rt.activeIndex; n < insertIndex; n++ {
		sumBefore += rt.timers[n].ticks
	}
	rt.timers[insertIndex].ticks = ticks - sumBefore

	if insertIndex+1 < len(rt.timers) {
		rt.timers[insertIndex+1].ticks -= rt.timers[insertIndex].ticks
	}

	if insertIndex == 0 {
		rt.activeIndex = 0
	}

	return true
}

func (rt *Runtime) findTimerLocked(timerID uint8) int {
	for n := range rt.timers {
		if rt.timers[n].timerID == timerID {
			return n
		}
	}
	return -1
}

// RefreshTimer is equivalent to DeleteTimer(timerID) followed by
// InstallTimeoutHandler with the original handler and argument, firing
// ticks ticks from now. Returns false if timerID is unknown.
func (rt *Runtime) RefreshTimer(timerID uint8, ticks int) bool {
	if !rt.cfg.EnableTimers {
		return false
	}

	rt.cs.Enter()
	defer rt.cs.Exit()

	n := rt.findTimerLocked(timerID)
	if n < 0 {
		return false
	}
	handler := rt.timers[n].handler
	arg := rt.timers[n].arg

	rt.deleteTimerLocked(n)
	return rt.installTimeoutHandlerLocked(handler, arg, timerID, ticks)
}

// DeleteTimer removes the timer identified by timerID from the timer array,
// whether it is still pending or sits in the already-expired region. An
// expiration already published to the expiry queue is not withdrawn and is
// still dispatched. Returns false if timerID is unknown.
func (rt *Runtime) DeleteTimer(timerID uint8) bool {
	if !rt.cfg.EnableTimers {
		return false
	}

	rt.cs.Enter()
	defer rt.cs.Exit()

	n := rt.findTimerLocked(timerID)
	if n < 0 {
		return false
	}
	rt.deleteTimerLocked(n)
	return true
}

func (rt *Runtime) deleteTimerLocked(n int) {
	last := len(rt.timers) - 1

	if n == last {
		rt.timers = rt.timers[:last]
	} else {
		// Fold the deleted slot's delta into its successor so the
		// successor's absolute expiration is preserved, then compact.
		rt.timers[n+1].ticks += rt.timers[n].ticks
		copy(rt.timers[n:last], rt.timers[n+1:])
		rt.timers = rt.timers[:last]
	}

	if n < rt.activeIndex {
		rt.activeIndex--
	}
}

// TimerTick advances every pending timer by one tick. If the head pending
// timer's delta reaches zero it, and every subsequent timer sharing that
// same expiration, is published to the expiry queue. Intended to be called
// once per host tick from whatever stands in for the timer ISR. Returns the
// number of expirations that could not be published because the expiry
// queue was full (0 in the overwhelming common case), so a caller can
// observe and log drops instead of having them silently discarded.
func (rt *Runtime) TimerTick() int {
	if !rt.cfg.EnableTimers {
		return 0
	}

	rt.cs.Enter()
	defer rt.cs.Exit()

	if rt.activeIndex == cap(rt.timers) {
		return 0
	}
	if rt.activeIndex >= len(rt.timers) {
		return 0
	}

	rt.timers[rt.activeIndex].ticks--

	dropped := 0
	for n := rt.activeIndex; n < len(rt.timers); n++ {
		if rt.timers[n].ticks != 0 {
			break
		}
		rt.activeIndex++
		t := rt.timers[n]
		if !rt.expiryQueue.push(expiredTimer{handler: t.handler, arg: t.arg, timerID: t.timerID}) {
			dropped++
		}
	}
	return dropped
}

// timerDispatchProcess drains the expiry queue and invokes each expired
// timer's handler, in the order ticks produced them. Registered by
// NewRuntime at TimerProcessPID when Config.EnableTimers is set; this is
// the one process a handler may legally call RefreshTimer from to become
// periodic.
func timerDispatchProcess(arg any) {
	rt := arg.(*Runtime)
	for {
		et, ok := rt.expiryQueue.pop()
		if !ok {
			return
		}
		et.handler(et.timerID, et.arg)
	}
}
