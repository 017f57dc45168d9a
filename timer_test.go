// timer_test.go - Tests for the delta-queue software timer subsystem

package rtcore

import "testing"

func newTimerRuntime(t *testing.T, maxTimers int) *Runtime {
	t.Helper()
	rt, err := NewRuntime(Config{MaxProcesses: 1, MaxTimers: maxTimers, EnableTimers: true}, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	return rt
}

// runDispatch steps the scheduler enough times to let the internal
// timer-dispatch process (the only registered process when no others have
// been added) drain the expiry queue after a TimerTick.
func runDispatch(rt *Runtime) {
	rt.Step()
}

// Three timers installed out of order produce the delta sequence
// [50, 25, 25] and publish in ascending absolute order.
func TestTimerOrderingProducesAscendingDeltas(t *testing.T) {
	rt := newTimerRuntime(t, 4)

	var fired []uint8
	record := func(id uint8) TimeoutHandler {
		return func(timerID uint8, _ any) { fired = append(fired, timerID) }
	}

	if !rt.InstallTimeoutHandler(record(1), nil, 1, 100) {
		t.Fatal("installing T1 failed")
	}
	if !rt.InstallTimeoutHandler(record(2), nil, 2, 50) {
		t.Fatal("installing T2 failed")
	}
	if !rt.InstallTimeoutHandler(record(3), nil, 3, 75) {
		t.Fatal("installing T3 failed")
	}

	wantDeltas := []int{50, 25, 25}
	wantIDs := []uint8{2, 3, 1}
	if len(rt.timers) != 3 {
		t.Fatalf("len(timers) = %d, expected 3", len(rt.timers))
	}
	for i, want := range wantDeltas {
		if rt.timers[i].ticks != want {
			t.Fatalf("timers[%d].ticks = %d, expected %d", i, rt.timers[i].ticks, want)
		}
		if rt.timers[i].timerID != wantIDs[i] {
			t.Fatalf("timers[%d].timerID = %d, expected %d", i, rt.timers[i].timerID, wantIDs[i])
		}
	}

	tickAndDispatch := func(n int) {
		for i := 0; i < n; i++ {
			rt.TimerTick()
			runDispatch(rt)
		}
	}

	tickAndDispatch(50)
	if len(fired) != 1 || fired[0] != 2 {
		t.Fatalf("after 50 ticks fired = %v, expected [2]", fired)
	}

	tickAndDispatch(25)
	if len(fired) != 2 || fired[1] != 3 {
		t.Fatalf("after 75 ticks fired = %v, expected [2 3]", fired)
	}

	tickAndDispatch(25)
	if len(fired) != 3 || fired[2] != 1 {
		t.Fatalf("after 100 ticks fired = %v, expected [2 3 1]", fired)
	}
}

// A timer installed for T ticks is published exactly once, exactly T ticks
// after installation, absent any intervening install/refresh/delete.
func TestTickAccountingPublishesExactlyOnce(t *testing.T) {
	rt := newTimerRuntime(t, 2)

	count := 0
	if !rt.InstallTimeoutHandler(func(uint8, any) { count++ }, nil, 1, 10) {
		t.Fatal("install failed")
	}

	for i := 0; i < 9; i++ {
		rt.TimerTick()
		runDispatch(rt)
	}
	if count != 0 {
		t.Fatalf("fired %d times after 9 ticks, expected 0", count)
	}

	rt.TimerTick()
	runDispatch(rt)
	if count != 1 {
		t.Fatalf("fired %d times after 10 ticks, expected exactly 1", count)
	}

	for i := 0; i < 20; i++ {
		rt.TimerTick()
		runDispatch(rt)
	}
	if count != 1 {
		t.Fatalf("fired %d times after 30 total ticks, expected still exactly 1 (one-shot)", count)
	}
}

// RefreshTimer leaves the handler and argument associated with id
// unchanged and resets its absolute expiration to now + t.
func TestRefreshTimerPreservesHandlerAndArg(t *testing.T) {
	rt := newTimerRuntime(t, 2)

	type payload struct{ tag string }
	arg := &payload{tag: "original"}
	var gotArg any
	count := 0
	handler := func(_ uint8, a any) {
		count++
		gotArg = a
	}

	if !rt.InstallTimeoutHandler(handler, arg, 1, 100) {
		t.Fatal("install failed")
	}
	if !rt.RefreshTimer(1, 10) {
		t.Fatal("refresh failed")
	}

	for i := 0; i < 9; i++ {
		rt.TimerTick()
		runDispatch(rt)
	}
	if count != 0 {
		t.Fatalf("fired early, count=%d", count)
	}
	rt.TimerTick()
	runDispatch(rt)
	if count != 1 {
		t.Fatalf("count=%d after refreshed expiration, expected 1", count)
	}
	if gotArg.(*payload) != arg {
		t.Fatal("refresh changed the timer's associated argument")
	}
}

func TestRefreshTimerUnknownIDFails(t *testing.T) {
	rt := newTimerRuntime(t, 2)
	if rt.RefreshTimer(7, 10) {
		t.Fatal("RefreshTimer on an unknown id succeeded, expected failure")
	}
}

// A periodic timer refreshes itself from within its own handler and fires
// exactly 10 times over 100 ticks.
func TestPeriodicTimerRefreshesItself(t *testing.T) {
	rt := newTimerRuntime(t, 2)

	count := 0
	var handler TimeoutHandler
	handler = func(timerID uint8, arg any) {
		count++
		rt.RefreshTimer(timerID, 10)
	}
	if !rt.InstallTimeoutHandler(handler, nil, 1, 10) {
		t.Fatal("install failed")
	}

	for i := 0; i < 100; i++ {
		rt.TimerTick()
		runDispatch(rt)
	}

	if count != 10 {
		t.Fatalf("handler invoked %d times over 100 ticks, expected exactly 10", count)
	}
}

// Install, refresh to a longer delay, then delete; no expiries should
// follow.
func TestRefreshThenDeleteLeavesNoExpiries(t *testing.T) {
	rt := newTimerRuntime(t, 2)

	count := 0
	if !rt.InstallTimeoutHandler(func(uint8, any) { count++ }, nil, 1, 100) {
		t.Fatal("install failed")
	}
	if !rt.RefreshTimer(1, 200) {
		t.Fatal("refresh failed")
	}
	if !rt.DeleteTimer(1) {
		t.Fatal("delete failed")
	}

	for i := 0; i < 500; i++ {
		rt.TimerTick()
		runDispatch(rt)
	}

	if count != 0 {
		t.Fatalf("fired %d times after delete, expected 0", count)
	}
	if len(rt.timers) != 0 {
		t.Fatalf("len(timers) = %d after deleting the only timer, expected 0", len(rt.timers))
	}
}

func TestDeleteTimerUnknownIDFails(t *testing.T) {
	rt := newTimerRuntime(t, 2)
	if rt.DeleteTimer(42) {
		t.Fatal("DeleteTimer on an unknown id succeeded, expected failure")
	}
}

func TestInstallTimeoutHandlerRejectsWhenArrayFull(t *testing.T) {
	rt := newTimerRuntime(t, 1)
	if !rt.InstallTimeoutHandler(func(uint8, any) {}, nil, 1, 10) {
		t.Fatal("first install failed, expected success")
	}
	if rt.InstallTimeoutHandler(func(uint8, any) {}, nil, 2, 20) {
		t.Fatal("second install succeeded on a timer array of capacity 1")
	}
}

func TestTimerOperationsFailWhenTimersDisabled(t *testing.T) {
	rt, err := NewRuntime(Config{MaxProcesses: 1, EnableTimers: false}, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	if rt.InstallTimeoutHandler(func(uint8, any) {}, nil, 1, 10) {
		t.Fatal("InstallTimeoutHandler succeeded with timers disabled")
	}
	if rt.RefreshTimer(1, 10) {
		t.Fatal("RefreshTimer succeeded with timers disabled")
	}
	if rt.DeleteTimer(1) {
		t.Fatal("DeleteTimer succeeded with timers disabled")
	}
	if rt.TimerTick() != 0 {
		t.Fatal("TimerTick returned nonzero drop count with timers disabled")
	}
}

// Overflow of the expiry queue on TimerTick is reported back to the caller
// as a drop count rather than silently swallowed. The expiry queue is
// sized to MaxTimers, matching the most
// simultaneous pending timers the array can ever hold, so a single
// TimerTick call can never overflow it on its own. Overflow is reachable
// only when a prior batch of expirations is left undrained (dispatch
// process never stepped) and the array slots they occupied are then
// recycled via an explicit DeleteTimer: the freed slot lets a new timer
// install and immediately expire into a queue that is still full of the
// earlier, undispatched entries.
func TestTimerTickReportsDropsOnExpiryQueueOverflow(t *testing.T) {
	rt := newTimerRuntime(t, 2)

	if !rt.InstallTimeoutHandler(func(uint8, any) {}, nil, 1, 1) {
		t.Fatal("install T1 failed")
	}
	if !rt.InstallTimeoutHandler(func(uint8, any) {}, nil, 2, 1) {
		t.Fatal("install T2 failed")
	}

	// Both expire on the same tick, filling the capacity-2 expiry queue.
	// The dispatch process is deliberately never stepped, so nothing
	// drains it.
	if dropped := rt.TimerTick(); dropped != 0 {
		t.Fatalf("first tick dropped %d, expected 0 (queue has exactly enough room)", dropped)
	}

	// T1's now-stale array slot is freed explicitly, making room for a
	// third timer without touching the still-full expiry queue.
	if !rt.DeleteTimer(1) {
		t.Fatal("deleting the expired T1 slot failed")
	}
	if !rt.InstallTimeoutHandler(func(uint8, any) {}, nil, 3, 1) {
		t.Fatal("install T3 failed")
	}

	if dropped := rt.TimerTick(); dropped != 1 {
		t.Fatalf("second tick dropped %d, expected 1 (queue still full of undispatched entries)", dropped)
	}
}
