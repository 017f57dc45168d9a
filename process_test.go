// process_test.go - Tests for process registration, dispatch, and event queues

package rtcore

import "testing"

func TestAddProcessRejectsWhenTableFull(t *testing.T) {
	rt, err := NewRuntime(Config{MaxProcesses: 2, EnableTimers: false}, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}

	noop := func(any) {}
	if ok, err := rt.AddProcess(noop, nil, 1, 0, 0); !ok || err != nil {
		t.Fatalf("first AddProcess = %v, %v; expected true, nil", ok, err)
	}
	if ok, err := rt.AddProcess(noop, nil, 2, 0, 0); !ok || err != nil {
		t.Fatalf("second AddProcess = %v, %v; expected true, nil", ok, err)
	}
	if ok, err := rt.AddProcess(noop, nil, 3, 0, 0); ok || err != nil {
		t.Fatalf("third AddProcess = %v, %v; expected false, nil on a full table", ok, err)
	}
}

// The internal timer-dispatch process reserves pid 0; registering another
// process there while timers are enabled must be rejected explicitly
// instead of silently colliding with the dispatch process.
func TestAddProcessRejectsReservedTimerPID(t *testing.T) {
	rt, err := NewRuntime(Config{MaxProcesses: 4, MaxTimers: 4, EnableTimers: true}, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}

	ok, err := rt.AddProcess(func(any) {}, nil, TimerProcessPID, 0, 0)
	if ok || err != ErrPIDReserved {
		t.Fatalf("AddProcess(pid=0) = %v, %v; expected false, ErrPIDReserved", ok, err)
	}
}

func TestAddProcessAllowsPIDZeroWhenTimersDisabled(t *testing.T) {
	rt, err := NewRuntime(Config{MaxProcesses: 4, EnableTimers: false}, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	if ok, err := rt.AddProcess(func(any) {}, nil, TimerProcessPID, 0, 0); !ok || err != nil {
		t.Fatalf("AddProcess(pid=0) = %v, %v; expected true, nil when timers are disabled", ok, err)
	}
}

// SetExecDelay must reset the target process's own iterationsRemaining,
// not whatever process happens to be active at call time.
func TestSetExecDelaySetsTargetsOwnDelay(t *testing.T) {
	rt, err := NewRuntime(Config{MaxProcesses: 4, EnableTimers: false}, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	rt.AddProcess(func(any) {}, nil, 1, 0, 0)
	rt.AddProcess(func(any) {}, nil, 2, 0, 0)

	if !rt.SetExecDelay(1, 5) {
		t.Fatal("SetExecDelay(1, 5) failed, expected success")
	}

	rt.cs.Enter()
	p1 := rt.findProcessLocked(1)
	p2 := rt.findProcessLocked(2)
	rt.cs.Exit()

	if p1.execDelay != 5 || p1.iterationsRemaining != 5 {
		t.Fatalf("process 1 execDelay=%d iterationsRemaining=%d, expected 5, 5", p1.execDelay, p1.iterationsRemaining)
	}
	if p2.execDelay != 0 || p2.iterationsRemaining != 0 {
		t.Fatalf("process 2 execDelay=%d iterationsRemaining=%d, expected untouched at 0, 0", p2.execDelay, p2.iterationsRemaining)
	}
}

func TestSetExecDelayUnknownPIDFails(t *testing.T) {
	rt, err := NewRuntime(Config{MaxProcesses: 4, EnableTimers: false}, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	if rt.SetExecDelay(99, 0) {
		t.Fatal("SetExecDelay on an unregistered pid succeeded, expected failure")
	}
}

func TestPostEventUnknownPIDFails(t *testing.T) {
	rt, err := NewRuntime(Config{MaxProcesses: 4, EnableTimers: false}, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	if rt.PostEvent(99, []byte{1}) {
		t.Fatal("PostEvent to an unregistered pid succeeded, expected failure")
	}
}

func TestGetEventOutsideCallbackFails(t *testing.T) {
	rt, err := NewRuntime(Config{MaxProcesses: 4, EnableTimers: false}, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	if rt.GetEvent(make([]byte, 1)) {
		t.Fatal("GetEvent succeeded with no active process, expected failure")
	}
}

// Two processes relay a single byte back and forth, each popping its own
// queue and posting to the peer only when it had something to pop. A
// single token changing hands once per active turn is conserved: across
// 10 strictly alternating turns (5 each) the token ends up back with
// whichever process held it after an even number of hops — here A, since
// A held it first — so the system ends with exactly one byte buffered in
// total and five transfers in each direction.
func TestPingPongRelayConservesSingleToken(t *testing.T) {
	rt, err := NewRuntime(Config{MaxProcesses: 4, EnableTimers: false}, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}

	const pidA, pidB uint8 = 1, 2
	var aToB, bToA int

	relay := func(self, peer uint8, sent *int) ProcessCallback {
		return func(any) {
			var b [1]byte
			if rt.GetEvent(b[:]) {
				var out byte
				if self == pidA {
					out = 0x01
				} else {
					out = 0x02
				}
				rt.PostEvent(peer, []byte{out})
				*sent++
			}
		}
	}

	if ok, _ := rt.AddProcess(relay(pidA, pidB, &aToB), nil, pidA, 4, 1); !ok {
		t.Fatal("AddProcess(A) failed")
	}
	if ok, _ := rt.AddProcess(relay(pidB, pidA, &bToA), nil, pidB, 4, 1); !ok {
		t.Fatal("AddProcess(B) failed")
	}

	if !rt.PostEvent(pidA, []byte{0x01}) {
		t.Fatal("seeding A's queue failed")
	}

	for i := 0; i < 10; i++ {
		rt.Step()
	}

	rt.cs.Enter()
	pA := rt.findProcessLocked(pidA)
	pB := rt.findProcessLocked(pidB)
	rt.cs.Exit()

	if total := pA.queue.Len() + pB.queue.Len(); total != 1 {
		t.Fatalf("combined buffered bytes = %d, expected 1 (the single token is conserved)", total)
	}
	if pA.queue.Len() != 1 {
		t.Fatalf("A's queue len = %d, expected 1 (token returns to A after an even number of hops)", pA.queue.Len())
	}
	if aToB != 5 || bToA != 5 {
		t.Fatalf("aToB=%d bToA=%d, expected 5 and 5", aToB, bToA)
	}
}
