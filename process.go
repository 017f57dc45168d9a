// process.go - Process table, round-robin dispatch, and event queues

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

// ProcessCallback is the function invoked once per scheduler visit when a
// process is due to run. It receives the opaque argument supplied at
// AddProcess time, carrying whatever state the callback needs without the
// core knowing its type.
type ProcessCallback func(arg any)

// Process is one registered run-to-completion task. PID is a small
// caller-chosen identifier; callers must not reuse one across two
// registrations (AddProcess does not check uniqueness, except for the
// reserved timer pid, which is rejected explicitly).
type Process struct {
	callback ProcessCallback
	arg      any
	pid      uint8

	execDelay           int // ProcessDisabled suppresses invocation entirely
	iterationsRemaining int
	queue               *Queue
}

// PID returns the process's identifier.
func (p *Process) PID() uint8 { return p.pid }

// addProcessLocked appends a new process record. Returns false when the
// table already holds MaxProcesses entries plus the reserved timer-dispatch
// slot (counted only when timers are enabled).
func (rt *Runtime) addProcessLocked(p *Process) bool {
	if len(rt.processes) >= rt.cfg.MaxProcesses+rt.reservedSlots() {
		return false
	}
	rt.processes = append(rt.processes, p)
	return true
}

// AddProcess registers a new process, backed by a fixed-size event queue of
// queueCapacity items of itemSize bytes each (either may be zero for a
// process with no inbound events). Returns false if the process table is
// full. Returns ErrPIDReserved if pid collides with the internal
// timer-dispatch process while timers are enabled, rather than silently
// colliding with it.
func (rt *Runtime) AddProcess(callback ProcessCallback, arg any, pid uint8, queueCapacity, itemSize int) (bool, error) {
	if rt.cfg.EnableTimers && pid == TimerProcessPID {
		return false, ErrPIDReserved
	}

	p := &Process{
		callback: callback,
		arg:      arg,
		pid:      pid,
		queue:    NewQueue(rt.cs, queueCapacity, itemSize),
	}

	rt.cs.Enter()
	ok := rt.addProcessLocked(p)
	rt.cs.Exit()
	return ok, nil
}

// findProcessLocked performs a linear search by pid. Caller must already
// hold rt.cs.
func (rt *Runtime) findProcessLocked(pid uint8) *Process {
	for _, p := range rt.processes {
		if p.pid == pid {
			return p
		}
	}
	return nil
}

// SetExecDelay sets the number of scheduler passes skipped between
// invocations of the process identified by pid. A delay of zero means
// "invoke every pass"; ProcessDisabled suppresses invocation indefinitely
// without decrementing the skip counter. Returns false if pid is unknown.
//
// The target process's own iterationsRemaining is reset to its own new
// delay, not to whatever process happens to be active when SetExecDelay is
// called.
func (rt *Runtime) SetExecDelay(pid uint8, delay int) bool {
	rt.cs.Enter()
	defer rt.cs.Exit()

	p := rt.findProcessLocked(pid)
	if p == nil {
		return false
	}
	p.execDelay = delay
	p.iterationsRemaining = delay
	return true
}

// PostEvent pushes item onto the event queue of the process identified by
// pid. Safe to call concurrently with the scheduler loop and with other
// PostEvent/TimerTick callers — this is the interrupt-safe entry point for
// posting events from outside the scheduler. Returns false if pid is
// unknown or the queue is full.
func (rt *Runtime) PostEvent(pid uint8, item []byte) bool {
	rt.cs.Enter()
	p := rt.findProcessLocked(pid)
	rt.cs.Exit()

	if p == nil {
		return false
	}
	return p.queue.Push(item)
}

// GetEvent pops one event from the currently active process's queue. Valid
// only when called from within a process callback; calling it outside a
// callback is a precondition violation with undefined behavior.
func (rt *Runtime) GetEvent(dest []byte) bool {
	rt.cs.Enter()
	active := rt.activeProcess
	rt.cs.Exit()

	if active == nil {
		return false
	}
	return active.queue.Pop(dest)
}

func (rt *Runtime) reservedSlots() int {
	if rt.cfg.EnableTimers {
		return 1
	}
	return 0
}
