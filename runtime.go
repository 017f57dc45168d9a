// runtime.go - Runtime construction and the cooperative scheduler loop

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

// Runtime owns every piece of shared state that would otherwise be
// module-level globals — process table, timer array, active-process
// cursor — on one value constructed once at startup and passed by
// reference to every caller.
type Runtime struct {
	cfg      Config
	platform Platform
	cs       *CriticalSection

	processes     []*Process
	n             int // round-robin cursor into processes
	activeProcess *Process

	timers      []timer // len == installed count, cap == cfg.MaxTimers
	activeIndex int
	expiryQueue *ring[expiredTimer]
}

// NewRuntime constructs a Runtime with the given capacities. platform may
// be nil, in which case NoopPlatform is used (sufficient for any purely
// in-process deployment — see platform.go). When cfg.EnableTimers is set,
// this also registers the internal timer-dispatch process at
// TimerProcessPID.
func NewRuntime(cfg Config, platform Platform) (*Runtime, error) {
	if cfg.MaxProcesses < 0 || cfg.MaxTimers < 0 {
		return nil, ErrInvalidConfig
	}
	if platform == nil {
		platform = NoopPlatform{}
	}

	cs := NewCriticalSection(platform)
	rt := &Runtime{
		cfg:      cfg,
		platform: platform,
		cs:       cs,
		timers:   make([]timer, 0, cfg.MaxTimers),
	}

	if cfg.EnableTimers {
		rt.expiryQueue = newRing[expiredTimer](cs, cfg.MaxTimers)

		dispatch := &Process{
			callback: timerDispatchProcess,
			arg:      rt,
			pid:      TimerProcessPID,
			queue:    NewQueue(cs, 0, 0),
		}
		cs.Enter()
		rt.addProcessLocked(dispatch)
		cs.Exit()
	}

	return rt, nil
}

// EnterCritical and ExitCritical expose the runtime's nesting gate directly,
// for application code that wants to bracket several API calls — e.g. two
// PostEvent calls from the same simulated ISR — in one uninterruptible
// region.
func (rt *Runtime) EnterCritical() { rt.cs.Enter() }
func (rt *Runtime) ExitCritical()  { rt.cs.Exit() }

// EnterISR and ExitISR are the ISR-entry aliases of EnterCritical/
// ExitCritical.
func (rt *Runtime) EnterISR() { rt.cs.EnterISR() }
func (rt *Runtime) ExitISR()  { rt.cs.ExitISR() }

// NumProcesses reports how many processes are currently registered,
// including the reserved timer-dispatch process when timers are enabled.
func (rt *Runtime) NumProcesses() int {
	rt.cs.Enter()
	defer rt.cs.Exit()
	return len(rt.processes)
}

// Step runs one iteration of the scheduler's round-robin loop, factored out
// of Start so it can be driven a fixed number of times by callers and tests
// instead of only ever from an unbounded Start call. It reports whether a
// process callback ran this step.
func (rt *Runtime) Step() bool {
	rt.cs.Enter()
	numProcesses := len(rt.processes)
	if numProcesses == 0 {
		rt.cs.Exit()
		return false
	}

	p := rt.processes[rt.n]
	rt.activeProcess = p

	invoke := p.iterationsRemaining == 0
	if invoke {
		p.iterationsRemaining = p.execDelay
	} else if p.execDelay != ProcessDisabled {
		p.iterationsRemaining--
	}

	rt.n = (rt.n + 1) % numProcesses
	rt.cs.Exit()

	if invoke {
		p.callback(p.arg)
	}
	return invoke
}

// Start enters the scheduler and never returns: it calls Step in an
// unbounded loop. Run it on its own goroutine when the caller also needs to
// drive producers (PostEvent, TimerTick) concurrently.
func (rt *Runtime) Start() {
	for {
		rt.Step()
	}
}
