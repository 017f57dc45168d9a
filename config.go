// config.go - Runtime sizing and feature knobs

package rtcore

// ProcessDisabled is the execution-delay sentinel that suppresses a process
// from ever being invoked, without decrementing its skip counter.
const ProcessDisabled = -1

// TimerProcessPID is the reserved process id for the internal timer-dispatch
// process, installed by NewRuntime when Config.EnableTimers is set.
const TimerProcessPID = 0

// Config bounds a Runtime's caller-provided storage. All fields describe
// capacities fixed for the lifetime of the Runtime; nothing here is resized.
type Config struct {
	// MaxProcesses is the capacity of the process table, not counting the
	// reserved timer-dispatch slot (that slot is additional when
	// EnableTimers is set).
	MaxProcesses int

	// MaxTimers is the capacity of the timer array and, by construction,
	// of the expiry queue that drains it.
	MaxTimers int

	// EnableTimers selects whether the timer subsystem is constructed at
	// all: when false, every timer operation fails and no expiry queue or
	// dispatch process is created.
	EnableTimers bool
}

// DefaultConfig returns sane defaults for a small embedded-style deployment:
// 16 processes, 16 timers, timers enabled.
func DefaultConfig() Config {
	return Config{
		MaxProcesses: 16,
		MaxTimers:    16,
		EnableTimers: true,
	}
}
