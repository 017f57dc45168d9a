// errors.go - Sentinel errors for construction and registration failures

package rtcore

import "errors"

// Construction-time and precondition errors. The hot-path operations
// (PostEvent, GetEvent, timer install/refresh/delete, SetExecDelay) keep a
// plain boolean contract, and AddProcess reports a full table the same way
// (false, nil); these sentinels are reserved for NewRuntime and for the one
// precondition violation worth catching in software rather than leaving
// undefined, which AddProcess returns as its error.
var (
	// ErrInvalidConfig is returned by NewRuntime when a capacity is < 0.
	ErrInvalidConfig = errors.New("rtcore: invalid config")

	// ErrPIDReserved is returned by AddProcess when the caller tries to
	// register TimerProcessPID while timers are enabled.
	ErrPIDReserved = errors.New("rtcore: pid is reserved for the timer-dispatch process")
)
