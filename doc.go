// doc.go - Package overview for the rtcore runtime

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

// Package rtcore implements a minimal cooperative runtime for event-driven
// applications: a run-to-completion process scheduler, per-process event
// queues for inter-process communication and ISR-to-task signalling, a
// delta-queue software-timer subsystem driven by an external tick, and a
// nested critical-section gate that serialises state updates against
// whatever plays the role of an interrupt handler.
//
// Storage is allocated by the package itself, not supplied by the caller:
// NewRuntime allocates the timer array and the expiry queue up front, and
// AddProcess allocates each process record and its event queue at
// registration. The hot-path operations (posting and consuming events,
// installing, refreshing and deleting timers, ticking) reuse that storage
// and do not grow it.
package rtcore
