// goid.go - Goroutine-identity extraction

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

// Package goid extracts the calling goroutine's runtime-assigned id.
//
// There is no supported API for this in Go. The critical-section gate in the
// parent package needs it anyway: it models a single nestable interrupt
// mask, and the only way to let that nesting survive being driven by
// goroutine-simulated ISRs without either deadlocking on re-entry or racing
// two unrelated goroutines into believing they share one nesting level is to
// key the depth counter off the actual caller. Parsing it out of
// runtime.Stack is the well-worn (if inelegant) way this is done when a
// package truly cannot avoid it; it is used nowhere else in this module.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// Current returns the id of the calling goroutine.
func Current() int64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]
	buf = bytes.TrimPrefix(buf, goroutinePrefix)
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		// Should be unreachable given the runtime's own stack header format.
		return -1
	}
	return id
}
