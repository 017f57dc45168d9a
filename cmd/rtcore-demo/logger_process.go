// logger_process.go - Fixed-width log line process and clipboard mirror

package main

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zotley/rtcore"
)

// logEventSize is the fixed width of a formatted log line posted through
// Runtime.PostEvent: longer lines are truncated, shorter ones zero-padded,
// matching Queue's fixed-itemSize contract.
const logEventSize = 64

func encodeLogEvent(s string) []byte {
	b := make([]byte, logEventSize)
	copy(b, s)
	return b
}

func decodeLogEvent(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// logState is the in-memory ring of recently logged lines, standing in for
// log_process.c's circular text buffer. It also mirrors the last line to
// the system clipboard, the one piece of host-desktop surface the original
// embedded target never had.
type logState struct {
	mu            sync.Mutex
	lines         []string
	clipboardOnce sync.Once
	clipboardOK   bool
}

func newLogState() *logState {
	return &logState{}
}

func (l *logState) append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	if len(l.lines) > 200 {
		l.lines = l.lines[len(l.lines)-200:]
	}
}

func (l *logState) lastLine() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}

// copyLastLineToClipboard copies the most recent log line to the system
// clipboard, the feature cmd/rtcore-demo gives log_process.c's console
// output that a desktop host application would expect.
func (l *logState) copyLastLineToClipboard() {
	l.clipboardOnce.Do(func() {
		l.clipboardOK = clipboard.Init() == nil
	})
	if !l.clipboardOK {
		return
	}
	line := l.lastLine()
	if line == "" {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(line))
}

// loggerProcess drains formatted lines posted by other processes, prints
// them to stderr the way the teacher's host adapters report diagnostics,
// and copies each one to the system clipboard as it is logged.
func loggerProcess(logs *logState) rtcore.ProcessCallback {
	return func(arg any) {
		rt := arg.(*rtcore.Runtime)
		var buf [logEventSize]byte
		for rt.GetEvent(buf[:]) {
			line := decodeLogEvent(buf[:])
			fmt.Fprintf(logWriter, "logger: %s\n", line)
			logs.append(line)
			logs.copyLastLineToClipboard()
		}
	}
}
