// keyboard_process.go - Raw-mode keyboard reader feeding events into the runtime

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/zotley/rtcore"
)

// runKeyboardISR puts stdin into raw, non-blocking mode and posts one event
// per keystroke to the keyboard-consumer process's queue — this plays the
// same role kbd_process.c's interrupt handler does in the original: a
// producer entirely outside the scheduler, synchronized only through
// Runtime.PostEvent. Mirrors terminal_host.go's TerminalHost.Start loop.
func runKeyboardISR(ctx context.Context, rt *rtcore.Runtime, pid uint8) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// Not an interactive terminal (piped input, CI, etc). Fall back to
		// line-buffered reads so the demo still runs headless.
		return readLines(ctx, rt, pid)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("keyboard: entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	if err := syscall.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("keyboard: setting stdin nonblocking: %w", err)
	}
	defer syscall.SetNonblock(fd, false)

	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := syscall.Read(fd, buf)
		if n > 0 {
			b := buf[0]
			if b == '\r' {
				b = '\n'
			}
			if b == 0x7F { // DEL, sent by modern terminals for Backspace
				b = 0x08
			}
			if b == 0x03 { // Ctrl-C
				return nil
			}
			rt.EnterISR()
			rt.PostEvent(pid, []byte{b})
			rt.ExitISR()
			continue
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return fmt.Errorf("keyboard: reading stdin: %w", err)
		}
	}
}

func readLines(ctx context.Context, rt *rtcore.Runtime, pid uint8) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		for _, b := range append(scanner.Bytes(), '\n') {
			rt.EnterISR()
			rt.PostEvent(pid, []byte{b})
			rt.ExitISR()
		}
	}
	return scanner.Err()
}

// keyboardConsumer drains the raw keystroke queue, assembles completed
// lines, and posts each one on to the logger and script processes — the
// RTC equivalent of kbd_process.c's line editor handing a finished line to
// whichever consumer registered for it.
func keyboardConsumer(video videoBackend) rtcore.ProcessCallback {
	var line []byte
	return func(arg any) {
		rt := arg.(*rtcore.Runtime)
		var b [1]byte
		for {
			if !rt.GetEvent(b[:]) {
				return
			}
			if b[0] == '\n' || b[0] == '\r' {
				event := encodeLogEvent(fmt.Sprintf("kbd: %s", string(line)))
				rt.PostEvent(loggerPID, event)
				rt.PostEvent(scriptPID, event)
				video.SetStatusLine(fmt.Sprintf("you typed: %s", string(line)))
				line = line[:0]
				continue
			}
			line = append(line, b[0])
		}
	}
}
