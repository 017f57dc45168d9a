// mouse_process.go - Pointer tracking process posting motion events

package main

import (
	"encoding/binary"
	"fmt"

	"github.com/zotley/rtcore"
)

// mouseEventSize is the width of a posted mouse sample: two signed 16-bit
// deltas, mirroring mouse_process.c's packed dx/dy report.
const mouseEventSize = 4

func encodeMouseEvent(dx, dy int16) []byte {
	b := make([]byte, mouseEventSize)
	binary.LittleEndian.PutUint16(b[0:2], uint16(dx))
	binary.LittleEndian.PutUint16(b[2:4], uint16(dy))
	return b
}

func decodeMouseEvent(b []byte) (dx, dy int16) {
	dx = int16(binary.LittleEndian.Uint16(b[0:2]))
	dy = int16(binary.LittleEndian.Uint16(b[2:4]))
	return
}

// mouseConsumer drains mouse-delta samples posted by the video backend's
// input polling and feeds a running cursor position back to the status
// line — the RTC analogue of mouse_process.c's position accumulator.
func mouseConsumer(video videoBackend) rtcore.ProcessCallback {
	var x, y int
	return func(arg any) {
		rt := arg.(*rtcore.Runtime)
		var buf [mouseEventSize]byte
		moved := false
		for rt.GetEvent(buf[:]) {
			dx, dy := decodeMouseEvent(buf[:])
			x += int(dx)
			y += int(dy)
			moved = true
		}
		if moved {
			video.SetStatusLine(fmt.Sprintf("mouse: %d,%d", x, y))
		}
	}
}
