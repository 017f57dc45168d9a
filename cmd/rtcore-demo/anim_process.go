// anim_process.go - Timer-driven animation frame advance

package main

import "github.com/zotley/rtcore"

// animEventSize is the width of a posted animation tick: a single,
// content-free byte — the animation process only cares that a timer fired,
// not what it carries.
const animEventSize = 1

// animSpeed is how many pixels the sprite moves per tick, in each axis.
const animSpeed = 4

// animConsumer drains one tick event per invocation and advances a
// bouncing sprite within the backend's drawable area, reversing direction
// off each edge — the RTC stand-in for the VGA rotozoomer/animation loop
// scr_api.c and main.c drove from a busy-poll; here a periodic software
// timer posts the tick instead.
func animConsumer(video videoBackend, width, height int) rtcore.ProcessCallback {
	x, y := width/2, height/2
	dx, dy := animSpeed, animSpeed
	return func(arg any) {
		rt := arg.(*rtcore.Runtime)
		var buf [animEventSize]byte
		advanced := false
		for rt.GetEvent(buf[:]) {
			x += dx
			y += dy
			if x <= 0 || x >= width {
				dx = -dx
				x += dx
			}
			if y <= 0 || y >= height {
				dy = -dy
				y += dy
			}
			advanced = true
		}
		if advanced {
			video.SetSpritePosition(x, y)
		}
	}
}

// animHandler posts a tick to animPID and refreshes itself, turning a
// one-shot InstallTimeoutHandler into the periodic driver the animation
// process needs.
func animHandler(rt *rtcore.Runtime, ticks int) rtcore.TimeoutHandler {
	return func(timerID uint8, _ any) {
		rt.PostEvent(animPID, []byte{1})
		rt.RefreshTimer(timerID, ticks)
	}
}
