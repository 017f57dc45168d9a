// tick_source.go - Wall-clock driver for Runtime.TimerTick

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/zotley/rtcore"
)

// runTickSource calls Runtime.TimerTick once per interval, standing in for
// a PIT-driven tick source in hardware: the core has no notion of wall-clock
// time, so something outside it must drive the tick.
func runTickSource(ctx context.Context, rt *rtcore.Runtime, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if dropped := rt.TimerTick(); dropped > 0 {
				fmt.Fprintf(logWriter, "timer: dropped %d expired timer(s), expiry queue full\n", dropped)
			}
		}
	}
}
