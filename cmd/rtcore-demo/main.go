// main.go - Demo program wiring every rtcore subsystem to real I/O
//
// Command rtcore-demo exercises every rtcore operation through concrete
// ISR-like goroutines and RTC processes: a keyboard reader, a logger, a
// mouse tracker, a Lua-scripted process, and a timer-driven status line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zotley/rtcore"
)

const (
	keyboardPID uint8 = 1
	loggerPID   uint8 = 2
	mousePID    uint8 = 3
	animPID     uint8 = 4
	scriptPID   uint8 = 5

	statusTimerID uint8 = 1
	beepTimerID   uint8 = 2
	animTimerID   uint8 = 3
	animTickTicks       = 5

	tickInterval = 10 * time.Millisecond
)

var logWriter = os.Stderr

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rtcore-demo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rt, err := rtcore.NewRuntime(rtcore.Config{
		MaxProcesses: 8,
		MaxTimers:    8,
		EnableTimers: true,
	}, nil)
	if err != nil {
		return fmt.Errorf("rtcore-demo: constructing runtime: %w", err)
	}

	logs := newLogState()
	beeper, err := newBeepBackend()
	if err != nil {
		return fmt.Errorf("rtcore-demo: audio backend: %w", err)
	}
	defer beeper.Close()

	video, err := newVideoBackend()
	if err != nil {
		return fmt.Errorf("rtcore-demo: video backend: %w", err)
	}
	defer video.Close()

	if ok, err := rt.AddProcess(keyboardConsumer(video), rt, keyboardPID, 64, 1); !ok {
		return fmt.Errorf("rtcore-demo: registering keyboard process: %w", err)
	}
	if ok, err := rt.AddProcess(loggerProcess(logs), rt, loggerPID, 32, logEventSize); !ok {
		return fmt.Errorf("rtcore-demo: registering logger process: %w", err)
	}
	if ok, err := rt.AddProcess(mouseConsumer(video), rt, mousePID, 32, mouseEventSize); !ok {
		return fmt.Errorf("rtcore-demo: registering mouse process: %w", err)
	}
	script, err := newScriptProcess(logs)
	if err != nil {
		return fmt.Errorf("rtcore-demo: loading script process: %w", err)
	}
	if ok, err := rt.AddProcess(script.run, rt, scriptPID, 16, logEventSize); !ok {
		return fmt.Errorf("rtcore-demo: registering script process: %w", err)
	}
	if ok, err := rt.AddProcess(animConsumer(video, screenWidth, screenHeight), rt, animPID, 4, animEventSize); !ok {
		return fmt.Errorf("rtcore-demo: registering animation process: %w", err)
	}

	if !rt.InstallTimeoutHandler(statusHandler(rt, video, logs), nil, statusTimerID, 50) {
		return fmt.Errorf("rtcore-demo: installing status timer")
	}
	if !rt.InstallTimeoutHandler(beepHandler(beeper), nil, beepTimerID, 300) {
		return fmt.Errorf("rtcore-demo: installing beep timer")
	}
	if !rt.InstallTimeoutHandler(animHandler(rt, animTickTicks), nil, animTimerID, animTickTicks) {
		return fmt.Errorf("rtcore-demo: installing animation timer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Start never returns, so the scheduler loop runs outside the group;
	// inside it, it would keep g.Wait from ever returning.
	go rt.Start()
	g.Go(func() error {
		return runTickSource(ctx, rt, tickInterval)
	})
	g.Go(func() error {
		return runKeyboardISR(ctx, rt, keyboardPID)
	})
	g.Go(func() error {
		return video.Run(ctx, rt, mousePID)
	})

	return g.Wait()
}

func statusHandler(rt *rtcore.Runtime, video videoBackend, logs *logState) rtcore.TimeoutHandler {
	return func(timerID uint8, _ any) {
		video.SetStatusLine(fmt.Sprintf("rtcore-demo  procs=%d  last=%s", rt.NumProcesses(), logs.lastLine()))
		rt.RefreshTimer(timerID, 50)
	}
}

func beepHandler(b audioBackend) rtcore.TimeoutHandler {
	return func(timerID uint8, arg any) {
		b.Beep()
	}
}
