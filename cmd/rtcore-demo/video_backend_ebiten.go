// video_backend_ebiten.go - Ebiten-backed video surface for interactive builds
//go:build !headless

package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/zotley/rtcore"
)

// ebitenVideoBackend draws a single text-mode status line with
// basicfont.Face7x13, the same 40x25-console idiom scr_api.c wrote to VGA
// text memory with, forwards relative mouse motion into the runtime, and
// renders the animation process's bouncing sprite.
type ebitenVideoBackend struct {
	mu         sync.Mutex
	statusLine string
	lastX      int
	lastY      int
	haveLast   bool
	spriteX    int
	spriteY    int

	rt       *rtcore.Runtime
	mousePID uint8
	done     chan struct{}
}

func newVideoBackend() (videoBackend, error) {
	return &ebitenVideoBackend{
		done:    make(chan struct{}),
		spriteX: screenWidth / 2,
		spriteY: screenHeight / 2,
	}, nil
}

func (v *ebitenVideoBackend) SetStatusLine(line string) {
	v.mu.Lock()
	v.statusLine = line
	v.mu.Unlock()
}

func (v *ebitenVideoBackend) SetSpritePosition(x, y int) {
	v.mu.Lock()
	v.spriteX, v.spriteY = x, y
	v.mu.Unlock()
}

func (v *ebitenVideoBackend) Run(ctx context.Context, rt *rtcore.Runtime, mousePID uint8) error {
	v.rt = rt
	v.mousePID = mousePID

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("rtcore-demo")

	go func() {
		<-ctx.Done()
		close(v.done)
	}()

	if err := ebiten.RunGame(v); err != nil && err != ebiten.Termination {
		return fmt.Errorf("video: ebiten run loop: %w", err)
	}
	return nil
}

func (v *ebitenVideoBackend) Close() error { return nil }

func (v *ebitenVideoBackend) Update() error {
	select {
	case <-v.done:
		return ebiten.Termination
	default:
	}

	x, y := ebiten.CursorPosition()
	v.mu.Lock()
	if v.haveLast {
		dx, dy := x-v.lastX, y-v.lastY
		if dx != 0 || dy != 0 {
			v.rt.EnterISR()
			v.rt.PostEvent(v.mousePID, encodeMouseEvent(int16(dx), int16(dy)))
			v.rt.ExitISR()
		}
	}
	v.lastX, v.lastY, v.haveLast = x, y, true
	v.mu.Unlock()
	return nil
}

const spriteSize = 8

func (v *ebitenVideoBackend) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	v.mu.Lock()
	line := v.statusLine
	sx, sy := v.spriteX, v.spriteY
	v.mu.Unlock()

	face := basicfont.Face7x13
	drawText(screen, face, line, 8, 24)

	sprite := ebiten.NewImage(spriteSize, spriteSize)
	sprite.Fill(color.RGBA{R: 0x20, G: 0xc0, B: 0xff, A: 0xff})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(sx-spriteSize/2), float64(sy-spriteSize/2))
	screen.DrawImage(sprite, op)
}

func (v *ebitenVideoBackend) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func drawText(dst *ebiten.Image, face font.Face, s string, x, y int) {
	img := image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
	dst.DrawImage(ebiten.NewImageFromImage(img), nil)
}
