// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"image"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/drawlist/internal/config"
)

// imageSource is implemented by renderers whose canvas can be read back.
type imageSource interface {
	Image() image.Image
}

// runWindow opens a window and presents every rendered frame until the
// window is closed or Escape is pressed.
func runWindow(v *Viewer, src imageSource, cfg config.Window, log *slog.Logger) error {
	g := &game{v: v, src: src, log: log}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetTPS(60)

	log.Info("window opened", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return ebiten.RunGame(g)
}

// game adapts a Viewer to ebiten.Game.
type game struct {
	v   *Viewer
	src imageSource
	log *slog.Logger

	rgba    *image.RGBA
	lastErr string
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.v.World.Autoplay = !g.v.World.Autoplay
		g.log.Info("autoplay toggled", "on", g.v.World.Autoplay)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.v.World.Board.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.v.Overlay.Toggle()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.v.Click(x, y)
	}
	dt := 1 / float64(ebiten.TPS())
	g.moveCamera(dt)
	g.v.World.Tick(dt)
	return nil
}

// panSpeed is in view widths per second.
const panSpeed = 1.5

// moveCamera pans with the arrow keys, zooms with the wheel and resets the
// view on C.
func (g *game) moveCamera(dt float64) {
	cam := g.v.Camera
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		cam.Reset()
		return
	}
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy++
	}
	if dx != 0 || dy != 0 {
		step := panSpeed * cam.Bounds().Width() * dt
		cam.Pan(dx*step, dy*step)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		cam.Zoom(math.Pow(0.9, wy))
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	if _, err := g.v.Render(); err != nil {
		// Failed groups repeat every frame; log each distinct failure once.
		if msg := err.Error(); msg != g.lastErr {
			g.lastErr = msg
			g.log.Warn("frame incomplete", "err", err)
		}
	} else {
		g.lastErr = ""
	}
	screen.WritePixels(g.pixels(g.src.Image()))
}

// pixels returns img as premultiplied RGBA bytes.
func (g *game) pixels(img image.Image) []byte {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba.Pix
	}
	b := img.Bounds()
	if g.rgba == nil || g.rgba.Bounds() != b {
		g.rgba = image.NewRGBA(b)
	}
	xdraw.Copy(g.rgba, b.Min, img, b, xdraw.Src, nil)
	return g.rgba.Pix
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.v.Resize(max(outsideWidth, 1), max(outsideHeight, 1))
	l := g.v.Layout().Screen
	return l.Width, l.Height
}
