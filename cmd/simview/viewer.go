// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/drawlist"
	"github.com/gogpu/drawlist/backend"
	"github.com/gogpu/drawlist/internal/config"
)

// textureAdder is implemented by renderers that accept sprite textures.
type textureAdder interface {
	AddTexture(name string, img image.Image)
}

// Viewer renders a World through one frame and one renderer, frame after
// frame.
type Viewer struct {
	World   *World
	Scene   Scene
	Camera  *Camera
	Overlay Overlay

	frame    *drawlist.Frame
	renderer backend.Renderer
	reg      *drawlist.KindRegistry
	kinds    []string
	log      *slog.Logger
	layout   Layout
	prev     drawlist.Stats
}

// NewViewer creates a viewer drawing into r at width x height.
func NewViewer(r backend.Renderer, cfg config.Config, log *slog.Logger, width, height int) *Viewer {
	opts := []drawlist.FrameOption{
		drawlist.WithLogger(log),
		drawlist.WithDebug(cfg.Debug.Builders),
	}
	if cfg.Render.BatchKeyOrdering {
		opts = append(opts, drawlist.WithBatchKeyOrdering())
	}
	reg := kindRegistry(r)
	v := &Viewer{
		World:    NewWorld(),
		Camera:   NewCamera(boardBounds),
		Overlay:  Overlay{Visible: cfg.Debug.Overlay},
		frame:    drawlist.NewFrame(opts...),
		renderer: r,
		reg:      reg,
		kinds:    reg.Kinds(),
		log:      log,
		layout:   NewLayout(width, height),
	}
	if missing := missingKinds(reg); len(missing) > 0 {
		log.Warn("renderer lacks kinds; their groups are dropped", "backend", r.Name(), "kinds", missing)
	}
	if ta, ok := r.(textureAdder); ok {
		ta.AddTexture(badgeTexture, badgeImage(32))
		v.Scene.Badge = true
	}
	return v
}

// Layout returns the current layout.
func (v *Viewer) Layout() Layout { return v.layout }

// Resize changes the size of the next rendered frames.
func (v *Viewer) Resize(width, height int) {
	if width == v.layout.Screen.Width && height == v.layout.Screen.Height {
		return
	}
	v.layout = NewLayout(width, height)
	v.log.Debug("viewer resized", "size", v.layout.Screen)
}

// Click plays the board cell under the pixel (x, y).
func (v *Viewer) Click(x, y int) bool {
	if !image.Pt(x, y).In(image.Rect(v.layout.Board.X, v.layout.Board.Y,
		v.layout.Board.X+v.layout.Board.Width, v.layout.Board.Y+v.layout.Board.Height)) {
		return false
	}
	p := v.layout.BoardState(v.Camera.Bounds()).PixelsToLogical(gg.Pt(float64(x)+0.5, float64(y)+0.5))
	return v.World.Click(p)
}

// Render draws one frame. Groups that fail are skipped and reported in the
// returned error; the rest of the frame is still drawn.
func (v *Viewer) Render() (drawlist.Stats, error) {
	screen := v.layout.Screen
	if err := v.renderer.Begin(screen.Width, screen.Height); err != nil {
		return drawlist.Stats{}, err
	}
	v.Overlay.Frame(time.Now())

	var sceneErr, overlayErr error
	err := v.frame.WithRootContext(screen, func(s *drawlist.Scope) {
		sceneErr = v.Scene.Draw(s, v.World, v.layout, v.Camera.Bounds())
		overlayErr = v.Overlay.Draw(s, v.World, v.prev, v.kinds)
	})
	stats, submitErr := v.frame.Submit(v.reg)
	endErr := v.renderer.End()
	v.prev = stats

	v.log.Debug("frame rendered", "stats", stats)
	return stats, errors.Join(err, sceneErr, overlayErr, submitErr, endErr)
}
