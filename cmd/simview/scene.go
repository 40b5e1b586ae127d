// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/drawlist"
)

// boardBounds is the logical space of the board: three unit cells centered
// on the origin.
var boardBounds = drawlist.NewBounds(-1.5, -1.5, 1.5, 1.5)

// Depths of the scene layers, relative to their scope.
const (
	depthGrid    = 0.0
	depthPieces  = 0.1
	depthScore   = 0.2
	depthWinLine = 0.3
	depthView    = 0.4
	depthLeaves  = 0.5
	depthBadge   = 0.9
)

const (
	pieceRadius  = 0.3
	circleSides  = 24
	badgeTexture = "badge"
)

var (
	colorGrid  = gg.RGBA{R: 0.85, G: 0.85, B: 0.8, A: 1}
	colorX     = gg.RGBA{R: 0.9, G: 0.35, B: 0.3, A: 1}
	colorO     = gg.RGBA{R: 0.3, G: 0.55, B: 0.95, A: 1}
	colorScore = gg.RGBA{R: 0.95, G: 0.95, B: 0.9, A: 1}
	colorWin   = gg.RGBA{R: 1, G: 0.85, B: 0.2, A: 1}
	colorView  = gg.RGBA{R: 1, G: 1, B: 1, A: 0.6}
)

// Layout places the scene's viewports in a window.
type Layout struct {
	Screen  drawlist.Rect
	Board   drawlist.Rect
	Minimap drawlist.Rect
	Badge   drawlist.Bounds
}

// NewLayout centers a square board in a width x height window and puts the
// minimap in the top-right corner.
func NewLayout(width, height int) Layout {
	side := min(width, height)
	margin := side / 10
	board := max(side-2*margin, 1)
	mini := max(side/6, 16)
	pad := max(side/60, 2)

	return Layout{
		Screen: drawlist.Rect{Width: width, Height: height},
		Board: drawlist.Rect{
			X:      (width - board) / 2,
			Y:      (height - board) / 2,
			Width:  board,
			Height: board,
		},
		Minimap: drawlist.Rect{
			X:      max(width-mini-pad, 0),
			Y:      pad,
			Width:  mini,
			Height: mini,
		},
		Badge: drawlist.NewBounds(float64(pad), float64(height-pad-24), float64(pad+24), float64(height-pad)),
	}
}

// BoardState returns the context state of the board viewport showing
// view, for hit testing outside a frame.
func (l Layout) BoardState(view drawlist.Bounds) drawlist.ContextState {
	return drawlist.Delta{}.WithRect(l.Board).WithBounds(view).Apply(drawlist.RootState(l.Screen))
}

// Scene draws a World.
type Scene struct {
	// Badge enables the sprite in the bottom-left corner. The renderer
	// must have the badge texture.
	Badge bool
}

// Draw records the world into the root scope. view is the camera's region
// of the board; the minimap always shows the whole board and outlines view.
func (sc Scene) Draw(root *drawlist.Scope, w *World, l Layout, view drawlist.Bounds) error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	check(root.Viewport(l.Board, view, func(s *drawlist.Scope) {
		drawGrid(s)
		drawPieces(s, w.Board)
		drawLeaves(s, w.Leaves)
		if t, line := w.Board.Winner(); t != Empty {
			check(s.Tinted(colorWin, func(s *drawlist.Scope) {
				a, b := cellCenter(line[0]), cellCenter(line[1])
				s.Line(a, b).Thickness(6).Color(gg.White).Depth(depthWinLine)
			}))
		}
	}))

	root.Text(scoreLine(w.Board), gg.Pt(12, 24)).Size(18).Color(colorScore).Depth(depthScore)

	// The minimap shares the board's logical space but owns only the top
	// of the depth range so it always lands over the leaves.
	check(root.Viewport(l.Minimap, boardBounds, func(s *drawlist.Scope) {
		check(s.Layer(0.8, 1, func(s *drawlist.Scope) {
			check(s.Faded(0.8, func(s *drawlist.Scope) {
				drawGrid(s)
				drawPieces(s, w.Board)
				if view != boardBounds {
					s.Lines(outline(view)...).Thickness(1).Color(colorView).Depth(depthView)
				}
			}))
		}))
	}))

	if sc.Badge {
		root.Sprite(badgeTexture, l.Badge).Rotation(0.1 * math.Sin(w.Clock())).Depth(depthBadge)
	}
	return errors.Join(errs...)
}

func scoreLine(b *Board) string {
	return fmt.Sprintf("X %d  O %d  draws %d", b.Wins(X), b.Wins(O), b.Draws())
}

func cellCenter(rc [2]int) gg.Point {
	return gg.Pt(float64(rc[1]-1), float64(rc[0]-1))
}

func drawGrid(s *drawlist.Scope) {
	s.Lines(
		drawlist.Seg(-0.5, -1.5, -0.5, 1.5),
		drawlist.Seg(0.5, -1.5, 0.5, 1.5),
		drawlist.Seg(-1.5, -0.5, 1.5, -0.5),
		drawlist.Seg(-1.5, 0.5, 1.5, 0.5),
	).Thickness(3).Color(colorGrid).Depth(depthGrid)
}

func drawPieces(s *drawlist.Scope, b *Board) {
	var xs, rings []drawlist.Segment
	for row := range 3 {
		for col := range 3 {
			c := cellCenter([2]int{row, col})
			switch b.At(row, col) {
			case X:
				r := pieceRadius
				xs = append(xs,
					drawlist.Seg(c.X-r, c.Y-r, c.X+r, c.Y+r),
					drawlist.Seg(c.X-r, c.Y+r, c.X+r, c.Y-r))
			case O:
				rings = append(rings, circle(c, pieceRadius, circleSides)...)
			}
		}
	}
	if len(xs) > 0 {
		s.Lines(xs...).Thickness(5).Color(colorX).Depth(depthPieces)
	}
	if len(rings) > 0 {
		s.Lines(rings...).Thickness(5).Color(colorO).Depth(depthPieces)
	}
}

// outline returns the four edges of b.
func outline(b drawlist.Bounds) []drawlist.Segment {
	x0, y0, x1, y1 := b.Min.X, b.Min.Y, b.Max.X, b.Max.Y
	return []drawlist.Segment{
		drawlist.Seg(x0, y0, x1, y0),
		drawlist.Seg(x1, y0, x1, y1),
		drawlist.Seg(x1, y1, x0, y1),
		drawlist.Seg(x0, y1, x0, y0),
	}
}

// circle returns a closed polygon of n segments.
func circle(c gg.Point, r float64, n int) []drawlist.Segment {
	segs := make([]drawlist.Segment, n)
	prev := gg.Pt(c.X+r, c.Y)
	for i := 1; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		p := gg.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
		segs[i-1] = drawlist.Segment{A: prev, B: p}
		prev = p
	}
	return segs
}

func drawLeaves(s *drawlist.Scope, f *LeafField) {
	for _, l := range f.Leaves() {
		rx := l.Size * l.Growth
		if rx <= 0 {
			continue
		}
		s.Ellipse(l.Pos, rx, rx*l.Aspect).
			Color(leafColors[l.Variant]).
			Alpha(l.Growth).
			Rotation(f.sway(l)).
			Depth(depthLeaves)
	}
}

// badgeImage draws the badge texture: a ring on a transparent background.
func badgeImage(size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := range size {
		for x := range size {
			d := math.Hypot(float64(x)-c, float64(y)-c) / c
			if d > 0.55 && d <= 1 {
				img.SetNRGBA(x, y, color.NRGBA{R: 240, G: 200, B: 60, A: 255})
			}
		}
	}
	return img
}
