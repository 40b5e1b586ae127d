// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/drawlist"
)

// Zoom limits, as multiples of the home view width.
const (
	minZoom = 0.25
	maxZoom = 4.0
)

// Camera is the logical region of the board shown in the board viewport.
// Panning and zooming rewrite its bounds; the scene maps them onto the
// same pixel rectangle every frame.
type Camera struct {
	home   drawlist.Bounds
	bounds drawlist.Bounds
}

// NewCamera returns a camera showing home.
func NewCamera(home drawlist.Bounds) *Camera {
	return &Camera{home: home, bounds: home}
}

// Bounds returns the visible logical region.
func (c *Camera) Bounds() drawlist.Bounds { return c.bounds }

// Center returns the middle of the visible region.
func (c *Camera) Center() gg.Point {
	return gg.Pt((c.bounds.Min.X+c.bounds.Max.X)/2, (c.bounds.Min.Y+c.bounds.Max.Y)/2)
}

// Pan shifts the view by (dx, dy) logical units.
func (c *Camera) Pan(dx, dy float64) {
	c.bounds.Min.X += dx
	c.bounds.Max.X += dx
	c.bounds.Min.Y += dy
	c.bounds.Max.Y += dy
}

// Zoom scales the view about its center. A scale above 1 shows more of the
// board, below 1 less. The result is clamped to the zoom limits and
// non-positive scales are ignored.
func (c *Camera) Zoom(scale float64) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}
	cur := c.bounds.Width() / c.home.Width()
	f := min(max(cur*scale, minZoom), maxZoom) / cur
	w := c.bounds.Width() * f / 2
	h := c.bounds.Height() * f / 2
	m := c.Center()
	c.bounds = drawlist.NewBounds(m.X-w, m.Y-h, m.X+w, m.Y+h)
}

// SetBounds replaces the view. Degenerate bounds are ignored.
func (c *Camera) SetBounds(b drawlist.Bounds) {
	if !b.Degenerate() {
		c.bounds = b
	}
}

// Reset restores the home view.
func (c *Camera) Reset() { c.bounds = c.home }
