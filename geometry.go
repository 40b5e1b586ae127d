// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Rect is a rectangle in pixels. X and Y are the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rectangle has zero or negative extent.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Bounds returns the rectangle as logical bounds covering the same pixels.
func (r Rect) Bounds() Bounds {
	return NewBounds(float64(r.X), float64(r.Y), float64(r.X+r.Width), float64(r.Y+r.Height))
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Bounds is an axis-aligned region of a logical coordinate space. Min maps
// to the top-left corner of the viewport rectangle and Max to the
// bottom-right. Min may exceed Max on an axis to flip it.
type Bounds struct {
	Min, Max gg.Point
}

// NewBounds returns the bounds spanning (minX, minY) to (maxX, maxY).
func NewBounds(minX, minY, maxX, maxY float64) Bounds {
	return Bounds{Min: gg.Pt(minX, minY), Max: gg.Pt(maxX, maxY)}
}

// Width returns the signed extent along x.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the signed extent along y.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Degenerate reports whether min equals max on either axis.
func (b Bounds) Degenerate() bool {
	return b.Min.X == b.Max.X || b.Min.Y == b.Max.Y
}

// DepthRange is a sub-range of the unit depth interval.
type DepthRange struct {
	Lo, Hi float64
}

// FullDepth is the root depth range.
var FullDepth = DepthRange{Lo: 0, Hi: 1}

// Valid reports whether 0 <= Lo <= Hi <= 1.
func (d DepthRange) Valid() bool {
	return d.Lo >= 0 && d.Hi <= 1 && d.Lo <= d.Hi
}

// Lerp maps t in [0, 1] into the range.
func (d DepthRange) Lerp(t float64) float64 {
	return d.Lo + t*(d.Hi-d.Lo)
}

// Compose maps a child range, expressed relative to d, into d's own space.
// Compose is associative, so nesting order of evaluation does not matter.
func (d DepthRange) Compose(child DepthRange) DepthRange {
	return DepthRange{Lo: d.Lerp(child.Lo), Hi: d.Lerp(child.Hi)}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// mulRGBA multiplies two colors componentwise.
func mulRGBA(a, b gg.RGBA) gg.RGBA {
	return gg.RGBA{R: a.R * b.R, G: a.G * b.G, B: a.B * b.B, A: a.A * b.A}
}
