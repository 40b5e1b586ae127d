// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"fmt"

	"github.com/gogpu/gg"
)

// ContextState is the effective drawing state of one scope: where it lands
// on screen, which logical coordinates map onto that area, which slice of
// the depth range it owns, and the color and transform applied to
// everything drawn inside it.
//
// Tint, Alpha and Transform are already composed with every enclosing
// scope. ContextState is comparable and is deduplicated by value within a
// frame.
type ContextState struct {
	// Rect is the pixel viewport. Backends use it as the scissor rectangle.
	Rect Rect

	// Bounds is the logical region mapped onto Rect.
	Bounds Bounds

	// Depth is the effective depth sub-range within the root [0, 1].
	Depth DepthRange

	// Tint multiplies every color componentwise.
	Tint gg.RGBA

	// Alpha multiplies the alpha of every color.
	Alpha float64

	// Transform is applied to logical coordinates before the viewport
	// mapping.
	Transform gg.Matrix
}

// RootState returns the outermost state for a pixel rectangle: bounds equal
// to the rectangle's pixel size, the full depth range, and neutral color and
// transform.
func RootState(r Rect) ContextState {
	return ContextState{
		Rect:      r,
		Bounds:    NewBounds(0, 0, float64(r.Width), float64(r.Height)),
		Depth:     FullDepth,
		Tint:      gg.White,
		Alpha:     1,
		Transform: gg.Identity(),
	}
}

// Viewport returns the matrix mapping Bounds onto Rect, without Transform.
func (s ContextState) Viewport() gg.Matrix {
	sx := float64(s.Rect.Width) / s.Bounds.Width()
	sy := float64(s.Rect.Height) / s.Bounds.Height()
	return gg.Matrix{
		A: sx, B: 0, C: float64(s.Rect.X) - s.Bounds.Min.X*sx,
		D: 0, E: sy, F: float64(s.Rect.Y) - s.Bounds.Min.Y*sy,
	}
}

// Matrix returns the full logical-to-pixel matrix, Viewport * Transform.
func (s ContextState) Matrix() gg.Matrix {
	return s.Viewport().Multiply(s.Transform)
}

// LogicalToPixels maps a logical point to pixel coordinates.
func (s ContextState) LogicalToPixels(p gg.Point) gg.Point {
	return s.Matrix().TransformPoint(p)
}

// PixelsToLogical maps a pixel position back into logical coordinates.
func (s ContextState) PixelsToLogical(p gg.Point) gg.Point {
	return s.Matrix().Invert().TransformPoint(p)
}

// EffectiveDepth maps a scope-local depth into the root range. Values
// outside [0, 1] are clamped so nested content never escapes its scope.
func (s ContextState) EffectiveDepth(d float64) float64 {
	return s.Depth.Lerp(clamp01(d))
}

// Shade applies the state's tint and alpha to c.
func (s ContextState) Shade(c gg.RGBA) gg.RGBA {
	c = mulRGBA(c, s.Tint)
	c.A *= s.Alpha
	return c
}

// PixelScale returns how many pixels one logical unit spans on each axis,
// ignoring sign and Transform.
func (s ContextState) PixelScale() (sx, sy float64) {
	v := s.Viewport()
	return abs(v.A), abs(v.E)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (s ContextState) String() string {
	return fmt.Sprintf("rect=%v bounds=[%g,%g]-[%g,%g] depth=[%g,%g] alpha=%g",
		s.Rect, s.Bounds.Min.X, s.Bounds.Min.Y, s.Bounds.Max.X, s.Bounds.Max.Y,
		s.Depth.Lo, s.Depth.Hi, s.Alpha)
}

type deltaField uint8

const (
	fieldRect deltaField = 1 << iota
	fieldBounds
	fieldDepth
	fieldTint
	fieldAlpha
	fieldTransform
)

// Delta is a partial scope configuration. The zero Delta changes nothing.
// Build one with the With methods:
//
//	d := drawlist.Delta{}.WithRect(r).WithBounds(b).WithDepth(0.8, 1)
type Delta struct {
	set       deltaField
	rect      Rect
	bounds    Bounds
	depth     DepthRange
	tint      gg.RGBA
	alpha     float64
	transform gg.Matrix
}

// WithRect replaces the parent's viewport rectangle.
func (d Delta) WithRect(r Rect) Delta {
	d.rect = r
	d.set |= fieldRect
	return d
}

// WithBounds replaces the parent's logical bounds.
func (d Delta) WithBounds(b Bounds) Delta {
	d.bounds = b
	d.set |= fieldBounds
	return d
}

// WithDepth narrows the parent's depth range to [lo, hi], expressed relative
// to the parent range.
func (d Delta) WithDepth(lo, hi float64) Delta {
	d.depth = DepthRange{Lo: lo, Hi: hi}
	d.set |= fieldDepth
	return d
}

// WithTint multiplies the parent's tint.
func (d Delta) WithTint(c gg.RGBA) Delta {
	d.tint = c
	d.set |= fieldTint
	return d
}

// WithAlpha multiplies the parent's alpha.
func (d Delta) WithAlpha(a float64) Delta {
	d.alpha = a
	d.set |= fieldAlpha
	return d
}

// WithTransform post-multiplies the parent's transform.
func (d Delta) WithTransform(m gg.Matrix) Delta {
	d.transform = m
	d.set |= fieldTransform
	return d
}

// Validate returns the configuration error for d, if any.
func (d Delta) Validate() error {
	if d.set&fieldRect != 0 && d.rect.Empty() {
		return fmt.Errorf("%w: %v", ErrDegenerateRect, d.rect)
	}
	if d.set&fieldBounds != 0 && d.bounds.Degenerate() {
		return fmt.Errorf("%w: [%g,%g]-[%g,%g]", ErrDegenerateBounds,
			d.bounds.Min.X, d.bounds.Min.Y, d.bounds.Max.X, d.bounds.Max.Y)
	}
	if d.set&fieldDepth != 0 && !d.depth.Valid() {
		return fmt.Errorf("%w: [%g,%g]", ErrInvalidDepthRange, d.depth.Lo, d.depth.Hi)
	}
	return nil
}

// Apply composes d onto parent. Rect and Bounds replace; Depth compresses
// into the parent's range; Tint, Alpha and Transform multiply.
// Apply does not validate d.
func (d Delta) Apply(parent ContextState) ContextState {
	s := parent
	if d.set&fieldRect != 0 {
		s.Rect = d.rect
	}
	if d.set&fieldBounds != 0 {
		s.Bounds = d.bounds
	}
	if d.set&fieldDepth != 0 {
		s.Depth = parent.Depth.Compose(d.depth)
	}
	if d.set&fieldTint != 0 {
		s.Tint = mulRGBA(parent.Tint, d.tint)
	}
	if d.set&fieldAlpha != 0 {
		s.Alpha = parent.Alpha * d.alpha
	}
	if d.set&fieldTransform != 0 {
		s.Transform = parent.Transform.Multiply(d.transform)
	}
	return s
}
