// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import "github.com/gogpu/gg"

// KindEllipse is the registry name of ellipse batches.
const KindEllipse = "ellipse"

// Ellipse is one filled ellipse in logical coordinates. Rotation is in
// radians about the center.
type Ellipse struct {
	Center   gg.Point
	RX, RY   float64
	Rotation float64
}

// EllipseStyle is shared by every ellipse of a batch. The drawn alpha is
// Color.A * Alpha.
type EllipseStyle struct {
	Color gg.RGBA
	Alpha float64
}

// EllipseBackend draws a group of ellipse batches.
type EllipseBackend interface {
	DrawEllipses(items []Ellipse, style EllipseStyle) error
}

// EllipseBatch fills ellipses with a shared style.
type EllipseBatch struct {
	Items []Ellipse
	Style EllipseStyle
}

// Kind implements Command.
func (c *EllipseBatch) Kind() string { return KindEllipse }

// Len implements Command.
func (c *EllipseBatch) Len() int { return len(c.Items) }

// BatchKey implements Command. It covers color and alpha.
func (c *EllipseBatch) BatchKey() uint64 {
	s := c.Style
	return BatchKey(KindEllipse, MaterialHash(s.Color.R, s.Color.G, s.Color.B, s.Color.A, s.Alpha))
}

// Dispatch implements Command.
func (c *EllipseBatch) Dispatch(group []Command, scratch *Scratch, backend Backend) error {
	eb, ok := backend.(EllipseBackend)
	if !ok {
		return mismatch(c, backend)
	}
	items := Gather(scratch, KindEllipse, c.Items, group, func(g Command) []Ellipse { return g.(*EllipseBatch).Items })
	return eb.DrawEllipses(items, c.Style)
}

func (c *EllipseBatch) String() string {
	return batchName(len(c.Items), "Ellipse", "Ellipses (batch)")
}

// EllipseBuilder configures a pending ellipse batch.
type EllipseBuilder struct {
	pending
	cmd *EllipseBatch
}

// Color sets the fill color of every ellipse.
func (b *EllipseBuilder) Color(c gg.RGBA) *EllipseBuilder {
	if b.writable("Color") {
		b.cmd.Style.Color = c
	}
	return b
}

// Alpha sets the alpha multiplier of every ellipse.
func (b *EllipseBuilder) Alpha(a float64) *EllipseBuilder {
	if b.writable("Alpha") {
		b.cmd.Style.Alpha = a
	}
	return b
}

// Rotation sets the rotation, in radians, of every ellipse in the batch.
func (b *EllipseBuilder) Rotation(rad float64) *EllipseBuilder {
	if b.writable("Rotation") {
		for i := range b.cmd.Items {
			b.cmd.Items[i].Rotation = rad
		}
	}
	return b
}

// Depth sets the scope-local depth in [0, 1].
func (b *EllipseBuilder) Depth(d float64) *EllipseBuilder {
	b.setDepth(d)
	return b
}
