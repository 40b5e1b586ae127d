// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import "github.com/gogpu/gg"

// KindLine is the registry name of line batches.
const KindLine = "line"

// Segment is a line segment in logical coordinates.
type Segment struct {
	A, B gg.Point
}

// Seg is shorthand for a segment between two points.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{A: gg.Pt(x1, y1), B: gg.Pt(x2, y2)}
}

// LineStyle is shared by every segment of a batch.
type LineStyle struct {
	// Thickness is the stroke width in pixels.
	Thickness float64
	Color     gg.RGBA
}

// LineBackend draws a group of line batches.
type LineBackend interface {
	DrawLines(segs []Segment, style LineStyle) error
}

// LineBatch draws segments with a shared style.
type LineBatch struct {
	Segments []Segment
	Style    LineStyle
}

// Kind implements Command.
func (c *LineBatch) Kind() string { return KindLine }

// Len returns the number of segments.
func (c *LineBatch) Len() int { return len(c.Segments) }

// BatchKey implements Command. It depends on thickness and color, so
// batches differing only in geometry merge.
func (c *LineBatch) BatchKey() uint64 {
	s := c.Style
	return BatchKey(KindLine, MaterialHash(s.Thickness, s.Color.R, s.Color.G, s.Color.B, s.Color.A))
}

// Dispatch implements Command. The items of a merged group are gathered
// into scratch and drawn in one LineBackend call.
func (c *LineBatch) Dispatch(group []Command, scratch *Scratch, backend Backend) error {
	lb, ok := backend.(LineBackend)
	if !ok {
		return mismatch(c, backend)
	}
	segs := Gather(scratch, KindLine, c.Segments, group, func(g Command) []Segment { return g.(*LineBatch).Segments })
	return lb.DrawLines(segs, c.Style)
}

// String returns a short label for logs.
func (c *LineBatch) String() string {
	return batchName(len(c.Segments), "Line", "Lines (batch)")
}

// LineBuilder configures a pending line batch.
type LineBuilder struct {
	pending
	cmd *LineBatch
}

// Thickness sets the stroke width in pixels for every segment.
func (b *LineBuilder) Thickness(px float64) *LineBuilder {
	if b.writable("Thickness") {
		b.cmd.Style.Thickness = px
	}
	return b
}

// Color sets the color of every segment.
func (b *LineBuilder) Color(c gg.RGBA) *LineBuilder {
	if b.writable("Color") {
		b.cmd.Style.Color = c
	}
	return b
}

// Depth sets the scope-local depth in [0, 1].
func (b *LineBuilder) Depth(d float64) *LineBuilder {
	b.setDepth(d)
	return b
}
