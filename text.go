// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import "github.com/gogpu/gg"

// KindText is the registry name of text batches.
const KindText = "text"

// DefaultTextSize is the face size, in pixels, of new text builders.
const DefaultTextSize = 16

// TextItem is a string whose baseline starts at At, in logical coordinates.
type TextItem struct {
	Text string
	At   gg.Point
}

// TextStyle is shared by every string of a batch.
type TextStyle struct {
	// Size is the face size in pixels.
	Size  float64
	Color gg.RGBA
}

// TextBackend draws a group of text batches.
type TextBackend interface {
	DrawText(items []TextItem, style TextStyle) error
}

// TextBatch draws strings with a shared face size and color.
type TextBatch struct {
	Items []TextItem
	Style TextStyle
}

// Kind implements Command.
func (c *TextBatch) Kind() string { return KindText }

// Len returns the number of strings.
func (c *TextBatch) Len() int { return len(c.Items) }

// BatchKey implements Command. It covers face size and color.
func (c *TextBatch) BatchKey() uint64 {
	s := c.Style
	return BatchKey(KindText, MaterialHash(s.Size, s.Color.R, s.Color.G, s.Color.B, s.Color.A))
}

// Dispatch implements Command.
func (c *TextBatch) Dispatch(group []Command, scratch *Scratch, backend Backend) error {
	tb, ok := backend.(TextBackend)
	if !ok {
		return mismatch(c, backend)
	}
	items := Gather(scratch, KindText, c.Items, group, func(g Command) []TextItem { return g.(*TextBatch).Items })
	return tb.DrawText(items, c.Style)
}

func (c *TextBatch) String() string {
	return batchName(len(c.Items), "Text", "Text (batch)")
}

// TextBuilder configures a pending text batch.
type TextBuilder struct {
	pending
	cmd *TextBatch
}

// Size sets the face size in pixels.
func (b *TextBuilder) Size(px float64) *TextBuilder {
	if b.writable("Size") {
		b.cmd.Style.Size = px
	}
	return b
}

// Color sets the text color.
func (b *TextBuilder) Color(c gg.RGBA) *TextBuilder {
	if b.writable("Color") {
		b.cmd.Style.Color = c
	}
	return b
}

// Depth sets the scope-local depth in [0, 1].
func (b *TextBuilder) Depth(d float64) *TextBuilder {
	b.setDepth(d)
	return b
}
