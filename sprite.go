// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import "github.com/gogpu/gg"

// KindSprite is the registry name of sprite batches.
const KindSprite = "sprite"

// Sprite places a texture over a logical rectangle, rotated by Rotation
// radians about the rectangle's center.
type Sprite struct {
	Dst      Bounds
	Rotation float64
}

// SpriteStyle is shared by every sprite of a batch. Texture names an image
// the backend was given ahead of time.
type SpriteStyle struct {
	Texture string
	Tint    gg.RGBA
	Alpha   float64
}

// SpriteBackend draws a group of sprite batches.
type SpriteBackend interface {
	DrawSprites(items []Sprite, style SpriteStyle) error
}

// SpriteBatch draws sprites sharing one texture.
type SpriteBatch struct {
	Items []Sprite
	Style SpriteStyle
}

// Kind implements Command.
func (c *SpriteBatch) Kind() string { return KindSprite }

// Len implements Command.
func (c *SpriteBatch) Len() int { return len(c.Items) }

// BatchKey implements Command. Batches merge only when they share a
// texture, tint and alpha.
func (c *SpriteBatch) BatchKey() uint64 {
	s := c.Style
	h := stringHash(MaterialHash(s.Tint.R, s.Tint.G, s.Tint.B, s.Tint.A, s.Alpha), s.Texture)
	return BatchKey(KindSprite, h)
}

// Dispatch implements Command.
func (c *SpriteBatch) Dispatch(group []Command, scratch *Scratch, backend Backend) error {
	sb, ok := backend.(SpriteBackend)
	if !ok {
		return mismatch(c, backend)
	}
	items := Gather(scratch, KindSprite, c.Items, group, func(g Command) []Sprite { return g.(*SpriteBatch).Items })
	return sb.DrawSprites(items, c.Style)
}

// String returns a short label for logs.
func (c *SpriteBatch) String() string {
	return batchName(len(c.Items), "Sprite", "Sprites (batch)")
}

// SpriteBuilder configures a pending sprite batch.
type SpriteBuilder struct {
	pending
	cmd *SpriteBatch
}

// Tint sets the color multiplier of every sprite.
func (b *SpriteBuilder) Tint(c gg.RGBA) *SpriteBuilder {
	if b.writable("Tint") {
		b.cmd.Style.Tint = c
	}
	return b
}

// Alpha sets the opacity of every sprite.
func (b *SpriteBuilder) Alpha(a float64) *SpriteBuilder {
	if b.writable("Alpha") {
		b.cmd.Style.Alpha = a
	}
	return b
}

// Rotation sets the rotation, in radians, of every sprite in the batch.
func (b *SpriteBuilder) Rotation(rad float64) *SpriteBuilder {
	if b.writable("Rotation") {
		for i := range b.cmd.Items {
			b.cmd.Items[i].Rotation = rad
		}
	}
	return b
}

// Depth sets the scope-local depth in [0, 1].
func (b *SpriteBuilder) Depth(d float64) *SpriteBuilder {
	b.setDepth(d)
	return b
}
