// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"fmt"
	"slices"

	"github.com/gogpu/gg"
)

// Scope is the drawing surface of one context. It is only valid inside the
// callback that received it.
type Scope struct {
	frame  *Frame
	id     int
	state  ContextState
	level  int // stack depth while this scope is the innermost
	closed bool
}

// State returns the effective context state of the scope.
func (s *Scope) State() ContextState { return s.state }

// Width returns the viewport width in pixels.
func (s *Scope) Width() int { return s.state.Rect.Width }

// Height returns the viewport height in pixels.
func (s *Scope) Height() int { return s.state.Rect.Height }

// LogicalToPixels maps a point of the scope's logical space to pixels, for
// hit testing and layout.
func (s *Scope) LogicalToPixels(p gg.Point) gg.Point { return s.state.LogicalToPixels(p) }

// PixelsToLogical maps a pixel position into the scope's logical space.
func (s *Scope) PixelsToLogical(p gg.Point) gg.Point { return s.state.PixelsToLogical(p) }

func (s *Scope) usable(op string) bool {
	if !s.closed {
		return true
	}
	s.frame.misuse(fmt.Errorf("%w: %s", ErrScopeClosed, op))
	return false
}

// start binds a new builder to the scope and makes it the frame's open
// builder. Builders from a closed scope are detached and never commit.
func (s *Scope) start(p *pending, cmd Command, op string) {
	p.command = cmd
	p.ctx = s.id
	p.scope = s.state.Depth
	if !s.usable(op) {
		return
	}
	p.frame = s.frame
	s.frame.begin(p)
}

// Scope composes d onto this scope and calls fn with the resulting child
// scope. The child is popped when fn returns or panics.
//
// A configuration error in d is returned without calling fn, as is
// ErrScopeShadowed when s is not the innermost open scope.
func (s *Scope) Scope(d Delta, fn func(*Scope)) error {
	if !s.usable("Scope") {
		return ErrScopeClosed
	}
	f := s.frame
	if f.stack.depth() != s.level {
		err := fmt.Errorf("%w: Scope", ErrScopeShadowed)
		f.misuse(err)
		return err
	}
	f.closeOpen()
	top, err := f.stack.push(d)
	if err != nil {
		return err
	}
	child := &Scope{frame: f, id: top.id, state: top.state, level: f.stack.depth()}
	defer func() {
		f.closeOpen()
		child.closed = true
		f.stack.pop()
	}()
	fn(child)
	return nil
}

// Viewport maps the logical bounds b onto the pixel rectangle r for fn.
func (s *Scope) Viewport(r Rect, b Bounds, fn func(*Scope)) error {
	return s.Scope(Delta{}.WithRect(r).WithBounds(b), fn)
}

// Tinted multiplies every color drawn by fn with c.
func (s *Scope) Tinted(c gg.RGBA, fn func(*Scope)) error {
	return s.Scope(Delta{}.WithTint(c), fn)
}

// Faded multiplies the alpha of everything drawn by fn with a.
func (s *Scope) Faded(a float64, fn func(*Scope)) error {
	return s.Scope(Delta{}.WithAlpha(a), fn)
}

// Transformed applies m to the logical coordinates drawn by fn.
func (s *Scope) Transformed(m gg.Matrix, fn func(*Scope)) error {
	return s.Scope(Delta{}.WithTransform(m), fn)
}

// Layer confines the depths used by fn to [lo, hi] of this scope's range.
func (s *Scope) Layer(lo, hi float64, fn func(*Scope)) error {
	return s.Scope(Delta{}.WithDepth(lo, hi), fn)
}

// Line draws one segment from a to b.
func (s *Scope) Line(a, b gg.Point) *LineBuilder {
	return s.Lines(Segment{A: a, B: b})
}

// Lines draws segments sharing one style. The slice is copied.
func (s *Scope) Lines(segs ...Segment) *LineBuilder {
	cmd := &LineBatch{
		Segments: slices.Clone(segs),
		Style:    LineStyle{Thickness: 1, Color: gg.White},
	}
	b := &LineBuilder{cmd: cmd}
	s.start(&b.pending, cmd, "Lines")
	return b
}

// Ellipse fills one ellipse with radii rx and ry.
func (s *Scope) Ellipse(center gg.Point, rx, ry float64) *EllipseBuilder {
	return s.Ellipses(Ellipse{Center: center, RX: rx, RY: ry})
}

// Circle fills one circle.
func (s *Scope) Circle(center gg.Point, r float64) *EllipseBuilder {
	return s.Ellipses(Ellipse{Center: center, RX: r, RY: r})
}

// Ellipses fills ellipses sharing one style. The slice is copied.
func (s *Scope) Ellipses(items ...Ellipse) *EllipseBuilder {
	cmd := &EllipseBatch{
		Items: slices.Clone(items),
		Style: EllipseStyle{Color: gg.White, Alpha: 1},
	}
	b := &EllipseBuilder{cmd: cmd}
	s.start(&b.pending, cmd, "Ellipses")
	return b
}

// Sprite draws the named texture over dst.
func (s *Scope) Sprite(texture string, dst Bounds) *SpriteBuilder {
	return s.Sprites(texture, Sprite{Dst: dst})
}

// Sprites draws the named texture once per item. The slice is copied.
func (s *Scope) Sprites(texture string, items ...Sprite) *SpriteBuilder {
	cmd := &SpriteBatch{
		Items: slices.Clone(items),
		Style: SpriteStyle{Texture: texture, Tint: gg.White, Alpha: 1},
	}
	b := &SpriteBuilder{cmd: cmd}
	s.start(&b.pending, cmd, "Sprites")
	return b
}

// Text draws str with its baseline starting at at.
func (s *Scope) Text(str string, at gg.Point) *TextBuilder {
	return s.Texts(TextItem{Text: str, At: at})
}

// Texts draws strings sharing one style. The slice is copied.
func (s *Scope) Texts(items ...TextItem) *TextBuilder {
	cmd := &TextBatch{
		Items: slices.Clone(items),
		Style: TextStyle{Size: DefaultTextSize, Color: gg.White},
	}
	b := &TextBuilder{cmd: cmd}
	s.start(&b.pending, cmd, "Texts")
	return b
}
