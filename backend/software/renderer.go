// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/drawlist"
	"github.com/gogpu/drawlist/backend"
)

// Name is the backend registry name.
const Name = "software"

func init() {
	backend.Register(Name, func(cfg backend.Config) (backend.Renderer, error) {
		return New(cfg.Width, cfg.Height, WithClearColor(cfg.Clear)), nil
	})
}

// ErrUnknownTexture is returned when a sprite names a texture that was
// never added.
var ErrUnknownTexture = errors.New("software: unknown texture")

// Stats counts the work done since the last Begin.
type Stats struct {
	Contexts int
	Lines    int
	Ellipses int
	Sprites  int
	Strings  int
}

// Renderer rasterizes drawlist groups into a gg.Context.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	dc     *gg.Context
	width  int
	height int
	clear  gg.RGBA

	state drawlist.ContextState
	m     gg.Matrix

	// layer receives the draws of a context whose rect does not cover the
	// canvas; it is composited at the rect when the context changes.
	layer  *gg.Context
	layers map[[2]int]*gg.Context

	textures map[string]*gg.ImageBuf
	fonts    *fontCache
	stats    Stats
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClearColor sets the color Begin fills the canvas with.
func WithClearColor(c gg.RGBA) Option {
	return func(r *Renderer) {
		r.clear = c
	}
}

// WithFontSource sets the font used by the text kind. The default is Go
// Regular.
func WithFontSource(src *text.FontSource) Option {
	return func(r *Renderer) {
		r.fonts = newFontCache(src)
	}
}

// New creates a renderer with a width x height canvas.
func New(width, height int, opts ...Option) *Renderer {
	r := &Renderer{
		dc:       gg.NewContext(width, height),
		width:    width,
		height:   height,
		clear:    gg.Black,
		textures: make(map[string]*gg.ImageBuf),
		layers:   make(map[[2]int]*gg.Context),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetState()
	return r
}

// Name returns the backend name.
func (r *Renderer) Name() string { return Name }

// Format returns the pixel format of the canvas.
func (r *Renderer) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Begin starts a frame: the canvas is resized if needed and cleared.
func (r *Renderer) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("software: invalid canvas size %dx%d", width, height)
	}
	if width != r.width || height != r.height {
		_ = r.dc.Close()
		r.dc = gg.NewContext(width, height)
		r.width, r.height = width, height
	}
	r.stats = Stats{}
	r.layer = nil
	r.resetState()
	r.dc.Identity()
	r.dc.ClearWithColor(r.clear)
	return nil
}

// End composites the pending viewport layer.
func (r *Renderer) End() error {
	r.composite()
	return nil
}

// Close releases the canvas and the layer pool.
func (r *Renderer) Close() {
	for k, l := range r.layers {
		_ = l.Close()
		delete(r.layers, k)
	}
	r.layer = nil
	if r.dc != nil {
		_ = r.dc.Close()
		r.dc = nil
	}
}

// Stats returns the counters of the current frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Image returns a copy of the canvas.
func (r *Renderer) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the canvas as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// SavePNG writes the canvas to a PNG file.
func (r *Renderer) SavePNG(path string) error { return r.dc.SavePNG(path) }

// AddTexture makes img available to sprites under name, replacing any
// previous texture of that name.
func (r *Renderer) AddTexture(name string, img image.Image) {
	r.textures[name] = gg.ImageBufFromImage(img)
}

func (r *Renderer) resetState() {
	r.state = drawlist.RootState(drawlist.Rect{Width: r.width, Height: r.height})
	r.m = r.state.Matrix()
}

// Lookup implements drawlist.Registry.
func (r *Renderer) Lookup(kind string) (drawlist.Backend, bool) {
	switch kind {
	case drawlist.KindLine, drawlist.KindEllipse, drawlist.KindSprite, drawlist.KindText:
		return r, true
	}
	return nil, false
}

// ApplyContext implements drawlist.Registry. Draws of a context whose rect
// covers the canvas go straight to it; any other rect gets a layer of its
// own size so nothing lands outside the viewport.
func (r *Renderer) ApplyContext(s drawlist.ContextState) error {
	r.composite()
	r.state = s
	r.m = s.Matrix()
	r.stats.Contexts++

	full := drawlist.Rect{Width: r.width, Height: r.height}
	if s.Rect == full {
		return nil
	}
	r.layer = r.acquireLayer(s.Rect.Width, s.Rect.Height)
	r.m = gg.Translate(-float64(s.Rect.X), -float64(s.Rect.Y)).Multiply(r.m)
	return nil
}

func (r *Renderer) acquireLayer(w, h int) *gg.Context {
	key := [2]int{w, h}
	l, ok := r.layers[key]
	if !ok {
		l = gg.NewContext(w, h)
		r.layers[key] = l
	}
	l.Identity()
	l.Clear()
	return l
}

// composite blends the current layer onto the canvas at its rect.
func (r *Renderer) composite() {
	if r.layer == nil {
		return
	}
	l := r.layer
	r.layer = nil
	rect := r.state.Rect
	r.dc.Identity()
	r.dc.DrawImageEx(gg.ImageBufFromImage(l.Image()), gg.DrawImageOptions{
		X:             float64(rect.X),
		Y:             float64(rect.Y),
		Interpolation: gg.InterpNearest,
	})
}

// target returns the context the current state draws into.
func (r *Renderer) target() *gg.Context {
	if r.layer != nil {
		return r.layer
	}
	return r.dc
}

// DrawLines strokes every segment in one path.
func (r *Renderer) DrawLines(segs []drawlist.Segment, style drawlist.LineStyle) error {
	dc := r.target()
	dc.Identity()
	c := r.state.Shade(style.Color)
	dc.SetRGBA(c.R, c.G, c.B, c.A)
	dc.SetLineWidth(style.Thickness)
	for _, s := range segs {
		a := r.m.TransformPoint(s.A)
		b := r.m.TransformPoint(s.B)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
	}
	r.stats.Lines += len(segs)
	return dc.Stroke()
}

// DrawEllipses fills each ellipse separately so that overlapping
// translucent ellipses blend with each other.
func (r *Renderer) DrawEllipses(items []drawlist.Ellipse, style drawlist.EllipseStyle) error {
	dc := r.target()
	c := r.state.Shade(style.Color)
	c.A *= style.Alpha
	dc.SetRGBA(c.R, c.G, c.B, c.A)
	defer dc.Identity()

	for _, e := range items {
		dc.SetTransform(r.m.Multiply(gg.Translate(e.Center.X, e.Center.Y)).Multiply(gg.Rotate(e.Rotation)))
		dc.DrawEllipse(0, 0, e.RX, e.RY)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	r.stats.Ellipses += len(items)
	return nil
}

// DrawSprites draws each sprite with the context transform. Only the alpha
// of the tint is honored.
func (r *Renderer) DrawSprites(items []drawlist.Sprite, style drawlist.SpriteStyle) error {
	img, ok := r.textures[style.Texture]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTexture, style.Texture)
	}
	opacity := style.Alpha * style.Tint.A * r.state.Tint.A * r.state.Alpha
	if opacity <= 0 {
		return nil
	}
	dc := r.target()
	defer dc.Identity()

	for _, s := range items {
		w, h := s.Dst.Width(), s.Dst.Height()
		cx, cy := s.Dst.Min.X+w/2, s.Dst.Min.Y+h/2
		dc.SetTransform(r.m.Multiply(gg.Translate(cx, cy)).Multiply(gg.Rotate(s.Rotation)))
		dc.DrawImageEx(img, gg.DrawImageOptions{
			X:         -w / 2,
			Y:         -h / 2,
			DstWidth:  w,
			DstHeight: h,
			Opacity:   math.Min(opacity, 1),
		})
	}
	r.stats.Sprites += len(items)
	return nil
}

// DrawText draws each string at its anchor mapped to pixels. Glyphs are
// not scaled by the context transform; Size is in pixels.
func (r *Renderer) DrawText(items []drawlist.TextItem, style drawlist.TextStyle) error {
	if r.fonts == nil {
		fc, err := defaultFontCache()
		if err != nil {
			return err
		}
		r.fonts = fc
	}
	dc := r.target()
	dc.Identity()
	dc.SetFont(r.fonts.face(style.Size))
	dc.SetColor(r.state.Shade(style.Color).Color())
	for _, it := range items {
		p := r.m.TransformPoint(it.At)
		dc.DrawString(it.Text, p.X, p.Y)
	}
	r.stats.Strings += len(items)
	return nil
}
