// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/drawlist"
	"github.com/gogpu/drawlist/backend"
)

// Name identifies the backend.
const Name = "wgpu"

// Renderer errors.
var (
	// ErrNoPass is returned by Begin when no render pass is attached.
	ErrNoPass = errors.New("wgpu: no render pass attached")

	// ErrNotBegun is returned by draws outside Begin/End.
	ErrNotBegun = errors.New("wgpu: frame not begun")
)

var _ backend.Renderer = (*Renderer)(nil)

// Stats counts the work recorded since the last Begin.
type Stats struct {
	Contexts  int
	DrawCalls int
	Vertices  int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFormat sets the color target format of the pipeline. The default is
// BGRA8Unorm.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(r *Renderer) {
		r.format = f
	}
}

// WithSPIRV makes the renderer compile its shader to SPIR-V with naga
// instead of handing WGSL to the device.
func WithSPIRV() Option {
	return func(r *Renderer) {
		r.spirv = true
	}
}

// Renderer records drawlist groups into a host-owned render pass.
//
// Buffers created for a frame stay alive until the next Begin or Close,
// since the host submits the pass after End returns.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	spirv  bool

	pipe pipeline

	pass          hal.RenderPassEncoder
	width, height int
	begun         bool

	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	frameBufs  []hal.Buffer
	staging    []byte

	state drawlist.ContextState
	m     gg.Matrix
	stats Stats
}

// New creates a renderer on device and queue. The pipeline is built
// eagerly so that configuration errors surface here.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNoHALDevice
	}
	r := &Renderer{
		device: device,
		queue:  queue,
		format: gputypes.TextureFormatBGRA8Unorm,
		pipe:   pipeline{device: device},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.pipe.create(r.format, r.spirv); err != nil {
		return nil, err
	}
	return r, nil
}

// Name returns the backend name.
func (r *Renderer) Name() string { return Name }

// Format returns the color target format.
func (r *Renderer) Format() gputypes.TextureFormat { return r.format }

// Stats returns the counters of the current frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Attach sets the render pass the next frame records into.
func (r *Renderer) Attach(pass hal.RenderPassEncoder) {
	r.pass = pass
}

// Begin starts a width x height frame in the attached pass. Buffers of the
// previous frame are released.
func (r *Renderer) Begin(width, height int) error {
	if r.pass == nil {
		return ErrNoPass
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("wgpu: invalid target size %dx%d", width, height)
	}
	r.releaseFrame()
	r.width, r.height = width, height
	r.stats = Stats{}

	var u [uniformSize]byte
	binary.LittleEndian.PutUint32(u[0:4], math.Float32bits(float32(width)))
	binary.LittleEndian.PutUint32(u[4:8], math.Float32bits(float32(height)))
	buf, err := r.upload("drawlist_uniform", u[:], gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	r.uniformBuf = buf

	r.bindGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "drawlist_uniform_bind",
		Layout: r.pipe.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}

	r.state = drawlist.RootState(drawlist.Rect{Width: width, Height: height})
	r.m = r.state.Matrix()
	r.begun = true
	return nil
}

// End finishes recording. The pass is detached but not ended; the host
// owns it.
func (r *Renderer) End() error {
	r.begun = false
	r.pass = nil
	return nil
}

// Close releases all GPU resources. The device itself is not destroyed.
func (r *Renderer) Close() {
	r.releaseFrame()
	r.pipe.destroy()
}

func (r *Renderer) releaseFrame() {
	for _, b := range r.frameBufs {
		r.device.DestroyBuffer(b)
	}
	r.frameBufs = r.frameBufs[:0]
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
}

func (r *Renderer) upload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		r.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("wgpu: write %s: %w", label, err)
	}
	return buf, nil
}

// Lookup implements drawlist.Registry.
func (r *Renderer) Lookup(kind string) (drawlist.Backend, bool) {
	switch kind {
	case drawlist.KindLine, drawlist.KindEllipse:
		return r, true
	}
	return nil, false
}

// ApplyContext implements drawlist.Registry. The context rect becomes the
// scissor rectangle, clamped to the target, and its depth range becomes
// the viewport depth range.
func (r *Renderer) ApplyContext(s drawlist.ContextState) error {
	if !r.begun {
		return ErrNotBegun
	}
	r.state = s
	r.m = s.Matrix()
	r.stats.Contexts++

	x0, y0 := clampInt(s.Rect.X, 0, r.width), clampInt(s.Rect.Y, 0, r.height)
	x1 := clampInt(s.Rect.X+s.Rect.Width, 0, r.width)
	y1 := clampInt(s.Rect.Y+s.Rect.Height, 0, r.height)
	//nolint:gosec // clamped to the target size
	r.pass.SetScissorRect(uint32(x0), uint32(y0), uint32(x1-x0), uint32(y1-y0))
	r.pass.SetViewport(0, 0, float32(r.width), float32(r.height), float32(s.Depth.Lo), float32(s.Depth.Hi))
	return nil
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// DrawLines records one draw call for all segments.
func (r *Renderer) DrawLines(segs []drawlist.Segment, style drawlist.LineStyle) error {
	color := premul(r.state.Shade(style.Color))
	var n uint32
	r.staging, n = tessellateLines(r.staging, segs, r.m, style.Thickness, color)
	return r.draw("drawlist_line_verts", r.staging[:int(n)*vertexStride], n)
}

// DrawEllipses records one draw call for all ellipses.
func (r *Renderer) DrawEllipses(items []drawlist.Ellipse, style drawlist.EllipseStyle) error {
	c := r.state.Shade(style.Color)
	c.A *= style.Alpha
	var n uint32
	r.staging, n = tessellateEllipses(r.staging, items, r.m, premul(c))
	return r.draw("drawlist_ellipse_verts", r.staging[:int(n)*vertexStride], n)
}

func (r *Renderer) draw(label string, data []byte, count uint32) error {
	if !r.begun {
		return ErrNotBegun
	}
	if count == 0 {
		return nil
	}
	buf, err := r.upload(label, data, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	r.frameBufs = append(r.frameBufs, buf)

	r.pass.SetPipeline(r.pipe.pipeline)
	r.pass.SetBindGroup(0, r.bindGroup, nil)
	r.pass.SetVertexBuffer(0, buf, 0)
	r.pass.Draw(count, 1, 0, 0)

	r.stats.DrawCalls++
	r.stats.Vertices += int(count)
	return nil
}
