// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/drawlist"
)

// createNoopDevice creates a noop HAL device for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// recordingPass logs the render pass calls the renderer makes. Methods the
// renderer never calls are left to the embedded nil interface.
type recordingPass struct {
	hal.RenderPassEncoder
	calls []string
}

func (p *recordingPass) SetPipeline(hal.RenderPipeline) { p.calls = append(p.calls, "pipeline") }
func (p *recordingPass) SetBindGroup(i uint32, _ hal.BindGroup, _ []uint32) {
	p.calls = append(p.calls, fmt.Sprintf("bind %d", i))
}
func (p *recordingPass) SetVertexBuffer(slot uint32, _ hal.Buffer, _ uint64) {
	p.calls = append(p.calls, fmt.Sprintf("vertex %d", slot))
}
func (p *recordingPass) SetScissorRect(x, y, w, h uint32) {
	p.calls = append(p.calls, fmt.Sprintf("scissor %d,%d %dx%d", x, y, w, h))
}
func (p *recordingPass) SetViewport(_, _, _, _, lo, hi float32) {
	p.calls = append(p.calls, fmt.Sprintf("depth %.2f-%.2f", lo, hi))
}
func (p *recordingPass) Draw(n, instances, _, _ uint32) {
	p.calls = append(p.calls, fmt.Sprintf("draw %d", n))
}

func equalCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("call %d = %q, want %q (all: %q)", i, got[i], want[i], got)
		}
	}
}

func TestNewRequiresDevice(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrNoHALDevice) {
		t.Errorf("New(nil, nil) = %v, want ErrNoHALDevice", err)
	}
}

func TestBeginRequiresPass(t *testing.T) {
	device, queue := createNoopDevice(t)
	r, err := New(device, queue)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.Begin(10, 10); !errors.Is(err, ErrNoPass) {
		t.Errorf("Begin without pass = %v, want ErrNoPass", err)
	}
	if err := r.DrawLines([]drawlist.Segment{drawlist.Seg(0, 0, 1, 1)}, drawlist.LineStyle{Thickness: 1, Color: gg.White}); !errors.Is(err, ErrNotBegun) {
		t.Errorf("draw before Begin = %v, want ErrNotBegun", err)
	}
}

func TestLookup(t *testing.T) {
	device, queue := createNoopDevice(t)
	r, err := New(device, queue)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for kind, want := range map[string]bool{
		drawlist.KindLine:    true,
		drawlist.KindEllipse: true,
		drawlist.KindSprite:  false,
		drawlist.KindText:    false,
	} {
		if _, ok := r.Lookup(kind); ok != want {
			t.Errorf("Lookup(%q) = %v, want %v", kind, ok, want)
		}
	}
}

func TestSubmitRecordsPass(t *testing.T) {
	device, queue := createNoopDevice(t)
	r, err := New(device, queue)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	pass := &recordingPass{}
	r.Attach(pass)
	if err := r.Begin(200, 100); err != nil {
		t.Fatal(err)
	}

	f := drawlist.NewFrame()
	err = f.WithRootContext(drawlist.Rect{Width: 200, Height: 100}, func(s *drawlist.Scope) {
		s.Line(gg.Pt(0, 0), gg.Pt(10, 10))
		s.Line(gg.Pt(0, 10), gg.Pt(10, 0))
		_ = s.Scope(drawlist.Delta{}.WithRect(drawlist.Rect{X: 150, Y: 50, Width: 100, Height: 100}).WithDepth(0.5, 1), func(c *drawlist.Scope) {
			c.Circle(gg.Pt(10, 10), 5)
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Submit(r); err != nil {
		t.Fatal(err)
	}
	if err := r.End(); err != nil {
		t.Fatal(err)
	}

	equalCalls(t, pass.calls, []string{
		"scissor 0,0 200x100",
		"depth 0.00-1.00",
		"pipeline", "bind 0", "vertex 0", "draw 12",
		// Child rect is clamped to the target.
		"scissor 150,50 50x50",
		"depth 0.50-1.00",
		"pipeline", "bind 0", "vertex 0", fmt.Sprintf("draw %d", ellipseSegments*3),
	})

	st := r.Stats()
	if st.Contexts != 2 || st.DrawCalls != 2 || st.Vertices != 12+ellipseSegments*3 {
		t.Errorf("Stats = %+v", st)
	}
	if len(r.frameBufs) != 2 {
		t.Errorf("frame buffers = %d, want 2", len(r.frameBufs))
	}

	// The next frame releases the previous frame's buffers.
	r.Attach(pass)
	if err := r.Begin(200, 100); err != nil {
		t.Fatal(err)
	}
	if len(r.frameBufs) != 0 {
		t.Errorf("frame buffers after Begin = %d, want 0", len(r.frameBufs))
	}
}

func TestUnsupportedKindsDropped(t *testing.T) {
	device, queue := createNoopDevice(t)
	r, err := New(device, queue)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	pass := &recordingPass{}
	r.Attach(pass)
	if err := r.Begin(10, 10); err != nil {
		t.Fatal(err)
	}
	f := drawlist.NewFrame()
	_ = f.WithRootContext(drawlist.Rect{Width: 10, Height: 10}, func(s *drawlist.Scope) {
		s.Text("hi", gg.Pt(1, 1))
	})
	st, err := f.Submit(r)
	if !errors.Is(err, drawlist.ErrUnknownKind) {
		t.Errorf("Submit = %v, want ErrUnknownKind", err)
	}
	if st.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", st.Dropped)
	}
	if r.Stats().DrawCalls != 0 {
		t.Error("text should not draw")
	}
}

func TestSPIRVShader(t *testing.T) {
	words, err := compileSPIRV(solidShaderSource)
	if err != nil {
		t.Fatalf("compileSPIRV: %v", err)
	}
	if len(words) == 0 || words[0] != 0x07230203 {
		t.Fatalf("invalid SPIR-V magic")
	}

	device, queue := createNoopDevice(t)
	r, err := New(device, queue, WithSPIRV(), WithFormat(gputypes.TextureFormatRGBA8Unorm))
	if err != nil {
		t.Fatalf("New with SPIR-V: %v", err)
	}
	defer r.Close()
	if r.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v", r.Format())
	}
}

// fakeProvider is a headless gpucontext.DeviceProvider.
type fakeProvider struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	hal    bool
}

func (p *fakeProvider) Device() gpucontext.Device { return p.device }
func (p *fakeProvider) Queue() gpucontext.Queue   { return p.queue }
func (p *fakeProvider) SurfaceFormat() gputypes.TextureFormat {
	return p.format
}
func (p *fakeProvider) Adapter() gpucontext.Adapter         { return nil }
func (p *fakeProvider) AdapterInfo() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{} }

type fakeHALProvider struct{ fakeProvider }

func (p *fakeHALProvider) HalDevice() any { return p.device }
func (p *fakeHALProvider) HalQueue() any  { return p.queue }

func TestNewFromProvider(t *testing.T) {
	device, queue := createNoopDevice(t)

	r, err := NewFromProvider(&fakeProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewFromProvider: %v", err)
	}
	if r.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("headless format = %v, want BGRA8Unorm", r.Format())
	}
	r.Close()

	r, err = NewFromProvider(&fakeHALProvider{fakeProvider{device: device, queue: queue, format: gputypes.TextureFormatRGBA8Unorm}})
	if err != nil {
		t.Fatalf("NewFromProvider (hal): %v", err)
	}
	if r.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("surface format = %v, want RGBA8Unorm", r.Format())
	}
	r.Close()

	if _, err := NewFromProvider(&fakeProvider{}); !errors.Is(err, ErrNoHALDevice) {
		t.Errorf("empty provider = %v, want ErrNoHALDevice", err)
	}
}
