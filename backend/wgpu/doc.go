// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu draws drawlist lines and ellipses with gogpu/wgpu.
//
// The renderer records into a render pass owned by the host, typically the
// swapchain pass of a gogpu window. Geometry is tessellated on the CPU into
// pixel-space triangles with premultiplied colors and uploaded once per
// group; viewports become scissor rectangles and depth ranges become the
// pass viewport depth range.
//
//	r, err := wgpu.NewFromProvider(app)
//	...
//	r.Attach(pass)
//	r.Begin(w, h)
//	frame.Submit(r)
//	r.End()
//
// Sprites and text are not drawn by this backend; Lookup reports them as
// unsupported and the frame drops those groups.
package wgpu
