// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/drawlist"
)

// vertexStride is the byte stride of one vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
const vertexStride = 24

// ellipseSegments is the number of fan triangles per ellipse.
const ellipseSegments = 32

// premul converts a straight-alpha color to premultiplied float32.
func premul(c gg.RGBA) [4]float32 {
	a := math.Max(0, math.Min(1, c.A))
	return [4]float32{float32(c.R * a), float32(c.G * a), float32(c.B * a), float32(a)}
}

func writeVertex(buf []byte, p gg.Point, color [4]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(p.X)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(p.Y)))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(color[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(color[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(color[2]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(color[3]))
}

// grow returns staging resized to n bytes, reallocating only when needed.
func grow(staging []byte, n int) []byte {
	if cap(staging) < n {
		return make([]byte, n)
	}
	return staging[:n]
}

// tessellateLines emits one quad (two triangles) per segment. Endpoints are
// mapped by m; thickness is in pixels. Zero-length segments are skipped.
func tessellateLines(staging []byte, segs []drawlist.Segment, m gg.Matrix, thickness float64, color [4]float32) ([]byte, uint32) {
	buf := grow(staging, len(segs)*6*vertexStride)
	half := thickness / 2
	off := 0
	for _, s := range segs {
		a := m.TransformPoint(s.A)
		b := m.TransformPoint(s.B)
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l < 1e-9 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half

		a0 := gg.Pt(a.X+nx, a.Y+ny)
		a1 := gg.Pt(a.X-nx, a.Y-ny)
		b0 := gg.Pt(b.X+nx, b.Y+ny)
		b1 := gg.Pt(b.X-nx, b.Y-ny)
		for _, p := range [6]gg.Point{a0, b0, a1, a1, b0, b1} {
			writeVertex(buf[off:], p, color)
			off += vertexStride
		}
	}
	return buf[:off], uint32(off / vertexStride) //nolint:gosec // vertex count fits uint32
}

// tessellateEllipses emits a triangle fan per ellipse, rotated about its
// center in logical space and then mapped by m.
func tessellateEllipses(staging []byte, items []drawlist.Ellipse, m gg.Matrix, color [4]float32) ([]byte, uint32) {
	buf := grow(staging, len(items)*ellipseSegments*3*vertexStride)
	off := 0
	for _, e := range items {
		if e.RX <= 0 || e.RY <= 0 {
			continue
		}
		em := m.Multiply(gg.Translate(e.Center.X, e.Center.Y)).Multiply(gg.Rotate(e.Rotation))
		center := em.TransformPoint(gg.Pt(0, 0))
		prev := em.TransformPoint(gg.Pt(e.RX, 0))
		for i := 1; i <= ellipseSegments; i++ {
			theta := 2 * math.Pi * float64(i) / ellipseSegments
			next := em.TransformPoint(gg.Pt(e.RX*math.Cos(theta), e.RY*math.Sin(theta)))
			writeVertex(buf[off:], center, color)
			writeVertex(buf[off+vertexStride:], prev, color)
			writeVertex(buf[off+2*vertexStride:], next, color)
			off += 3 * vertexStride
			prev = next
		}
	}
	return buf[:off], uint32(off / vertexStride) //nolint:gosec // vertex count fits uint32
}
