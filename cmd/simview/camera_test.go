// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"math"
	"testing"

	"github.com/gogpu/drawlist"
	"github.com/gogpu/drawlist/recording"
)

func sameBounds(a, b drawlist.Bounds) bool {
	const eps = 1e-9
	return math.Abs(a.Min.X-b.Min.X) < eps && math.Abs(a.Min.Y-b.Min.Y) < eps &&
		math.Abs(a.Max.X-b.Max.X) < eps && math.Abs(a.Max.Y-b.Max.Y) < eps
}

func TestCameraPan(t *testing.T) {
	c := NewCamera(drawlist.NewBounds(-1, -1, 1, 1))
	c.Pan(0.5, -2)
	if want := drawlist.NewBounds(-0.5, -3, 1.5, -1); !sameBounds(c.Bounds(), want) {
		t.Errorf("Bounds = %+v, want %+v", c.Bounds(), want)
	}
	c.Reset()
	if c.Bounds() != drawlist.NewBounds(-1, -1, 1, 1) {
		t.Errorf("Reset left %+v", c.Bounds())
	}
}

func TestCameraZoom(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  drawlist.Bounds
	}{
		{"out", 2, drawlist.NewBounds(-2, -1, 2, 1)},
		{"in", 0.5, drawlist.NewBounds(-0.5, -0.25, 0.5, 0.25)},
		{"clamped out", 100, drawlist.NewBounds(-4, -2, 4, 2)},
		{"clamped in", 0.01, drawlist.NewBounds(-0.25, -0.125, 0.25, 0.125)},
		{"ignored", -1, drawlist.NewBounds(-1, -0.5, 1, 0.5)},
		{"nan", math.NaN(), drawlist.NewBounds(-1, -0.5, 1, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(drawlist.NewBounds(-1, -0.5, 1, 0.5))
			c.Zoom(tt.scale)
			if !sameBounds(c.Bounds(), tt.want) {
				t.Errorf("Bounds = %+v, want %+v", c.Bounds(), tt.want)
			}
		})
	}
}

func TestCameraZoomKeepsCenter(t *testing.T) {
	c := NewCamera(boardBounds)
	c.Pan(1, 0.5)
	c.Zoom(0.5)
	if got := c.Center(); math.Abs(got.X-1) > 1e-9 || math.Abs(got.Y-0.5) > 1e-9 {
		t.Errorf("Center = %v, want (1, 0.5)", got)
	}
}

func TestCameraSetBoundsRejectsDegenerate(t *testing.T) {
	c := NewCamera(boardBounds)
	c.SetBounds(drawlist.NewBounds(0, 0, 0, 1))
	if c.Bounds() != boardBounds {
		t.Errorf("degenerate bounds accepted: %+v", c.Bounds())
	}
	c.SetBounds(drawlist.NewBounds(0, 0, 2, 1))
	if c.Bounds() != drawlist.NewBounds(0, 0, 2, 1) {
		t.Errorf("SetBounds ignored: %+v", c.Bounds())
	}
}

func TestCameraDrivesBoardViewport(t *testing.T) {
	v, rec := newRecordedViewer(320, 240)
	v.Camera.Zoom(0.5)
	v.Camera.Pan(-0.75, -0.75)
	view := v.Camera.Bounds()
	cmds, _ := recordScene(t, v, rec)

	l := v.Layout()
	var board bool
	for _, s := range states(cmds) {
		if s.Rect == l.Board {
			board = true
			if s.Bounds != view {
				t.Errorf("board bounds = %+v, want the camera view %+v", s.Bounds, view)
			}
		}
		if s.Rect == l.Minimap && s.Bounds != boardBounds {
			t.Errorf("minimap bounds = %+v, want the whole board", s.Bounds)
		}
	}
	if !board {
		t.Fatal("no board context recorded")
	}

	// The minimap outlines the view with four more segments.
	outlined := false
	for _, c := range cmds {
		if dl, ok := c.(recording.DrawLinesCommand); ok && dl.Style.Color == colorView {
			outlined = len(dl.Segments) == 4
		}
	}
	if !outlined {
		t.Error("view outline not drawn in the minimap")
	}

	// Zoomed on the top-left cell, the middle of the board viewport is
	// inside that cell.
	mid := l.Board.X + l.Board.Width/2
	if !v.Click(mid, l.Board.Y+l.Board.Height/2) {
		t.Fatal("click rejected")
	}
	if v.World.Board.At(0, 0) != X {
		t.Errorf("zoomed click played %v at 0,0", v.World.Board.At(0, 0))
	}
}
