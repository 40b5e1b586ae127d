// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/drawlist"
	"github.com/gogpu/drawlist/backend/software"
	"github.com/gogpu/drawlist/internal/config"
	"github.com/gogpu/drawlist/recording"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// recordScene renders v once into its recorder and returns the commands.
func recordScene(t *testing.T, v *Viewer, rec *recording.Recorder) ([]recording.Command, drawlist.Stats) {
	t.Helper()
	stats, err := v.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return rec.Commands(), stats
}

func states(cmds []recording.Command) []drawlist.ContextState {
	var out []drawlist.ContextState
	for _, c := range cmds {
		if ac, ok := c.(recording.ApplyContextCommand); ok {
			out = append(out, ac.State)
		}
	}
	return out
}

func newRecordedViewer(w, h int) (*Viewer, *recording.Recorder) {
	rec := recording.NewRecorder(w, h)
	return NewViewer(rec, config.Default(), discard(), w, h), rec
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(320, 240)
	if want := (drawlist.Rect{X: 64, Y: 24, Width: 192, Height: 192}); l.Board != want {
		t.Errorf("Board = %v, want %v", l.Board, want)
	}
	if want := (drawlist.Rect{X: 276, Y: 4, Width: 40, Height: 40}); l.Minimap != want {
		t.Errorf("Minimap = %v, want %v", l.Minimap, want)
	}

	tiny := NewLayout(1, 1)
	if tiny.Board.Empty() || tiny.Minimap.Empty() {
		t.Errorf("tiny layout has empty viewports: %+v", tiny)
	}
}

func TestSceneViewports(t *testing.T) {
	v, rec := newRecordedViewer(320, 240)
	cmds, stats := recordScene(t, v, rec)
	if stats.Dropped != 0 {
		t.Errorf("Dropped = %d", stats.Dropped)
	}

	l := v.Layout()
	var board, mini bool
	for _, s := range states(cmds) {
		switch s.Rect {
		case l.Board:
			board = true
			if s.Bounds != boardBounds {
				t.Errorf("board bounds = %+v", s.Bounds)
			}
		case l.Minimap:
			mini = true
			if s.Depth != (drawlist.DepthRange{Lo: 0.8, Hi: 1}) {
				t.Errorf("minimap depth = %+v, want [0.8, 1]", s.Depth)
			}
			if s.Alpha != 0.8 {
				t.Errorf("minimap alpha = %g, want 0.8", s.Alpha)
			}
		}
	}
	if !board || !mini {
		t.Errorf("board context = %v, minimap context = %v", board, mini)
	}
}

func TestSceneScore(t *testing.T) {
	v, rec := newRecordedViewer(320, 240)
	v.World.Board.wins[X] = 2
	v.World.Board.draws = 1
	cmds, _ := recordScene(t, v, rec)

	for _, c := range cmds {
		if dt, ok := c.(recording.DrawTextCommand); ok {
			if got := dt.Items[0].Text; got != "X 2  O 0  draws 1" {
				t.Errorf("score = %q", got)
			}
			return
		}
	}
	t.Error("no score text recorded")
}

func TestSceneLeavesAsEllipses(t *testing.T) {
	v, rec := newRecordedViewer(320, 240)
	v.World.Autoplay = false
	for range 60 {
		v.World.Tick(1.0 / 60)
	}
	grown := 0
	for _, l := range v.World.Leaves.Leaves() {
		if l.Growth > 0 {
			grown++
		}
	}
	if grown == 0 {
		t.Fatal("no grown leaves after a second")
	}

	cmds, _ := recordScene(t, v, rec)
	n := 0
	for _, c := range cmds {
		if de, ok := c.(recording.DrawEllipsesCommand); ok {
			n += len(de.Items)
		}
	}
	if n != grown {
		t.Errorf("recorded %d ellipses, want %d", n, grown)
	}
}

func TestSceneWinLineTinted(t *testing.T) {
	v, rec := newRecordedViewer(320, 240)
	play(t, v.World.Board, [2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{0, 2})
	cmds, _ := recordScene(t, v, rec)

	for _, s := range states(cmds) {
		if s.Tint == colorWin {
			return
		}
	}
	t.Error("no context tinted with the win color")
}

func TestSceneBadgeNeedsTexture(t *testing.T) {
	v, rec := newRecordedViewer(64, 64)
	if v.Scene.Badge {
		t.Fatal("badge enabled for a renderer without textures")
	}
	v.Scene.Badge = true
	cmds, _ := recordScene(t, v, rec)
	for _, c := range cmds {
		if ds, ok := c.(recording.DrawSpritesCommand); ok && ds.Style.Texture == badgeTexture {
			return
		}
	}
	t.Error("badge sprite not recorded")
}

func TestViewerClick(t *testing.T) {
	v, _ := newRecordedViewer(320, 240)
	// The first cell spans pixels 64..128 x 24..88.
	if !v.Click(100, 50) {
		t.Fatal("click in the first cell rejected")
	}
	if v.World.Board.At(0, 0) != X {
		t.Errorf("cell 0,0 = %v", v.World.Board.At(0, 0))
	}
	if v.Click(10, 10) {
		t.Error("click outside the board accepted")
	}
}

func TestViewerSoftware(t *testing.T) {
	r := software.New(200, 150, software.WithClearColor(config.Default().Render.ClearColor()))
	defer r.Close()
	v := NewViewer(r, config.Default(), discard(), 200, 150)
	if !v.Scene.Badge {
		t.Error("badge disabled for the software renderer")
	}
	if _, err := v.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// A board grid line crosses the middle of the canvas.
	l := v.Layout()
	x := l.Board.X + l.Board.Width/3
	y := l.Board.Y + l.Board.Height/2
	c := color.RGBAModel.Convert(r.Image().At(x, y)).(color.RGBA)
	if c.R < 150 || c.G < 150 {
		t.Errorf("pixel on the grid at %d,%d = %v", x, y, c)
	}

	v.Resize(100, 80)
	if _, err := v.Render(); err != nil {
		t.Fatalf("Render after resize: %v", err)
	}
	if b := r.Image().Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("canvas = %v after resize", b)
	}
}

func TestRunHeadlessTrace(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")
	cfgFile := filepath.Join(dir, "sim.toml")
	if err := os.WriteFile(cfgFile, []byte("[window]\nwidth = 160\nheight = 120\n[log]\nlevel = \"error\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	err := run(options{configFile: cfgFile, png: out, frames: 30, trace: true}, &stdout)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "# frame 160x120") {
		t.Errorf("trace header: %q", strings.SplitN(stdout.String(), "\n", 2)[0])
	}
	if !strings.Contains(stdout.String(), "dropped=0") {
		t.Errorf("trace footer missing or frame dropped groups:\n%s", stdout.String())
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Errorf("png not written: %v", err)
	}
}

func TestRunHeadlessUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	err := run(options{
		configDir: dir,
		profile:   "none",
		backend:   "nope",
		png:       filepath.Join(dir, "x.png"),
		frames:    1,
	}, io.Discard)
	if err == nil {
		t.Fatal("run succeeded with an unknown backend")
	}
}
