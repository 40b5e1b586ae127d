// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/drawlist"
	"github.com/gogpu/drawlist/recording"
)

func Example() {
	rec := recording.NewRecorder(320, 240)
	_ = rec.Begin(320, 240)

	frame := drawlist.NewFrame()
	_ = frame.WithRootContext(drawlist.Rect{Width: 320, Height: 240}, func(s *drawlist.Scope) {
		// Overlay text first in code, last on screen.
		s.Text("Score: 3", gg.Pt(8, 20)).Depth(0.9)
		s.Line(gg.Pt(0, 120), gg.Pt(320, 120)).Thickness(2)
		s.Line(gg.Pt(160, 0), gg.Pt(160, 240)).Thickness(2)

		_ = s.Viewport(drawlist.Rect{X: 220, Y: 140, Width: 100, Height: 100}, drawlist.NewBounds(0, 0, 1, 1), func(m *drawlist.Scope) {
			m.Circle(gg.Pt(0.5, 0.5), 0.4).Color(gg.RGBA{B: 1, A: 1})
		})
	})
	stats, err := frame.Submit(rec)
	if err != nil {
		fmt.Println(err)
	}
	_ = rec.End()

	_, _ = rec.FinishRecording().WriteTo(os.Stdout)
	fmt.Printf("groups=%d state_changes=%d\n", stats.Groups, stats.StateChanges)
	// Output:
	// # frame 320x240, 5 commands
	// ApplyContext rect=320x240+0+0 bounds=[0,0]-[320,240] depth=[0,1] alpha=1
	// DrawLines n=2 thickness=2 color=#ffffffff
	// DrawText n=1 size=16 color=#ffffffff
	// ApplyContext rect=100x100+220+140 bounds=[0,0]-[1,1] depth=[0,1] alpha=1
	// DrawEllipses n=1 color=#0000ffff alpha=1
	// groups=3 state_changes=2
}

// A frame submitted to a recorder and replayed elsewhere must produce the
// same calls as a direct submit.
func TestPlaybackMatchesDirectSubmit(t *testing.T) {
	draw := func(s *drawlist.Scope) {
		for i := 0; i < 4; i++ {
			s.Circle(gg.Pt(float64(10*i), 10), 3).Depth(0.5)
		}
		_ = s.Tinted(gg.RGBA{R: 1, G: 0.5, B: 0.5, A: 1}, func(ts *drawlist.Scope) {
			ts.Line(gg.Pt(0, 0), gg.Pt(10, 10))
		})
	}
	submit := func(rec *recording.Recorder) {
		_ = rec.Begin(50, 50)
		f := drawlist.NewFrame()
		if err := f.WithRootContext(drawlist.Rect{Width: 50, Height: 50}, draw); err != nil {
			t.Fatal(err)
		}
		if _, err := f.Submit(rec); err != nil {
			t.Fatal(err)
		}
		_ = rec.End()
	}

	direct := recording.NewRecorder(50, 50)
	submit(direct)

	replayed := recording.NewRecorder(0, 0)
	if err := direct.FinishRecording().Playback(replayed); err != nil {
		t.Fatal(err)
	}

	a, b := direct.Commands(), replayed.Commands()
	if len(a) != len(b) {
		t.Fatalf("direct %d commands, replay %d", len(a), len(b))
	}
	for i := range a {
		if a[i].String() != b[i].String() {
			t.Errorf("command %d: %v != %v", i, a[i], b[i])
		}
	}
}
