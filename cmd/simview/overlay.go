// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/drawlist"
)

// frameWindow is the number of frame times averaged for the FPS readout.
const frameWindow = 100

// The overlay starts below the score line.
const (
	overlaySize = 13
	overlayLine = 16
	overlayX    = 12
	overlayY    = 48
)

var colorOverlay = gg.RGBA{R: 0.7, G: 1, B: 0.7, A: 1}

// Overlay is the debug readout drawn over the scene: frame rate, world
// state and the statistics of the previous Submit.
type Overlay struct {
	Visible bool

	times []time.Duration // ring of the last frameWindow frame times
	next  int
	last  time.Time
}

// Toggle shows or hides the overlay.
func (o *Overlay) Toggle() { o.Visible = !o.Visible }

// Frame records that a frame started at now.
func (o *Overlay) Frame(now time.Time) {
	if !o.last.IsZero() {
		o.record(now.Sub(o.last))
	}
	o.last = now
}

func (o *Overlay) record(d time.Duration) {
	if len(o.times) < frameWindow {
		o.times = append(o.times, d)
		return
	}
	o.times[o.next] = d
	o.next = (o.next + 1) % frameWindow
}

// FPS returns the average frame rate over the recorded frames, or 0 before
// two frames were seen.
func (o *Overlay) FPS() float64 {
	var sum time.Duration
	for _, d := range o.times {
		sum += d
	}
	if sum <= 0 {
		return 0
	}
	return float64(len(o.times)) / sum.Seconds()
}

// Lines returns the overlay text.
func (o *Overlay) Lines(w *World, prev drawlist.Stats, kinds []string) []string {
	var frameMS float64
	if n := len(o.times); n > 0 {
		newest := (o.next + n - 1) % n
		frameMS = float64(o.times[newest]) / float64(time.Millisecond)
	}
	autoplay := "off"
	if w.Autoplay {
		autoplay = "on"
	}
	return []string{
		fmt.Sprintf("FPS %.1f  frame %.2f ms", o.FPS(), frameMS),
		fmt.Sprintf("sim %.2f s  ticks %d  autoplay %s", w.Clock(), w.Ticks(), autoplay),
		fmt.Sprintf("leaves %d  rounds %d", len(w.Leaves.Leaves()), w.Board.Wins(X)+w.Board.Wins(O)+w.Board.Draws()),
		fmt.Sprintf("commands %d  groups %d  states %d  dropped %d",
			prev.Commands, prev.Groups, prev.StateChanges, prev.Dropped),
		"kinds " + strings.Join(kinds, ","),
	}
}

// Draw records the overlay in its own top layer of root so it lands after
// every scene context.
func (o *Overlay) Draw(root *drawlist.Scope, w *World, prev drawlist.Stats, kinds []string) error {
	if !o.Visible {
		return nil
	}
	lines := o.Lines(w, prev, kinds)
	items := make([]drawlist.TextItem, len(lines))
	for i, line := range lines {
		items[i] = drawlist.TextItem{Text: line, At: gg.Pt(overlayX, float64(overlayY+i*overlayLine))}
	}
	return root.Layer(0.95, 1, func(s *drawlist.Scope) {
		s.Texts(items...).Size(overlaySize).Color(colorOverlay).Depth(1)
	})
}
