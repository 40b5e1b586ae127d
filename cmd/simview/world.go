// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import "github.com/gogpu/gg"

const (
	moveInterval  = 0.8 // seconds between autoplay moves
	resetInterval = 2.0 // seconds a finished round stays on screen
)

// World is the simulation the viewer draws: a self-playing tic-tac-toe
// board with leaves growing along its grid.
type World struct {
	Board    *Board
	Leaves   *LeafField
	Autoplay bool

	clock float64
	ticks int
	next  float64
}

// NewWorld creates the demo world.
func NewWorld() *World {
	w := &World{
		Board:    NewBoard(),
		Leaves:   NewLeafField(DefaultLeafConfig()),
		Autoplay: true,
		next:     moveInterval,
	}
	// Vines follow the interior grid lines, in board units centered on the
	// origin.
	for _, c := range []float64{-0.5, 0.5} {
		w.Leaves.AddVine(Vine{From: gg.Pt(-1.5, c), To: gg.Pt(1.5, c)})
		w.Leaves.AddVine(Vine{From: gg.Pt(c, -1.5), To: gg.Pt(c, 1.5)})
	}
	return w
}

// Clock returns the simulated time in seconds.
func (w *World) Clock() float64 { return w.clock }

// Ticks returns the number of Tick calls.
func (w *World) Ticks() int { return w.ticks }

// Tick advances the world by dt seconds.
func (w *World) Tick(dt float64) {
	w.clock += dt
	w.ticks++
	w.Leaves.Tick(dt)
	if w.clock < w.next {
		return
	}
	switch {
	case w.Board.Over():
		w.Board.Reset()
		w.next = w.clock + moveInterval
	case w.Autoplay:
		if r, c, ok := w.Board.nextMove(); ok {
			w.Board.Play(r, c)
		}
		w.next = w.clock + moveInterval
		if w.Board.Over() {
			w.next = w.clock + resetInterval
		}
	}
}

// Click plays the cell under a board-space point, if any.
func (w *World) Click(p gg.Point) bool {
	col, row := int(p.X+1.5), int(p.Y+1.5)
	if p.X < -1.5 || p.Y < -1.5 {
		return false
	}
	if !w.Board.Play(row, col) {
		return false
	}
	w.next = w.clock + moveInterval
	if w.Board.Over() {
		w.next = w.clock + resetInterval
	}
	return true
}
