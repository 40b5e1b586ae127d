// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
)

// Vine is a straight segment in board space that grows leaves.
type Vine struct {
	From, To gg.Point
}

func (v Vine) at(t float64) gg.Point {
	return gg.Pt(v.From.X+(v.To.X-v.From.X)*t, v.From.Y+(v.To.Y-v.From.Y)*t)
}

func (v Vine) angle() float64 {
	return math.Atan2(v.To.Y-v.From.Y, v.To.X-v.From.X)
}

// Leaf is one ellipse hanging off a vine. Size is the semi-major axis in
// board units; Growth goes from 0 to 1 after spawning.
type Leaf struct {
	Pos      gg.Point
	Size     float64
	Aspect   float64
	Rotation float64
	Growth   float64
	Variant  int
	phase    float64
}

// LeafConfig tunes the leaf field.
type LeafConfig struct {
	SpawnRate  float64 // leaves per second
	GrowthRate float64 // growth per second
	BaseSize   float64
	Variation  float64 // relative size variation
	MaxOffset  float64 // distance from the vine
	MaxLeaves  int
	Seed       uint64
}

// DefaultLeafConfig returns the settings used by the viewer.
func DefaultLeafConfig() LeafConfig {
	return LeafConfig{
		SpawnRate:  6,
		GrowthRate: 1,
		BaseSize:   0.07,
		Variation:  0.3,
		MaxOffset:  0.12,
		MaxLeaves:  160,
		Seed:       42,
	}
}

// LeafField grows leaves along vines. It is deterministic for a seed and
// a sequence of ticks.
type LeafField struct {
	cfg    LeafConfig
	rng    *rand.Rand
	vines  []Vine
	leaves []Leaf
	clock  float64
	debt   float64
}

// NewLeafField creates an empty field.
func NewLeafField(cfg LeafConfig) *LeafField {
	return &LeafField{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// AddVine adds a vine that leaves can spawn on.
func (f *LeafField) AddVine(v Vine) { f.vines = append(f.vines, v) }

// Leaves returns the current leaves.
func (f *LeafField) Leaves() []Leaf { return f.leaves }

// Tick advances the field by dt seconds.
func (f *LeafField) Tick(dt float64) {
	f.clock += dt
	for i := range f.leaves {
		l := &f.leaves[i]
		l.Growth = math.Min(1, l.Growth+f.cfg.GrowthRate*dt)
	}
	if len(f.vines) == 0 {
		return
	}
	f.debt += f.cfg.SpawnRate * dt
	for f.debt >= 1 && len(f.leaves) < f.cfg.MaxLeaves {
		f.debt--
		f.spawn()
	}
	if len(f.leaves) >= f.cfg.MaxLeaves {
		f.debt = 0
	}
}

func (f *LeafField) spawn() {
	v := f.vines[f.rng.IntN(len(f.vines))]
	p := v.at(f.rng.Float64())
	side := 1.0
	if f.rng.IntN(2) == 0 {
		side = -1
	}
	a := v.angle()
	off := f.cfg.MaxOffset * f.rng.Float64() * side
	p.X += -math.Sin(a) * off
	p.Y += math.Cos(a) * off

	f.leaves = append(f.leaves, Leaf{
		Pos:      p,
		Size:     f.cfg.BaseSize * (1 + f.cfg.Variation*(2*f.rng.Float64()-1)),
		Aspect:   0.35 + 0.2*f.rng.Float64(),
		Rotation: a + side*(math.Pi/4+f.rng.Float64()*math.Pi/4),
		Variant:  f.rng.IntN(len(leafColors)),
		phase:    f.rng.Float64() * 2 * math.Pi,
	})
}

// sway returns the leaf rotation at the field clock.
func (f *LeafField) sway(l Leaf) float64 {
	return l.Rotation + 0.15*math.Sin(f.clock*1.3+l.phase)
}

var leafColors = [4]gg.RGBA{
	{R: 0.2, G: 0.6, B: 0.3, A: 1},
	{R: 0.15, G: 0.7, B: 0.35, A: 1},
	{R: 0.25, G: 0.5, B: 0.25, A: 1},
	{R: 0.3, G: 0.65, B: 0.4, A: 1},
}
