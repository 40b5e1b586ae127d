// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/gogpu/drawlist"
	"github.com/gogpu/drawlist/backend"
)

// builtinKinds are the kinds the scene and the overlay draw.
var builtinKinds = []string{
	drawlist.KindLine,
	drawlist.KindEllipse,
	drawlist.KindSprite,
	drawlist.KindText,
}

// kindRegistry registers, for every built-in kind, the backend r serves it
// with, and forwards context changes to r. The viewer submits to the
// result, so the kinds a renderer supports are known before the first
// frame.
func kindRegistry(r backend.Renderer) *drawlist.KindRegistry {
	reg := drawlist.NewKindRegistry()
	reg.OnContext(r.ApplyContext)
	for _, kind := range builtinKinds {
		if b, ok := r.Lookup(kind); ok {
			reg.Register(kind, b)
		}
	}
	return reg
}

// missingKinds returns the built-in kinds reg has no backend for.
func missingKinds(reg *drawlist.KindRegistry) []string {
	var out []string
	for _, kind := range builtinKinds {
		if !reg.IsRegistered(kind) {
			out = append(out, kind)
		}
	}
	return out
}
