// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/gg"

	"github.com/gogpu/drawlist"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Config is passed to backend factories.
type Config struct {
	Width, Height int

	// Clear is the color the canvas is cleared to at Begin.
	Clear gg.RGBA
}

// Renderer is a drawlist registry with a frame lifecycle. A frame is
// drawn with
//
//	r.Begin(w, h)
//	frame.Submit(r)
//	r.End()
type Renderer interface {
	drawlist.Registry

	// Name returns the backend identifier, e.g. "software".
	Name() string

	// Begin prepares a width x height frame.
	Begin(width, height int) error

	// End finishes the frame.
	End() error

	// Close releases all backend resources.
	Close()
}

// Factory creates a renderer.
type Factory func(cfg Config) (Renderer, error)
