// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend selects a drawlist renderer by name.
//
// Renderer packages register a factory in init, following the database/sql
// driver pattern, and applications pick one by name from configuration:
//
//	import _ "github.com/gogpu/drawlist/backend/software"
//
//	r, err := backend.New("software", backend.Config{Width: 800, Height: 600})
//
// Default returns the highest-priority registered renderer.
package backend
