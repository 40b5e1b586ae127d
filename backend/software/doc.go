// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software draws drawlist frames on the CPU with gg.
//
// Renderer implements drawlist.Registry for every built-in kind. Each
// context change resets the gg clip to the context's viewport rectangle;
// geometry is mapped from logical coordinates to pixels with the context
// matrix before it reaches gg, so stroke widths stay in pixels.
//
//	r := software.New(800, 600, software.WithClearColor(gg.Hex("#101418")))
//	defer r.Close()
//
//	_ = r.Begin(800, 600)
//	_, err := frame.Submit(r)
//	_ = r.End()
//	_ = r.SavePNG("frame.png")
//
// Importing the package registers it with the backend package under the
// name "software".
package software
