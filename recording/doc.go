// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package recording captures the backend calls a drawlist frame makes.
//
// A Recorder is a drawlist registry that supports every built-in kind. It
// stores each ApplyContext and draw call as a typed command instead of
// rendering, so a frame can be inspected in tests, written out as a text
// trace, or replayed later to a real renderer:
//
//	rec := recording.NewRecorder(800, 600)
//	rec.Begin(800, 600)
//	frame.Submit(rec)
//	rec.End()
//
//	r := rec.FinishRecording()
//	r.WriteTo(os.Stdout)
//	r.Playback(softwareRenderer)
//
// The recorder registers itself with package backend as "trace".
package recording
