// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package drawlist is a per-frame declarative draw-command pipeline for 2D
// viewers.
//
// Frame logic issues draw requests in whatever order suits it: a line here,
// an ellipse there, at some depth, inside some coordinate space. drawlist
// records those requests, sorts them by context and depth, merges adjacent
// requests of the same kind and material into groups, and hands each group to
// the backend registered for its kind with one call.
//
// # Frames and scopes
//
// A [Frame] owns the command buffer. Each frame starts with
// [Frame.WithRootContext], which seeds the outermost [ContextState] from a
// pixel rectangle and passes a [Scope] to the callback. Scopes nest: a child
// scope may replace the viewport rectangle and logical bounds, narrow the
// depth range, and multiply tint, alpha and transform.
//
//	frame := drawlist.NewFrame()
//	err := frame.WithRootContext(drawlist.Rect{Width: 800, Height: 600}, func(s *drawlist.Scope) {
//	    s.Lines(grid...).Thickness(1).Color(gg.Hex("#444"))
//	    s.Circle(gg.Pt(400, 300), 40).Color(gg.RGB(1, 0, 0)).Depth(0.5)
//
//	    minimap := drawlist.Rect{X: 600, Y: 20, Width: 180, Height: 180}
//	    _ = s.Viewport(minimap, drawlist.NewBounds(0, 0, 100, 100), func(m *drawlist.Scope) {
//	        m.Ellipse(gg.Pt(50, 50), 10, 6).Rotation(0.3)
//	    })
//	})
//	stats, err := frame.Submit(registry)
//
// # Builders
//
// Draw calls return builders. A builder accepts chained configuration until
// its scope ends, then commits exactly one command. A builder ends when the
// next draw call is made on the frame, when a scope is entered or left, when
// the root callback returns, or when End is called. Configuring an ended
// builder is a programming error: it panics when the frame was created with
// [WithDebug] and is logged and ignored otherwise.
//
// # Kinds
//
// Lines, ellipses, sprites and text are built in. New kinds implement
// [Command] and register a backend under the same name in the [Registry];
// the buffer, sort and dispatch code does not change. A kind's Dispatch
// merges the items of its group with [Gather], which reuses the frame's
// [Scratch] so that submitting an equal frame does not allocate.
//
// A renderer may implement Registry itself. [KindRegistry] is for hosts
// that assemble one from separate per-kind backends, or that want to know
// before the first frame which kinds a renderer serves.
//
// # Ordering
//
// Depth is a sort key, not a depth test. By default commands are stable
// sorted by (context, depth) so that ties keep commit order, and adjacent
// commands with equal batch keys merge. Under this order a line, an
// ellipse and a second line committed at equal depth reach the backend as
// three groups in commit order.
//
// [WithBatchKeyOrdering] sorts by (context, depth, batch key) instead,
// trading commit order at equal depth for fewer groups: the same three
// commands reach the backend as two groups, the lines merged into one and
// the two groups ordered by their keys.
package drawlist
