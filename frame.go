// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Stats describes one Submit call.
type Stats struct {
	// Commands is the number of committed commands.
	Commands int

	// Groups is the number of groups dispatched to a backend.
	Groups int

	// StateChanges is the number of ApplyContext calls.
	StateChanges int

	// Dropped is the number of groups skipped because of a dispatch error.
	Dropped int

	// Contexts is the number of distinct context snapshots recorded.
	Contexts int
}

// Frame collects draw commands for one frame and submits them in order.
// A Frame is reused across frames; Submit and Abort leave it empty with its
// storage retained.
//
// Frame is not safe for concurrent use.
type Frame struct {
	opts   frameOptions
	buf    buffer
	stack  contextStack
	open   *pending
	active bool
}

// NewFrame creates an empty frame.
func NewFrame(opts ...FrameOption) *Frame {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	f := &Frame{opts: o}
	f.buf.init(o.capacity)
	f.stack.snaps = &f.buf.snaps
	return f
}

func (f *Frame) logger() *slog.Logger {
	if f.opts.logger != nil {
		return f.opts.logger
	}
	return Logger()
}

// WithRootContext opens the outermost scope over the pixel rectangle rect
// and calls fn with it. It may be called several times per frame; commands
// accumulate until Submit.
//
// A degenerate rect is rejected and fn is not called. If fn panics, every
// command recorded so far in the frame is discarded before the panic
// continues.
func (f *Frame) WithRootContext(rect Rect, fn func(*Scope)) error {
	if rect.Empty() {
		return fmt.Errorf("%w: %v", ErrDegenerateRect, rect)
	}
	if f.active {
		return ErrFrameActive
	}

	root := RootState(rect)
	id := f.stack.reset(root)
	s := &Scope{frame: f, id: id, state: root, level: 1}
	f.active = true

	completed := false
	defer func() {
		f.closeOpen()
		s.closed = true
		f.stack.clear()
		f.active = false
		if !completed {
			f.buf.reset()
		}
	}()
	fn(s)
	completed = true
	return nil
}

// Submit sorts the frame's commands, applies each context's state the first
// time a command of that context is reached, and dispatches every group of
// adjacent same-kind, same-key commands to the backend registered for the
// kind. The frame is then cleared, keeping its storage.
//
// Groups whose kind is not registered, and groups whose backend fails, are
// logged and skipped; the rest of the frame is still drawn. The returned
// error joins every such failure.
func (f *Frame) Submit(reg Registry) (Stats, error) {
	f.closeOpen()
	defer f.buf.reset()

	stats := Stats{Commands: f.buf.len(), Contexts: f.buf.snaps.len()}
	if stats.Commands == 0 {
		return stats, nil
	}
	f.buf.sort(f.opts.batchKeyOrder)

	var errs []error
	entries := f.buf.entries
	ctx := -1
	skip := false
	start := 0

	flush := func(end int) {
		if start >= end {
			return
		}
		if skip {
			stats.Dropped++
			return
		}
		if err := f.dispatch(reg, start, end); err != nil {
			errs = append(errs, err)
			stats.Dropped++
			return
		}
		stats.Groups++
	}

	for i := range entries {
		e := &entries[i]
		if e.ctx != ctx {
			flush(i)
			ctx, start = e.ctx, i
			state := f.buf.snaps.get(ctx)
			stats.StateChanges++
			skip = false
			if err := reg.ApplyContext(state); err != nil {
				f.logger().Warn("drawlist: apply context failed", "context", ctx, "state", state, "err", err)
				errs = append(errs, fmt.Errorf("drawlist: apply context %d: %w", ctx, err))
				skip = true
			}
			continue
		}
		first := &entries[start]
		if e.key != first.key || e.cmd.Kind() != first.cmd.Kind() {
			flush(i)
			start = i
		}
	}
	flush(len(entries))

	if log := f.logger(); logs(log, slog.LevelDebug) {
		log.Debug("drawlist: frame submitted", "stats", stats)
	}
	return stats, errors.Join(errs...)
}

// dispatch sends entries[lo:hi] to the backend of their kind.
func (f *Frame) dispatch(reg Registry, lo, hi int) error {
	first := f.buf.entries[lo].cmd
	kind := first.Kind()
	backend, ok := reg.Lookup(kind)
	if !ok {
		f.logger().Warn("drawlist: dropping group", "kind", kind, "commands", hi-lo, "err", ErrUnknownKind)
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	group := f.buf.commands(lo, hi)
	if log := f.logger(); logs(log, LevelTrace) {
		log.Log(context.Background(), LevelTrace, "drawlist: dispatch",
			"kind", kind, "commands", len(group), "items", itemCount(group), "context", f.buf.entries[lo].ctx)
	}
	if err := first.Dispatch(group, &f.buf.scratch, backend); err != nil {
		f.logger().Warn("drawlist: dispatch failed", "kind", kind, "group", first, "err", err)
		return fmt.Errorf("drawlist: dispatch %s: %w", kind, err)
	}
	return nil
}

// Abort discards everything recorded in the current frame. Call it when a
// frame is abandoned, for example after a fatal backend error, so that
// stale commands do not reach the next Submit.
func (f *Frame) Abort() {
	if f.open != nil {
		f.open.done = true
		f.open = nil
	}
	f.buf.reset()
}

// Len returns the number of commands committed so far in this frame.
func (f *Frame) Len() int {
	return f.buf.len()
}

// begin makes p the frame's open builder, committing the previous one.
func (f *Frame) begin(p *pending) {
	f.closeOpen()
	f.open = p
}

// closeOpen commits the open builder, if any.
func (f *Frame) closeOpen() {
	if f.open != nil {
		f.open.End()
	}
}

// misuse reports a builder-discipline error.
func (f *Frame) misuse(err error) {
	if f.opts.debug {
		panic(err)
	}
	f.logger().Warn("drawlist: builder misuse", "err", err)
}
