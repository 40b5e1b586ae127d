// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import "log/slog"

// FrameOption configures a Frame during creation.
//
// Example:
//
//	// Defaults: package logger, commit-order ties, no debug checks
//	f := drawlist.NewFrame()
//
//	// Debug build of a viewer
//	f := drawlist.NewFrame(drawlist.WithDebug(true), drawlist.WithLogger(log))
type FrameOption func(*frameOptions)

type frameOptions struct {
	logger        *slog.Logger
	debug         bool
	capacity      int
	batchKeyOrder bool
}

// defaultCapacity matches a typical frame of a small viewer.
const defaultCapacity = 256

func defaultOptions() frameOptions {
	return frameOptions{
		capacity: defaultCapacity,
	}
}

// WithLogger sets the logger used by the frame. Without it the frame logs
// through the package logger configured with SetLogger.
func WithLogger(l *slog.Logger) FrameOption {
	return func(o *frameOptions) {
		o.logger = l
	}
}

// WithDebug makes builder and scope misuse panic instead of being logged.
func WithDebug(debug bool) FrameOption {
	return func(o *frameOptions) {
		o.debug = debug
	}
}

// WithInitialCapacity presizes the command buffer. Non-positive values are
// ignored.
func WithInitialCapacity(n int) FrameOption {
	return func(o *frameOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithBatchKeyOrdering sorts by (context, depth, batch key) instead of
// (context, depth). Commands at equal depth then group by material, which
// reduces backend calls but no longer keeps commit order between different
// materials at the same depth.
func WithBatchKeyOrdering() FrameOption {
	return func(o *frameOptions) {
		o.batchKeyOrder = true
	}
}
