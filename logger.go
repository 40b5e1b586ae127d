// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// LevelTrace is below [slog.LevelDebug]. At this level a frame logs every
// group it dispatches, which is useful when a batch key merges or splits
// commands unexpectedly. It is too verbose for anything but a single frame.
const LevelTrace = slog.LevelDebug - 4

// silent drops every record and reports every level disabled, so the
// frame skips building attributes on the hot path.
type silent struct{}

func (silent) Enabled(context.Context, slog.Level) bool  { return false }
func (silent) Handle(context.Context, slog.Record) error { return nil }
func (s silent) WithAttrs([]slog.Attr) slog.Handler      { return s }
func (s silent) WithGroup(string) slog.Handler           { return s }

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(slog.New(silent{}))
}

// SetLogger configures the logger for drawlist and its backends. Pass nil
// to restore the silent default.
//
// Levels:
//   - [LevelTrace]: one record per dispatched group
//   - [slog.LevelDebug]: one record per Submit carrying its [Stats]
//   - [slog.LevelWarn]: dropped groups, failed state changes, builder misuse
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(silent{})
	}
	pkgLogger.Store(l)
}

// Logger returns the current package logger. Backend packages call this so
// they share the configuration made with SetLogger.
func Logger() *slog.Logger {
	return pkgLogger.Load()
}

// logs reports whether l emits records at level. Callers check it before
// boxing attributes, which keeps Submit free of allocations when logging is
// off.
func logs(l *slog.Logger, level slog.Level) bool {
	return l.Enabled(context.Background(), level)
}

// LogValue groups the counters under one attribute, so a host can log
// stats with slog.Any("stats", s).
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("commands", s.Commands),
		slog.Int("groups", s.Groups),
		slog.Int("state_changes", s.StateChanges),
		slog.Int("dropped", s.Dropped),
		slog.Int("contexts", s.Contexts),
	)
}
