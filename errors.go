// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import "errors"

// Configuration errors, returned when a scope is entered.
var (
	// ErrDegenerateRect is returned for a viewport with zero or negative extent.
	ErrDegenerateRect = errors.New("drawlist: degenerate viewport rectangle")

	// ErrDegenerateBounds is returned for logical bounds with equal min and
	// max on an axis.
	ErrDegenerateBounds = errors.New("drawlist: degenerate logical bounds")

	// ErrInvalidDepthRange is returned for a depth range outside [0, 1] or
	// with Lo greater than Hi.
	ErrInvalidDepthRange = errors.New("drawlist: invalid depth range")

	// ErrFrameActive is returned when WithRootContext is re-entered from
	// inside its own callback.
	ErrFrameActive = errors.New("drawlist: root context already active")
)

// Dispatch errors, joined into the error returned by Frame.Submit.
var (
	// ErrUnknownKind reports a group whose kind has no registered backend.
	// The group is dropped.
	ErrUnknownKind = errors.New("drawlist: no backend registered for kind")

	// ErrBackendMismatch reports a registered backend that does not implement
	// the interface the kind dispatches to.
	ErrBackendMismatch = errors.New("drawlist: backend does not support kind")
)

// Builder-discipline errors. These are programming errors: they panic in
// debug frames and are logged otherwise.
var (
	// ErrBuilderClosed is reported when a builder is configured after it
	// has committed.
	ErrBuilderClosed = errors.New("drawlist: builder already committed")

	// ErrScopeClosed is reported when a scope is used after its callback
	// returned.
	ErrScopeClosed = errors.New("drawlist: scope used outside its callback")

	// ErrScopeShadowed is reported when Scope is called on a scope while
	// one of its children is still open. Children always compose onto the
	// innermost scope.
	ErrScopeShadowed = errors.New("drawlist: nested scope opened from an outer scope")
)
