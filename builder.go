// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import "fmt"

// pending is the state shared by all builders: the command being
// configured, the scope it belongs to, and whether it has committed.
type pending struct {
	frame   *Frame // nil for builders detached from a closed scope
	command Command
	ctx     int
	scope   DepthRange
	depth   float64
	done    bool
}

// End commits the builder's command. Further configuration is an error.
// End is idempotent; builders also end on their own when the next draw
// call is made, so calling End is only needed to commit early.
func (p *pending) End() {
	if p.done {
		return
	}
	p.done = true
	if p.frame == nil {
		return
	}
	if p.frame.open == p {
		p.frame.open = nil
	}
	if p.command.Len() == 0 {
		return
	}
	p.frame.buf.add(p.command, p.scope.Lerp(clamp01(p.depth)), p.ctx)
}

// writable reports whether the builder may still be configured, reporting
// misuse otherwise.
func (p *pending) writable(op string) bool {
	if !p.done {
		return true
	}
	err := fmt.Errorf("%w: %s on %v", ErrBuilderClosed, op, p.command)
	if p.frame != nil {
		p.frame.misuse(err)
	} else {
		Logger().Warn("drawlist: builder misuse", "err", err)
	}
	return false
}

func (p *pending) setDepth(d float64) {
	if p.writable("Depth") {
		p.depth = d
	}
}

// mismatch builds the error for a backend lacking a kind's interface.
func mismatch(c Command, backend Backend) error {
	return fmt.Errorf("%w: %s backend is %T", ErrBackendMismatch, c.Kind(), backend)
}

func batchName(n int, single, batch string) string {
	if n == 1 {
		return single
	}
	return batch
}
