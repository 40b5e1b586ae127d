// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"cmp"
	"slices"
)

// entry is a committed command with its ordering keys.
type entry struct {
	cmd   Command
	key   uint64
	depth float64
	ctx   int
}

// buffer owns one frame's commands and context snapshots. Storage is
// reused across frames.
type buffer struct {
	entries []entry
	snaps   snapshotTable
	group   []Command
	scratch Scratch
}

func (b *buffer) init(capacity int) {
	b.entries = make([]entry, 0, capacity)
	b.snaps.states = make([]ContextState, 0, 8)
	b.snaps.index = make(map[ContextState]int, 8)
}

// add appends a command. depth is already mapped into the root range.
func (b *buffer) add(cmd Command, depth float64, ctx int) {
	b.entries = append(b.entries, entry{cmd: cmd, key: cmd.BatchKey(), depth: depth, ctx: ctx})
}

func (b *buffer) len() int { return len(b.entries) }

// sort orders entries by context then depth, optionally by batch key, and
// keeps commit order among ties.
func (b *buffer) sort(byKey bool) {
	if byKey {
		slices.SortStableFunc(b.entries, compareKeyed)
		return
	}
	slices.SortStableFunc(b.entries, compareEntries)
}

func compareEntries(x, y entry) int {
	if c := cmp.Compare(x.ctx, y.ctx); c != 0 {
		return c
	}
	return cmp.Compare(x.depth, y.depth)
}

func compareKeyed(x, y entry) int {
	if c := compareEntries(x, y); c != 0 {
		return c
	}
	return cmp.Compare(x.key, y.key)
}

// commands collects the commands of entries[lo:hi] into the reused group
// slice.
func (b *buffer) commands(lo, hi int) []Command {
	b.group = b.group[:0]
	for i := lo; i < hi; i++ {
		b.group = append(b.group, b.entries[i].cmd)
	}
	return b.group
}

// reset drops all commands, snapshots and merged items, keeping capacity.
// References are cleared so committed commands can be collected.
func (b *buffer) reset() {
	clear(b.entries)
	b.entries = b.entries[:0]
	clear(b.group[:cap(b.group)])
	b.group = b.group[:0]
	b.snaps.reset()
	b.scratch.reset()
}
