// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import "slices"

// Scratch holds per-kind item slices used to merge the items of a group
// before it reaches a backend. A frame owns one Scratch and reuses it across
// frames, so merging an equal frame does not allocate.
//
// Slices returned by Gather are only valid for the duration of the Dispatch
// call that produced them. Backends that keep items must copy them.
type Scratch struct {
	slots map[string]scratchSlot
}

type scratchSlot interface {
	reset()
}

type itemSlice[T any] struct {
	items []T
}

func (s *itemSlice[T]) reset() {
	clear(s.items)
	s.items = s.items[:0]
}

// reset drops the items of every kind, keeping capacity.
func (s *Scratch) reset() {
	for _, slot := range s.slots {
		slot.reset()
	}
}

// Gather concatenates the items of a group into the scratch slice of kind.
// A single-command group is passed through without copying. items extracts
// the item slice of one command of the group.
//
// A nil Scratch is valid and allocates a fresh slice.
func Gather[T any](s *Scratch, kind string, first []T, group []Command, items func(Command) []T) []T {
	if len(group) <= 1 {
		return first
	}
	if s == nil {
		return concat(make([]T, 0, itemCount(group)), group, items)
	}
	slot, ok := s.slots[kind].(*itemSlice[T])
	if !ok {
		if s.slots == nil {
			s.slots = make(map[string]scratchSlot)
		}
		slot = &itemSlice[T]{}
		s.slots[kind] = slot
	}
	slot.items = concat(slices.Grow(slot.items[:0], itemCount(group)), group, items)
	return slot.items
}

func concat[T any](out []T, group []Command, items func(Command) []T) []T {
	for _, c := range group {
		out = append(out, items(c)...)
	}
	return out
}
