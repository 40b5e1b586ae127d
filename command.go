// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Command is one homogeneous draw request: a kind, one or more geometry
// items, and material attributes shared by all items.
//
// Commands are immutable once committed. The buffer groups adjacent
// commands whose Kind and BatchKey are equal and calls Dispatch on the first
// command of each group.
type Command interface {
	// Kind returns the stable kind name. It is also the registry key.
	Kind() string

	// BatchKey returns an opaque key derived from the kind and the material
	// attributes. Commands with equal keys can be merged without changing
	// the result.
	BatchKey() uint64

	// Len returns the number of geometry items. It is used to presize
	// merged item slices.
	Len() int

	// Dispatch draws a group of same-kind, same-key commands, of which the
	// receiver is the first, on the backend registered for Kind. Merged
	// items should be collected with Gather into scratch, which the frame
	// reuses across frames.
	Dispatch(group []Command, scratch *Scratch, backend Backend) error
}

// BatchKey combines a kind name with a material hash. The kind occupies the
// high 32 bits so it dominates ordering when keys are sorted.
func BatchKey(kind string, material uint32) uint64 {
	h := fnv.New32a()
	h.Write([]byte(kind))
	return uint64(h.Sum32())<<32 | uint64(material)
}

// MaterialHash hashes a sequence of float attributes into the low half of a
// batch key.
func MaterialHash(values ...float64) uint32 {
	h := fnv.New32a()
	var b [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		h.Write(b[:])
	}
	return h.Sum32()
}

// stringHash folds a string into a material hash.
func stringHash(seed uint32, s string) uint32 {
	h := fnv.New32a()
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], seed)
	h.Write(b[:])
	h.Write([]byte(s))
	return h.Sum32()
}

// itemCount sums Len over a group.
func itemCount(group []Command) int {
	n := 0
	for _, c := range group {
		n += c.Len()
	}
	return n
}
