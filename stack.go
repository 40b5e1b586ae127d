// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

// snapshotTable holds the frame's distinct context states. Ids are indices
// into states and stay valid until reset.
type snapshotTable struct {
	states []ContextState
	index  map[ContextState]int
}

// intern returns the id of s, appending it if no equal state is recorded.
func (t *snapshotTable) intern(s ContextState) int {
	if id, ok := t.index[s]; ok {
		return id
	}
	if t.index == nil {
		t.index = make(map[ContextState]int)
	}
	id := len(t.states)
	t.states = append(t.states, s)
	t.index[s] = id
	return id
}

func (t *snapshotTable) get(id int) ContextState { return t.states[id] }

func (t *snapshotTable) len() int { return len(t.states) }

// reset empties the table, keeping the slice and map storage.
func (t *snapshotTable) reset() {
	t.states = t.states[:0]
	clear(t.index)
}

type stackEntry struct {
	state ContextState
	id    int
}

// contextStack tracks the scopes currently open on a frame. It owns the
// composition rules: push validates a Delta, composes it onto the top entry
// and records the result in the snapshot table.
type contextStack struct {
	entries []stackEntry
	snaps   *snapshotTable
}

// reset discards all open scopes and seeds the stack with the root state.
func (st *contextStack) reset(root ContextState) int {
	st.entries = st.entries[:0]
	id := st.snaps.intern(root)
	st.entries = append(st.entries, stackEntry{state: root, id: id})
	return id
}

// top returns the innermost open scope. The stack must not be empty.
func (st *contextStack) top() stackEntry { return st.entries[len(st.entries)-1] }

// push composes d onto the top and makes the result the new top. On a
// configuration error the stack is left unchanged.
func (st *contextStack) push(d Delta) (stackEntry, error) {
	if err := d.Validate(); err != nil {
		return stackEntry{}, err
	}
	s := d.Apply(st.top().state)
	e := stackEntry{state: s, id: st.snaps.intern(s)}
	st.entries = append(st.entries, e)
	return e, nil
}

// pop restores the previous top. The root entry is never popped.
func (st *contextStack) pop() {
	if len(st.entries) > 1 {
		st.entries = st.entries[:len(st.entries)-1]
	}
}

// depth returns the number of open scopes including the root.
func (st *contextStack) depth() int { return len(st.entries) }

func (st *contextStack) clear() { st.entries = st.entries[:0] }
