// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"sort"
	"sync"
)

// Backend is a handle that consumes groups of one kind. Each kind defines
// the interface its backend must implement, for example [LineBackend].
type Backend any

// Registry resolves kind names to backends and receives context changes
// during Frame.Submit.
type Registry interface {
	// Lookup returns the backend registered for kind.
	Lookup(kind string) (Backend, bool)

	// ApplyContext is called once each time the sorted walk enters a new
	// context, before the first group of that context is dispatched.
	ApplyContext(state ContextState) error
}

// KindRegistry is a map-backed Registry. Backends are registered per kind,
// usually at start-up:
//
//	reg := drawlist.NewKindRegistry()
//	reg.Register(drawlist.KindLine, lines)
//	reg.Register(drawlist.KindEllipse, ellipses)
//	reg.OnContext(func(s drawlist.ContextState) error { return gpu.Scissor(s.Rect) })
//
// KindRegistry is safe for concurrent use.
type KindRegistry struct {
	mu       sync.RWMutex
	backends map[string]Backend
	apply    func(ContextState) error
}

// NewKindRegistry returns an empty registry.
func NewKindRegistry() *KindRegistry {
	return &KindRegistry{backends: make(map[string]Backend)}
}

// Register binds a backend to a kind name.
//
// Register panics if backend is nil or if kind is already registered, so
// wiring mistakes surface at start-up rather than as dropped groups.
func (r *KindRegistry) Register(kind string, backend Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if backend == nil {
		panic("drawlist: Register backend is nil")
	}
	if _, dup := r.backends[kind]; dup {
		panic("drawlist: Register called twice for " + kind)
	}
	r.backends[kind] = backend
}

// Unregister removes a kind. Unregistering an unknown kind is a no-op.
func (r *KindRegistry) Unregister(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.backends, kind)
}

// Lookup implements Registry.
func (r *KindRegistry) Lookup(kind string) (Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[kind]
	return b, ok
}

// IsRegistered reports whether kind has a backend.
func (r *KindRegistry) IsRegistered(kind string) bool {
	_, ok := r.Lookup(kind)
	return ok
}

// Kinds returns the registered kind names, sorted.
func (r *KindRegistry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnContext sets the function called by ApplyContext. A nil fn makes
// context changes a no-op.
func (r *KindRegistry) OnContext(fn func(ContextState) error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apply = fn
}

// ApplyContext implements Registry.
func (r *KindRegistry) ApplyContext(state ContextState) error {
	r.mu.RLock()
	fn := r.apply
	r.mu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn(state)
}
