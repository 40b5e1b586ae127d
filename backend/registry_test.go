// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/drawlist"
)

type mockRenderer struct {
	name string
	cfg  Config
}

func (m *mockRenderer) Lookup(string) (drawlist.Backend, bool)  { return nil, false }
func (m *mockRenderer) ApplyContext(drawlist.ContextState) error { return nil }
func (m *mockRenderer) Name() string                             { return m.name }
func (m *mockRenderer) Begin(int, int) error                     { return nil }
func (m *mockRenderer) End() error                               { return nil }
func (m *mockRenderer) Close()                                   {}

func mockFactory(name string) Factory {
	return func(cfg Config) (Renderer, error) {
		return &mockRenderer{name: name, cfg: cfg}, nil
	}
}

// resetRegistry clears all registered factories for test isolation.
func resetRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := factories
	factories = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})
}

func TestRegisterAndNew(t *testing.T) {
	resetRegistry(t)
	Register("mock", mockFactory("mock"))

	if !IsRegistered("mock") {
		t.Fatal("mock should be registered")
	}
	r, err := New("mock", Config{Width: 3, Height: 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if r.Name() != "mock" || r.(*mockRenderer).cfg.Width != 3 {
		t.Errorf("unexpected renderer %+v", r)
	}

	Unregister("mock")
	if _, err := New("mock", Config{}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("New after Unregister = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegisterPanics(t *testing.T) {
	resetRegistry(t)

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil factory", func() { Register("x", nil) }},
		{"duplicate", func() {
			Register("dup", mockFactory("dup"))
			Register("dup", mockFactory("dup"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestDefaultPriority(t *testing.T) {
	resetRegistry(t)

	if _, err := Default(Config{}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Fatalf("Default on empty registry = %v", err)
	}

	Register("zzz", mockFactory("zzz"))
	Register("trace", mockFactory("trace"))
	r, err := Default(Config{})
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if r.Name() != "trace" {
		t.Errorf("Default = %s, want trace", r.Name())
	}

	Register("software", mockFactory("software"))
	r, _ = Default(Config{})
	if r.Name() != "software" {
		t.Errorf("Default = %s, want software", r.Name())
	}

	if got := Available(); len(got) != 3 || got[0] != "software" {
		t.Errorf("Available = %v", got)
	}
}

func TestDefaultSkipsFailingFactory(t *testing.T) {
	resetRegistry(t)
	Register("software", func(Config) (Renderer, error) { return nil, errors.New("no canvas") })
	Register("trace", mockFactory("trace"))

	r, err := Default(Config{})
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if r.Name() != "trace" {
		t.Errorf("Default = %s, want trace", r.Name())
	}
}
