// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"errors"
	"slices"
	"testing"
)

func TestKindRegistry(t *testing.T) {
	reg := NewKindRegistry()
	lines := &mockRegistry{}
	reg.Register(KindLine, lines)
	reg.Register(KindEllipse, lines)

	if got := reg.Kinds(); !slices.Equal(got, []string{KindEllipse, KindLine}) {
		t.Errorf("Kinds = %v", got)
	}
	if b, ok := reg.Lookup(KindLine); !ok || b != Backend(lines) {
		t.Errorf("Lookup(line) = %v, %v", b, ok)
	}
	if reg.IsRegistered(KindText) {
		t.Error("text registered")
	}

	reg.Unregister(KindEllipse)
	reg.Unregister("never-registered")
	if reg.IsRegistered(KindEllipse) {
		t.Error("ellipse still registered after Unregister")
	}
}

func TestKindRegistryPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(r *KindRegistry)
	}{
		{"nil backend", func(r *KindRegistry) { r.Register(KindLine, nil) }},
		{"duplicate", func(r *KindRegistry) {
			r.Register(KindLine, struct{}{})
			r.Register(KindLine, struct{}{})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register did not panic")
				}
			}()
			tt.fn(NewKindRegistry())
		})
	}
}

func TestKindRegistryOnContext(t *testing.T) {
	reg := NewKindRegistry()
	if err := reg.ApplyContext(RootState(root)); err != nil {
		t.Fatalf("ApplyContext without hook = %v", err)
	}

	var got []Rect
	fail := errors.New("scissor")
	reg.OnContext(func(s ContextState) error {
		got = append(got, s.Rect)
		if s.Rect != root {
			return fail
		}
		return nil
	})
	reg.Register(KindLine, &mockRegistry{})

	f := NewFrame()
	_ = f.WithRootContext(root, func(s *Scope) {
		s.Lines(Seg(0, 0, 1, 1))
		_ = s.Viewport(Rect{X: 10, Y: 10, Width: 5, Height: 5}, NewBounds(0, 0, 1, 1), func(s *Scope) {
			s.Lines(Seg(0, 0, 1, 1))
		})
	})
	stats, err := f.Submit(reg)
	if !errors.Is(err, fail) {
		t.Errorf("Submit error = %v, want the hook error", err)
	}
	if len(got) != 2 || stats.Groups != 1 || stats.Dropped != 1 {
		t.Errorf("applied %v, stats %+v", got, stats)
	}
}
