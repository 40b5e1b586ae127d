// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/drawlist"
	"github.com/gogpu/drawlist/backend"
)

var root = drawlist.Rect{Width: 100, Height: 100}

func record(t *testing.T, rec *Recorder, fn func(*drawlist.Scope)) (drawlist.Stats, error) {
	t.Helper()
	if err := rec.Begin(root.Width, root.Height); err != nil {
		t.Fatal(err)
	}
	f := drawlist.NewFrame()
	if err := f.WithRootContext(root, fn); err != nil {
		t.Fatalf("WithRootContext: %v", err)
	}
	st, err := f.Submit(rec)
	if endErr := rec.End(); endErr != nil {
		t.Fatal(endErr)
	}
	return st, err
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		cmd  CommandType
		want string
	}{
		{CmdApplyContext, "ApplyContext"},
		{CmdDrawLines, "DrawLines"},
		{CmdDrawEllipses, "DrawEllipses"},
		{CmdDrawSprites, "DrawSprites"},
		{CmdDrawText, "DrawText"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestRecorderCapturesFrame(t *testing.T) {
	rec := NewRecorder(root.Width, root.Height)
	_, err := record(t, rec, func(s *drawlist.Scope) {
		s.Text("score", gg.Pt(1, 1)).Depth(0.9)
		s.Line(gg.Pt(0, 0), gg.Pt(1, 1))
		s.Sprite("piece", drawlist.NewBounds(0, 0, 10, 10)).Depth(0.5)
		s.Circle(gg.Pt(5, 5), 2).Depth(0.2)
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := []CommandType{CmdApplyContext, CmdDrawLines, CmdDrawEllipses, CmdDrawSprites, CmdDrawText}
	got := rec.Types()
	if len(got) != len(want) {
		t.Fatalf("Types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRecorderClonesGroups(t *testing.T) {
	rec := NewRecorder(root.Width, root.Height)
	segs := []drawlist.Segment{drawlist.Seg(0, 0, 1, 1)}
	if _, err := record(t, rec, func(s *drawlist.Scope) { s.Lines(segs...) }); err != nil {
		t.Fatal(err)
	}
	segs[0] = drawlist.Seg(9, 9, 9, 9)

	lines := rec.Commands()[1].(DrawLinesCommand)
	if lines.Segments[0] != drawlist.Seg(0, 0, 1, 1) {
		t.Errorf("recorded segment changed to %v", lines.Segments[0])
	}
}

func TestWithoutKinds(t *testing.T) {
	rec := NewRecorder(root.Width, root.Height, WithoutKinds(drawlist.KindSprite))
	st, err := record(t, rec, func(s *drawlist.Scope) {
		s.Sprite("piece", drawlist.NewBounds(0, 0, 1, 1))
		s.Line(gg.Pt(0, 0), gg.Pt(1, 1)).Depth(1)
	})
	if !errors.Is(err, drawlist.ErrUnknownKind) {
		t.Errorf("Submit = %v, want ErrUnknownKind", err)
	}
	if st.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", st.Dropped)
	}
	if got := rec.Types(); len(got) != 2 || got[1] != CmdDrawLines {
		t.Errorf("Types = %v", got)
	}
}

func TestWithFailingContext(t *testing.T) {
	bad := drawlist.Rect{X: 50, Width: 50, Height: 50}
	rec := NewRecorder(root.Width, root.Height, WithFailingContext(bad))
	_, err := record(t, rec, func(s *drawlist.Scope) {
		s.Line(gg.Pt(0, 0), gg.Pt(1, 1))
		_ = s.Viewport(bad, drawlist.NewBounds(0, 0, 1, 1), func(v *drawlist.Scope) {
			v.Circle(gg.Pt(0.5, 0.5), 0.25)
		})
	})
	if !errors.Is(err, ErrApplyContext) {
		t.Errorf("Submit = %v, want ErrApplyContext", err)
	}
	want := []CommandType{CmdApplyContext, CmdDrawLines, CmdApplyContext}
	got := rec.Types()
	if len(got) != len(want) {
		t.Fatalf("Types = %v, want %v", got, want)
	}
}

func TestPlayback(t *testing.T) {
	rec := NewRecorder(root.Width, root.Height)
	if _, err := record(t, rec, func(s *drawlist.Scope) {
		s.Line(gg.Pt(0, 0), gg.Pt(1, 1))
		s.Text("hi", gg.Pt(1, 1))
	}); err != nil {
		t.Fatal(err)
	}
	r := rec.FinishRecording()

	replayed := NewRecorder(1, 1)
	if err := r.Playback(replayed); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if len(replayed.Commands()) != len(r.Commands()) {
		t.Errorf("replayed %d commands, want %d", len(replayed.Commands()), len(r.Commands()))
	}
	if replayed.width != root.Width {
		t.Errorf("replay width = %d, want %d", replayed.width, root.Width)
	}

	partial := NewRecorder(1, 1, WithoutKinds(drawlist.KindText))
	err := r.Playback(partial)
	if !errors.Is(err, drawlist.ErrUnknownKind) {
		t.Errorf("Playback = %v, want ErrUnknownKind", err)
	}
	if got := partial.Types(); len(got) != 2 {
		t.Errorf("partial replay = %v, want ApplyContext and DrawLines", got)
	}
}

func TestWriteTo(t *testing.T) {
	rec := NewRecorder(root.Width, root.Height)
	if _, err := record(t, rec, func(s *drawlist.Scope) {
		s.Line(gg.Pt(0, 0), gg.Pt(1, 1)).Thickness(2).Color(gg.RGBA{R: 1, A: 1})
	}); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	n, err := rec.FinishRecording().WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := sb.String()
	if int(n) != len(out) {
		t.Errorf("WriteTo n = %d, wrote %d", n, len(out))
	}
	for _, want := range []string{
		"# frame 100x100, 2 commands",
		"ApplyContext rect=100x100+0+0",
		"DrawLines n=1 thickness=2 color=#ff0000ff",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestRegisteredAsTrace(t *testing.T) {
	r, err := backend.New(Name, backend.Config{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	if _, ok := r.(*Recorder); !ok {
		t.Errorf("backend %q is %T", Name, r)
	}
}
