// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/gogpu/drawlist"
	"github.com/gogpu/drawlist/backend"
)

// Name is the backend registry name of the recorder.
const Name = "trace"

func init() {
	backend.Register(Name, func(cfg backend.Config) (backend.Renderer, error) {
		return NewRecorder(cfg.Width, cfg.Height), nil
	})
}

// ErrApplyContext is returned by a recorder configured to fail context
// switches.
var ErrApplyContext = errors.New("recording: apply context failed")

// Option configures a Recorder.
type Option func(*Recorder)

// WithoutKinds makes Lookup report the given kinds as unsupported.
func WithoutKinds(kinds ...string) Option {
	return func(r *Recorder) {
		for _, k := range kinds {
			r.disabled[k] = true
		}
	}
}

// WithFailingContext makes ApplyContext fail for states whose rect equals
// rect. The call is still recorded.
func WithFailingContext(rect drawlist.Rect) Option {
	return func(r *Recorder) {
		r.failRect = &rect
	}
}

// Recorder captures drawlist backend calls.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command
	disabled      map[string]bool
	failRect      *drawlist.Rect
}

var _ backend.Renderer = (*Recorder)(nil)

// NewRecorder creates a recorder for a width x height target.
func NewRecorder(width, height int, opts ...Option) *Recorder {
	r := &Recorder{
		width:    width,
		height:   height,
		disabled: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the backend name.
func (r *Recorder) Name() string { return Name }

// Begin discards previously captured commands.
func (r *Recorder) Begin(width, height int) error {
	r.width, r.height = width, height
	r.commands = r.commands[:0]
	return nil
}

// End is a no-op.
func (r *Recorder) End() error { return nil }

// Close is a no-op.
func (r *Recorder) Close() {}

// Commands returns the commands captured since Begin. The slice is only
// valid until the next Begin.
func (r *Recorder) Commands() []Command { return r.commands }

// Types returns the type of every captured command in order.
func (r *Recorder) Types() []CommandType {
	out := make([]CommandType, len(r.commands))
	for i, c := range r.commands {
		out[i] = c.Type()
	}
	return out
}

// FinishRecording returns the captured commands as an immutable Recording.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		width:    r.width,
		height:   r.height,
		commands: slices.Clone(r.commands),
	}
}

// Lookup implements drawlist.Registry.
func (r *Recorder) Lookup(kind string) (drawlist.Backend, bool) {
	if r.disabled[kind] {
		return nil, false
	}
	switch kind {
	case drawlist.KindLine, drawlist.KindEllipse, drawlist.KindSprite, drawlist.KindText:
		return r, true
	}
	return nil, false
}

// ApplyContext implements drawlist.Registry.
func (r *Recorder) ApplyContext(s drawlist.ContextState) error {
	r.commands = append(r.commands, ApplyContextCommand{State: s})
	if r.failRect != nil && s.Rect == *r.failRect {
		return fmt.Errorf("%w: %v", ErrApplyContext, s.Rect)
	}
	return nil
}

// Group slices may alias command storage, so they are cloned.

// DrawLines implements drawlist.LineBackend.
func (r *Recorder) DrawLines(segs []drawlist.Segment, style drawlist.LineStyle) error {
	r.commands = append(r.commands, DrawLinesCommand{Segments: slices.Clone(segs), Style: style})
	return nil
}

// DrawEllipses implements drawlist.EllipseBackend.
func (r *Recorder) DrawEllipses(items []drawlist.Ellipse, style drawlist.EllipseStyle) error {
	r.commands = append(r.commands, DrawEllipsesCommand{Items: slices.Clone(items), Style: style})
	return nil
}

// DrawSprites implements drawlist.SpriteBackend.
func (r *Recorder) DrawSprites(items []drawlist.Sprite, style drawlist.SpriteStyle) error {
	r.commands = append(r.commands, DrawSpritesCommand{Items: slices.Clone(items), Style: style})
	return nil
}

// DrawText implements drawlist.TextBackend.
func (r *Recorder) DrawText(items []drawlist.TextItem, style drawlist.TextStyle) error {
	r.commands = append(r.commands, DrawTextCommand{Items: slices.Clone(items), Style: style})
	return nil
}

// Recording is a finished capture of one frame.
type Recording struct {
	width, height int
	commands      []Command
}

// Width returns the target width of the recording.
func (r *Recording) Width() int { return r.width }

// Height returns the target height of the recording.
func (r *Recording) Height() int { return r.height }

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Playback replays the recording to target between Begin and End. A draw
// whose kind target does not support is skipped and reported in the
// returned error; playback continues.
func (r *Recording) Playback(target backend.Renderer) error {
	if err := target.Begin(r.width, r.height); err != nil {
		return err
	}
	var errs []error
	for _, cmd := range r.commands {
		if err := replay(target, cmd); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, target.End())
	return errors.Join(errs...)
}

func replay(target drawlist.Registry, cmd Command) error {
	switch c := cmd.(type) {
	case ApplyContextCommand:
		return target.ApplyContext(c.State)
	case DrawLinesCommand:
		if b, ok := lookup[drawlist.LineBackend](target, drawlist.KindLine); ok {
			return b.DrawLines(c.Segments, c.Style)
		}
	case DrawEllipsesCommand:
		if b, ok := lookup[drawlist.EllipseBackend](target, drawlist.KindEllipse); ok {
			return b.DrawEllipses(c.Items, c.Style)
		}
	case DrawSpritesCommand:
		if b, ok := lookup[drawlist.SpriteBackend](target, drawlist.KindSprite); ok {
			return b.DrawSprites(c.Items, c.Style)
		}
	case DrawTextCommand:
		if b, ok := lookup[drawlist.TextBackend](target, drawlist.KindText); ok {
			return b.DrawText(c.Items, c.Style)
		}
	default:
		return fmt.Errorf("recording: unknown command %T", cmd)
	}
	return fmt.Errorf("%w: %s", drawlist.ErrUnknownKind, cmd.Type())
}

func lookup[T any](reg drawlist.Registry, kind string) (T, bool) {
	var zero T
	b, ok := reg.Lookup(kind)
	if !ok {
		return zero, false
	}
	t, ok := b.(T)
	return t, ok
}

// WriteTo writes one line per command, preceded by a header line.
func (r *Recording) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	m, err := fmt.Fprintf(bw, "# frame %dx%d, %d commands\n", r.width, r.height, len(r.commands))
	n += int64(m)
	if err != nil {
		return n, err
	}
	for _, c := range r.commands {
		m, err = fmt.Fprintln(bw, c)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
