// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/drawlist"
)

// CommandType identifies the backend call a command captured.
type CommandType uint8

const (
	CmdApplyContext CommandType = iota // Context switch
	CmdDrawLines                       // Line group
	CmdDrawEllipses                    // Ellipse group
	CmdDrawSprites                     // Sprite group
	CmdDrawText                        // Text group
)

var commandTypeNames = [...]string{
	CmdApplyContext: "ApplyContext",
	CmdDrawLines:    "DrawLines",
	CmdDrawEllipses: "DrawEllipses",
	CmdDrawSprites:  "DrawSprites",
	CmdDrawText:     "DrawText",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one captured backend call.
type Command interface {
	Type() CommandType
	fmt.Stringer
}

// ApplyContextCommand records a context switch.
type ApplyContextCommand struct {
	State drawlist.ContextState
}

// Type implements Command.
func (ApplyContextCommand) Type() CommandType { return CmdApplyContext }

func (c ApplyContextCommand) String() string {
	return fmt.Sprintf("ApplyContext %v", c.State)
}

// DrawLinesCommand records one line group.
type DrawLinesCommand struct {
	Segments []drawlist.Segment
	Style    drawlist.LineStyle
}

// Type implements Command.
func (DrawLinesCommand) Type() CommandType { return CmdDrawLines }

func (c DrawLinesCommand) String() string {
	return fmt.Sprintf("DrawLines n=%d thickness=%g color=%s", len(c.Segments), c.Style.Thickness, hex(c.Style.Color))
}

// DrawEllipsesCommand records one ellipse group.
type DrawEllipsesCommand struct {
	Items []drawlist.Ellipse
	Style drawlist.EllipseStyle
}

// Type implements Command.
func (DrawEllipsesCommand) Type() CommandType { return CmdDrawEllipses }

func (c DrawEllipsesCommand) String() string {
	return fmt.Sprintf("DrawEllipses n=%d color=%s alpha=%g", len(c.Items), hex(c.Style.Color), c.Style.Alpha)
}

// DrawSpritesCommand records one sprite group.
type DrawSpritesCommand struct {
	Items []drawlist.Sprite
	Style drawlist.SpriteStyle
}

// Type implements Command.
func (DrawSpritesCommand) Type() CommandType { return CmdDrawSprites }

func (c DrawSpritesCommand) String() string {
	return fmt.Sprintf("DrawSprites n=%d texture=%q alpha=%g", len(c.Items), c.Style.Texture, c.Style.Alpha)
}

// DrawTextCommand records one text group.
type DrawTextCommand struct {
	Items []drawlist.TextItem
	Style drawlist.TextStyle
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }

func (c DrawTextCommand) String() string {
	return fmt.Sprintf("DrawText n=%d size=%g color=%s", len(c.Items), c.Style.Size, hex(c.Style.Color))
}

func hex(c gg.RGBA) string {
	b := func(v float64) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", b(c.R), b(c.G), b(c.B), b(c.A))
}
