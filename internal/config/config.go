// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads the simview configuration.
//
// Values are layered, later layers winning:
//
//  1. built-in defaults
//  2. <dir>/default.toml
//  3. <dir>/<profile>.toml
//  4. SIMVIEW_<SECTION>__<KEY> environment variables
//
// Missing files are skipped. The profile comes from SIMVIEW_PROFILE and
// defaults to "debug".
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/gg"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "SIMVIEW_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Window configures the viewer window.
type Window struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
	VSync     bool   `toml:"vsync"`
}

// Render configures the drawlist backend.
type Render struct {
	// Backend is a name registered with package backend.
	Backend string `toml:"backend"`

	// Clear is the background color as #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
	Clear string `toml:"clear"`

	// BatchKeyOrdering sorts by batch key after depth instead of keeping
	// commit order for equal depths.
	BatchKeyOrdering bool `toml:"batch_key_ordering"`
}

// Log configures logging.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Debug holds development switches.
type Debug struct {
	// Builders panics on builder misuse instead of logging it.
	Builders bool `toml:"builders"`

	// Trace runs headless and prints the backend calls of the last frame.
	Trace bool `toml:"trace"`

	// Overlay shows the debug overlay from the first frame. F3 toggles it
	// in the window.
	Overlay bool `toml:"overlay"`
}

// Config is the complete viewer configuration.
type Config struct {
	Profile string `toml:"profile"`
	Window  Window `toml:"window"`
	Render  Render `toml:"render"`
	Log     Log    `toml:"log"`
	Debug   Debug  `toml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Profile: "debug",
		Window: Window{
			Title:     "Oil Pool",
			Width:     800,
			Height:    600,
			Resizable: true,
			VSync:     true,
		},
		Render: Render{
			Backend: "software",
			Clear:   "#101418",
		},
		Log: Log{Level: "info"},
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Render.Backend == "" {
		errs = append(errs, fmt.Errorf("%w: empty render.backend", ErrInvalid))
	}
	if !validHex(c.Render.Clear) {
		errs = append(errs, fmt.Errorf("%w: render.clear %q", ErrInvalid, c.Render.Clear))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ClearColor returns the parsed background color.
func (r Render) ClearColor() gg.RGBA {
	return gg.Hex(r.Clear)
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// SlogLevel maps Level to a slog level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}
	return lvl, nil
}
