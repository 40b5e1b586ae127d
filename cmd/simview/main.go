// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command simview draws a self-playing tic-tac-toe board overgrown with
// leaves through a drawlist frame.
//
// By default it opens a window. With -png it runs headless, simulates
// -frames ticks and writes the last frame to a file. With -trace it prints
// the backend calls of the last frame. With -health-check it checks the
// configuration, the renderer and the build and exits with 0 when healthy,
// 1 when a check failed and 2 when a check warned.
//
// In the window, Space toggles autoplay, R resets the board, the arrow keys
// and the mouse wheel pan and zoom the board, C resets the view and F3
// toggles the debug overlay.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/drawlist"
	"github.com/gogpu/drawlist/backend"
	"github.com/gogpu/drawlist/backend/software"
	"github.com/gogpu/drawlist/internal/config"
	"github.com/gogpu/drawlist/recording"
)

const tick = 1.0 / 60

type options struct {
	configFile string
	configDir  string
	profile    string
	backend    string
	png        string
	frames     int
	trace      bool
	health     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "", "single config file (overrides -config-dir)")
	flag.StringVar(&opts.configDir, "config-dir", "config", "directory with default.toml and <profile>.toml")
	flag.StringVar(&opts.profile, "profile", "", "config profile (default $SIMVIEW_PROFILE or debug)")
	flag.StringVar(&opts.backend, "backend", "", "renderer backend (overrides render.backend)")
	flag.StringVar(&opts.png, "png", "", "render headless and write the last frame to this PNG file")
	flag.IntVar(&opts.frames, "frames", 60, "ticks to simulate in headless mode")
	flag.BoolVar(&opts.trace, "trace", false, "print the backend calls of the last frame")
	flag.BoolVar(&opts.health, "health-check", false, "check config, renderer and build, then exit 0 (healthy), 1 (failed) or 2 (warnings)")
	flag.Parse()

	if opts.health {
		os.Exit(healthCheck(opts, os.Stdout))
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "simview:", err)
		os.Exit(1)
	}
}

func run(opts options, stdout io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.backend != "" {
		cfg.Render.Backend = opts.backend
	}
	if cfg.Debug.Trace {
		opts.trace = true
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	drawlist.SetLogger(log)
	log.Debug("config loaded", "profile", cfg.Profile, "backend", cfg.Render.Backend)

	if opts.png != "" || opts.trace {
		return runHeadless(cfg, opts, log, stdout)
	}

	r, err := backend.New(cfg.Render.Backend, backendConfig(cfg))
	if err != nil {
		return err
	}
	defer r.Close()
	src, ok := r.(imageSource)
	if !ok {
		return fmt.Errorf("backend %q cannot present to a window", r.Name())
	}
	v := NewViewer(r, cfg, log, cfg.Window.Width, cfg.Window.Height)
	return runWindow(v, src, cfg.Window, log)
}

func loadConfig(opts options) (config.Config, error) {
	switch {
	case opts.configFile != "":
		return config.LoadFile(opts.configFile, os.Environ())
	case opts.profile != "":
		return config.LoadProfile(opts.configDir, opts.profile, os.Environ())
	default:
		return config.Load(opts.configDir)
	}
}

func backendConfig(cfg config.Config) backend.Config {
	return backend.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Clear:  cfg.Render.ClearColor(),
	}
}

// runHeadless simulates opts.frames ticks and renders the last frame.
// With tracing the frame is recorded, printed, and played back into a
// software canvas for the PNG.
func runHeadless(cfg config.Config, opts options, log *slog.Logger, stdout io.Writer) error {
	w, h := cfg.Window.Width, cfg.Window.Height

	if opts.trace {
		rec := recording.NewRecorder(w, h)
		v := NewViewer(rec, cfg, log, w, h)
		v.Scene.Badge = opts.png != ""
		simulate(v.World, opts.frames)
		stats, renderErr := v.Render()
		if renderErr != nil {
			log.Warn("frame incomplete", "err", renderErr)
		}
		trace := rec.FinishRecording()
		if _, err := trace.WriteTo(stdout); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "groups=%d state_changes=%d dropped=%d\n", stats.Groups, stats.StateChanges, stats.Dropped)
		if opts.png == "" {
			return nil
		}

		sw := software.New(w, h, software.WithClearColor(cfg.Render.ClearColor()))
		defer sw.Close()
		sw.AddTexture(badgeTexture, badgeImage(32))
		if err := trace.Playback(sw); err != nil {
			return fmt.Errorf("playback: %w", err)
		}
		return savePNG(sw, opts.png, log)
	}

	r, err := backend.New(cfg.Render.Backend, backendConfig(cfg))
	if err != nil {
		return err
	}
	defer r.Close()
	v := NewViewer(r, cfg, log, w, h)
	simulate(v.World, opts.frames)
	if _, err := v.Render(); err != nil {
		log.Warn("frame incomplete", "err", err)
	}
	return savePNG(r, opts.png, log)
}

func simulate(w *World, frames int) {
	for range frames {
		w.Tick(tick)
	}
}

type pngWriter interface {
	SavePNG(path string) error
}

func savePNG(r any, path string, log *slog.Logger) error {
	pw, ok := r.(pngWriter)
	if !ok {
		return errors.New("backend cannot write PNG files")
	}
	if err := pw.SavePNG(path); err != nil {
		return err
	}
	log.Info("frame saved", "path", path)
	return nil
}
