// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gogpu/drawlist/backend"
	"github.com/gogpu/drawlist/internal/config"
	"github.com/gogpu/drawlist/recording"
)

// Status is the outcome of one health check.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	default:
		return "FAIL"
	}
}

// CheckResult is what a check reports. Duration is filled in by the runner.
type CheckResult struct {
	Status   Status
	Message  string
	Details  []string
	Duration time.Duration
}

func pass(msg string, details ...string) CheckResult {
	return CheckResult{Status: StatusPass, Message: msg, Details: details}
}

func warn(msg string, details ...string) CheckResult {
	return CheckResult{Status: StatusWarn, Message: msg, Details: details}
}

func fail(msg string, details ...string) CheckResult {
	return CheckResult{Status: StatusFail, Message: msg, Details: details}
}

// Check is one named subsystem check.
type Check struct {
	Name string
	Run  func() CheckResult
}

// NamedResult pairs a check name with its result.
type NamedResult struct {
	Name string
	CheckResult
}

// Report collects the results of a health check run.
type Report struct {
	Results []NamedResult
	Passed  int
	Warned  int
	Failed  int
}

// Healthy reports whether no check failed.
func (r Report) Healthy() bool { return r.Failed == 0 }

// ExitCode is 0 when every check passed, 1 when one failed and 2 when
// some only warned.
func (r Report) ExitCode() int {
	switch {
	case r.Failed > 0:
		return 1
	case r.Warned > 0:
		return 2
	default:
		return 0
	}
}

// runChecks runs checks in order. A panicking check fails instead of
// aborting the run.
func runChecks(checks []Check) Report {
	var rep Report
	for _, c := range checks {
		start := time.Now()
		res := runCheck(c)
		res.Duration = time.Since(start)
		switch res.Status {
		case StatusPass:
			rep.Passed++
		case StatusWarn:
			rep.Warned++
		default:
			rep.Failed++
		}
		rep.Results = append(rep.Results, NamedResult{Name: c.Name, CheckResult: res})
	}
	return rep
}

func runCheck(c Check) (res CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			res = fail(fmt.Sprintf("panic: %v", r))
		}
	}()
	return c.Run()
}

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	statusStyle = map[Status]lipgloss.Style{
		StatusPass: styleCell.Foreground(lipgloss.Color("2")),
		StatusWarn: styleCell.Foreground(lipgloss.Color("3")),
		StatusFail: styleCell.Foreground(lipgloss.Color("1")),
	}
)

// writeReport prints the result table, a summary and the details of every
// check.
func writeReport(w io.Writer, rep Report) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("System", "Status", "Duration", "Message").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 1:
				return statusStyle[rep.Results[row].Status]
			default:
				return styleCell
			}
		})
	for _, r := range rep.Results {
		t.Row(r.Name, r.Status.String(), r.Duration.Round(10*time.Microsecond).String(), r.Message)
	}

	var b strings.Builder
	b.WriteString(t.String())
	fmt.Fprintf(&b, "\n\nSummary\n  Total checks: %d\n  Passed: %d\n", len(rep.Results), rep.Passed)
	if rep.Warned > 0 {
		fmt.Fprintf(&b, "  Warned: %d\n", rep.Warned)
	}
	if rep.Failed > 0 {
		fmt.Fprintf(&b, "  Failed: %d\n", rep.Failed)
	}
	switch {
	case !rep.Healthy():
		b.WriteString("\n  Overall: UNHEALTHY\n")
	case rep.Warned > 0:
		b.WriteString("\n  Overall: HEALTHY (with warnings)\n")
	default:
		b.WriteString("\n  Overall: HEALTHY\n")
	}
	for _, r := range rep.Results {
		if len(r.Details) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s details:\n", r.Name)
		for _, d := range r.Details {
			fmt.Fprintf(&b, "  %s\n", d)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// healthChecks returns the checks run by -health-check.
func healthChecks(opts options) []Check {
	return []Check{
		{Name: "Configuration", Run: func() CheckResult { return checkConfig(opts) }},
		{Name: "Renderer", Run: func() CheckResult { return checkRenderer(opts) }},
		{Name: "World/Scene", Run: checkWorld},
		{Name: "Build", Run: checkBuild},
		{Name: "System", Run: checkSystem},
	}
}

// healthCheck runs every check, prints the report and returns the process
// exit code.
func healthCheck(opts options, stdout io.Writer) int {
	rep := runChecks(healthChecks(opts))
	if err := writeReport(stdout, rep); err != nil {
		return 1
	}
	return rep.ExitCode()
}

// healthProfiles are the profiles every deployment ships.
var healthProfiles = []string{"debug", "release"}

// checkConfig fails when a shipped profile does not load from its files
// and warns when only the environment overrides break it.
func checkConfig(opts options) CheckResult {
	var details []string
	if opts.configFile != "" {
		cfg, err := config.LoadFile(opts.configFile, nil)
		if err != nil {
			return fail("config file does not load", err.Error())
		}
		details = append(details, fmt.Sprintf("%s: window %dx%d", opts.configFile, cfg.Window.Width, cfg.Window.Height))
	} else {
		failed := false
		for _, p := range healthProfiles {
			cfg, err := config.LoadProfile(opts.configDir, p, nil)
			if err != nil {
				failed = true
				details = append(details, fmt.Sprintf("profile %s: %v", p, err))
				continue
			}
			details = append(details, fmt.Sprintf("profile %s: window %dx%d, backend %s",
				p, cfg.Window.Width, cfg.Window.Height, cfg.Render.Backend))
		}
		if failed {
			return fail("one or more profiles do not load", details...)
		}
	}
	if _, err := loadConfig(opts); err != nil {
		return warn("environment configuration rejected", append(details, err.Error())...)
	}
	return pass("configuration validated", details...)
}

func checkRenderer(opts options) CheckResult {
	cfg, err := loadConfig(opts)
	if err != nil {
		cfg = config.Default()
	}
	if opts.backend != "" {
		cfg.Render.Backend = opts.backend
	}
	bc := backendConfig(cfg)
	bc.Width, bc.Height = 16, 16
	r, err := backend.New(cfg.Render.Backend, bc)
	if err != nil {
		return fail("backend unavailable", err.Error(), "available: "+strings.Join(backend.Available(), ", "))
	}
	defer r.Close()

	if err := errors.Join(r.Begin(16, 16), r.End()); err != nil {
		return fail(r.Name()+" cannot draw a frame", err.Error())
	}
	reg := kindRegistry(r)
	details := []string{"kinds: " + strings.Join(reg.Kinds(), ", ")}
	if missing := missingKinds(reg); len(missing) > 0 {
		return warn(fmt.Sprintf("%s lacks %s", r.Name(), strings.Join(missing, ", ")), details...)
	}
	return pass(r.Name()+" draws every kind", details...)
}

func checkWorld() CheckResult {
	w := NewWorld()
	if w.Ticks() != 0 || w.Clock() != 0 {
		return fail("new world is not at rest")
	}
	w.Tick(tick)
	if w.Ticks() != 1 {
		return fail("tick did not advance the world")
	}
	details := []string{fmt.Sprintf("after one tick: %.4f s", w.Clock())}

	rec := recording.NewRecorder(64, 64)
	v := NewViewer(rec, config.Default(), slog.New(slog.DiscardHandler), 64, 64)
	v.World = w
	stats, err := v.Render()
	if err != nil {
		return fail("scene does not render", err.Error())
	}
	details = append(details, fmt.Sprintf("scene: %d commands in %d groups", stats.Commands, stats.Groups))
	if stats.Dropped > 0 {
		return warn(fmt.Sprintf("scene dropped %d groups", stats.Dropped), details...)
	}
	return pass("world ticks and renders", details...)
}

func checkBuild() CheckResult {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return warn("build information unavailable")
	}
	details := []string{"go: " + info.GoVersion, "module: " + info.Main.Path + " " + info.Main.Version}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" || s.Key == "vcs.modified" {
			details = append(details, s.Key+": "+s.Value)
		}
	}
	return pass("build metadata accessible", details...)
}

func checkSystem() CheckResult {
	details := []string{
		fmt.Sprintf("platform: %s/%s", runtime.GOOS, runtime.GOARCH),
		fmt.Sprintf("cpus: %d, GOMAXPROCS: %d", runtime.NumCPU(), runtime.GOMAXPROCS(0)),
	}
	if runtime.GOMAXPROCS(0) < 2 {
		return warn("single CPU; the window loop and rendering share it", details...)
	}
	return pass("system info gathered", details...)
}
