// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load builds the configuration from dir, the profile named by
// SIMVIEW_PROFILE and the process environment.
func Load(dir string) (Config, error) {
	profile := os.Getenv(EnvPrefix + "PROFILE")
	if profile == "" {
		profile = Default().Profile
	}
	return LoadProfile(dir, profile, os.Environ())
}

// LoadProfile layers default.toml and <profile>.toml from dir and then the
// overrides in environ over the defaults.
func LoadProfile(dir, profile string, environ []string) (Config, error) {
	cfg := Default()
	cfg.Profile = profile
	for _, name := range []string{"default.toml", profile + ".toml"} {
		if err := mergeFile(&cfg, filepath.Join(dir, name), false); err != nil {
			return cfg, err
		}
	}
	cfg.Profile = profile
	if err := cfg.ApplyEnv(environ); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads a single required file over the defaults and then the
// overrides in environ.
func LoadFile(path string, environ []string) (Config, error) {
	cfg := Default()
	if err := mergeFile(&cfg, path, true); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(environ); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func mergeFile(cfg *Config, path string, required bool) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("config: %s: unknown keys %v", path, keys)
	}
	return nil
}

// ApplyEnv applies SIMVIEW_<SECTION>__<KEY>=value entries from environ.
// Section and key are matched case-insensitively against the TOML names.
// Values of string keys are always quoted. Any other value that is not a
// valid TOML literal is taken as a string and left for the decoder to
// reject.
func (c *Config) ApplyEnv(environ []string) error {
	sections := make(map[string][]string)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		section, key, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "__")
		if !ok {
			continue // SIMVIEW_PROFILE and friends
		}
		sections[section] = append(sections[section], key+" = "+literal(value, stringKeys[section+"."+key]))
	}
	if len(sections) == 0 {
		return nil
	}

	names := make([]string, 0, len(sections))
	for s := range sections {
		names = append(names, s)
	}
	sort.Strings(names)

	var doc strings.Builder
	for _, s := range names {
		fmt.Fprintf(&doc, "[%s]\n%s\n", s, strings.Join(sections[s], "\n"))
	}
	md, err := toml.Decode(doc.String(), c)
	if err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("config: environment: unknown keys %v", keys)
	}
	return nil
}

// stringKeys holds the "section.key" names of string fields.
var stringKeys = tomlStringKeys(reflect.TypeFor[Config]())

func tomlStringKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for i := range t.NumField() {
		section := t.Field(i)
		if section.Type.Kind() != reflect.Struct {
			continue
		}
		for j := range section.Type.NumField() {
			f := section.Type.Field(j)
			if f.Type.Kind() == reflect.String {
				keys[section.Tag.Get("toml")+"."+f.Tag.Get("toml")] = true
			}
		}
	}
	return keys
}

// literal returns the TOML form of an environment value. Strings are
// quoted; other values pass through when they parse as TOML.
func literal(v string, str bool) string {
	if str || v == "" {
		return strconv.Quote(v)
	}
	var doc struct{ V any }
	if _, err := toml.Decode("V = "+v, &doc); err == nil {
		return v
	}
	return strconv.Quote(v)
}
