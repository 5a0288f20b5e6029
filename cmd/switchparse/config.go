// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/switchparse/pkg/switchparse"
)

// version is the tool version, checked against a config's requires.
var version = "0.3.1"

const (
	envConfig    = "SWITCHPARSE_CONFIG"
	envEnumStyle = "SWITCHPARSE_ENUM_STYLE"
)

type config struct {
	EnumStyle   *switchparse.EnumStyle `toml:"enum_style,omitempty"`
	Format      string                 `toml:"format,omitempty"`
	Requires    string                 `toml:"requires,omitempty"`
	Concurrency int                    `toml:"concurrency,omitempty"`
}

func defaultConfigPath() string {
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "switchparse", "config.toml")
}

// loadConfig reads the config at path. A missing file yields the zero
// config unless the path was given explicitly.
func loadConfig(path string, explicit bool) (*config, error) {
	var cfg config
	if path == "" {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.checkVersion(version); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *config) checkVersion(v string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires %q: %w", c.Requires, err)
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", v, err)
	}
	if !constraint.Check(sv) {
		return fmt.Errorf("switchparse %s does not satisfy requires %q", v, c.Requires)
	}
	return nil
}

// enumStyle resolves the style from, in order: the command flag, the global
// flag, the environment and the config file.
func (c *config) enumStyle(flags ...string) (switchparse.EnumStyle, error) {
	for _, f := range flags {
		if f != "" {
			return switchparse.ParseEnumStyle(f)
		}
	}
	if s := os.Getenv(envEnumStyle); s != "" {
		style, err := switchparse.ParseEnumStyle(s)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", envEnumStyle, err)
		}
		return style, nil
	}
	if c.EnumStyle != nil {
		return *c.EnumStyle, nil
	}
	return switchparse.DefaultEnumStyle, nil
}

func (c *config) format(flags ...string) string {
	for _, f := range flags {
		if f != "" {
			return f
		}
	}
	if c.Format != "" {
		return c.Format
	}
	return "json"
}

func (c *config) concurrency(flag int) int {
	switch {
	case flag > 0:
		return flag
	case c.Concurrency > 0:
		return c.Concurrency
	}
	return 4
}
