// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"testing"

	"github.com/yeetrun/switchparse/pkg/switchparse"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(envEnumStyle, "")
	p := writeTemp(t, "config.toml", `
enum_style = "lower|upper"
format = "yaml"
requires = ">= 0.3, < 1"
concurrency = 8
`)
	cfg, err := loadConfig(p, true)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	style, err := cfg.enumStyle("")
	if err != nil {
		t.Fatalf("enumStyle: %v", err)
	}
	if style != switchparse.LowerCase|switchparse.UpperCase {
		t.Fatalf("style = %v, want lower|upper", style)
	}
	if got := cfg.format(""); got != "yaml" {
		t.Fatalf("format = %q, want yaml", got)
	}
	if got := cfg.concurrency(0); got != 8 {
		t.Fatalf("concurrency = %d, want 8", got)
	}
	if got := cfg.concurrency(3); got != 3 {
		t.Fatalf("concurrency(3) = %d, want 3", got)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := loadConfig(p, false)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.format("") != "json" || cfg.concurrency(0) != 4 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if _, err := loadConfig(p, true); err == nil {
		t.Fatal("loadConfig succeeded for an explicit missing file")
	}
}

func TestConfigRequires(t *testing.T) {
	p := writeTemp(t, "config.toml", `requires = ">= 99"`)
	if _, err := loadConfig(p, true); err == nil {
		t.Fatal("loadConfig accepted an unsatisfied requires")
	}
	c := &config{Requires: "not a constraint"}
	if err := c.checkVersion(version); err == nil {
		t.Fatal("checkVersion accepted an invalid constraint")
	}
}

func TestEnumStylePrecedence(t *testing.T) {
	lower := switchparse.LowerCase
	cfg := &config{EnumStyle: &lower}

	t.Setenv(envEnumStyle, "upper")
	if got, _ := cfg.enumStyle("", ""); got != switchparse.UpperCase {
		t.Fatalf("env style = %v, want upper", got)
	}
	if got, _ := cfg.enumStyle("", "ignore"); got != switchparse.IgnoreCase {
		t.Fatalf("global flag style = %v, want ignore", got)
	}
	if got, _ := cfg.enumStyle("original", "ignore"); got != switchparse.OriginalCase {
		t.Fatalf("command flag style = %v, want original", got)
	}

	t.Setenv(envEnumStyle, "")
	if got, _ := cfg.enumStyle(""); got != switchparse.LowerCase {
		t.Fatalf("config style = %v, want lower", got)
	}
	t.Setenv(envEnumStyle, "bogus")
	if _, err := cfg.enumStyle(""); err == nil {
		t.Fatal("enumStyle accepted a bogus environment value")
	}
}
