// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseParseFlagsAndArgs(t *testing.T) {
	args := []string{
		"--schema", "vcs.toml",
		"--style", "lower",
		"-o", "yaml",
		"--", "-t", "svn", "commit",
	}

	flags, outArgs, err := ParseParse(args)
	if err != nil {
		t.Fatalf("ParseParse failed: %v", err)
	}
	if flags.Schema != "vcs.toml" {
		t.Errorf("Schema = %q, want %q", flags.Schema, "vcs.toml")
	}
	if flags.Style != "lower" {
		t.Errorf("Style = %q, want %q", flags.Style, "lower")
	}
	if flags.Format != "yaml" {
		t.Errorf("Format = %q, want %q", flags.Format, "yaml")
	}
	if got := strings.Join(outArgs, " "); got != "-t svn commit" {
		t.Errorf("args = %q, want %q", got, "-t svn commit")
	}
}

func TestParseParseStopsAtUnknownFlag(t *testing.T) {
	args := []string{
		"--schema", "http.yaml",
		"--port", "80",
		"-r",
	}

	flags, outArgs, err := ParseParse(args)
	if err != nil {
		t.Fatalf("ParseParse failed: %v", err)
	}
	if flags.Schema != "http.yaml" {
		t.Errorf("Schema = %q, want %q", flags.Schema, "http.yaml")
	}
	if got := strings.Join(outArgs, " "); got != "--port 80 -r" {
		t.Errorf("args = %q, want %q", got, "--port 80 -r")
	}
}

func TestParseBatch(t *testing.T) {
	flags, outArgs, err := ParseBatch([]string{"-s", "vcs.toml", "-j", "4", "--keep-going", "lines.txt"})
	if err != nil {
		t.Fatalf("ParseBatch failed: %v", err)
	}
	want := BatchFlags{Schema: "vcs.toml", Concurrency: 4, KeepGoing: true}
	if !reflect.DeepEqual(flags, want) {
		t.Errorf("flags = %+v, want %+v", flags, want)
	}
	if !reflect.DeepEqual(outArgs, []string{"lines.txt"}) {
		t.Errorf("args = %v, want [lines.txt]", outArgs)
	}
}

func TestParseBatchStdin(t *testing.T) {
	flags, outArgs, err := ParseBatch([]string{"-s", "vcs.toml", "-o", "toml", "-"})
	if err != nil {
		t.Fatalf("ParseBatch failed: %v", err)
	}
	want := BatchFlags{Schema: "vcs.toml", Format: "toml"}
	if !reflect.DeepEqual(flags, want) {
		t.Errorf("flags = %+v, want %+v", flags, want)
	}
	if !reflect.DeepEqual(outArgs, []string{"-"}) {
		t.Errorf("args = %v, want [-]", outArgs)
	}
}

func TestFlagSpecsFromGlobalStruct(t *testing.T) {
	specs := FlagSpecsFromStruct(struct {
		Config  string `flag:"config"`
		Verbose bool   `flag:"verbose" short:"v"`
	}{})
	want := map[string]FlagSpec{
		"--config":  {ConsumesValue: true},
		"--verbose": {},
		"-v":        {},
	}
	if !reflect.DeepEqual(specs, want) {
		t.Errorf("specs = %+v, want %+v", specs, want)
	}
}

func TestParseBindingsDefaultFormat(t *testing.T) {
	flags, _, err := ParseBindings([]string{"--schema", "http.yaml"})
	if err != nil {
		t.Fatalf("ParseBindings failed: %v", err)
	}
	if flags.Format != "table" {
		t.Errorf("Format = %q, want table", flags.Format)
	}
}

func TestFlagSpecsFromStruct(t *testing.T) {
	specs := flagSpecs[CommandBatch]
	for name, consumes := range map[string]bool{
		"--schema":     true,
		"-s":           true,
		"-j":           true,
		"--keep-going": false,
		"-k":           false,
	} {
		spec, ok := specs[name]
		if !ok {
			t.Errorf("missing spec for %s", name)
			continue
		}
		if spec.ConsumesValue != consumes {
			t.Errorf("%s ConsumesValue = %v, want %v", name, spec.ConsumesValue, consumes)
		}
	}
}

func TestHelpConfigHasAllCommands(t *testing.T) {
	cfg := HelpConfig("switchparse", "", nil)
	for _, name := range commandNames() {
		if _, ok := cfg.SubCommands[name]; !ok {
			t.Errorf("help config missing %q", name)
		}
	}
	if cfg.Command.Name != "switchparse" {
		t.Errorf("Command.Name = %q", cfg.Command.Name)
	}
}

func TestRequireArgsAtLeast(t *testing.T) {
	if err := RequireArgsAtLeast("batch", nil, 1); err == nil {
		t.Fatal("RequireArgsAtLeast succeeded with no args")
	}
	if err := RequireArgsAtLeast("batch", []string{"x"}, 1); err != nil {
		t.Fatalf("RequireArgsAtLeast: %v", err)
	}
}
