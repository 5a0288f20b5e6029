// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli holds the command metadata and flag parsing of the
// switchparse tool.
package cli

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/shayne/yargs"
)

type FlagSpec struct {
	ConsumesValue bool
}

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
}

// ParseFlags are the flags of "parse". Everything after the last known
// flag is handed to the switch parser untouched.
type ParseFlags struct {
	Schema string
	Style  string
	Format string
	Prefix string
}

type BatchFlags struct {
	Schema      string
	Style       string
	Format      string
	Concurrency int
	KeepGoing   bool
}

type BindingsFlags struct {
	Schema string
	Format string
}

type VersionFlags struct {
	JSON bool
}

type parseFlagsParsed struct {
	Schema string `flag:"schema" short:"s" help:"Schema file (toml, yaml or json, optionally .zst)"`
	Style  string `flag:"style" help:"Enum spellings to accept: original|lower|upper|ignore"`
	Format string `flag:"format" short:"o" help:"Output format: json, yaml, toml or env"`
	Prefix string `flag:"prefix" help:"Key prefix for env output"`
}

type batchFlagsParsed struct {
	Schema      string `flag:"schema" short:"s" help:"Schema file (toml, yaml or json, optionally .zst)"`
	Style       string `flag:"style" help:"Enum spellings to accept: original|lower|upper|ignore"`
	Format      string `flag:"format" short:"o" help:"Output format: json, yaml or toml"`
	Concurrency int    `flag:"concurrency" short:"j" help:"Number of lines parsed at once"`
	KeepGoing   bool   `flag:"keep-going" short:"k" help:"Report failed lines instead of stopping"`
}

type bindingsFlagsParsed struct {
	Schema string `flag:"schema" short:"s" help:"Schema file (toml, yaml or json, optionally .zst)"`
	Format string `flag:"format" short:"o" default:"table" help:"Output format: table or json"`
}

type versionFlagsParsed struct {
	JSON bool `flag:"json"`
}

const (
	CommandParse    = "parse"
	CommandBatch    = "batch"
	CommandBindings = "bindings"
	CommandVersion  = "version"
)

var commandInfos = map[string]CommandInfo{
	CommandParse: {Name: CommandParse, Description: "Parse switches against a schema and print the options", Usage: "--schema FILE [--style=lower] [--format=json] [--] ARGS...", Examples: []string{
		"switchparse parse --schema vcs.toml -- -t svn commit",
		"switchparse parse -s http.yaml --format env --prefix HTTP_ -- --port 80 -r",
	}, Aliases: []string{"p"}},
	CommandBatch: {Name: CommandBatch, Description: "Parse one command line per input line, in parallel", Usage: "--schema FILE [-j N] [--keep-going] FILE|-", Examples: []string{
		"switchparse batch --schema vcs.toml lines.txt",
		"switchparse batch -s vcs.toml -j 8 -k lines.txt.zst",
	}},
	CommandBindings: {Name: CommandBindings, Description: "Show the short and long names derived from a schema", Usage: "--schema FILE [--format=table|json]", Examples: []string{
		"switchparse bindings --schema http.yaml",
	}},
	CommandVersion: {Name: CommandVersion, Description: "Show the version of switchparse"},
}

var flagSpecs = map[string]map[string]FlagSpec{
	CommandParse:    FlagSpecsFromStruct(parseFlagsParsed{}),
	CommandBatch:    FlagSpecsFromStruct(batchFlagsParsed{}),
	CommandBindings: FlagSpecsFromStruct(bindingsFlagsParsed{}),
	CommandVersion:  FlagSpecsFromStruct(versionFlagsParsed{}),
}

func commandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

// HelpConfig returns the help metadata for the commands, with extra
// global flags documented on the root command.
func HelpConfig(name, description string, examples []string) yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo, len(commandInfos))
	for cmd, info := range commandInfos {
		subcommands[cmd] = toSubCommandInfo(cmd, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        name,
			Description: description,
			Examples:    examples,
		},
		SubCommands: subcommands,
	}
}

func toSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// ParseParse parses the flags of "parse". It returns the flags and the
// arguments for the switch parser: positional arguments before the first
// unknown flag, followed by everything from that flag (or after "--") on.
func ParseParse(args []string) (ParseFlags, []string, error) {
	parseArgs, extraArgs := splitArgsForParsing(args, flagSpecs[CommandParse])
	parsed, err := parseFlags[parseFlagsParsed](parseArgs)
	if err != nil {
		return ParseFlags{}, nil, err
	}
	flags := ParseFlags{
		Schema: parsed.Flags.Schema,
		Style:  parsed.Flags.Style,
		Format: parsed.Flags.Format,
		Prefix: parsed.Flags.Prefix,
	}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

func ParseBatch(args []string) (BatchFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[batchFlagsParsed](parseArgs)
	if err != nil {
		return BatchFlags{}, nil, err
	}
	flags := BatchFlags{
		Schema:      parsed.Flags.Schema,
		Style:       parsed.Flags.Style,
		Format:      parsed.Flags.Format,
		Concurrency: parsed.Flags.Concurrency,
		KeepGoing:   parsed.Flags.KeepGoing,
	}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

func ParseBindings(args []string) (BindingsFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[bindingsFlagsParsed](parseArgs)
	if err != nil {
		return BindingsFlags{}, nil, err
	}
	flags := BindingsFlags{
		Schema: parsed.Flags.Schema,
		Format: parsed.Flags.Format,
	}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

func ParseVersion(args []string) (VersionFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[versionFlagsParsed](parseArgs)
	if err != nil {
		return VersionFlags{}, nil, err
	}
	flags := VersionFlags{JSON: parsed.Flags.JSON}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

type parsedFlags[T any] struct {
	Flags  T
	Args   []string
	Parser *yargs.Parser
}

// parseFlags parses args with yargs. A bare "-" names stdin and is kept as
// a positional argument after the others.
func parseFlags[T any](args []string) (parsedFlags[T], error) {
	args, stdin := withoutStdin(args)
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	for range stdin {
		argsOut = append(argsOut, "-")
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut, Parser: result.Parser}, nil
}

func withoutStdin(args []string) ([]string, int) {
	out := make([]string, 0, len(args))
	n := 0
	for _, arg := range args {
		if arg == "-" {
			n++
			continue
		}
		out = append(out, arg)
	}
	return out, n
}

func splitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

// splitArgsForParsing splits args at "--" or at the first flag not in
// specs, whichever comes first.
func splitArgsForParsing(args []string, specs map[string]FlagSpec) ([]string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			continue
		}
		name := arg
		if idx := strings.Index(name, "="); idx != -1 {
			name = name[:idx]
		}
		spec, ok := specs[name]
		if !ok {
			return args[:i], args[i:]
		}
		if spec.ConsumesValue && !strings.Contains(arg, "=") {
			i++
		}
	}
	return args, nil
}

// FlagSpecsFromStruct returns the specs of the long and short flags
// declared by the `flag` and `short` tags of struct v.
func FlagSpecsFromStruct(v any) map[string]FlagSpec {
	specs := make(map[string]FlagSpec)
	t := reflect.Indirect(reflect.ValueOf(v)).Type()
	if t.Kind() != reflect.Struct {
		return specs
	}
	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("flag")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		spec := FlagSpec{ConsumesValue: field.Type.Kind() != reflect.Bool}
		specs["--"+name] = spec
		if short := field.Tag.Get("short"); short != "" {
			specs["-"+short] = spec
		}
	}
	return specs
}

func RequireArgsAtLeast(subcmd string, args []string, count int) error {
	if len(args) < count {
		return fmt.Errorf("'%s' requires at least %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}
