// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command switchparse parses command-line switches against a schema file
// and prints the resulting options.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/switchparse/pkg/cli"
	"github.com/yeetrun/switchparse/pkg/schemafile"
	"github.com/yeetrun/switchparse/pkg/slogctx"
	"github.com/yeetrun/switchparse/pkg/switchparse"
	"golang.org/x/term"
)

type globalFlagsParsed struct {
	Config    string `flag:"config" help:"Config file (SWITCHPARSE_CONFIG)"`
	Style     string `flag:"style" help:"Default enum style (SWITCHPARSE_ENUM_STYLE)"`
	Format    string `flag:"format" help:"Default output format"`
	Verbose   bool   `flag:"verbose" short:"v" help:"Log matching decisions to stderr"`
	LogFormat string `flag:"log-format" help:"Log format: text or json"`
}

var globalFlagSpecs = cli.FlagSpecsFromStruct(globalFlagsParsed{})

// splitGlobalArgs returns the global flags in front of the command name and
// the rest.
func splitGlobalArgs(args []string) ([]string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return args[:i], args[i:]
		}
		name, _, hasValue := strings.Cut(arg, "=")
		spec, ok := globalFlagSpecs[name]
		if !ok {
			return args[:i], args[i:]
		}
		if spec.ConsumesValue && !hasValue {
			i++
		}
	}
	return args, nil
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	head, rest := splitGlobalArgs(args)
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](head, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, append(result.RemainingArgs, rest...), nil
}

// app holds what every command needs.
type app struct {
	global globalFlagsParsed
	cfg    *config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global, remaining, err := parseGlobalFlags(args)
	if err != nil {
		printCLIError(stderr, err)
		return 1
	}
	level := slog.LevelInfo
	if global.Verbose {
		level = slog.LevelDebug
	}
	logger, err := slogctx.NewLogger(stderr, global.LogFormat, level)
	if err != nil {
		printCLIError(stderr, err)
		return 1
	}
	ctx = slogctx.ContextWithLogger(ctx, logger)

	path, explicit := global.Config, global.Config != ""
	if !explicit {
		path = defaultConfigPath()
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		printCLIError(stderr, err)
		return 1
	}
	a := &app{global: global, cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}

	helpConfig := buildHelpConfig()
	remaining = yargs.ApplyAliases(remaining, helpConfig)
	handlers := map[string]yargs.SubcommandHandler{
		cli.CommandParse:    a.handleParse,
		cli.CommandBatch:    a.handleBatch,
		cli.CommandBindings: a.handleBindings,
		cli.CommandVersion:  a.handleVersion,
	}
	if err := yargs.RunSubcommandsWithGroups(ctx, remaining, helpConfig, globalFlagsParsed{}, handlers, nil); err != nil {
		printCLIError(stderr, err)
		return exitCode(err)
	}
	return 0
}

func buildHelpConfig() yargs.HelpConfig {
	return cli.HelpConfig(
		"switchparse",
		"Parse command-line switches against a schema file and print the options.",
		[]string{
			"switchparse parse --schema vcs.toml -- -t svn commit",
			"switchparse --style lower batch --schema vcs.toml lines.txt",
			"switchparse bindings --schema http.yaml",
		},
	)
}

// commandArgs drops the command name yargs passes as the first argument.
func commandArgs(args []string) []string {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if _, ok := cli.CommandInfos()[args[0]]; ok {
			return args[1:]
		}
		for _, info := range cli.CommandInfos() {
			for _, alias := range info.Aliases {
				if alias == args[0] {
					return args[1:]
				}
			}
		}
	}
	return args
}

func loadSchema(path string) (*schemafile.File, *schemafile.Schema, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("--schema is required: %w", errdefs.ErrInvalidArgument)
	}
	f, err := schemafile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := f.Schema()
	if err != nil {
		return nil, nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return f, s, nil
}

func (a *app) handleParse(ctx context.Context, args []string) error {
	flags, rest, err := cli.ParseParse(commandArgs(args))
	if err != nil {
		return err
	}
	_, s, err := loadSchema(flags.Schema)
	if err != nil {
		return err
	}
	style, err := a.cfg.enumStyle(flags.Style, a.global.Style)
	if err != nil {
		return err
	}
	opts, err := s.Parse(&rest,
		switchparse.WithEnumStyle(style),
		switchparse.WithLogger(slogctx.FromContext(ctx)),
	)
	if err != nil {
		return err
	}
	format := a.cfg.format(flags.Format, a.global.Format)
	return writeParseOutput(a.stdout, format, flags.Prefix, newParseOutput(*opts, rest))
}

func (a *app) handleVersion(_ context.Context, args []string) error {
	flags, _, err := cli.ParseVersion(commandArgs(args))
	if err != nil {
		return err
	}
	if flags.JSON {
		return encode(a.stdout, "json", map[string]string{"version": version})
	}
	_, err = fmt.Fprintf(a.stdout, "switchparse %s\n", version)
	return err
}

// exitCode is 2 for switch parse failures and 1 for everything else.
func exitCode(err error) int {
	var ise *switchparse.InvalidSwitchError
	if errors.As(err, &ise) {
		return 2
	}
	return 1
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorFor returns a color that is only applied when w is a terminal.
func colorFor(w io.Writer, attr color.Attribute) *color.Color {
	c := color.New(attr)
	if isTerminal(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	c := colorFor(w, color.FgRed)
	var ise *switchparse.InvalidSwitchError
	if errors.As(err, &ise) {
		c.Fprint(w, "Error: ")
		fmt.Fprintln(w, ise.ParseError.Error())
		return
	}
	c.Fprint(w, "switchparse: ")
	fmt.Fprintln(w, err)
}
