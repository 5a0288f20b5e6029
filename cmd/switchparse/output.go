// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/switchparse/pkg/env"
	"github.com/yeetrun/switchparse/pkg/schemafile"
	"gopkg.in/yaml.v3"
)

type parseOutput struct {
	Options map[string]any `json:"options" yaml:"options" toml:"options"`
	Args    []string       `json:"args" yaml:"args" toml:"args"`
}

func newParseOutput(v schemafile.Values, args []string) parseOutput {
	if args == nil {
		args = []string{}
	}
	return parseOutput{Options: v.Plain(), Args: args}
}

// encode writes v to w in format.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(v)
	}
	return fmt.Errorf("unknown output format %q (want json, yaml, toml or env)", format)
}

// writeParseOutput writes a parse result. The env format writes one
// assignment per option and the positional arguments as <prefix>ARGS.
func writeParseOutput(w io.Writer, format, prefix string, out parseOutput) error {
	if format != "env" {
		return encode(w, format, out)
	}
	if err := env.Write(w, prefix, out.Options); err != nil {
		return err
	}
	quoted := make([]string, len(out.Args))
	for i, a := range out.Args {
		quoted[i] = env.Quote(a)
	}
	_, err := fmt.Fprintf(w, "%sARGS=%s\n", prefix, env.Quote(strings.Join(quoted, " ")))
	return err
}
