// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/yeetrun/switchparse/pkg/cli"
)

type bindingRow struct {
	Field  string   `json:"field"`
	Short  string   `json:"short,omitempty"`
	Long   string   `json:"long"`
	Kind   string   `json:"kind"`
	Type   string   `json:"type"`
	Values []string `json:"values,omitempty"`
}

type bindingsOutput struct {
	Name      string       `json:"name,omitempty"`
	Digest    string       `json:"digest"`
	Bindings  []bindingRow `json:"bindings"`
	Ambiguous []string     `json:"ambiguous,omitempty"`
}

func (a *app) handleBindings(_ context.Context, args []string) error {
	flags, _, err := cli.ParseBindings(commandArgs(args))
	if err != nil {
		return err
	}
	f, s, err := loadSchema(flags.Schema)
	if err != nil {
		return err
	}
	out := bindingsOutput{
		Name:      f.Name,
		Digest:    f.Digest.String(),
		Ambiguous: s.Ambiguous(),
	}
	for _, b := range s.Bindings() {
		out.Bindings = append(out.Bindings, bindingRow{
			Field:  b.Field,
			Short:  b.Short,
			Long:   b.Long,
			Kind:   b.Kind.String(),
			Type:   b.Type.Kind.String(),
			Values: b.Type.Names,
		})
	}
	switch flags.Format {
	case "json":
		return encode(a.stdout, "json", out)
	case "table", "":
		return a.writeBindingsTable(out)
	}
	return fmt.Errorf("unknown bindings format %q (want table or json)", flags.Format)
}

func (a *app) writeBindingsTable(out bindingsOutput) error {
	w := tabwriter.NewWriter(a.stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "FIELD\tSHORT\tLONG\tKIND\tTYPE")
	for _, b := range out.Bindings {
		short := "-"
		if b.Short != "" {
			short = "-" + b.Short
		}
		typ := b.Type
		if len(b.Values) > 0 {
			typ += "(" + strings.Join(b.Values, ",") + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t--%s\t%s\t%s\n", b.Field, short, b.Long, b.Kind, typ)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(out.Ambiguous) > 0 {
		colorFor(a.stdout, color.FgYellow).Fprintf(a.stdout, "\nNo short form for fields starting with: %s\n", strings.Join(out.Ambiguous, ", "))
	}
	_, err := fmt.Fprintf(a.stdout, "\nschema %s %s\n", out.Name, out.Digest)
	return err
}
