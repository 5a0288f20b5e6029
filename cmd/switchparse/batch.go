// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/google/uuid"
	"github.com/yeetrun/switchparse/pkg/cli"
	"github.com/yeetrun/switchparse/pkg/codecutil"
	"github.com/yeetrun/switchparse/pkg/schemafile"
	"github.com/yeetrun/switchparse/pkg/slogctx"
	"github.com/yeetrun/switchparse/pkg/switchparse"
	"golang.org/x/sync/errgroup"
)

type batchLine struct {
	// Line is the 1-based line number in the input.
	Line int
	Text string
}

type batchRecord struct {
	Line    int            `json:"line" yaml:"line" toml:"line"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Args    []string       `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`

	err error
}

type batchOutput struct {
	Run    string        `json:"run" yaml:"run" toml:"run"`
	Schema string        `json:"schema" yaml:"schema" toml:"schema"`
	Lines  []batchRecord `json:"lines" yaml:"lines" toml:"line"`
}

// readBatch returns the non-blank, non-comment lines of r.
func readBatch(r io.Reader) ([]batchLine, error) {
	var lines []batchLine
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, batchLine{Line: n, Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}
	return lines, nil
}

func (a *app) openBatch(name string) (io.ReadCloser, error) {
	if name == "-" {
		return codecutil.NewReader(a.stdin)
	}
	return codecutil.Open(name)
}

// parseBatch parses every line with s using at most limit goroutines.
// Records come back in input order. Unless keepGoing is set, the first
// failing line (by position) is returned as the error.
func parseBatch(ctx context.Context, s *schemafile.Schema, lines []batchLine, limit int, keepGoing bool, opts ...switchparse.Option) ([]batchRecord, error) {
	records := make([]batchRecord, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, l := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			rec := &records[i]
			rec.Line = l.Line
			args, err := shlex.Split(l.Text)
			if err != nil {
				rec.err = fmt.Errorf("line %d: %w", l.Line, err)
				rec.Error = rec.err.Error()
				return keepGoingErr(rec.err, keepGoing)
			}
			res, perr := s.Scan(args, opts...)
			if perr != nil {
				rec.err = fmt.Errorf("line %d: %w", l.Line, &switchparse.InvalidSwitchError{ParseError: perr})
				rec.Error = perr.Error()
				return keepGoingErr(rec.err, keepGoing)
			}
			out := newParseOutput(*res.Options, res.Args)
			rec.Options, rec.Args = out.Options, out.Args
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, rec := range records {
			if rec.err != nil {
				return records, rec.err
			}
		}
		return records, err
	}
	return records, nil
}

func keepGoingErr(err error, keepGoing bool) error {
	if keepGoing {
		return nil
	}
	return err
}

func (a *app) handleBatch(ctx context.Context, args []string) error {
	flags, rest, err := cli.ParseBatch(commandArgs(args))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtLeast(cli.CommandBatch, rest, 1); err != nil {
		return err
	}
	f, s, err := loadSchema(flags.Schema)
	if err != nil {
		return err
	}
	style, err := a.cfg.enumStyle(flags.Style, a.global.Style)
	if err != nil {
		return err
	}
	format := a.cfg.format(flags.Format, a.global.Format)
	if format == "env" {
		return fmt.Errorf("env output is not supported for batch")
	}

	r, err := a.openBatch(rest[0])
	if err != nil {
		return err
	}
	defer r.Close()
	lines, err := readBatch(r)
	if err != nil {
		return err
	}

	run := uuid.New().String()
	log := slogctx.FromContext(ctx).With("run", run)
	log.Debug("batch started", "input", rest[0], "lines", len(lines))
	records, err := parseBatch(ctx, s, lines, a.cfg.concurrency(flags.Concurrency), flags.KeepGoing,
		switchparse.WithEnumStyle(style),
		switchparse.WithLogger(log),
	)
	if err != nil {
		return err
	}
	failed := 0
	for _, rec := range records {
		if rec.err != nil {
			failed++
		}
	}
	log.Debug("batch finished", "lines", len(records), "failed", failed)
	return encode(a.stdout, format, batchOutput{Run: run, Schema: f.Digest.String(), Lines: records})
}
