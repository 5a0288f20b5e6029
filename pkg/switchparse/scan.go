// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"
)

// Result is the outcome of a successful scan.
type Result[T any] struct {
	Options *T
	// Args holds the tokens that matched no option, in input order.
	Args []string
	// Consumed is the number of tokens taken by options and parameters.
	Consumed int
}

// classify reports whether tok names an option. A "-" followed by exactly
// one rune is a short name (so "--" is the short name "-"); "--" followed
// by anything is a long name.
func classify(tok string) (name string, long, ok bool) {
	if len(tok) > 2 && strings.HasPrefix(tok, "--") {
		return tok[2:], true, true
	}
	if strings.HasPrefix(tok, "-") {
		if _, size := utf8.DecodeRuneInString(tok[1:]); size > 0 && 1+size == len(tok) {
			return tok[1:], false, true
		}
	}
	return "", false, false
}

func (s *Schema[T]) lookup(name string, long bool) (int, bool) {
	if long {
		i, ok := s.long[name]
		return i, ok
	}
	i, ok := s.short[name]
	return i, ok
}

// Scan matches args against s without modifying args. It stops at the
// first failure.
func (s *Schema[T]) Scan(args []string, opts ...Option) (*Result[T], *ParseError) {
	cfg := NewConfig(opts...)
	log := cfg.logger()
	style := cfg.EnumStyle

	o := s.newOptions()
	rest := make([]string, 0, len(args))
	fail := func(err *ParseError) (*Result[T], *ParseError) {
		log.Debug("parse failed", "kind", err.Kind(), "option", err.OptionName())
		return nil, err
	}
	for i := 0; i < len(args); i++ {
		tok := args[i]
		name, long, ok := classify(tok)
		if !ok {
			log.Debug("positional", "token", tok)
			rest = append(rest, tok)
			continue
		}
		idx, ok := s.lookup(name, long)
		if !ok {
			return fail(newUnknownOption(tok, style))
		}
		f := s.fields[idx]
		if s.bindings[idx].Kind == Switch {
			v := reflect.New(f.typ.GoType).Elem()
			v.SetBool(true)
			f.set(o, v)
			log.Debug("switch matched", "option", tok, "field", f.name)
			continue
		}
		if i+1 >= len(args) {
			return fail(newMissingParameter(tok, f.typ, style))
		}
		i++
		param := args[i]
		v, err := convert(f.typ, param, style)
		if err != nil {
			kind := InvalidParameterFormat
			if errors.Is(err, errOverflow) {
				kind = ParameterOverflow
			}
			return fail(newParameterError(kind, tok, param, f.typ, style))
		}
		f.set(o, v)
		log.Debug("switch matched", "option", tok, "field", f.name, "parameter", param)
	}
	return &Result[T]{
		Options:  o,
		Args:     rest,
		Consumed: len(args) - len(rest),
	}, nil
}

// Parse scans *args and, on success, replaces *args with the unmatched
// tokens. On failure *args is left as it was and the error is an
// *InvalidSwitchError.
func (s *Schema[T]) Parse(args *[]string, opts ...Option) (*T, error) {
	res, perr := s.Scan(derefArgs(args), opts...)
	if perr != nil {
		return nil, &InvalidSwitchError{ParseError: perr}
	}
	if args != nil {
		*args = res.Args
	}
	return res.Options, nil
}

func derefArgs(args *[]string) []string {
	if args == nil {
		return nil
	}
	return *args
}
