// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// errFormat marks a parameter that does not have the expected shape.
	errFormat = errors.New("invalid format")
	// errOverflow marks a parameter that parses but does not fit the target.
	errOverflow = errors.New("out of range")
)

// dateTimeLayouts are tried in order. Layouts without a zone parse as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// convert turns raw into a value of vt.GoType. Failures wrap errFormat or
// errOverflow.
func convert(vt ValueType, raw string, style EnumStyle) (reflect.Value, error) {
	switch vt.Kind {
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", errFormat, err)
		}
		v := reflect.New(vt.GoType).Elem()
		v.SetBool(b)
		return v, nil
	case KindInt:
		return parseInt(vt.GoType, raw)
	case KindUint:
		return parseUint(vt.GoType, raw)
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), vt.GoType.Bits())
		if err != nil {
			return reflect.Value{}, numError(err)
		}
		v := reflect.New(vt.GoType).Elem()
		v.SetFloat(f)
		return v, nil
	case KindDecimal:
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", errFormat, err)
		}
		return reflect.ValueOf(d), nil
	case KindDateTime:
		return parseDateTime(raw)
	case KindDuration:
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", errFormat, err)
		}
		return reflect.ValueOf(d), nil
	case KindString:
		v := reflect.New(vt.GoType).Elem()
		v.SetString(raw)
		return v, nil
	case KindText:
		p := reflect.New(vt.GoType)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", errFormat, err)
		}
		return p.Elem(), nil
	case KindEnum:
		return parseEnum(vt, raw, style)
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot convert to %s", errFormat, vt)
}

func numError(err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %w", errOverflow, err)
	}
	return fmt.Errorf("%w: %w", errFormat, err)
}

func parseInt(t reflect.Type, raw string) (reflect.Value, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, t.Bits())
	if err != nil {
		return reflect.Value{}, numError(err)
	}
	v := reflect.New(t).Elem()
	v.SetInt(n)
	return v, nil
}

// parseUint treats a well-formed negative integer as out of range rather
// than malformed, so "-80" for a port reports an overflow.
func parseUint(t reflect.Type, raw string) (reflect.Value, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "+")
	u, err := strconv.ParseUint(s, 10, t.Bits())
	if err == nil {
		v := reflect.New(t).Elem()
		v.SetUint(u)
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return reflect.Value{}, fmt.Errorf("%w: %w", errOverflow, err)
	}
	if strings.HasPrefix(s, "-") {
		n, ierr := strconv.ParseInt(s, 10, 64)
		switch {
		case ierr == nil && n == 0:
			return reflect.New(t).Elem(), nil
		case ierr == nil, errors.Is(ierr, strconv.ErrRange):
			return reflect.Value{}, fmt.Errorf("%w: %q is negative", errOverflow, raw)
		}
	}
	return reflect.Value{}, fmt.Errorf("%w: %w", errFormat, err)
}

func parseDateTime(raw string) (reflect.Value, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return reflect.ValueOf(t), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("%w: %q is not a recognized date/time", errFormat, raw)
}
