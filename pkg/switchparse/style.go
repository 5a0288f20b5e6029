// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

import (
	"fmt"
	"strings"
)

// EnumStyle is a bit set selecting which spellings of an enum name are
// accepted as a parameter. Any combination may be active at once.
type EnumStyle uint8

const (
	// LowerCase accepts the all-lower-case spelling ("svn").
	LowerCase EnumStyle = 1 << iota
	// OriginalCase accepts the spelling exactly as declared ("SVN").
	OriginalCase
	// UpperCase accepts the all-upper-case spelling ("GIT").
	UpperCase
	// IgnoreCase accepts any casing ("sVn").
	IgnoreCase
)

// DefaultEnumStyle is used when no style is configured.
const DefaultEnumStyle = OriginalCase

var styleNames = []struct {
	style EnumStyle
	name  string
}{
	{OriginalCase, "original"},
	{LowerCase, "lower"},
	{UpperCase, "upper"},
	{IgnoreCase, "ignore"},
}

// Has reports whether every flag in f is set in s.
func (s EnumStyle) Has(f EnumStyle) bool {
	return s&f == f
}

func (s EnumStyle) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, sn := range styleNames {
		if s.Has(sn.style) {
			parts = append(parts, sn.name)
		}
	}
	if rest := s &^ (OriginalCase | LowerCase | UpperCase | IgnoreCase); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%02x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseEnumStyle parses a style list such as "lower|upper" or "lower,upper".
// Names are case-insensitive; "none" yields the empty set.
func ParseEnumStyle(s string) (EnumStyle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty enum style")
	}
	var style EnumStyle
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "none" {
			continue
		}
		found := false
		for _, sn := range styleNames {
			if sn.name == part {
				style |= sn.style
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown enum style %q (want original, lower, upper or ignore)", part)
		}
	}
	return style, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s EnumStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so styles can be read
// from config files.
func (s *EnumStyle) UnmarshalText(b []byte) error {
	v, err := ParseEnumStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
