// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"tailscale.com/util/set"
)

// enumTables maps each spelling of an enum's names to the name's index.
// When two names fold to the same spelling the first declared one wins.
type enumTables struct {
	original map[string]int
	lower    map[string]int
	upper    map[string]int
}

func newEnumTables(names []string) *enumTables {
	t := &enumTables{
		original: make(map[string]int, len(names)),
		lower:    make(map[string]int, len(names)),
		upper:    make(map[string]int, len(names)),
	}
	for i, n := range names {
		t.original[n] = i
		if _, ok := t.lower[strings.ToLower(n)]; !ok {
			t.lower[strings.ToLower(n)] = i
		}
		if _, ok := t.upper[strings.ToUpper(n)]; !ok {
			t.upper[strings.ToUpper(n)] = i
		}
	}
	return t
}

// lookup resolves raw against the tables enabled by style.
func (t *enumTables) lookup(raw string, style EnumStyle) (int, bool) {
	if style.Has(IgnoreCase) {
		if i, ok := t.lower[strings.ToLower(raw)]; ok {
			return i, true
		}
	}
	if style.Has(LowerCase) {
		if i, ok := t.lower[raw]; ok {
			return i, true
		}
	}
	if style.Has(UpperCase) {
		if i, ok := t.upper[raw]; ok {
			return i, true
		}
	}
	if style.Has(OriginalCase) {
		if i, ok := t.original[raw]; ok {
			return i, true
		}
	}
	return 0, false
}

func parseEnum(vt ValueType, raw string, style EnumStyle) (reflect.Value, error) {
	i, ok := vt.enum.lookup(raw, style)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %q is not one of %s", errFormat, raw, strings.Join(AcceptedSpellings(vt, style), ", "))
	}
	return vt.enumValue(i), nil
}

// AcceptedSpellings returns every spelling of vt's names accepted under
// style, deduplicated and sorted. IgnoreCase is listed in lower case.
func AcceptedSpellings(vt ValueType, style EnumStyle) []string {
	spellings := make(set.Set[string])
	for _, n := range vt.Names {
		if style.Has(OriginalCase) {
			spellings.Add(n)
		}
		if style.Has(LowerCase) || style.Has(IgnoreCase) {
			spellings.Add(strings.ToLower(n))
		}
		if style.Has(UpperCase) {
			spellings.Add(strings.ToUpper(n))
		}
	}
	out := make([]string, 0, len(spellings))
	for s := range spellings {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
