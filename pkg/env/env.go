// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env renders parsed options as shell environment assignments.
package env

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/yeetrun/switchparse/pkg/switchparse"
)

// WriteFile writes the assignments for v to the file name.
func WriteFile(name, prefix string, v any) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := Write(f, prefix, v); err != nil {
		return fmt.Errorf("failed to marshal env: %v", err)
	}
	return f.Close()
}

// Write writes one KEY=value line per option in v, which is a struct, a
// pointer to one, or a map keyed by option name. Keys are the option names
// in upper snake case after prefix; a struct field's `env` tag overrides
// the derived key. Map keys are written in sorted order.
func Write(w io.Writer, prefix string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		rt := rv.Type()
		for i := range rv.NumField() {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			key := sf.Tag.Get("env")
			if key == "-" {
				continue
			}
			if key == "" {
				key = prefix + Key(sf.Name)
			}
			if _, err := fmt.Fprintf(w, "%s=%s\n", key, Quote(Format(rv.Field(i).Interface()))); err != nil {
				return err
			}
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		for _, k := range keys {
			val := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			if _, err := fmt.Fprintf(w, "%s=%s\n", prefix+Key(k), Quote(Format(val.Interface()))); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported type %T", v)
	}
	return nil
}

// Key converts an option name such as "RepositorySizeLimit" to
// "REPOSITORY_SIZE_LIMIT".
func Key(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteByte('_')
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Format renders an option value. Integer enums print their name.
func Format(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case switchparse.Enum:
		rv := reflect.ValueOf(x)
		names := x.EnumNames()
		var i int
		switch {
		case rv.CanInt():
			i = int(rv.Int())
		case rv.CanUint():
			i = int(rv.Uint())
		default:
			return fmt.Sprint(v)
		}
		if i >= 0 && i < len(names) {
			return names[i]
		}
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Quote single-quotes s if the shell would otherwise split or expand it.
func Quote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./:,+@%=", r)
}
