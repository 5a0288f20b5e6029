// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile reads option schemas declared in TOML, YAML or JSON
// files and turns them into switchparse schemas over a map of values.
package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/containerd/errdefs"
	"github.com/opencontainers/go-digest"
	"github.com/shopspring/decimal"
	"github.com/yeetrun/switchparse/pkg/codecutil"
	"github.com/yeetrun/switchparse/pkg/switchparse"
	"gopkg.in/yaml.v3"
	"tailscale.com/util/mak"
)

// Format is the encoding of a schema file.
type Format int

const (
	Unknown Format = iota
	TOML
	YAML
	JSON
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	}
	return "unknown"
}

// File is a decoded schema file.
//
//	name = "vcs"
//
//	[[field]]
//	name = "Type"
//	type = "enum"
//	values = ["Git", "SVN"]
//	default = "Git"
//
//	[[field]]
//	name = "CommitAt"
//	type = "datetime"
type File struct {
	Name   string      `toml:"name" yaml:"name" json:"name"`
	Fields []FieldSpec `toml:"field" yaml:"fields" json:"fields"`

	// Format and Digest describe the content the file was decoded from.
	Format Format        `toml:"-" yaml:"-" json:"-"`
	Digest digest.Digest `toml:"-" yaml:"-" json:"-"`
}

// FieldSpec declares one option.
type FieldSpec struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	// Type is a kind name such as "uint", "datetime" or "enum".
	Type string `toml:"type" yaml:"type" json:"type"`
	// Default is converted like a parameter. Numbers and dates may be
	// written unquoted.
	Default any `toml:"default,omitempty" yaml:"default,omitempty" json:"default,omitempty"`
	// Values lists the names of an enum.
	Values []string `toml:"values,omitempty" yaml:"values,omitempty" json:"values,omitempty"`
}

// Values holds parsed options keyed by field name.
type Values map[string]any

// Schema is a switchparse schema over Values.
type Schema = switchparse.Schema[Values]

// Load reads and decodes the schema file at path. The file may be
// zstd-compressed; its format is then detected from the name without the
// compression suffix.
func Load(path string) (*File, error) {
	b, err := codecutil.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("schema file %s: %w", path, errdefs.ErrNotFound)
		}
		return nil, err
	}
	f, err := Decode(b, Detect(codecutil.TrimZstdExt(path), b))
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return f, nil
}

// Detect guesses the format from the file name, then from the content.
func Detect(name string, b []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return TOML
	case ".yml", ".yaml":
		return YAML
	case ".json":
		return JSON
	}
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return JSON
	}
	var tf File
	if _, err := toml.Decode(string(b), &tf); err == nil && len(tf.Fields) > 0 {
		return TOML
	}
	var yf File
	if err := yaml.Unmarshal(b, &yf); err == nil && len(yf.Fields) > 0 {
		return YAML
	}
	return Unknown
}

// Decode decodes b in format f.
func Decode(b []byte, f Format) (*File, error) {
	var out File
	switch f {
	case TOML:
		if _, err := toml.Decode(string(b), &out); err != nil {
			return nil, fmt.Errorf("failed to decode toml: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	case JSON:
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to detect schema format: %w", errdefs.ErrInvalidArgument)
	}
	out.Format = f
	out.Digest = digest.FromBytes(b)
	return &out, nil
}

// Schema builds the switchparse schema declared by f.
func (f *File) Schema() (*Schema, error) {
	fields := make([]switchparse.Field[Values], 0, len(f.Fields))
	for _, spec := range f.Fields {
		field, err := spec.field()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return switchparse.NewSchema(fields...)
}

func (s FieldSpec) valueType() (switchparse.ValueType, error) {
	kind, err := switchparse.ParseKind(s.Type)
	if err != nil {
		return switchparse.ValueType{}, fmt.Errorf("%w: field %q: %w", switchparse.ErrInvalidSchema, s.Name, err)
	}
	if kind == switchparse.KindEnum {
		return switchparse.EnumType(s.Values...)
	}
	if len(s.Values) > 0 {
		return switchparse.ValueType{}, fmt.Errorf("%w: field %q: values given for a %s field", switchparse.ErrInvalidSchema, s.Name, kind)
	}
	return switchparse.KindType(kind)
}

func (s FieldSpec) field() (switchparse.Field[Values], error) {
	vt, err := s.valueType()
	if err != nil {
		return switchparse.Field[Values]{}, err
	}
	name := s.Name
	field := switchparse.Dynamic(name, vt, func(v *Values, x any) {
		mak.Set(v, name, x)
	})
	if s.Default != nil {
		field = field.WithDefault(defaultText(s.Default))
	}
	return field, nil
}

// defaultText renders a decoded default the way it would be typed on a
// command line.
func defaultText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}
	return fmt.Sprint(v)
}

// Plain returns a copy of v whose values encode naturally as TOML, YAML or
// JSON: durations and decimals become strings.
func (v Values) Plain() map[string]any {
	out := make(map[string]any, len(v))
	for k, x := range v {
		switch x := x.(type) {
		case time.Duration:
			out[k] = x.String()
		case decimal.Decimal:
			out[k] = x.String()
		default:
			out[k] = x
		}
	}
	return out
}
