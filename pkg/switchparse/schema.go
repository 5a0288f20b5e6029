// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"tailscale.com/util/mak"
)

// defaultStyle converts defaults declared in tags and schema files. It
// accepts enum names in any case.
const defaultStyle = OriginalCase | IgnoreCase

// Field describes one option of a schema: its name, value type, optional
// default and how a converted value is stored into T.
type Field[T any] struct {
	name string
	typ  ValueType
	def  reflect.Value
	set  func(*T, reflect.Value)
	err  error
}

// Name returns the declared field name.
func (f Field[T]) Name() string { return f.name }

// Type returns the field's value type.
func (f Field[T]) Type() ValueType { return f.typ }

// Bind declares a field stored through ptr. The value type is derived from V.
func Bind[T, V any](name string, ptr func(*T) *V) Field[T] {
	f := Field[T]{name: name}
	f.typ, f.err = TypeOf(reflect.TypeFor[V]())
	if ptr == nil {
		f.err = fmt.Errorf("%w: field %q has no accessor", ErrInvalidSchema, name)
		return f
	}
	f.set = func(o *T, v reflect.Value) { *ptr(o) = v.Interface().(V) }
	return f
}

// BindDefault is like Bind but every parse starts with the field set to def.
func BindDefault[T, V any](name string, ptr func(*T) *V, def V) Field[T] {
	f := Bind(name, ptr)
	f.def = reflect.ValueOf(&def).Elem()
	return f
}

// Dynamic declares a field whose type is only known at run time, such as
// one read from a schema file. set receives values of vt.GoType. Unless a
// default is given with WithDefault, every parse starts with the zero value
// of the type.
func Dynamic[T any](name string, vt ValueType, set func(*T, any)) Field[T] {
	f := Field[T]{name: name, typ: vt}
	if err := vt.check(); err != nil {
		f.err = fmt.Errorf("field %q: %w", name, err)
		return f
	}
	if set == nil {
		f.err = fmt.Errorf("%w: field %q has no setter", ErrInvalidSchema, name)
		return f
	}
	f.set = func(o *T, v reflect.Value) { set(o, v.Interface()) }
	f.def = reflect.Zero(vt.GoType)
	return f
}

// WithDefault returns a copy of f whose default is raw converted to the
// field's type. Enum names match in any case.
func (f Field[T]) WithDefault(raw string) Field[T] {
	if f.err != nil {
		return f
	}
	v, err := convert(f.typ, raw, defaultStyle)
	if err != nil {
		f.err = fmt.Errorf("%w: default %q of field %q: %w", ErrInvalidSchema, raw, f.name, err)
		return f
	}
	f.def = v
	return f
}

// BindingKind tells whether an option takes a parameter.
type BindingKind uint8

const (
	// Switch options take no parameter and set their field to true.
	Switch BindingKind = iota + 1
	// Parameter options consume the following token.
	Parameter
)

func (k BindingKind) String() string {
	switch k {
	case Switch:
		return "switch"
	case Parameter:
		return "parameter"
	}
	return fmt.Sprintf("BindingKind(%d)", uint8(k))
}

// Binding is the switch identity derived for a field.
type Binding struct {
	// Short is the one-rune short name, or "" if it was shared with another
	// field and therefore dropped.
	Short string
	Long  string
	Kind  BindingKind
	// Field is the declared field name.
	Field string
	Type  ValueType
}

// Schema is an immutable set of bindings for T. It is safe for concurrent
// use.
type Schema[T any] struct {
	fields    []Field[T]
	bindings  []Binding
	short     map[string]int
	long      map[string]int
	ambiguous []string
}

// NewSchema builds a schema from fields in declaration order.
func NewSchema[T any](fields ...Field[T]) (*Schema[T], error) {
	s := &Schema[T]{
		fields:   slices.Clone(fields),
		bindings: make([]Binding, 0, len(fields)),
	}
	groups := make(map[string][]int)
	for i, f := range s.fields {
		if f.err != nil {
			return nil, f.err
		}
		if f.name == "" {
			return nil, fmt.Errorf("%w: field %d has an empty name", ErrInvalidSchema, i)
		}
		if f.set == nil {
			return nil, fmt.Errorf("%w: field %q has no setter", ErrInvalidSchema, f.name)
		}
		long := strings.ToLower(f.name)
		if j, dup := s.long[long]; dup {
			return nil, fmt.Errorf("%w: fields %q and %q share the long name --%s", ErrInvalidSchema, s.fields[j].name, f.name, long)
		}
		mak.Set(&s.long, long, i)
		r, _ := utf8.DecodeRuneInString(long)
		short := string(r)
		groups[short] = append(groups[short], i)

		kind := Parameter
		if f.typ.Kind == KindBool {
			kind = Switch
		}
		s.bindings = append(s.bindings, Binding{
			Short: short,
			Long:  long,
			Kind:  kind,
			Field: f.name,
			Type:  f.typ,
		})
	}
	for short, idx := range groups {
		if len(idx) == 1 {
			mak.Set(&s.short, short, idx[0])
			continue
		}
		s.ambiguous = append(s.ambiguous, short)
		for _, i := range idx {
			s.bindings[i].Short = ""
		}
	}
	slices.Sort(s.ambiguous)
	return s, nil
}

// Bindings returns the bindings in field order.
func (s *Schema[T]) Bindings() []Binding {
	return slices.Clone(s.bindings)
}

// Ambiguous returns the short names that were dropped because more than
// one field starts with them.
func (s *Schema[T]) Ambiguous() []string {
	return slices.Clone(s.ambiguous)
}

func (s *Schema[T]) newOptions() *T {
	o := new(T)
	for _, f := range s.fields {
		if f.def.IsValid() {
			f.set(o, f.def)
		}
	}
	return o
}

// structFields derives fields from the exported fields of struct type T.
// A `default` tag gives the field's initial value; `switch:"-"` skips it.
func structFields[T any]() ([]Field[T], error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidSchema, t)
	}
	var fields []Field[T]
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Tag.Get("switch") == "-" {
			continue
		}
		vt, err := TypeOf(sf.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", sf.Name, err)
		}
		f := Field[T]{
			name: sf.Name,
			typ:  vt,
			set: func(o *T, v reflect.Value) {
				reflect.ValueOf(o).Elem().Field(i).Set(v)
			},
		}
		if def, ok := sf.Tag.Lookup("default"); ok {
			f = f.WithDefault(def)
		}
		fields = append(fields, f)
	}
	return fields, nil
}
