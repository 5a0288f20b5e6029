// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the semantic type of an option value. It decides how a raw
// parameter is converted and how conversion failures are described.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDecimal
	KindDateTime
	KindDuration
	KindString
	KindText
	KindEnum
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindBool:     "bool",
	KindInt:      "int",
	KindUint:     "uint",
	KindFloat:    "float",
	KindDecimal:  "decimal",
	KindDateTime: "datetime",
	KindDuration: "duration",
	KindString:   "string",
	KindText:     "text",
	KindEnum:     "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind named s, as printed by Kind.String. "time" is
// accepted for KindDateTime.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "time" {
		return KindDateTime, nil
	}
	for k, name := range kindNames {
		if k != int(KindInvalid) && name == s {
			return Kind(k), nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown kind %q", s)
}

// Enum is implemented by named types whose values are drawn from a fixed
// list of names. For integer-based types the i-th name is the value whose
// underlying integer is i; for string-based types the value is the name.
//
//	type VCSType int
//
//	const (
//		Git VCSType = iota
//		SVN
//	)
//
//	func (VCSType) EnumNames() []string { return []string{"Git", "SVN"} }
type Enum interface {
	EnumNames() []string
}

// ValueType describes the type of a field: its semantic kind, the Go type
// converted values have, and for enums the declared names.
type ValueType struct {
	Kind   Kind
	GoType reflect.Type
	// Names holds enum names in declaration order.
	Names []string

	enum *enumTables
}

var (
	enumType            = reflect.TypeFor[Enum]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	timeType            = reflect.TypeFor[time.Time]()
	durationType        = reflect.TypeFor[time.Duration]()
	decimalType         = reflect.TypeFor[decimal.Decimal]()
	stringType          = reflect.TypeFor[string]()
)

// TypeOf classifies t. It fails for types the parser cannot convert to.
func TypeOf(t reflect.Type) (ValueType, error) {
	if t == nil {
		return ValueType{}, fmt.Errorf("%w: nil type", ErrInvalidSchema)
	}
	if names, ok := enumNames(t); ok {
		return newEnumType(t, names)
	}
	switch t {
	case timeType:
		return ValueType{Kind: KindDateTime, GoType: t}, nil
	case durationType:
		return ValueType{Kind: KindDuration, GoType: t}, nil
	case decimalType:
		return ValueType{Kind: KindDecimal, GoType: t}, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return ValueType{Kind: KindBool, GoType: t}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ValueType{Kind: KindInt, GoType: t}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ValueType{Kind: KindUint, GoType: t}, nil
	case reflect.Float32, reflect.Float64:
		return ValueType{Kind: KindFloat, GoType: t}, nil
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return ValueType{Kind: KindText, GoType: t}, nil
	}
	if t.Kind() == reflect.String {
		return ValueType{Kind: KindString, GoType: t}, nil
	}
	return ValueType{}, fmt.Errorf("%w: unsupported type %s", ErrInvalidSchema, t)
}

// EnumType returns a value type for an enum known only by its names, as
// declared in a schema file. Converted values are the declared names.
func EnumType(names ...string) (ValueType, error) {
	return newEnumType(stringType, names)
}

// KindType returns the value type of a non-enum kind with its default Go
// type (int64 for KindInt, uint64 for KindUint, float64 for KindFloat, ...).
func KindType(k Kind) (ValueType, error) {
	var t reflect.Type
	switch k {
	case KindBool:
		t = reflect.TypeFor[bool]()
	case KindInt:
		t = reflect.TypeFor[int64]()
	case KindUint:
		t = reflect.TypeFor[uint64]()
	case KindFloat:
		t = reflect.TypeFor[float64]()
	case KindDecimal:
		t = decimalType
	case KindDateTime:
		t = timeType
	case KindDuration:
		t = durationType
	case KindString:
		t = stringType
	default:
		return ValueType{}, fmt.Errorf("%w: no default Go type for kind %s", ErrInvalidSchema, k)
	}
	return TypeOf(t)
}

func enumNames(t reflect.Type) ([]string, bool) {
	if t.Implements(enumType) {
		return reflect.Zero(t).Interface().(Enum).EnumNames(), true
	}
	if reflect.PointerTo(t).Implements(enumType) {
		return reflect.New(t).Interface().(Enum).EnumNames(), true
	}
	return nil, false
}

func newEnumType(t reflect.Type, names []string) (ValueType, error) {
	if len(names) == 0 {
		return ValueType{}, fmt.Errorf("%w: enum %s declares no names", ErrInvalidSchema, t)
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return ValueType{}, fmt.Errorf("%w: enum %s declares an empty name", ErrInvalidSchema, t)
		}
		if seen[n] {
			return ValueType{}, fmt.Errorf("%w: enum %s declares %q twice", ErrInvalidSchema, t, n)
		}
		seen[n] = true
	}
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.OverflowInt(int64(len(names) - 1)) {
			return ValueType{}, fmt.Errorf("%w: enum %s has more names than values", ErrInvalidSchema, t)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.OverflowUint(uint64(len(names) - 1)) {
			return ValueType{}, fmt.Errorf("%w: enum %s has more names than values", ErrInvalidSchema, t)
		}
	default:
		return ValueType{}, fmt.Errorf("%w: enum %s must be an integer or string type", ErrInvalidSchema, t)
	}
	names = append([]string(nil), names...)
	return ValueType{
		Kind:   KindEnum,
		GoType: t,
		Names:  names,
		enum:   newEnumTables(names),
	}, nil
}

// check reports whether vt is one TypeOf, EnumType or KindType could have
// returned, so that converted values can be stored without panicking.
func (vt ValueType) check() error {
	if vt.GoType == nil {
		return fmt.Errorf("%w: value type has no Go type", ErrInvalidSchema)
	}
	if vt.Kind == KindEnum {
		switch vt.GoType.Kind() {
		case reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return fmt.Errorf("%w: enum %s must be an integer or string type", ErrInvalidSchema, vt.GoType)
		}
		if vt.enum == nil || len(vt.enum.original) != len(vt.Names) {
			return fmt.Errorf("%w: enum %s was not built with EnumType or TypeOf", ErrInvalidSchema, vt.GoType)
		}
		return nil
	}
	got, err := TypeOf(vt.GoType)
	if err != nil {
		return err
	}
	if got.Kind != vt.Kind {
		return fmt.Errorf("%w: kind %s does not match Go type %s (%s)", ErrInvalidSchema, vt.Kind, vt.GoType, got.Kind)
	}
	return nil
}

// enumValue returns the value of the i-th declared name.
func (vt ValueType) enumValue(i int) reflect.Value {
	v := reflect.New(vt.GoType).Elem()
	switch vt.GoType.Kind() {
	case reflect.String:
		v.SetString(vt.Names[i])
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(uint64(i))
	default:
		v.SetInt(int64(i))
	}
	return v
}

func (vt ValueType) String() string {
	if vt.Kind == KindEnum {
		if vt.GoType == stringType {
			return "enum(" + strings.Join(vt.Names, ",") + ")"
		}
		return vt.GoType.String()
	}
	if vt.GoType == nil {
		return vt.Kind.String()
	}
	return vt.GoType.String()
}
