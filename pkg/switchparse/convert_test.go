// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

import (
	"errors"
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mustType(t *testing.T, v any) ValueType {
	t.Helper()
	vt, err := TypeOf(reflect.TypeOf(v))
	if err != nil {
		t.Fatalf("TypeOf(%T): %v", v, err)
	}
	return vt
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		zero any
		raw  string
		want any
		err  error
	}{
		{"int", int(0), "-42", int(-42), nil},
		{"int8-overflow", int8(0), "128", nil, errOverflow},
		{"int-format", int(0), "4x", nil, errFormat},
		{"uint", uint(0), "42", uint(42), nil},
		{"uint-plus", uint16(0), "+7", uint16(7), nil},
		{"uint-negative", uint32(0), "-80", nil, errOverflow},
		{"uint-negative-zero", uint32(0), "-0", uint32(0), nil},
		{"uint-huge-negative", uint64(0), "-99999999999999999999", nil, errOverflow},
		{"uint16-overflow", uint16(0), "65536", nil, errOverflow},
		{"uint-format", uint(0), "http://localhost/", nil, errFormat},
		{"float", float64(0), "1.25", float64(1.25), nil},
		{"float32-overflow", float32(0), "1e39", nil, errOverflow},
		{"float-format", float64(0), "one", nil, errFormat},
		{"bool", false, "true", true, nil},
		{"duration", time.Duration(0), "1m30s", 90 * time.Second, nil},
		{"duration-format", time.Duration(0), "soon", nil, errFormat},
		{"string", "", " -x ", " -x ", nil},
		{"text", netip.Addr{}, "127.0.0.1", netip.MustParseAddr("127.0.0.1"), nil},
		{"text-format", netip.Addr{}, "localhost", nil, errFormat},
		{"enum", Git, "SVN", SVN, nil},
		{"enum-format", Git, "svn", nil, errFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vt := mustType(t, tt.zero)
			v, err := convert(vt, tt.raw, OriginalCase)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("convert(%q) err = %v, want %v", tt.raw, err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("convert(%q): %v", tt.raw, err)
			}
			if got := v.Interface(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("convert(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestConvertDateTime(t *testing.T) {
	vt := mustType(t, time.Time{})
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2017-09-14", time.Date(2017, 9, 14, 0, 0, 0, 0, time.UTC)},
		{"2017/09/14", time.Date(2017, 9, 14, 0, 0, 0, 0, time.UTC)},
		{"2017-09-14 10:30", time.Date(2017, 9, 14, 10, 30, 0, 0, time.UTC)},
		{"2017-09-14T10:30:15", time.Date(2017, 9, 14, 10, 30, 15, 0, time.UTC)},
		{"2017-09-14T10:30:15+09:00", time.Date(2017, 9, 14, 1, 30, 15, 0, time.UTC)},
		{"2017-09-14T10:30:15.5Z", time.Date(2017, 9, 14, 10, 30, 15, 5e8, time.UTC)},
	}
	for _, tt := range tests {
		v, err := convert(vt, tt.raw, OriginalCase)
		if err != nil {
			t.Errorf("convert(%q): %v", tt.raw, err)
			continue
		}
		if got := v.Interface().(time.Time); !got.Equal(tt.want) {
			t.Errorf("convert(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
	if _, err := convert(vt, "Today", OriginalCase); !errors.Is(err, errFormat) {
		t.Errorf("convert(Today) err = %v, want errFormat", err)
	}
}

func TestConvertDecimal(t *testing.T) {
	vt := mustType(t, decimal.Decimal{})
	v, err := convert(vt, "123456789012345678901234567890.5", OriginalCase)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := decimal.RequireFromString("123456789012345678901234567890.5")
	if got := v.Interface().(decimal.Decimal); !got.Equal(want) {
		t.Fatalf("convert = %v, want %v", got, want)
	}
	if _, err := convert(vt, "Hello", OriginalCase); !errors.Is(err, errFormat) {
		t.Fatalf("convert(Hello) err = %v, want errFormat", err)
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		zero any
		kind Kind
	}{
		{false, KindBool},
		{int64(0), KindInt},
		{uint8(0), KindUint},
		{float32(0), KindFloat},
		{decimal.Decimal{}, KindDecimal},
		{time.Time{}, KindDateTime},
		{time.Duration(0), KindDuration},
		{"", KindString},
		{netip.Prefix{}, KindText},
		{SVN, KindEnum},
		{AuthCookie, KindEnum},
	}
	for _, tt := range tests {
		if got := mustType(t, tt.zero).Kind; got != tt.kind {
			t.Errorf("TypeOf(%T).Kind = %v, want %v", tt.zero, got, tt.kind)
		}
	}
	for _, bad := range []any{[]string(nil), map[string]int(nil), struct{}{}, complex64(0)} {
		if _, err := TypeOf(reflect.TypeOf(bad)); !errors.Is(err, ErrInvalidSchema) {
			t.Errorf("TypeOf(%T) err = %v, want ErrInvalidSchema", bad, err)
		}
	}
}

type tinyEnum uint8

func (tinyEnum) EnumNames() []string {
	names := make([]string, 300)
	for i := range names {
		names[i] = string(rune('a'+i%26)) + string(rune('0'+i/26))
	}
	return names
}

type floatEnum float64

func (floatEnum) EnumNames() []string { return []string{"A"} }

func TestEnumTypeErrors(t *testing.T) {
	if _, err := EnumType(); !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("EnumType() err = %v, want ErrInvalidSchema", err)
	}
	if _, err := EnumType("a", "a"); !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("EnumType(a, a) err = %v, want ErrInvalidSchema", err)
	}
	if _, err := EnumType("a", ""); !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("EnumType(a, \"\") err = %v, want ErrInvalidSchema", err)
	}
	if _, err := TypeOf(reflect.TypeFor[tinyEnum]()); !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("TypeOf(tinyEnum) err = %v, want ErrInvalidSchema", err)
	}
	if _, err := TypeOf(reflect.TypeFor[floatEnum]()); !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("TypeOf(floatEnum) err = %v, want ErrInvalidSchema", err)
	}
}

func TestKindType(t *testing.T) {
	vt, err := KindType(KindUint)
	if err != nil {
		t.Fatalf("KindType: %v", err)
	}
	if vt.GoType != reflect.TypeFor[uint64]() {
		t.Fatalf("GoType = %v, want uint64", vt.GoType)
	}
	if _, err := KindType(KindEnum); !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("KindType(KindEnum) err = %v, want ErrInvalidSchema", err)
	}
}
