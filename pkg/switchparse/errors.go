// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSchema is wrapped by every schema validation error.
var ErrInvalidSchema = errors.New("invalid option schema")

// ErrorKind is the closed set of parse failures. An ErrorKind is itself an
// error so callers can test for a kind with errors.Is:
//
//	if errors.Is(err, switchparse.MissingParameter) { ... }
type ErrorKind uint8

const (
	// UnknownOption means a switch-looking token matched no binding.
	UnknownOption ErrorKind = iota + 1
	// MissingParameter means a parameterized option was the last token.
	MissingParameter
	// InvalidParameterFormat means the parameter could not be converted.
	InvalidParameterFormat
	// ParameterOverflow means the parameter does not fit the field's type.
	ParameterOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownOption:
		return "UnknownOption"
	case MissingParameter:
		return "MissingParameter"
	case InvalidParameterFormat:
		return "InvalidParameterFormat"
	case ParameterOverflow:
		return "ParameterOverflow"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

func (k ErrorKind) Error() string { return k.String() }

// ParseError describes the first failure of a parse. It is immutable; the
// fields that do not apply to its kind are absent.
type ParseError struct {
	kind     ErrorKind
	option   string
	param    string
	hasParam bool
	expected *ValueType
	style    EnumStyle
}

func newUnknownOption(option string, style EnumStyle) *ParseError {
	return &ParseError{kind: UnknownOption, option: option, style: style}
}

func newMissingParameter(option string, vt ValueType, style EnumStyle) *ParseError {
	return &ParseError{kind: MissingParameter, option: option, expected: &vt, style: style}
}

func newParameterError(kind ErrorKind, option, param string, vt ValueType, style EnumStyle) *ParseError {
	return &ParseError{kind: kind, option: option, param: param, hasParam: true, expected: &vt, style: style}
}

// Kind returns the failure kind.
func (e *ParseError) Kind() ErrorKind { return e.kind }

// OptionName returns the option token as it appeared in the arguments.
func (e *ParseError) OptionName() string { return e.option }

// Parameter returns the raw parameter, if the failure involved one.
func (e *ParseError) Parameter() (string, bool) { return e.param, e.hasParam }

// ExpectedType returns the type the parameter should have had, if known.
func (e *ParseError) ExpectedType() (ValueType, bool) {
	if e.expected == nil {
		return ValueType{}, false
	}
	return *e.expected, true
}

// Style returns the enum style that was active when the error occurred.
func (e *ParseError) Style() EnumStyle { return e.style }

func (e *ParseError) Error() string { return e.Message(e.style) }

// Is reports whether target is e's ErrorKind.
func (e *ParseError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.kind
}

// Message renders e for display, listing enum spellings accepted under style.
func (e *ParseError) Message(style EnumStyle) string {
	switch e.kind {
	case UnknownOption:
		return fmt.Sprintf("%s is unknown switch/option.", e.option)
	case MissingParameter:
		return fmt.Sprintf("The parameter of %s is missing.", e.option)
	case InvalidParameterFormat:
		phrase := "a valid value"
		if e.expected != nil {
			phrase = typePhrase(*e.expected, style)
		}
		return fmt.Sprintf("The parameter of %s is not %s.", e.option, phrase)
	case ParameterOverflow:
		return fmt.Sprintf("The parameter of %s is too large or too small.", e.option)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.option)
}

func typePhrase(vt ValueType, style EnumStyle) string {
	switch vt.Kind {
	case KindUint:
		return "an unsigned integer"
	case KindInt:
		return "an integer"
	case KindFloat, KindDecimal:
		return "a number"
	case KindDateTime:
		return "a date / time"
	case KindDuration:
		return "a duration"
	case KindBool:
		return "a boolean"
	case KindString:
		return "a string"
	case KindEnum:
		return "the one of " + strings.Join(AcceptedSpellings(vt, style), ", ")
	}
	return "a valid " + vt.String()
}

// InvalidSwitchError is returned by Parse and raised by MustParse. It
// carries the ParseError and reads as its message.
type InvalidSwitchError struct {
	ParseError *ParseError
}

func (e *InvalidSwitchError) Error() string {
	return e.ParseError.Error()
}

func (e *InvalidSwitchError) Unwrap() error {
	return e.ParseError
}
