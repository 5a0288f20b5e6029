// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

// Parse fills a new T from the switches in *args. On success *args holds
// only the tokens no option consumed. A parse failure is returned as an
// *InvalidSwitchError; a T the parser cannot describe yields an error
// wrapping ErrInvalidSchema.
func Parse[T any](args *[]string, opts ...Option) (*T, error) {
	s, err := SchemaFor[T]()
	if err != nil {
		return nil, err
	}
	return s.Parse(args, opts...)
}

// MustParse is like Parse but panics on error.
func MustParse[T any](args *[]string, opts ...Option) *T {
	o, err := Parse[T](args, opts...)
	if err != nil {
		panic(err)
	}
	return o
}

// TryParse is like Parse but reports a failure as a *ParseError and a false
// result. Exactly one of the returned options and error is non-nil.
//
// TryParse panics if T is not a valid option struct.
func TryParse[T any](args *[]string, opts ...Option) (*T, *ParseError, bool) {
	s, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	res, perr := s.Scan(derefArgs(args), opts...)
	if perr != nil {
		return nil, perr, false
	}
	if args != nil {
		*args = res.Args
	}
	return res.Options, nil, true
}

// ParseArgs is like Parse but leaves args untouched and returns the
// unmatched tokens in the result.
func ParseArgs[T any](args []string, opts ...Option) (*Result[T], error) {
	s, err := SchemaFor[T]()
	if err != nil {
		return nil, err
	}
	res, perr := s.Scan(args, opts...)
	if perr != nil {
		return nil, &InvalidSwitchError{ParseError: perr}
	}
	return res, nil
}
