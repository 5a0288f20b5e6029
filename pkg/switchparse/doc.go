// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package switchparse fills an options struct from command-line switches.
//
// Every exported field of the struct is an option. Its long name is the
// lower-cased field name ("--port" for Port) and its short name is the
// lower-cased first letter ("-p"). When two fields start with the same
// letter neither gets a short name. Bool fields are switches that take no
// parameter; every other field consumes the next token:
//
//	type Options struct {
//		Recursive bool
//		Port      uint16 `default:"8080"`
//	}
//
//	args := os.Args[1:]
//	opts, err := switchparse.Parse[Options](&args)
//
// Tokens that are not options are left in args in their original order.
// Parse stops at the first problem and leaves args unchanged; the error is
// an *InvalidSwitchError whose ParseError tells what went wrong.
package switchparse
