// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

import "log/slog"

// Config holds the settings of a single parse call.
type Config struct {
	// EnumStyle selects the accepted enum spellings.
	EnumStyle EnumStyle
	// Logger receives debug records about matching. Nil discards them.
	Logger *slog.Logger
}

// Option configures a parse call.
type Option func(*Config)

// WithEnumStyle sets the accepted enum spellings for the call.
func WithEnumStyle(style EnumStyle) Option {
	return func(c *Config) { c.EnumStyle = style }
}

// WithLogger routes debug records for the call to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

var discardLogger = slog.New(slog.DiscardHandler)

// NewConfig returns a fresh Config with opts applied over the defaults.
func NewConfig(opts ...Option) Config {
	c := Config{EnumStyle: DefaultEnumStyle}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return discardLogger
	}
	return c.Logger
}
