// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package switchparse

import (
	"reflect"

	"tailscale.com/syncs"
)

// schemaCache holds one cachedSchema[T] per struct type T.
var schemaCache syncs.Map[reflect.Type, any]

type cachedSchema[T any] struct {
	schema *Schema[T]
	err    error
}

// SchemaFor returns the schema derived from the exported fields of struct
// type T. The schema is built on first use and shared afterwards.
func SchemaFor[T any]() (*Schema[T], error) {
	v, _ := schemaCache.LoadOrInit(reflect.TypeFor[T](), func() any {
		fields, err := structFields[T]()
		if err != nil {
			return cachedSchema[T]{err: err}
		}
		s, err := NewSchema(fields...)
		return cachedSchema[T]{schema: s, err: err}
	})
	c := v.(cachedSchema[T])
	return c.schema, c.err
}
