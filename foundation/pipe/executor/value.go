// File: value.go
// Title: Pipeline Values
// Description: The value flowing between stages: either one buffer or an
//              array of buffers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package executor

import (
	"strings"

	"github.com/msto63/cstring/foundation/pipe/registry"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

// Value holds either a buffer or an array. The zero Value is an absent
// buffer.
type Value[T cstring.Element] struct {
	buffer *cstring.Buffer[T]
	array  *cstring.Array[T]
}

// BufferValue wraps a buffer
func BufferValue[T cstring.Element](b *cstring.Buffer[T]) Value[T] {
	return Value[T]{buffer: b}
}

// ArrayValue wraps an array
func ArrayValue[T cstring.Element](a *cstring.Array[T]) Value[T] {
	return Value[T]{array: a}
}

// Kind reports whether the value is a buffer or an array
func (v Value[T]) Kind() registry.Kind {
	if v.array != nil {
		return registry.KindArray
	}
	return registry.KindBuffer
}

// Buffer returns the buffer, or nil for arrays
func (v Value[T]) Buffer() *cstring.Buffer[T] { return v.buffer }

// Array returns the array, or nil for buffers
func (v Value[T]) Array() *cstring.Array[T] { return v.array }

// Strings returns the content as Go strings, one per array element
func (v Value[T]) Strings() []string {
	if v.array != nil {
		return v.array.Strings()
	}
	return []string{v.buffer.String()}
}

// String renders a buffer as its content and an array one element per line
func (v Value[T]) String() string {
	return strings.Join(v.Strings(), "\n")
}

// Free releases the storage of the value
func (v Value[T]) Free() {
	if v.array != nil {
		v.array.Free()
		return
	}
	v.buffer.Free()
}
