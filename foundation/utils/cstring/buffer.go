// File: buffer.go
// Title: Growable Terminated Buffer
// Description: Buffer core: an owned run of code units followed by a zero
//              terminator, with size/capacity bookkeeping and the single
//              exact-fit growth primitive every mutator builds on.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package cstring

import (
	"iter"
	"math"
	"unsafe"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
)

// defaultInitBytes is the storage New reserves, expressed in bytes.
const defaultInitBytes = 40

// Buffer is a growable sequence of code units terminated by a zero element.
//
// The zero value is an absent buffer: no storage, size and capacity 0. Most
// read operations treat an absent buffer like an empty one, while mutators
// that need existing storage (Insert, Append, PushBack, Replace, Resize) do
// nothing on it. Reserve, Assign, Copy and Substring allocate on demand.
//
// When allocated, len(data) is capacity+1 and data[size] is always zero.
// Capacity only changes through an explicit growth request and is then set
// to exactly the requested value.
//
// A Buffer is not safe for concurrent use.
type Buffer[T Element] struct {
	data []T
	size int
}

// New returns an allocated, empty buffer with room for 40 bytes worth of
// elements.
func New[T Element]() *Buffer[T] {
	var zero T
	b := &Buffer[T]{}
	b.Reserve(defaultInitBytes / int(unsafe.Sizeof(zero)))
	return b
}

// Of returns an allocated buffer holding a copy of elems with capacity
// len(elems).
func Of[T Element](elems ...T) *Buffer[T] {
	b := &Buffer[T]{}
	b.Assign(elems)
	return b
}

// FromString returns an allocated buffer holding s encoded as T.
func FromString[T Element](s string) *Buffer[T] {
	return Of(Encode[T](s)...)
}

// allocate returns zeroed storage for n elements plus terminator. Requests
// the runtime cannot satisfy are fatal.
func allocate[T Element](op string, n int) []T {
	var zero T
	if n < 0 || uint64(n) >= math.MaxInt/uint64(unsafe.Sizeof(zero)) {
		panic(mdwerrors.CstringAllocationFailed(op, n))
	}
	return make([]T, n+1)
}

// IsAbsent reports whether the buffer has no storage.
func (b *Buffer[T]) IsAbsent() bool {
	return b == nil || b.data == nil
}

// growTo reallocates storage to hold exactly n elements. Content up to
// min(size, n) is preserved.
func (b *Buffer[T]) growTo(n int) {
	data := allocate[T]("growTo", n)
	if b.size > n {
		b.size = n
	}
	if b.data != nil {
		copy(data, b.data[:b.size])
	}
	data[b.size] = 0
	b.data = data
}

// Reserve ensures the capacity is at least n. An absent buffer becomes an
// allocated empty buffer even for n == 0.
func (b *Buffer[T]) Reserve(n int) {
	if b == nil || n < 0 {
		return
	}
	if b.data == nil || b.Capacity() < n {
		b.growTo(n)
	}
}

// Capacity returns the number of elements the storage can hold without the
// terminator.
func (b *Buffer[T]) Capacity() int {
	if b.IsAbsent() {
		return 0
	}
	return len(b.data) - 1
}

// Size returns the number of elements, terminator excluded.
func (b *Buffer[T]) Size() int {
	if b.IsAbsent() {
		return 0
	}
	return b.size
}

// Length is an alias of Size.
func (b *Buffer[T]) Length() int { return b.Size() }

// Empty reports whether the buffer holds no elements.
func (b *Buffer[T]) Empty() bool { return b.Size() == 0 }

// ShrinkToFit reduces the capacity to the size.
func (b *Buffer[T]) ShrinkToFit() {
	if b.IsAbsent() || b.Capacity() == b.size {
		return
	}
	b.growTo(b.size)
}

// Clear sets the size to zero without releasing storage.
func (b *Buffer[T]) Clear() {
	if b.IsAbsent() {
		return
	}
	b.size = 0
	b.data[0] = 0
}

// Free releases the storage and leaves the buffer absent.
func (b *Buffer[T]) Free() {
	if b == nil {
		return
	}
	b.data = nil
	b.size = 0
}

// UnsafeDeclareSize sets the size after content was written through Raw.
// The size is clamped to [0, Capacity()] and the terminator rewritten; the
// content itself is not inspected.
func (b *Buffer[T]) UnsafeDeclareSize(n int) {
	if b.IsAbsent() {
		return
	}
	b.size = max(0, min(n, b.Capacity()))
	b.data[b.size] = 0
}

// Raw returns the whole writable storage without the terminator slot, for
// foreign fill routines. Call UnsafeDeclareSize afterwards.
func (b *Buffer[T]) Raw() []T {
	if b.IsAbsent() {
		return nil
	}
	return b.data[:len(b.data)-1]
}

// Data returns a view of the content. The view is invalidated by the next
// mutation.
func (b *Buffer[T]) Data() []T {
	if b.IsAbsent() {
		return nil
	}
	return b.data[:b.size]
}

// Terminated returns the content including the terminator, or nil when
// absent.
func (b *Buffer[T]) Terminated() []T {
	if b.IsAbsent() {
		return nil
	}
	return b.data[:b.size+1]
}

// At returns the element at pos. ok is false when pos is out of range.
func (b *Buffer[T]) At(pos int) (T, bool) {
	if pos < 0 || pos >= b.Size() {
		var zero T
		return zero, false
	}
	return b.data[pos], true
}

// Front returns the first element.
func (b *Buffer[T]) Front() (T, bool) { return b.At(0) }

// Back returns the last element.
func (b *Buffer[T]) Back() (T, bool) { return b.At(b.Size() - 1) }

// All iterates over position and element pairs.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, c := range b.Data() {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Clone returns an independent copy with capacity equal to the size. The
// clone of an absent buffer is absent.
func (b *Buffer[T]) Clone() *Buffer[T] {
	out := &Buffer[T]{}
	Copy(b, out)
	return out
}

// String decodes the content for display.
func (b *Buffer[T]) String() string {
	return Decode(b.Data())
}

// Check verifies the size, capacity and terminator invariants.
func (b *Buffer[T]) Check() error {
	if b.IsAbsent() {
		if b != nil && b.size != 0 {
			return mdwerrors.CstringInvariantViolated("Check", "absent buffer with non-zero size", b.size, 0)
		}
		return nil
	}
	if b.size < 0 || b.size > b.Capacity() {
		return mdwerrors.CstringInvariantViolated("Check", "size <= capacity", b.size, b.Capacity())
	}
	if b.data[b.size] != 0 {
		return mdwerrors.CstringInvariantViolated("Check", "terminator at size", b.size, b.Capacity())
	}
	return nil
}
