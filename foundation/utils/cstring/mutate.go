// File: mutate.go
// Title: In-place Buffer Mutations
// Description: Assign, insert, erase, replace, append, push/pop, resize,
//              trim, fix, reverse, swap, copy and substring, all expressed
//              through growTo and element moves.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package cstring

import (
	"slices"
	"unsafe"
)

// overlaps reports whether a and b share backing memory.
func overlaps[T Element](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	var zero T
	size := unsafe.Sizeof(zero)
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b))*size && b0 < a0+uintptr(len(a))*size
}

// Assign replaces the content with src. Existing storage is reused when its
// capacity is at least len(src), otherwise it grows to exactly len(src).
// Assigning to an absent buffer allocates it.
func (b *Buffer[T]) Assign(src []T) {
	if b == nil {
		return
	}
	if b.data == nil || b.Capacity() < len(src) {
		b.size = 0
		b.growTo(len(src))
	}
	copy(b.data, src)
	b.size = len(src)
	b.data[b.size] = 0
}

// Insert copies src in front of position pos. pos must be within
// [0, Size()]; out of range positions and absent buffers are left alone.
func (b *Buffer[T]) Insert(pos int, src []T) {
	if b.IsAbsent() || pos < 0 || pos > b.size || len(src) == 0 {
		return
	}
	if overlaps(src, b.data) {
		src = slices.Clone(src)
	}

	count := len(src)
	need := b.size + count
	if need > b.Capacity() {
		b.growTo(need)
	}
	copy(b.data[pos+count:need], b.data[pos:b.size])
	copy(b.data[pos:], src)
	b.size = need
	b.data[b.size] = 0
}

// Erase removes up to n elements starting at pos. The count is clamped to
// the remaining length; pos must be below Size().
func (b *Buffer[T]) Erase(pos, n int) {
	if b.IsAbsent() || pos < 0 || pos >= b.size || n <= 0 {
		return
	}
	n = min(n, b.size-pos)
	copy(b.data[pos:], b.data[pos+n:b.size])
	b.size -= n
	b.data[b.size] = 0
}

// Replace substitutes up to n elements at pos with src. It behaves as
// Erase(pos, n) followed by Insert(pos, src).
func (b *Buffer[T]) Replace(pos, n int, src []T) {
	if b.IsAbsent() {
		return
	}
	if overlaps(src, b.data) {
		src = slices.Clone(src)
	}
	b.Erase(pos, n)
	b.Insert(pos, src)
}

// Append adds src at the end.
func (b *Buffer[T]) Append(src []T) {
	b.Insert(b.Size(), src)
}

// PushBack adds a single element at the end.
func (b *Buffer[T]) PushBack(value T) {
	if b.IsAbsent() {
		return
	}
	if b.size == b.Capacity() {
		b.growTo(b.size + 1)
	}
	b.data[b.size] = value
	b.size++
	b.data[b.size] = 0
}

// PopBack removes the last element.
func (b *Buffer[T]) PopBack() {
	if b.IsAbsent() || b.size == 0 {
		return
	}
	b.size--
	b.data[b.size] = 0
}

// Resize sets the size to n. New positions are filled with fill; shrinking
// keeps the capacity.
func (b *Buffer[T]) Resize(n int, fill T) {
	if b.IsAbsent() || n < 0 {
		return
	}
	if n > b.size {
		if n > b.Capacity() {
			b.growTo(n)
		}
		for i := b.size; i < n; i++ {
			b.data[i] = fill
		}
	}
	b.size = n
	b.data[n] = 0
}

// Trim removes the leading and/or trailing run of value. The remainder is
// moved to offset 0.
func (b *Buffer[T]) Trim(value T, side Side) {
	if b.IsAbsent() || b.size == 0 {
		return
	}
	start, end := 0, b.size
	if side&Head != 0 {
		for start < end && b.data[start] == value {
			start++
		}
	}
	if side&Tail != 0 {
		for end > start && b.data[end-1] == value {
			end--
		}
	}
	if start > 0 {
		copy(b.data, b.data[start:end])
	}
	b.size = end - start
	b.data[b.size] = 0
}

// headShare splits n between head and tail for side; with Both the odd
// element goes to the head.
func headShare(n int, side Side) int {
	switch side & Both {
	case Head:
		return n
	case Tail:
		return 0
	default:
		return (n + 1) / 2
	}
}

// Fix forces the size to exactly length. Longer content is cut at the
// selected side(s), shorter content is padded with fill there.
func (b *Buffer[T]) Fix(length int, fill T, side Side) {
	if b.IsAbsent() || length < 0 || side&Both == 0 {
		return
	}

	switch {
	case b.size > length:
		head := headShare(b.size-length, side)
		copy(b.data, b.data[head:head+length])

	case b.size < length:
		head := headShare(length-b.size, side)
		if length > b.Capacity() {
			b.growTo(length)
		}
		copy(b.data[head:head+b.size], b.data[:b.size])
		for i := 0; i < head; i++ {
			b.data[i] = fill
		}
		for i := head + b.size; i < length; i++ {
			b.data[i] = fill
		}
	}

	b.size = length
	b.data[b.size] = 0
}

// Reverse reverses the element order in place.
func (b *Buffer[T]) Reverse() {
	if b.Size() <= 1 {
		return
	}
	slices.Reverse(b.data[:b.size])
}

// Swap exchanges the storage of a and b. Either may be absent.
func Swap[T Element](a, b *Buffer[T]) {
	if a == nil || b == nil {
		return
	}
	*a, *b = *b, *a
}

// Copy makes to a deep copy of from. to is reallocated only when its
// capacity is too small. Copying an absent buffer clears to.
func Copy[T Element](from, to *Buffer[T]) {
	if to == nil || from == to {
		return
	}
	if from.IsAbsent() {
		to.Clear()
		return
	}
	to.Assign(from.Data())
}

// Substring writes up to n elements of from starting at pos into to. A
// negative n takes the rest of from. pos == Size() yields an allocated empty
// buffer; pos beyond that or an absent from clears to.
func Substring[T Element](from *Buffer[T], pos, n int, to *Buffer[T]) {
	if to == nil {
		return
	}
	if from.IsAbsent() || pos < 0 || pos > from.size {
		to.Clear()
		return
	}

	count := from.size - pos
	if n >= 0 && n < count {
		count = n
	}
	to.Assign(from.data[pos : pos+count])
}
