// File: array.go
// Title: Array of Buffers
// Description: A growable array of owned buffers following the same exact
//              growth discipline as Buffer. Every element is deep-copied on
//              the way in and freed on the way out.
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

// Array is a growable sequence of buffers terminated by an absent slot. The
// zero value is absent. The array owns its slots and each slot owns its
// content; buffers are never shared between arrays.
type Array[T Element] struct {
	slots []Buffer[T]
	size  int
}

// NewArray returns an allocated array holding copies of items.
func NewArray[T Element](items ...[]T) *Array[T] {
	a := &Array[T]{}
	a.Reserve(len(items))
	for _, item := range items {
		a.PushBack(item)
	}
	return a
}

// ArrayOf returns an allocated array of the strings encoded as T.
func ArrayOf[T Element](items ...string) *Array[T] {
	a := &Array[T]{}
	a.Reserve(len(items))
	for _, s := range items {
		a.PushBack(Encode[T](s))
	}
	return a
}

func allocateSlots[T Element](op string, n int) []Buffer[T] {
	var zero Buffer[T]
	if n < 0 || uint64(n) >= math.MaxInt/uint64(unsafe.Sizeof(zero)) {
		panic(mdwerrors.CstringAllocationFailed(op, n))
	}
	return make([]Buffer[T], n+1)
}

// IsAbsent reports whether the array has no storage.
func (a *Array[T]) IsAbsent() bool {
	return a == nil || a.slots == nil
}

// growTo reallocates slot storage to exactly n slots, moving the handles.
func (a *Array[T]) growTo(n int) {
	slots := allocateSlots[T]("Array.growTo", n)
	for i := n; i < a.size; i++ {
		a.slots[i].Free()
	}
	if a.size > n {
		a.size = n
	}
	if a.slots != nil {
		copy(slots, a.slots[:a.size])
	}
	a.slots = slots
}

// Reserve ensures the capacity is at least n, allocating an absent array.
func (a *Array[T]) Reserve(n int) {
	if a == nil || n < 0 {
		return
	}
	if a.slots == nil || a.Capacity() < n {
		a.growTo(n)
	}
}

// Capacity returns the number of slots without the terminator slot.
func (a *Array[T]) Capacity() int {
	if a.IsAbsent() {
		return 0
	}
	return len(a.slots) - 1
}

// Size returns the number of elements.
func (a *Array[T]) Size() int {
	if a.IsAbsent() {
		return 0
	}
	return a.size
}

// Empty reports whether the array has no elements.
func (a *Array[T]) Empty() bool { return a.Size() == 0 }

// ShrinkToFit reduces the capacity to the size.
func (a *Array[T]) ShrinkToFit() {
	if a.IsAbsent() || a.Capacity() == a.size {
		return
	}
	a.growTo(a.size)
}

// Clear frees every element and sets the size to zero.
func (a *Array[T]) Clear() {
	if a.IsAbsent() {
		return
	}
	for i := 0; i < a.size; i++ {
		a.slots[i].Free()
	}
	a.size = 0
}

// Free releases every element and then the slot storage.
func (a *Array[T]) Free() {
	if a == nil {
		return
	}
	a.Clear()
	a.slots = nil
}

// At returns the element at pos, or nil when out of range. The buffer stays
// owned by the array and may be mutated in place.
func (a *Array[T]) At(pos int) *Buffer[T] {
	if pos < 0 || pos >= a.Size() {
		return nil
	}
	return &a.slots[pos]
}

// Front returns the first element or nil.
func (a *Array[T]) Front() *Buffer[T] { return a.At(0) }

// Back returns the last element or nil.
func (a *Array[T]) Back() *Buffer[T] { return a.At(a.Size() - 1) }

// All iterates over the elements in order.
func (a *Array[T]) All() iter.Seq2[int, *Buffer[T]] {
	return func(yield func(int, *Buffer[T]) bool) {
		for i := 0; i < a.Size(); i++ {
			if !yield(i, &a.slots[i]) {
				return
			}
		}
	}
}

// Strings decodes every element.
func (a *Array[T]) Strings() []string {
	out := make([]string, 0, a.Size())
	for _, b := range a.All() {
		out = append(out, b.String())
	}
	return out
}

// PushBack appends a copy of item. Absent arrays are left alone.
func (a *Array[T]) PushBack(item []T) {
	a.Insert(a.Size(), item)
}

// PushBackBuffer appends a deep copy of b.
func (a *Array[T]) PushBackBuffer(b *Buffer[T]) {
	a.PushBack(b.Data())
}

// PopBack frees and removes the last element.
func (a *Array[T]) PopBack() {
	if a.IsAbsent() || a.size == 0 {
		return
	}
	a.size--
	a.slots[a.size].Free()
}

// Insert copies items in front of position pos, which must be within
// [0, Size()].
func (a *Array[T]) Insert(pos int, items ...[]T) {
	if a.IsAbsent() || pos < 0 || pos > a.size || len(items) == 0 {
		return
	}
	count := len(items)
	need := a.size + count
	if need > a.Capacity() {
		a.growTo(need)
	}
	copy(a.slots[pos+count:need], a.slots[pos:a.size])
	for i, item := range items {
		a.slots[pos+i] = Buffer[T]{}
		a.slots[pos+i].Assign(item)
	}
	a.size = need
	a.slots[a.size] = Buffer[T]{}
}

// Erase frees and removes up to n elements starting at pos.
func (a *Array[T]) Erase(pos, n int) {
	if a.IsAbsent() || pos < 0 || pos >= a.size || n <= 0 {
		return
	}
	n = min(n, a.size-pos)
	for i := pos; i < pos+n; i++ {
		a.slots[i].Free()
	}
	copy(a.slots[pos:], a.slots[pos+n:a.size])
	for i := a.size - n; i < a.size; i++ {
		a.slots[i] = Buffer[T]{}
	}
	a.size -= n
}

// Resize sets the number of elements to n. New elements are copies of fill,
// removed elements are freed. Capacity is kept when shrinking.
func (a *Array[T]) Resize(n int, fill []T) {
	if a.IsAbsent() || n < 0 {
		return
	}
	if n < a.size {
		a.Erase(n, a.size-n)
		return
	}
	if n > a.Capacity() {
		a.growTo(n)
	}
	for i := a.size; i < n; i++ {
		a.slots[i] = Buffer[T]{}
		a.slots[i].Assign(fill)
	}
	a.size = n
	a.slots[n] = Buffer[T]{}
}

// Check verifies the array invariants and those of every element.
func (a *Array[T]) Check() error {
	if a.IsAbsent() {
		return nil
	}
	if a.size < 0 || a.size > a.Capacity() {
		return mdwerrors.CstringInvariantViolated("Array.Check", "size <= capacity", a.size, a.Capacity())
	}
	if !a.slots[a.size].IsAbsent() {
		return mdwerrors.CstringInvariantViolated("Array.Check", "absent terminator slot", a.size, a.Capacity())
	}
	for i := 0; i < a.size; i++ {
		if err := a.slots[i].Check(); err != nil {
			return err
		}
	}
	return nil
}

// CopyArray replaces the content of to with deep copies of the elements of
// from. Copying an absent array clears to.
func CopyArray[T Element](from, to *Array[T]) {
	SliceArray(from, 0, -1, to)
}

// SliceArray replaces the content of to with deep copies of up to n
// elements of from starting at pos; a negative n takes the rest. pos ==
// Size() yields an allocated empty array, an invalid pos clears to.
func SliceArray[T Element](from *Array[T], pos, n int, to *Array[T]) {
	if to == nil || from == to {
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

	to.Clear()
	to.Reserve(count)
	for i := pos; i < pos+count; i++ {
		to.PushBackBuffer(&from.slots[i])
	}
}

// SwapArrays exchanges the storage of a and b.
func SwapArrays[T Element](a, b *Array[T]) {
	if a == nil || b == nil {
		return
	}
	*a, *b = *b, *a
}
