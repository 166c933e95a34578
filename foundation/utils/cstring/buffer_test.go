// File: buffer_test.go
// Title: Buffer Core Tests
// Description: Lifecycle, capacity and accessor tests for Buffer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package cstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
)

type sized interface {
	Capacity() int
	Size() int
	IsAbsent() bool
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		buf      sized
	}{
		{"byte", 40, New[byte]()},
		{"int8", 40, New[int8]()},
		{"uint16", 20, New[uint16]()},
		{"rune", 10, New[rune]()},
		{"uint32", 10, New[uint32]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.buf.IsAbsent())
			assert.Equal(t, 0, tt.buf.Size())
			assert.Equal(t, tt.capacity, tt.buf.Capacity())
		})
	}
}

func testAbsent[T Element](t *testing.T) {
	var b Buffer[T]
	assert.True(t, b.IsAbsent())
	assert.True(t, b.Empty())
	assert.Equal(t, 0, b.Size())
	assert.Equal(t, 0, b.Length())
	assert.Equal(t, 0, b.Capacity())
	assert.Nil(t, b.Data())
	assert.Nil(t, b.Raw())
	assert.Nil(t, b.Terminated())
	assert.NoError(t, b.Check())

	_, ok := b.At(0)
	assert.False(t, ok)
	_, ok = b.Front()
	assert.False(t, ok)
	_, ok = b.Back()
	assert.False(t, ok)

	b.ShrinkToFit()
	b.Clear()
	b.UnsafeDeclareSize(3)
	assert.True(t, b.IsAbsent())

	var nilBuf *Buffer[T]
	assert.True(t, nilBuf.IsAbsent())
	assert.Equal(t, 0, nilBuf.Size())
	assert.Equal(t, "", nilBuf.String())
}

func TestAbsent(t *testing.T) {
	units(t, testAbsent[byte], testAbsent[uint16], testAbsent[rune])
}

func testReserve[T Element](t *testing.T) {
	var b Buffer[T]
	b.Reserve(10)
	assert.Equal(t, 0, b.Size())
	assert.Equal(t, 10, b.Capacity())
	assert.Equal(t, T(0), b.Terminated()[0])

	b.Reserve(5)
	assert.Equal(t, 10, b.Capacity(), "reserve never shrinks")

	b.Assign(enc[T]("abc"))
	b.Reserve(12)
	assert.Equal(t, 12, b.Capacity())
	assertContent(t, &b, "abc")

	var zero Buffer[T]
	zero.Reserve(0)
	assert.False(t, zero.IsAbsent())
	assert.Equal(t, 0, zero.Size())
	assert.Equal(t, 0, zero.Capacity())
}

func TestReserve(t *testing.T) {
	units(t, testReserve[byte], testReserve[uint16], testReserve[rune])
}

func testShrinkToFit[T Element](t *testing.T) {
	b := FromString[T]("abcde")
	b.PopBack()
	assert.Equal(t, 5, b.Capacity())
	assert.Equal(t, 4, b.Size())

	b.ShrinkToFit()
	assert.Equal(t, 4, b.Capacity())
	assertContent(t, b, "abcd")
}

func TestShrinkToFit(t *testing.T) {
	units(t, testShrinkToFit[byte], testShrinkToFit[uint16], testShrinkToFit[rune])
}

func testAssignClear[T Element](t *testing.T) {
	lit := enc[T]("abcde")
	var b Buffer[T]

	b.Assign(lit[1:4])
	assert.Equal(t, 3, b.Capacity())
	assertContent(t, &b, "bcd")

	b.Assign(lit)
	assert.Equal(t, 5, b.Capacity())
	assertContent(t, &b, "abcde")

	b.Assign(lit[1:4])
	assert.Equal(t, 5, b.Capacity(), "storage is reused")
	assertContent(t, &b, "bcd")

	b.Clear()
	assert.Equal(t, 5, b.Capacity())
	assert.True(t, b.Empty())
	assert.Equal(t, T(0), b.Terminated()[0])

	var empty Buffer[T]
	empty.Assign(nil)
	assert.False(t, empty.IsAbsent())
	assertContent(t, &empty, "")

	b.Free()
	assert.True(t, b.IsAbsent())
}

func TestAssignClear(t *testing.T) {
	units(t, testAssignClear[byte], testAssignClear[uint16], testAssignClear[rune])
}

func TestAssignFromOwnStorage(t *testing.T) {
	b := FromString[byte]("abcdef")
	b.Assign(b.Data()[2:5])
	assertContent(t, b, "cde")
	assert.Equal(t, 6, b.Capacity())
}

func testAccessors[T Element](t *testing.T) {
	b := FromString[T]("abcde")

	c, ok := b.At(0)
	assert.True(t, ok)
	assert.Equal(t, T('a'), c)
	c, ok = b.At(4)
	assert.True(t, ok)
	assert.Equal(t, T('e'), c)
	_, ok = b.At(5)
	assert.False(t, ok)
	_, ok = b.At(-1)
	assert.False(t, ok)

	front, _ := b.Front()
	back, _ := b.Back()
	assert.Equal(t, T('a'), front)
	assert.Equal(t, T('e'), back)

	i := 0
	for pos, c := range b.All() {
		assert.Equal(t, i, pos)
		assert.Equal(t, T('a'+i), c)
		i++
	}
	assert.Equal(t, 5, i)

	empty := New[T]()
	_, ok = empty.At(0)
	assert.False(t, ok)
	_, ok = empty.Front()
	assert.False(t, ok)
	_, ok = empty.Back()
	assert.False(t, ok)
	for range empty.All() {
		t.Fatal("empty buffer yielded an element")
	}
}

func TestAccessors(t *testing.T) {
	units(t, testAccessors[byte], testAccessors[uint16], testAccessors[rune])
}

func TestUnsafeDeclareSize(t *testing.T) {
	b := &Buffer[byte]{}
	b.Reserve(8)
	n := copy(b.Raw(), "hello")
	b.UnsafeDeclareSize(n)
	assertContent(t, b, "hello")

	b.UnsafeDeclareSize(100)
	assert.Equal(t, 8, b.Size(), "clamped to capacity")
	require.NoError(t, b.Check())

	b.UnsafeDeclareSize(-3)
	assertContent(t, b, "")
}

func TestCheck(t *testing.T) {
	b := FromString[byte]("abc")
	require.NoError(t, b.Check())

	b.data[b.size] = 'x'
	err := b.Check()
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvariantViolated))

	b.data[b.size] = 0
	b.size = 10
	assert.True(t, mdwerror.HasCode(b.Check(), mdwerror.CodeInvariantViolated))
}

func TestAllocationFailurePanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, mdwerror.HasCode(err, mdwerror.CodeAllocationFailed))
	}()
	var b Buffer[uint32]
	b.Reserve(int(^uint(0) >> 1))
}

func TestClone(t *testing.T) {
	b := New[uint16]()
	b.Append(enc[uint16]("xyz"))
	c := b.Clone()
	assertContent(t, c, "xyz")
	assert.Equal(t, 3, c.Capacity())

	c.PushBack('!')
	assertContent(t, b, "xyz")

	var absent Buffer[uint16]
	assert.True(t, absent.Clone().IsAbsent())
}
