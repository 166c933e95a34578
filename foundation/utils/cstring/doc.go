// File: doc.go
// Title: Package Documentation
// Description: Package cstring provides a manually managed, terminated,
//              growable buffer of fixed-width code units together with an
//              array of such buffers, in-place mutations, substring and
//              character-class search, split and join.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

/*
Package cstring provides a growable, zero-terminated buffer of code units.

A Buffer[T] stores elements of any 8, 16 or 32 bit integer type. Its
capacity grows only on request and always to the exact amount requested, so
capacity values are predictable:

	var s cstring.Buffer[byte]
	s.Assign([]byte("bcd"))          // size 3, capacity 3
	s.Insert(0, []byte("a"))         // "abcd", capacity 4
	s.Erase(1, 100)                  // "a", capacity 4

The zero value is absent. Absent buffers read like empty ones; mutators that
need storage ignore them, while Reserve, Assign, Copy and Substring allocate.

Search works on the content with explicit start positions and returns
NotFound (-1) when nothing matches:

	h := cstring.FromString[rune]("abcdefghabcdefgh")
	h.Find(7, []rune("gh"))          // 14
	h.RFind(13, []rune("gh"))        // 6

Compare reports ok == false when an operand is absent; CompareInto leaves its
output untouched in that case.

Array[T] owns a sequence of buffers. Split and Join convert between the two:

	parts := cstring.Split(cstring.FromString[byte]("a;;b"), cstring.Unlimited, []byte(";"))
	parts.Strings()                  // ["a" "" "b"]
	cstring.Join(parts, []byte(",")) // "a,,b"

Allocation failure panics with a CSTRING allocation error. Nothing in this
package is safe for concurrent use without external locking.
*/
package cstring
