// File: search.go
// Title: Substring and Character-Class Search
// Description: Rolling-hash substring search in both directions, charmask
//              accelerated character-class search, lexicographic compare
//              and the predicates derived from them.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package cstring

import "slices"

// NotFound is returned by the search operations when there is no match.
const NotFound = -1

// Find returns the lowest index >= pos where needle starts, or NotFound.
// An empty needle never matches.
func (b *Buffer[T]) Find(pos int, needle []T) int {
	return find(b.Data(), pos, needle)
}

// RFind returns the highest index <= pos where needle starts, or NotFound.
// pos == -1 searches the whole buffer.
func (b *Buffer[T]) RFind(pos int, needle []T) int {
	return rfind(b.Data(), pos, needle)
}

// find scans forward with a shift-add fingerprint of the window. The
// fingerprint only filters candidates; every hit is verified.
func find[T Element](hay []T, pos int, needle []T) int {
	n, m := len(hay), len(needle)
	if m == 0 || pos < 0 || pos > n || m > n-pos {
		return NotFound
	}
	if m == n-pos {
		if slices.Equal(hay[pos:], needle) {
			return pos
		}
		return NotFound
	}
	if m == 1 {
		if i := slices.Index(hay[pos:], needle[0]); i >= 0 {
			return pos + i
		}
		return NotFound
	}

	var want, hash uint64
	for i := 0; i < m; i++ {
		want = want<<1 + code(needle[i])
		hash = hash<<1 + code(hay[pos+i])
	}

	top := uint(m - 1)
	for i := pos; ; i++ {
		if hash == want && slices.Equal(hay[i:i+m], needle) {
			return i
		}
		if i+m >= n {
			return NotFound
		}
		hash = (hash-code(hay[i])<<top)<<1 + code(hay[i+m])
	}
}

// rfind mirrors find. The window fingerprint weights the leftmost element
// lowest so that sliding left drops the rightmost element.
func rfind[T Element](hay []T, pos int, needle []T) int {
	n, m := len(hay), len(needle)
	if m == 0 || m > n || pos < -1 {
		return NotFound
	}
	start := n - m
	if pos != -1 && pos < start {
		start = pos
	}
	if m == 1 {
		for i := start; i >= 0; i-- {
			if hay[i] == needle[0] {
				return i
			}
		}
		return NotFound
	}

	var want, hash uint64
	for i := m - 1; i >= 0; i-- {
		want = want<<1 + code(needle[i])
		hash = hash<<1 + code(hay[start+i])
	}

	top := uint(m - 1)
	for i := start; ; i-- {
		if hash == want && slices.Equal(hay[i:i+m], needle) {
			return i
		}
		if i == 0 {
			return NotFound
		}
		hash = (hash-code(hay[i+m-1])<<top)<<1 + code(hay[i-1])
	}
}

// charset answers membership queries for a small set of elements. The
// charmask is the inverted OR of all members: an element with any bit of the
// charmask set cannot be a member.
type charset[T Element] struct {
	set      []T
	charmask uint64
}

func newCharset[T Element](set []T) charset[T] {
	var union uint64
	for _, c := range set {
		union |= code(c)
	}
	return charset[T]{set: set, charmask: ^union & mask[T]()}
}

func (cs charset[T]) contains(c T) bool {
	switch len(cs.set) {
	case 0:
		return false
	case 1:
		return c == cs.set[0]
	}
	if code(c)&cs.charmask != 0 {
		return false
	}
	return slices.Contains(cs.set, c)
}

// FindFirstOf returns the first index >= pos holding a member of set.
func (b *Buffer[T]) FindFirstOf(pos int, set []T) int {
	return b.scanForward(pos, newCharset(set), true)
}

// FindFirstNotOf returns the first index >= pos holding a non-member of set.
func (b *Buffer[T]) FindFirstNotOf(pos int, set []T) int {
	return b.scanForward(pos, newCharset(set), false)
}

// FindLastOf returns the last index <= pos holding a member of set. pos ==
// -1 starts at the end.
func (b *Buffer[T]) FindLastOf(pos int, set []T) int {
	return b.scanBackward(pos, newCharset(set), true)
}

// FindLastNotOf returns the last index <= pos holding a non-member of set.
func (b *Buffer[T]) FindLastNotOf(pos int, set []T) int {
	return b.scanBackward(pos, newCharset(set), false)
}

func (b *Buffer[T]) scanForward(pos int, cs charset[T], member bool) int {
	data := b.Data()
	if pos < 0 {
		return NotFound
	}
	for i := pos; i < len(data); i++ {
		if cs.contains(data[i]) == member {
			return i
		}
	}
	return NotFound
}

func (b *Buffer[T]) scanBackward(pos int, cs charset[T], member bool) int {
	data := b.Data()
	if pos < -1 {
		return NotFound
	}
	if pos == -1 || pos >= len(data) {
		pos = len(data) - 1
	}
	for i := pos; i >= 0; i-- {
		if cs.contains(data[i]) == member {
			return i
		}
	}
	return NotFound
}

// Compare orders a and b lexicographically by unsigned code value. ok is
// false when either operand is absent. When one is a prefix of the other the
// terminator decides, so the shorter buffer orders first.
func Compare[T Element](a, b *Buffer[T]) (result int, ok bool) {
	if a.IsAbsent() || b.IsAbsent() {
		return 0, false
	}
	k := min(a.size, b.size)
	for i := 0; i <= k; i++ {
		ca, cb := code(a.data[i]), code(b.data[i])
		switch {
		case ca < cb:
			return -1, true
		case ca > cb:
			return 1, true
		}
	}
	// Embedded zero elements can tie with the terminator.
	switch {
	case a.size < b.size:
		return -1, true
	case a.size > b.size:
		return 1, true
	}
	return 0, true
}

// CompareInto stores the comparison of a and b in *out. *out is left
// untouched when either operand is absent.
func CompareInto[T Element](a, b *Buffer[T], out *int) {
	if r, ok := Compare(a, b); ok && out != nil {
		*out = r
	}
}

// Equal reports whether a and b are both allocated and hold the same content.
func Equal[T Element](a, b *Buffer[T]) bool {
	r, ok := Compare(a, b)
	return ok && r == 0
}

// StartsWith reports whether the content begins with prefix. Empty prefixes
// and absent buffers report false.
func (b *Buffer[T]) StartsWith(prefix []T) bool {
	data := b.Data()
	if len(prefix) == 0 || len(prefix) > len(data) {
		return false
	}
	return slices.Equal(data[:len(prefix)], prefix)
}

// EndsWith reports whether the content ends with suffix.
func (b *Buffer[T]) EndsWith(suffix []T) bool {
	data := b.Data()
	if len(suffix) == 0 || len(suffix) > len(data) {
		return false
	}
	return slices.Equal(data[len(data)-len(suffix):], suffix)
}

// Contains reports whether needle occurs anywhere in the content.
func (b *Buffer[T]) Contains(needle []T) bool {
	return b.Find(0, needle) != NotFound
}

// Count returns the number of non-overlapping occurrences of needle.
func (b *Buffer[T]) Count(needle []T) int {
	n := 0
	for pos := b.Find(0, needle); pos != NotFound; pos = b.Find(pos+len(needle), needle) {
		n++
	}
	return n
}
