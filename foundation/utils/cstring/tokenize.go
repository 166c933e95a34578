// File: tokenize.go
// Title: Split and Join
// Description: Tokenizes a buffer on a delimiter into an array and joins an
//              array back into a single buffer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package cstring

// Unlimited disables the token limit of Split.
const Unlimited = -1

// Split cuts str at every occurrence of delim. At most maxTokens tokens are
// produced, the last one holding the unsplit remainder; a negative maxTokens
// means no limit. Adjacent delimiters yield empty tokens, and so does a
// delimiter at either end. An empty delimiter, maxTokens == 0 or an absent
// str yield an allocated empty array.
func Split[T Element](str *Buffer[T], maxTokens int, delim []T) *Array[T] {
	out := &Array[T]{}
	out.Reserve(0)
	if str.IsAbsent() || maxTokens == 0 || len(delim) == 0 {
		return out
	}

	data := str.Data()
	start := 0
	for maxTokens < 0 || out.size < maxTokens-1 {
		idx := find(data, start, delim)
		if idx == NotFound {
			break
		}
		out.PushBack(data[start:idx])
		start = idx + len(delim)
	}
	out.PushBack(data[start:])
	return out
}

// Join concatenates the elements of arr with sep between neighbours. The
// result is allocated once with the exact total size. An absent or empty
// array yields an allocated empty buffer.
func Join[T Element](arr *Array[T], sep []T) *Buffer[T] {
	total := 0
	for i, b := range arr.All() {
		if i > 0 {
			total += len(sep)
		}
		total += b.Size()
	}

	out := &Buffer[T]{}
	out.Reserve(total)
	for i, b := range arr.All() {
		if i > 0 {
			out.Append(sep)
		}
		out.Append(b.Data())
	}
	return out
}
