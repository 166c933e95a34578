// File: element.go
// Title: Element Types and Code Masking
// Description: Defines the fixed-width code units a Buffer can hold and the
//              width-masked unsigned view used by hashing, charmasks and
//              comparison.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package cstring

import (
	"strings"
	"unicode/utf16"
	"unsafe"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
)

// Element is a fixed-width code unit. Signed and unsigned widths of 8, 16 and
// 32 bits are accepted; the zero value is the terminator.
type Element interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32
}

// bits returns the bit width of T.
func bits[T Element]() uint {
	var zero T
	return uint(unsafe.Sizeof(zero)) * 8
}

// mask returns a value with the low bits(T) bits set.
func mask[T Element]() uint64 {
	return uint64(1)<<bits[T]() - 1
}

// code returns c as an unsigned value of T's width, so that a signed 0xFF
// byte orders and hashes like 255 and not like -1.
func code[T Element](c T) uint64 {
	return uint64(c) & mask[T]()
}

// Side selects the end(s) of a buffer that Trim and Fix act on.
type Side uint8

const (
	// Head is the start of the buffer.
	Head Side = 1 << iota
	// Tail is the end of the buffer.
	Tail
	// Both selects head and tail.
	Both = Head | Tail
)

// String returns the canonical name of the side.
func (s Side) String() string {
	switch s & Both {
	case Head:
		return "head"
	case Tail:
		return "tail"
	case Both:
		return "both"
	default:
		return "none"
	}
}

// ParseSide accepts head/left, tail/right and both.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "head", "left", "leading":
		return Head, nil
	case "tail", "right", "trailing":
		return Tail, nil
	case "both", "":
		return Both, nil
	}
	return 0, mdwerror.New("invalid side: "+s).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("cstring.ParseSide").
		WithDetail("expected", "head, tail or both")
}

// Encode converts s into code units of T. Byte buffers receive UTF-8,
// 16-bit unsigned buffers UTF-16 and rune buffers code points. Other element
// types receive code points truncated to their width.
func Encode[T Element](s string) []T {
	var out []T
	switch p := any(&out).(type) {
	case *[]byte:
		*p = []byte(s)
	case *[]rune:
		*p = []rune(s)
	case *[]uint16:
		*p = utf16.Encode([]rune(s))
	default:
		for _, r := range s {
			out = append(out, T(r))
		}
	}
	return out
}

// Decode is the inverse of Encode.
func Decode[T Element](units []T) string {
	switch d := any(units).(type) {
	case []byte:
		return string(d)
	case []rune:
		return string(d)
	case []uint16:
		return string(utf16.Decode(d))
	}
	var sb strings.Builder
	sb.Grow(len(units))
	for _, c := range units {
		sb.WriteRune(rune(code(c)))
	}
	return sb.String()
}
