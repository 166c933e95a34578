// File: search_test.go
// Title: Search Tests
// Description: Tests for rolling-hash find/rfind, charmask character-class
//              search, comparison and the derived predicates.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package cstring

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testFind[T Element](t *testing.T) {
	hay := FromString[T]("abcdefghabcdefgh")
	gh := enc[T]("gh")

	tests := []struct {
		name   string
		pos    int
		needle string
		want   int
	}{
		{"from start", 0, "gh", 6},
		{"after first match", 7, "gh", 14},
		{"exact position", 14, "gh", 14},
		{"past last match", 15, "gh", NotFound},
		{"single element", 3, "a", 8},
		{"whole haystack", 0, "abcdefghabcdefgh", 0},
		{"rest of haystack", 8, "abcdefgh", 8},
		{"rest mismatch", 9, "bcdefgi", NotFound},
		{"longer than rest", 12, "efghi", NotFound},
		{"empty needle", 0, "", NotFound},
		{"negative pos", -1, "gh", NotFound},
		{"pos past end", 17, "gh", NotFound},
		{"long needle", 1, "bcdefgha", 1},
		{"long needle second", 2, "bcdefgh", 9},
		{"no match", 0, "zz", NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hay.Find(tt.pos, enc[T](tt.needle)))
		})
	}

	assert.Equal(t, 6, hay.RFind(13, gh))
	assert.Equal(t, 14, hay.RFind(-1, gh))
	assert.Equal(t, 14, hay.RFind(100, gh))
	assert.Equal(t, 6, hay.RFind(6, gh))
	assert.Equal(t, NotFound, hay.RFind(5, gh))
	assert.Equal(t, NotFound, hay.RFind(-2, gh))
	assert.Equal(t, 8, hay.RFind(-1, enc[T]("abcdefgh")))
	assert.Equal(t, 0, hay.RFind(7, enc[T]("abcdefgh")))
	assert.Equal(t, 8, hay.RFind(-1, enc[T]("a")))
	assert.Equal(t, NotFound, hay.RFind(-1, nil))

	var absent Buffer[T]
	assert.Equal(t, NotFound, absent.Find(0, gh))
	assert.Equal(t, NotFound, absent.RFind(-1, gh))
}

func TestFind(t *testing.T) {
	units(t, testFind[byte], testFind[uint16], testFind[rune])
}

func naiveFind(hay []byte, pos int, needle []byte) int {
	if len(needle) == 0 || pos < 0 {
		return NotFound
	}
	for i := pos; i+len(needle) <= len(hay); i++ {
		if slices.Equal(hay[i:i+len(needle)], needle) {
			return i
		}
	}
	return NotFound
}

func naiveRFind(hay []byte, pos int, needle []byte) int {
	if len(needle) == 0 {
		return NotFound
	}
	start := len(hay) - len(needle)
	if pos != -1 && pos < start {
		start = pos
	}
	for i := start; i >= 0; i-- {
		if slices.Equal(hay[i:i+len(needle)], needle) {
			return i
		}
	}
	return NotFound
}

func TestFindMatchesNaiveScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("ab\x00\xff")

	randomBytes := func(n int) []byte {
		out := make([]byte, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return out
	}

	for i := 0; i < 2000; i++ {
		hay := randomBytes(rng.Intn(40))
		needle := randomBytes(1 + rng.Intn(6))
		pos := rng.Intn(len(hay)+2) - 1
		b := Of(hay...)

		assert.Equal(t, naiveFind(hay, pos, needle), b.Find(pos, needle), "find %q in %q from %d", needle, hay, pos)
		assert.Equal(t, naiveRFind(hay, pos, needle), b.RFind(pos, needle), "rfind %q in %q from %d", needle, hay, pos)
	}
}

func TestFindLongNeedleHashWraps(t *testing.T) {
	hay := make([]rune, 0, 300)
	for i := 0; i < 300; i++ {
		hay = append(hay, rune('a'+i%7))
	}
	needle := slices.Clone(hay[100:200])
	b := Of(hay...)

	assert.Equal(t, naiveFindRunes(hay, 0, needle), b.Find(0, needle))
	assert.Equal(t, 100, b.Find(100, needle))
	assert.Equal(t, 198, b.RFind(-1, needle))
}

func naiveFindRunes(hay []rune, pos int, needle []rune) int {
	for i := pos; i+len(needle) <= len(hay); i++ {
		if slices.Equal(hay[i:i+len(needle)], needle) {
			return i
		}
	}
	return NotFound
}

func TestCharsetSearch(t *testing.T) {
	b := FromString[byte]("hello, world")
	vowels := []byte("aeiou")
	space := []byte(" ")

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"first of", b.FindFirstOf(0, vowels), 1},
		{"first of from pos", b.FindFirstOf(5, vowels), 8},
		{"first of single", b.FindFirstOf(0, space), 6},
		{"first of none", b.FindFirstOf(0, []byte("xyz")), NotFound},
		{"first of empty set", b.FindFirstOf(0, nil), NotFound},
		{"first of past end", b.FindFirstOf(12, vowels), NotFound},
		{"first not of", b.FindFirstNotOf(0, []byte("ehl")), 4},
		{"first not of single", b.FindFirstNotOf(2, []byte("l")), 4},
		{"first not of empty set", b.FindFirstNotOf(3, nil), 3},
		{"last of", b.FindLastOf(-1, vowels), 8},
		{"last of bounded", b.FindLastOf(7, vowels), 4},
		{"last of clamped", b.FindLastOf(99, []byte("d")), 11},
		{"last of invalid", b.FindLastOf(-2, vowels), NotFound},
		{"last not of", b.FindLastNotOf(-1, []byte("dlr")), 8},
		{"last not of single", b.FindLastNotOf(-1, []byte("d")), 10},
		{"negative pos", b.FindFirstOf(-1, vowels), NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	var absent Buffer[byte]
	assert.Equal(t, NotFound, absent.FindFirstOf(0, vowels))
	assert.Equal(t, NotFound, absent.FindLastNotOf(-1, vowels))
}

func TestCharmask(t *testing.T) {
	cs := newCharset([]byte{0x01, 0x02})
	assert.Equal(t, uint64(0xFC), cs.charmask)
	assert.True(t, cs.contains(0x01))
	assert.False(t, cs.contains(0x03), "passes the prefilter, fails membership")
	assert.False(t, cs.contains(0x04), "rejected by the prefilter")

	signed := newCharset([]int8{-1, 1})
	assert.Equal(t, uint64(0), signed.charmask)
	assert.True(t, signed.contains(-1))
	assert.False(t, signed.contains(2))

	wide := newCharset([]uint32{0x10000, 0x1})
	assert.Equal(t, uint64(0xFFFEFFFE), wide.charmask)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "abc", "abc", 0},
		{"less", "abc", "abd", -1},
		{"greater", "abd", "abc", 1},
		{"prefix is smaller", "ab", "abc", -1},
		{"longer is greater", "abc", "ab", 1},
		{"both empty", "", "", 0},
		{"empty is smaller", "", "a", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(FromString[byte](tt.a), FromString[byte](tt.b))
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)

			got, ok = Compare(FromString[uint16](tt.a), FromString[uint16](tt.b))
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unsigned ordering of signed elements", func(t *testing.T) {
		got, ok := Compare(Of[int8](-1), Of[int8](1))
		assert.True(t, ok)
		assert.Equal(t, 1, got, "0xFF orders after 0x01")
	})

	t.Run("embedded zero", func(t *testing.T) {
		got, _ := Compare(Of[byte]('a'), Of[byte]('a', 0))
		assert.Equal(t, -1, got)
	})

	t.Run("absent operand leaves output untouched", func(t *testing.T) {
		var absent Buffer[byte]
		_, ok := Compare(&absent, FromString[byte]("a"))
		assert.False(t, ok)

		out := 42
		CompareInto(&absent, FromString[byte]("a"), &out)
		assert.Equal(t, 42, out)
		CompareInto(FromString[byte]("a"), nil, &out)
		assert.Equal(t, 42, out)

		CompareInto(FromString[byte]("a"), FromString[byte]("b"), &out)
		assert.Equal(t, -1, out)
	})

	assert.True(t, Equal(FromString[rune]("x"), FromString[rune]("x")))
	assert.False(t, Equal(FromString[rune]("x"), &Buffer[rune]{}))
}

func testPredicates[T Element](t *testing.T) {
	b := FromString[T]("hello world")

	assert.True(t, b.StartsWith(enc[T]("hello")))
	assert.True(t, b.StartsWith(enc[T]("hello world")))
	assert.False(t, b.StartsWith(enc[T]("world")))
	assert.False(t, b.StartsWith(nil))
	assert.False(t, b.StartsWith(enc[T]("hello world!")))

	assert.True(t, b.EndsWith(enc[T]("world")))
	assert.False(t, b.EndsWith(enc[T]("hello")))
	assert.False(t, b.EndsWith(nil))

	assert.True(t, b.Contains(enc[T]("o w")))
	assert.False(t, b.Contains(enc[T]("ow")))
	assert.False(t, b.Contains(nil))

	assert.Equal(t, 3, b.Count(enc[T]("l")))
	assert.Equal(t, 1, FromString[T]("aaaa").Count(enc[T]("aaa")))
	assert.Equal(t, 2, FromString[T]("aaaa").Count(enc[T]("aa")))

	var absent Buffer[T]
	assert.False(t, absent.StartsWith(enc[T]("a")))
	assert.False(t, absent.EndsWith(enc[T]("a")))
	assert.False(t, absent.Contains(enc[T]("a")))
}

func TestPredicates(t *testing.T) {
	units(t, testPredicates[byte], testPredicates[uint16], testPredicates[rune])
}
