// File: interop_test.go
// Title: Foreign Fill Tests
// Description: Tests for filling buffers from readers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package cstring

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
)

func TestReadFrom(t *testing.T) {
	t.Run("into absent buffer", func(t *testing.T) {
		var b Buffer[byte]
		n, err := ReadFrom(&b, strings.NewReader("hello world"))
		require.NoError(t, err)
		assert.Equal(t, int64(11), n)
		assertContent(t, &b, "hello world")
		assert.Equal(t, 11, b.Capacity())
	})

	t.Run("appends to existing content", func(t *testing.T) {
		b := FromString[byte]("> ")
		_, err := ReadFrom(b, iotest.OneByteReader(strings.NewReader("abc")))
		require.NoError(t, err)
		assertContent(t, b, "> abc")
	})

	t.Run("larger than one chunk", func(t *testing.T) {
		payload := strings.Repeat("x", ReadChunk*2+17)
		var b Buffer[byte]
		n, err := ReadFrom(&b, iotest.HalfReader(strings.NewReader(payload)))
		require.NoError(t, err)
		assert.Equal(t, int64(len(payload)), n)
		assert.Equal(t, payload, b.String())
	})

	t.Run("reader error", func(t *testing.T) {
		var b Buffer[byte]
		_, err := ReadFrom(&b, iotest.ErrReader(errors.New("boom")))
		require.Error(t, err)
		assert.True(t, mdwerror.HasCode(err, mdwerror.CodeExecutionFailed))
	})

	t.Run("nil arguments", func(t *testing.T) {
		_, err := ReadFrom(nil, strings.NewReader("x"))
		assert.Error(t, err)
	})
}

func TestReadString(t *testing.T) {
	b, err := ReadString[uint16](strings.NewReader("héllo"))
	require.NoError(t, err)
	assert.Equal(t, "héllo", b.String())
	assert.Equal(t, 5, b.Size())
}
