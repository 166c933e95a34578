// File: testing_helpers_test.go
// Title: Shared Test Helpers
// Description: Helpers to run buffer tests for several element widths.
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
)

// units runs fn once per element width.
func units(t *testing.T, byteFn, wideFn, runeFn func(*testing.T)) {
	t.Helper()
	t.Run("byte", byteFn)
	t.Run("uint16", wideFn)
	t.Run("rune", runeFn)
}

func enc[T Element](s string) []T { return Encode[T](s) }

// assertContent checks the decoded content, the size and the invariants.
func assertContent[T Element](t *testing.T, b *Buffer[T], want string) {
	t.Helper()
	require.NoError(t, b.Check())
	assert.Equal(t, want, b.String())
	assert.Equal(t, len(enc[T](want)), b.Size())
	if !b.IsAbsent() {
		assert.Equal(t, T(0), b.data[b.size], "terminator")
	}
}
