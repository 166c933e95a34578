// File: pipe_test.go
// Title: Pipeline Engine Tests
// Description: End-to-end tests for parsing, static checking and
//              execution of pipeline expressions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial engine tests
// - 2026-10-19 v0.2.0: Pipeline engine

package pipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/foundation/pipe/registry"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

func newEngine[T cstring.Element](t *testing.T) *Engine[T] {
	t.Helper()
	opts := DefaultOptions()
	opts.Logger = mdwlog.Discard()
	e, err := New[T](opts)
	require.NoError(t, err)
	return e
}

func TestEngine_ExecuteString(t *testing.T) {
	ctx := context.Background()

	t.Run("bytes", func(t *testing.T) {
		e := newEngine[byte](t)
		res, err := e.ExecuteString(ctx, `trim | split ";" | trim | join sep=","`, "  a ; b;c  ")
		require.NoError(t, err)
		assert.Equal(t, "a,b,c", res.Value.String())
		assert.Len(t, res.Stages, 4)
	})

	t.Run("runes", func(t *testing.T) {
		e := newEngine[rune](t)
		res, err := e.ExecuteString(ctx, `reverse | fix 6 "·" head`, "grüß")
		require.NoError(t, err)
		assert.Equal(t, "··ßürg", res.Value.String())
	})

	t.Run("utf16", func(t *testing.T) {
		e := newEngine[uint16](t)
		res, err := e.ExecuteString(ctx, `count`, "a😀")
		require.NoError(t, err)
		assert.Equal(t, "3", res.Value.String(), "surrogate pair counts as two units")
	})
}

func TestEngine_Validate(t *testing.T) {
	e := newEngine[byte](t)

	tests := []struct {
		expr string
		kind registry.Kind
		code mdwerror.Code
	}{
		{`trim`, registry.KindBuffer, ""},
		{`split ","`, registry.KindArray, ""},
		{`split "," | trim | rvr`, registry.KindArray, ""},
		{`split "," | join`, registry.KindBuffer, ""},
		{`join`, registry.KindBuffer, mdwerror.CodeTypeMismatch},
		{`split "," | split ","`, registry.KindArray, mdwerror.CodeTypeMismatch},
		{`fix`, registry.KindBuffer, mdwerror.CodeInvalidInput},
		{`nope`, registry.KindBuffer, mdwerror.CodeUnknownStage},
		{`trim |`, registry.KindBuffer, mdwerror.CodeParseError},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			kind, err := e.Validate(tt.expr)
			if tt.code == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.kind, kind)
				return
			}
			require.Error(t, err)
			assert.True(t, mdwerror.HasCode(err, tt.code), "got %s", mdwerror.GetCode(err))
		})
	}
}

func TestEngine_ValidatePosition(t *testing.T) {
	e := newEngine[byte](t)

	_, err := e.Validate("trim\n| join")
	require.Error(t, err)
	details := mdwerrors.ExtractDetails(err)
	assert.Equal(t, 1, details["stage"])
	assert.Equal(t, 2, details["line"])
	assert.Equal(t, 3, details["column"])
}

func TestEngine_Defaults(t *testing.T) {
	opts := DefaultOptions()
	opts.Logger = mdwlog.Discard()
	opts.Defaults = map[string]map[string]string{"Trim": {"Value": "*"}}

	e, err := New[byte](opts)
	require.NoError(t, err)

	res, err := e.ExecuteString(context.Background(), "trim", "**x**")
	require.NoError(t, err)
	assert.Equal(t, "x", res.Value.String())
}

func TestEngine_AliasesDisabled(t *testing.T) {
	e, err := New[byte](Options{Logger: mdwlog.Discard()})
	require.NoError(t, err)

	_, err = e.Validate("substring 1")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeUnknownStage))
	_, err = e.Validate("substr 1")
	assert.NoError(t, err)
}

func TestEngine_Stages(t *testing.T) {
	e := newEngine[byte](t)

	defs := e.Stages()
	assert.Len(t, defs, len(registry.Builtins()))
	for _, def := range defs {
		assert.NotEmpty(t, def.Description, def.Name)
	}
}

func TestUsage(t *testing.T) {
	e := newEngine[byte](t)

	def, err := e.Registry().Resolve("fix")
	require.NoError(t, err)
	assert.Equal(t, `fix length [fill=" "] [mode="tail"]`, Usage(def))

	def, err = e.Registry().Resolve("reverse")
	require.NoError(t, err)
	assert.Equal(t, "reverse", Usage(def))
}
