// File: engine_test.go
// Title: Pipeline Executor Tests
// Description: Tests for stage execution, element-wise application, type
//              checks, configured defaults and cancellation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial executor tests
// - 2026-10-19 v0.2.0: Local pipeline execution

package executor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/foundation/pipe/parser"
	"github.com/msto63/cstring/foundation/pipe/registry"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

func newEngine[T cstring.Element](t *testing.T, opts Options) *Engine[T] {
	t.Helper()
	opts.Logger = mdwlog.Discard()
	e, err := New[T](opts)
	require.NoError(t, err)
	return e
}

func run[T cstring.Element](t *testing.T, e *Engine[T], expr, input string) (*Result[T], error) {
	t.Helper()
	p, err := parser.Parse(expr)
	require.NoError(t, err)
	return e.Execute(context.Background(), p, cstring.FromString[T](input))
}

func TestExecute_BufferStages(t *testing.T) {
	e := newEngine[byte](t, Options{})

	tests := []struct {
		expr  string
		input string
		want  string
	}{
		{`trim`, "  hello  ", "hello"},
		{`trim "-" head`, "--a--", "a--"},
		{`strip value="x" mode=tail`, "axx", "a"},
		{`fix 5 "." both`, "ab", "..ab."},
		{`fix 3`, "abcdef", "abc"},
		{`reverse`, "abc", "cba"},
		{`insert 1 "XY"`, "ab", "aXYb"},
		{`erase 1`, "abcd", "a"},
		{`erase 1 2`, "abcd", "ad"},
		{`replace 0 1 "zz"`, "abc", "zzbc"},
		{`append "!" | prepend ">"`, "hi", ">hi!"},
		{`resize 4 "_"`, "ab", "ab__"},
		{`substr 1 2`, "hello", "el"},
		{`substring 2`, "hello", "llo"},
		{`push "!" | push "?" | pop`, "a", "a!"},
		{`shrink`, "abc", "abc"},
		{`clear`, "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := run(t, e, tt.expr, tt.input)
			require.NoError(t, err)
			assert.Equal(t, registry.KindBuffer, res.Value.Kind())
			assert.Equal(t, tt.want, res.Value.String())
			assert.NoError(t, res.Value.Buffer().Check())
		})
	}
}

func TestExecute_Queries(t *testing.T) {
	e := newEngine[rune](t, Options{})

	tests := []struct {
		expr  string
		input string
		want  string
	}{
		{`find "b"`, "abcabc", "1"},
		{`find needle="b" pos=2`, "abcabc", "4"},
		{`find "z"`, "abc", "-1"},
		{`rfind "b"`, "abcabc", "4"},
		{`rfind "b" 3`, "abcabc", "1"},
		{`first_of "cb"`, "abcabc", "1"},
		{`first_not_of "a"`, "aab", "2"},
		{`last_of "a"`, "abca", "3"},
		{`last_not_of "a"`, "abaa", "1"},
		{`count`, "grüße", "5"},
		{`occurrences "aa"`, "aaaaa", "2"},
		{`compare "abd"`, "abc", "-1"},
		{`compare "abc"`, "abc", "0"},
		{`starts_with "ab"`, "abc", "true"},
		{`ends_with "ab"`, "abc", "false"},
		{`contains "bc"`, "abc", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := run(t, e, tt.expr, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value.String())
		})
	}
}

func TestExecute_ArrayStages(t *testing.T) {
	e := newEngine[byte](t, Options{})

	tests := []struct {
		expr  string
		input string
		want  []string
	}{
		{`split ","`, "a,b,,c", []string{"a", "b", "", "c"}},
		{`split "," max=2`, "a,b,c", []string{"a", "b,c"}},
		{`split "," | slice 1 2`, "a,b,c,d", []string{"b", "c"}},
		{`split "," | take 2`, "a,b,c", []string{"a", "b"}},
		{`split "," | take 9`, "a,b", []string{"a", "b"}},
		{`split "," | drop 1 1`, "a,b,c", []string{"a", "c"}},
		{`split "," | drop 1`, "a,b,c", []string{"a"}},
		{`split "," | trim | reverse`, " ab , cd ", []string{"ba", "dc"}},
		{`split "," | count`, "ab,cde", []string{"2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := run(t, e, tt.expr, tt.input)
			require.NoError(t, err)
			require.Equal(t, registry.KindArray, res.Value.Kind())
			assert.Equal(t, tt.want, res.Value.Strings())
			assert.NoError(t, res.Value.Array().Check())
		})
	}
}

func TestExecute_ShapeChanges(t *testing.T) {
	e := newEngine[uint16](t, Options{})

	tests := []struct {
		expr  string
		input string
		want  string
	}{
		{`split " " | join sep="-"`, "a b c", "a-b-c"},
		{`split ";" | reverse | join ";"`, "ab;cd", "ba;dc"},
		{`split "," | pick 1`, "x,y,z", "y"},
		{`split "," | pick -1`, "x,y,z", "z"},
		{`split "," | join`, "x,y", "xy"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := run(t, e, tt.expr, tt.input)
			require.NoError(t, err)
			assert.Equal(t, registry.KindBuffer, res.Value.Kind())
			assert.Equal(t, tt.want, res.Value.String())
		})
	}
}

func TestExecute_Result(t *testing.T) {
	e := newEngine[byte](t, Options{})

	input := cstring.FromString[byte]("a,b")
	p, err := parser.Parse(`split "," | join "+"`)
	require.NoError(t, err)

	res, err := e.Execute(context.Background(), p, input)
	require.NoError(t, err)

	_, err = uuid.Parse(res.ID)
	assert.NoError(t, err, "run ID should be a UUID")
	require.Len(t, res.Stages, 2)
	assert.Equal(t, StageResult{Name: "split", Input: "buffer", Output: "array", Duration: res.Stages[0].Duration}, res.Stages[0])
	assert.Equal(t, "join", res.Stages[1].Name)
	assert.Equal(t, "a,b", input.String(), "input must not be modified")

	res, err = e.Execute(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, "", res.Value.String())
}

func TestExecute_Errors(t *testing.T) {
	e := newEngine[byte](t, Options{MaxStages: 3})

	tests := []struct {
		name string
		expr string
		code mdwerror.Code
	}{
		{"unknown stage", "upper", mdwerror.CodeUnknownStage},
		{"array stage on buffer", "join", mdwerror.CodeTypeMismatch},
		{"buffer to array stage on array", `split "," | split ";"`, mdwerror.CodeTypeMismatch},
		{"missing parameter", "insert 1", mdwerror.CodeInvalidInput},
		{"position out of range", `insert 9 "x"`, mdwerror.CodeInvalidInput},
		{"negative length", `fix -1`, mdwerror.CodeInvalidInput},
		{"multi byte char", `push "ü"`, mdwerror.CodeInvalidInput},
		{"empty delimiter", `split ""`, mdwerror.CodeInvalidInput},
		{"pick out of range", `split "," | pick 5`, mdwerror.CodeInvalidInput},
		{"too many stages", "pop | pop | pop | pop", mdwerror.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, e, tt.expr, "a,b")
			require.Error(t, err)
			assert.True(t, mdwerror.HasCode(err, tt.code), "got %s: %v", mdwerror.GetCode(err), err)
		})
	}
}

func TestExecute_ErrorPosition(t *testing.T) {
	e := newEngine[byte](t, Options{})

	_, err := run(t, e, "reverse | upper", "abc")
	require.Error(t, err)

	details := mdwerrors.ExtractDetails(err)
	assert.Equal(t, 1, details["stage"])
	assert.Equal(t, 11, details["column"])
}

func TestExecute_ElementErrorDetail(t *testing.T) {
	e := newEngine[byte](t, Options{})

	_, err := run(t, e, `split "," | insert 2 "x"`, "abc,d")
	require.Error(t, err)
	assert.Equal(t, 1, mdwerrors.ExtractDetails(err)["element"])
}

func TestExecute_Defaults(t *testing.T) {
	e := newEngine[byte](t, Options{Defaults: map[string]map[string]string{
		"split": {"delim": ";"},
		"join":  {"sep": "|"},
	}})

	res, err := run(t, e, `split | join`, "a;b;c")
	require.NoError(t, err)
	assert.Equal(t, "a|b|c", res.Value.String())

	res, err = run(t, e, `split "b" | join`, "a;b;c")
	require.NoError(t, err)
	assert.Equal(t, "a;|;c", res.Value.String())
}

func TestExecute_Cancelled(t *testing.T) {
	e := newEngine[byte](t, Options{})

	p, err := parser.Parse("reverse")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = e.Execute(ctx, p, cstring.FromString[byte]("abc"))
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeCancelled))
}

func TestExecute_NilPipeline(t *testing.T) {
	e := newEngine[byte](t, Options{})

	_, err := e.Execute(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))
}

func TestRegisterStage(t *testing.T) {
	e := newEngine[byte](t, Options{})

	def := &registry.StageDefinition{
		Name:   "double",
		Input:  registry.KindBuffer,
		Output: registry.KindBuffer,
	}
	err := e.RegisterStage(def, Lift(func(b *cstring.Buffer[byte], _ *registry.Binding) (*cstring.Buffer[byte], error) {
		b.Append(b.Data())
		return b, nil
	}))
	require.NoError(t, err)
	assert.Contains(t, e.Stages(), "double")

	res, err := run(t, e, `split "," | double | join ","`, "ab,c")
	require.NoError(t, err)
	assert.Equal(t, "abab,cc", res.Value.String())

	assert.Error(t, e.RegisterStage(def, nil))
	assert.Error(t, e.RegisterStage(&registry.StageDefinition{Name: "trim"}, Lift(func(b *cstring.Buffer[byte], _ *registry.Binding) (*cstring.Buffer[byte], error) {
		return b, nil
	})))
}
