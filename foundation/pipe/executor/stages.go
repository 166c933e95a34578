// File: stages.go
// Title: Built-in Stage Implementations
// Description: Implements every built-in stage on top of the cstring
//              buffer and array operations.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial stage set

package executor

import (
	"fmt"
	"strconv"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	"github.com/msto63/cstring/foundation/pipe/registry"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

// BufferFunc transforms one buffer. It may modify b in place and return it,
// or return a new buffer.
type BufferFunc[T cstring.Element] func(b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error)

// StageFunc maps a whole pipeline value
type StageFunc[T cstring.Element] func(v Value[T], args *registry.Binding) (Value[T], error)

// Lift turns a BufferFunc into a StageFunc. Arrays are transformed element
// by element.
func Lift[T cstring.Element](fn BufferFunc[T]) StageFunc[T] {
	return func(v Value[T], args *registry.Binding) (Value[T], error) {
		if v.Kind() == registry.KindBuffer {
			out, err := fn(v.Buffer(), args)
			if err != nil {
				return Value[T]{}, err
			}
			return BufferValue(out), nil
		}

		arr := v.Array()
		for i := 0; i < arr.Size(); i++ {
			elem := arr.At(i)
			out, err := fn(elem, args)
			if err != nil {
				if me, ok := err.(*mdwerror.Error); ok {
					me.WithDetail("element", i)
				}
				return Value[T]{}, err
			}
			if out != elem {
				elem.Assign(out.Data())
			}
		}
		return v, nil
	}
}

func builtinStages[T cstring.Element]() map[string]StageFunc[T] {
	stages := map[string]BufferFunc[T]{
		"trim":    trimStage[T],
		"fix":     fixStage[T],
		"reverse": inPlace(func(b *cstring.Buffer[T], _ *registry.Binding) { b.Reverse() }),
		"insert":  insertStage[T],
		"erase":   eraseStage[T],
		"replace": replaceStage[T],
		"append": inPlace(func(b *cstring.Buffer[T], args *registry.Binding) {
			b.Append(cstring.Encode[T](args.Text("text")))
		}),
		"prepend": inPlace(func(b *cstring.Buffer[T], args *registry.Binding) {
			b.Insert(0, cstring.Encode[T](args.Text("text")))
		}),
		"resize": resizeStage[T],
		"substr": substrStage[T],
		"push":   pushStage[T],
		"pop":    inPlace(func(b *cstring.Buffer[T], _ *registry.Binding) { b.PopBack() }),
		"shrink": inPlace(func(b *cstring.Buffer[T], _ *registry.Binding) { b.ShrinkToFit() }),
		"clear":  inPlace(func(b *cstring.Buffer[T], _ *registry.Binding) { b.Clear() }),

		"find": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			return strconv.Itoa(b.Find(args.Int("pos"), cstring.Encode[T](args.Text("needle"))))
		}),
		"rfind": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			return strconv.Itoa(b.RFind(args.Int("pos"), cstring.Encode[T](args.Text("needle"))))
		}),
		"first_of": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			return strconv.Itoa(b.FindFirstOf(args.Int("pos"), cstring.Encode[T](args.Text("set"))))
		}),
		"first_not_of": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			return strconv.Itoa(b.FindFirstNotOf(args.Int("pos"), cstring.Encode[T](args.Text("set"))))
		}),
		"last_of": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			return strconv.Itoa(b.FindLastOf(args.Int("pos"), cstring.Encode[T](args.Text("set"))))
		}),
		"last_not_of": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			return strconv.Itoa(b.FindLastNotOf(args.Int("pos"), cstring.Encode[T](args.Text("set"))))
		}),
		"count": query(func(b *cstring.Buffer[T], _ *registry.Binding) string {
			return strconv.Itoa(b.Size())
		}),
		"occurrences": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			return strconv.Itoa(b.Count(cstring.Encode[T](args.Text("needle"))))
		}),
		"compare": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			other := cstring.FromString[T](args.Text("text"))
			r, ok := cstring.Compare(b, other)
			if !ok {
				return "incomparable"
			}
			return strconv.Itoa(r)
		}),
		"starts_with": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			return strconv.FormatBool(b.StartsWith(cstring.Encode[T](args.Text("text"))))
		}),
		"ends_with": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			return strconv.FormatBool(b.EndsWith(cstring.Encode[T](args.Text("text"))))
		}),
		"contains": query(func(b *cstring.Buffer[T], args *registry.Binding) string {
			return strconv.FormatBool(b.Contains(cstring.Encode[T](args.Text("text"))))
		}),
	}

	out := make(map[string]StageFunc[T], len(stages)+6)
	for name, fn := range stages {
		out[name] = Lift(fn)
	}

	out["split"] = splitStage[T]
	out["join"] = joinStage[T]
	out["pick"] = pickStage[T]
	out["slice"] = sliceStage[T]
	out["take"] = takeStage[T]
	out["drop"] = dropStage[T]
	return out
}

func inPlace[T cstring.Element](fn func(b *cstring.Buffer[T], args *registry.Binding)) BufferFunc[T] {
	return func(b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error) {
		fn(b, args)
		return b, nil
	}
}

// query renders a scalar result as a new text buffer
func query[T cstring.Element](fn func(b *cstring.Buffer[T], args *registry.Binding) string) BufferFunc[T] {
	return func(b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error) {
		return cstring.FromString[T](fn(b, args)), nil
	}
}

// charArg encodes a one character parameter as a single code unit
func charArg[T cstring.Element](args *registry.Binding, name string) (T, error) {
	units := cstring.Encode[T](args.Text(name))
	if len(units) != 1 {
		var zero T
		return zero, mdwerrors.PipeParameterInvalid(args.Definition.Name, name, args.Text(name), "a single code unit")
	}
	return units[0], nil
}

// position validates pos against [0, size]
func position[T cstring.Element](b *cstring.Buffer[T], args *registry.Binding, name string) (int, error) {
	pos := args.Int(name)
	if pos < 0 || pos > b.Size() {
		return 0, mdwerrors.PipeParameterInvalid(args.Definition.Name, name, pos,
			fmt.Sprintf("a position within [0, %d]", b.Size()))
	}
	return pos, nil
}

// span returns count, or the rest of the buffer after pos when negative
func span(count, pos, size int) int {
	if count < 0 {
		return size - pos
	}
	return count
}

func nonNegative(args *registry.Binding, name string) (int, error) {
	n := args.Int(name)
	if n < 0 {
		return 0, mdwerrors.PipeParameterInvalid(args.Definition.Name, name, n, "a non-negative integer")
	}
	return n, nil
}

func trimStage[T cstring.Element](b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error) {
	c, err := charArg[T](args, "value")
	if err != nil {
		return nil, err
	}
	b.Trim(c, args.Side("mode"))
	return b, nil
}

func fixStage[T cstring.Element](b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error) {
	length, err := nonNegative(args, "length")
	if err != nil {
		return nil, err
	}
	fill, err := charArg[T](args, "fill")
	if err != nil {
		return nil, err
	}
	b.Fix(length, fill, args.Side("mode"))
	return b, nil
}

func insertStage[T cstring.Element](b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error) {
	pos, err := position(b, args, "pos")
	if err != nil {
		return nil, err
	}
	b.Insert(pos, cstring.Encode[T](args.Text("text")))
	return b, nil
}

func eraseStage[T cstring.Element](b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error) {
	pos, err := position(b, args, "pos")
	if err != nil {
		return nil, err
	}
	b.Erase(pos, span(args.Int("count"), pos, b.Size()))
	return b, nil
}

func replaceStage[T cstring.Element](b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error) {
	pos, err := position(b, args, "pos")
	if err != nil {
		return nil, err
	}
	b.Replace(pos, span(args.Int("count"), pos, b.Size()), cstring.Encode[T](args.Text("text")))
	return b, nil
}

func resizeStage[T cstring.Element](b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error) {
	length, err := nonNegative(args, "length")
	if err != nil {
		return nil, err
	}
	fill, err := charArg[T](args, "fill")
	if err != nil {
		return nil, err
	}
	b.Resize(length, fill)
	return b, nil
}

func substrStage[T cstring.Element](b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error) {
	pos, err := position(b, args, "pos")
	if err != nil {
		return nil, err
	}
	out := cstring.New[T]()
	cstring.Substring(b, pos, args.Int("count"), out)
	return out, nil
}

func pushStage[T cstring.Element](b *cstring.Buffer[T], args *registry.Binding) (*cstring.Buffer[T], error) {
	c, err := charArg[T](args, "char")
	if err != nil {
		return nil, err
	}
	b.PushBack(c)
	return b, nil
}

func splitStage[T cstring.Element](v Value[T], args *registry.Binding) (Value[T], error) {
	delim := cstring.Encode[T](args.Text("delim"))
	if len(delim) == 0 {
		return Value[T]{}, mdwerrors.PipeParameterInvalid("split", "delim", "", "a non-empty delimiter")
	}
	return ArrayValue(cstring.Split(v.Buffer(), args.Int("max"), delim)), nil
}

func joinStage[T cstring.Element](v Value[T], args *registry.Binding) (Value[T], error) {
	return BufferValue(cstring.Join(v.Array(), cstring.Encode[T](args.Text("sep")))), nil
}

func pickStage[T cstring.Element](v Value[T], args *registry.Binding) (Value[T], error) {
	arr := v.Array()
	index := args.Int("index")
	if index < 0 {
		index += arr.Size()
	}
	elem := arr.At(index)
	if elem == nil {
		return Value[T]{}, mdwerrors.PipeParameterInvalid("pick", "index", args.Int("index"),
			fmt.Sprintf("an index within [-%d, %d)", arr.Size(), arr.Size()))
	}
	return BufferValue(elem.Clone()), nil
}

func arrayPosition[T cstring.Element](arr *cstring.Array[T], args *registry.Binding) (int, error) {
	pos := args.Int("pos")
	if pos < 0 || pos > arr.Size() {
		return 0, mdwerrors.PipeParameterInvalid(args.Definition.Name, "pos", pos,
			fmt.Sprintf("an index within [0, %d]", arr.Size()))
	}
	return pos, nil
}

func sliceStage[T cstring.Element](v Value[T], args *registry.Binding) (Value[T], error) {
	pos, err := arrayPosition(v.Array(), args)
	if err != nil {
		return Value[T]{}, err
	}
	out := cstring.NewArray[T]()
	cstring.SliceArray(v.Array(), pos, args.Int("count"), out)
	return ArrayValue(out), nil
}

func takeStage[T cstring.Element](v Value[T], args *registry.Binding) (Value[T], error) {
	n, err := nonNegative(args, "n")
	if err != nil {
		return Value[T]{}, err
	}
	arr := v.Array()
	if n < arr.Size() {
		arr.Resize(n, nil)
	}
	return v, nil
}

func dropStage[T cstring.Element](v Value[T], args *registry.Binding) (Value[T], error) {
	arr := v.Array()
	pos, err := arrayPosition(arr, args)
	if err != nil {
		return Value[T]{}, err
	}
	arr.Erase(pos, span(args.Int("count"), pos, arr.Size()))
	return v, nil
}
