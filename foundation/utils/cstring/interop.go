// File: interop.go
// Title: Foreign Fill Interop
// Description: Fills a byte buffer straight from an io.Reader by writing
//              into the reserved storage and resynchronising the size.
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
	"io"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
)

// ReadChunk is the amount of spare capacity ReadFrom reserves per read.
const ReadChunk = 4096

// ReadFrom appends everything r yields to b. The reader writes directly into
// the storage returned by Raw; UnsafeDeclareSize then records how much of it
// is valid. The capacity is trimmed to the size when reading completes.
func ReadFrom(b *Buffer[byte], r io.Reader) (int64, error) {
	if b == nil || r == nil {
		return 0, mdwerrors.InvalidInput(mdwerrors.ModuleCstring, "ReadFrom", nil, "buffer and reader")
	}

	var total int64
	for {
		if b.IsAbsent() || b.Capacity()-b.Size() == 0 {
			b.Reserve(b.Size() + ReadChunk)
		}
		n, err := r.Read(b.Raw()[b.Size():])
		b.UnsafeDeclareSize(b.Size() + n)
		total += int64(n)

		if errors.Is(err, io.EOF) {
			b.ShrinkToFit()
			return total, nil
		}
		if err != nil {
			return total, mdwerror.Wrap(err, "read into buffer failed").
				WithCode(mdwerror.CodeExecutionFailed).
				WithOperation("cstring.ReadFrom").
				WithDetail("bytesRead", total)
		}
	}
}

// ReadString reads r completely and encodes the result as T.
func ReadString[T Element](r io.Reader) (*Buffer[T], error) {
	raw := &Buffer[byte]{}
	if _, err := ReadFrom(raw, r); err != nil {
		return nil, err
	}
	return FromString[T](raw.String()), nil
}
