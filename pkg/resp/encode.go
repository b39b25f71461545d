// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resp

import "strconv"

// AppendTo serializes f onto the end of dst and returns the grown slice. It
// never allocates for the integer/length conversions: each is formatted into
// a small stack scratch array first, matching the teacher's write_i64
// approach in the original frame codec.
func (f Frame) AppendTo(dst []byte) []byte {
	switch f.Type {
	case TypeSimple:
		dst = append(dst, '+')
		dst = append(dst, f.Str...)
		return append(dst, '\r', '\n')

	case TypeError:
		dst = append(dst, '-')
		dst = append(dst, f.Str...)
		return append(dst, '\r', '\n')

	case TypeInteger:
		dst = append(dst, ':')
		dst = appendInt(dst, f.Int)
		return append(dst, '\r', '\n')

	case TypeBulk:
		dst = append(dst, '$')
		dst = appendInt(dst, int64(len(f.Bulk)))
		dst = append(dst, '\r', '\n')
		dst = append(dst, f.Bulk...)
		return append(dst, '\r', '\n')

	case TypeArray:
		dst = append(dst, '*')
		dst = appendInt(dst, int64(len(f.Array)))
		dst = append(dst, '\r', '\n')
		for _, elem := range f.Array {
			dst = elem.AppendTo(dst)
		}
		return dst

	case TypeNull:
		return append(dst, '$', '-', '1', '\r', '\n')

	default:
		return dst
	}
}

// appendInt formats n into a stack scratch buffer and appends the digits,
// avoiding the transient string allocation strconv.Itoa would cost per call.
func appendInt(dst []byte, n int64) []byte {
	var scratch [20]byte
	return append(dst, strconv.AppendInt(scratch[:0], n, 10)...)
}

// Bytes serializes f into a freshly allocated slice. Prefer AppendTo when
// writing many frames into one connection buffer.
func (f Frame) Bytes() []byte {
	return f.AppendTo(make([]byte, 0, 32))
}
