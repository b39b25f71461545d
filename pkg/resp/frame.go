// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package resp implements the RESP2 wire protocol: an incremental,
// allocation-conscious frame checker/parser and a reply serializer.
//
// A Frame is a self-describing wire value with six shapes: Simple, Error,
// Integer, Bulk, Null and Array. Null is the single representation for both
// legacy null encodings ("$-1\r\n" and "*-1\r\n"); callers never see the
// difference.
package resp

import "fmt"

// Type tags a Frame with its wire shape. The byte value matches the RESP
// type prefix on the wire, except TypeNull which has no prefix of its own.
type Type byte

const (
	TypeSimple  Type = '+'
	TypeError   Type = '-'
	TypeInteger Type = ':'
	TypeBulk    Type = '$'
	TypeArray   Type = '*'
	TypeNull    Type = 0
)

func (t Type) String() string {
	switch t {
	case TypeSimple:
		return "simple"
	case TypeError:
		return "error"
	case TypeInteger:
		return "integer"
	case TypeBulk:
		return "bulk"
	case TypeArray:
		return "array"
	case TypeNull:
		return "null"
	default:
		return fmt.Sprintf("type(%d)", byte(t))
	}
}

// Frame is a single RESP wire unit. Only the field matching Type is
// meaningful; the zero value of the others is ignored.
//
//   - Simple/Error carry their text in Str.
//   - Integer carries its value in Int.
//   - Bulk carries its payload in Bulk (a non-nil, possibly empty, slice).
//   - Array carries its elements in Array (a non-nil, possibly empty, slice).
//   - Null carries nothing; Bulk and Array are both nil for it.
type Frame struct {
	Type  Type
	Str   string
	Int   int64
	Bulk  []byte
	Array []Frame
}

func Simple(s string) Frame { return Frame{Type: TypeSimple, Str: s} }
func Error(s string) Frame  { return Frame{Type: TypeError, Str: s} }
func Integer(n int64) Frame { return Frame{Type: TypeInteger, Int: n} }
func BulkOf(b []byte) Frame {
	if b == nil {
		b = []byte{}
	}
	return Frame{Type: TypeBulk, Bulk: b}
}
func BulkString(s string) Frame { return BulkOf([]byte(s)) }
func ArrayOf(fs []Frame) Frame {
	if fs == nil {
		fs = []Frame{}
	}
	return Frame{Type: TypeArray, Array: fs}
}
func Null() Frame { return Frame{Type: TypeNull} }

// IsNull reports whether f is the Null placeholder.
func (f Frame) IsNull() bool { return f.Type == TypeNull }

// Equal compares two frames by value, used by round-trip tests.
func (f Frame) Equal(o Frame) bool {
	if f.Type != o.Type {
		return false
	}
	switch f.Type {
	case TypeSimple, TypeError:
		return f.Str == o.Str
	case TypeInteger:
		return f.Int == o.Int
	case TypeBulk:
		return string(f.Bulk) == string(o.Bulk)
	case TypeArray:
		if len(f.Array) != len(o.Array) {
			return false
		}
		for i := range f.Array {
			if !f.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	case TypeNull:
		return true
	default:
		return false
	}
}
