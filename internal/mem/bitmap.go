// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"math/bits"

	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// SetBit writes one bit of key's string cell (spec 6.2), growing the
// backing byte slice as needed, and returns the bit's previous value.
func (db *Db) SetBit(key []byte, offset uint64, value int32) resp.Frame {
	e, wrongType := db.stringEntryForWrite(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	byteIdx := offset / 8
	bitIdx := 7 - uint(offset%8)
	if byteIdx >= uint64(len(e.str)) {
		grown := make([]byte, byteIdx+1)
		copy(grown, e.str)
		e.str = grown
	}
	old := (e.str[byteIdx] >> bitIdx) & 1
	if value == 1 {
		e.str[byteIdx] |= 1 << bitIdx
	} else {
		e.str[byteIdx] &^= 1 << bitIdx
	}
	return resp.Integer(int64(old))
}

// GetBit reads one bit of key's string cell; bits past the end of the
// stored string, or of an absent key, read as 0 (spec 6.2).
func (db *Db) GetBit(key []byte, offset uint64) resp.Frame {
	e, wrongType := db.stringEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	byteIdx := offset / 8
	if byteIdx >= uint64(len(e.str)) {
		return resp.Zero()
	}
	bitIdx := 7 - uint(offset%8)
	bit := (e.str[byteIdx] >> bitIdx) & 1
	return resp.Integer(int64(bit))
}

// BitCount counts set bits in key's string cell, optionally restricted to a
// byte range normalized the same way GETRANGE is (spec 6.2).
func (db *Db) BitCount(key []byte, hasRange bool, start, end int64) resp.Frame {
	e, wrongType := db.stringEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	slice := e.str
	if hasRange {
		s, en, empty := normalizeRange(start, end, int64(len(e.str)))
		if empty {
			return resp.Zero()
		}
		slice = e.str[s : en+1]
	}
	var n int64
	for _, b := range slice {
		n += int64(bits.OnesCount8(b))
	}
	return resp.Integer(n)
}
