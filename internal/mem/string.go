// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import "github.com/ClusterCockpit/radonkv/pkg/resp"

// stringEntry fetches key's string cell for a read, reporting wrongType if
// the key holds a different kind. Absent keys return (nil, false).
func (db *Db) stringEntry(key []byte) (e *entry, wrongType bool) {
	return db.requireKind(string(key), KindString)
}

// stringEntryForWrite fetches or creates key's string cell. wrongType is
// reported, and the key is left untouched, if it already holds another kind
// (spec 5).
func (db *Db) stringEntryForWrite(key []byte) (e *entry, wrongType bool) {
	ks := string(key)
	existing := db.lookup(ks)
	if existing != nil {
		if existing.kind != KindString {
			return nil, true
		}
		return existing, false
	}
	e = &entry{kind: KindString}
	db.data[ks] = e
	return e, false
}

func (db *Db) Set(key, value []byte) resp.Frame {
	e, wrongType := db.stringEntryForWrite(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	e.str = append([]byte(nil), value...)
	return resp.OK()
}

func (db *Db) Get(key []byte) resp.Frame {
	e, wrongType := db.stringEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Null()
	}
	return resp.BulkOf(e.str)
}

func (db *Db) Append(key, value []byte) resp.Frame {
	e, wrongType := db.stringEntryForWrite(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	e.str = append(e.str, value...)
	return resp.Integer(int64(len(e.str)))
}

func (db *Db) Strlen(key []byte) resp.Frame {
	e, wrongType := db.stringEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	return resp.Integer(int64(len(e.str)))
}

func (db *Db) GetSet(key, value []byte) resp.Frame {
	e, wrongType := db.stringEntryForWrite(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	old := e.str
	e.str = append([]byte(nil), value...)
	if old == nil {
		return resp.Null()
	}
	return resp.BulkOf(old)
}

func (db *Db) GetDel(key []byte) resp.Frame {
	e, wrongType := db.stringEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Null()
	}
	delete(db.data, string(key))
	return resp.BulkOf(e.str)
}

func (db *Db) GetRange(key []byte, start, end int64) resp.Frame {
	e, wrongType := db.stringEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.EmptyBulk()
	}
	s, en, empty := normalizeRange(start, end, int64(len(e.str)))
	if empty {
		return resp.EmptyBulk()
	}
	return resp.BulkOf(e.str[s : en+1])
}

// SetRange overwrites the byte range starting at offset with value,
// zero-padding as needed, creating the key if absent (spec 6.1). The command
// layer parses offset with NextIsize and does not check its sign; a negative
// offset is answered here with an out-of-range error, and a write whose end
// would pass maxStringBytes with StringTooLongErr, before the key is touched.
func (db *Db) SetRange(key []byte, offset int64, value []byte) resp.Frame {
	if offset < 0 {
		return resp.Error("ERR offset is out of range")
	}
	if end := offset + int64(len(value)); end > db.maxStringBytes {
		return resp.StringTooLongErr()
	}
	e, wrongType := db.stringEntryForWrite(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if len(value) == 0 {
		return resp.Integer(int64(len(e.str)))
	}
	end := offset + int64(len(value))
	if end > int64(len(e.str)) {
		grown := make([]byte, end)
		copy(grown, e.str)
		e.str = grown
	}
	copy(e.str[offset:end], value)
	return resp.Integer(int64(len(e.str)))
}

func (db *Db) MGet(keys []string) resp.Frame {
	out := make([]resp.Frame, len(keys))
	for i, k := range keys {
		e, wrongType := db.stringEntry([]byte(k))
		if wrongType || e == nil {
			out[i] = resp.Null()
			continue
		}
		out[i] = resp.BulkOf(e.str)
	}
	return resp.ArrayOf(out)
}

func (db *Db) MSet(pairs []Pair) resp.Frame {
	for _, p := range pairs {
		e, wrongType := db.stringEntryForWrite(p.First)
		if wrongType {
			// Redis's MSET has no partial-failure contract to violate here -
			// the original keeps going and silently skips wrong-typed keys.
			continue
		}
		e.str = append([]byte(nil), p.Second...)
	}
	return resp.OK()
}

// Pair mirrors command.Pair so that Db's per-command methods take no
// command-package types; only Execute and toPairs in dispatch.go convert
// from them.
type Pair struct {
	First  []byte
	Second []byte
}
