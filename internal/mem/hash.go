// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"sort"

	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

func (db *Db) hashEntry(key []byte) (e *entry, wrongType bool) {
	return db.requireKind(string(key), KindHash)
}

func (db *Db) hashEntryForWrite(key []byte) (e *entry, wrongType bool) {
	ks := string(key)
	existing := db.lookup(ks)
	if existing != nil {
		if existing.kind != KindHash {
			return nil, true
		}
		return existing, false
	}
	e = &entry{kind: KindHash, hash: make(map[string][]byte)}
	db.data[ks] = e
	return e, false
}

func (db *Db) HSet(key []byte, pairs []Pair) resp.Frame {
	e, wrongType := db.hashEntryForWrite(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	var created int64
	for _, p := range pairs {
		field := string(p.First)
		if _, exists := e.hash[field]; !exists {
			created++
		}
		e.hash[field] = append([]byte(nil), p.Second...)
	}
	return resp.Integer(created)
}

func (db *Db) HGet(key, field []byte) resp.Frame {
	e, wrongType := db.hashEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Null()
	}
	v, ok := e.hash[string(field)]
	if !ok {
		return resp.Null()
	}
	return resp.BulkOf(v)
}

func (db *Db) HExists(key, field []byte) resp.Frame {
	e, wrongType := db.hashEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	if _, ok := e.hash[string(field)]; ok {
		return resp.One()
	}
	return resp.Zero()
}

func (db *Db) HDel(key []byte, fields [][]byte) resp.Frame {
	e, wrongType := db.hashEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	var n int64
	for _, f := range fields {
		if _, ok := e.hash[string(f)]; ok {
			delete(e.hash, string(f))
			n++
		}
	}
	if len(e.hash) == 0 {
		delete(db.data, string(key))
	}
	return resp.Integer(n)
}

func (db *Db) HLen(key []byte) resp.Frame {
	e, wrongType := db.hashEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	return resp.Integer(int64(len(e.hash)))
}

func (db *Db) sortedHashFields(e *entry) []string {
	fields := make([]string, 0, len(e.hash))
	for f := range e.hash {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (db *Db) HKeys(key []byte) resp.Frame {
	e, wrongType := db.hashEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.EmptyArray()
	}
	fields := db.sortedHashFields(e)
	out := make([]resp.Frame, len(fields))
	for i, f := range fields {
		out[i] = resp.BulkString(f)
	}
	return resp.ArrayOf(out)
}

func (db *Db) HVals(key []byte) resp.Frame {
	e, wrongType := db.hashEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.EmptyArray()
	}
	fields := db.sortedHashFields(e)
	out := make([]resp.Frame, len(fields))
	for i, f := range fields {
		out[i] = resp.BulkOf(e.hash[f])
	}
	return resp.ArrayOf(out)
}

// HGetAll returns field/value pairs sorted by field name, a deliberate
// departure from Redis's insertion-order reply chosen so the wire output is
// deterministic for tests (spec 6.4 "HGETALL sorted-by-field").
func (db *Db) HGetAll(key []byte) resp.Frame {
	e, wrongType := db.hashEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.EmptyArray()
	}
	fields := db.sortedHashFields(e)
	out := make([]resp.Frame, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, resp.BulkString(f), resp.BulkOf(e.hash[f]))
	}
	return resp.ArrayOf(out)
}

func (db *Db) HStrlen(key, field []byte) resp.Frame {
	e, wrongType := db.hashEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	v, ok := e.hash[string(field)]
	if !ok {
		return resp.Zero()
	}
	return resp.Integer(int64(len(v)))
}
