// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import "github.com/ClusterCockpit/radonkv/pkg/resp"

func (db *Db) listEntry(key []byte) (e *entry, wrongType bool) {
	return db.requireKind(string(key), KindList)
}

func (db *Db) listEntryForWrite(key []byte) (e *entry, wrongType bool) {
	ks := string(key)
	existing := db.lookup(ks)
	if existing != nil {
		if existing.kind != KindList {
			return nil, true
		}
		return existing, false
	}
	e = &entry{kind: KindList}
	db.data[ks] = e
	return e, false
}

// push implements LPUSH/RPUSH (createMissing=true) and LPUSHX/RPUSHX
// (createMissing=false), prepending or appending in the order values were
// given, matching Redis's "each element inserted at the head in turn"
// semantics for LPUSH.
func (db *Db) push(key []byte, values [][]byte, left, createMissing bool) resp.Frame {
	ks := string(key)
	existing := db.lookup(ks)
	if existing == nil {
		if !createMissing {
			return resp.Zero()
		}
		existing = &entry{kind: KindList}
		db.data[ks] = existing
	} else if existing.kind != KindList {
		return resp.WrongTypeErr()
	}
	for _, v := range values {
		cp := append([]byte(nil), v...)
		if left {
			existing.list = append([][]byte{cp}, existing.list...)
		} else {
			existing.list = append(existing.list, cp)
		}
	}
	return resp.Integer(int64(len(existing.list)))
}

func (db *Db) LPush(key []byte, values [][]byte) resp.Frame  { return db.push(key, values, true, true) }
func (db *Db) RPush(key []byte, values [][]byte) resp.Frame  { return db.push(key, values, false, true) }
func (db *Db) LPushX(key []byte, values [][]byte) resp.Frame { return db.push(key, values, true, false) }
func (db *Db) RPushX(key []byte, values [][]byte) resp.Frame { return db.push(key, values, false, false) }

// pop implements LPOP/RPOP, with or without a count (spec 6.3). No count ->
// a single Bulk/Null reply; with count -> an Array (possibly empty).
func (db *Db) pop(key []byte, left bool, count *int64) resp.Frame {
	e, wrongType := db.listEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if count == nil {
		if e == nil || len(e.list) == 0 {
			return resp.Null()
		}
		var v []byte
		if left {
			v = e.list[0]
			e.list = e.list[1:]
		} else {
			v = e.list[len(e.list)-1]
			e.list = e.list[:len(e.list)-1]
		}
		if len(e.list) == 0 {
			delete(db.data, string(key))
		}
		return resp.BulkOf(v)
	}

	n := *count
	if n < 0 {
		n = 0
	}
	if e == nil || len(e.list) == 0 || n == 0 {
		return resp.EmptyArray()
	}
	if n > int64(len(e.list)) {
		n = int64(len(e.list))
	}
	out := make([]resp.Frame, n)
	if left {
		for i := int64(0); i < n; i++ {
			out[i] = resp.BulkOf(e.list[i])
		}
		e.list = e.list[n:]
	} else {
		for i := int64(0); i < n; i++ {
			out[i] = resp.BulkOf(e.list[len(e.list)-1-int(i)])
		}
		e.list = e.list[:int64(len(e.list))-n]
	}
	if len(e.list) == 0 {
		delete(db.data, string(key))
	}
	return resp.ArrayOf(out)
}

func (db *Db) LPop(key []byte, count *int64) resp.Frame { return db.pop(key, true, count) }
func (db *Db) RPop(key []byte, count *int64) resp.Frame { return db.pop(key, false, count) }

func (db *Db) LIndex(key []byte, idx int64) resp.Frame {
	e, wrongType := db.listEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Null()
	}
	i, ok := normalizeIndex(idx, int64(len(e.list)))
	if !ok {
		return resp.Null()
	}
	return resp.BulkOf(e.list[i])
}

func (db *Db) LRange(key []byte, start, end int64) resp.Frame {
	e, wrongType := db.listEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.EmptyArray()
	}
	s, en, empty := normalizeRange(start, end, int64(len(e.list)))
	if empty {
		return resp.EmptyArray()
	}
	out := make([]resp.Frame, 0, en-s+1)
	for i := s; i <= en; i++ {
		out = append(out, resp.BulkOf(e.list[i]))
	}
	return resp.ArrayOf(out)
}

func (db *Db) LInsert(key, pivot, value []byte, before bool) resp.Frame {
	e, wrongType := db.listEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.NegOne()
	}
	idx := -1
	for i, v := range e.list {
		if string(v) == string(pivot) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return resp.NegOne()
	}
	at := idx
	if !before {
		at = idx + 1
	}
	e.list = append(e.list, nil)
	copy(e.list[at+1:], e.list[at:])
	e.list[at] = append([]byte(nil), value...)
	return resp.Integer(int64(len(e.list)))
}

func (db *Db) LSet(key []byte, idx int64, value []byte) resp.Frame {
	e, wrongType := db.listEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.NoSuchKeyErr()
	}
	i, ok := normalizeIndex(idx, int64(len(e.list)))
	if !ok {
		return resp.OutOfRangeErr()
	}
	e.list[i] = append([]byte(nil), value...)
	return resp.OK()
}

// LRem removes occurrences of value: count>0 scans head-to-tail removing up
// to count matches, count<0 scans tail-to-head, count==0 removes all
// (spec 6.3).
func (db *Db) LRem(key []byte, count int64, value []byte) resp.Frame {
	e, wrongType := db.listEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}

	out := make([][]byte, 0, len(e.list))
	var removed int64
	limit := count
	if limit < 0 {
		limit = -limit
	}

	if count >= 0 {
		for _, v := range e.list {
			if (limit == 0 || removed < limit) && string(v) == string(value) {
				removed++
				continue
			}
			out = append(out, v)
		}
	} else {
		for i := len(e.list) - 1; i >= 0; i-- {
			v := e.list[i]
			if removed < limit && string(v) == string(value) {
				removed++
				continue
			}
			out = append([][]byte{v}, out...)
		}
	}
	e.list = out
	if len(e.list) == 0 {
		delete(db.data, string(key))
	}
	return resp.Integer(removed)
}

func (db *Db) LLen(key []byte) resp.Frame {
	e, wrongType := db.listEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	return resp.Integer(int64(len(e.list)))
}
