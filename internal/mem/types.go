// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mem implements the typed keyspace engine: a single flat map from
// key to one of String/List/Hash/Set/HyperLogLog/BloomFilter, plus the
// per-family operation handlers that the Mem component (Task, in task.go)
// runs against it. Bitmaps are not a distinct storage kind - SETBIT/GETBIT/
// BITCOUNT operate on the same []byte cell String does (spec 6.2).
//
// Db is not safe for concurrent use. Spec 4.7 requires the keyspace to have
// exactly one consumer; callers serialize access by construction (a single
// goroutine owns the Db and reads commands off a channel), not with a lock.
package mem

import "github.com/ClusterCockpit/radonkv/pkg/resp"

// Kind identifies which family's representation a keyspace entry holds.
type Kind int

const (
	KindString Kind = iota
	KindList
	KindHash
	KindSet
	KindHyperLogLog
	KindBloomFilter
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindHash:
		return "hash"
	case KindSet:
		return "set"
	case KindHyperLogLog:
		return "hyperloglog"
	case KindBloomFilter:
		return "bloomfilter"
	default:
		return "none"
	}
}

// entry is one keyspace slot. Exactly one of the typed fields below is
// meaningful, selected by kind.
type entry struct {
	kind Kind

	str  []byte
	list [][]byte
	hash map[string][]byte
	set  map[string]struct{}
	hll  *hyperLogLog
	bf   *bloomFilter
}

// Db is the keyspace: one flat map shared by every command family.
type Db struct {
	data map[string]*entry

	// maxStringBytes ceilings how large a string value SetRange may grow a
	// key to (spec 6.1: "Length overflow guard rejects writes that would
	// exceed implementation ceiling"). Defaults to pkg/resp's own bulk
	// ceiling; cmd/radonkv-server overrides it from the configured limit via
	// SetMaxStringBytes, keeping the two ceilings in sync.
	maxStringBytes int64
}

// NewDb constructs an empty keyspace.
func NewDb() *Db {
	return &Db{
		data:           make(map[string]*entry),
		maxStringBytes: resp.DefaultLimits().MaxBulkLen,
	}
}

// SetMaxStringBytes overrides the SETRANGE growth ceiling, matching
// the server's configured max-bulk-bytes limit.
func (db *Db) SetMaxStringBytes(n int64) {
	db.maxStringBytes = n
}

// lookup returns the entry for key, or nil if absent.
func (db *Db) lookup(key string) *entry {
	return db.data[key]
}

// requireKind returns the entry for key if it exists and matches kind,
// reports wrongType=true if it exists with a different kind (spec 5:
// "type mismatch on existing key -> WRONGTYPE, key unchanged"), and
// returns (nil, false) if the key is simply absent.
func (db *Db) requireKind(key string, kind Kind) (e *entry, wrongType bool) {
	e = db.lookup(key)
	if e == nil {
		return nil, false
	}
	if e.kind != kind {
		return nil, true
	}
	return e, false
}

// Del removes keys, returning how many actually existed (spec 6.8).
func (db *Db) Del(keys [][]byte) int64 {
	var n int64
	for _, k := range keys {
		if _, ok := db.data[string(k)]; ok {
			delete(db.data, string(k))
			n++
		}
	}
	return n
}

// Exists counts how many of keys are present, with multiplicity: the same
// key repeated twice counts twice if present (spec 6.8).
func (db *Db) Exists(keys [][]byte) int64 {
	var n int64
	for _, k := range keys {
		if _, ok := db.data[string(k)]; ok {
			n++
		}
	}
	return n
}

// typeTag is the wire tag name TYPE reports for kind, per spec 4.6 - distinct
// from Kind.String()'s long form, since the wire contract shortens
// HyperLogLog/BloomFilter to "hyper"/"bloom" (matching the original's
// src/mem/generic/get_type.rs) while logging keeps the long names.
func (k Kind) typeTag() string {
	switch k {
	case KindHyperLogLog:
		return "hyper"
	case KindBloomFilter:
		return "bloom"
	default:
		return k.String()
	}
}

// Type reports the keyspace entry's TYPE tag, or "none" if key is absent.
func (db *Db) Type(key []byte) string {
	e := db.lookup(string(key))
	if e == nil {
		return "none"
	}
	return e.kind.typeTag()
}

// Rename moves the value at key to newKey, overwriting any value already at
// newKey. Reports false if key does not exist.
func (db *Db) Rename(key, newKey []byte) bool {
	e, ok := db.data[string(key)]
	if !ok {
		return false
	}
	delete(db.data, string(key))
	db.data[string(newKey)] = e
	return true
}

// DBSize reports the number of keys currently stored.
func (db *Db) DBSize() int64 {
	return int64(len(db.data))
}

// Flush empties the keyspace and returns the entries that were in it, so a
// caller wanting FLUSHDB ASYNC semantics can hand the teardown to another
// goroutine instead of blocking Mem's single consumer (spec 6.8).
func (db *Db) Flush() []*entry {
	old := make([]*entry, 0, len(db.data))
	for _, e := range db.data {
		old = append(old, e)
	}
	db.data = make(map[string]*entry)
	return old
}

// normalizeRange applies spec 5's range-normalization rule shared by every
// family with LRANGE/GETRANGE-like semantics: negative indices count from
// the end, both bounds clamp into [0, length-1], and the range is empty if
// start ends up after end or the collection is empty.
func normalizeRange(start, end, length int64) (s, e int64, empty bool) {
	if length == 0 {
		return 0, 0, true
	}
	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}
	if start < 0 {
		start = 0
	}
	if end > length-1 {
		end = length - 1
	}
	if start > end || start >= length || end < 0 {
		return 0, 0, true
	}
	return start, end, false
}

// normalizeIndex applies spec 5's single-index rule: negative counts from
// the end, but out-of-range (even after adjustment) reports ok=false rather
// than clamping.
func normalizeIndex(idx, length int64) (i int64, ok bool) {
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}
