// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// Fixed-size Bloom filter parameters. The spec carries no BF.RESERVE sizing
// command, so every filter uses the same bit budget and hash count, sized
// for roughly 100k elements at a 1% false-positive rate.
const (
	bfNumBits   = 1 << 20 // one megabit per filter
	bfNumHashes = 7
)

// bloomFilter is a classic k-hash Bloom filter addressed with Kirsch-
// Mitzenmacher double hashing (two independent xxhash digests combined
// linearly), avoiding a dependency on k separate hash functions.
type bloomFilter struct {
	bits    []uint64
	inserts uint64 // count of elements passed to BF.ADD/BF.MADD, one per element, not distinct elements
}

func newBloomFilter() *bloomFilter {
	return &bloomFilter{bits: make([]uint64, bfNumBits/64)}
}

func (b *bloomFilter) positions(element []byte) [bfNumHashes]uint64 {
	h1 := xxhash.Sum64(element)
	h2 := xxhash.Sum64(append(append([]byte(nil), element...), 0xff))
	var out [bfNumHashes]uint64
	for i := 0; i < bfNumHashes; i++ {
		out[i] = (h1 + uint64(i)*h2) % bfNumBits
	}
	return out
}

func (b *bloomFilter) testBit(pos uint64) bool {
	return b.bits[pos/64]&(1<<(pos%64)) != 0
}

func (b *bloomFilter) setBit(pos uint64) {
	b.bits[pos/64] |= 1 << (pos % 64)
}

// add reports whether element was new (at least one bit was previously
// unset), per BF.ADD's reply contract. inserts always increments, per spec
// 6.7's "BF.CARD as inserts observed, not distinct count".
func (b *bloomFilter) add(element []byte) bool {
	b.inserts++
	positions := b.positions(element)
	var isNew bool
	for _, p := range positions {
		if !b.testBit(p) {
			isNew = true
		}
		b.setBit(p)
	}
	return isNew
}

func (b *bloomFilter) test(element []byte) bool {
	for _, p := range b.positions(element) {
		if !b.testBit(p) {
			return false
		}
	}
	return true
}

func (db *Db) bloomEntry(key []byte) (e *entry, wrongType bool) {
	return db.requireKind(string(key), KindBloomFilter)
}

func (db *Db) bloomEntryForWrite(key []byte) (e *entry, wrongType bool) {
	ks := string(key)
	existing := db.lookup(ks)
	if existing != nil {
		if existing.kind != KindBloomFilter {
			return nil, true
		}
		return existing, false
	}
	e = &entry{kind: KindBloomFilter, bf: newBloomFilter()}
	db.data[ks] = e
	return e, false
}

func (db *Db) BFAdd(key, element []byte) resp.Frame {
	e, wrongType := db.bloomEntryForWrite(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e.bf.add(element) {
		return resp.One()
	}
	return resp.Zero()
}

func (db *Db) BFMAdd(key []byte, elements [][]byte) resp.Frame {
	e, wrongType := db.bloomEntryForWrite(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	out := make([]resp.Frame, len(elements))
	for i, elem := range elements {
		if e.bf.add(elem) {
			out[i] = resp.One()
		} else {
			out[i] = resp.Zero()
		}
	}
	return resp.ArrayOf(out)
}

func (db *Db) BFCard(key []byte) resp.Frame {
	e, wrongType := db.bloomEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	return resp.Integer(int64(e.bf.inserts))
}

func (db *Db) BFExists(key, element []byte) resp.Frame {
	e, wrongType := db.bloomEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	if e.bf.test(element) {
		return resp.One()
	}
	return resp.Zero()
}

func (db *Db) BFMExists(key []byte, elements [][]byte) resp.Frame {
	e, wrongType := db.bloomEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	out := make([]resp.Frame, len(elements))
	for i, elem := range elements {
		found := e != nil && e.bf.test(elem)
		if found {
			out[i] = resp.One()
		} else {
			out[i] = resp.Zero()
		}
	}
	return resp.ArrayOf(out)
}
