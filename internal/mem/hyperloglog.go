// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"math"
	"math/bits"

	"github.com/cespare/xxhash/v2"

	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// hllPrecision is the number of bits used to select a register; 14 bits
// gives 16384 registers and a standard error around 0.81%.
const (
	hllPrecision = 14
	hllM         = 1 << hllPrecision
)

// hyperLogLog is a dense HLL sketch, one byte per register (only the low 6
// bits are ever used, since the maximum rank with a 64-bit hash and 14
// index bits is 64-14+1 = 51).
type hyperLogLog struct {
	registers [hllM]uint8
}

func newHyperLogLog() *hyperLogLog {
	return &hyperLogLog{}
}

// add folds one element's hash into the sketch, keeping the larger of the
// existing and new rank at its register (spec 6.6).
func (h *hyperLogLog) add(element []byte) bool {
	sum := xxhash.Sum64(element)
	idx := sum >> (64 - hllPrecision)
	rest := sum<<hllPrecision | (1 << (hllPrecision - 1))
	rank := uint8(bits.LeadingZeros64(rest)) + 1
	if rank > h.registers[idx] {
		h.registers[idx] = rank
		return true
	}
	return false
}

// merge folds other's registers into h, register by register, keeping the
// max of each pair - the only correct way to combine two HLL sketches
// without double-counting (spec 9: "correct register-wise-max merge").
func (h *hyperLogLog) merge(other *hyperLogLog) {
	for i := range h.registers {
		if other.registers[i] > h.registers[i] {
			h.registers[i] = other.registers[i]
		}
	}
}

// count estimates cardinality via the standard HLL estimator with small- and
// large-range corrections (Flajolet et al.).
func (h *hyperLogLog) count() int64 {
	sum := 0.0
	zeros := 0
	for _, r := range h.registers {
		sum += 1.0 / float64(uint64(1)<<r)
		if r == 0 {
			zeros++
		}
	}

	alpha := 0.7213 / (1.0 + 1.079/float64(hllM))
	estimate := alpha * hllM * hllM / sum

	if estimate <= 2.5*hllM && zeros > 0 {
		return int64(math.Round(hllM * math.Log(float64(hllM)/float64(zeros))))
	}
	return int64(math.Round(estimate))
}

func (db *Db) hllEntry(key []byte) (e *entry, wrongType bool) {
	return db.requireKind(string(key), KindHyperLogLog)
}

func (db *Db) hllEntryForWrite(key []byte) (e *entry, created, wrongType bool) {
	ks := string(key)
	existing := db.lookup(ks)
	if existing != nil {
		if existing.kind != KindHyperLogLog {
			return nil, false, true
		}
		return existing, false, false
	}
	e = &entry{kind: KindHyperLogLog, hll: newHyperLogLog()}
	db.data[ks] = e
	return e, true, false
}

// PFAdd creates key's sketch if absent and adds elements to it. Creating a
// fresh sketch counts as a change even with zero elements given (spec 6.6),
// so PFADD key on an absent key still reports 1.
func (db *Db) PFAdd(key []byte, elements [][]byte) resp.Frame {
	e, created, wrongType := db.hllEntryForWrite(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	changed := created
	for _, elem := range elements {
		if e.hll.add(elem) {
			changed = true
		}
	}
	if changed {
		return resp.One()
	}
	return resp.Zero()
}

func (db *Db) PFCount(keys []string) resp.Frame {
	merged := newHyperLogLog()
	for _, k := range keys {
		e, wrongType := db.hllEntry([]byte(k))
		if wrongType {
			return resp.WrongTypeErr()
		}
		if e == nil {
			continue
		}
		merged.merge(e.hll)
	}
	return resp.Integer(merged.count())
}

func (db *Db) PFMerge(dest []byte, sources []string) resp.Frame {
	destEntry, _, wrongType := db.hllEntryForWrite(dest)
	if wrongType {
		return resp.WrongTypeErr()
	}
	for _, k := range sources {
		e, wt := db.hllEntry([]byte(k))
		if wt {
			return resp.WrongTypeErr()
		}
		if e == nil {
			continue
		}
		destEntry.hll.merge(e.hll)
	}
	return resp.OK()
}
