// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Record is one keyspace entry in a form safe to hand to an external
// encoder (internal/storage), without exposing entry's unexported fields.
type Record struct {
	Key     string
	Kind    Kind
	Payload []byte // gob-encoded, kind-specific
}

// gobPayload mirrors entry's typed fields one-to-one; kept separate from
// entry itself so changing the in-memory representation never breaks
// on-disk snapshot compatibility by accident.
type gobPayload struct {
	Str  []byte
	List [][]byte
	Hash map[string][]byte
	Set  map[string]struct{}
	HLL  *[hllM]uint8
	BF   *bloomSnapshot
}

type bloomSnapshot struct {
	Bits    []uint64
	Inserts uint64
}

// Export serializes every keyspace entry into Records, for SAVE/BGSAVE to
// hand to a SnapshotTarget (spec 4.6; body out of spec's stated scope, but
// wired here so the command contract has somewhere real to go).
func (db *Db) Export() ([]Record, error) {
	records := make([]Record, 0, len(db.data))
	for key, e := range db.data {
		payload := gobPayload{Str: e.str, List: e.list, Hash: e.hash, Set: e.set}
		if e.hll != nil {
			payload.HLL = &e.hll.registers
		}
		if e.bf != nil {
			payload.BF = &bloomSnapshot{Bits: e.bf.bits, Inserts: e.bf.inserts}
		}

		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(&payload); err != nil {
			return nil, fmt.Errorf("encode entry %q: %w", key, err)
		}
		records = append(records, Record{Key: key, Kind: e.kind, Payload: buf.Bytes()})
	}
	return records, nil
}

// Import restores a keyspace previously produced by Export, replacing
// whatever Db currently holds.
func (db *Db) Import(records []Record) error {
	data := make(map[string]*entry, len(records))
	for _, r := range records {
		var payload gobPayload
		if err := gob.NewDecoder(bytes.NewReader(r.Payload)).Decode(&payload); err != nil {
			return fmt.Errorf("decode entry %q: %w", r.Key, err)
		}
		e := &entry{kind: r.Kind, str: payload.Str, list: payload.List, hash: payload.Hash, set: payload.Set}
		if payload.HLL != nil {
			e.hll = &hyperLogLog{registers: *payload.HLL}
		}
		if payload.BF != nil {
			e.bf = &bloomFilter{bits: payload.BF.Bits, inserts: payload.BF.Inserts}
		}
		data[r.Key] = e
	}
	db.data = data
	return nil
}
