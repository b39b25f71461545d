// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"math/rand"
	"sort"

	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

func (db *Db) setEntry(key []byte) (e *entry, wrongType bool) {
	return db.requireKind(string(key), KindSet)
}

func (db *Db) setEntryForWrite(key []byte) (e *entry, wrongType bool) {
	ks := string(key)
	existing := db.lookup(ks)
	if existing != nil {
		if existing.kind != KindSet {
			return nil, true
		}
		return existing, false
	}
	e = &entry{kind: KindSet, set: make(map[string]struct{})}
	db.data[ks] = e
	return e, false
}

func (db *Db) SAdd(key []byte, members [][]byte) resp.Frame {
	e, wrongType := db.setEntryForWrite(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	var added int64
	for _, m := range members {
		ms := string(m)
		if _, ok := e.set[ms]; !ok {
			e.set[ms] = struct{}{}
			added++
		}
	}
	return resp.Integer(added)
}

func (db *Db) SCard(key []byte) resp.Frame {
	e, wrongType := db.setEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	return resp.Integer(int64(len(e.set)))
}

// sortedMembers returns a set's members in sorted order, for deterministic
// reply encoding (spec 6.5 "SMEMBERS sorted").
func sortedMembers(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func (db *Db) SMembers(key []byte) resp.Frame {
	e, wrongType := db.setEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.EmptyArray()
	}
	members := sortedMembers(e.set)
	out := make([]resp.Frame, len(members))
	for i, m := range members {
		out[i] = resp.BulkString(m)
	}
	return resp.ArrayOf(out)
}

func (db *Db) SIsMember(key, member []byte) resp.Frame {
	e, wrongType := db.setEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	if _, ok := e.set[string(member)]; ok {
		return resp.One()
	}
	return resp.Zero()
}

func (db *Db) SRem(key []byte, members [][]byte) resp.Frame {
	e, wrongType := db.setEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if e == nil {
		return resp.Zero()
	}
	var n int64
	for _, m := range members {
		ms := string(m)
		if _, ok := e.set[ms]; ok {
			delete(e.set, ms)
			n++
		}
	}
	if len(e.set) == 0 {
		delete(db.data, string(key))
	}
	return resp.Integer(n)
}

// SRandMember implements spec 6.5's SRANDMEMBER: no count -> one random
// member (Null if the set is absent/empty); count>=0 -> up to count
// distinct members, never repeating; count<0 -> exactly |count| members,
// possibly repeating, matching the original's random_member.rs contract.
func (db *Db) SRandMember(key []byte, count *int64) resp.Frame {
	e, wrongType := db.setEntry(key)
	if wrongType {
		return resp.WrongTypeErr()
	}

	if count == nil {
		if e == nil || len(e.set) == 0 {
			return resp.Null()
		}
		members := sortedMembers(e.set)
		return resp.BulkString(members[rand.Intn(len(members))])
	}

	if e == nil || len(e.set) == 0 {
		return resp.EmptyArray()
	}
	members := sortedMembers(e.set)
	n := *count

	if n >= 0 {
		if n > int64(len(members)) {
			n = int64(len(members))
		}
		perm := rand.Perm(len(members))[:n]
		out := make([]resp.Frame, n)
		for i, idx := range perm {
			out[i] = resp.BulkString(members[idx])
		}
		return resp.ArrayOf(out)
	}

	n = -n
	out := make([]resp.Frame, n)
	for i := int64(0); i < n; i++ {
		out[i] = resp.BulkString(members[rand.Intn(len(members))])
	}
	return resp.ArrayOf(out)
}

// loadSetsForOp resolves each key to its member set, applying spec 5's
// type-mismatch rule; a missing key is treated as an empty set.
func (db *Db) loadSetsForOp(keys []string) (sets []map[string]struct{}, wrongType bool) {
	sets = make([]map[string]struct{}, len(keys))
	for i, k := range keys {
		e, wt := db.setEntry([]byte(k))
		if wt {
			return nil, true
		}
		if e == nil {
			sets[i] = nil
			continue
		}
		sets[i] = e.set
	}
	return sets, false
}

func frameFromMembers(members []string) resp.Frame {
	sort.Strings(members)
	out := make([]resp.Frame, len(members))
	for i, m := range members {
		out[i] = resp.BulkString(m)
	}
	return resp.ArrayOf(out)
}

func (db *Db) SInter(keys []string) resp.Frame {
	sets, wrongType := db.loadSetsForOp(keys)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if len(sets) == 0 || sets[0] == nil {
		return resp.EmptyArray()
	}
	result := make([]string, 0, len(sets[0]))
	for m := range sets[0] {
		inAll := true
		for _, s := range sets[1:] {
			if _, ok := s[m]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			result = append(result, m)
		}
	}
	return frameFromMembers(result)
}

func (db *Db) SUnion(keys []string) resp.Frame {
	sets, wrongType := db.loadSetsForOp(keys)
	if wrongType {
		return resp.WrongTypeErr()
	}
	seen := make(map[string]struct{})
	for _, s := range sets {
		for m := range s {
			seen[m] = struct{}{}
		}
	}
	result := make([]string, 0, len(seen))
	for m := range seen {
		result = append(result, m)
	}
	return frameFromMembers(result)
}

func (db *Db) SDiff(keys []string) resp.Frame {
	sets, wrongType := db.loadSetsForOp(keys)
	if wrongType {
		return resp.WrongTypeErr()
	}
	if len(sets) == 0 || sets[0] == nil {
		return resp.EmptyArray()
	}
	result := make([]string, 0, len(sets[0]))
	for m := range sets[0] {
		inAny := false
		for _, s := range sets[1:] {
			if _, ok := s[m]; ok {
				inAny = true
				break
			}
		}
		if !inAny {
			result = append(result, m)
		}
	}
	return frameFromMembers(result)
}
