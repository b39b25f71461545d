// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// HashOp enumerates the Hash-family operations (spec 6.4).
type HashOp int

const (
	HashSet HashOp = iota
	HashGet
	HashExists
	HashDel
	HashLen
	HashKeys
	HashVals
	HashGetAll
	HashStrlen
)

// HashCmd is one Hash-family command.
type HashCmd struct {
	Op     HashOp
	Key    []byte
	Field  []byte   // HGET/HEXISTS/HSTRLEN
	Fields [][]byte // HDEL
	Pairs  []Pair   // HSET
}

func (HashCmd) Family() Family { return FamilyHash }

func parseHashCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "hset":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		pairs, err := cur.RemainingPairs()
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return nil, ErrWrongArgCount
		}
		return HashCmd{Op: HashSet, Key: key, Pairs: pairs}, nil

	case "hget":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		field, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return HashCmd{Op: HashGet, Key: key, Field: field}, nil

	case "hexists":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		field, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return HashCmd{Op: HashExists, Key: key, Field: field}, nil

	case "hdel":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		fields, err := cur.RemainingBytes()
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			return nil, ErrWrongArgCount
		}
		return HashCmd{Op: HashDel, Key: key, Fields: fields}, nil

	case "hlen":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return HashCmd{Op: HashLen, Key: key}, nil

	case "hkeys":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return HashCmd{Op: HashKeys, Key: key}, nil

	case "hvals":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return HashCmd{Op: HashVals, Key: key}, nil

	case "hgetall":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return HashCmd{Op: HashGetAll, Key: key}, nil

	case "hstrlen":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		field, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return HashCmd{Op: HashStrlen, Key: key, Field: field}, nil
	}
	return nil, nil
}
