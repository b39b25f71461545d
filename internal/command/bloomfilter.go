// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// BloomFilterOp enumerates the Bloom filter family operations (spec 6.7).
type BloomFilterOp int

const (
	BFAdd BloomFilterOp = iota
	BFMAdd
	BFCard
	BFExists
	BFMExists
)

// BloomFilterCmd is one BF.* command.
type BloomFilterCmd struct {
	Op       BloomFilterOp
	Key      []byte
	Elements [][]byte
}

func (BloomFilterCmd) Family() Family { return FamilyBloomFilter }

func parseBloomFilterCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "bf.add":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		elem, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return BloomFilterCmd{Op: BFAdd, Key: key, Elements: [][]byte{elem}}, nil

	case "bf.madd":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		elems, err := cur.RemainingBytes()
		if err != nil {
			return nil, err
		}
		if len(elems) == 0 {
			return nil, ErrWrongArgCount
		}
		return BloomFilterCmd{Op: BFMAdd, Key: key, Elements: elems}, nil

	case "bf.card":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return BloomFilterCmd{Op: BFCard, Key: key}, nil

	case "bf.exists":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		elem, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return BloomFilterCmd{Op: BFExists, Key: key, Elements: [][]byte{elem}}, nil

	case "bf.mexists":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		elems, err := cur.RemainingBytes()
		if err != nil {
			return nil, err
		}
		if len(elems) == 0 {
			return nil, ErrWrongArgCount
		}
		return BloomFilterCmd{Op: BFMExists, Key: key, Elements: elems}, nil
	}
	return nil, nil
}
