// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// HyperLogLogOp enumerates the HyperLogLog-family operations (spec 6.6).
type HyperLogLogOp int

const (
	HLLAdd HyperLogLogOp = iota
	HLLCount
	HLLMerge
)

// HyperLogLogCmd is one HyperLogLog-family command.
type HyperLogLogCmd struct {
	Op          HyperLogLogOp
	Key         []byte
	Elements    [][]byte // PFADD
	Keys        []string // PFCOUNT, PFMERGE sources
	Destination []byte   // PFMERGE
}

func (HyperLogLogCmd) Family() Family { return FamilyHyperLogLog }

func parseHyperLogLogCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "pfadd":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		elements, err := cur.RemainingBytes()
		if err != nil {
			return nil, err
		}
		return HyperLogLogCmd{Op: HLLAdd, Key: key, Elements: elements}, nil

	case "pfcount":
		keys, err := cur.RemainingStrings()
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, ErrWrongArgCount
		}
		return HyperLogLogCmd{Op: HLLCount, Keys: keys}, nil

	case "pfmerge":
		dest, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		sources, err := cur.RemainingStrings()
		if err != nil {
			return nil, err
		}
		return HyperLogLogCmd{Op: HLLMerge, Destination: dest, Keys: sources}, nil
	}
	return nil, nil
}
