// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// SetOp enumerates the Set-family operations (spec 6.5).
type SetOp int

const (
	SetAdd SetOp = iota
	SetCard
	SetMembers
	SetIsMember
	SetRem
	SetRandMember
	SetInter
	SetUnion
	SetDiff
)

// SetCmd is one Set-family command. SINTER/SUNION/SDIFF take Keys (the set
// itself plus every other operand); all others take a single Key.
type SetCmd struct {
	Op      SetOp
	Key     []byte
	Members [][]byte // SADD/SREM
	Member  []byte   // SISMEMBER
	Count   *int64   // SRANDMEMBER's optional count
	Keys    []string // SINTER/SUNION/SDIFF
}

func (SetCmd) Family() Family { return FamilySet }

func parseSetCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "sadd":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		members, err := cur.RemainingBytes()
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, ErrWrongArgCount
		}
		return SetCmd{Op: SetAdd, Key: key, Members: members}, nil

	case "scard", "slen":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return SetCmd{Op: SetCard, Key: key}, nil

	case "smembers":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return SetCmd{Op: SetMembers, Key: key}, nil

	case "sismember":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		member, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return SetCmd{Op: SetIsMember, Key: key, Member: member}, nil

	case "srem":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		members, err := cur.RemainingBytes()
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, ErrWrongArgCount
		}
		return SetCmd{Op: SetRem, Key: key, Members: members}, nil

	case "srandmember":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		count, err := cur.TryNextIsize()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return SetCmd{Op: SetRandMember, Key: key, Count: count}, nil

	case "sinter", "sunion", "sdiff":
		keys, err := cur.RemainingStrings()
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, ErrWrongArgCount
		}
		op := map[string]SetOp{"sinter": SetInter, "sunion": SetUnion, "sdiff": SetDiff}[name]
		return SetCmd{Op: op, Keys: keys}, nil
	}
	return nil, nil
}
