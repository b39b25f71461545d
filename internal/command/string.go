// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// StringOp enumerates the String-family operations (spec 6.1). MGET/MSET
// operate on multiple keys at once and carry their own field instead of Key.
type StringOp int

const (
	StringSet StringOp = iota
	StringGet
	StringAppend
	StringStrlen
	StringGetSet
	StringGetDel
	StringGetRange
	StringSetRange
	StringMGet
	StringMSet
)

// StringCmd is one String-family command. Only the fields relevant to Op are
// populated; see spec 6.1 for per-operation semantics.
type StringCmd struct {
	Op     StringOp
	Key    []byte
	Value  []byte
	Start  int64
	End    int64
	Offset int64
	Keys   []string      // MGET
	Pairs  []Pair        // MSET
}

func (StringCmd) Family() Family { return FamilyString }

func parseStringCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "set":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		val, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StringCmd{Op: StringSet, Key: key, Value: val}, nil

	case "get":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StringCmd{Op: StringGet, Key: key}, nil

	case "append":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		val, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StringCmd{Op: StringAppend, Key: key, Value: val}, nil

	case "strlen":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StringCmd{Op: StringStrlen, Key: key}, nil

	case "getset":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		val, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StringCmd{Op: StringGetSet, Key: key, Value: val}, nil

	case "getdel":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StringCmd{Op: StringGetDel, Key: key}, nil

	case "getrange", "substr":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		start, err := cur.NextIsize()
		if err != nil {
			return nil, err
		}
		end, err := cur.NextIsize()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StringCmd{Op: StringGetRange, Key: key, Start: start, End: end}, nil

	case "setrange":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		offset, err := cur.NextIsize()
		if err != nil {
			return nil, err
		}
		val, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StringCmd{Op: StringSetRange, Key: key, Offset: offset, Value: val}, nil

	case "mget":
		keys, err := cur.RemainingStrings()
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, ErrWrongArgCount
		}
		return StringCmd{Op: StringMGet, Keys: keys}, nil

	case "mset":
		pairs, err := cur.RemainingPairs()
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return nil, ErrWrongArgCount
		}
		return StringCmd{Op: StringMSet, Pairs: pairs}, nil
	}
	return nil, nil
}
