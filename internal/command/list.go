// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import "strings"

// ListOp enumerates the List-family operations (spec 6.3).
type ListOp int

const (
	ListLPush ListOp = iota
	ListRPush
	ListLPushX
	ListRPushX
	ListLPop
	ListRPop
	ListIndex
	ListRange
	ListInsert
	ListSet
	ListRem
	ListLen
)

// ListCmd is one List-family command.
type ListCmd struct {
	Op         ListOp
	Key        []byte
	Values     [][]byte // LPUSH/RPUSH/LPUSHX/RPUSHX
	Index      int64    // LINDEX/LSET
	Value      []byte   // LSET's new value, LINSERT's value, LREM's value
	Start      int64    // LRANGE
	End        int64
	Count      *int64 // LPOP/RPOP's optional count
	Before     bool   // LINSERT: true = BEFORE, false = AFTER
	Pivot      []byte // LINSERT
	RemCount   int64  // LREM
}

func (ListCmd) Family() Family { return FamilyList }

func parseListCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "lpush", "rpush", "lpushx", "rpushx":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		values, err := cur.RemainingBytes()
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			return nil, ErrWrongArgCount
		}
		op := map[string]ListOp{"lpush": ListLPush, "rpush": ListRPush, "lpushx": ListLPushX, "rpushx": ListRPushX}[name]
		return ListCmd{Op: op, Key: key, Values: values}, nil

	case "lpop", "rpop":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		count, err := cur.TryNextUsize()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		cmd := ListCmd{Op: ListLPop, Key: key}
		if name == "rpop" {
			cmd.Op = ListRPop
		}
		if count != nil {
			n := int64(*count)
			cmd.Count = &n
		}
		return cmd, nil

	case "lindex":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		idx, err := cur.NextIsize()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ListCmd{Op: ListIndex, Key: key, Index: idx}, nil

	case "lrange":
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
		return ListCmd{Op: ListRange, Key: key, Start: start, End: end}, nil

	case "linsert":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		where, err := cur.NextString()
		if err != nil {
			return nil, err
		}
		pivot, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		value, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		var before bool
		switch strings.ToLower(where) {
		case "before":
			before = true
		case "after":
			before = false
		default:
			return nil, ErrNotIntegerLike
		}
		return ListCmd{Op: ListInsert, Key: key, Pivot: pivot, Value: value, Before: before}, nil

	case "lset":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		idx, err := cur.NextIsize()
		if err != nil {
			return nil, err
		}
		value, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ListCmd{Op: ListSet, Key: key, Index: idx, Value: value}, nil

	case "lrem":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		count, err := cur.NextIsize()
		if err != nil {
			return nil, err
		}
		value, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ListCmd{Op: ListRem, Key: key, RemCount: count, Value: value}, nil

	case "llen":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ListCmd{Op: ListLen, Key: key}, nil
	}
	return nil, nil
}
