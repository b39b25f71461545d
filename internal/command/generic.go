// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import "strings"

// GenericOp enumerates the Generic-family operations (spec 6.8).
type GenericOp int

const (
	GenericDel GenericOp = iota
	GenericExists
	GenericType
	GenericRename
	GenericDBSize
	GenericFlushDB
)

// GenericCmd is one Generic-family command.
type GenericCmd struct {
	Op      GenericOp
	Keys    [][]byte // DEL/EXISTS, multiplicity per spec 6.8
	Key     []byte   // TYPE/RENAME source
	NewKey  []byte   // RENAME destination
	IsAsync bool     // FLUSHDB ASYNC
}

func (GenericCmd) Family() Family { return FamilyGeneric }

func parseGenericCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "del", "exists":
		keys, err := cur.RemainingBytes()
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, ErrWrongArgCount
		}
		op := GenericDel
		if name == "exists" {
			op = GenericExists
		}
		return GenericCmd{Op: op, Keys: keys}, nil

	case "type":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return GenericCmd{Op: GenericType, Key: key}, nil

	case "rename":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		newKey, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return GenericCmd{Op: GenericRename, Key: key, NewKey: newKey}, nil

	case "dbsize":
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return GenericCmd{Op: GenericDBSize}, nil

	case "flushdb":
		mode, present, err := cur.TryNextString()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		cmd := GenericCmd{Op: GenericFlushDB}
		if present {
			switch strings.ToUpper(mode) {
			case "ASYNC":
				cmd.IsAsync = true
			case "SYNC":
				cmd.IsAsync = false
			default:
				return nil, ErrNotIntegerLike
			}
		}
		return cmd, nil
	}
	return nil, nil
}
