// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// BitmapOp enumerates the Bitmap-family operations (spec 6.2). Bitmaps
// share String's storage cell: a bitmap is simply a string read/written bit
// by bit, so these commands carry Key/Value like StringCmd but are routed
// as their own Family for dispatch purposes (spec 4.5).
type BitmapOp int

const (
	BitmapSetBit BitmapOp = iota
	BitmapGetBit
	BitmapCount
)

// BitmapCmd is one Bitmap-family command.
type BitmapCmd struct {
	Op       BitmapOp
	Key      []byte
	Offset   uint64
	Value    int32 // SETBIT's 0/1 bit value
	HasRange bool
	Start    int64 // BITCOUNT's optional byte range
	End      int64
}

func (BitmapCmd) Family() Family { return FamilyBitmap }

func parseBitmapCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "setbit":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		offset, err := cur.NextUsize()
		if err != nil {
			return nil, err
		}
		bit, err := cur.NextI32()
		if err != nil {
			return nil, err
		}
		if bit != 0 && bit != 1 {
			return nil, ErrNotIntegerLike
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return BitmapCmd{Op: BitmapSetBit, Key: key, Offset: offset, Value: bit}, nil

	case "getbit":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		offset, err := cur.NextUsize()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return BitmapCmd{Op: BitmapGetBit, Key: key, Offset: offset}, nil

	case "bitcount":
		key, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		start, err := cur.TryNextIsize()
		if err != nil {
			return nil, err
		}
		cmd := BitmapCmd{Op: BitmapCount, Key: key}
		if start != nil {
			end, err := cur.NextIsize()
			if err != nil {
				return nil, err
			}
			cmd.HasRange = true
			cmd.Start = *start
			cmd.End = end
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return cmd, nil
	}
	return nil, nil
}
