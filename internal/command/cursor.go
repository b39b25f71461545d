// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"strconv"

	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// Cursor is a stateful view over the frames remaining in a command array,
// after element 0 (the command name) has been consumed. Category parsers
// pull arguments off the front with the typed takers below; each taker
// advances the cursor exactly one frame, except the Remaining* family which
// drains everything left.
type Cursor struct {
	frames []resp.Frame
	pos    int
}

func NewCursor(frames []resp.Frame) *Cursor {
	return &Cursor{frames: frames}
}

func (c *Cursor) Len() int { return len(c.frames) - c.pos }

func (c *Cursor) nextFrame() (resp.Frame, bool) {
	if c.pos >= len(c.frames) {
		return resp.Frame{}, false
	}
	f := c.frames[c.pos]
	c.pos++
	return f, true
}

// frameBytes extracts the raw bytes of a Bulk or Simple frame; any other
// shape as a command argument is a protocol-level type mismatch.
func frameBytes(f resp.Frame) ([]byte, bool) {
	switch f.Type {
	case resp.TypeBulk:
		return f.Bulk, true
	case resp.TypeSimple:
		return []byte(f.Str), true
	default:
		return nil, false
	}
}

// NextBytes takes the next argument as raw bytes, required.
func (c *Cursor) NextBytes() ([]byte, error) {
	f, ok := c.nextFrame()
	if !ok {
		return nil, ErrWrongArgCount
	}
	b, ok := frameBytes(f)
	if !ok {
		return nil, ErrNotIntegerLike
	}
	return b, nil
}

// NextString takes the next argument as a UTF-8 string, required.
func (c *Cursor) NextString() (string, error) {
	b, err := c.NextBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// TryNextString takes the next argument as a string if one remains.
func (c *Cursor) TryNextString() (string, bool, error) {
	if c.Len() == 0 {
		return "", false, nil
	}
	s, err := c.NextString()
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

func (c *Cursor) parseInt(b []byte) (int64, error) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, ErrNotIntegerLike
	}
	return n, nil
}

// NextI64 takes the next argument as a signed 64-bit integer, required.
func (c *Cursor) NextI64() (int64, error) {
	b, err := c.NextBytes()
	if err != nil {
		return 0, err
	}
	return c.parseInt(b)
}

// NextI32 takes the next argument as a signed 32-bit integer, required.
func (c *Cursor) NextI32() (int32, error) {
	n, err := c.NextI64()
	if err != nil {
		return 0, err
	}
	if n < -(1<<31) || n > (1<<31)-1 {
		return 0, ErrNotIntegerLike
	}
	return int32(n), nil
}

// NextIsize takes the next argument as a signed index/offset.
func (c *Cursor) NextIsize() (int64, error) { return c.NextI64() }

// NextUsize takes the next argument as a non-negative size, required.
func (c *Cursor) NextUsize() (uint64, error) {
	n, err := c.NextI64()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrNotIntegerLike
	}
	return uint64(n), nil
}

// TryNextIsize takes the next argument as a signed integer if one remains.
func (c *Cursor) TryNextIsize() (*int64, error) {
	if c.Len() == 0 {
		return nil, nil
	}
	n, err := c.NextIsize()
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// TryNextUsize takes the next argument as a non-negative size if one remains.
func (c *Cursor) TryNextUsize() (*uint64, error) {
	if c.Len() == 0 {
		return nil, nil
	}
	n, err := c.NextUsize()
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// RemainingBytes drains every remaining argument as raw bytes.
func (c *Cursor) RemainingBytes() ([][]byte, error) {
	out := make([][]byte, 0, c.Len())
	for c.Len() > 0 {
		b, err := c.NextBytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// RemainingStrings drains every remaining argument as a string.
func (c *Cursor) RemainingStrings() ([]string, error) {
	out := make([]string, 0, c.Len())
	for c.Len() > 0 {
		s, err := c.NextString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Pair is one (field, value) or (key, value) argument pair, as produced by
// RemainingPairs for commands like MSET and HSET.
type Pair struct {
	First  []byte
	Second []byte
}

// RemainingPairs drains every remaining argument as (first, second) byte
// pairs; an odd number of remaining arguments is InvalidParameter.
func (c *Cursor) RemainingPairs() ([]Pair, error) {
	if c.Len()%2 != 0 {
		return nil, ErrOddPairs
	}
	out := make([]Pair, 0, c.Len()/2)
	for c.Len() > 0 {
		first, err := c.NextBytes()
		if err != nil {
			return nil, err
		}
		second, err := c.NextBytes()
		if err != nil {
			return nil, err
		}
		out = append(out, Pair{First: first, Second: second})
	}
	return out, nil
}

// RequireExhausted reports ErrWrongArgCount if any argument remains
// unconsumed - used by fixed-arity operations after their last taker.
func (c *Cursor) RequireExhausted() error {
	if c.Len() != 0 {
		return ErrWrongArgCount
	}
	return nil
}
