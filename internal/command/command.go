// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package command decodes a RESP array-of-frames into one of a closed set
// of typed Command values. A fixed ordered list of category parsers is
// tried per command name (spec 4.2); the first to recognize the name wins.
// All argument validation happens here, at decode time, so the keyspace
// engine's handlers are total over their inputs.
package command

import (
	"strings"

	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// Family names the logical command group a Command belongs to, used by the
// Dispatcher to choose a destination component (spec 4.5).
type Family int

const (
	FamilyString Family = iota
	FamilyList
	FamilyHash
	FamilySet
	FamilyBitmap
	FamilyHyperLogLog
	FamilyBloomFilter
	FamilyGeneric
	FamilyConnManagement
	FamilyClusterManagement
	FamilyServerManagement
	FamilyStorageManagement
)

func (f Family) String() string {
	switch f {
	case FamilyString:
		return "string"
	case FamilyList:
		return "list"
	case FamilyHash:
		return "hash"
	case FamilySet:
		return "set"
	case FamilyBitmap:
		return "bitmap"
	case FamilyHyperLogLog:
		return "hyperloglog"
	case FamilyBloomFilter:
		return "bloomfilter"
	case FamilyGeneric:
		return "generic"
	case FamilyConnManagement:
		return "conn"
	case FamilyClusterManagement:
		return "cluster"
	case FamilyServerManagement:
		return "server"
	case FamilyStorageManagement:
		return "storage"
	default:
		return "unknown"
	}
}

// Command is the closed sum of parsed command families. Concrete types
// implementing it carry already-validated, typed arguments.
type Command interface {
	Family() Family
}

// categoryParser tries to recognize cmdName; it returns (nil, nil) when the
// name does not belong to its category; a non-nil error is always fatal to
// parsing this command (spec 4.2 "first to recognize the command name
// returns the built Command").
type categoryParser func(cmdName string, cur *Cursor) (Command, error)

// parsers is the fixed ordered list tried per command name. Order does not
// affect correctness today (no name is claimed by two parsers) but is kept
// stable since spec 4.2 specifies an ordered registry.
var parsers = []categoryParser{
	parseConnCommand,
	parseStringCommand,
	parseBitmapCommand,
	parseListCommand,
	parseHashCommand,
	parseSetCommand,
	parseHyperLogLogCommand,
	parseBloomFilterCommand,
	parseGenericCommand,
	parseClusterCommand,
	parseServerCommand,
	parseStorageCommand,
}

// Parse decodes one RESP frame, expected to be an Array of command-name
// followed by arguments, into a Command. A non-array outer frame is a
// ProtocolError (spec 4.2).
func Parse(f resp.Frame) (Command, error) {
	if f.Type != resp.TypeArray {
		return nil, errProtocol(ErrNotArray)
	}
	if len(f.Array) == 0 {
		return nil, errProtocol(ErrEmptyCommand)
	}

	nameFrame := f.Array[0]
	nameBytes, ok := frameBytes(nameFrame)
	if !ok {
		return nil, errProtocol(ErrNotIntegerLike)
	}
	name := strings.ToLower(string(nameBytes))

	cur := NewCursor(f.Array[1:])
	for _, parser := range parsers {
		cmd, err := parser(name, cur)
		if err != nil {
			return nil, asParseError(err)
		}
		if cmd != nil {
			return cmd, nil
		}
	}
	return nil, errNotFound(name)
}

// asParseError wraps a plain sentinel (ErrWrongArgCount, etc.) returned by a
// cursor taker as InvalidParameter, leaving already-typed *ParseError values
// (e.g. from a nested Parse call) untouched.
func asParseError(err error) error {
	if _, ok := err.(*ParseError); ok {
		return err
	}
	return errInvalidParam(err)
}
