// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

func arrayCmd(parts ...string) resp.Frame {
	frames := make([]resp.Frame, len(parts))
	for i, p := range parts {
		frames[i] = resp.BulkString(p)
	}
	return resp.ArrayOf(frames)
}

func TestParseKnownCommands(t *testing.T) {
	tests := []struct {
		name   string
		frame  resp.Frame
		family Family
	}{
		{"ping", arrayCmd("PING"), FamilyConnManagement},
		{"echo", arrayCmd("ECHO", "hi"), FamilyConnManagement},
		{"client id", arrayCmd("CLIENT", "ID"), FamilyConnManagement},
		{"set", arrayCmd("SET", "k", "v"), FamilyString},
		{"get", arrayCmd("GET", "k"), FamilyString},
		{"mget", arrayCmd("MGET", "a", "b"), FamilyString},
		{"setbit", arrayCmd("SETBIT", "k", "3", "1"), FamilyBitmap},
		{"bitcount", arrayCmd("BITCOUNT", "k"), FamilyBitmap},
		{"lpush", arrayCmd("LPUSH", "k", "a", "b"), FamilyList},
		{"lrange", arrayCmd("LRANGE", "k", "0", "-1"), FamilyList},
		{"hset", arrayCmd("HSET", "k", "f", "v"), FamilyHash},
		{"hgetall", arrayCmd("HGETALL", "k"), FamilyHash},
		{"sadd", arrayCmd("SADD", "k", "a"), FamilySet},
		{"sinter", arrayCmd("SINTER", "a", "b"), FamilySet},
		{"pfadd", arrayCmd("PFADD", "k", "a"), FamilyHyperLogLog},
		{"bf.add", arrayCmd("BF.ADD", "k", "a"), FamilyBloomFilter},
		{"del", arrayCmd("DEL", "a", "b"), FamilyGeneric},
		{"flushdb async", arrayCmd("FLUSHDB", "ASYNC"), FamilyGeneric},
		{"readonly", arrayCmd("READONLY"), FamilyClusterManagement},
		{"time", arrayCmd("TIME"), FamilyServerManagement},
		{"save", arrayCmd("SAVE"), FamilyStorageManagement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.frame)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cmd.Family() != tt.family {
				t.Fatalf("Family() = %v, want %v", cmd.Family(), tt.family)
			}
		})
	}
}

func TestParseCaseInsensitiveCommandName(t *testing.T) {
	cmd, err := Parse(arrayCmd("GeT", "k"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sc, ok := cmd.(StringCmd)
	if !ok || sc.Op != StringGet {
		t.Fatalf("Parse() = %+v, want StringCmd{Op: StringGet}", cmd)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse(arrayCmd("NOTACOMMAND", "x"))
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != CommandNotFound {
		t.Fatalf("Parse() error = %v, want CommandNotFound", err)
	}
}

func TestParseWrongArgCountIsInvalidParameter(t *testing.T) {
	_, err := Parse(arrayCmd("SET", "onlykey"))
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != InvalidParameter {
		t.Fatalf("Parse() error = %v, want InvalidParameter", err)
	}
}

func TestParseNonArrayIsProtocolError(t *testing.T) {
	_, err := Parse(resp.Simple("PING"))
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ProtocolError {
		t.Fatalf("Parse() error = %v, want ProtocolError", err)
	}
}

func TestParseEmptyArrayIsProtocolError(t *testing.T) {
	_, err := Parse(resp.ArrayOf(nil))
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ProtocolError {
		t.Fatalf("Parse() error = %v, want ProtocolError", err)
	}
}

func TestParseLRangeNegativeIndices(t *testing.T) {
	cmd, err := Parse(arrayCmd("LRANGE", "mylist", "-2", "-1"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	lc, ok := cmd.(ListCmd)
	if !ok || lc.Start != -2 || lc.End != -1 {
		t.Fatalf("Parse() = %+v, want ListCmd{Start: -2, End: -1}", cmd)
	}
}

func TestParseMSetOddArgsIsInvalid(t *testing.T) {
	_, err := Parse(arrayCmd("MSET", "a", "1", "b"))
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != InvalidParameter {
		t.Fatalf("Parse() error = %v, want InvalidParameter", err)
	}
}
