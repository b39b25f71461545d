// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resp

import "testing"

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{"simple", Simple("OK")},
		{"error", Error("WRONGTYPE oops")},
		{"integer", Integer(-12345)},
		{"bulk", BulkString("Hello World")},
		{"empty bulk", BulkOf([]byte{})},
		{"null", Null()},
		{"array", ArrayOf([]Frame{Integer(1), BulkString("a"), Null()})},
		{"nested array", ArrayOf([]Frame{ArrayOf([]Frame{Integer(1)}), Simple("x")})},
		{"empty array", ArrayOf(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := tt.frame.Bytes()

			status, kind, consumed := Check(wire, DefaultLimits())
			if status != StatusComplete {
				t.Fatalf("Check() status = %v kind = %v, want complete", status, kind)
			}
			if consumed != len(wire) {
				t.Fatalf("Check() consumed = %d, want %d", consumed, len(wire))
			}

			got, n, err := Parse(wire)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if n != len(wire) {
				t.Fatalf("Parse() consumed = %d, want %d", n, len(wire))
			}
			if !got.Equal(tt.frame) {
				t.Fatalf("Parse() = %+v, want %+v", got, tt.frame)
			}
		})
	}
}

func TestCheckIncompletePrefixDoesNotAdvance(t *testing.T) {
	full := ArrayOf([]Frame{BulkString("get"), BulkString("name")}).Bytes()

	for i := 0; i < len(full); i++ {
		prefix := full[:i]
		status, _, consumed := Check(prefix, DefaultLimits())
		if status != StatusIncomplete {
			t.Fatalf("prefix length %d: status = %v, want incomplete", i, status)
		}
		if consumed != 0 {
			t.Fatalf("prefix length %d: consumed = %d, want 0", i, consumed)
		}
	}
}

func TestLegacyNullEncodings(t *testing.T) {
	for _, wire := range [][]byte{[]byte("$-1\r\n"), []byte("*-1\r\n")} {
		status, _, consumed := Check(wire, DefaultLimits())
		if status != StatusComplete {
			t.Fatalf("Check(%q) status = %v, want complete", wire, status)
		}
		f, n, err := Parse(wire)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", wire, err)
		}
		if n != consumed {
			t.Fatalf("Parse/Check disagree on consumed: %d vs %d", n, consumed)
		}
		if !f.IsNull() {
			t.Fatalf("Parse(%q) = %+v, want Null", wire, f)
		}
	}
}

func TestMalformedFrames(t *testing.T) {
	tests := []struct {
		name string
		wire []byte
		kind MalformedKind
	}{
		{"unknown type", []byte("!foo\r\n"), MalformedUnknownType},
		{"bad integer", []byte(":abc\r\n"), MalformedBadInteger},
		{"bad bulk length", []byte("$abc\r\n"), MalformedBadInteger},
		{"negative bulk length", []byte("$-2\r\nxx\r\n"), MalformedNegativeLength},
		{"negative array length", []byte("*-5\r\n"), MalformedNegativeLength},
		{"bulk length overflow", []byte("$99999999999999\r\n"), MalformedLengthOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, kind, _ := Check(tt.wire, DefaultLimits())
			if status != StatusMalformed {
				t.Fatalf("Check(%q) status = %v, want malformed", tt.wire, status)
			}
			if kind != tt.kind {
				t.Fatalf("Check(%q) kind = %v, want %v", tt.wire, kind, tt.kind)
			}
		})
	}
}

func TestArrayLengthOverCeilingIsMalformedNotIncomplete(t *testing.T) {
	limits := Limits{MaxBulkLen: 1024, MaxArrayLen: 4}
	wire := []byte("*5\r\n")
	status, kind, _ := Check(wire, limits)
	if status != StatusMalformed || kind != MalformedLengthOverflow {
		t.Fatalf("Check() = (%v, %v), want (malformed, length overflow)", status, kind)
	}
}

func TestCommandFrame(t *testing.T) {
	wire := []byte("*2\r\n$3\r\nGET\r\n$4\r\nname\r\n")
	status, _, n := Check(wire, DefaultLimits())
	if status != StatusComplete {
		t.Fatalf("Check() = %v, want complete", status)
	}
	f, n2, err := Parse(wire)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if n != n2 {
		t.Fatalf("consumed mismatch: %d vs %d", n, n2)
	}
	if f.Type != TypeArray || len(f.Array) != 2 {
		t.Fatalf("Parse() = %+v", f)
	}
	if string(f.Array[0].Bulk) != "GET" || string(f.Array[1].Bulk) != "name" {
		t.Fatalf("Parse() elements = %+v", f.Array)
	}
}
