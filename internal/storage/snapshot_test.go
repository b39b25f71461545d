// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/ClusterCockpit/radonkv/internal/mem"
)

func TestEncodeDecodeSnapshotRoundTrip(t *testing.T) {
	records := []mem.Record{
		{Key: "k1", Kind: mem.KindString, Payload: []byte("hello")},
		{Key: "k2", Kind: mem.KindString, Payload: []byte{}},
		{Key: "k3", Kind: mem.Kind(2), Payload: []byte{0x01, 0x02, 0x03}},
	}

	data, err := EncodeSnapshot(records)
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("EncodeSnapshot() produced no bytes")
	}

	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("DecodeSnapshot() returned %d records, want %d", len(got), len(records))
	}
	for i, want := range records {
		if got[i].Key != want.Key || got[i].Kind != want.Kind || string(got[i].Payload) != string(want.Payload) {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestEncodeSnapshotEmpty(t *testing.T) {
	data, err := EncodeSnapshot(nil)
	if err != nil {
		t.Fatalf("EncodeSnapshot(nil) error = %v", err)
	}
	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("DecodeSnapshot() = %+v, want empty", got)
	}
}
