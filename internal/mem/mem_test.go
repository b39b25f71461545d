// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"testing"

	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

func b(s string) []byte { return []byte(s) }

func TestSetAppendGet(t *testing.T) {
	db := NewDb()
	if got := db.Set(b("k"), b("Hello ")); !got.Equal(resp.OK()) {
		t.Fatalf("SET = %+v", got)
	}
	if got := db.Append(b("k"), b("World")); !got.Equal(resp.Integer(11)) {
		t.Fatalf("APPEND = %+v", got)
	}
	if got := db.Get(b("k")); !got.Equal(resp.BulkString("Hello World")) {
		t.Fatalf("GET = %+v", got)
	}
}

func TestWrongTypeLeavesKeyUnchanged(t *testing.T) {
	db := NewDb()
	db.Set(b("k"), b("value"))
	if got := db.LPush(b("k"), [][]byte{b("x")}); !got.Equal(resp.WrongTypeErr()) {
		t.Fatalf("LPUSH on string key = %+v, want WRONGTYPE", got)
	}
	if got := db.Get(b("k")); !got.Equal(resp.BulkString("value")) {
		t.Fatalf("key mutated after WRONGTYPE: %+v", got)
	}
}

func TestListPushPopRange(t *testing.T) {
	db := NewDb()
	db.RPush(b("mylist"), [][]byte{b("a"), b("b"), b("c")})

	if got := db.LPop(b("mylist"), nil); !got.Equal(resp.BulkString("a")) {
		t.Fatalf("LPOP = %+v", got)
	}

	two := int64(2)
	if got := db.LPop(b("mylist"), &two); !got.Equal(resp.ArrayOf([]resp.Frame{resp.BulkString("b"), resp.BulkString("c")})) {
		t.Fatalf("LPOP count=2 = %+v", got)
	}

	if got := db.LRange(b("mylist"), 0, -1); !got.Equal(resp.EmptyArray()) {
		t.Fatalf("LRANGE on drained list = %+v, want empty array", got)
	}
}

func TestHSetHGetAllSortedByField(t *testing.T) {
	db := NewDb()
	db.HSet(b("h"), []Pair{{First: b("z"), Second: b("1")}, {First: b("a"), Second: b("2")}})

	got := db.HGetAll(b("h"))
	want := resp.ArrayOf([]resp.Frame{
		resp.BulkString("a"), resp.BulkString("2"),
		resp.BulkString("z"), resp.BulkString("1"),
	})
	if !got.Equal(want) {
		t.Fatalf("HGETALL = %+v, want %+v", got, want)
	}
}

func TestSAddSInterSDiff(t *testing.T) {
	db := NewDb()
	db.SAdd(b("s1"), [][]byte{b("a"), b("b"), b("c")})
	db.SAdd(b("s2"), [][]byte{b("b"), b("c"), b("d")})

	inter := db.SInter([]string{"s1", "s2"})
	if !inter.Equal(resp.ArrayOf([]resp.Frame{resp.BulkString("b"), resp.BulkString("c")})) {
		t.Fatalf("SINTER = %+v", inter)
	}

	diff := db.SDiff([]string{"s1", "s2"})
	if !diff.Equal(resp.ArrayOf([]resp.Frame{resp.BulkString("a")})) {
		t.Fatalf("SDIFF = %+v", diff)
	}
}

func TestSetBitGetBitCount(t *testing.T) {
	db := NewDb()
	db.SetBit(b("bits"), 7, 1)
	if got := db.GetBit(b("bits"), 7); !got.Equal(resp.One()) {
		t.Fatalf("GETBIT = %+v", got)
	}
	if got := db.BitCount(b("bits"), false, 0, 0); !got.Equal(resp.One()) {
		t.Fatalf("BITCOUNT = %+v", got)
	}
}

func TestAbsentKeyReadsAreTypeAppropriate(t *testing.T) {
	db := NewDb()
	if got := db.Get(b("nope")); !got.Equal(resp.Null()) {
		t.Fatalf("GET absent = %+v, want Null", got)
	}
	if got := db.LRange(b("nope"), 0, -1); !got.Equal(resp.EmptyArray()) {
		t.Fatalf("LRANGE absent = %+v, want EmptyArray", got)
	}
	if got := db.LLen(b("nope")); !got.Equal(resp.Zero()) {
		t.Fatalf("LLEN absent = %+v, want 0", got)
	}
	if got := db.LIndex(b("nope"), 0); !got.Equal(resp.Null()) {
		t.Fatalf("LINDEX absent = %+v, want Null", got)
	}
}

func TestGenericDelExistsType(t *testing.T) {
	db := NewDb()
	db.Set(b("a"), b("1"))
	db.Set(b("b"), b("2"))

	if got := db.ExistsReply([][]byte{b("a"), b("a"), b("missing")}); !got.Equal(resp.Integer(2)) {
		t.Fatalf("EXISTS multiplicity = %+v, want 2", got)
	}
	if got := db.TypeReply(b("a")); !got.Equal(resp.Simple("string")) {
		t.Fatalf("TYPE = %+v", got)
	}
	if got := db.TypeReply(b("missing")); !got.Equal(resp.Simple("none")) {
		t.Fatalf("TYPE absent = %+v, want none", got)
	}
	if got := db.DelReply([][]byte{b("a"), b("b")}); !got.Equal(resp.Integer(2)) {
		t.Fatalf("DEL = %+v, want 2", got)
	}
}

func TestTypeReportsHyperAndBloomTags(t *testing.T) {
	db := NewDb()
	db.PFAdd(b("hll"), [][]byte{b("a")})
	db.BFAdd(b("bf"), b("a"))

	if got := db.TypeReply(b("hll")); !got.Equal(resp.Simple("hyper")) {
		t.Fatalf("TYPE hyperloglog key = %+v, want \"hyper\"", got)
	}
	if got := db.TypeReply(b("bf")); !got.Equal(resp.Simple("bloom")) {
		t.Fatalf("TYPE bloom filter key = %+v, want \"bloom\"", got)
	}
}

func TestSetRangeRejectsWriteBeyondCeiling(t *testing.T) {
	db := NewDb()
	db.SetMaxStringBytes(16)

	if got := db.SetRange(b("k"), 100, b("x")); !got.Equal(resp.StringTooLongErr()) {
		t.Fatalf("SETRANGE beyond ceiling = %+v, want StringTooLongErr", got)
	}
	if got := db.Get(b("k")); !got.Equal(resp.Null()) {
		t.Fatalf("key mutated after rejected SETRANGE: %+v", got)
	}

	if got := db.SetRange(b("k"), 0, b("hello")); !got.Equal(resp.Integer(5)) {
		t.Fatalf("SETRANGE within ceiling = %+v, want 5", got)
	}
}

func TestPFAddOnAbsentKeyWithNoElementsCountsAsChange(t *testing.T) {
	db := NewDb()
	if got := db.PFAdd(b("hll"), nil); !got.Equal(resp.One()) {
		t.Fatalf("PFADD creating a fresh sketch = %+v, want 1", got)
	}
	if got := db.PFAdd(b("hll"), nil); !got.Equal(resp.Zero()) {
		t.Fatalf("PFADD on an existing sketch with no elements = %+v, want 0", got)
	}
}

func TestPFAddPFCountPFMerge(t *testing.T) {
	db := NewDb()
	db.PFAdd(b("hll1"), [][]byte{b("a"), b("b"), b("c")})
	db.PFAdd(b("hll2"), [][]byte{b("c"), b("d"), b("e")})

	count := db.PFCount([]string{"hll1"})
	if count.Type != resp.TypeInteger || count.Int < 2 || count.Int > 4 {
		t.Fatalf("PFCOUNT hll1 = %+v, want ~3", count)
	}

	db.PFMerge(b("dest"), []string{"hll1", "hll2"})
	merged := db.PFCount([]string{"dest"})
	if merged.Int < 4 || merged.Int > 6 {
		t.Fatalf("PFCOUNT merged = %+v, want ~5", merged)
	}
}

func TestBloomFilterAddExists(t *testing.T) {
	db := NewDb()
	db.BFAdd(b("bf"), b("apple"))
	if got := db.BFExists(b("bf"), b("apple")); !got.Equal(resp.One()) {
		t.Fatalf("BF.EXISTS known = %+v", got)
	}
	if got := db.BFExists(b("bf"), b("banana")); !got.Equal(resp.Zero()) {
		t.Fatalf("BF.EXISTS unknown = %+v, want 0 (false positives possible but unlikely here)", got)
	}
	db.BFAdd(b("bf"), b("apple"))
	if got := db.BFCard(b("bf")); !got.Equal(resp.Integer(2)) {
		t.Fatalf("BF.CARD = %+v, want 2 inserts observed", got)
	}
}
