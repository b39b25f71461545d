// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"golang.org/x/sync/errgroup"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// toPairs adapts command.Pair to mem.Pair at the package boundary, so mem
// never imports command's types into its own public API.
func toPairs(src []command.Pair) []Pair {
	out := make([]Pair, len(src))
	for i, p := range src {
		out[i] = Pair{First: p.First, Second: p.Second}
	}
	return out
}

// Execute runs one already-parsed command against db and returns its
// reply, per-family, exactly matching the Dispatcher's routing table in
// spec 4.5 (String/List/Hash/Set/Bitmap/HyperLogLog/Generic/BloomFilter all
// land in Mem). Execute is the only place in package mem that understands
// Command's concrete types.
func (db *Db) Execute(cmd command.Command) resp.Frame {
	switch c := cmd.(type) {
	case command.StringCmd:
		return db.execString(c)
	case command.BitmapCmd:
		return db.execBitmap(c)
	case command.ListCmd:
		return db.execList(c)
	case command.HashCmd:
		return db.execHash(c)
	case command.SetCmd:
		return db.execSet(c)
	case command.HyperLogLogCmd:
		return db.execHyperLogLog(c)
	case command.BloomFilterCmd:
		return db.execBloomFilter(c)
	case command.GenericCmd:
		return db.execGeneric(c)
	default:
		return resp.InternalErr("command family not handled by mem")
	}
}

func (db *Db) execString(c command.StringCmd) resp.Frame {
	switch c.Op {
	case command.StringSet:
		return db.Set(c.Key, c.Value)
	case command.StringGet:
		return db.Get(c.Key)
	case command.StringAppend:
		return db.Append(c.Key, c.Value)
	case command.StringStrlen:
		return db.Strlen(c.Key)
	case command.StringGetSet:
		return db.GetSet(c.Key, c.Value)
	case command.StringGetDel:
		return db.GetDel(c.Key)
	case command.StringGetRange:
		return db.GetRange(c.Key, c.Start, c.End)
	case command.StringSetRange:
		return db.SetRange(c.Key, c.Offset, c.Value)
	case command.StringMGet:
		return db.MGet(c.Keys)
	case command.StringMSet:
		return db.MSet(toPairs(c.Pairs))
	}
	return resp.InternalErr("unhandled string op")
}

func (db *Db) execBitmap(c command.BitmapCmd) resp.Frame {
	switch c.Op {
	case command.BitmapSetBit:
		return db.SetBit(c.Key, c.Offset, c.Value)
	case command.BitmapGetBit:
		return db.GetBit(c.Key, c.Offset)
	case command.BitmapCount:
		return db.BitCount(c.Key, c.HasRange, c.Start, c.End)
	}
	return resp.InternalErr("unhandled bitmap op")
}

func (db *Db) execList(c command.ListCmd) resp.Frame {
	switch c.Op {
	case command.ListLPush:
		return db.LPush(c.Key, c.Values)
	case command.ListRPush:
		return db.RPush(c.Key, c.Values)
	case command.ListLPushX:
		return db.LPushX(c.Key, c.Values)
	case command.ListRPushX:
		return db.RPushX(c.Key, c.Values)
	case command.ListLPop:
		return db.LPop(c.Key, c.Count)
	case command.ListRPop:
		return db.RPop(c.Key, c.Count)
	case command.ListIndex:
		return db.LIndex(c.Key, c.Index)
	case command.ListRange:
		return db.LRange(c.Key, c.Start, c.End)
	case command.ListInsert:
		return db.LInsert(c.Key, c.Pivot, c.Value, c.Before)
	case command.ListSet:
		return db.LSet(c.Key, c.Index, c.Value)
	case command.ListRem:
		return db.LRem(c.Key, c.RemCount, c.Value)
	case command.ListLen:
		return db.LLen(c.Key)
	}
	return resp.InternalErr("unhandled list op")
}

func (db *Db) execHash(c command.HashCmd) resp.Frame {
	switch c.Op {
	case command.HashSet:
		return db.HSet(c.Key, toPairs(c.Pairs))
	case command.HashGet:
		return db.HGet(c.Key, c.Field)
	case command.HashExists:
		return db.HExists(c.Key, c.Field)
	case command.HashDel:
		return db.HDel(c.Key, c.Fields)
	case command.HashLen:
		return db.HLen(c.Key)
	case command.HashKeys:
		return db.HKeys(c.Key)
	case command.HashVals:
		return db.HVals(c.Key)
	case command.HashGetAll:
		return db.HGetAll(c.Key)
	case command.HashStrlen:
		return db.HStrlen(c.Key, c.Field)
	}
	return resp.InternalErr("unhandled hash op")
}

func (db *Db) execSet(c command.SetCmd) resp.Frame {
	switch c.Op {
	case command.SetAdd:
		return db.SAdd(c.Key, c.Members)
	case command.SetCard:
		return db.SCard(c.Key)
	case command.SetMembers:
		return db.SMembers(c.Key)
	case command.SetIsMember:
		return db.SIsMember(c.Key, c.Member)
	case command.SetRem:
		return db.SRem(c.Key, c.Members)
	case command.SetRandMember:
		return db.SRandMember(c.Key, c.Count)
	case command.SetInter:
		return db.SInter(c.Keys)
	case command.SetUnion:
		return db.SUnion(c.Keys)
	case command.SetDiff:
		return db.SDiff(c.Keys)
	}
	return resp.InternalErr("unhandled set op")
}

func (db *Db) execHyperLogLog(c command.HyperLogLogCmd) resp.Frame {
	switch c.Op {
	case command.HLLAdd:
		return db.PFAdd(c.Key, c.Elements)
	case command.HLLCount:
		return db.PFCount(c.Keys)
	case command.HLLMerge:
		return db.PFMerge(c.Destination, c.Keys)
	}
	return resp.InternalErr("unhandled hyperloglog op")
}

func (db *Db) execBloomFilter(c command.BloomFilterCmd) resp.Frame {
	switch c.Op {
	case command.BFAdd:
		return db.BFAdd(c.Key, c.Elements[0])
	case command.BFMAdd:
		return db.BFMAdd(c.Key, c.Elements)
	case command.BFCard:
		return db.BFCard(c.Key)
	case command.BFExists:
		return db.BFExists(c.Key, c.Elements[0])
	case command.BFMExists:
		return db.BFMExists(c.Key, c.Elements)
	}
	return resp.InternalErr("unhandled bloom filter op")
}

// asyncDropGroup lets FLUSHDB ASYNC hand its discarded entries to a
// background goroutine instead of the Mem task doing the (here, trivial, but
// in a real allocator-backed store potentially expensive) teardown itself.
// Each FLUSHDB ASYNC starts one new goroutine on the group; the group has no
// limit set and nothing waits on it.
var asyncDropGroup errgroup.Group

func (db *Db) execGeneric(c command.GenericCmd) resp.Frame {
	switch c.Op {
	case command.GenericDel:
		return db.DelReply(c.Keys)
	case command.GenericExists:
		return db.ExistsReply(c.Keys)
	case command.GenericType:
		return db.TypeReply(c.Key)
	case command.GenericRename:
		return db.RenameReply(c.Key, c.NewKey)
	case command.GenericDBSize:
		return db.DBSizeReply()
	case command.GenericFlushDB:
		return db.FlushDB(c.IsAsync, func(dropped []*entry) {
			asyncDropGroup.Go(func() error {
				dropped = nil
				return nil
			})
		})
	}
	return resp.InternalErr("unhandled generic op")
}
