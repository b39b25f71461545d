// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import "github.com/ClusterCockpit/radonkv/pkg/resp"

func (db *Db) DelReply(keys [][]byte) resp.Frame {
	return resp.Integer(db.Del(keys))
}

func (db *Db) ExistsReply(keys [][]byte) resp.Frame {
	return resp.Integer(db.Exists(keys))
}

func (db *Db) TypeReply(key []byte) resp.Frame {
	return resp.Simple(db.Type(key))
}

func (db *Db) RenameReply(key, newKey []byte) resp.Frame {
	if !db.Rename(key, newKey) {
		return resp.NoSuchKeyErr()
	}
	return resp.OK()
}

func (db *Db) DBSizeReply() resp.Frame {
	return resp.Integer(db.DBSize())
}

// FlushDB empties the keyspace. When async is true the discarded entries
// are handed to the supplied drop function instead of going out of scope
// synchronously, so a caller can run the teardown on another goroutine and
// keep Mem's single consumer responsive (spec 6.8 "FLUSHDB ASYNC with async
// destructor handoff").
func (db *Db) FlushDB(async bool, drop func([]*entry)) resp.Frame {
	old := db.Flush()
	if async && drop != nil {
		drop(old)
	}
	return resp.OK()
}
