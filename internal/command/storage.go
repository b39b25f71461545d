// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// StorageOp enumerates the storage-management operations (spec 4.6): their
// bodies are out of this spec's scope beyond returning the canonical
// success reply, but the request/response contract is fully wired so a
// real snapshot engine (internal/storage) can sit behind it.
type StorageOp int

const (
	StorageSave StorageOp = iota
	StorageBGSave
	StorageBGRewriteAOF
)

// StorageCmd is SAVE/BGSAVE/BGREWRITEAOF, routed to the Storage component.
type StorageCmd struct {
	Op StorageOp
}

func (StorageCmd) Family() Family { return FamilyStorageManagement }

func parseStorageCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "save":
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StorageCmd{Op: StorageSave}, nil
	case "bgsave":
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StorageCmd{Op: StorageBGSave}, nil
	case "bgrewriteaof":
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return StorageCmd{Op: StorageBGRewriteAOF}, nil
	}
	return nil, nil
}
