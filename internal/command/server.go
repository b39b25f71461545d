// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import "strings"

// ServerOp enumerates the server-management operations (spec 4.6).
type ServerOp int

const (
	ServerShutdown ServerOp = iota
	ServerTime
)

// ServerCmd is SHUTDOWN/TIME, routed to the Server stub component.
type ServerCmd struct {
	Op       ServerOp
	NoSave   bool // SHUTDOWN NOSAVE
}

func (ServerCmd) Family() Family { return FamilyServerManagement }

func parseServerCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "shutdown":
		arg, present, err := cur.TryNextString()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		cmd := ServerCmd{Op: ServerShutdown}
		if present && strings.EqualFold(arg, "NOSAVE") {
			cmd.NoSave = true
		}
		return cmd, nil

	case "time":
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ServerCmd{Op: ServerTime}, nil
	}
	return nil, nil
}
