// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import "strings"

// ConnOp enumerates the connection-management operations a Session handles
// locally, without ever reaching the Dispatcher (spec 4.4).
type ConnOp int

const (
	ConnPing ConnOp = iota
	ConnEcho
	ConnClientID
	ConnClientGetName
	ConnClientSetName
)

// ConnCmd is PING/ECHO/CLIENT *, answered entirely inside the owning
// Session. It never reaches the Dispatcher (spec 4.5: "ConnManagement never
// reaches it").
type ConnCmd struct {
	Op      ConnOp
	Message []byte // ECHO payload, or CLIENT SETNAME's new name
}

func (ConnCmd) Family() Family { return FamilyConnManagement }

func parseConnCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "ping":
		msg, present, err := cur.TryNextString()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		if present {
			return ConnCmd{Op: ConnEcho, Message: []byte(msg)}, nil
		}
		return ConnCmd{Op: ConnPing}, nil
	case "echo":
		msg, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ConnCmd{Op: ConnEcho, Message: msg}, nil
	case "client":
		return parseClientSubcommand(cur)
	}
	return nil, nil
}

func parseClientSubcommand(cur *Cursor) (Command, error) {
	sub, err := cur.NextString()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(sub) {
	case "id":
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ConnCmd{Op: ConnClientID}, nil
	case "getname":
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ConnCmd{Op: ConnClientGetName}, nil
	case "setname":
		newName, err := cur.NextBytes()
		if err != nil {
			return nil, err
		}
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ConnCmd{Op: ConnClientSetName, Message: newName}, nil
	}
	return nil, ErrWrongArgCount
}
