// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package proto defines the messages that cross the Session/Listener/
// Dispatcher boundaries (spec 4.4-4.5). Listener and Dispatcher only ever
// move these structs around; neither inspects the Cmd or Frame they carry.
package proto

import (
	"github.com/rs/xid"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// SessionID identifies one client connection for the lifetime of the
// process. Minted once per accepted connection (spec 4.4).
type SessionID = xid.ID

// NewSessionID mints a fresh, globally unique SessionID.
func NewSessionID() SessionID { return xid.New() }

// Request is one parsed command traveling from a Session, through its
// owning Listener, to the Dispatcher. Seq is the command's position in its
// Session's input stream, starting at zero; it is the only thing a Session
// needs to restore reply order under pipelining (spec 8), since components
// downstream of the Dispatcher may answer out of submission order.
type Request struct {
	Session SessionID
	Seq     uint64
	Cmd     command.Command

	// ReplyTo is filled in by the owning Listener before the Request
	// reaches the Dispatcher; it is always that Listener's own reply
	// intake channel, never a per-session channel, so the Dispatcher and
	// every component behind it stay unaware that sessions exist.
	ReplyTo chan<- Reply
}

// Reply answers one Request, carrying back the Seq it was addressed to so
// the originating Session can slot it into place.
type Reply struct {
	Session SessionID
	Seq     uint64
	Frame   resp.Frame
}
