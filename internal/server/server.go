// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package server implements the Server stub component (spec 4.6):
// SHUTDOWN and TIME. SHUTDOWN does not stop the process itself - it signals
// the request onto a channel cmd/radonkv-server's main loop also selects
// on, alongside OS signals, so both paths drain through the same graceful
// shutdown sequence.
package server

import (
	"strconv"
	"time"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// ShutdownRequest is what a SHUTDOWN command hands to the owning process.
type ShutdownRequest struct {
	NoSave bool
}

// Component runs as the Server singleton task.
type Component struct {
	shutdown chan<- ShutdownRequest
}

func NewComponent(shutdown chan<- ShutdownRequest) *Component {
	return &Component{shutdown: shutdown}
}

// Handle answers one ServerCmd.
func (c *Component) Handle(cmd command.ServerCmd) resp.Frame {
	switch cmd.Op {
	case command.ServerShutdown:
		select {
		case c.shutdown <- ShutdownRequest{NoSave: cmd.NoSave}:
		default:
			// A shutdown is already in flight; the client's repeated
			// SHUTDOWN is answered the same way regardless.
		}
		return resp.OK()

	case command.ServerTime:
		now := time.Now()
		seconds := now.Unix()
		micros := now.UnixMicro() - seconds*1_000_000
		return resp.ArrayOf([]resp.Frame{
			resp.BulkString(strconv.FormatInt(seconds, 10)),
			resp.BulkString(strconv.FormatInt(micros, 10)),
		})
	}
	return resp.InternalErr("unhandled server op")
}
