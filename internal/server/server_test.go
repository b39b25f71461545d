// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"testing"
	"time"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

func TestHandleShutdownSignalsChannelAndRepliesOK(t *testing.T) {
	shutdown := make(chan ShutdownRequest, 1)
	c := NewComponent(shutdown)

	frame := c.Handle(command.ServerCmd{Op: command.ServerShutdown, NoSave: true})
	if frame.Str != "OK" {
		t.Fatalf("Handle(SHUTDOWN) = %+v, want OK", frame)
	}

	select {
	case req := <-shutdown:
		if !req.NoSave {
			t.Fatal("ShutdownRequest.NoSave = false, want true")
		}
	case <-time.After(time.Second):
		t.Fatal("SHUTDOWN never reached the shutdown channel")
	}
}

func TestHandleShutdownDoesNotBlockWhenAlreadyPending(t *testing.T) {
	shutdown := make(chan ShutdownRequest, 1)
	c := NewComponent(shutdown)

	c.Handle(command.ServerCmd{Op: command.ServerShutdown})
	frame := c.Handle(command.ServerCmd{Op: command.ServerShutdown})
	if frame.Str != "OK" {
		t.Fatalf("second Handle(SHUTDOWN) = %+v, want OK even though the channel was full", frame)
	}
}

func TestHandleTimeReturnsTwoElementArray(t *testing.T) {
	c := NewComponent(make(chan ShutdownRequest, 1))

	frame := c.Handle(command.ServerCmd{Op: command.ServerTime})
	if frame.Type != resp.TypeArray || len(frame.Array) != 2 {
		t.Fatalf("Handle(TIME) = %+v, want a 2-element array", frame)
	}
	for _, el := range frame.Array {
		if el.Type != resp.TypeBulk {
			t.Fatalf("TIME element = %+v, want bulk string", el)
		}
	}
}
