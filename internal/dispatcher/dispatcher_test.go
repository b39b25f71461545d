// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/internal/proto"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

func TestRoutesToRegisteredFamily(t *testing.T) {
	inbound := make(chan proto.Request, 1)
	stringCh := make(chan proto.Request, 1)

	d := New(inbound, map[command.Family]chan<- proto.Request{
		command.FamilyString: stringCh,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	replyTo := make(chan proto.Reply, 1)
	inbound <- proto.Request{
		Session: proto.NewSessionID(),
		Seq:     0,
		Cmd:     command.StringCmd{Op: command.StringGet, Key: []byte("k")},
		ReplyTo: replyTo,
	}

	select {
	case req := <-stringCh:
		if req.Seq != 0 {
			t.Fatalf("Seq = %d, want 0", req.Seq)
		}
	case <-time.After(time.Second):
		t.Fatal("request never reached the string family channel")
	}
}

func TestMissingRouteRepliesInternalErrAndDoesNotBlock(t *testing.T) {
	inbound := make(chan proto.Request, 1)
	d := New(inbound, map[command.Family]chan<- proto.Request{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	replyTo := make(chan proto.Reply, 1)
	inbound <- proto.Request{
		Session: proto.NewSessionID(),
		Cmd:     command.ConnCmd{Op: command.ConnPing},
		ReplyTo: replyTo,
	}

	select {
	case rep := <-replyTo:
		if rep.Frame.Type != resp.TypeError {
			t.Fatalf("Frame.Type = %v, want error", rep.Frame.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("no reply for an unrouted family")
	}
}
