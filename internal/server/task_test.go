// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"testing"
	"time"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/internal/proto"
)

func TestTaskRepliesOnRequestChannel(t *testing.T) {
	requests := make(chan proto.Request, 1)
	task := NewTask(NewComponent(make(chan ShutdownRequest, 1)), requests)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go task.Run(ctx)

	replyTo := make(chan proto.Reply, 1)
	sid := proto.NewSessionID()
	requests <- proto.Request{
		Session: sid,
		Seq:     3,
		Cmd:     command.ServerCmd{Op: command.ServerTime},
		ReplyTo: replyTo,
	}

	select {
	case rep := <-replyTo:
		if rep.Session != sid || rep.Seq != 3 {
			t.Fatalf("Reply = %+v, want Session=%v Seq=3", rep, sid)
		}
		if len(rep.Frame.Array) != 2 {
			t.Fatalf("Frame = %+v, want a 2-element array", rep.Frame)
		}
	case <-time.After(time.Second):
		t.Fatal("task never replied")
	}
}
