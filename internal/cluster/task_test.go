// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cluster

import (
	"context"
	"testing"
	"time"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/internal/proto"
)

func TestTaskRepliesOnRequestChannel(t *testing.T) {
	requests := make(chan proto.Request, 1)
	task := NewTask(NewComponent(nil), requests)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go task.Run(ctx)

	replyTo := make(chan proto.Reply, 1)
	sid := proto.NewSessionID()
	requests <- proto.Request{
		Session: sid,
		Seq:     7,
		Cmd:     command.ClusterCmd{Op: command.ClusterReadOnly},
		ReplyTo: replyTo,
	}

	select {
	case rep := <-replyTo:
		if rep.Session != sid || rep.Seq != 7 {
			t.Fatalf("Reply = %+v, want Session=%v Seq=7", rep, sid)
		}
		if rep.Frame.Str != "OK" {
			t.Fatalf("Frame = %+v, want OK", rep.Frame)
		}
	case <-time.After(time.Second):
		t.Fatal("task never replied")
	}
}
