// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"context"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/internal/proto"
)

// Task runs Component as the Server singleton.
type Task struct {
	component *Component
	requests  <-chan proto.Request
}

func NewTask(component *Component, requests <-chan proto.Request) *Task {
	return &Task{component: component, requests: requests}
}

func (t *Task) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-t.requests:
			cmd, _ := req.Cmd.(command.ServerCmd)
			frame := t.component.Handle(cmd)
			select {
			case req.ReplyTo <- proto.Reply{Session: req.Session, Seq: req.Seq, Frame: frame}:
			case <-ctx.Done():
				return
			}
		}
	}
}
