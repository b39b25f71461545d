// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dispatcher implements the pure router between Listeners and the
// component tasks (spec 4.5). It never decodes a Command further than its
// Family and never produces a reply itself except when its routing table is
// missing an entry - which is always a wiring bug, not a client error.
package dispatcher

import (
	"context"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/internal/proto"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// Dispatcher forwards each Request to the task channel matching its
// Command's Family, per the fixed table in spec 4.5.
type Dispatcher struct {
	inbound <-chan proto.Request
	routes  map[command.Family]chan<- proto.Request
}

// New builds a Dispatcher reading Requests off inbound (the channel every
// Listener forwards onto) and routing them per routes. A Family absent from
// routes - including FamilyConnManagement, which a Session should never
// forward in the first place - is logged and answered with an internal
// error rather than panicking the task.
func New(inbound <-chan proto.Request, routes map[command.Family]chan<- proto.Request) *Dispatcher {
	return &Dispatcher{inbound: inbound, routes: routes}
}

func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case req := <-d.inbound:
			dest, ok := d.routes[req.Cmd.Family()]
			if !ok {
				cclog.Errorf("dispatcher: no route for family %s, dropping request", req.Cmd.Family())
				select {
				case req.ReplyTo <- proto.Reply{
					Session: req.Session,
					Seq:     req.Seq,
					Frame:   resp.InternalErr("no handler for this command family"),
				}:
				case <-ctx.Done():
					return
				}
				continue
			}

			select {
			case dest <- req:
			case <-ctx.Done():
				return
			}
		}
	}
}
