// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package listener accepts TCP connections for one configured endpoint and
// relays traffic between the Sessions it spawns and the Dispatcher (spec
// 4.4). A Listener never looks inside a Request or Reply; it only knows
// which Session a Reply belongs to.
package listener

import (
	"context"
	"net"
	"sync"

	"github.com/ClusterCockpit/radonkv/internal/proto"
	"github.com/ClusterCockpit/radonkv/internal/session"
	"github.com/ClusterCockpit/radonkv/pkg/log"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// registration is how a Session joins the SessionID -> reply-channel map
// this Listener keeps, so it can find where to deliver each Reply it
// receives from the Dispatcher.
type registration struct {
	id   proto.SessionID
	inbox chan proto.Reply
}

// Listener runs as one singleton task per configured endpoint.
type Listener struct {
	name string
	addr string
	limits resp.Limits

	toDispatcher   chan<- proto.Request
	fromDispatcher chan proto.Reply
	submissions    chan proto.Request

	register   chan registration
	unregister chan proto.SessionID

	wg sync.WaitGroup
}

// New builds a Listener bound to addr, forwarding accepted Sessions' traffic
// onto toDispatcher. limits bounds the frame sizes Sessions on this endpoint
// will accept (spec 6).
func New(name, addr string, toDispatcher chan<- proto.Request, limits resp.Limits) *Listener {
	return &Listener{
		name:           name,
		addr:           addr,
		limits:         limits,
		toDispatcher:   toDispatcher,
		fromDispatcher: make(chan proto.Reply, 256),
		submissions:    make(chan proto.Request, 256),
		register:       make(chan registration),
		unregister:     make(chan proto.SessionID),
	}
}

// Run accepts connections until ctx is cancelled, then waits for every
// spawned Session to finish. It blocks the caller; run it in its own
// goroutine (spec 4.9, one task per component).
func (l *Listener) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return err
	}
	log.Infof("[LISTENER %s]> accepting on %s", l.name, l.addr)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.acceptLoop(ctx, ln)
	}()

	l.routeLoop(ctx)
	l.wg.Wait()
	return nil
}

func (l *Listener) acceptLoop(ctx context.Context, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				log.Warnf("[LISTENER %s]> accept failed: %v", l.name, err)
				return
			}
		}

		id := proto.NewSessionID()
		inbox := make(chan proto.Reply, 64)

		select {
		case l.register <- registration{id: id, inbox: inbox}:
		case <-ctx.Done():
			conn.Close()
			return
		}

		sess := session.New(id, conn, l.submissions, inbox, l.limits)
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			sess.Run(ctx)
			select {
			case l.unregister <- id:
			case <-ctx.Done():
			}
		}()
	}
}

// routeLoop is the only goroutine that touches the sessions map, so it
// never needs a lock (spec 4.4: Listener owns the SessionID -> channel
// table).
func (l *Listener) routeLoop(ctx context.Context) {
	sessions := make(map[proto.SessionID]chan proto.Reply)
	for {
		select {
		case <-ctx.Done():
			return

		case reg := <-l.register:
			sessions[reg.id] = reg.inbox

		case id := <-l.unregister:
			delete(sessions, id)

		case req := <-l.submissions:
			req.ReplyTo = l.fromDispatcher
			select {
			case l.toDispatcher <- req:
			case <-ctx.Done():
				return
			}

		case rep := <-l.fromDispatcher:
			inbox, ok := sessions[rep.Session]
			if !ok {
				log.Debugf("[LISTENER %s]> reply for unknown/closed session %s dropped", l.name, rep.Session)
				continue
			}
			select {
			case inbox <- rep:
			case <-ctx.Done():
				return
			}
		}
	}
}
