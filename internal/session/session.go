// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package session owns one client connection end to end: reading and
// framing its byte stream, answering connection-management commands
// locally, forwarding everything else to its Listener, and writing replies
// back in request order (spec 4.4, spec 8).
package session

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync/atomic"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/internal/proto"
	"github.com/ClusterCockpit/radonkv/internal/rerr"
	"github.com/ClusterCockpit/radonkv/pkg/log"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// clientIDSeq hands out the integer identity CLIENT ID reports, stable for a
// connection's lifetime and unique across the process (spec 4.4).
var clientIDSeq atomic.Int64

// parseOutcome is one item off the read loop: either a decoded Command or
// an error (a *command.ParseError, or a *rerr.Error for byte-stream
// failures) that classify turns into a rerr.Kind and a reply.
type parseOutcome struct {
	cmd command.Command
	err error
}

// Session runs as one task per accepted connection.
type Session struct {
	id       proto.SessionID
	clientID int64
	conn     net.Conn
	submit   chan<- proto.Request
	inbox    <-chan proto.Reply
	limits   resp.Limits

	clientName string
}

// New builds a Session for an already-accepted conn. submit is the owning
// Listener's shared request-intake channel; inbox is the per-session reply
// channel the Listener registered for this SessionID.
func New(id proto.SessionID, conn net.Conn, submit chan<- proto.Request, inbox <-chan proto.Reply, limits resp.Limits) *Session {
	return &Session{
		id:       id,
		clientID: clientIDSeq.Add(1),
		conn:     conn,
		submit:   submit,
		inbox:    inbox,
		limits:   limits,
	}
}

// Run drives the connection until EOF, a fatal error, or ctx cancellation.
// It owns the only mutable state this Session has (pending reply ordering,
// client name), so nothing here needs a lock.
func (s *Session) Run(ctx context.Context) {
	log.Infof("[SESSION %s]> connected from %s", s.id, s.conn.RemoteAddr())
	defer func() {
		s.conn.Close()
		log.Infof("[SESSION %s]> disconnected", s.id)
	}()

	parsed := make(chan parseOutcome, 16)
	go s.readLoop(ctx, parsed)

	// pending holds replies (from the Dispatcher, or produced locally for
	// connection-management commands) that have arrived out of order;
	// nextFlush is the lowest Seq not yet written to the wire. This is the
	// Go-native generalization of batching replies by a FIFO of expected
	// counts: tagging every command with a per-connection sequence number
	// and flushing the longest contiguous prefix survives replies arriving
	// out of order even when a pipelined batch spans components that
	// finish at different speeds (spec 8).
	pending := make(map[uint64]resp.Frame)
	var nextSeq, nextFlush uint64
	var out []byte

	flush := func(seq uint64, frame resp.Frame) {
		pending[seq] = frame
		for {
			f, ok := pending[nextFlush]
			if !ok {
				break
			}
			out = f.AppendTo(out)
			delete(pending, nextFlush)
			nextFlush++
		}
		if len(out) == 0 {
			return
		}
		if _, err := s.conn.Write(out); err != nil {
			log.Debugf("[SESSION %s]> write failed: %v", s.id, err)
		}
		out = out[:0]
	}

	for {
		select {
		case <-ctx.Done():
			return

		case rep, ok := <-s.inbox:
			if !ok {
				return
			}
			flush(rep.Seq, rep.Frame)

		case outcome, ok := <-parsed:
			if !ok {
				return
			}

			if outcome.err != nil {
				kind, reply, hasReply := classify(outcome.err)
				if hasReply {
					seq := nextSeq
					nextSeq++
					flush(seq, reply)
				}
				if kind.ClosesConnection() {
					return
				}
				continue
			}

			if connCmd, ok := outcome.cmd.(command.ConnCmd); ok {
				seq := nextSeq
				nextSeq++
				flush(seq, s.handleConn(connCmd))
				continue
			}

			seq := nextSeq
			nextSeq++
			req := proto.Request{Session: s.id, Seq: seq, Cmd: outcome.cmd}
			select {
			case s.submit <- req:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleConn answers PING/ECHO/CLIENT locally; these never reach the
// Dispatcher (spec 4.5).
func (s *Session) handleConn(c command.ConnCmd) resp.Frame {
	switch c.Op {
	case command.ConnPing:
		return resp.Pong()
	case command.ConnEcho:
		return resp.BulkOf(c.Message)
	case command.ConnClientID:
		return resp.Integer(s.clientID)
	case command.ConnClientGetName:
		return resp.BulkString(s.clientName)
	case command.ConnClientSetName:
		s.clientName = string(c.Message)
		return resp.OK()
	}
	return resp.InternalErr("unhandled conn op")
}

// readLoop incrementally frames conn's byte stream with resp.Check, parses
// each complete frame, and decodes it into a Command, handing every result
// to the Session's own goroutine over parsed. It stops itself only on a
// byte-stream-level failure (malformed frame, I/O error, EOF); a command
// that merely names an unknown operation or bad arguments is reported and
// parsing continues, since the stream itself is still well-formed.
func (s *Session) readLoop(ctx context.Context, parsed chan<- parseOutcome) {
	defer close(parsed)

	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 4096)

	emit := func(o parseOutcome) bool {
		select {
		case parsed <- o:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		n, readErr := s.conn.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)

		drain:
			for {
				status, kind, consumed := resp.Check(buf, s.limits)
				switch status {
				case resp.StatusComplete:
					frame, _, perr := resp.Parse(buf[:consumed])
					buf = buf[consumed:]
					if perr != nil {
						emit(parseOutcome{err: rerr.New(rerr.KindFrameMalformed, perr)})
						return
					}
					cmd, cerr := command.Parse(frame)
					if !emit(parseOutcome{cmd: cmd, err: cerr}) {
						return
					}

				case resp.StatusIncomplete:
					break drain

				case resp.StatusMalformed:
					emit(parseOutcome{err: rerr.New(rerr.KindFrameMalformed,
						fmt.Errorf("malformed frame (kind %d)", kind))})
					return
				}
			}
		}

		if readErr != nil {
			if readErr != io.EOF {
				emit(parseOutcome{err: rerr.New(rerr.KindIO, readErr)})
			}
			return
		}
	}
}

// classify turns a command.Parse failure or a rerr-wrapped byte-stream
// failure into the reply to send (if any) and the Kind that decides whether
// the connection stays open (spec 7).
func classify(err error) (kind rerr.Kind, reply resp.Frame, hasReply bool) {
	if pe, ok := err.(*command.ParseError); ok {
		switch pe.Kind {
		case command.CommandNotFound:
			return rerr.KindCommandUnknown, resp.UnknownCommandErr(pe.Name), true
		case command.ProtocolError:
			return rerr.KindFrameMalformed, resp.Error("ERR Protocol error: " + pe.Error()), true
		default:
			return rerr.KindInvalidParams, resp.InvalidCommand(), true
		}
	}
	if re, ok := err.(*rerr.Error); ok {
		switch re.Kind {
		case rerr.KindFrameMalformed:
			return re.Kind, resp.Error("ERR Protocol error: " + re.Error()), true
		case rerr.KindIO:
			return re.Kind, resp.Frame{}, false
		}
		return re.Kind, resp.InternalErr(re.Error()), true
	}
	return rerr.KindInternal, resp.InternalErr(err.Error()), true
}
