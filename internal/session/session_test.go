// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ClusterCockpit/radonkv/internal/proto"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

func arrayCmd(parts ...string) []byte {
	frames := make([]resp.Frame, len(parts))
	for i, p := range parts {
		frames[i] = resp.BulkString(p)
	}
	return resp.ArrayOf(frames).Bytes()
}

// startFakeBackend simulates what a Listener+Dispatcher+component would do
// with everything Session forwards: answer a BulkString reply carrying the
// requested key, after an artificial delay so replies can arrive out of
// submission order relative to locally-handled commands.
func startFakeBackend(submit <-chan proto.Request, inbox chan<- proto.Reply, delay time.Duration) {
	go func() {
		for req := range submit {
			go func(req proto.Request) {
				time.Sleep(delay)
				inbox <- proto.Reply{Session: req.Session, Seq: req.Seq, Frame: resp.BulkString("forwarded")}
			}(req)
		}
	}()
}

// This is the integration-style test this package needs setup for: a real
// net.Pipe connection, a Session goroutine, and a fake downstream component
// racing a delayed reply against two locally-answered commands. testify's
// require keeps the many assertions below terse (spec A.4).
func TestPipelinedRepliesPreserveSubmissionOrder(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	submit := make(chan proto.Request, 8)
	inbox := make(chan proto.Reply, 8)
	startFakeBackend(submit, inbox, 30*time.Millisecond)

	sess := New(proto.NewSessionID(), serverConn, submit, inbox, resp.DefaultLimits())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.Run(ctx)

	// PING (local, instant) -> GET (forwarded, delayed) -> ECHO (local,
	// instant). If ordering were naive "reply as soon as each answer is
	// ready", ECHO's reply would reach the wire before GET's.
	var payload []byte
	payload = append(payload, arrayCmd("PING")...)
	payload = append(payload, arrayCmd("GET", "k")...)
	payload = append(payload, arrayCmd("ECHO", "bar")...)

	go func() {
		clientConn.Write(payload)
	}()

	buf := make([]byte, 0, 256)
	tmp := make([]byte, 256)
	require.NoError(t, clientConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for countFrames(buf) < 3 {
		n, err := clientConn.Read(tmp)
		buf = append(buf, tmp[:n]...)
		require.NoError(t, err, "buf so far: %q", buf)
	}

	want := resp.Simple("PONG").Bytes()
	want = append(want, resp.BulkString("forwarded").Bytes()...)
	want = append(want, resp.BulkString("bar").Bytes()...)

	require.Equal(t, string(want), string(buf))
}

func countFrames(buf []byte) int {
	n := 0
	for {
		status, _, consumed := resp.Check(buf, resp.DefaultLimits())
		if status != resp.StatusComplete {
			return n
		}
		n++
		buf = buf[consumed:]
	}
}

func TestUnknownCommandRepliesWithoutClosingConnection(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	submit := make(chan proto.Request, 8)
	inbox := make(chan proto.Reply, 8)
	startFakeBackend(submit, inbox, 0)

	sess := New(proto.NewSessionID(), serverConn, submit, inbox, resp.DefaultLimits())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.Run(ctx)

	go func() {
		clientConn.Write(arrayCmd("NOTACOMMAND"))
		clientConn.Write(arrayCmd("PING"))
	}()

	buf := make([]byte, 0, 128)
	tmp := make([]byte, 128)
	require.NoError(t, clientConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for countFrames(buf) < 2 {
		n, err := clientConn.Read(tmp)
		buf = append(buf, tmp[:n]...)
		require.NoError(t, err, "buf so far: %q", buf)
	}

	frame, consumed, err := resp.Parse(buf)
	require.NoError(t, err)
	require.Equal(t, resp.TypeError, frame.Type, "first reply should report the unknown command")

	frame2, _, err := resp.Parse(buf[consumed:])
	require.NoError(t, err)
	require.Equal(t, resp.TypeSimple, frame2.Type)
	require.Equal(t, "PONG", frame2.Str, "connection should stay open after an unknown command")
}
