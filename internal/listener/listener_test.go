// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listener

import (
	"context"
	"net"
	"testing"
	"time"

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

// TestListenerRoutesAndRepliesThroughDispatcherChannel exercises a full
// accept -> Session -> Listener -> "Dispatcher" -> Listener -> Session ->
// wire round trip, standing in for the Dispatcher with a channel this test
// answers directly (spec 4.4: the Listener never inspects a Request, it
// only knows which Session a Reply belongs to).
func TestListenerRoutesAndRepliesThroughDispatcherChannel(t *testing.T) {
	toDispatcher := make(chan proto.Request, 8)
	l := New("test", "127.0.0.1:18701", toDispatcher, resp.DefaultLimits())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := l.Run(ctx); err != nil {
			t.Errorf("Run() error = %v", err)
		}
	}()

	// Stand in for the Dispatcher: answer every forwarded request with a
	// fixed bulk string on the ReplyTo channel the Listener stamped.
	go func() {
		for req := range toDispatcher {
			req.ReplyTo <- proto.Reply{Session: req.Session, Seq: req.Seq, Frame: resp.BulkString("value")}
		}
	}()

	var conn net.Conn
	var err error
	for i := 0; i < 50; i++ {
		conn, err = net.Dial("tcp", "127.0.0.1:18701")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write(arrayCmd("GET", "k")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 256)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	frame, _, perr := resp.Parse(buf[:n])
	if perr != nil {
		t.Fatalf("Parse() error = %v", perr)
	}
	if frame.Type != resp.TypeBulk || string(frame.Bulk) != "value" {
		t.Fatalf("reply = %+v, want bulk %q", frame, "value")
	}
}
