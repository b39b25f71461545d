// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ClusterCockpit/radonkv/internal/proto"
)

// exportRequest asks the Task's own goroutine to run Export, since Db is
// documented as single-consumer: nothing outside this goroutine may touch
// db directly (spec 4.7).
type exportRequest struct {
	reply chan<- exportResult
}

type exportResult struct {
	records []Record
	err     error
}

// Task runs Db as the Mem singleton: one goroutine, reading Requests off a
// channel and answering on the Reply channel each Request carries. This is
// the component storage.ExportFunc is wired to, rather than letting Storage
// call Export on db from its own goroutines.
type Task struct {
	db       *Db
	requests <-chan proto.Request
	exports  chan exportRequest
	size     atomic.Int64
}

func NewTask(db *Db, requests <-chan proto.Request) *Task {
	return &Task{db: db, requests: requests, exports: make(chan exportRequest)}
}

// Size reports the keyspace's key count as of the last processed command.
// Safe to call from any goroutine (e.g. the metrics collector), unlike
// reading db directly, since it only ever reads an atomic snapshot the Mem
// goroutine itself publishes.
func (t *Task) Size() float64 { return float64(t.size.Load()) }

func (t *Task) Run(ctx context.Context) {
	t.size.Store(t.db.DBSize())
	for {
		select {
		case <-ctx.Done():
			return

		case req := <-t.requests:
			frame := t.db.Execute(req.Cmd)
			t.size.Store(t.db.DBSize())
			select {
			case req.ReplyTo <- proto.Reply{Session: req.Session, Seq: req.Seq, Frame: frame}:
			case <-ctx.Done():
				return
			}

		case er := <-t.exports:
			records, err := t.db.Export()
			select {
			case er.reply <- exportResult{records: records, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Export implements storage.ExportFunc: it routes the request through the
// Mem task's own goroutine instead of calling db.Export() from whatever
// goroutine Storage happens to be running on.
func (t *Task) Export() ([]Record, error) {
	reply := make(chan exportResult, 1)
	select {
	case t.exports <- exportRequest{reply: reply}:
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("mem: export request timed out, Mem task unresponsive")
	}
	res := <-reply
	return res.records, res.err
}
