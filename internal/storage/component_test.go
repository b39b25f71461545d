// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/internal/mem"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// fakeTarget records every WriteFile call in memory, so tests don't touch
// the filesystem or a real object store.
type fakeTarget struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeTarget() *fakeTarget { return &fakeTarget{files: make(map[string][]byte)} }

func (f *fakeTarget) WriteFile(name string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = data
	return nil
}

func (f *fakeTarget) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

func fakeExport() ([]mem.Record, error) {
	return []mem.Record{{Key: "a", Kind: mem.KindString, Payload: []byte("1")}}, nil
}

func TestHandleSaveWritesSnapshotSynchronously(t *testing.T) {
	target := newFakeTarget()
	c := NewComponent(target, fakeExport)

	frame := c.Handle(command.StorageCmd{Op: command.StorageSave})
	if frame.Type != resp.TypeSimple || frame.Str != saveOKText {
		t.Fatalf("Handle(SAVE) = %+v, want simple %q", frame, saveOKText)
	}
	if got := target.count(); got != 1 {
		t.Fatalf("target received %d files after SAVE, want 1", got)
	}
}

func TestHandleBGSaveRepliesImmediatelyThenWritesAsync(t *testing.T) {
	target := newFakeTarget()
	c := NewComponent(target, fakeExport)

	frame := c.Handle(command.StorageCmd{Op: command.StorageBGSave})
	if frame.Type != resp.TypeSimple || frame.Str != bgSaveOKText {
		t.Fatalf("Handle(BGSAVE) = %+v, want simple %q", frame, bgSaveOKText)
	}

	deadline := time.Now().Add(time.Second)
	for target.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := target.count(); got != 1 {
		t.Fatalf("target received %d files after BGSAVE settled, want 1", got)
	}
}

func TestHandleSaveReportsExportFailure(t *testing.T) {
	target := newFakeTarget()
	c := NewComponent(target, func() ([]mem.Record, error) {
		return nil, fmt.Errorf("export boom")
	})

	frame := c.Handle(command.StorageCmd{Op: command.StorageSave})
	if frame.Type != resp.TypeError {
		t.Fatalf("Handle(SAVE) = %+v, want an error reply", frame)
	}
}
