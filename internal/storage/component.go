// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"time"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/go-co-op/gocron/v2"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/internal/mem"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// ExportFunc produces a consistent snapshot of the keyspace. The server
// supervisor wires this to a request routed through Mem's single-consumer
// task (spec 4.7) rather than handing Storage a *mem.Db directly - Export
// itself is cheap, but running it outside Mem's own goroutine would race
// with commands still being applied.
type ExportFunc func() ([]mem.Record, error)

// Canonical replies for the storage-management family (spec 4.6): body out
// of scope beyond these strings, but the snapshot actually produced below
// is real.
const (
	saveOKText         = "OK"
	bgSaveOKText       = "Background saving started"
	bgRewriteAOFOKText = "Background append only file rewriting started"
)

// Component runs as the Storage singleton task. It owns the snapshot
// target and, if configured, a gocron scheduler driving periodic BGSAVE -
// grounded on the teacher's taskManager package, repurposed from metric
// checkpoint scheduling to keyspace snapshotting.
type Component struct {
	target    SnapshotTarget
	export    ExportFunc
	scheduler gocron.Scheduler
}

func NewComponent(target SnapshotTarget, export ExportFunc) *Component {
	return &Component{target: target, export: export}
}

// StartSchedule registers a periodic BGSAVE job, mirroring
// taskManager.RegisterCommitJobService's DurationJob pattern.
func (c *Component) StartSchedule(interval time.Duration) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("storage: create scheduler: %w", err)
	}
	c.scheduler = s

	_, err = s.NewJob(gocron.DurationJob(interval), gocron.NewTask(func() {
		if err := c.snapshot("scheduled-bgsave"); err != nil {
			cclog.Errorf("storage: scheduled snapshot failed: %v", err)
		}
	}))
	if err != nil {
		return fmt.Errorf("storage: register snapshot job: %w", err)
	}

	s.Start()
	return nil
}

func (c *Component) StopSchedule() {
	if c.scheduler != nil {
		c.scheduler.Shutdown()
	}
}

func (c *Component) snapshot(reason string) error {
	records, err := c.export()
	if err != nil {
		return fmt.Errorf("export keyspace: %w", err)
	}
	data, err := EncodeSnapshot(records)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	name := fmt.Sprintf("radonkv-%s-%d.avro", reason, len(records))
	if err := c.target.WriteFile(name, data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	cclog.Infof("storage: wrote snapshot %q (%d keys)", name, len(records))
	return nil
}

// Handle answers one StorageCmd. SAVE blocks the caller until the snapshot
// is written; BGSAVE/BGREWRITEAOF hand it to a goroutine and reply
// immediately, matching Redis's asynchronous contract (spec 4.6).
func (c *Component) Handle(cmd command.StorageCmd) resp.Frame {
	switch cmd.Op {
	case command.StorageSave:
		if err := c.snapshot("save"); err != nil {
			return resp.InternalErr(err.Error())
		}
		return resp.Simple(saveOKText)

	case command.StorageBGSave:
		go func() {
			if err := c.snapshot("bgsave"); err != nil {
				cclog.Errorf("storage: BGSAVE failed: %v", err)
			}
		}()
		return resp.Simple(bgSaveOKText)

	case command.StorageBGRewriteAOF:
		go func() {
			if err := c.snapshot("bgrewriteaof"); err != nil {
				cclog.Errorf("storage: BGREWRITEAOF failed: %v", err)
			}
		}()
		return resp.Simple(bgRewriteAOFOKText)
	}
	return resp.InternalErr("unhandled storage op")
}
