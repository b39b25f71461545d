// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cluster implements the Cluster stub component (spec 4.6):
// READONLY/READWRITE always succeed, since this server never shards or
// replicates (spec 10, Non-goals). Every accepted command is still
// published on the configured NATS subject, giving a real channel contract
// for a future replication layer to subscribe to, without this package
// implementing that layer itself.
package cluster

import (
	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/pkg/nats"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

// announceSubject is where Cluster publishes one message per accepted
// READONLY/READWRITE transition, for any out-of-process subscriber
// interested in cluster mode changes.
const announceSubject = "radonkv.cluster.mode"

// Component runs as the Cluster singleton task.
type Component struct {
	natsClient *nats.Client // nil if NATS was not configured; publish is then a no-op
}

func NewComponent(natsClient *nats.Client) *Component {
	return &Component{natsClient: natsClient}
}

// Handle answers one ClusterCmd. It never returns an error: READONLY and
// READWRITE are unconditionally accepted (spec 4.6).
func (c *Component) Handle(cmd command.ClusterCmd) resp.Frame {
	var mode string
	switch cmd.Op {
	case command.ClusterReadOnly:
		mode = "readonly"
	case command.ClusterReadWrite:
		mode = "readwrite"
	}

	if c.natsClient != nil {
		if err := c.natsClient.Publish(announceSubject, []byte(mode)); err != nil {
			cclog.Warnf("cluster: failed to announce mode change: %v", err)
		}
	}

	return resp.OK()
}
